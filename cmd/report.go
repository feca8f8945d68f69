package cmd

import (
	"github.com/spf13/cobra"

	"github.com/5plinkK/ColordleSolver/internal/report"
)

var (
	reportMetrics []string
	reportTop     int
	reportGuesses []string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compare rankings under several color-difference metrics",
	Long: `Ranks the database under each metric and prints the top candidates.
Without --guess the built-in sample round is used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cs := report.SampleConstraints()
		if len(reportGuesses) > 0 {
			var err error
			if cs, err = parseScoredAll(reportGuesses); err != nil {
				return err
			}
		}
		db, err := loadColors(cmd.Context())
		if err != nil {
			return err
		}
		_, err = report.Compare(cmd.OutOrStdout(), cs, db, report.Options{Metrics: reportMetrics, Top: reportTop})
		return err
	},
}

func init() {
	reportCmd.Flags().StringSliceVarP(&reportMetrics, "metric", "m", nil, "metrics to compare: ciede2000, cie76, cie94 (default ciede2000,cie76)")
	reportCmd.Flags().IntVar(&reportTop, "top", report.DefaultTop, "candidates per metric")
	reportCmd.Flags().StringArrayVarP(&reportGuesses, "guess", "g", nil, "reference guess as HEX=SCORE (repeatable)")
	rootCmd.AddCommand(reportCmd)
}
