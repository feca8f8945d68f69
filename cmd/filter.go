package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/5plinkK/ColordleSolver/internal/digits"
)

var (
	filterGuesses []string
	filterLimit   int
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "List database colors consistent with hex-digit feedback",
	Long: `Each --guess is HEX:FEEDBACK where FEEDBACK has one letter per digit:
c (correct), p (present elsewhere) or a (absent).`,
	Example: "  colordle filter --guess FF0000:aacccc",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var h digits.History
		for _, g := range filterGuesses {
			rec, err := parseTiles(g)
			if err != nil {
				return err
			}
			h = h.Append(rec)
		}
		db, err := loadColors(cmd.Context())
		if err != nil {
			return err
		}

		survivors := digits.Filter(db, h)
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%d of %d colors remain\n", len(survivors), len(db))
		for i, e := range survivors {
			if filterLimit > 0 && i == filterLimit {
				fmt.Fprintf(w, "... %d more\n", len(survivors)-i)
				break
			}
			fmt.Fprintf(w, "%s (%s)\n", e.Name, e.Hex)
		}
		return nil
	},
}

func init() {
	filterCmd.Flags().StringArrayVarP(&filterGuesses, "guess", "g", nil, "guess as HEX:FEEDBACK (repeatable)")
	filterCmd.Flags().IntVarP(&filterLimit, "limit", "n", 100, "maximum colors to list (0 for all)")
	rootCmd.AddCommand(filterCmd)
}
