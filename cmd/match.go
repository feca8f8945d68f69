package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/5plinkK/ColordleSolver/internal/solver"
)

var (
	matchGuesses []string
	matchLimit   int
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank database colors against similarity scores",
	Example: `  colordle match --guess '#00FFFF=47.69' --guess '#FF00FF=58.84' \
    --guess '#FFFF00=26.16' --guess '#FFFFFF=44.13'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cs, err := parseScoredAll(matchGuesses)
		if err != nil {
			return err
		}
		if len(cs) == 0 {
			return errors.New("at least one --guess is required")
		}
		db, err := loadColors(cmd.Context())
		if err != nil {
			return err
		}
		limit := matchLimit
		if limit <= 0 {
			limit = cfg.MatchLimit
		}

		w := cmd.OutOrStdout()
		for i, m := range solver.FindBestMatches(cs, db, limit) {
			if !m.Valid {
				fmt.Fprintf(w, "%2d.    %s (%s) invalid hex\n", i+1, m.Entry.Name, m.Entry.Hex)
				continue
			}
			fmt.Fprintf(w, "%2d. %s %s (%s)  error %.4f  avg %.4f  confidence %.2f%%\n",
				i+1, swatch(w, m.RGB), m.Entry.Name, m.Entry.Hex, m.TotalSquaredError, m.AverageError, m.Confidence)
		}
		return nil
	},
}

var solveGuesses []string

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Search the whole RGB cube for the best-fitting color",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cs, err := parseScoredAll(solveGuesses)
		if err != nil {
			return err
		}
		sol := solver.SolveDetailed(cs)
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s %s  %s\n", swatch(w, sol.RGB), sol.Hex, sol.RGB)
		fmt.Fprintf(w, "error %.4f  avg %.4f  confidence %.2f%%\n", sol.TotalSquaredError, sol.AverageError, sol.Confidence)
		return nil
	},
}

func init() {
	matchCmd.Flags().StringArrayVarP(&matchGuesses, "guess", "g", nil, "reference guess as HEX=SCORE (repeatable)")
	matchCmd.Flags().IntVarP(&matchLimit, "limit", "n", 0, "number of candidates (default MATCH_LIMIT)")
	solveCmd.Flags().StringArrayVarP(&solveGuesses, "guess", "g", nil, "reference guess as HEX=SCORE (repeatable)")
	rootCmd.AddCommand(matchCmd, solveCmd)
}
