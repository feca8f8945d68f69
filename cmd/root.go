// Package cmd is the colordle command line: the HTTP host plus offline
// access to every solver.
package cmd

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/5plinkK/ColordleSolver/internal/colordb"
	"github.com/5plinkK/ColordleSolver/internal/config"
)

var (
	cfg        config.Config
	colorsFlag string
)

var rootCmd = &cobra.Command{
	Use:           "colordle",
	Short:         "Recover hidden Colordle colors from game feedback",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		if colorsFlag != "" {
			cfg.ColorsFile = colorsFlag
			cfg.ColorsDB = ""
		}
		cfg.ApplyLogLevel()
		if term.IsTerminal(int(os.Stderr.Fd())) {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&colorsFlag, "colors", "", "CSV color database (overrides COLORS_FILE and COLORS_DB)")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("colordle")
		os.Exit(1)
	}
}

// loadColors picks the reference database: the SQLite store if configured,
// then a CSV file, then the embedded palette.
func loadColors(ctx context.Context) ([]colordb.Entry, error) {
	if cfg.ColorsDB != "" {
		st, err := colordb.OpenStore(cfg.ColorsDB)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		entries, err := st.Entries(ctx)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			log.Debug().Str("db", cfg.ColorsDB).Int("colors", len(entries)).Msg("using sqlite palette")
			return entries, nil
		}
		log.Warn().Str("db", cfg.ColorsDB).Msg("color store is empty; falling back")
	}
	if cfg.ColorsFile != "" {
		return colordb.Load(cfg.ColorsFile)
	}
	return colordb.Default()
}
