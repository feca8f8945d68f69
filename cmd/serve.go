package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/5plinkK/ColordleSolver/internal/config"
	"github.com/5plinkK/ColordleSolver/internal/httpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the solver over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := loadColors(cmd.Context())
		if err != nil {
			return err
		}
		if cfg.SessionSecret == config.DevSecret {
			log.Warn().Msg("SESSION_SECRET not set; using development secret")
		}
		srv := httpserver.New(cfg, db)
		log.Info().Str("port", cfg.Port).Int("colors", len(db)).Msg("starting colordle server")
		return srv.Start(":" + cfg.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
