package cmd

import (
	"errors"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/5plinkK/ColordleSolver/internal/colordb"
)

const defaultStore = "data/colors.db"

var dbPath string

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the SQLite color store",
}

var dbImportCmd = &cobra.Command{
	Use:   "import CSV",
	Short: "Replace the stored palette with a CSV file (name,hex columns)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := colordb.Load(args[0])
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return errors.New("no colors in " + args[0])
		}
		st, err := colordb.OpenStore(storePath())
		if err != nil {
			return err
		}
		defer st.Close()

		bar := progressbar.NewOptions(len(entries),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("importing"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		err = st.Import(cmd.Context(), entries, func(done int) { _ = bar.Set(done) })
		_ = bar.Finish()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d colors into %s\n", len(entries), storePath())
		return nil
	},
}

var dbCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of stored colors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := colordb.OpenStore(storePath())
		if err != nil {
			return err
		}
		defer st.Close()
		n, err := st.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), n)
		return nil
	},
}

// storePath is --db, then COLORS_DB, then data/colors.db.
func storePath() string {
	switch {
	case dbPath != "":
		return dbPath
	case cfg.ColorsDB != "":
		return cfg.ColorsDB
	}
	return defaultStore
}

func init() {
	dbCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite file (default COLORS_DB or "+defaultStore+")")
	dbCmd.AddCommand(dbImportCmd, dbCountCmd)
	rootCmd.AddCommand(dbCmd)
}
