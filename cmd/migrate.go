package cmd

import (
	"log/slog"

	"dagcal/src-cli/model"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations to the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireDatabase(); err != nil {
			return err
		}
		db, err := model.OpenWritable(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := model.NewRepository(db)
		if err := repo.Migrate(cmd.Context()); err != nil {
			return err
		}
		slog.Info("store is at the latest schema version", "database", dbPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
