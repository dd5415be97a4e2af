package cmd

import (
	"encoding/json"
	"os"

	"dagcal/src-cli/model"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all calendars in the store as a JSON array",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireDatabase(); err != nil {
			return err
		}
		db, err := model.OpenReadOnly(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := model.NewRepository(db)
		calendars := []model.CalendarRecord{}
		if err := repo.ForEachCalendar(cmd.Context(), func(calendar model.CalendarRecord) error {
			calendars = append(calendars, calendar)
			return nil
		}); err != nil {
			return err
		}
		return json.NewEncoder(os.Stdout).Encode(calendars)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
