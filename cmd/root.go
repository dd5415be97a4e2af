package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"dagcal/src-cli/utils"

	"github.com/spf13/cobra"
)

var (
	config = utils.NewConfig()

	dbPath string

	rootCmd = &cobra.Command{
		Use:   "dagcal",
		Short: "Whole-day calendar store and iCalendar exporter",
		Long: `dagcal keeps whole-day, floating-time calendars in a sqlite store and
exports them as RFC5545 documents or as a raw JSON dump. Recurring events are
stored as one master row plus per-occurrence exception rows; the exporter
collapses them into the event set a calendar client renders.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// Every subcommand talks to the store, so the path check lives here.
func requireDatabase() error {
	if dbPath == "" {
		return fmt.Errorf("no database given, set --database or DAGCAL_DB")
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "database", config.GetDatabasePath(), "path to the sqlite database file (env DAGCAL_DB)")
}
