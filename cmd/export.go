package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"dagcal/src-cli/model"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	exportID     string
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one calendar as an iCalendar document or a JSON dump",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireDatabase(); err != nil {
			return err
		}
		id, err := uuid.Parse(exportID)
		if err != nil {
			return fmt.Errorf("invalid calendar id %q: %w", exportID, err)
		}

		db, err := model.OpenReadOnly(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		repo := model.NewRepository(db)

		calendar, err := repo.GetCalendar(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("calendar %s: %w", id, err)
		}

		out, closeOut, err := openOutput(exportOutput)
		if err != nil {
			return err
		}
		defer closeOut()

		switch exportFormat {
		case "ical":
			icalCalendar, err := model.BuildCalendar(cmd.Context(), repo, *calendar)
			if err != nil {
				return err
			}
			if err := icalCalendar.Write(out); err != nil {
				return wrapOutputErr(err)
			}
		case "json":
			if err := writeJSONDump(cmd.Context(), repo, *calendar, out); err != nil {
				return wrapOutputErr(err)
			}
		default:
			return fmt.Errorf("unknown format %q, want ical or json", exportFormat)
		}
		return nil
	},
}

// openOutput creates the target file up front so an unwritable path fails
// before any rows are read. An empty path means stdout.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("can't create output file %s: %w", path, err)
	}
	return file, func() { file.Close() }, nil
}

func wrapOutputErr(err error) error {
	if err == nil {
		return nil
	}
	if exportOutput != "" {
		return fmt.Errorf("can't write %s: %w", exportOutput, err)
	}
	return err
}

type eventDump struct {
	Event      model.EventRecord       `json:"event"`
	Exceptions []model.ExceptionRecord `json:"exceptions"`
}

type calendarDump struct {
	Calendar model.CalendarRecord `json:"calendar"`
	Events   []eventDump          `json:"events"`
}

// writeJSONDump emits the stored rows as-is, one entry per event with its
// exceptions attached. No materialization happens here.
func writeJSONDump(ctx context.Context, repo *model.Repository, calendar model.CalendarRecord, out io.Writer) error {
	dump := calendarDump{Calendar: calendar, Events: []eventDump{}}
	if err := repo.ForEachEvent(ctx, &calendar.ID, func(event model.EventRecord) error {
		entry := eventDump{Event: event, Exceptions: []model.ExceptionRecord{}}
		eventID := event.ID
		if err := repo.ForEachEventException(ctx, &eventID, func(exception model.ExceptionRecord) error {
			entry.Exceptions = append(entry.Exceptions, exception)
			return nil
		}); err != nil {
			return err
		}
		dump.Events = append(dump.Events, entry)
		return nil
	}); err != nil {
		return err
	}
	return json.NewEncoder(out).Encode(dump)
}

func init() {
	exportCmd.Flags().StringVar(&exportID, "id", "", "calendar id to export")
	exportCmd.Flags().StringVar(&exportFormat, "format", "ical", "output format: ical or json")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "output file path, stdout if omitted")
	exportCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(exportCmd)
}
