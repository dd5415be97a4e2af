package model_test

import (
	"testing"
	"time"

	"dagcal/src-cli/ical"
	"dagcal/src-cli/model"

	"github.com/google/uuid"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func masterRecord(calendarID uuid.UUID) model.EventRecord {
	return model.EventRecord{
		ID:           uuid.New(),
		CalendarID:   calendarID,
		Summary:      "Weekly standup",
		Description:  strPtr("Round the table"),
		URL:          strPtr("https://example.com/standup"),
		StartDate:    day(2024, time.January, 1),
		DurationDays: 1,
		RRule:        "FREQ=WEEKLY;COUNT=10",
		Sequence:     2,
		CreatedAt:    time.Unix(1700000000, 0).UTC(),
		LastModified: time.Unix(1700001000, 0).UTC(),
	}
}

func splitEvents(cal *ical.Calendar) (masters, overrides []*ical.Event) {
	for _, event := range cal.Events {
		if event.RecurrenceID == nil {
			masters = append(masters, event)
		} else {
			overrides = append(overrides, event)
		}
	}
	return masters, overrides
}

func TestCollectorExceptionWithNewDate(t *testing.T) {
	calendar := model.CalendarRecord{ID: uuid.New(), Name: "Work"}
	master := masterRecord(calendar.ID)

	collector := model.NewEventCollector()
	collector.ProcessEvent(master)
	collector.ProcessException(model.ExceptionRecord{
		ID:           uuid.New(),
		EventID:      master.ID,
		OriginalDate: day(2024, time.January, 8),
		NewDate:      timePtr(day(2024, time.January, 9)),
	})

	masters, overrides := splitEvents(collector.Finalize(calendar))
	if len(masters) != 1 || len(overrides) != 1 {
		t.Fatalf("want 1 master and 1 override, got %d and %d", len(masters), len(overrides))
	}

	if len(masters[0].ExDates) != 1 || !masters[0].ExDates[0].Equal(day(2024, time.January, 8)) {
		t.Errorf("master exdates = %v, want the original date", masters[0].ExDates)
	}

	override := overrides[0]
	if !override.RecurrenceID.Equal(day(2024, time.January, 8)) {
		t.Errorf("override recurrence id = %v, want the original date", override.RecurrenceID)
	}
	if !override.StartDate.Equal(day(2024, time.January, 9)) {
		t.Errorf("override start = %v, want the replacement date", override.StartDate)
	}
	if override.Summary != master.Summary {
		t.Errorf("override summary = %q, want inherited %q", override.Summary, master.Summary)
	}
	if override.URL != *master.URL || override.Description != *master.Description {
		t.Error("override must inherit url and description from the master")
	}
	if override.RRule != "" || override.ExDates != nil || override.RDates != nil {
		t.Error("override must not carry rrule, exdates or rdates")
	}
}

func TestCollectorExceptionWithNewSummaryOnly(t *testing.T) {
	calendar := model.CalendarRecord{ID: uuid.New(), Name: "Work"}
	master := masterRecord(calendar.ID)

	collector := model.NewEventCollector()
	collector.ProcessEvent(master)
	collector.ProcessException(model.ExceptionRecord{
		ID:           uuid.New(),
		EventID:      master.ID,
		OriginalDate: day(2024, time.January, 15),
		NewSummary:   strPtr("Standup (cancelled talk)"),
	})

	_, overrides := splitEvents(collector.Finalize(calendar))
	if len(overrides) != 1 {
		t.Fatalf("want 1 override, got %d", len(overrides))
	}
	// no replacement date: the override stays on the original occurrence
	if !overrides[0].StartDate.Equal(day(2024, time.January, 15)) {
		t.Errorf("override start = %v, want the original date", overrides[0].StartDate)
	}
	if overrides[0].Summary != "Standup (cancelled talk)" {
		t.Errorf("override summary = %q", overrides[0].Summary)
	}
}

func TestCollectorDescriptionOnlyExceptionSuppressesSilently(t *testing.T) {
	calendar := model.CalendarRecord{ID: uuid.New(), Name: "Work"}
	master := masterRecord(calendar.ID)

	collector := model.NewEventCollector()
	collector.ProcessEvent(master)
	collector.ProcessException(model.ExceptionRecord{
		ID:             uuid.New(),
		EventID:        master.ID,
		OriginalDate:   day(2024, time.January, 22),
		NewDescription: strPtr("never rendered"),
	})

	masters, overrides := splitEvents(collector.Finalize(calendar))
	if len(overrides) != 0 {
		t.Fatalf("description-only exception must not produce an override, got %d", len(overrides))
	}
	if len(masters[0].ExDates) != 1 || !masters[0].ExDates[0].Equal(day(2024, time.January, 22)) {
		t.Errorf("the occurrence must still be excluded, exdates = %v", masters[0].ExDates)
	}
}

func TestCollectorOneExclusionPerException(t *testing.T) {
	calendar := model.CalendarRecord{ID: uuid.New(), Name: "Work"}
	master := masterRecord(calendar.ID)

	collector := model.NewEventCollector()
	collector.ProcessEvent(master)
	dates := []time.Time{
		day(2024, time.January, 8),
		day(2024, time.January, 15),
		day(2024, time.January, 22),
	}
	for i, originalDate := range dates {
		exception := model.ExceptionRecord{
			ID:           uuid.New(),
			EventID:      master.ID,
			OriginalDate: originalDate,
		}
		if i == 0 {
			exception.NewDate = timePtr(originalDate.AddDate(0, 0, 1))
		}
		collector.ProcessException(exception)
	}

	masters, overrides := splitEvents(collector.Finalize(calendar))
	if len(masters[0].ExDates) != len(dates) {
		t.Errorf("want %d exdates regardless of override production, got %d", len(dates), len(masters[0].ExDates))
	}
	for i, originalDate := range dates {
		if !masters[0].ExDates[i].Equal(originalDate) {
			t.Errorf("exdate %d = %v, want %v", i, masters[0].ExDates[i], originalDate)
		}
	}
	if len(overrides) != 1 {
		t.Errorf("want exactly 1 override, got %d", len(overrides))
	}
}

func TestCollectorDiscardsExceptionForUnknownMaster(t *testing.T) {
	calendar := model.CalendarRecord{ID: uuid.New(), Name: "Work"}

	collector := model.NewEventCollector()
	collector.ProcessEvent(masterRecord(calendar.ID))
	collector.ProcessException(model.ExceptionRecord{
		ID:           uuid.New(),
		EventID:      uuid.New(), // no such master
		OriginalDate: day(2024, time.January, 8),
		NewSummary:   strPtr("orphan"),
	})

	masters, overrides := splitEvents(collector.Finalize(calendar))
	if len(overrides) != 0 {
		t.Errorf("orphan exception must be discarded, got %d overrides", len(overrides))
	}
	if len(masters[0].ExDates) != 0 {
		t.Errorf("orphan exception must not touch other masters, exdates = %v", masters[0].ExDates)
	}
}

func TestCollectorDuplicateMasterOverwrites(t *testing.T) {
	calendar := model.CalendarRecord{ID: uuid.New(), Name: "Work"}
	master := masterRecord(calendar.ID)
	replacement := master
	replacement.Summary = "Weekly standup v2"

	collector := model.NewEventCollector()
	collector.ProcessEvent(master)
	collector.ProcessEvent(replacement)

	masters, _ := splitEvents(collector.Finalize(calendar))
	if len(masters) != 1 {
		t.Fatalf("want 1 master after overwrite, got %d", len(masters))
	}
	if masters[0].Summary != "Weekly standup v2" {
		t.Errorf("later record must win, summary = %q", masters[0].Summary)
	}
}

func TestCollectorFinalizeCarriesCalendarMetadata(t *testing.T) {
	calendar := model.CalendarRecord{
		ID:          uuid.New(),
		Name:        "Hytte",
		Description: strPtr("Cabin weekends"),
	}
	result := model.NewEventCollector().Finalize(calendar)
	if result.ProdID != ical.ProdID {
		t.Errorf("prodid = %q", result.ProdID)
	}
	if result.Name != "Hytte" || result.Description != "Cabin weekends" {
		t.Errorf("metadata not carried: %q %q", result.Name, result.Description)
	}
	if len(result.Events) != 0 {
		t.Errorf("empty calendar must yield an empty event set, got %d", len(result.Events))
	}
}
