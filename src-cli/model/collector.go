package model

import (
	"context"
	"fmt"
	"log/slog"

	"dagcal/src-cli/ical"

	"github.com/google/uuid"
)

// EventCollector folds master event records and their exceptions into the
// flat event set a calendar client renders: masters with accumulated
// exclusion dates, plus one override event per exception that replaces
// content. Masters live in a map keyed by identity, overrides accumulate in
// processing order.
type EventCollector struct {
	masters   map[uuid.UUID]*ical.Event
	overrides []*ical.Event
}

func NewEventCollector() *EventCollector {
	return &EventCollector{
		masters: make(map[uuid.UUID]*ical.Event),
	}
}

// ProcessEvent registers a master event. A later record with the same
// identity replaces the earlier one.
func (c *EventCollector) ProcessEvent(record EventRecord) {
	event := &ical.Event{
		UID:          record.ID,
		DTStamp:      record.LastModified,
		Sequence:     record.Sequence,
		StartDate:    record.StartDate,
		DurationDays: record.DurationDays,
		RRule:        record.RRule,
		Summary:      record.Summary,
	}
	if record.Description != nil {
		event.Description = *record.Description
	}
	if record.URL != nil {
		event.URL = *record.URL
	}
	c.masters[record.ID] = event
}

// ProcessException suppresses the overridden occurrence on its master and,
// when the exception carries a replacement date or summary, emits an
// override event linked back to the master through the recurrence
// identifier. An exception whose master is unknown is discarded.
func (c *EventCollector) ProcessException(record ExceptionRecord) {
	master, ok := c.masters[record.EventID]
	if !ok {
		return
	}

	// the original occurrence vanishes no matter what the exception carries
	master.ExDates = append(master.ExDates, record.OriginalDate)

	if record.NewDate == nil && record.NewSummary == nil {
		return
	}

	override := *master
	recurrenceID := record.OriginalDate
	override.RecurrenceID = &recurrenceID
	override.StartDate = record.OriginalDate
	if record.NewDate != nil {
		override.StartDate = *record.NewDate
	}
	if record.NewSummary != nil {
		override.Summary = *record.NewSummary
	}
	if record.NewDescription != nil {
		override.Description = *record.NewDescription
	}

	// overrides never recur and never carry date lists of their own
	override.RRule = ""
	override.ExDates = nil
	override.RDates = nil

	c.overrides = append(c.overrides, &override)
}

// Finalize returns the renderable calendar: all masters, then all overrides
// in the order their exceptions were processed.
func (c *EventCollector) Finalize(calendar CalendarRecord) *ical.Calendar {
	events := make([]*ical.Event, 0, len(c.masters)+len(c.overrides))
	for _, master := range c.masters {
		events = append(events, master)
	}
	events = append(events, c.overrides...)

	result := &ical.Calendar{
		ProdID: ical.ProdID,
		Name:   calendar.Name,
		Events: events,
	}
	if calendar.Description != nil {
		result.Description = *calendar.Description
	}
	return result
}

// BuildCalendar materializes one calendar: every master event is visited
// exactly once, then exceptions are fetched only for masters that declare a
// recurrence rule.
func BuildCalendar(ctx context.Context, repo *Repository, calendar CalendarRecord) (*ical.Calendar, error) {
	collector := NewEventCollector()
	if err := repo.ForEachEvent(ctx, &calendar.ID, func(event EventRecord) error {
		slog.Debug("processing event", "event", event.ID)
		collector.ProcessEvent(event)
		if event.RRule == "" {
			return nil
		}
		eventID := event.ID
		return repo.ForEachEventException(ctx, &eventID, func(exception ExceptionRecord) error {
			collector.ProcessException(exception)
			return nil
		})
	}); err != nil {
		return nil, fmt.Errorf("BuildCalendar: %w", err)
	}
	return collector.Finalize(calendar), nil
}
