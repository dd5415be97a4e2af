package fetch_test

import (
	"strings"
	"testing"
	"time"

	"dagcal/src-cli/fetch"
)

const sampleSchedule = `{
	"1": {
		"fraction_id": "1",
		"fraction_name": "Restavfall",
		"frequency": 14,
		"dates": ["2024-02-05T00:00:00", "2024-02-19T00:00:00"]
	},
	"4": {
		"fraction_id": "4",
		"fraction_name": "Papir",
		"frequency": 28,
		"dates": ["2024-02-12T00:00:00"]
	}
}`

func TestReadSchedule(t *testing.T) {
	schedule, err := fetch.ReadSchedule(strings.NewReader(sampleSchedule))
	if err != nil {
		t.Fatal(err)
	}
	if len(schedule) != 2 {
		t.Fatalf("want 2 fractions, got %d", len(schedule))
	}

	rest, ok := schedule["1"]
	if !ok {
		t.Fatal("fraction 1 missing")
	}
	if rest.FractionName != "Restavfall" || rest.Frequency != 14 || len(rest.Dates) != 2 {
		t.Errorf("fraction mismatch: %+v", rest)
	}

	dates, err := rest.PickupDates()
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC)
	if !dates[0].Equal(want) {
		t.Errorf("got %v, want %v", dates[0], want)
	}
}

func TestReadScheduleRejectsMalformedJSON(t *testing.T) {
	if _, err := fetch.ReadSchedule(strings.NewReader(`{"1": `)); err == nil {
		t.Error("want error for truncated document")
	}
}

func TestPickupDatesRejectsMalformedDate(t *testing.T) {
	fraction := fetch.Fraction{Dates: []string{"05.02.2024"}}
	if _, err := fraction.PickupDates(); err == nil {
		t.Error("want error for malformed date")
	}
}
