package ical

import "time"

// Wire formats for date-only values and UTC timestamps.
const (
	dateLayout      = "20060102"
	timestampLayout = "20060102T150405Z"
)

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
