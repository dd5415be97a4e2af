// The `ical` package serializes calendars into RFC5545 documents.
//
// # References:
// - RFC5545: https://datatracker.ietf.org/doc/html/rfc5545
// - RFC7986: https://datatracker.ietf.org/doc/html/rfc7986
//
// # Notes:
// - Events are whole-day and floating-time; every date-valued property
//   carries VALUE=DATE. Timestamps (DTSTAMP) are UTC.
// - Serialization only. Parsing documents back is out of scope.
// - Content lines are folded to the 75-octet limit with CRLF terminators;
//   folds never land inside a multi-byte UTF-8 sequence.
package ical

import (
	"fmt"
	"io"
	"strings"
)

// ProdID identifies this implementation in exported documents.
const ProdID = "-//Dagcal//Calendar//EN"

// Calendar is a flattened, renderable event set plus document metadata.
// Read-only once materialized.
type Calendar struct {
	ProdID      string
	Name        string
	Description string
	Events      []*Event
}

// ToIcal serializes the calendar into an RFC5545 document string.
func (c *Calendar) ToIcal() (string, error) {
	var sb strings.Builder
	if err := c.serialize(sb.WriteString); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write serializes the calendar directly to a writer. Bytes already written
// when an error occurs are not rolled back.
func (c *Calendar) Write(w io.Writer) error {
	return c.serialize(func(s string) (int, error) {
		return io.WriteString(w, s)
	})
}

func (c *Calendar) serialize(write func(string) (int, error)) error {
	writer := FoldWrapper(write)

	prodID := c.ProdID
	if prodID == "" {
		prodID = ProdID
	}

	for _, line := range []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	} {
		if _, err := writer(line); err != nil {
			return err
		}
	}

	// NAME/DESCRIPTION per RFC7986, duplicated onto the X-WR- properties
	// that older clients read.
	if c.Name != "" {
		name := EscapeText(c.Name)
		for _, line := range []string{"NAME:" + name, "X-WR-CALNAME:" + name} {
			if _, err := writer(line); err != nil {
				return err
			}
		}
	}
	if c.Description != "" {
		description := EscapeText(c.Description)
		for _, line := range []string{"DESCRIPTION:" + description, "X-WR-CALDESC:" + description} {
			if _, err := writer(line); err != nil {
				return err
			}
		}
	}

	for _, event := range c.Events {
		if err := event.toIcal(writer); err != nil {
			return fmt.Errorf("Calendar.serialize: %w", err)
		}
	}

	if _, err := writer("END:VCALENDAR"); err != nil {
		return err
	}
	return nil
}
