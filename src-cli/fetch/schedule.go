// Package fetch reads third-party waste disposal schedules, either from the
// schedule HTTP API or from a saved JSON file. The fetched fractions get
// imported into the store as single-occurrence events.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
)

// The API serves naive local datetimes without a zone designator.
const scheduleDateLayout = "2006-01-02T15:04:05"

// Fraction is one waste fraction and its pickup dates as served by the
// schedule API.
type Fraction struct {
	FractionID   string   `json:"fraction_id"`
	FractionName string   `json:"fraction_name"`
	Frequency    int      `json:"frequency"`
	Dates        []string `json:"dates"`
}

// Schedule maps fraction ids to fractions.
type Schedule map[string]Fraction

// PickupDates parses the fraction's raw date strings.
func (f Fraction) PickupDates() ([]time.Time, error) {
	dates := make([]time.Time, 0, len(f.Dates))
	for _, raw := range f.Dates {
		date, err := time.ParseInLocation(scheduleDateLayout, raw, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("Fraction.PickupDates: %w", err)
		}
		dates = append(dates, date)
	}
	return dates, nil
}

// ReadSchedule decodes a schedule JSON document, e.g. one saved from the API.
func ReadSchedule(r io.Reader) (Schedule, error) {
	var schedule Schedule
	if err := json.NewDecoder(r).Decode(&schedule); err != nil {
		return nil, fmt.Errorf("ReadSchedule: %w", err)
	}
	return schedule, nil
}

// Client fetches disposal schedules over HTTP.
type Client struct {
	rc *resty.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		rc: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Accept", "application/json").
			SetTimeout(30 * time.Second),
	}
}

// DisposalDates returns the pickup schedule for an address.
func (c *Client) DisposalDates(ctx context.Context, address string) (Schedule, error) {
	var schedule Schedule
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("address", address).
		SetResult(&schedule).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("Client.DisposalDates: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("Client.DisposalDates: unexpected status %s", resp.Status())
	}
	return schedule, nil
}
