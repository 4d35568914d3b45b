// Package progress provides the weight-trend collaborator consumed by
// the progress analyst.
package progress

import (
	"context"
	"time"
)

// WeightEntry is one recorded weigh-in.
type WeightEntry struct {
	Kilograms  float64   `json:"kilograms"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Trend summarizes recent weigh-ins for one user.
type Trend struct {
	RollingAverageKg float64 `json:"rolling_average_kg"`
	DeltaKg          float64 `json:"delta_kg"`
	Entries          int     `json:"entries"`
	AdherenceRate    float64 `json:"adherence_rate"`
}

// Source is the trend lookup contract. Implementations must fail
// gracefully: a user without data gets a zero-valued trend, not an error.
type Source interface {
	RecentTrend(ctx context.Context, userID string) (Trend, error)
}

// AdherenceRate computes the plan-adherence ratio from breach events.
// Zero breaches over any positive number of days is exactly 1.
func AdherenceRate(breaches, totalDays int) float64 {
	if totalDays <= 0 {
		return 1
	}
	if breaches <= 0 {
		return 1
	}
	if breaches >= totalDays {
		return 0
	}
	return 1 - float64(breaches)/float64(totalDays)
}

// RollingAverage computes the mean of the most recent window entries.
func RollingAverage(entries []WeightEntry, window int) float64 {
	if len(entries) == 0 || window <= 0 {
		return 0
	}
	if window > len(entries) {
		window = len(entries)
	}
	sum := 0.0
	for _, e := range entries[len(entries)-window:] {
		sum += e.Kilograms
	}
	return sum / float64(window)
}

// Client is an in-memory trend source seeded per user, used as the
// default collaborator and in tests.
type Client struct {
	entries  map[string][]WeightEntry
	breaches map[string]int
	days     map[string]int
}

// NewClient creates an empty in-memory trend source.
func NewClient() *Client {
	return &Client{
		entries:  make(map[string][]WeightEntry),
		breaches: make(map[string]int),
		days:     make(map[string]int),
	}
}

// Record appends a weigh-in for the user.
func (c *Client) Record(userID string, entry WeightEntry) {
	c.entries[userID] = append(c.entries[userID], entry)
}

// SetAdherence seeds breach counts for the user.
func (c *Client) SetAdherence(userID string, breaches, totalDays int) {
	c.breaches[userID] = breaches
	c.days[userID] = totalDays
}

// RecentTrend summarizes the user's recent weigh-ins.
func (c *Client) RecentTrend(_ context.Context, userID string) (Trend, error) {
	entries := c.entries[userID]
	trend := Trend{
		Entries:          len(entries),
		RollingAverageKg: RollingAverage(entries, 7),
		AdherenceRate:    AdherenceRate(c.breaches[userID], c.days[userID]),
	}
	if len(entries) >= 2 {
		trend.DeltaKg = entries[len(entries)-1].Kilograms - entries[0].Kilograms
	}
	return trend, nil
}
