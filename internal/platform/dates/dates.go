// Package dates holds calendar helpers for the upstream date format and the
// scoreboard date strip.
package dates

import (
	"fmt"
	"strings"
	"time"
)

const (
	upstreamLayout = "20060102"
	dayKeyLayout   = "2006-01-02"
	shortLayout    = "Mon, Jan 2"
	longLayout     = "Monday, January 2, 2006"
)

// eventLayouts are the timestamp shapes seen in event dates.
var eventLayouts = []string{
	"2006-01-02T15:04Z07:00",
	time.RFC3339,
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
}

// ToUpstream renders the calendar day of t as YYYYMMDD.
func ToUpstream(t time.Time) string {
	return t.Format(upstreamLayout)
}

// ParseUpstream reads a YYYYMMDD day at midnight in loc.
func ParseUpstream(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(upstreamLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse upstream date %q: %w", raw, err)
	}
	return t, nil
}

// ParseEventTime accepts the minute-precision UTC form the upstream emits
// ("2025-03-15T18:00Z") as well as full RFC 3339.
func ParseEventTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range eventLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return StartOfDay(now.In(loc))
}

// AddDays moves by calendar days, so DST shifts keep the wall clock.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

func FormatShort(t time.Time) string {
	return t.Format(shortLayout)
}

func FormatLong(t time.Time) string {
	return t.Format(longLayout)
}

// Range returns the 2n+1 days centered on center, oldest first.
func Range(center time.Time, n int) []time.Time {
	if n < 0 {
		n = 0
	}
	out := make([]time.Time, 0, 2*n+1)
	for i := -n; i <= n; i++ {
		out = append(out, AddDays(center, i))
	}
	return out
}
