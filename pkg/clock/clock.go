// Package clock abstracts the wall clock so handlers can be tested with fixed time.
//
//go:generate mockgen -package mockclock -source=clock.go -destination=mock/mockclock.go *
package clock

import "time"

// ISO8601 is the layout used for every timestamp rendered by the API:
// UTC with millisecond precision and a literal Z suffix.
const ISO8601 = "2006-01-02T15:04:05.000Z"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// System is the Clock backed by time.Now.
type System struct{}

// Now returns the current local time.
func (System) Now() time.Time { return time.Now() }

// Format renders t in ISO8601.
func Format(t time.Time) string {
	return t.UTC().Format(ISO8601)
}

// Uptime returns the time elapsed between startedAt and now, never negative.
func Uptime(startedAt, now time.Time) time.Duration {
	if d := now.Sub(startedAt); d > 0 {
		return d
	}

	return 0
}
