// Package localtime converts Master Tour wall-clock times between a day's
// IANA timezone and the UTC wire format the API expects.
//
// The API stores schedule times twice: startDatetime/endDatetime in UTC and
// paulStartTime/paulEndTime in the day's local zone, both formatted as
// "YYYY-MM-DD HH:MM:SS". Tools accept plain "HH:MM" venue-local clock values
// and use [ToUTC] to produce the UTC form before any mutating call.
package localtime

import (
	"fmt"
	"time"
	_ "time/tzdata" // fall back to the embedded zone database when the host has none
)

// Wire is the datetime layout used by the Master Tour API in both its UTC and
// local ("paul") fields.
const Wire = "2006-01-02 15:04:05"

// ToUTC interprets date ("YYYY-MM-DD") and clock ("HH:MM") as wall-clock time
// in the IANA zone tz and returns the corresponding UTC instant formatted as
// "YYYY-MM-DD HH:MM:SS". The calendar date rolls forward or backward when the
// zone offset crosses midnight (22:00 America/New_York in July becomes 02:00
// UTC the next day).
//
// DST edge cases follow Go's zone resolution: a clock value inside a
// spring-forward gap is normalized past the gap, and an ambiguous fall-back
// value resolves to the first (pre-transition) offset.
func ToUTC(date, clock, tz string) (string, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("localtime: invalid date %q: %w", date, err)
	}
	c, err := time.Parse("15:04", clock)
	if err != nil {
		return "", fmt.Errorf("localtime: invalid clock time %q: %w", clock, err)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", fmt.Errorf("localtime: unknown timezone %q: %w", tz, err)
	}

	local := time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc)
	return local.UTC().Format(Wire), nil
}

// Clock extracts the "HH:MM" portion of a wire-format datetime such as a
// schedule item's paulStartTime. Used when merging a partial update so that
// untouched times survive the round trip unchanged.
func Clock(wire string) (string, error) {
	t, err := time.Parse(Wire, wire)
	if err != nil {
		return "", fmt.Errorf("localtime: invalid wire datetime %q: %w", wire, err)
	}
	return t.Format("15:04"), nil
}

// ValidDate reports whether s is a well-formed "YYYY-MM-DD" calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// DateOnly returns the "YYYY-MM-DD" prefix of a wire-format datetime. Day
// records carry their date as "YYYY-MM-DD 00:00:00"; this strips the zero
// clock without caring whether it is present.
func DateOnly(wire string) string {
	if len(wire) >= 10 {
		return wire[:10]
	}
	return wire
}
