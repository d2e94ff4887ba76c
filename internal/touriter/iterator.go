// Package touriter walks every day of every accessible tour lazily, fetching
// one tour at a time. Aggregations such as venue search and upcoming shows
// are built on it.
package touriter

import (
	"context"
	"iter"
	"log/slog"
	"strings"

	"github.com/tourwire/mastertour-mcp/internal/mastertour"
)

// Client is the slice of the Master Tour API the iterator needs.
type Client interface {
	ListTours(ctx context.Context) ([]mastertour.Tour, error)
	GetTourAll(ctx context.Context, tourID string) (*mastertour.TourAll, error)
	GetDayEvents(ctx context.Context, dayID string) ([]mastertour.DayEvent, error)
}

// Options narrows the iteration.
type Options struct {
	// TourID restricts iteration to a single tour. When set, the tour list
	// endpoint is never called.
	TourID string

	// OnlyWithVenues skips days without a venue name.
	OnlyWithVenues bool

	// OnlyShowDays skips days whose type is not a show day.
	OnlyShowDays bool
}

// TourDay pairs one itinerary day with the header of the tour that owns it.
type TourDay struct {
	Tour mastertour.TourDetail
	Day  mastertour.Day
}

// Label returns a human-readable tour name like "The Band - EU Leg".
func (td TourDay) Label() string {
	switch {
	case td.Tour.ArtistName == "" && td.Tour.LegName == "":
		return "Unknown Tour"
	case td.Tour.LegName == "":
		return td.Tour.ArtistName
	case td.Tour.ArtistName == "":
		return td.Tour.LegName
	}
	return td.Tour.ArtistName + " - " + td.Tour.LegName
}

// Days returns a lazy sequence over the matching days of every tour in
// scope, one GetTourAll call per tour, issued only as the sequence is
// consumed. A tour whose fetch fails is logged and skipped so one revoked
// tour cannot sink a whole aggregation. The returned sequence is restartable;
// ranging over it again re-fetches.
//
// The error return covers only the initial tour listing. With Options.TourID
// set, it is always nil.
func Days(ctx context.Context, c Client, opts Options) (iter.Seq[TourDay], error) {
	var tourIDs []string
	if opts.TourID != "" {
		tourIDs = []string{opts.TourID}
	} else {
		tours, err := c.ListTours(ctx)
		if err != nil {
			return nil, err
		}
		tourIDs = make([]string, len(tours))
		for i, t := range tours {
			tourIDs[i] = t.TourID
		}
	}

	return func(yield func(TourDay) bool) {
		for _, id := range tourIDs {
			if ctx.Err() != nil {
				return
			}
			ta, err := c.GetTourAll(ctx, id)
			if err != nil {
				slog.Warn("skipping tour", "tour_id", id, "error", err)
				continue
			}
			header := ta.Tour
			header.Days = nil
			for _, day := range ta.Tour.Days {
				if !matches(day, opts) {
					continue
				}
				if !yield(TourDay{Tour: header, Day: day}) {
					return
				}
			}
		}
	}, nil
}

func matches(day mastertour.Day, opts Options) bool {
	if opts.OnlyWithVenues && strings.TrimSpace(day.Name) == "" {
		return false
	}
	if opts.OnlyShowDays && !IsShowDay(day) {
		return false
	}
	return true
}

// IsShowDay reports whether the day's type marks it as a performance date.
func IsShowDay(day mastertour.Day) bool {
	return strings.Contains(strings.ToLower(day.DayType), "show")
}

// DayEventsSafe fetches a day's events, returning nil on any failure. Venue
// lookups call it in bulk, where one missing day should not abort the sweep.
func DayEventsSafe(ctx context.Context, c Client, dayID string) []mastertour.DayEvent {
	events, err := c.GetDayEvents(ctx, dayID)
	if err != nil {
		slog.Warn("skipping day events", "day_id", dayID, "error", err)
		return nil
	}
	return events
}

// CountAccessibleTours returns how many tours an iteration with the given
// tour scope would cover: 1 when pinned to a single tour, otherwise the
// number of tours the credentials can see.
func CountAccessibleTours(ctx context.Context, c Client, tourID string) (int, error) {
	if tourID != "" {
		return 1, nil
	}
	tours, err := c.ListTours(ctx)
	if err != nil {
		return 0, err
	}
	return len(tours), nil
}
