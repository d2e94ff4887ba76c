package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tourwire/mastertour-mcp/internal/format"
	"github.com/tourwire/mastertour-mcp/internal/localtime"
	"github.com/tourwire/mastertour-mcp/internal/touriter"
)

// defaultShowLimit caps upcoming-show results when the call does not set a
// limit.
const defaultShowLimit = 10

// GetUpcomingShowsInput is the input for the get_upcoming_shows tool.
type GetUpcomingShowsInput struct {
	TourID    string `json:"tourId,omitempty" jsonschema:"Restrict to one tour. All accessible tours are covered when omitted."`
	DaysAhead int    `json:"daysAhead,omitempty" jsonschema:"Only include shows within this many days from today. 0 means no upper bound."`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of shows to return. Default 10."`
}

// UpcomingShow is one show date in the output.
type UpcomingShow struct {
	Date     string `json:"date"`
	Venue    string `json:"venue"`
	Location string `json:"location"`
	Tour     string `json:"tour"`
	DayID    string `json:"dayId"`
}

// UpcomingShowsData is the structured output of get_upcoming_shows.
type UpcomingShowsData struct {
	Shows      []UpcomingShow `json:"shows"`
	TotalFound int            `json:"totalFound"`
	From       string         `json:"from"`
	Until      string         `json:"until,omitempty"`
}

// getUpcomingShows collects show days from today forward across the tours in
// scope, soonest first.
func (s *Set) getUpcomingShows(ctx context.Context, in GetUpcomingShowsInput) (*UpcomingShowsData, string, error) {
	if in.DaysAhead < 0 {
		return nil, "", validationf("daysAhead must not be negative")
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultShowLimit
	}

	today := s.today()
	until := ""
	if in.DaysAhead > 0 {
		until = s.now().AddDate(0, 0, in.DaysAhead).Format("2006-01-02")
	}

	seq, err := touriter.Days(ctx, s.client, touriter.Options{
		TourID:       in.TourID,
		OnlyShowDays: true,
	})
	if err != nil {
		return nil, "", err
	}

	var shows []UpcomingShow
	for td := range seq {
		date := localtime.DateOnly(td.Day.DayDate)
		if date < today {
			continue
		}
		if until != "" && date > until {
			continue
		}
		shows = append(shows, UpcomingShow{
			Date:     date,
			Venue:    format.Field(td.Day.Name),
			Location: format.Location(td.Day.City, td.Day.State, td.Day.Country),
			Tour:     td.Label(),
			DayID:    td.Day.ID,
		})
	}

	sort.Slice(shows, func(i, j int) bool {
		if shows[i].Date != shows[j].Date {
			return shows[i].Date < shows[j].Date
		}
		return shows[i].DayID < shows[j].DayID
	})

	total := len(shows)
	if len(shows) > limit {
		shows = shows[:limit]
	}

	data := &UpcomingShowsData{Shows: shows, TotalFound: total, From: today, Until: until}
	return data, renderUpcomingShows(data), nil
}

func renderUpcomingShows(d *UpcomingShowsData) string {
	if len(d.Shows) == 0 {
		if d.Until != "" {
			return fmt.Sprintf("No upcoming shows between %s and %s.", format.Date(d.From), format.Date(d.Until))
		}
		return "No upcoming shows on the calendar."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🎤 %d upcoming show(s)", d.TotalFound)
	if d.Until != "" {
		fmt.Fprintf(&b, " through %s", format.Date(d.Until))
	}
	if len(d.Shows) < d.TotalFound {
		fmt.Fprintf(&b, " (showing %d)", len(d.Shows))
	}
	b.WriteString(":\n")
	for _, sh := range d.Shows {
		fmt.Fprintf(&b, "\n📅 %s — %s", format.Date(sh.Date), sh.Venue)
		if sh.Location != "" {
			fmt.Fprintf(&b, "\n   📍 %s", sh.Location)
		}
		fmt.Fprintf(&b, "\n   Tour: %s · Day ID: %s\n", sh.Tour, sh.DayID)
	}
	return b.String()
}
