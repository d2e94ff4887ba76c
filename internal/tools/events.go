package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tourwire/mastertour-mcp/internal/format"
	"github.com/tourwire/mastertour-mcp/internal/localtime"
	"github.com/tourwire/mastertour-mcp/internal/mastertour"
)

// GetTourEventsInput is the input for the get_tour_events tool.
type GetTourEventsInput struct {
	TourID    string `json:"tourId,omitempty" jsonschema:"Tour to read. Falls back to the configured default tour."`
	ShowsOnly bool   `json:"showsOnly,omitempty" jsonschema:"Only include show days."`
}

// TourEventDay is one day in the get_tour_events output.
type TourEventDay struct {
	DayID    string `json:"dayId"`
	Date     string `json:"date"`
	DayType  string `json:"dayType"`
	Venue    string `json:"venue,omitempty"`
	Location string `json:"location,omitempty"`
}

// TourEventsData is the structured output of get_tour_events.
type TourEventsData struct {
	Tour string         `json:"tour"`
	Days []TourEventDay `json:"days"`
}

// getTourEvents lists a tour's itinerary days in date order.
func (s *Set) getTourEvents(ctx context.Context, in GetTourEventsInput) (*TourEventsData, string, error) {
	tourID, err := s.resolveTourID(in.TourID)
	if err != nil {
		return nil, "", err
	}

	te, err := s.client.GetTourEvents(ctx, tourID)
	if err != nil {
		return nil, "", err
	}

	days := make([]TourEventDay, 0, len(te.Days))
	for _, d := range te.Days {
		if in.ShowsOnly && !strings.Contains(strings.ToLower(d.DayType), "show") {
			continue
		}
		days = append(days, TourEventDay{
			DayID:    d.ID,
			Date:     localtime.DateOnly(d.DayDate),
			DayType:  d.DayType,
			Venue:    format.Field(d.Name),
			Location: format.Location(d.City, d.State, d.Country),
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	data := &TourEventsData{Tour: tourLabel(te.Tour), Days: days}
	return data, renderTourEvents(data, in.ShowsOnly), nil
}

func renderTourEvents(d *TourEventsData, showsOnly bool) string {
	if len(d.Days) == 0 {
		if showsOnly {
			return fmt.Sprintf("No show days on the itinerary for %s.", d.Tour)
		}
		return fmt.Sprintf("No itinerary days for %s.", d.Tour)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🗓️ %s — %d day(s):\n", d.Tour, len(d.Days))
	for _, day := range d.Days {
		fmt.Fprintf(&b, "\n%s %s — %s", dayTypeEmoji(day.DayType), format.Date(day.Date), day.DayType)
		if day.Venue != "" {
			fmt.Fprintf(&b, "\n   🏟️ %s", day.Venue)
			if day.Location != "" {
				fmt.Fprintf(&b, " — %s", day.Location)
			}
		} else if day.Location != "" {
			fmt.Fprintf(&b, "\n   📍 %s", day.Location)
		}
		fmt.Fprintf(&b, "\n   Day ID: %s\n", day.DayID)
	}
	return b.String()
}

// GetEventSetlistInput is the input for the get_event_setlist tool.
type GetEventSetlistInput struct {
	EventID string `json:"eventId" jsonschema:"Id of the event whose setlist to read."`
}

// SetlistData is the structured output of get_event_setlist.
type SetlistData struct {
	EventName         string                   `json:"eventName"`
	Date              string                   `json:"date"`
	MainSet           []mastertour.SetlistSong `json:"mainSet"`
	Encore            []mastertour.SetlistSong `json:"encore"`
	EstimatedDuration string                   `json:"estimatedDuration,omitempty"`
}

// getEventSetlist reads an event's setlist split into the main set and the
// encore, with a duration estimate from the songs that declare one.
func (s *Set) getEventSetlist(ctx context.Context, in GetEventSetlistInput) (*SetlistData, string, error) {
	if strings.TrimSpace(in.EventID) == "" {
		return nil, "", validationf("eventId is required")
	}

	sl, err := s.client.GetEventSetlist(ctx, in.EventID)
	if err != nil {
		return nil, "", err
	}

	songs := append([]mastertour.SetlistSong(nil), sl.Songs...)
	sort.SliceStable(songs, func(i, j int) bool { return songs[i].Position < songs[j].Position })

	var main, encore []mastertour.SetlistSong
	var total time.Duration
	for _, song := range songs {
		if song.IsEncore {
			encore = append(encore, song)
		} else {
			main = append(main, song)
		}
		total += songDuration(song.Duration)
	}

	data := &SetlistData{
		EventName: format.Field(sl.EventName),
		Date:      sl.Date,
		MainSet:   main,
		Encore:    encore,
	}
	if total > 0 {
		data.EstimatedDuration = total.Round(time.Minute).String()
	}
	return data, renderSetlist(data), nil
}

func renderSetlist(d *SetlistData) string {
	if len(d.MainSet) == 0 && len(d.Encore) == 0 {
		return fmt.Sprintf("No setlist on file for %s.", d.EventName)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🎵 Setlist — %s", d.EventName)
	if d.Date != "" {
		fmt.Fprintf(&b, " (%s)", format.Date(d.Date))
	}
	b.WriteString("\n")
	if d.EstimatedDuration != "" {
		fmt.Fprintf(&b, "Estimated length: %s\n", d.EstimatedDuration)
	}
	b.WriteString("\nMain set:\n")
	writeSongs(&b, d.MainSet)
	if len(d.Encore) > 0 {
		b.WriteString("\nEncore:\n")
		writeSongs(&b, d.Encore)
	}
	return b.String()
}

func writeSongs(b *strings.Builder, songs []mastertour.SetlistSong) {
	for i, song := range songs {
		fmt.Fprintf(b, "  %d. %s", i+1, format.Field(song.SongTitle))
		if song.Duration != "" {
			fmt.Fprintf(b, " (%s)", song.Duration)
		}
		if notes := format.Field(song.Notes); notes != "" {
			fmt.Fprintf(b, " — %s", notes)
		}
		b.WriteString("\n")
	}
}

// songDuration parses a "M:SS" or "MM:SS" song length; unparsable values
// count as zero.
func songDuration(s string) time.Duration {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0
	}
	var min, sec int
	if _, err := fmt.Sscanf(parts[0]+" "+parts[1], "%d %d", &min, &sec); err != nil {
		return 0
	}
	if min < 0 || sec < 0 || sec > 59 {
		return 0
	}
	return time.Duration(min)*time.Minute + time.Duration(sec)*time.Second
}
