package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tourwire/mastertour-mcp/internal/format"
	"github.com/tourwire/mastertour-mcp/internal/localtime"
)

// ListToursInput is the input for the list_tours tool.
type ListToursInput struct{}

// TourEntry is one tour in the list_tours output.
type TourEntry struct {
	TourID string `json:"tourId"`
	Name   string `json:"name"`
	Access string `json:"access"`
}

// TourGroup is the tours of one organization.
type TourGroup struct {
	Organization string      `json:"organization"`
	Tours        []TourEntry `json:"tours"`
}

// ListToursData is the structured output of list_tours.
type ListToursData struct {
	Groups []TourGroup `json:"groups"`
	Total  int         `json:"total"`
}

// listTours returns every accessible tour grouped by organization, with the
// access level the credentials hold on each.
func (s *Set) listTours(ctx context.Context, _ ListToursInput) (*ListToursData, string, error) {
	tours, err := s.client.ListTours(ctx)
	if err != nil {
		return nil, "", err
	}

	byOrg := make(map[string][]TourEntry)
	for _, t := range tours {
		access := "Read Only"
		if t.CanEdit() {
			access = "Edit Access"
		}
		name := t.ArtistName
		if t.LegName != "" {
			name += " - " + t.LegName
		}
		org := t.OrganizationName
		if org == "" {
			org = "Other"
		}
		byOrg[org] = append(byOrg[org], TourEntry{TourID: t.TourID, Name: name, Access: access})
	}

	orgs := make([]string, 0, len(byOrg))
	for org := range byOrg {
		orgs = append(orgs, org)
	}
	sort.Strings(orgs)

	groups := make([]TourGroup, 0, len(orgs))
	for _, org := range orgs {
		entries := byOrg[org]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
		groups = append(groups, TourGroup{Organization: org, Tours: entries})
	}

	data := &ListToursData{Groups: groups, Total: len(tours)}
	return data, renderTourList(data), nil
}

func renderTourList(d *ListToursData) string {
	if d.Total == 0 {
		return "No tours are visible to these credentials."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🚌 %d tour(s) available:\n", d.Total)
	for _, g := range d.Groups {
		fmt.Fprintf(&b, "\n%s\n", g.Organization)
		for _, t := range g.Tours {
			marker := "👁️"
			if t.Access == "Edit Access" {
				marker = "✏️"
			}
			fmt.Fprintf(&b, "  %s %s (%s)\n     Tour ID: %s\n", marker, t.Name, t.Access, t.TourID)
		}
	}
	return b.String()
}

// GetTodayScheduleInput is the input for the get_today_schedule tool.
type GetTodayScheduleInput struct {
	TourID string `json:"tourId,omitempty" jsonschema:"Tour to read. Falls back to the configured default tour."`
	Date   string `json:"date,omitempty" jsonschema:"Date to read as YYYY-MM-DD. Defaults to today."`
}

// ScheduleEntry is one schedule item rendered in the day's local time.
type ScheduleEntry struct {
	ItemID    string `json:"itemId"`
	Title     string `json:"title"`
	Details   string `json:"details,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Confirmed bool   `json:"confirmed"`
}

// TodayScheduleData is the structured output of get_today_schedule.
type TodayScheduleData struct {
	Date     string          `json:"date"`
	DayID    string          `json:"dayId,omitempty"`
	DayType  string          `json:"dayType,omitempty"`
	Venue    string          `json:"venue,omitempty"`
	Location string          `json:"location,omitempty"`
	TimeZone string          `json:"timeZone,omitempty"`
	Items    []ScheduleEntry `json:"items"`
	Notes    string          `json:"notes,omitempty"`
}

// getTodaySchedule resolves the day for a date via the tour summary, then
// renders its full schedule in local time.
func (s *Set) getTodaySchedule(ctx context.Context, in GetTodayScheduleInput) (*TodayScheduleData, string, error) {
	tourID, err := s.resolveTourID(in.TourID)
	if err != nil {
		return nil, "", err
	}
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = s.today()
	} else if !localtime.ValidDate(date) {
		return nil, "", validationf("invalid date %q: use YYYY-MM-DD", date)
	}

	summaries, err := s.client.GetTourSummary(ctx, tourID, date)
	if err != nil {
		return nil, "", err
	}
	dayID := ""
	for _, sum := range summaries {
		if localtime.DateOnly(sum.DayDate) == date {
			dayID = sum.ID
			break
		}
	}
	if dayID == "" {
		data := &TodayScheduleData{Date: date}
		return data, fmt.Sprintf("No itinerary day on %s for this tour.", format.Date(date)), nil
	}

	dr, err := s.client.GetDay(ctx, dayID)
	if err != nil {
		return nil, "", err
	}
	day := dr.Day

	items := make([]ScheduleEntry, 0, len(day.ScheduleItems))
	for _, it := range day.ScheduleItems {
		items = append(items, ScheduleEntry{
			ItemID:    it.ID,
			Title:     format.Field(it.Title),
			Details:   format.Field(it.Details),
			StartTime: localClock(it.PaulStartTime, it.StartDatetime),
			EndTime:   localClock(it.PaulEndTime, it.EndDatetime),
			Confirmed: it.IsConfirmed,
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].StartTime < items[j].StartTime })

	data := &TodayScheduleData{
		Date:     date,
		DayID:    day.ID,
		DayType:  day.DayType,
		Venue:    format.Field(day.Name),
		Location: format.Location(day.City, day.State, day.Country),
		TimeZone: day.TimeZone,
		Items:    items,
		Notes:    format.Field(day.GeneralNotes),
	}
	return data, renderTodaySchedule(data), nil
}

func renderTodaySchedule(d *TodayScheduleData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s — %s\n", dayTypeEmoji(d.DayType), format.Date(d.Date), d.DayType)
	if d.Venue != "" {
		fmt.Fprintf(&b, "🏟️ %s", d.Venue)
		if d.Location != "" {
			fmt.Fprintf(&b, " — %s", d.Location)
		}
		b.WriteString("\n")
	}
	if len(d.Items) == 0 {
		b.WriteString("\nNo schedule items yet.\n")
	} else {
		fmt.Fprintf(&b, "\n🗓️ Schedule (%s):\n", d.TimeZone)
		for _, it := range d.Items {
			line := "  "
			if it.StartTime != "" {
				line += format.Clock(it.StartTime)
				if it.EndTime != "" && it.EndTime != it.StartTime {
					line += " to " + format.Clock(it.EndTime)
				}
				line += " — "
			}
			line += it.Title
			if it.Confirmed {
				line += " ✅"
			}
			b.WriteString(line + "\n")
			if it.Details != "" {
				fmt.Fprintf(&b, "      %s\n", it.Details)
			}
		}
	}
	if d.Notes != "" {
		fmt.Fprintf(&b, "\n📝 Notes: %s\n", d.Notes)
	}
	return b.String()
}

// localClock renders a schedule time as local "HH:MM", preferring the
// local-time field and falling back to the UTC clock for legacy items.
func localClock(paulTime, wireUTC string) string {
	src := paulTime
	if src == "" {
		src = wireUTC
	}
	if src == "" {
		return ""
	}
	clock, err := localtime.Clock(src)
	if err != nil {
		return ""
	}
	return clock
}

func dayTypeEmoji(dayType string) string {
	switch {
	case strings.Contains(strings.ToLower(dayType), "show"):
		return "🎤"
	case strings.Contains(strings.ToLower(dayType), "travel"):
		return "🚌"
	case strings.Contains(strings.ToLower(dayType), "off"):
		return "🛏️"
	case strings.Contains(strings.ToLower(dayType), "press"), strings.Contains(strings.ToLower(dayType), "promo"):
		return "📰"
	default:
		return "📅"
	}
}
