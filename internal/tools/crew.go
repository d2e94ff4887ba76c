package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tourwire/mastertour-mcp/internal/format"
	"github.com/tourwire/mastertour-mcp/internal/mastertour"
)

// commonCrewTitles orders the roles a tour manager reaches for first; every
// other title follows alphabetically.
var commonCrewTitles = []string{
	"Tour Manager",
	"Production Manager",
	"Stage Manager",
	"Front of House Engineer",
	"Monitor Engineer",
	"Lighting Director",
	"Backline Tech",
	"Merchandise Manager",
	"Bus Driver",
}

// GetTourCrewInput is the input for the get_tour_crew tool.
type GetTourCrewInput struct {
	TourID string `json:"tourId,omitempty" jsonschema:"Tour to read. Falls back to the configured default tour."`
}

// CrewGroup holds the crew members sharing one title.
type CrewGroup struct {
	Title   string                  `json:"title"`
	Members []mastertour.CrewMember `json:"members"`
}

// TourCrewData is the structured output of get_tour_crew.
type TourCrewData struct {
	Groups []CrewGroup `json:"groups"`
	Total  int         `json:"total"`
}

// getTourCrew reads the crew roster grouped by title, common titles first.
func (s *Set) getTourCrew(ctx context.Context, in GetTourCrewInput) (*TourCrewData, string, error) {
	tourID, err := s.resolveTourID(in.TourID)
	if err != nil {
		return nil, "", err
	}

	crew, err := s.client.GetTourCrew(ctx, tourID)
	if err != nil {
		return nil, "", err
	}

	byTitle := make(map[string][]mastertour.CrewMember)
	for _, m := range crew {
		title := strings.TrimSpace(m.Title)
		if title == "" {
			title = "Other"
		}
		byTitle[title] = append(byTitle[title], m)
	}

	rank := make(map[string]int, len(commonCrewTitles))
	for i, t := range commonCrewTitles {
		rank[t] = i
	}
	titles := make([]string, 0, len(byTitle))
	for t := range byTitle {
		titles = append(titles, t)
	}
	sort.Slice(titles, func(i, j int) bool {
		ri, iKnown := rank[titles[i]]
		rj, jKnown := rank[titles[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		}
		return titles[i] < titles[j]
	})

	groups := make([]CrewGroup, 0, len(titles))
	for _, t := range titles {
		members := byTitle[t]
		sort.Slice(members, func(i, j int) bool { return crewName(members[i]) < crewName(members[j]) })
		groups = append(groups, CrewGroup{Title: t, Members: members})
	}

	data := &TourCrewData{Groups: groups, Total: len(crew)}
	return data, renderTourCrew(data), nil
}

func renderTourCrew(d *TourCrewData) string {
	if d.Total == 0 {
		return "No crew members on the roster."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "💪 Crew roster (%d):\n", d.Total)
	for _, g := range d.Groups {
		fmt.Fprintf(&b, "\n%s\n", g.Title)
		for _, m := range g.Members {
			fmt.Fprintf(&b, "  • %s", crewName(m))
			if m.Company != "" {
				fmt.Fprintf(&b, " (%s)", format.Field(m.Company))
			}
			b.WriteString("\n")
			if m.Phone != "" {
				fmt.Fprintf(&b, "     ☎️ %s\n", format.Field(m.Phone))
			}
			if m.Email != "" {
				fmt.Fprintf(&b, "     ✉️ %s\n", format.Field(m.Email))
			}
		}
	}
	return b.String()
}

// crewName prefers the preferred name over the legal first name.
func crewName(m mastertour.CrewMember) string {
	first := m.PreferredName
	if first == "" {
		first = m.FirstName
	}
	return strings.TrimSpace(format.Field(first) + " " + format.Field(m.LastName))
}
