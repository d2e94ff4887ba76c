package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/tourwire/mastertour-mcp/internal/mastertour"
)

// venueFixture builds two tours that both played the Paradiso, plus one
// Blue Note date, so ranking can be asserted.
func venueFixture() *fakeClient {
	return &fakeClient{
		tours: []mastertour.Tour{
			{TourID: "t1", ArtistName: "The Band", LegName: "Fall 2025", OrganizationPermissionLevel: "255"},
			{TourID: "t2", ArtistName: "Side Project", OrganizationPermissionLevel: "100"},
		},
		all: map[string]*mastertour.TourAll{
			"t1": {Tour: mastertour.TourDetail{
				TourID: "t1", ArtistName: "The Band", LegName: "Fall 2025",
				Days: []mastertour.Day{
					{ID: "d1", Name: "Paradiso", DayDate: "2025-10-01 00:00:00", DayType: "Show Day"},
					{ID: "d2", DayDate: "2025-10-02 00:00:00", DayType: "Travel Day"},
					{ID: "d3", Name: "Blue Note", DayDate: "2025-10-03 00:00:00", DayType: "Show Day"},
				},
			}},
			"t2": {Tour: mastertour.TourDetail{
				TourID: "t2", ArtistName: "Side Project",
				Days: []mastertour.Day{
					{ID: "d4", Name: "Paradiso", DayDate: "2025-11-15 00:00:00", DayType: "Show Day"},
				},
			}},
		},
		events: map[string][]mastertour.DayEvent{
			"d1": {{ID: "e1", VenueID: "v-para", VenueName: "Paradiso", VenueCity: "Amsterdam", VenueCountry: "Netherlands"}},
			"d3": {{ID: "e3", VenueID: "v-blue", VenueName: "Blue Note", VenueCity: "New York", VenueState: "NY", VenueCountry: "USA"}},
			"d4": {{ID: "e4", VenueID: "v-para", VenueName: "Paradiso", VenueCity: "Amsterdam", VenueCountry: "Netherlands", VenueCapacity: "1500"}},
		},
	}
}

func TestSearchPastVenues_ShortQueryRejectedBeforeIO(t *testing.T) {
	t.Parallel()

	f := venueFixture()
	_, _, err := newTestSet(f).searchPastVenues(context.Background(), SearchPastVenuesInput{Query: " a "})
	if !IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if f.listCalls != 0 || len(f.allCalls) != 0 {
		t.Errorf("validation must reject before any fetch; list=%d all=%v", f.listCalls, f.allCalls)
	}
}

func TestSearchPastVenues_RanksByTourCountThenRecency(t *testing.T) {
	t.Parallel()

	data, text, err := newTestSet(venueFixture()).searchPastVenues(context.Background(), SearchPastVenuesInput{Query: "para"})
	if err != nil {
		t.Fatalf("searchPastVenues: %v", err)
	}
	if data.TotalFound != 1 || len(data.Results) != 1 {
		t.Fatalf("got %d results (total %d), want 1", len(data.Results), data.TotalFound)
	}
	m := data.Results[0]
	if m.VenueID != "v-para" {
		t.Errorf("VenueID = %q", m.VenueID)
	}
	if m.TimesUsed != 2 {
		t.Errorf("TimesUsed = %d, want 2", m.TimesUsed)
	}
	if m.LastUsed != "2025-11-15" {
		t.Errorf("LastUsed = %q, want 2025-11-15", m.LastUsed)
	}
	// The most recent event's record wins, bringing its richer fields along.
	if want := []string{"Side Project", "The Band - Fall 2025"}; len(m.Tours) != 2 || m.Tours[0] != want[0] || m.Tours[1] != want[1] {
		t.Errorf("Tours = %v, want %v", m.Tours, want)
	}
	if data.ToursSearched != 2 {
		t.Errorf("ToursSearched = %d, want 2", data.ToursSearched)
	}
	if !strings.Contains(text, "Paradiso") {
		t.Errorf("rendered text missing venue name: %q", text)
	}
}

func TestSearchPastVenues_TokensMatchConjunctively(t *testing.T) {
	t.Parallel()

	// "blue york" spans name and city of the same venue; "blue amsterdam"
	// spans two different venues and must not match.
	s := newTestSet(venueFixture())

	data, _, err := s.searchPastVenues(context.Background(), SearchPastVenuesInput{Query: "blue york"})
	if err != nil {
		t.Fatalf("searchPastVenues: %v", err)
	}
	if len(data.Results) != 1 || data.Results[0].VenueID != "v-blue" {
		t.Fatalf("results = %+v, want only v-blue", data.Results)
	}

	data, _, err = s.searchPastVenues(context.Background(), SearchPastVenuesInput{Query: "blue amsterdam"})
	if err != nil {
		t.Fatalf("searchPastVenues: %v", err)
	}
	if len(data.Results) != 0 {
		t.Fatalf("results = %+v, want none", data.Results)
	}
}

func TestSearchPastVenues_LimitKeepsTotal(t *testing.T) {
	t.Parallel()

	data, _, err := newTestSet(venueFixture()).searchPastVenues(context.Background(), SearchPastVenuesInput{Query: "show", Limit: 1})
	if err != nil {
		t.Fatalf("searchPastVenues: %v", err)
	}
	// "show" matches nothing; re-run with a broad query.
	if len(data.Results) != 0 {
		t.Fatalf("unexpected matches for %q", "show")
	}

	data, _, err = newTestSet(venueFixture()).searchPastVenues(context.Background(), SearchPastVenuesInput{Query: "ne", Limit: 1})
	if err != nil {
		t.Fatalf("searchPastVenues: %v", err)
	}
	if data.TotalFound != 2 || len(data.Results) != 1 {
		t.Fatalf("total %d shown %d, want 2/1", data.TotalFound, len(data.Results))
	}
	// Paradiso played on two tours outranks Blue Note's one.
	if data.Results[0].VenueID != "v-para" {
		t.Errorf("top result = %q, want v-para", data.Results[0].VenueID)
	}
}

func TestSearchPastVenues_PinnedTourSkipsListing(t *testing.T) {
	t.Parallel()

	f := venueFixture()
	f.toursErr = &mastertour.APIError{Kind: mastertour.KindAPI, StatusCode: 500, Message: "must not be called"}
	s := newTestSet(f)

	data, _, err := s.searchPastVenues(context.Background(), SearchPastVenuesInput{Query: "para", TourID: "t1"})
	if err != nil {
		t.Fatalf("searchPastVenues: %v", err)
	}
	if f.listCalls != 0 {
		t.Errorf("ListTours called %d times with a pinned tour", f.listCalls)
	}
	if data.ToursSearched != 1 {
		t.Errorf("ToursSearched = %d, want 1", data.ToursSearched)
	}
	if len(data.Results) != 1 || data.Results[0].TimesUsed != 1 {
		t.Errorf("results = %+v, want Paradiso once", data.Results)
	}
}

func TestSearchPastVenues_DefaultTourDoesNotScope(t *testing.T) {
	t.Parallel()

	// The configured default tour only backs tools that require a tourId;
	// the search still spans every accessible tour.
	s := newTestSet(venueFixture(), WithDefaultTourID("t1"))

	data, _, err := s.searchPastVenues(context.Background(), SearchPastVenuesInput{Query: "para"})
	if err != nil {
		t.Fatalf("searchPastVenues: %v", err)
	}
	if data.ToursSearched != 2 {
		t.Errorf("ToursSearched = %d, want 2", data.ToursSearched)
	}
	if len(data.Results) != 1 || data.Results[0].TimesUsed != 2 {
		t.Errorf("results = %+v, want Paradiso from both tours", data.Results)
	}
}

func TestSearchPastVenues_PunctuationStripped(t *testing.T) {
	t.Parallel()

	f := venueFixture()
	f.all["t1"].Tour.Days = append(f.all["t1"].Tour.Days,
		mastertour.Day{ID: "d5", Name: "Rock & Roll's", DayDate: "2025-10-05 00:00:00", DayType: "Show Day"})
	f.events["d5"] = []mastertour.DayEvent{
		{ID: "e5", VenueID: "v-rock", VenueName: "Rock & Roll's", VenueCity: "Cleveland", VenueState: "OH", VenueCountry: "USA"},
	}
	s := newTestSet(f)

	// Plain "rolls" must reach the apostrophe'd name, and a punctuated
	// query must reach the plain fields.
	for _, query := range []string{"rolls", "roll's cleveland"} {
		data, _, err := s.searchPastVenues(context.Background(), SearchPastVenuesInput{Query: query})
		if err != nil {
			t.Fatalf("searchPastVenues(%q): %v", query, err)
		}
		if len(data.Results) != 1 || data.Results[0].VenueID != "v-rock" {
			t.Errorf("query %q: results = %+v, want only v-rock", query, data.Results)
		}
	}
}

func TestSearchPastVenues_SkipsNamelessVenueRecords(t *testing.T) {
	t.Parallel()

	f := venueFixture()
	f.events["d1"] = append(f.events["d1"],
		mastertour.DayEvent{ID: "e-anon", VenueID: "v-anon", VenueCity: "Amsterdam", VenueCountry: "Netherlands"})
	s := newTestSet(f)

	data, _, err := s.searchPastVenues(context.Background(), SearchPastVenuesInput{Query: "amsterdam"})
	if err != nil {
		t.Fatalf("searchPastVenues: %v", err)
	}
	if len(data.Results) != 1 || data.Results[0].VenueID != "v-para" {
		t.Errorf("results = %+v, want only v-para", data.Results)
	}
}

func TestGetVenueDetails(t *testing.T) {
	t.Parallel()

	s := newTestSet(venueFixture())
	data, text, err := s.getVenueDetails(context.Background(), GetVenueDetailsInput{VenueID: "v-para"})
	if err != nil {
		t.Fatalf("getVenueDetails: %v", err)
	}
	// The 2025-11-15 play is the most recent, so its record (with capacity)
	// is the one surfaced.
	if data.Venue.VenueCapacity != "1500" {
		t.Errorf("VenueCapacity = %q, want the most recent event's record", data.Venue.VenueCapacity)
	}
	if data.LastUsed != "2025-11-15" {
		t.Errorf("LastUsed = %q", data.LastUsed)
	}
	if !strings.Contains(text, "Capacity: 1500") {
		t.Errorf("rendered text missing capacity: %q", text)
	}

	_, _, err = s.getVenueDetails(context.Background(), GetVenueDetailsInput{VenueID: "v-nope"})
	if !IsValidation(err) {
		t.Fatalf("unknown venue: err = %v, want validation error", err)
	}
	if !strings.Contains(err.Error(), "search_past_venues") {
		t.Errorf("error should point at search_past_venues: %v", err)
	}

	_, _, err = s.getVenueDetails(context.Background(), GetVenueDetailsInput{})
	if !IsValidation(err) {
		t.Fatalf("empty id: err = %v, want validation error", err)
	}
}
