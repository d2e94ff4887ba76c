package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tourwire/mastertour-mcp/internal/format"
	"github.com/tourwire/mastertour-mcp/internal/localtime"
	"github.com/tourwire/mastertour-mcp/internal/mastertour"
	"github.com/tourwire/mastertour-mcp/internal/touriter"
)

// defaultVenueLimit caps search results when the call does not set a limit.
const defaultVenueLimit = 10

// SearchPastVenuesInput is the input for the search_past_venues tool.
type SearchPastVenuesInput struct {
	Query  string `json:"query" jsonschema:"Search text matched against venue name, city, state, and country. At least 2 characters."`
	TourID string `json:"tourId,omitempty" jsonschema:"Restrict the search to one tour. All accessible tours are searched when omitted."`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of results to return. Default 10."`
}

// VenueMatch is one ranked venue in the search output.
type VenueMatch struct {
	VenueID   string   `json:"venueId"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	LastUsed  string   `json:"lastUsed"`
	Tours     []string `json:"tours"`
	TimesUsed int      `json:"timesUsed"`
}

// VenueSearchData is the structured output of search_past_venues.
type VenueSearchData struct {
	Query         string       `json:"query"`
	Results       []VenueMatch `json:"results"`
	TotalFound    int          `json:"totalFound"`
	ToursSearched int          `json:"toursSearched"`
}

// knownVenue accumulates per-invocation state for one venue across every day
// it appears on. No state survives the call.
type knownVenue struct {
	event     mastertour.DayEvent
	lastUsed  string
	tours     map[string]bool
	timesUsed int
}

// searchPastVenues sweeps every day with a venue across the tours in scope,
// de-duplicates by venue id, and ranks matches.
func (s *Set) searchPastVenues(ctx context.Context, in SearchPastVenuesInput) (*VenueSearchData, string, error) {
	query := strings.TrimSpace(in.Query)
	if len(query) < 2 {
		return nil, "", validationf("query must be at least 2 characters")
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultVenueLimit
	}

	venues, toursSearched, err := s.collectVenues(ctx, in.TourID)
	if err != nil {
		return nil, "", err
	}

	tokens := format.Tokens(query)
	var matches []VenueMatch
	for id, v := range venues {
		haystack := format.Normalize(strings.Join([]string{
			v.event.VenueName, v.event.VenueCity, v.event.VenueState, v.event.VenueCountry,
		}, " "))
		ok := true
		for _, tok := range tokens {
			if !strings.Contains(haystack, tok) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		tours := make([]string, 0, len(v.tours))
		for label := range v.tours {
			tours = append(tours, label)
		}
		sort.Strings(tours)

		matches = append(matches, VenueMatch{
			VenueID:   id,
			Name:      format.Field(v.event.VenueName),
			Location:  format.Location(v.event.VenueCity, v.event.VenueState, v.event.VenueCountry),
			LastUsed:  v.lastUsed,
			Tours:     tours,
			TimesUsed: v.timesUsed,
		})
	}

	// Most tours first, most recent use second, venue id as the final
	// tiebreak so equal inputs always rank identically.
	sort.Slice(matches, func(i, j int) bool {
		if len(matches[i].Tours) != len(matches[j].Tours) {
			return len(matches[i].Tours) > len(matches[j].Tours)
		}
		if matches[i].LastUsed != matches[j].LastUsed {
			return matches[i].LastUsed > matches[j].LastUsed
		}
		return matches[i].VenueID < matches[j].VenueID
	})

	total := len(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	data := &VenueSearchData{
		Query:         query,
		Results:       matches,
		TotalFound:    total,
		ToursSearched: toursSearched,
	}
	return data, renderVenueSearch(data), nil
}

// collectVenues walks every day with a venue and upserts a per-invocation
// venue map keyed by venue id. An empty tourID spans every accessible tour.
func (s *Set) collectVenues(ctx context.Context, tourID string) (map[string]*knownVenue, int, error) {
	seq, err := touriter.Days(ctx, s.client, touriter.Options{
		TourID:         tourID,
		OnlyWithVenues: true,
	})
	if err != nil {
		return nil, 0, err
	}

	venues := make(map[string]*knownVenue)
	for td := range seq {
		for _, ev := range touriter.DayEventsSafe(ctx, s.client, td.Day.ID) {
			if ev.VenueID == "" || ev.VenueName == "" {
				continue
			}
			date := localtime.DateOnly(td.Day.DayDate)
			v, ok := venues[ev.VenueID]
			if !ok {
				v = &knownVenue{event: ev, tours: make(map[string]bool)}
				venues[ev.VenueID] = v
			}
			if date > v.lastUsed {
				v.lastUsed = date
				v.event = ev
			}
			v.tours[td.Label()] = true
			v.timesUsed++
		}
	}

	count, err := touriter.CountAccessibleTours(ctx, s.client, tourID)
	if err != nil {
		return nil, 0, err
	}
	return venues, count, nil
}

func renderVenueSearch(d *VenueSearchData) string {
	if len(d.Results) == 0 {
		return fmt.Sprintf("No venues matching %q found across %d tour(s).", d.Query, d.ToursSearched)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Found %d venue(s) matching %q (showing %d, searched %d tour(s)):\n",
		d.TotalFound, d.Query, len(d.Results), d.ToursSearched)
	for i, m := range d.Results {
		fmt.Fprintf(&b, "\n%d. 🏟️ %s", i+1, m.Name)
		if m.Location != "" {
			fmt.Fprintf(&b, " — %s", m.Location)
		}
		fmt.Fprintf(&b, "\n   Last used: %s · %d visit(s) · Tours: %s",
			format.Date(m.LastUsed), m.TimesUsed, strings.Join(m.Tours, "; "))
		fmt.Fprintf(&b, "\n   Venue ID: %s\n", m.VenueID)
	}
	return b.String()
}

// GetVenueDetailsInput is the input for the get_venue_details tool.
type GetVenueDetailsInput struct {
	VenueID string `json:"venueId" jsonschema:"Venue id as returned by search_past_venues."`
}

// VenueDetailsData is the structured output of get_venue_details.
type VenueDetailsData struct {
	Venue    mastertour.DayEvent `json:"venue"`
	LastUsed string              `json:"lastUsed"`
	Tours    []string            `json:"tours"`
}

// getVenueDetails finds the most recent event for a venue id and renders
// everything the API knows about the venue.
func (s *Set) getVenueDetails(ctx context.Context, in GetVenueDetailsInput) (*VenueDetailsData, string, error) {
	if strings.TrimSpace(in.VenueID) == "" {
		return nil, "", validationf("venueId is required")
	}

	venues, _, err := s.collectVenues(ctx, "")
	if err != nil {
		return nil, "", err
	}
	v, ok := venues[in.VenueID]
	if !ok {
		return nil, "", validationf("no venue with id %q found in your tour history; use search_past_venues to find venue ids", in.VenueID)
	}

	tours := make([]string, 0, len(v.tours))
	for label := range v.tours {
		tours = append(tours, label)
	}
	sort.Strings(tours)

	data := &VenueDetailsData{Venue: v.event, LastUsed: v.lastUsed, Tours: tours}
	return data, renderVenueDetails(data), nil
}

func renderVenueDetails(d *VenueDetailsData) string {
	ev := d.Venue
	var b strings.Builder

	fmt.Fprintf(&b, "🏟️ %s\n", format.Field(ev.VenueName))
	if loc := format.Location(ev.VenueCity, ev.VenueState, ev.VenueCountry); loc != "" {
		fmt.Fprintf(&b, "📍 %s\n", loc)
	}
	if ev.VenueAddressLine1 != "" {
		fmt.Fprintf(&b, "   %s\n", format.Field(ev.VenueAddressLine1))
	}
	if ev.VenueAddressLine2 != "" {
		fmt.Fprintf(&b, "   %s\n", format.Field(ev.VenueAddressLine2))
	}
	fmt.Fprintf(&b, "Last used: %s · Tours: %s\n", format.Date(d.LastUsed), strings.Join(d.Tours, "; "))

	writeLine := func(label, val string) {
		if v := format.Field(val); v != "" {
			fmt.Fprintf(&b, "  %s: %s\n", label, v)
		}
	}

	b.WriteString("\nℹ️ Venue Info\n")
	writeLine("Capacity", ev.VenueCapacity)
	writeLine("Type", ev.VenueType)
	writeLine("Age requirement", ev.VenueAgeRequirement)
	writeLine("Website", ev.VenuePrimaryURL)
	writeLine("Email", ev.VenuePrimaryEmail)
	writeLine("Time zone", ev.VenueTimeZone)

	if len(ev.VenueContacts) > 0 {
		b.WriteString("\n👥 Contacts\n")
		for _, c := range ev.VenueContacts {
			writeContact(&b, c)
		}
	}
	if p := ev.VenueProduction; p != nil {
		b.WriteString("\n🔧 Production\n")
		if p.DimensionsW != "" || p.DimensionsD != "" || p.DimensionsH != "" {
			fmt.Fprintf(&b, "  Stage (W×D×H): %s × %s × %s\n", p.DimensionsW, p.DimensionsD, p.DimensionsH)
		}
		writeLine("Deck to grid", p.DeckToGrid)
		writeLine("Trim height", p.TrimHeight)
		writeLine("Access", p.Access)
		writeLine("Dock", p.DockType)
		writeLine("Rigging", p.RiggingComments)
		writeLine("Power", p.PowerComments)
	}
	if f := ev.VenueFacilities; f != nil {
		b.WriteString("\n🚪 Facilities\n")
		writeLine("Dressing rooms", f.DressingRooms)
		writeLine("Showers", f.Showers)
		writeLine("Truck parking", f.TruckParking)
		writeLine("Bus parking", f.BusParking)
		writeLine("Guest parking", f.GuestParking)
		writeLine("Parking notes", f.ParkingComments)
	}
	if e := ev.VenueEquipment; e != nil {
		b.WriteString("\n🎛️ House Equipment\n")
		writeLine("Audio", e.Audio)
		writeLine("Lighting", e.Lighting)
		writeLine("Video", e.Video)
		writeLine("Backline", e.Backline)
		writeLine("Staging", e.Staging)
	}
	if c := ev.VenueLocalCrew; c != nil {
		b.WriteString("\n💪 Local Crew\n")
		writeLine("Union", c.LocalUnion)
		writeLine("Minimum in", c.MinimumIn)
		writeLine("Minimum out", c.MinimumOut)
		writeLine("Penalties", c.Penalties)
		writeLine("Notes", c.CrewComments)
	}
	if l := ev.VenueLogistics; l != nil {
		b.WriteString("\n🚚 Logistics\n")
		writeLine("Directions", l.Directions)
		writeLine("Closest city", l.ClosestCity)
		writeLine("Airport", l.AirportNotes)
		writeLine("Ground transport", l.GroundTransport)
		writeLine("Area hotels", l.AreaHotels)
		writeLine("Area restaurants", l.AreaRestaurants)
	}
	if ev.PromoterName != "" || len(ev.PromoterContacts) > 0 {
		b.WriteString("\n🤝 Promoter\n")
		writeLine("Name", ev.PromoterName)
		if loc := format.Location(ev.PromoterCity, ev.PromoterState, ""); loc != "" {
			fmt.Fprintf(&b, "  Location: %s\n", loc)
		}
		for _, c := range ev.PromoterContacts {
			writeContact(&b, c)
		}
	}
	return b.String()
}

func writeContact(b *strings.Builder, c mastertour.Contact) {
	line := "  • " + format.Field(c.ContactName)
	if t := format.Field(c.Title); t != "" {
		line += " (" + t + ")"
	}
	if p := format.Field(c.Phone); p != "" {
		line += " · " + p
	}
	b.WriteString(line + "\n")
}
