package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/tourwire/mastertour-mcp/internal/format"
	"github.com/tourwire/mastertour-mcp/internal/localtime"
	"github.com/tourwire/mastertour-mcp/internal/mastertour"
)

// GetTourHotelsInput is the input for the get_tour_hotels tool.
type GetTourHotelsInput struct {
	TourID string `json:"tourId,omitempty" jsonschema:"Tour to read. Falls back to the configured default tour."`
}

// TourHotelsData is the structured output of get_tour_hotels.
type TourHotelsData struct {
	Tour string                `json:"tour"`
	Days []mastertour.HotelDay `json:"days"`
}

// getTourHotels lists the hotel bookings (or free-text hotel notes) for each
// day of a tour that has any.
func (s *Set) getTourHotels(ctx context.Context, in GetTourHotelsInput) (*TourHotelsData, string, error) {
	tourID, err := s.resolveTourID(in.TourID)
	if err != nil {
		return nil, "", err
	}

	th, err := s.client.GetTourHotels(ctx, tourID)
	if err != nil {
		return nil, "", err
	}

	days := make([]mastertour.HotelDay, 0, len(th.Days))
	for _, d := range th.Days {
		if len(d.Hotels) == 0 && strings.TrimSpace(d.HotelNotes) == "" {
			continue
		}
		days = append(days, d)
	}

	data := &TourHotelsData{Tour: tourLabel(th.Tour), Days: days}
	return data, renderTourHotels(data), nil
}

func renderTourHotels(d *TourHotelsData) string {
	if len(d.Days) == 0 {
		return fmt.Sprintf("No hotel information on file for %s.", d.Tour)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🏨 Hotels — %s\n", d.Tour)
	for _, day := range d.Days {
		fmt.Fprintf(&b, "\n📅 %s", format.Date(localtime.DateOnly(day.DayDate)))
		if loc := format.Location(day.City, day.State, ""); loc != "" {
			fmt.Fprintf(&b, " — %s", loc)
		}
		b.WriteString("\n")
		for _, h := range day.Hotels {
			fmt.Fprintf(&b, "  🏨 %s", format.Field(h.Name))
			if h.City != "" {
				fmt.Fprintf(&b, ", %s", format.Field(h.City))
			}
			b.WriteString("\n")
			if h.Address != "" {
				fmt.Fprintf(&b, "     %s\n", format.Field(h.Address))
			}
			if h.Phone != "" {
				fmt.Fprintf(&b, "     ☎️ %s\n", format.Field(h.Phone))
			}
			if h.CheckIn != "" || h.CheckOut != "" {
				fmt.Fprintf(&b, "     Check-in %s · Check-out %s\n", h.CheckIn, h.CheckOut)
			}
			if h.ConfirmationNumber != "" {
				fmt.Fprintf(&b, "     Confirmation: %s\n", h.ConfirmationNumber)
			}
			fmt.Fprintf(&b, "     Hotel ID: %s\n", h.ID)
		}
		if notes := format.Field(day.HotelNotes); notes != "" {
			fmt.Fprintf(&b, "  📝 %s\n", notes)
		}
	}
	return b.String()
}

// GetHotelRoomlistInput is the input for the get_hotel_roomlist tool.
type GetHotelRoomlistInput struct {
	HotelID string `json:"hotelId" jsonschema:"Id of the hotel booking, as shown by get_tour_hotels."`
}

// RoomlistData is the structured output of get_hotel_roomlist.
type RoomlistData struct {
	HotelName string                      `json:"hotelName"`
	Rooms     []mastertour.RoomAssignment `json:"rooms"`
}

// getHotelRoomlist reads the room assignments for one hotel booking.
func (s *Set) getHotelRoomlist(ctx context.Context, in GetHotelRoomlistInput) (*RoomlistData, string, error) {
	if strings.TrimSpace(in.HotelID) == "" {
		return nil, "", validationf("hotelId is required")
	}

	rl, err := s.client.GetHotelRoomlist(ctx, in.HotelID)
	if err != nil {
		return nil, "", err
	}

	data := &RoomlistData{HotelName: format.Field(rl.HotelName), Rooms: rl.Rooms}
	return data, renderRoomlist(data), nil
}

func renderRoomlist(d *RoomlistData) string {
	if len(d.Rooms) == 0 {
		return fmt.Sprintf("No room assignments on file for %s.", d.HotelName)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🛏️ Room list — %s (%d room(s))\n", d.HotelName, len(d.Rooms))
	for _, r := range d.Rooms {
		fmt.Fprintf(&b, "\n  Room %s", r.RoomNumber)
		if r.RoomType != "" {
			fmt.Fprintf(&b, " (%s)", r.RoomType)
		}
		fmt.Fprintf(&b, " — %s\n", format.Field(r.GuestName))
		if r.CheckIn != "" || r.CheckOut != "" {
			fmt.Fprintf(&b, "     %s → %s\n", r.CheckIn, r.CheckOut)
		}
		if r.ConfirmationNumber != "" {
			fmt.Fprintf(&b, "     Confirmation: %s\n", r.ConfirmationNumber)
		}
		if notes := format.Field(r.Notes); notes != "" {
			fmt.Fprintf(&b, "     📝 %s\n", notes)
		}
	}
	return b.String()
}

// GetHotelContactsInput is the input for the get_hotel_contacts tool.
type GetHotelContactsInput struct {
	HotelID string `json:"hotelId" jsonschema:"Id of the hotel booking, as shown by get_tour_hotels."`
}

// HotelContactsData is the structured output of get_hotel_contacts.
type HotelContactsData struct {
	HotelName string                        `json:"hotelName"`
	Contacts  []mastertour.DirectoryContact `json:"contacts"`
}

// getHotelContacts reads the contact directory for one hotel booking.
func (s *Set) getHotelContacts(ctx context.Context, in GetHotelContactsInput) (*HotelContactsData, string, error) {
	if strings.TrimSpace(in.HotelID) == "" {
		return nil, "", validationf("hotelId is required")
	}

	hc, err := s.client.GetHotelContacts(ctx, in.HotelID)
	if err != nil {
		return nil, "", err
	}

	data := &HotelContactsData{HotelName: format.Field(hc.HotelName), Contacts: hc.Contacts}
	if len(data.Contacts) == 0 {
		return data, fmt.Sprintf("No contacts on file for %s.", data.HotelName), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👥 Contacts — %s\n", data.HotelName)
	writeDirectory(&b, data.Contacts)
	return data, b.String(), nil
}

func writeDirectory(b *strings.Builder, contacts []mastertour.DirectoryContact) {
	for _, c := range contacts {
		fmt.Fprintf(b, "\n  • %s", format.Field(c.Name))
		if t := format.Field(c.Title); t != "" {
			fmt.Fprintf(b, " — %s", t)
		}
		b.WriteString("\n")
		if c.Phone != "" {
			fmt.Fprintf(b, "     ☎️ %s\n", format.Field(c.Phone))
		}
		if c.Email != "" {
			fmt.Fprintf(b, "     ✉️ %s\n", format.Field(c.Email))
		}
		if c.Fax != "" {
			fmt.Fprintf(b, "     📠 %s\n", format.Field(c.Fax))
		}
	}
}
