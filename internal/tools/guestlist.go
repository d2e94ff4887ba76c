package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tourwire/mastertour-mcp/internal/format"
	"github.com/tourwire/mastertour-mcp/internal/mastertour"
)

// GetEventGuestlistInput is the input for the get_event_guestlist tool.
type GetEventGuestlistInput struct {
	EventID string `json:"eventId" jsonschema:"Id of the event whose guest list to read."`
}

// GuestGroup holds the guest requests sharing one status.
type GuestGroup struct {
	Status  string                    `json:"status"`
	Guests  []mastertour.GuestRequest `json:"guests"`
	Tickets int                       `json:"tickets"`
}

// GuestlistData is the structured output of get_event_guestlist.
type GuestlistData struct {
	EventName    string       `json:"eventName"`
	Date         string       `json:"date"`
	Groups       []GuestGroup `json:"groups"`
	TotalGuests  int          `json:"totalGuests"`
	TotalTickets int          `json:"totalTickets"`
}

// getEventGuestlist reads an event's guest list grouped by request status.
func (s *Set) getEventGuestlist(ctx context.Context, in GetEventGuestlistInput) (*GuestlistData, string, error) {
	if strings.TrimSpace(in.EventID) == "" {
		return nil, "", validationf("eventId is required")
	}

	gl, err := s.client.GetEventGuestlist(ctx, in.EventID)
	if err != nil {
		return nil, "", err
	}

	byStatus := make(map[string][]mastertour.GuestRequest)
	totalTickets := 0
	for _, g := range gl.Guests {
		status := g.Status
		if status == "" {
			status = "pending"
		}
		byStatus[status] = append(byStatus[status], g)
		totalTickets += g.Tickets
	}

	statuses := make([]string, 0, len(byStatus))
	for st := range byStatus {
		statuses = append(statuses, st)
	}
	sort.Strings(statuses)

	groups := make([]GuestGroup, 0, len(statuses))
	for _, st := range statuses {
		guests := byStatus[st]
		sort.Slice(guests, func(i, j int) bool { return guests[i].Name < guests[j].Name })
		tickets := 0
		for _, g := range guests {
			tickets += g.Tickets
		}
		groups = append(groups, GuestGroup{Status: st, Guests: guests, Tickets: tickets})
	}

	data := &GuestlistData{
		EventName:    format.Field(gl.EventName),
		Date:         gl.Date,
		Groups:       groups,
		TotalGuests:  len(gl.Guests),
		TotalTickets: totalTickets,
	}
	return data, renderGuestlist(data), nil
}

func renderGuestlist(d *GuestlistData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎟️ Guest list — %s", d.EventName)
	if d.Date != "" {
		fmt.Fprintf(&b, " (%s)", format.Date(d.Date))
	}
	fmt.Fprintf(&b, "\n%d guest(s), %d ticket(s) total\n", d.TotalGuests, d.TotalTickets)
	if d.TotalGuests == 0 {
		b.WriteString("\nNo guest requests yet.\n")
		return b.String()
	}
	for _, g := range d.Groups {
		fmt.Fprintf(&b, "\n%s %s (%d ticket(s)):\n", statusEmoji(g.Status), strings.ToUpper(g.Status[:1])+g.Status[1:], g.Tickets)
		for _, guest := range g.Guests {
			fmt.Fprintf(&b, "  • %s ×%d", format.Field(guest.Name), guest.Tickets)
			if guest.WillCall {
				b.WriteString(" (will call)")
			}
			if guest.RequestedBy != "" {
				fmt.Fprintf(&b, " — requested by %s", format.Field(guest.RequestedBy))
			}
			if guest.Notes != "" {
				fmt.Fprintf(&b, " — %s", format.Field(guest.Notes))
			}
			fmt.Fprintf(&b, " [id %s]\n", guest.ID)
		}
	}
	return b.String()
}

func statusEmoji(status string) string {
	switch strings.ToLower(status) {
	case "approved", "confirmed":
		return "✅"
	case "denied", "rejected":
		return "❌"
	default:
		return "⏳"
	}
}

// AddGuestRequestInput is the input for the add_guest_request tool.
type AddGuestRequestInput struct {
	EventID  string `json:"eventId" jsonschema:"Id of the event to add the guest to."`
	Name     string `json:"name" jsonschema:"Guest name."`
	Tickets  int    `json:"tickets" jsonschema:"Number of tickets, at least 1."`
	Notes    string `json:"notes,omitempty" jsonschema:"Free-text notes for the request."`
	WillCall bool   `json:"willCall,omitempty" jsonschema:"Leave tickets at will call."`
}

// GuestMutationData is the structured output of the guest list mutations.
type GuestMutationData struct {
	GuestRequestID string `json:"guestRequestId"`
	EventID        string `json:"eventId,omitempty"`
	Name           string `json:"name,omitempty"`
}

// addGuestRequest adds a guest to an event's list.
func (s *Set) addGuestRequest(ctx context.Context, in AddGuestRequestInput) (*GuestMutationData, string, error) {
	if strings.TrimSpace(in.EventID) == "" {
		return nil, "", validationf("eventId is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, "", validationf("name is required")
	}
	if in.Tickets < 1 {
		return nil, "", validationf("tickets must be at least 1")
	}

	ref, err := s.client.CreateGuestRequest(ctx, mastertour.CreateGuestRequestParams{
		EventID:  in.EventID,
		Name:     in.Name,
		Tickets:  in.Tickets,
		Notes:    in.Notes,
		WillCall: in.WillCall,
	})
	if err != nil {
		return nil, "", err
	}

	data := &GuestMutationData{GuestRequestID: ref.ID, EventID: in.EventID, Name: in.Name}
	return data, fmt.Sprintf("✅ Added %s (×%d) to the guest list.", in.Name, in.Tickets), nil
}

// UpdateGuestRequestInput is the input for the update_guest_request tool.
// Omitted fields keep their current values.
type UpdateGuestRequestInput struct {
	GuestRequestID string  `json:"guestRequestId" jsonschema:"Id of the guest request to update."`
	Name           *string `json:"name,omitempty" jsonschema:"New guest name."`
	Tickets        *int    `json:"tickets,omitempty" jsonschema:"New ticket count, at least 1."`
	Status         *string `json:"status,omitempty" jsonschema:"New status, e.g. approved or denied."`
	Notes          *string `json:"notes,omitempty" jsonschema:"New notes."`
	WillCall       *bool   `json:"willCall,omitempty" jsonschema:"New will-call flag."`
}

// updateGuestRequest modifies an existing guest list entry.
func (s *Set) updateGuestRequest(ctx context.Context, in UpdateGuestRequestInput) (*GuestMutationData, string, error) {
	if strings.TrimSpace(in.GuestRequestID) == "" {
		return nil, "", validationf("guestRequestId is required")
	}
	if in.Name == nil && in.Tickets == nil && in.Status == nil && in.Notes == nil && in.WillCall == nil {
		return nil, "", validationf("nothing to update: pass at least one of name, tickets, status, notes, willCall")
	}
	if in.Tickets != nil && *in.Tickets < 1 {
		return nil, "", validationf("tickets must be at least 1")
	}

	err := s.client.UpdateGuestRequest(ctx, mastertour.UpdateGuestRequestParams{
		ID:       in.GuestRequestID,
		Name:     in.Name,
		Tickets:  in.Tickets,
		Status:   in.Status,
		Notes:    in.Notes,
		WillCall: in.WillCall,
	})
	if err != nil {
		return nil, "", err
	}

	data := &GuestMutationData{GuestRequestID: in.GuestRequestID}
	return data, "✅ Guest request updated.", nil
}
