package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// handler is the shape every tool method on [Set] has: structured data plus a
// rendered text summary, or an error.
type handler[In, Out any] func(ctx context.Context, in In) (Out, string, error)

// Register wires every tool onto srv. It panics if a tool's input type cannot
// produce a JSON schema, which only happens on a programming error.
func Register(srv *mcp.Server, set *Set) {
	register(srv, set, "list_tours",
		"List every tour the authenticated account can access, grouped by organization with edit/read-only markers.",
		set.listTours)
	register(srv, set, "get_today_schedule",
		"Read a tour's itinerary for one day (default today): schedule items with local times, day type and venue.",
		set.getTodaySchedule)
	register(srv, set, "search_past_venues",
		"Search venues the tours have played before, by name or location. Ranked by how often and how recently they were used.",
		set.searchPastVenues)
	register(srv, set, "get_venue_details",
		"Read full venue details for a past show day: contacts, production, facilities, equipment, crew and logistics.",
		set.getVenueDetails)
	register(srv, set, "get_upcoming_shows",
		"List upcoming show days across accessible tours, soonest first, optionally limited to a window of days ahead.",
		set.getUpcomingShows)
	register(srv, set, "add_schedule_item",
		"Add a schedule item to a day. Times are given in the day's local time zone.",
		set.addScheduleItem)
	register(srv, set, "update_schedule_item",
		"Update a schedule item's title, details or times. Only the fields passed change.",
		set.updateScheduleItem)
	register(srv, set, "delete_schedule_item",
		"Delete a schedule item from a day.",
		set.deleteScheduleItem)
	register(srv, set, "update_day_notes",
		"Update a day's general, hotel or travel notes. Only the notes passed change.",
		set.updateDayNotes)
	register(srv, set, "get_event_guestlist",
		"Read an event's guest list grouped by request status, with ticket totals.",
		set.getEventGuestlist)
	register(srv, set, "add_guest_request",
		"Add a guest request to an event's guest list.",
		set.addGuestRequest)
	register(srv, set, "update_guest_request",
		"Update a guest request's name, ticket count, status or notes. Only the fields passed change.",
		set.updateGuestRequest)
	register(srv, set, "get_event_setlist",
		"Read an event's setlist split into main set and encore, with an estimated running time.",
		set.getEventSetlist)
	register(srv, set, "get_tour_hotels",
		"List a tour's hotel stays by day, with check-in/check-out details and notes.",
		set.getTourHotels)
	register(srv, set, "get_hotel_roomlist",
		"Read a hotel's rooming list: who is in which room, with confirmation numbers.",
		set.getHotelRoomlist)
	register(srv, set, "get_hotel_contacts",
		"Read a hotel's contact directory.",
		set.getHotelContacts)
	register(srv, set, "get_tour_crew",
		"List a tour's crew grouped by job title.",
		set.getTourCrew)
	register(srv, set, "get_tour_events",
		"List a tour's itinerary days in date order, optionally show days only.",
		set.getTourEvents)
	register(srv, set, "get_company_contacts",
		"Read a company's contact directory grouped by department.",
		set.getCompanyContacts)
	register(srv, set, "get_push_notifications",
		"List previously sent push notifications, most recent first.",
		set.getPushNotifications)
}

// register adds one tool to srv, wrapping h with logging and metrics.
//
// Validation and API errors come back as tool results with IsError set so the
// calling assistant can read the message and correct itself; they are never
// surfaced as protocol errors.
func register[In, Out any](srv *mcp.Server, set *Set, name, desc string, h handler[In, Out]) {
	schema, err := jsonschema.For[In](nil)
	if err != nil {
		panic(fmt.Sprintf("tools: schema for %s: %v", name, err))
	}
	tool := &mcp.Tool{
		Name:        name,
		Description: desc,
		InputSchema: schema,
	}
	mcp.AddTool(srv, tool, func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
		start := time.Now()
		data, text, err := h(ctx, in)
		elapsed := time.Since(start)

		status := "ok"
		if err != nil {
			status = errorStatus(err)
		}
		if set.metrics != nil {
			set.metrics.RecordToolCall(ctx, name, status, elapsed.Seconds())
		}

		if err != nil {
			slog.WarnContext(ctx, "tool call failed",
				slog.String("tool", name),
				slog.String("status", status),
				slog.Duration("duration", elapsed),
				slog.String("error", err.Error()))
			var zero Out
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: errorText(err)}},
			}, zero, nil
		}

		slog.DebugContext(ctx, "tool call",
			slog.String("tool", name),
			slog.Duration("duration", elapsed))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, data, nil
	})
}
