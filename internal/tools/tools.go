// Package tools implements the MCP tool surface over the Master Tour API:
// read/report tools, venue and show aggregations built on the tour iterator,
// and schedule/notes/guest-list mutations.
//
// Every tool returns a structured data payload together with a rendered text
// summary, and every input is validated before any network I/O happens.
package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tourwire/mastertour-mcp/internal/mastertour"
	"github.com/tourwire/mastertour-mcp/internal/observe"
)

// Client is the slice of the Master Tour API client the tool layer consumes.
// *mastertour.Client satisfies it; tests substitute fakes.
type Client interface {
	ListTours(ctx context.Context) ([]mastertour.Tour, error)
	GetDay(ctx context.Context, dayID string) (*mastertour.DayResponse, error)
	GetTourSummary(ctx context.Context, tourID, date string) ([]mastertour.DaySummary, error)
	GetTourHotels(ctx context.Context, tourID string) (*mastertour.TourHotels, error)
	GetTourCrew(ctx context.Context, tourID string) ([]mastertour.CrewMember, error)
	GetTourEvents(ctx context.Context, tourID string) (*mastertour.TourEvents, error)
	GetTourAll(ctx context.Context, tourID string) (*mastertour.TourAll, error)
	GetDayEvents(ctx context.Context, dayID string) ([]mastertour.DayEvent, error)
	GetEventGuestlist(ctx context.Context, eventID string) (*mastertour.Guestlist, error)
	CreateGuestRequest(ctx context.Context, p mastertour.CreateGuestRequestParams) (*mastertour.GuestRequestRef, error)
	UpdateGuestRequest(ctx context.Context, p mastertour.UpdateGuestRequestParams) error
	GetEventSetlist(ctx context.Context, eventID string) (*mastertour.Setlist, error)
	GetHotelRoomlist(ctx context.Context, hotelID string) (*mastertour.RoomList, error)
	GetHotelContacts(ctx context.Context, hotelID string) (*mastertour.HotelContacts, error)
	GetCompanyContacts(ctx context.Context, companyID string) (*mastertour.CompanyContacts, error)
	GetPushHistory(ctx context.Context) ([]mastertour.PushNotification, error)
	CreateScheduleItem(ctx context.Context, p mastertour.CreateScheduleItemParams) (*mastertour.ScheduleItemRef, error)
	UpdateScheduleItem(ctx context.Context, p mastertour.UpdateScheduleItemParams) error
	DeleteScheduleItem(ctx context.Context, itemID string) error
	UpdateDayNotes(ctx context.Context, dayID string, p mastertour.UpdateDayNotesParams) error
}

// Set holds the dependencies shared by all tool handlers.
type Set struct {
	client        Client
	defaultTourID string
	now           func() time.Time
	metrics       *observe.Metrics
}

// SetOption configures a [Set].
type SetOption func(*Set)

// WithDefaultTourID pins tour-scoped tools to one tour when the call omits a
// tour id, and restricts aggregations to that tour.
func WithDefaultTourID(id string) SetOption {
	return func(s *Set) { s.defaultTourID = id }
}

// WithNow overrides the clock used for "today" calculations. For tests.
func WithNow(now func() time.Time) SetOption {
	return func(s *Set) { s.now = now }
}

// WithMetrics attaches per-tool-call metrics.
func WithMetrics(m *observe.Metrics) SetOption {
	return func(s *Set) { s.metrics = m }
}

// NewSet creates a tool set backed by c.
func NewSet(c Client, opts ...SetOption) *Set {
	s := &Set{
		client: c,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// today returns the current date as "YYYY-MM-DD".
func (s *Set) today() string {
	return s.now().Format("2006-01-02")
}

// resolveTourID picks the explicit tour id when given, falling back to the
// configured default. An empty result is a validation error.
func (s *Set) resolveTourID(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if s.defaultTourID != "" {
		return s.defaultTourID, nil
	}
	return "", validationf("tourId is required: pass it explicitly or set %s", "MASTERTOUR_DEFAULT_TOUR_ID")
}

// tourLabel renders a tour header the way the iterator labels tours.
func tourLabel(t mastertour.TourDetail) string {
	switch {
	case t.ArtistName == "" && t.LegName == "":
		return "Unknown Tour"
	case t.LegName == "":
		return t.ArtistName
	case t.ArtistName == "":
		return t.LegName
	}
	return t.ArtistName + " - " + t.LegName
}

// ValidationError marks input rejected before any I/O. It surfaces as a tool
// error with the message verbatim.
type ValidationError struct {
	Msg string
}

// Error implements the error interface.
func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a pre-I/O input rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// errorText renders err for the MCP host: validation messages and classified
// API messages verbatim, anything else behind a generic prefix.
func errorText(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Msg
	}
	var ae *mastertour.APIError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "unexpected error: " + err.Error()
}

// errorStatus labels err for metrics and logs.
func errorStatus(err error) string {
	if IsValidation(err) {
		return "validation"
	}
	var ae *mastertour.APIError
	if errors.As(err, &ae) {
		return ae.Kind.String()
	}
	return "error"
}
