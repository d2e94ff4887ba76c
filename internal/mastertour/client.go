// Package mastertour is a typed client for the Master Tour (Eventric) portal
// REST API.
//
// Every request is signed with two-legged OAuth 1.0a ([Signer]), carries the
// fixed API version query parameter, and unwraps the shared
// {success, message, data} envelope so callers only ever see the inner
// payload. Failures are classified into [APIError] kinds uniformly across all
// endpoints; see [ErrorKind].
package mastertour

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/tourwire/mastertour-mcp/internal/observe"
)

const (
	// DefaultBaseURL is the production Master Tour portal API root.
	DefaultBaseURL = "https://my.eventric.com/portal/api/v5"

	// apiVersion is the literal version query parameter the portal expects
	// on every call.
	apiVersion = "7"

	defaultTimeout = 30 * time.Second
)

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL overrides the API root. Used by tests to point the client at a
// local server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMetrics attaches an observe.Metrics instance so each call records a
// request counter and duration histogram. Without it, calls are unrecorded.
func WithMetrics(m *observe.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// Client issues signed, typed calls against the Master Tour API. It holds no
// per-call state and is safe for concurrent use.
//
// The zero value is not usable; create instances with [NewClient].
type Client struct {
	baseURL    string
	signer     *Signer
	httpClient *http.Client
	metrics    *observe.Metrics
}

// NewClient creates a Client signing with the given credentials.
func NewClient(creds Credentials, opts ...Option) (*Client, error) {
	signer, err := NewSigner(creds)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:    DefaultBaseURL,
		signer:     signer,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// get issues a signed GET for path and decodes the envelope's data field into
// out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// do issues a signed request. body, when non-nil, is JSON-encoded and sent
// with Content-Type: application/json. out, when non-nil, receives the
// decoded envelope data.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	rawURL := c.baseURL + path
	params := url.Values{"version": {apiVersion}}

	auth, err := c.signer.Sign(method, rawURL, params)
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("mastertour: encode %s %s body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL+"?"+params.Encode(), reqBody)
	if err != nil {
		return fmt.Errorf("mastertour: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", auth)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(ctx, method, path, "transport_error", time.Since(start))
		return transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.record(ctx, method, path, "transport_error", time.Since(start))
		return transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Failure bodies usually still carry the envelope; pull the message
		// out for classification when they do.
		var env envelope
		serverMsg := ""
		if json.Unmarshal(raw, &env) == nil {
			serverMsg = env.Message
		}
		apiErr := classify(resp.StatusCode, serverMsg)
		c.record(ctx, method, path, apiErr.Kind.String(), time.Since(start))
		return apiErr
	}
	c.record(ctx, method, path, "ok", time.Since(start))

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("mastertour: decode %s %s envelope: %w", method, path, err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("mastertour: decode %s %s data: %w", method, path, err)
	}
	return nil
}

func (c *Client) record(ctx context.Context, method, path, status string, d time.Duration) {
	if c.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("endpoint", path),
		attribute.String("status", status),
	)
	c.metrics.APIRequests.Add(ctx, 1, attrs)
	c.metrics.APIRequestDuration.Record(ctx, d.Seconds(), attrs)
	if status != "ok" {
		c.metrics.APIErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", status)))
	}
}

// ListTours returns every tour the credentials can see.
func (c *Client) ListTours(ctx context.Context) ([]Tour, error) {
	var tours []Tour
	if err := c.get(ctx, "/tours", &tours); err != nil {
		return nil, err
	}
	return tours, nil
}

// GetDay returns the full day record including schedule items and notes.
func (c *Client) GetDay(ctx context.Context, dayID string) (*DayResponse, error) {
	var dr DayResponse
	if err := c.get(ctx, "/day/"+url.PathEscape(dayID), &dr); err != nil {
		return nil, err
	}
	return &dr, nil
}

// GetTourSummary returns the day summaries for a tour on the given
// "YYYY-MM-DD" date.
func (c *Client) GetTourSummary(ctx context.Context, tourID, date string) ([]DaySummary, error) {
	var ds []DaySummary
	path := "/tour/" + url.PathEscape(tourID) + "/summary/" + url.PathEscape(date)
	if err := c.get(ctx, path, &ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// GetTourHotels returns the per-day hotel information for a tour.
func (c *Client) GetTourHotels(ctx context.Context, tourID string) (*TourHotels, error) {
	var th TourHotels
	if err := c.get(ctx, "/tour/"+url.PathEscape(tourID)+"/hotels", &th); err != nil {
		return nil, err
	}
	return &th, nil
}

// GetTourCrew returns the crew roster for a tour.
func (c *Client) GetTourCrew(ctx context.Context, tourID string) ([]CrewMember, error) {
	var crew []CrewMember
	if err := c.get(ctx, "/tour/"+url.PathEscape(tourID)+"/crew", &crew); err != nil {
		return nil, err
	}
	return crew, nil
}

// GetTourEvents returns the tour header and its event days.
func (c *Client) GetTourEvents(ctx context.Context, tourID string) (*TourEvents, error) {
	var te TourEvents
	if err := c.get(ctx, "/tour/"+url.PathEscape(tourID)+"/events", &te); err != nil {
		return nil, err
	}
	return &te, nil
}

// GetTourAll returns the tour header plus its complete day list in one call.
// The iterator uses this as its single per-tour fetch.
func (c *Client) GetTourAll(ctx context.Context, tourID string) (*TourAll, error) {
	var ta TourAll
	if err := c.get(ctx, "/tour/"+url.PathEscape(tourID)+"/all", &ta); err != nil {
		return nil, err
	}
	return &ta, nil
}

// GetDayEvents returns the events (and their embedded venue records) for a
// day.
func (c *Client) GetDayEvents(ctx context.Context, dayID string) ([]DayEvent, error) {
	var events []DayEvent
	if err := c.get(ctx, "/day/"+url.PathEscape(dayID)+"/events", &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEventGuestlist returns the guest list for an event.
func (c *Client) GetEventGuestlist(ctx context.Context, eventID string) (*Guestlist, error) {
	var gl Guestlist
	if err := c.get(ctx, "/event/"+url.PathEscape(eventID)+"/guestlist", &gl); err != nil {
		return nil, err
	}
	return &gl, nil
}

// CreateGuestRequest adds a guest to an event's list and returns the new
// record's id.
func (c *Client) CreateGuestRequest(ctx context.Context, p CreateGuestRequestParams) (*GuestRequestRef, error) {
	var ref GuestRequestRef
	if err := c.do(ctx, http.MethodPost, "/guestlist", p, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// UpdateGuestRequest modifies an existing guest list entry.
func (c *Client) UpdateGuestRequest(ctx context.Context, p UpdateGuestRequestParams) error {
	return c.do(ctx, http.MethodPut, "/guestlist", p, nil)
}

// GetEventSetlist returns the setlist for an event.
func (c *Client) GetEventSetlist(ctx context.Context, eventID string) (*Setlist, error) {
	var sl Setlist
	if err := c.get(ctx, "/event/"+url.PathEscape(eventID)+"/setlist", &sl); err != nil {
		return nil, err
	}
	return &sl, nil
}

// GetHotelRoomlist returns the room assignments for a hotel.
func (c *Client) GetHotelRoomlist(ctx context.Context, hotelID string) (*RoomList, error) {
	var rl RoomList
	if err := c.get(ctx, "/hotel/"+url.PathEscape(hotelID)+"/roomlist", &rl); err != nil {
		return nil, err
	}
	return &rl, nil
}

// GetHotelContacts returns the contact directory for a hotel.
func (c *Client) GetHotelContacts(ctx context.Context, hotelID string) (*HotelContacts, error) {
	var hc HotelContacts
	if err := c.get(ctx, "/hotel/"+url.PathEscape(hotelID)+"/contacts", &hc); err != nil {
		return nil, err
	}
	return &hc, nil
}

// GetCompanyContacts returns the contact directory for a company (promoter,
// agency, vendor).
func (c *Client) GetCompanyContacts(ctx context.Context, companyID string) (*CompanyContacts, error) {
	var cc CompanyContacts
	if err := c.get(ctx, "/company/"+url.PathEscape(companyID)+"/contacts", &cc); err != nil {
		return nil, err
	}
	return &cc, nil
}

// GetPushHistory returns recently sent push notifications.
func (c *Client) GetPushHistory(ctx context.Context) ([]PushNotification, error) {
	var pns []PushNotification
	if err := c.get(ctx, "/push/history", &pns); err != nil {
		return nil, err
	}
	return pns, nil
}

// CreateScheduleItem adds an itinerary entry and returns the server-assigned
// id and syncId.
func (c *Client) CreateScheduleItem(ctx context.Context, p CreateScheduleItemParams) (*ScheduleItemRef, error) {
	var ref ScheduleItemRef
	if err := c.do(ctx, http.MethodPost, "/itinerary", p, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// UpdateScheduleItem rewrites an itinerary entry. p.SyncID must be current.
func (c *Client) UpdateScheduleItem(ctx context.Context, p UpdateScheduleItemParams) error {
	return c.do(ctx, http.MethodPut, "/itinerary", p, nil)
}

// DeleteScheduleItem removes an itinerary entry.
func (c *Client) DeleteScheduleItem(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/itinerary", struct {
		ID string `json:"id"`
	}{itemID}, nil)
}

// UpdateDayNotes rewrites a day's three note fields. p.SyncID must be the
// day's current token.
func (c *Client) UpdateDayNotes(ctx context.Context, dayID string, p UpdateDayNotesParams) error {
	return c.do(ctx, http.MethodPut, "/day/"+url.PathEscape(dayID), p, nil)
}
