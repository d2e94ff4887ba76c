package mastertour

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(
		Credentials{ConsumerKey: "k", ConsumerSecret: "s"},
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func okEnvelope(data string) string {
	return `{"success":true,"message":"","data":` + data + `}`
}

func TestClient_RequestShape(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		io.WriteString(w, okEnvelope(`[]`))
	})

	if _, err := c.ListTours(context.Background()); err != nil {
		t.Fatalf("ListTours: %v", err)
	}

	if got.Method != http.MethodGet {
		t.Errorf("method = %s, want GET", got.Method)
	}
	if got.URL.Path != "/tours" {
		t.Errorf("path = %q, want /tours", got.URL.Path)
	}
	if v := got.URL.Query().Get("version"); v != "7" {
		t.Errorf("version query = %q, want 7", v)
	}
	auth := got.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "OAuth ") {
		t.Errorf("Authorization = %q, want OAuth header", auth)
	}
	if !strings.Contains(auth, `oauth_consumer_key="k"`) {
		t.Errorf("Authorization %q missing consumer key", auth)
	}
	if accept := got.Header.Get("Accept"); accept != "application/json" {
		t.Errorf("Accept = %q, want application/json", accept)
	}
}

func TestClient_ListTours(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, okEnvelope(`[
			{"tourId":"t1","artistName":"The Band","legName":"EU Leg","organizationName":"Org","organizationPermissionLevel":"200"},
			{"tourId":"t2","artistName":"Solo Act","organizationPermissionLevel":"100"}
		]`))
	})

	tours, err := c.ListTours(context.Background())
	if err != nil {
		t.Fatalf("ListTours: %v", err)
	}
	if len(tours) != 2 {
		t.Fatalf("len(tours) = %d, want 2", len(tours))
	}
	if tours[0].TourID != "t1" || tours[0].ArtistName != "The Band" {
		t.Errorf("tours[0] = %+v", tours[0])
	}
	if tours[0].OrganizationPermissionLevel != "200" {
		t.Errorf("permission level = %q, want \"200\"", tours[0].OrganizationPermissionLevel)
	}
}

func TestClient_GetDay_NumericSyncID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/day/d42" {
			t.Errorf("path = %q, want /day/d42", r.URL.Path)
		}
		io.WriteString(w, okEnvelope(`{"day":{
			"id":"d42","tourId":"t1","dayDate":"2026-01-04","timeZone":"America/Los_Angeles",
			"syncId":1234,
			"scheduleItems":[{"id":"si1","syncId":"77","title":"Load In","startDatetime":"2026-01-04 22:00:00"}]
		}}`))
	})

	dr, err := c.GetDay(context.Background(), "d42")
	if err != nil {
		t.Fatalf("GetDay: %v", err)
	}
	day := dr.Day
	if day.ID != "d42" || day.DayDate != "2026-01-04" {
		t.Errorf("day = %+v", day)
	}
	// syncId arrives as a number here and as a string elsewhere; both decode
	// to the string form.
	if day.SyncID != "1234" {
		t.Errorf("day syncId = %q, want \"1234\"", day.SyncID)
	}
	if len(day.ScheduleItems) != 1 || day.ScheduleItems[0].SyncID != "77" {
		t.Errorf("schedule items = %+v", day.ScheduleItems)
	}
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
		label  string
	}{
		{
			name:   "404",
			status: http.StatusNotFound,
			body:   `{"success":false,"message":"not found","data":null}`,
			check:  IsNotFound,
			label:  "IsNotFound",
		},
		{
			name:   "401",
			status: http.StatusUnauthorized,
			body:   `{"success":false,"message":"bad signature","data":null}`,
			check:  IsAuth,
			label:  "IsAuth",
		},
		{
			name:   "permission message",
			status: http.StatusForbidden,
			body:   `{"success":false,"message":"You do not have the required tour permission.","data":null}`,
			check:  IsPermission,
			label:  "IsPermission",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			})
			_, err := c.ListTours(context.Background())
			if err == nil {
				t.Fatal("got nil error")
			}
			if !tc.check(err) {
				t.Errorf("%s = false for %v", tc.label, err)
			}
		})
	}
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>upstream down</html>")
	})

	_, err := c.ListTours(context.Background())
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("error %v is not an APIError", err)
	}
	if ae.Kind != KindAPI || ae.StatusCode != http.StatusBadGateway {
		t.Errorf("got kind=%s status=%d", ae.Kind, ae.StatusCode)
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c, err := NewClient(Credentials{ConsumerKey: "k", ConsumerSecret: "s"}, WithBaseURL(addr))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.ListTours(context.Background())
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("error %v is not an APIError", err)
	}
	if ae.Kind != KindTransport {
		t.Errorf("Kind = %s, want transport", ae.Kind)
	}
	if ae.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", ae.StatusCode)
	}
}

func TestClient_CreateScheduleItem(t *testing.T) {
	var gotBody map[string]any
	var gotReq *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		io.WriteString(w, okEnvelope(`{"id":"si9","syncId":42}`))
	})

	ref, err := c.CreateScheduleItem(context.Background(), CreateScheduleItemParams{
		ParentDayID:   "d1",
		Title:         "Soundcheck",
		StartDatetime: "2026-01-04 22:00:00",
		EndDatetime:   "2026-01-04 22:00:00",
	})
	if err != nil {
		t.Fatalf("CreateScheduleItem: %v", err)
	}

	if gotReq.Method != http.MethodPost || gotReq.URL.Path != "/itinerary" {
		t.Errorf("request = %s %s, want POST /itinerary", gotReq.Method, gotReq.URL.Path)
	}
	if ct := gotReq.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if gotBody["title"] != "Soundcheck" || gotBody["parentDayId"] != "d1" {
		t.Errorf("body = %+v", gotBody)
	}
	if ref.ID != "si9" || ref.SyncID != "42" {
		t.Errorf("ref = %+v", ref)
	}
}

func TestClient_UpdateDayNotes(t *testing.T) {
	var gotReq *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		io.ReadAll(r.Body)
		io.WriteString(w, okEnvelope(`null`))
	})

	err := c.UpdateDayNotes(context.Background(), "d7", UpdateDayNotesParams{
		GeneralNotes: "bus call 09:00",
		SyncID:       "99",
	})
	if err != nil {
		t.Fatalf("UpdateDayNotes: %v", err)
	}
	if gotReq.Method != http.MethodPut || gotReq.URL.Path != "/day/d7" {
		t.Errorf("request = %s %s, want PUT /day/d7", gotReq.Method, gotReq.URL.Path)
	}
}

func TestClient_DeleteScheduleItem(t *testing.T) {
	var gotReq *http.Request
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, okEnvelope(`null`))
	})

	if err := c.DeleteScheduleItem(context.Background(), "si3"); err != nil {
		t.Fatalf("DeleteScheduleItem: %v", err)
	}
	if gotReq.Method != http.MethodDelete || gotReq.URL.Path != "/itinerary" {
		t.Errorf("request = %s %s, want DELETE /itinerary", gotReq.Method, gotReq.URL.Path)
	}
	if gotBody["id"] != "si3" {
		t.Errorf("body = %+v", gotBody)
	}
}

func TestClient_GetTourAll(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tour/t1/all" {
			t.Errorf("path = %q, want /tour/t1/all", r.URL.Path)
		}
		io.WriteString(w, okEnvelope(`{"tour":{
			"tourId":"t1","artistName":"The Band","legName":"EU Leg",
			"days":[
				{"id":"d1","dayDate":"2026-01-03","dayType":"Show Day"},
				{"id":"d2","dayDate":"2026-01-04","dayType":"Travel Day"}
			]
		}}`))
	})

	ta, err := c.GetTourAll(context.Background(), "t1")
	if err != nil {
		t.Fatalf("GetTourAll: %v", err)
	}
	if ta.Tour.ArtistName != "The Band" {
		t.Errorf("artist = %q", ta.Tour.ArtistName)
	}
	if len(ta.Tour.Days) != 2 || ta.Tour.Days[1].DayType != "Travel Day" {
		t.Errorf("days = %+v", ta.Tour.Days)
	}
}
