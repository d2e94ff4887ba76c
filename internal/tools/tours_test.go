package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/tourwire/mastertour-mcp/internal/mastertour"
)

func TestGetTodaySchedule_DefaultsToToday(t *testing.T) {
	t.Parallel()

	f := scheduleFixture()
	f.summary = []mastertour.DaySummary{
		{ID: "d-other", DayDate: "2026-01-02 00:00:00"},
		{ID: "d-la", DayDate: "2026-01-03 00:00:00"},
	}
	data, text, err := newTestSet(f, WithDefaultTourID("t1")).getTodaySchedule(context.Background(), GetTodayScheduleInput{})
	if err != nil {
		t.Fatalf("getTodaySchedule: %v", err)
	}
	if data.Date != "2026-01-03" {
		t.Errorf("Date = %q, want the pinned today", data.Date)
	}
	if data.DayID != "d-la" || data.Venue != "The Wiltern" {
		t.Errorf("data = %+v", data)
	}
	// Items sort by local start time; the untimed day sheet sorts first on
	// its empty clock.
	if len(data.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(data.Items))
	}
	if data.Items[0].Title != "Day Sheet" || data.Items[1].Title != "Load In" {
		t.Errorf("item order = %q, %q", data.Items[0].Title, data.Items[1].Title)
	}
	if data.Items[1].StartTime != "10:00" || data.Items[1].EndTime != "12:00" {
		t.Errorf("Load In times = %q to %q, want local clocks", data.Items[1].StartTime, data.Items[1].EndTime)
	}
	if !strings.Contains(text, "10:00 AM") {
		t.Errorf("rendered text should use 12-hour clocks: %q", text)
	}
	if !strings.Contains(text, "Early load-in") {
		t.Errorf("rendered text missing notes: %q", text)
	}
}

func TestGetTodaySchedule_NoDayOnDate(t *testing.T) {
	t.Parallel()

	f := scheduleFixture()
	f.summary = []mastertour.DaySummary{{ID: "d-la", DayDate: "2026-01-04 00:00:00"}}

	data, text, err := newTestSet(f, WithDefaultTourID("t1")).getTodaySchedule(context.Background(), GetTodayScheduleInput{Date: "2026-02-01"})
	if err != nil {
		t.Fatalf("getTodaySchedule: %v", err)
	}
	if data.DayID != "" {
		t.Errorf("DayID = %q, want empty", data.DayID)
	}
	if !strings.Contains(text, "No itinerary day") {
		t.Errorf("text = %q", text)
	}
}

func TestGetTodaySchedule_Validation(t *testing.T) {
	t.Parallel()

	s := newTestSet(scheduleFixture())
	if _, _, err := s.getTodaySchedule(context.Background(), GetTodayScheduleInput{}); !IsValidation(err) {
		t.Fatalf("no tour id: err = %v, want validation error", err)
	}

	s = newTestSet(scheduleFixture(), WithDefaultTourID("t1"))
	_, _, err := s.getTodaySchedule(context.Background(), GetTodayScheduleInput{Date: "01/03/2026"})
	if !IsValidation(err) {
		t.Fatalf("bad date: err = %v, want validation error", err)
	}
}
