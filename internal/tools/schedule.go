package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/tourwire/mastertour-mcp/internal/format"
	"github.com/tourwire/mastertour-mcp/internal/localtime"
	"github.com/tourwire/mastertour-mcp/internal/mastertour"
)

// AddScheduleItemInput is the input for the add_schedule_item tool.
type AddScheduleItemInput struct {
	DayID     string `json:"dayId" jsonschema:"Id of the day to add the item to."`
	Title     string `json:"title" jsonschema:"Schedule item title, e.g. 'Soundcheck'."`
	StartTime string `json:"startTime" jsonschema:"Start time in the day's local time zone, 24-hour HH:MM."`
	EndTime   string `json:"endTime,omitempty" jsonschema:"End time in the day's local time zone, 24-hour HH:MM. Defaults to the start time."`
	Details   string `json:"details,omitempty" jsonschema:"Free-text details."`
}

// ScheduleMutationData is the structured output shared by the schedule item
// mutations.
type ScheduleMutationData struct {
	ItemID string `json:"itemId"`
	SyncID string `json:"syncId,omitempty"`
	DayID  string `json:"dayId"`
	Title  string `json:"title"`
}

// addScheduleItem creates an itinerary entry. The caller supplies local wall
// clock times; the day's own time zone drives the UTC conversion.
func (s *Set) addScheduleItem(ctx context.Context, in AddScheduleItemInput) (*ScheduleMutationData, string, error) {
	if strings.TrimSpace(in.DayID) == "" {
		return nil, "", validationf("dayId is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, "", validationf("title is required")
	}
	if strings.TrimSpace(in.StartTime) == "" {
		return nil, "", validationf("startTime is required (24-hour HH:MM)")
	}

	dr, err := s.client.GetDay(ctx, in.DayID)
	if err != nil {
		return nil, "", err
	}
	day := dr.Day
	if day.TimeZone == "" {
		return nil, "", fmt.Errorf("tools: day %s has no time zone set", in.DayID)
	}
	date := localtime.DateOnly(day.DayDate)

	startUTC, err := localtime.ToUTC(date, in.StartTime, day.TimeZone)
	if err != nil {
		return nil, "", validationf("invalid startTime %q: use 24-hour HH:MM", in.StartTime)
	}
	endUTC := startUTC
	if in.EndTime != "" {
		endUTC, err = localtime.ToUTC(date, in.EndTime, day.TimeZone)
		if err != nil {
			return nil, "", validationf("invalid endTime %q: use 24-hour HH:MM", in.EndTime)
		}
	}

	ref, err := s.client.CreateScheduleItem(ctx, mastertour.CreateScheduleItemParams{
		ParentDayID:   in.DayID,
		Title:         in.Title,
		Details:       in.Details,
		StartDatetime: startUTC,
		EndDatetime:   endUTC,
	})
	if err != nil {
		return nil, "", err
	}

	data := &ScheduleMutationData{
		ItemID: ref.ID,
		SyncID: string(ref.SyncID),
		DayID:  in.DayID,
		Title:  in.Title,
	}
	text := fmt.Sprintf("✅ Added %q at %s on %s.", in.Title, format.Clock(in.StartTime), format.Date(date))
	return data, text, nil
}

// UpdateScheduleItemInput is the input for the update_schedule_item tool.
// Omitted fields keep their current values.
type UpdateScheduleItemInput struct {
	DayID     string  `json:"dayId" jsonschema:"Id of the day that owns the item."`
	ItemID    string  `json:"itemId" jsonschema:"Id of the schedule item to update."`
	Title     *string `json:"title,omitempty" jsonschema:"New title."`
	Details   *string `json:"details,omitempty" jsonschema:"New details."`
	StartTime *string `json:"startTime,omitempty" jsonschema:"New start time in the day's local time zone, 24-hour HH:MM."`
	EndTime   *string `json:"endTime,omitempty" jsonschema:"New end time in the day's local time zone, 24-hour HH:MM."`
}

// updateScheduleItem rewrites an itinerary entry, merging the given fields
// over its current state and forwarding the item's fresh syncId.
func (s *Set) updateScheduleItem(ctx context.Context, in UpdateScheduleItemInput) (*ScheduleMutationData, string, error) {
	if strings.TrimSpace(in.DayID) == "" {
		return nil, "", validationf("dayId is required")
	}
	if strings.TrimSpace(in.ItemID) == "" {
		return nil, "", validationf("itemId is required")
	}
	if in.Title == nil && in.Details == nil && in.StartTime == nil && in.EndTime == nil {
		return nil, "", validationf("nothing to update: pass at least one of title, details, startTime, endTime")
	}

	day, item, err := s.findScheduleItem(ctx, in.DayID, in.ItemID)
	if err != nil {
		return nil, "", err
	}
	if day.TimeZone == "" {
		return nil, "", fmt.Errorf("tools: day %s has no time zone set", in.DayID)
	}
	date := localtime.DateOnly(day.DayDate)

	// Clock values not being changed come from the item's current local
	// times, so a title-only update re-sends identical instants.
	startClock, err := mergedClock(in.StartTime, item.PaulStartTime, item.StartDatetime)
	if err != nil {
		return nil, "", validationf("invalid startTime: use 24-hour HH:MM")
	}
	endClock, err := mergedClock(in.EndTime, item.PaulEndTime, item.EndDatetime)
	if err != nil {
		return nil, "", validationf("invalid endTime: use 24-hour HH:MM")
	}
	if endClock == "" {
		endClock = startClock
	}

	// An item with no times at all keeps having none unless the update sets
	// them.
	startUTC, endUTC := item.StartDatetime, item.EndDatetime
	if startClock != "" {
		startUTC, err = localtime.ToUTC(date, startClock, day.TimeZone)
		if err != nil {
			return nil, "", validationf("invalid startTime %q: use 24-hour HH:MM", startClock)
		}
		endUTC, err = localtime.ToUTC(date, endClock, day.TimeZone)
		if err != nil {
			return nil, "", validationf("invalid endTime %q: use 24-hour HH:MM", endClock)
		}
	}

	params := mastertour.UpdateScheduleItemParams{
		ID:            item.ID,
		Title:         item.Title,
		Details:       item.Details,
		IsConfirmed:   item.IsConfirmed,
		IsComplete:    item.IsComplete,
		StartDatetime: startUTC,
		EndDatetime:   endUTC,
		SyncID:        item.SyncID,
	}
	if in.Title != nil {
		params.Title = *in.Title
	}
	if in.Details != nil {
		params.Details = *in.Details
	}

	if err := s.client.UpdateScheduleItem(ctx, params); err != nil {
		return nil, "", err
	}

	data := &ScheduleMutationData{ItemID: item.ID, DayID: in.DayID, Title: params.Title}
	text := fmt.Sprintf("✅ Updated %q.", params.Title)
	if startClock != "" {
		text = fmt.Sprintf("✅ Updated %q (%s to %s).", params.Title, format.Clock(startClock), format.Clock(endClock))
	}
	return data, text, nil
}

// DeleteScheduleItemInput is the input for the delete_schedule_item tool.
type DeleteScheduleItemInput struct {
	DayID  string `json:"dayId" jsonschema:"Id of the day that owns the item."`
	ItemID string `json:"itemId" jsonschema:"Id of the schedule item to delete."`
}

// deleteScheduleItem verifies the item exists on the day, then removes it.
func (s *Set) deleteScheduleItem(ctx context.Context, in DeleteScheduleItemInput) (*ScheduleMutationData, string, error) {
	if strings.TrimSpace(in.DayID) == "" {
		return nil, "", validationf("dayId is required")
	}
	if strings.TrimSpace(in.ItemID) == "" {
		return nil, "", validationf("itemId is required")
	}

	_, item, err := s.findScheduleItem(ctx, in.DayID, in.ItemID)
	if err != nil {
		return nil, "", err
	}
	if err := s.client.DeleteScheduleItem(ctx, item.ID); err != nil {
		return nil, "", err
	}

	data := &ScheduleMutationData{ItemID: item.ID, DayID: in.DayID, Title: item.Title}
	return data, fmt.Sprintf("🗑️ Deleted %q from the schedule.", item.Title), nil
}

// UpdateDayNotesInput is the input for the update_day_notes tool. Omitted
// fields keep their current values; an explicit empty string clears a field.
type UpdateDayNotesInput struct {
	DayID        string  `json:"dayId" jsonschema:"Id of the day to update."`
	GeneralNotes *string `json:"generalNotes,omitempty" jsonschema:"New general notes. Empty string clears them."`
	HotelNotes   *string `json:"hotelNotes,omitempty" jsonschema:"New hotel notes. Empty string clears them."`
	TravelNotes  *string `json:"travelNotes,omitempty" jsonschema:"New travel notes. Empty string clears them."`
}

// DayNotesData is the structured output of update_day_notes.
type DayNotesData struct {
	DayID   string   `json:"dayId"`
	Updated []string `json:"updated"`
}

// updateDayNotes rewrites a day's note fields, merging unspecified ones from
// the day's current state and forwarding its fresh syncId.
func (s *Set) updateDayNotes(ctx context.Context, in UpdateDayNotesInput) (*DayNotesData, string, error) {
	if strings.TrimSpace(in.DayID) == "" {
		return nil, "", validationf("dayId is required")
	}
	if in.GeneralNotes == nil && in.HotelNotes == nil && in.TravelNotes == nil {
		return nil, "", validationf("nothing to update: pass at least one of generalNotes, hotelNotes, travelNotes")
	}

	dr, err := s.client.GetDay(ctx, in.DayID)
	if err != nil {
		return nil, "", err
	}
	day := dr.Day

	params := mastertour.UpdateDayNotesParams{
		GeneralNotes: day.GeneralNotes,
		HotelNotes:   day.HotelNotes,
		TravelNotes:  day.TravelNotes,
		SyncID:       day.SyncID,
	}
	var updated []string
	if in.GeneralNotes != nil {
		params.GeneralNotes = *in.GeneralNotes
		updated = append(updated, "general")
	}
	if in.HotelNotes != nil {
		params.HotelNotes = *in.HotelNotes
		updated = append(updated, "hotel")
	}
	if in.TravelNotes != nil {
		params.TravelNotes = *in.TravelNotes
		updated = append(updated, "travel")
	}

	if err := s.client.UpdateDayNotes(ctx, in.DayID, params); err != nil {
		return nil, "", err
	}

	data := &DayNotesData{DayID: in.DayID, Updated: updated}
	text := fmt.Sprintf("📝 Updated %s notes for %s.", strings.Join(updated, ", "), format.Date(localtime.DateOnly(day.DayDate)))
	return data, text, nil
}

// findScheduleItem fetches the day and locates the item on it.
func (s *Set) findScheduleItem(ctx context.Context, dayID, itemID string) (*mastertour.Day, *mastertour.ScheduleItem, error) {
	dr, err := s.client.GetDay(ctx, dayID)
	if err != nil {
		return nil, nil, err
	}
	for i := range dr.Day.ScheduleItems {
		if dr.Day.ScheduleItems[i].ID == itemID {
			return &dr.Day, &dr.Day.ScheduleItems[i], nil
		}
	}
	return nil, nil, &mastertour.APIError{
		Kind:       mastertour.KindNotFound,
		StatusCode: 404,
		Message:    fmt.Sprintf("no schedule item %q on day %s", itemID, dayID),
	}
}

// mergedClock resolves the local "HH:MM" clock for an update: the explicit
// value when given, otherwise the item's current local time.
func mergedClock(explicit *string, paulTime, wireUTC string) (string, error) {
	if explicit != nil {
		return *explicit, nil
	}
	if paulTime != "" {
		return localtime.Clock(paulTime)
	}
	if wireUTC != "" {
		// Item predates local-time fields; fall back to the UTC clock.
		return localtime.Clock(wireUTC)
	}
	return "", nil
}
