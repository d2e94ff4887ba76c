package mastertour

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// envelope is the wrapper every Master Tour API response shares. Only Data is
// surfaced to callers; Message feeds error classification on failures.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// SyncID is the server-issued optimistic-concurrency token carried by days
// and schedule items. The API is inconsistent about whether it serializes the
// token as a JSON string or number, so unmarshalling accepts both; the value
// is always echoed back as a string.
type SyncID string

// UnmarshalJSON accepts both `"42"` and `42`.
func (s *SyncID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return fmt.Errorf("mastertour: syncId: %w", err)
		}
		*s = SyncID(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("mastertour: syncId: %w", err)
	}
	*s = SyncID(n.String())
	return nil
}

// MarshalJSON always emits the string form.
func (s SyncID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// Tour is one entry from GET /tours. OrganizationPermissionLevel is a numeric
// string; 148 and above grants edit access, 255 is full admin.
type Tour struct {
	TourID                      string `json:"tourId"`
	OrganizationName            string `json:"organizationName"`
	ArtistName                  string `json:"artistName"`
	LegName                     string `json:"legName"`
	OrganizationPermissionLevel string `json:"organizationPermissionLevel"`
}

// editPermissionLevel is the minimum organization permission level that
// grants write access to a tour.
const editPermissionLevel = 148

// CanEdit reports whether the credentials hold edit access on the tour. An
// unparsable or absent permission level counts as no access.
func (t Tour) CanEdit() bool {
	lvl, err := strconv.Atoi(t.OrganizationPermissionLevel)
	return err == nil && lvl >= editPermissionLevel
}

// Day is a single tour-itinerary date. Name carries the venue name when the
// day has one; DayDate is wire-format with a zero clock ("YYYY-MM-DD
// 00:00:00"). SyncID must be forwarded on any mutation of the day itself.
type Day struct {
	ID            string         `json:"id"`
	TourID        string         `json:"tourId"`
	Name          string         `json:"name"`
	DayDate       string         `json:"dayDate"`
	TimeZone      string         `json:"timeZone"`
	DayType       string         `json:"dayType"`
	City          string         `json:"city"`
	State         string         `json:"state"`
	Country       string         `json:"country"`
	GeneralNotes  string         `json:"generalNotes"`
	HotelNotes    string         `json:"hotelNotes"`
	TravelNotes   string         `json:"travelNotes"`
	SyncID        SyncID         `json:"syncId"`
	ScheduleItems []ScheduleItem `json:"scheduleItems"`
}

// ScheduleItem is one itinerary entry owned by a Day. StartDatetime and
// EndDatetime are UTC; PaulStartTime and PaulEndTime are the same instants in
// the day's local zone. The item's own SyncID must accompany updates and
// deletes.
type ScheduleItem struct {
	ID            string `json:"id"`
	SyncID        SyncID `json:"syncId"`
	Title         string `json:"title"`
	Details       string `json:"details"`
	StartDatetime string `json:"startDatetime"`
	EndDatetime   string `json:"endDatetime"`
	PaulStartTime string `json:"paulStartTime"`
	PaulEndTime   string `json:"paulEndTime"`
	DayTimeZone   string `json:"dayTimeZone"`
	IsConfirmed   bool   `json:"isConfirmed"`
	IsComplete    bool   `json:"isComplete"`
}

// DayResponse wraps GET /day/{id}.
type DayResponse struct {
	Day Day `json:"day"`
}

// DaySummary is one entry from GET /tour/{id}/summary/{date}.
type DaySummary struct {
	ID      string `json:"id"`
	DayDate string `json:"dayDate"`
	DayType string `json:"dayType"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// TourAll wraps GET /tour/{id}/all: the tour header plus its complete day
// list. This is the single fetch the iterator issues per tour.
type TourAll struct {
	Tour TourDetail `json:"tour"`
}

// TourDetail is the tour header embedded in tour-scoped responses.
type TourDetail struct {
	TourID     string `json:"tourId"`
	ArtistName string `json:"artistName"`
	LegName    string `json:"legName"`
	Days       []Day  `json:"days"`
}

// Contact is the contact record shape shared by venue and promoter contact
// lists on day events.
type Contact struct {
	Title       string `json:"title"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Fax         string `json:"fax"`
}

// VenueProduction holds stage and rigging details for a venue.
type VenueProduction struct {
	DimensionsW     string `json:"dimensionsW"`
	DimensionsD     string `json:"dimensionsD"`
	DimensionsH     string `json:"dimensionsH"`
	DeckToGrid      string `json:"deckToGrid"`
	TrimHeight      string `json:"trimHeight"`
	Access          string `json:"access"`
	DockType        string `json:"dockType"`
	RiggingComments string `json:"riggingComments"`
	PowerComments   string `json:"powerComments"`
}

// VenueFacilities holds dressing room and parking details for a venue.
type VenueFacilities struct {
	DressingRooms   string `json:"dressingRooms"`
	Showers         string `json:"showers"`
	TruckParking    string `json:"truckParking"`
	BusParking      string `json:"busParking"`
	GuestParking    string `json:"guestParking"`
	ParkingComments string `json:"parkingComments"`
}

// VenueEquipment holds the house equipment inventory for a venue.
type VenueEquipment struct {
	Audio    string `json:"audio"`
	Lighting string `json:"lighting"`
	Video    string `json:"video"`
	Backline string `json:"backline"`
	Staging  string `json:"staging"`
}

// VenueLocalCrew holds local stagehand and union details for a venue.
type VenueLocalCrew struct {
	LocalUnion   string `json:"localUnion"`
	MinimumIn    string `json:"minimumIN"`
	MinimumOut   string `json:"minimumOUT"`
	Penalties    string `json:"penalties"`
	CrewComments string `json:"crewComments"`
}

// VenueLogistics holds travel and area info for a venue.
type VenueLogistics struct {
	Directions      string `json:"directions"`
	ClosestCity     string `json:"closestCity"`
	AirportNotes    string `json:"airportNotes"`
	GroundTransport string `json:"groundTransport"`
	AreaHotels      string `json:"areaHotels"`
	AreaRestaurants string `json:"areaRestaurants"`
}

// DayEvent is one entry from GET /day/{id}/events. The API has no standalone
// venue entity; everything known about a venue rides on the event record, so
// venue search and venue details are reconstructed from these.
type DayEvent struct {
	ID                  string           `json:"id"`
	EventName           string           `json:"eventName"`
	VenueID             string           `json:"venueId"`
	VenueName           string           `json:"venueName"`
	VenueAddressLine1   string           `json:"venueAddressLine1"`
	VenueAddressLine2   string           `json:"venueAddressLine2"`
	VenueCity           string           `json:"venueCity"`
	VenueState          string           `json:"venueState"`
	VenueZip            string           `json:"venueZip"`
	VenueCountry        string           `json:"venueCountry"`
	VenueCapacity       string           `json:"venueCapacity"`
	VenueType           string           `json:"venueType"`
	VenueAgeRequirement string           `json:"venueAgeRequirement"`
	VenuePrimaryURL     string           `json:"venuePrimaryUrl"`
	VenuePrimaryEmail   string           `json:"venuePrimaryEmail"`
	VenueLatitude       string           `json:"venueLatitude"`
	VenueLongitude      string           `json:"venueLongitude"`
	VenueTimeZone       string           `json:"venueTimeZone"`
	VenueContacts       []Contact        `json:"venueContacts"`
	VenueProduction     *VenueProduction `json:"venueProduction"`
	VenueFacilities     *VenueFacilities `json:"venueFacilities"`
	VenueEquipment      *VenueEquipment  `json:"venueEquipment"`
	VenueLocalCrew      *VenueLocalCrew  `json:"venueLocalCrew"`
	VenueLogistics      *VenueLogistics  `json:"venueLogistics"`
	PromoterName        string           `json:"promoterName"`
	PromoterCity        string           `json:"promoterCity"`
	PromoterState       string           `json:"promoterState"`
	PromoterContacts    []Contact        `json:"promoterContacts"`
}

// Hotel is a structured hotel booking attached to a day.
type Hotel struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Address            string `json:"address"`
	City               string `json:"city"`
	Phone              string `json:"phone"`
	CheckIn            string `json:"checkIn"`
	CheckOut           string `json:"checkOut"`
	ConfirmationNumber string `json:"confirmationNumber"`
}

// HotelDay is one day entry from GET /tour/{id}/hotels: the day header plus
// any structured hotel bookings and the free-form hotel notes fallback.
type HotelDay struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	DayDate    string  `json:"dayDate"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	HotelNotes string  `json:"hotelNotes"`
	Hotels     []Hotel `json:"hotels"`
}

// TourHotels wraps GET /tour/{id}/hotels.
type TourHotels struct {
	Tour TourDetail `json:"tour"`
	Days []HotelDay `json:"days"`
}

// TourEvents wraps GET /tour/{id}/events.
type TourEvents struct {
	Tour TourDetail `json:"tour"`
	Days []Day      `json:"days"`
}

// CrewMember is one entry from GET /tour/{id}/crew.
type CrewMember struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	PreferredName string `json:"preferredName"`
	Title         string `json:"title"`
	Company       string `json:"company"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
}

// GuestRequest is one entry on an event's guest list.
type GuestRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Tickets     int    `json:"tickets"`
	Status      string `json:"status"`
	RequestedBy string `json:"requestedBy"`
	Notes       string `json:"notes"`
	WillCall    bool   `json:"willCall"`
}

// Guestlist wraps GET /event/{id}/guestlist.
type Guestlist struct {
	EventName string         `json:"eventName"`
	Date      string         `json:"date"`
	Guests    []GuestRequest `json:"guests"`
}

// SetlistSong is one entry from GET /event/{id}/setlist.
type SetlistSong struct {
	Position  int    `json:"position"`
	SongTitle string `json:"songTitle"`
	Duration  string `json:"duration"`
	Notes     string `json:"notes"`
	IsEncore  bool   `json:"isEncore"`
}

// Setlist wraps GET /event/{id}/setlist.
type Setlist struct {
	EventName string        `json:"eventName"`
	Date      string        `json:"date"`
	Songs     []SetlistSong `json:"songs"`
}

// RoomAssignment is one entry from GET /hotel/{id}/roomlist.
type RoomAssignment struct {
	RoomNumber         string `json:"roomNumber"`
	RoomType           string `json:"roomType"`
	GuestName          string `json:"guestName"`
	CheckIn            string `json:"checkIn"`
	CheckOut           string `json:"checkOut"`
	ConfirmationNumber string `json:"confirmationNumber"`
	Notes              string `json:"notes"`
}

// RoomList wraps GET /hotel/{id}/roomlist.
type RoomList struct {
	HotelName string           `json:"hotelName"`
	Rooms     []RoomAssignment `json:"rooms"`
}

// DirectoryContact is one entry from the hotel and company contact endpoints.
type DirectoryContact struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Fax        string `json:"fax"`
	Department string `json:"department"`
}

// HotelContacts wraps GET /hotel/{id}/contacts.
type HotelContacts struct {
	HotelName string             `json:"hotelName"`
	Contacts  []DirectoryContact `json:"contacts"`
}

// CompanyContacts wraps GET /company/{id}/contacts.
type CompanyContacts struct {
	CompanyName string             `json:"companyName"`
	Contacts    []DirectoryContact `json:"contacts"`
}

// PushNotification is one entry from GET /push/history.
type PushNotification struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	SentAt  string `json:"sentAt"`
	SentBy  string `json:"sentBy"`
}

// CreateScheduleItemParams is the POST /itinerary body.
type CreateScheduleItemParams struct {
	ParentDayID   string `json:"parentDayId"`
	Title         string `json:"title"`
	Details       string `json:"details"`
	IsConfirmed   bool   `json:"isConfirmed"`
	IsComplete    bool   `json:"isComplete"`
	StartDatetime string `json:"startDatetime"`
	EndDatetime   string `json:"endDatetime"`
	TimePriority  string `json:"timePriority"`
}

// ScheduleItemRef is the id/syncId pair returned by schedule item mutations.
type ScheduleItemRef struct {
	ID     string `json:"id"`
	SyncID SyncID `json:"syncId"`
}

// UpdateScheduleItemParams is the PUT /itinerary body. SyncID must be the
// item's current token from the immediately preceding day fetch; a stale
// value makes the remote reject the write.
type UpdateScheduleItemParams struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Details       string `json:"details"`
	IsConfirmed   bool   `json:"isConfirmed"`
	IsComplete    bool   `json:"isComplete"`
	StartDatetime string `json:"startDatetime"`
	EndDatetime   string `json:"endDatetime"`
	TimePriority  string `json:"timePriority"`
	SyncID        SyncID `json:"syncId"`
}

// UpdateDayNotesParams is the PUT /day/{id} body. All three note fields are
// always sent; the caller merges unchanged values in beforehand. SyncID is
// the day's current token.
type UpdateDayNotesParams struct {
	GeneralNotes string `json:"generalNotes"`
	HotelNotes   string `json:"hotelNotes"`
	TravelNotes  string `json:"travelNotes"`
	SyncID       SyncID `json:"syncId"`
}

// CreateGuestRequestParams is the POST /guestlist body.
type CreateGuestRequestParams struct {
	EventID  string `json:"eventId"`
	Name     string `json:"name"`
	Tickets  int    `json:"tickets"`
	Notes    string `json:"notes,omitempty"`
	WillCall bool   `json:"willCall,omitempty"`
}

// UpdateGuestRequestParams is the PUT /guestlist body. Nil fields are left
// untouched server-side.
type UpdateGuestRequestParams struct {
	ID       string  `json:"id"`
	Name     *string `json:"name,omitempty"`
	Tickets  *int    `json:"tickets,omitempty"`
	Status   *string `json:"status,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	WillCall *bool   `json:"willCall,omitempty"`
}

// GuestRequestRef is the id returned by guest list mutations.
type GuestRequestRef struct {
	ID string `json:"id"`
}
