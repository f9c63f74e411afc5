package model

const (
	ResponseNeedsAction = "needsAction"
	ResponseDeclined    = "declined"
	ResponseTentative   = "tentative"
	ResponseAccepted    = "accepted"

	ConferenceHangoutsMeet = "hangoutsMeet"
)

type EventTime struct {
	DateTime string `json:"date_time"`
	TimeZone string `json:"time_zone"`
}

type Attendee struct {
	Email          string `json:"email"`
	DisplayName    string `json:"display_name,omitempty"`
	ResponseStatus string `json:"response_status"`
}

// ConferenceData marks an event as requesting a video conference.
type ConferenceData struct {
	SolutionType string `json:"solution_type"`
	RequestID    string `json:"request_id"`
}

type CalendarEvent struct {
	ID             string          `json:"id"`
	Summary        string          `json:"summary"`
	Description    string          `json:"description"`
	Start          EventTime       `json:"start"`
	End            EventTime       `json:"end"`
	Attendees      []Attendee      `json:"attendees"`
	ConferenceData *ConferenceData `json:"conference_data,omitempty"`
}

type DialIn struct {
	PhoneNumber string `json:"phone_number"`
	PIN         string `json:"pin"`
}

type MeetingRoom struct {
	MeetingURL  string `json:"meeting_url"`
	MeetingCode string `json:"meeting_code"`
	DialIn      DialIn `json:"dial_in"`
}
