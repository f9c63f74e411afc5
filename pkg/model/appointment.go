package model

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// AppointmentRequest is what the patient fills in on the appointment form.
type AppointmentRequest struct {
	PatientName  string `json:"patient_name" validate:"required"`
	PatientEmail string `json:"patient_email" validate:"required"`
	PatientPhone string `json:"patient_phone" validate:"required"`
	Date         string `json:"date" validate:"required,booking_date"`
	Time         string `json:"time" validate:"required,available_slot"`
	Service      string `json:"service" validate:"required,service_label"`
	Notes        string `json:"notes,omitempty" validate:"max=2000"`
	VideoCall    bool   `json:"video_call"`
}

// Appointment is created once, at the end of a successful booking, and
// never mutated afterwards.
type Appointment struct {
	ID                    string `json:"id"`
	DoctorID              string `json:"doctor_id"`
	PatientName           string `json:"patient_name"`
	PatientEmail          string `json:"patient_email"`
	PatientPhone          string `json:"patient_phone"`
	Date                  string `json:"date"`
	Time                  string `json:"time"`
	Service               string `json:"service"`
	Notes                 string `json:"notes,omitempty"`
	GoogleCalendarEventID string `json:"google_calendar_event_id,omitempty"`
	MeetingURL            string `json:"meeting_url,omitempty"`
	MeetingCode           string `json:"meeting_code,omitempty"`
}

func (a *Appointment) HasMeeting() bool {
	return a.MeetingURL != ""
}
