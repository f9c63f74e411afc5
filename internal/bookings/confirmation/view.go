package confirmation

import (
	"time"

	"skincare/pkg/model"
)

const (
	Title    = "Appointment Confirmed!"
	Subtitle = "Your appointment has been successfully booked and confirmed."
)

var importantNotes = []string{
	"Please arrive 15 minutes before your appointment time",
	"Bring a valid ID and insurance card",
	"To reschedule or cancel, call us at least 24 hours in advance",
	"If you have any questions, contact us at (555) 123-4567",
}

type AppointmentDetails struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	DisplayDate     string `json:"display_date"`
	Time            string `json:"time"`
	Service         string `json:"service"`
	Notes           string `json:"notes,omitempty"`
	CalendarEventID string `json:"calendar_event_id,omitempty"`
}

type DoctorDetails struct {
	Name       string `json:"name"`
	Specialty  string `json:"specialty"`
	Experience string `json:"experience"`
	Image      string `json:"image"`
}

type PatientDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type MeetingDetails struct {
	URL  string `json:"url"`
	Code string `json:"code,omitempty"`
}

// View is everything the confirmation screen shows. Meeting is nil unless
// the appointment carries a meeting URL.
type View struct {
	Title          string             `json:"title"`
	Subtitle       string             `json:"subtitle"`
	Appointment    AppointmentDetails `json:"appointment"`
	Doctor         DoctorDetails      `json:"doctor"`
	Patient        PatientDetails     `json:"patient"`
	Meeting        *MeetingDetails    `json:"meeting,omitempty"`
	Notifications  []string           `json:"notifications"`
	ImportantNotes []string           `json:"important_notes"`
}

func Build(appointment *model.Appointment, doctor *model.Doctor) View {
	v := View{
		Title:    Title,
		Subtitle: Subtitle,
		Appointment: AppointmentDetails{
			ID:              appointment.ID,
			Date:            appointment.Date,
			DisplayDate:     displayDate(appointment.Date),
			Time:            appointment.Time,
			Service:         appointment.Service,
			Notes:           appointment.Notes,
			CalendarEventID: appointment.GoogleCalendarEventID,
		},
		Doctor: DoctorDetails{
			Name:       doctor.Name,
			Specialty:  doctor.Specialty,
			Experience: doctor.Experience,
			Image:      doctor.Image,
		},
		Patient: PatientDetails{
			Name:  appointment.PatientName,
			Email: appointment.PatientEmail,
			Phone: appointment.PatientPhone,
		},
		Notifications: []string{
			"Confirmation email sent to you at " + appointment.PatientEmail,
			"Appointment notification sent to " + doctor.Name,
		},
		ImportantNotes: append([]string(nil), importantNotes...),
	}
	if appointment.GoogleCalendarEventID != "" {
		v.Notifications = append(v.Notifications, "Calendar invitation added to your Google Calendar")
	}
	if appointment.HasMeeting() {
		v.Meeting = &MeetingDetails{
			URL:  appointment.MeetingURL,
			Code: appointment.MeetingCode,
		}
	}
	return v
}

func displayDate(date string) string {
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Monday, January 2, 2006")
}
