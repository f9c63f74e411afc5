package flows

import (
	"context"
	"errors"

	"skincare/internal/integration/core"
	"skincare/internal/integration/provider"
	"skincare/pkg/model"
)

const (
	BookAppointment = "book_appointment"

	StepCreateCalendarEvent     = "create_calendar_event"
	StepCreateMeetingRoom       = "create_meeting_room"
	StepSendCalendarInvitations = "send_calendar_invitations"
	StepSendAppointmentEmails   = "send_appointment_emails"

	LabelCreateCalendarEvent     = "Creating calendar event..."
	LabelCreateMeetingRoom       = "Setting up video consultation room..."
	LabelSendCalendarInvitations = "Sending calendar invitations..."
	LabelSendAppointmentEmails   = "Sending confirmation emails..."
)

var (
	errNoEvent      = errors.New("calendar event was not created")
	errNotDelivered = errors.New("provider reported delivery failure")
)

// BookingContext is the state threaded through the book_appointment flow.
// Each step reads what earlier steps wrote.
type BookingContext struct {
	Doctor  *model.Doctor
	Request model.AppointmentRequest

	Event           *model.CalendarEvent
	MeetingRoom     *model.MeetingRoom
	InvitationsSent bool
	EmailsSent      bool
}

func NewBookingContext(doctor *model.Doctor, req model.AppointmentRequest) *BookingContext {
	return &BookingContext{Doctor: doctor, Request: req}
}

func (c *BookingContext) eventRequest() provider.EventRequest {
	return provider.EventRequest{
		PatientName:  c.Request.PatientName,
		PatientEmail: c.Request.PatientEmail,
		DoctorName:   c.Doctor.Name,
		DoctorEmail:  c.Doctor.Email,
		Date:         c.Request.Date,
		Time:         c.Request.Time,
		Service:      c.Request.Service,
		Notes:        c.Request.Notes,
		VideoCall:    c.Request.VideoCall,
	}
}

func (c *BookingContext) meetingURL() string {
	if c.MeetingRoom == nil {
		return ""
	}
	return c.MeetingRoom.MeetingURL
}

// NewBookAppointmentFlow wires the four provider calls in their fixed order.
func NewBookAppointmentFlow(p provider.SchedulingProvider) *core.Flow[*BookingContext] {
	return core.NewFlow(BookAppointment,
		core.NewStep(StepCreateCalendarEvent, LabelCreateCalendarEvent, createCalendarEvent(p)),
		core.NewStep(StepCreateMeetingRoom, LabelCreateMeetingRoom, createMeetingRoom(p)).
			OnlyIf(func(c *BookingContext) bool { return c.Request.VideoCall }),
		core.NewStep(StepSendCalendarInvitations, LabelSendCalendarInvitations, sendCalendarInvitations(p)),
		core.NewStep(StepSendAppointmentEmails, LabelSendAppointmentEmails, sendAppointmentEmails(p)),
	)
}

func createCalendarEvent(p provider.SchedulingProvider) func(context.Context, *BookingContext) error {
	return func(ctx context.Context, c *BookingContext) error {
		event, err := p.CreateEvent(ctx, c.eventRequest())
		if err != nil {
			return err
		}
		c.Event = event
		return nil
	}
}

func createMeetingRoom(p provider.SchedulingProvider) func(context.Context, *BookingContext) error {
	return func(ctx context.Context, c *BookingContext) error {
		if c.Event == nil {
			return errNoEvent
		}
		room, err := p.CreateMeetingRoom(ctx, c.Event.ID)
		if err != nil {
			return err
		}
		c.MeetingRoom = room
		return nil
	}
}

func sendCalendarInvitations(p provider.SchedulingProvider) func(context.Context, *BookingContext) error {
	return func(ctx context.Context, c *BookingContext) error {
		if c.Event == nil {
			return errNoEvent
		}
		ok, err := p.SendInvitations(ctx, c.Event)
		if err != nil {
			return err
		}
		if !ok {
			return errNotDelivered
		}
		c.InvitationsSent = true
		return nil
	}
}

func sendAppointmentEmails(p provider.SchedulingProvider) func(context.Context, *BookingContext) error {
	return func(ctx context.Context, c *BookingContext) error {
		ok, err := p.SendEmails(ctx, provider.EmailRequest{
			PatientEmail: c.Request.PatientEmail,
			DoctorEmail:  c.Doctor.Email,
			Details:      c.eventRequest(),
			MeetingURL:   c.meetingURL(),
		})
		if err != nil {
			return err
		}
		if !ok {
			return errNotDelivered
		}
		c.EmailsSent = true
		return nil
	}
}
