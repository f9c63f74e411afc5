package provider

import (
	"context"

	"skincare/pkg/model"
)

// SchedulingProvider is the external scheduling and notification backend a
// booking is pushed through. The simulated implementation stands in for a
// real calendar/video/email integration.
type SchedulingProvider interface {
	CreateEvent(ctx context.Context, req EventRequest) (*model.CalendarEvent, error)
	CreateMeetingRoom(ctx context.Context, eventID string) (*model.MeetingRoom, error)
	SendInvitations(ctx context.Context, event *model.CalendarEvent) (bool, error)
	SendEmails(ctx context.Context, req EmailRequest) (bool, error)
}

// EventRequest carries everything needed to put an appointment on the calendar.
type EventRequest struct {
	PatientName  string
	PatientEmail string
	DoctorName   string
	DoctorEmail  string
	Date         string
	Time         string
	Service      string
	Notes        string
	VideoCall    bool
}

type EmailRequest struct {
	PatientEmail string
	DoctorEmail  string
	Details      EventRequest
	MeetingURL   string
}
