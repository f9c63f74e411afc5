package provider

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"skincare/pkg/logger"
	"skincare/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	eventIDPattern     = regexp.MustCompile(`^evt_\d+_[0-9a-z]{9}$`)
	meetingCodePattern = regexp.MustCompile(`^[0-9a-z]{3}-[0-9a-z]{4}-[0-9a-z]{3}$`)
	pinPattern         = regexp.MustCompile(`^[1-9]\d{8}$`)
)

func newTestProvider(t *testing.T) *SimulatedProvider {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return NewSimulatedProvider(SimulatedConfig{
		Location:            loc,
		AppointmentDuration: time.Hour,
		Now:                 func() time.Time { return time.UnixMilli(1751374800000) },
	}, nil)
}

func sampleRequest() EventRequest {
	return EventRequest{
		PatientName:  "Jane Doe",
		PatientEmail: "jane@example.com",
		DoctorName:   "Dr. Sarah Johnson",
		DoctorEmail:  "sarah.johnson@skincare.com",
		Date:         "2025-07-01",
		Time:         "09:00",
		Service:      "General Consultation",
	}
}

func TestCreateEvent(t *testing.T) {
	p := newTestProvider(t)

	event, err := p.CreateEvent(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Regexp(t, eventIDPattern, event.ID)
	assert.True(t, strings.HasPrefix(event.ID, "evt_1751374800000_"))
	assert.Equal(t, "Medical Appointment: General Consultation", event.Summary)
	assert.Equal(t, "2025-07-01T09:00:00-04:00", event.Start.DateTime)
	assert.Equal(t, "2025-07-01T10:00:00-04:00", event.End.DateTime)
	assert.Equal(t, "America/New_York", event.Start.TimeZone)
	assert.Equal(t, "America/New_York", event.End.TimeZone)

	require.Len(t, event.Attendees, 2)
	assert.Equal(t, model.Attendee{Email: "jane@example.com", DisplayName: "Jane Doe", ResponseStatus: model.ResponseNeedsAction}, event.Attendees[0])
	assert.Equal(t, model.Attendee{Email: "sarah.johnson@skincare.com", DisplayName: "Dr. Sarah Johnson", ResponseStatus: model.ResponseAccepted}, event.Attendees[1])

	assert.Nil(t, event.ConferenceData)
	assert.Equal(t, "Patient: Jane Doe\nDoctor: Dr. Sarah Johnson\nService: General Consultation", event.Description)
}

func TestCreateEvent_WithVideoAndNotes(t *testing.T) {
	p := newTestProvider(t)
	req := sampleRequest()
	req.VideoCall = true
	req.Notes = "Itchy rash"

	event, err := p.CreateEvent(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, event.ConferenceData)
	assert.Equal(t, model.ConferenceHangoutsMeet, event.ConferenceData.SolutionType)
	assert.Equal(t, "meet_"+event.ID, event.ConferenceData.RequestID)
	assert.Contains(t, event.Description, "Notes: Itchy rash")
	assert.True(t, strings.HasSuffix(event.Description, VideoCallNotice))
}

func TestCreateEvent_InvalidDate(t *testing.T) {
	p := newTestProvider(t)
	req := sampleRequest()
	req.Date = "07/01/2025"

	_, err := p.CreateEvent(context.Background(), req)
	assert.Error(t, err)
}

func TestCreateEvent_DistinctIDs(t *testing.T) {
	p := newTestProvider(t)

	first, err := p.CreateEvent(context.Background(), sampleRequest())
	require.NoError(t, err)
	second, err := p.CreateEvent(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateMeetingRoom(t *testing.T) {
	p := newTestProvider(t)

	room, err := p.CreateMeetingRoom(context.Background(), "evt_1_abc")
	require.NoError(t, err)

	assert.Regexp(t, meetingCodePattern, room.MeetingCode)
	assert.Equal(t, MeetingBaseURL+room.MeetingCode, room.MeetingURL)
	assert.Equal(t, DialInPhoneNumber, room.DialIn.PhoneNumber)
	assert.Regexp(t, pinPattern, room.DialIn.PIN)
}

func TestSendInvitations(t *testing.T) {
	p := newTestProvider(t)
	event, err := p.CreateEvent(context.Background(), sampleRequest())
	require.NoError(t, err)

	ok, err := p.SendInvitations(context.Background(), event)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.SendInvitations(context.Background(), nil)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestSendEmails(t *testing.T) {
	var buf bytes.Buffer
	p := NewSimulatedProvider(SimulatedConfig{}, logger.New(logger.Config{Output: &buf, Level: "info"}))

	ok, err := p.SendEmails(context.Background(), EmailRequest{
		PatientEmail: "jane@example.com",
		DoctorEmail:  "sarah.johnson@skincare.com",
		Details:      sampleRequest(),
		MeetingURL:   "https://meet.google.com/abc-defg-hij",
	})
	require.NoError(t, err)
	assert.True(t, ok)

	out := buf.String()
	assert.Contains(t, out, `"to":"jane@example.com","to_name":"Jane Doe"`)
	assert.Contains(t, out, `"to":"sarah.johnson@skincare.com","to_name":"Dr. Sarah Johnson"`)
}

func TestSimulatedLatencyHonoursContext(t *testing.T) {
	p := NewSimulatedProvider(SimulatedConfig{EventLatency: time.Hour}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.CreateEvent(ctx, sampleRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFailureInjection(t *testing.T) {
	p := NewSimulatedProvider(SimulatedConfig{FailureRate: 1}, nil)

	_, err := p.CreateMeetingRoom(context.Background(), "evt_1_abc")
	assert.True(t, errors.Is(err, ErrSimulatedFailure))
}

func TestEmailMessages(t *testing.T) {
	req := EmailRequest{
		PatientEmail: "jane@example.com",
		DoctorEmail:  "sarah.johnson@skincare.com",
		Details:      sampleRequest(),
	}

	patient := buildPatientConfirmation(req)
	assert.Equal(t, "jane@example.com", patient.To)
	assert.Equal(t, "Appointment Confirmation: General Consultation", patient.Subject)
	assert.Contains(t, patient.Body, "Dr. Sarah Johnson")
	assert.NotContains(t, patient.Body, "video consultation")

	req.MeetingURL = "https://meet.google.com/abc-defg-hij"
	doctor := buildDoctorNotification(req)
	assert.Equal(t, "sarah.johnson@skincare.com", doctor.To)
	assert.Equal(t, "New Appointment: General Consultation", doctor.Subject)
	assert.Contains(t, doctor.Body, "Jane Doe (jane@example.com)")
	assert.Contains(t, doctor.Body, req.MeetingURL)
}
