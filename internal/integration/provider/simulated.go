package provider

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"skincare/pkg/config"
	"skincare/pkg/logger"
	"skincare/pkg/model"
)

const (
	MeetingBaseURL     = "https://meet.google.com/"
	DialInPhoneNumber  = "+1-555-MEET-NOW"
	MeetingRequestPref = "meet_"
	SummaryPrefix      = "Medical Appointment: "
	VideoCallNotice    = "This appointment includes a Google Meet video call."
)

var ErrSimulatedFailure = errors.New("simulated provider failure")

type SimulatedConfig struct {
	Location            *time.Location
	AppointmentDuration time.Duration

	EventLatency       time.Duration
	MeetingLatency     time.Duration
	InvitationsLatency time.Duration
	EmailsLatency      time.Duration

	// FailureRate is the probability, per call, of returning ErrSimulatedFailure.
	FailureRate float64

	Now func() time.Time
}

func SimulatedConfigFrom(cfg *config.Config) SimulatedConfig {
	return SimulatedConfig{
		Location:            cfg.Location(),
		AppointmentDuration: cfg.AppointmentDuration,
		EventLatency:        cfg.CalendarEventLatency,
		MeetingLatency:      cfg.MeetingRoomLatency,
		InvitationsLatency:  cfg.InvitationsLatency,
		EmailsLatency:       cfg.EmailsLatency,
		FailureRate:         cfg.SimulationFailureRate,
	}
}

// SimulatedProvider fabricates calendar, meeting and email results in-process
// after a fixed artificial delay per call.
type SimulatedProvider struct {
	cfg SimulatedConfig
	log *logger.Logger
}

func NewSimulatedProvider(cfg SimulatedConfig, log *logger.Logger) *SimulatedProvider {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.AppointmentDuration <= 0 {
		cfg.AppointmentDuration = config.DefaultAppointmentDuration
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if log == nil {
		log = logger.Discard()
	}
	return &SimulatedProvider{
		cfg: cfg,
		log: log.WithComponent("simulated_provider"),
	}
}

func (p *SimulatedProvider) CreateEvent(ctx context.Context, req EventRequest) (*model.CalendarEvent, error) {
	p.log.Debug("creating calendar event", "patient_email", req.PatientEmail, "date", req.Date, "time", req.Time)
	if err := p.simulate(ctx, "create_event", p.cfg.EventLatency); err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(model.DateLayout+" "+model.TimeLayout, req.Date+" "+req.Time, p.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment start %q %q: %w", req.Date, req.Time, err)
	}
	end := start.Add(p.cfg.AppointmentDuration)
	zone := p.cfg.Location.String()

	id := newEventID(p.cfg.Now())
	event := &model.CalendarEvent{
		ID:          id,
		Summary:     SummaryPrefix + req.Service,
		Description: eventDescription(req),
		Start:       model.EventTime{DateTime: start.Format(time.RFC3339), TimeZone: zone},
		End:         model.EventTime{DateTime: end.Format(time.RFC3339), TimeZone: zone},
		Attendees: []model.Attendee{
			{Email: req.PatientEmail, DisplayName: req.PatientName, ResponseStatus: model.ResponseNeedsAction},
			{Email: req.DoctorEmail, DisplayName: req.DoctorName, ResponseStatus: model.ResponseAccepted},
		},
	}
	if req.VideoCall {
		event.ConferenceData = &model.ConferenceData{
			SolutionType: model.ConferenceHangoutsMeet,
			RequestID:    MeetingRequestPref + id,
		}
	}

	p.log.Info("calendar event created", "event_id", event.ID, "start", event.Start.DateTime)
	return event, nil
}

func (p *SimulatedProvider) CreateMeetingRoom(ctx context.Context, eventID string) (*model.MeetingRoom, error) {
	p.log.Debug("creating meeting room", "event_id", eventID)
	if err := p.simulate(ctx, "create_meeting_room", p.cfg.MeetingLatency); err != nil {
		return nil, err
	}

	code := newMeetingCode()
	room := &model.MeetingRoom{
		MeetingURL:  MeetingBaseURL + code,
		MeetingCode: code,
		DialIn: model.DialIn{
			PhoneNumber: DialInPhoneNumber,
			PIN:         newDialInPIN(),
		},
	}

	p.log.Info("meeting room created", "event_id", eventID, "meeting_code", room.MeetingCode)
	return room, nil
}

func (p *SimulatedProvider) SendInvitations(ctx context.Context, event *model.CalendarEvent) (bool, error) {
	if event == nil {
		return false, errors.New("send invitations: nil event")
	}
	if err := p.simulate(ctx, "send_invitations", p.cfg.InvitationsLatency); err != nil {
		return false, err
	}

	for _, a := range event.Attendees {
		p.log.Info("calendar invitation sent",
			"event_id", event.ID,
			"attendee", a.DisplayName,
			"email", a.Email,
		)
	}
	return true, nil
}

func (p *SimulatedProvider) SendEmails(ctx context.Context, req EmailRequest) (bool, error) {
	if err := p.simulate(ctx, "send_emails", p.cfg.EmailsLatency); err != nil {
		return false, err
	}

	for _, msg := range []EmailMessage{buildPatientConfirmation(req), buildDoctorNotification(req)} {
		p.log.Info("email sent",
			"to", msg.To,
			"to_name", msg.ToName,
			"subject", msg.Subject,
		)
		p.log.Debug("email body", "to", msg.To, "body", msg.Body)
	}
	if req.MeetingURL != "" {
		p.log.Info("meeting details included", "meeting_url", req.MeetingURL)
	}
	return true, nil
}

func (p *SimulatedProvider) simulate(ctx context.Context, op string, latency time.Duration) error {
	if err := sleep(ctx, latency); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if p.cfg.FailureRate > 0 && rand.Float64() < p.cfg.FailureRate {
		p.log.Warn("injecting simulated failure", "operation", op)
		return fmt.Errorf("%s: %w", op, ErrSimulatedFailure)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func eventDescription(req EventRequest) string {
	lines := []string{
		"Patient: " + req.PatientName,
		"Doctor: " + req.DoctorName,
		"Service: " + req.Service,
	}
	if req.Notes != "" {
		lines = append(lines, "Notes: "+req.Notes)
	}
	if req.VideoCall {
		lines = append(lines, "", VideoCallNotice)
	}
	return strings.Join(lines, "\n")
}
