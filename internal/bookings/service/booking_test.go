package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"skincare/internal/bookings/form"
	"skincare/internal/bookings/session"
	"skincare/internal/bookings/validator"
	"skincare/internal/bookings/wizard"
	"skincare/internal/doctors/repository"
	doctorservice "skincare/internal/doctors/service"
	integration "skincare/internal/integration/service"
	apperrors "skincare/pkg/errors"
	"skincare/pkg/logger"
	"skincare/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIntegration struct {
	err error
}

func (s *stubIntegration) Book(_ context.Context, _ *model.Doctor, req model.AppointmentRequest, _ integration.ProgressFunc) (*integration.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	res := &integration.Result{Event: &model.CalendarEvent{ID: "evt_1_abcdefghi"}}
	if req.VideoCall {
		res.MeetingRoom = &model.MeetingRoom{MeetingURL: "https://meet.google.com/abc-defg-hij", MeetingCode: "abc-defg-hij"}
	}
	return res, nil
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []*model.Appointment
	err       error
}

func (p *recordingPublisher) PublishAppointmentBooked(_ context.Context, a *model.Appointment, _ *model.Doctor) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, a)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type fixture struct {
	svc       BookingService
	store     *session.InMemoryStore
	publisher *recordingPublisher
}

func newFixture(t *testing.T, svc integration.IntegrationService) *fixture {
	t.Helper()
	return newFixtureWithLog(t, svc, logger.Discard())
}

func newFixtureWithLog(t *testing.T, svc integration.IntegrationService, log *logger.Logger) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	repo, err := repository.NewInMemoryDoctorRepository(repository.DefaultDoctors())
	require.NoError(t, err)
	store := session.NewInMemoryStore(session.Config{TTL: time.Hour})
	t.Cleanup(store.Stop)
	publisher := &recordingPublisher{}

	opts := form.Options{
		Integration:     svc,
		Validator:       validator.NewAppointmentValidator(loc, log),
		ErrorResetDelay: 200 * time.Millisecond,
		Now:             func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, loc) },
		Log:             log,
	}
	return &fixture{
		svc:       NewBookingService(doctorservice.NewDoctorService(repo, log), store, opts, publisher, log),
		store:     store,
		publisher: publisher,
	}
}

func request(video bool) model.AppointmentRequest {
	return model.AppointmentRequest{
		PatientName:  "Jane Doe",
		PatientEmail: "jane@example.com",
		PatientPhone: "555-0100",
		Date:         "2025-07-01",
		Time:         "09:00",
		Service:      model.ServiceGeneralConsultation,
		VideoCall:    video,
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.StatusCode()
}

func TestBookingFlow_WithVideo(t *testing.T) {
	f := newFixture(t, &stubIntegration{})
	ctx := context.Background()

	sess, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepSelection, sess.Step)

	sess, err = f.svc.SelectDoctor(ctx, sess.ID, "1")
	require.NoError(t, err)
	assert.Equal(t, wizard.StepForm, sess.Step)
	assert.Equal(t, "Dr. Sarah Johnson", sess.Doctor.Name)

	sess, err = f.svc.SubmitAppointment(ctx, sess.ID, request(true))
	require.NoError(t, err)
	assert.Equal(t, wizard.StepConfirmation, sess.Step)
	require.NotNil(t, sess.Appointment)
	assert.Equal(t, "evt_1_abcdefghi", sess.Appointment.GoogleCalendarEventID)
	assert.Equal(t, "https://meet.google.com/abc-defg-hij", sess.Appointment.MeetingURL)

	view, err := f.svc.GetConfirmation(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Meeting)
	assert.Equal(t, "Jane Doe", view.Patient.Name)

	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, sess.Appointment.ID, f.publisher.published[0].ID)

	sess, err = f.svc.Reset(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepSelection, sess.Step)
	assert.Nil(t, sess.Appointment)
	assert.Nil(t, sess.Doctor)
}

func TestSubmit_IntegrationFailure(t *testing.T) {
	f := newFixture(t, &stubIntegration{err: errors.New("create_meeting_room step failed")})
	ctx := context.Background()

	sess, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = f.svc.SelectDoctor(ctx, sess.ID, "1")
	require.NoError(t, err)

	_, err = f.svc.SubmitAppointment(ctx, sess.ID, request(true))
	assert.Equal(t, http.StatusBadGateway, statusOf(t, err))

	got, err := f.svc.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepForm, got.Step)
	assert.Equal(t, form.StatusError, got.Form.Status)
	assert.Nil(t, got.Appointment)
	assert.Empty(t, f.publisher.published)

	require.Eventually(t, func() bool {
		s, err := f.svc.GetSession(ctx, sess.ID)
		return err == nil && s.Form.Status == form.StatusEditing
	}, time.Second, 10*time.Millisecond)

	_, err = f.svc.GetConfirmation(ctx, sess.ID)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestSubmit_ValidationFailure(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	sess, _ := f.svc.CreateSession(ctx)
	_, err := f.svc.SelectDoctor(ctx, sess.ID, "1")
	require.NoError(t, err)

	req := request(false)
	req.Time = "11:00"
	_, err = f.svc.SubmitAppointment(ctx, sess.ID, req)

	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
	appErr := apperrors.AsAppError(err)
	assert.Contains(t, appErr.Details, "time")
}

func TestSubmit_PublishFailureIsNotSurfaced(t *testing.T) {
	f := newFixture(t, nil)
	f.publisher.err = errors.New("broker down")
	ctx := context.Background()
	sess, _ := f.svc.CreateSession(ctx)
	_, err := f.svc.SelectDoctor(ctx, sess.ID, "2")
	require.NoError(t, err)

	req := request(false)
	req.Time = "10:00"
	got, err := f.svc.SubmitAppointment(ctx, sess.ID, req)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepConfirmation, got.Step)
}

func TestSubmit_SurvivesCancelledRequest(t *testing.T) {
	f := newFixture(t, nil)
	sess, _ := f.svc.CreateSession(context.Background())
	_, err := f.svc.SelectDoctor(context.Background(), sess.ID, "1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := f.svc.SubmitAppointment(ctx, sess.ID, request(false))
	require.NoError(t, err)
	assert.Equal(t, wizard.StepConfirmation, got.Step)
}

func TestSessionErrors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.GetSession(ctx, "not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = f.svc.GetSession(ctx, "6f1c1f4e-2a0b-4f43-9d49-3b7c2e0e2f11")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	sess, _ := f.svc.CreateSession(ctx)
	_, err = f.svc.SelectDoctor(ctx, sess.ID, "99")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	_, err = f.svc.GoBack(ctx, sess.ID)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	require.NoError(t, f.svc.DeleteSession(ctx, sess.ID))
	assert.Equal(t, http.StatusNotFound, statusOf(t, f.svc.DeleteSession(ctx, sess.ID)))
	assert.Equal(t, 0, f.store.Count())
}

func TestGoBack(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	sess, _ := f.svc.CreateSession(ctx)
	_, err := f.svc.SelectDoctor(ctx, sess.ID, "3")
	require.NoError(t, err)

	got, err := f.svc.GoBack(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepSelection, got.Step)
	assert.Nil(t, got.Doctor)
}

// resetOnBooked resets a session as soon as its form logs the booking, the
// earliest point another request could observe the confirmation step.
type resetOnBooked struct {
	reset func()
}

func (h *resetOnBooked) Enabled(context.Context, slog.Level) bool { return true }

func (h *resetOnBooked) Handle(_ context.Context, r slog.Record) error {
	if r.Message == "Appointment booked" && h.reset != nil {
		h.reset()
	}
	return nil
}

func (h *resetOnBooked) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *resetOnBooked) WithGroup(string) slog.Handler      { return h }

func TestSubmit_PublishesEvenIfResetRacesAhead(t *testing.T) {
	h := &resetOnBooked{}
	f := newFixtureWithLog(t, nil, &logger.Logger{Logger: slog.New(h)})
	ctx := context.Background()

	sess, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = f.svc.SelectDoctor(ctx, sess.ID, "1")
	require.NoError(t, err)

	var resetErr error
	h.reset = func() { _, resetErr = f.svc.Reset(ctx, sess.ID) }

	_, err = f.svc.SubmitAppointment(ctx, sess.ID, request(false))
	require.NoError(t, err)
	require.NoError(t, resetErr)

	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, "1", f.publisher.published[0].DoctorID)
	assert.Equal(t, "Jane Doe", f.publisher.published[0].PatientName)

	_, err = f.svc.GetConfirmation(ctx, sess.ID)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}
