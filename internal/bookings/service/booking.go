package service

import (
	"context"
	"errors"
	"time"

	"skincare/internal/bookings/confirmation"
	bookingerrors "skincare/internal/bookings/errors"
	"skincare/internal/bookings/events"
	"skincare/internal/bookings/form"
	"skincare/internal/bookings/session"
	"skincare/internal/bookings/validator"
	"skincare/internal/bookings/wizard"
	doctorservice "skincare/internal/doctors/service"
	apperrors "skincare/pkg/errors"
	"skincare/pkg/logger"
	"skincare/pkg/model"
)

// SessionView is the API representation of a booking session.
type SessionView struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	wizard.Snapshot
}

type BookingService interface {
	CreateSession(ctx context.Context) (*SessionView, error)
	GetSession(ctx context.Context, id string) (*SessionView, error)
	SelectDoctor(ctx context.Context, id, doctorID string) (*SessionView, error)
	GoBack(ctx context.Context, id string) (*SessionView, error)
	SubmitAppointment(ctx context.Context, id string, req model.AppointmentRequest) (*SessionView, error)
	GetConfirmation(ctx context.Context, id string) (*confirmation.View, error)
	Reset(ctx context.Context, id string) (*SessionView, error)
	DeleteSession(ctx context.Context, id string) error
}

type bookingService struct {
	doctors     doctorservice.DoctorService
	sessions    session.Store
	formOptions form.Options
	publisher   events.Publisher
	log         *logger.Logger
}

func NewBookingService(
	doctors doctorservice.DoctorService,
	sessions session.Store,
	formOptions form.Options,
	publisher events.Publisher,
	log *logger.Logger,
) BookingService {
	if publisher == nil {
		publisher = events.NewNoopPublisher(log)
	}
	return &bookingService{
		doctors:     doctors,
		sessions:    sessions,
		formOptions: formOptions,
		publisher:   publisher,
		log:         log,
	}
}

func (s *bookingService) CreateSession(ctx context.Context) (*SessionView, error) {
	sess := s.sessions.Create(wizard.New(s.formOptions))
	s.log.Debug("Booking session created", "session_id", sess.ID)
	return view(sess), nil
}

func (s *bookingService) GetSession(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return view(sess), nil
}

func (s *bookingService) SelectDoctor(ctx context.Context, id, doctorID string) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if err := sess.Wizard.SelectDoctor(doctor); err != nil {
		return nil, mapWizardError(err)
	}
	return view(sess), nil
}

func (s *bookingService) GoBack(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if err := sess.Wizard.GoBack(); err != nil {
		return nil, mapWizardError(err)
	}
	return view(sess), nil
}

// SubmitAppointment runs the submission to completion even if ctx is
// cancelled; a booking cannot be aborted once it starts.
func (s *bookingService) SubmitAppointment(ctx context.Context, id string, req model.AppointmentRequest) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	state, booking, err := sess.Wizard.Submit(ctx, req)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, apperrors.Validation("Appointment validation failed", verrs.Details())
		}
		return nil, mapWizardError(err)
	}

	if state.Status == form.StatusError {
		return nil, apperrors.IntegrationFailed(form.ErrorMessage, nil).WithDetails(map[string]any{
			"session_id":     sess.ID,
			"retry_after_ms": s.formOptions.ErrorResetDelay.Milliseconds(),
		})
	}

	if booking == nil {
		return nil, apperrors.Conflict("Booking session has no confirmed appointment")
	}
	if err := s.publisher.PublishAppointmentBooked(ctx, booking.Appointment, booking.Doctor); err != nil {
		s.log.Error("Failed to publish booking event",
			"appointment_id", booking.Appointment.ID,
			"session_id", sess.ID,
			"error", err,
		)
	}

	return view(sess), nil
}

func (s *bookingService) GetConfirmation(ctx context.Context, id string) (*confirmation.View, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	appointment, doctor, err := sess.Wizard.Confirmation()
	if err != nil {
		return nil, apperrors.Conflict("Booking session has no confirmed appointment")
	}
	v := confirmation.Build(appointment, doctor)
	return &v, nil
}

func (s *bookingService) Reset(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if err := sess.Wizard.Reset(); err != nil {
		return nil, mapWizardError(err)
	}
	return view(sess), nil
}

func (s *bookingService) DeleteSession(ctx context.Context, id string) error {
	if err := s.sessions.Delete(id); err != nil {
		return mapSessionError(err, id)
	}
	s.log.Debug("Booking session deleted", "session_id", id)
	return nil
}

func (s *bookingService) session(id string) (*session.Session, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Session ID cannot be empty")
	}
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, mapSessionError(err, id)
	}
	return sess, nil
}

func view(sess *session.Session) *SessionView {
	return &SessionView{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt,
		Snapshot:  sess.Wizard.Snapshot(),
	}
}

func mapSessionError(err error, id string) error {
	switch {
	case errors.Is(err, bookingerrors.ErrSessionNotFound):
		return apperrors.NotFoundWithID("Booking session", id)
	case errors.Is(err, bookingerrors.ErrInvalidSessionID):
		return apperrors.InvalidInput("Invalid session ID format")
	default:
		return apperrors.Internal("Failed to load booking session", err)
	}
}

func mapWizardError(err error) error {
	switch {
	case errors.Is(err, bookingerrors.ErrSubmissionInProgress):
		return apperrors.Conflict("An appointment submission is already in progress")
	case errors.Is(err, bookingerrors.ErrFormLocked):
		return apperrors.Conflict("The appointment form is not editable right now")
	case errors.Is(err, bookingerrors.ErrFormClosed), errors.Is(err, bookingerrors.ErrInvalidTransition):
		return apperrors.Conflict("Action is not allowed at the current booking step")
	case errors.Is(err, bookingerrors.ErrNoDoctor):
		return apperrors.InvalidInput("A doctor must be selected")
	default:
		return apperrors.Internal("Booking failed", err)
	}
}
