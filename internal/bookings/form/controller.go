package form

import (
	"context"
	"sync"
	"time"

	bookingerrors "skincare/internal/bookings/errors"
	integration "skincare/internal/integration/service"
	"skincare/pkg/logger"
	"skincare/pkg/metrics"
	"skincare/pkg/model"

	"github.com/google/uuid"
)

type Status string

const (
	StatusEditing    Status = "editing"
	StatusSubmitting Status = "submitting"
	StatusSubmitted  Status = "submitted"
	StatusError      Status = "error"
)

type Variant string

const (
	VariantDirect     Variant = "direct"
	VariantIntegrated Variant = "integrated"
)

const ErrorMessage = "An error occurred while booking your appointment. Please try again."

// State is a point-in-time copy of the controller.
type State struct {
	Variant  Variant                  `json:"variant"`
	Status   Status                   `json:"status"`
	Step     string                   `json:"step,omitempty"`
	Progress string                   `json:"progress,omitempty"`
	Error    string                   `json:"error,omitempty"`
	Fields   model.AppointmentRequest `json:"fields"`
}

type Validator interface {
	Validate(ctx context.Context, doctor *model.Doctor, req model.AppointmentRequest, now time.Time) error
}

// SubmitFunc receives the finished appointment. It is called without any
// controller lock held.
type SubmitFunc func(appointment *model.Appointment) error

type Options struct {
	// Integration selects the integrated variant. Nil means direct.
	Integration     integration.IntegrationService
	Validator       Validator
	ErrorResetDelay time.Duration
	Now             func() time.Time
	NewID           func() string
	Metrics         *metrics.BookingMetrics
	Log             *logger.Logger
}

type Controller struct {
	mu sync.Mutex

	doctor   *model.Doctor
	onSubmit SubmitFunc
	opts     Options

	state      State
	closed     bool
	resetTimer *time.Timer
}

func NewController(doctor *model.Doctor, onSubmit SubmitFunc, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Log == nil {
		opts.Log = logger.Discard()
	}
	variant := VariantDirect
	if opts.Integration != nil {
		variant = VariantIntegrated
	}
	return &Controller{
		doctor:   doctor,
		onSubmit: onSubmit,
		opts:     opts,
		state: State{
			Variant: variant,
			Status:  StatusEditing,
			Fields:  model.AppointmentRequest{Service: model.DefaultService},
		},
	}
}

func (c *Controller) Doctor() *model.Doctor {
	return c.doctor
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit validates req and books it. Validation failures are returned and
// leave the form editable. An integration failure is not returned: the
// controller moves to StatusError and reverts to editing after
// ErrorResetDelay with the fields intact.
func (c *Controller) Submit(ctx context.Context, req model.AppointmentRequest) (State, error) {
	if req.Service == "" {
		req.Service = model.DefaultService
	}

	c.mu.Lock()
	if err := c.checkEditableLocked(); err != nil {
		c.mu.Unlock()
		return c.State(), err
	}
	c.state.Fields = req
	if c.opts.Validator != nil {
		if err := c.opts.Validator.Validate(ctx, c.doctor, req, c.opts.Now()); err != nil {
			c.mu.Unlock()
			c.opts.Metrics.ObserveSubmission(string(c.state.Variant), "invalid")
			return c.State(), err
		}
	}
	c.state.Status = StatusSubmitting
	c.state.Error = ""
	variant := c.state.Variant
	c.mu.Unlock()

	appointment := c.newAppointment(req)
	if variant == VariantIntegrated {
		result, err := c.opts.Integration.Book(ctx, c.doctor, req, c.setProgress)
		if err != nil {
			c.fail(err)
			return c.State(), nil
		}
		appointment.GoogleCalendarEventID = result.Event.ID
		if result.MeetingRoom != nil {
			appointment.MeetingURL = result.MeetingRoom.MeetingURL
			appointment.MeetingCode = result.MeetingRoom.MeetingCode
		}
	}

	if c.onSubmit != nil {
		if err := c.onSubmit(appointment); err != nil {
			c.mu.Lock()
			c.state.Status = StatusEditing
			c.clearProgressLocked()
			c.mu.Unlock()
			return c.State(), err
		}
	}

	c.mu.Lock()
	c.state.Status = StatusSubmitted
	c.clearProgressLocked()
	c.mu.Unlock()

	c.opts.Metrics.ObserveSubmission(string(variant), "submitted")
	c.opts.Log.Info("Appointment booked",
		"appointment_id", appointment.ID,
		"doctor_id", appointment.DoctorID,
		"variant", variant,
		"video", appointment.HasMeeting(),
	)
	return c.State(), nil
}

// Close discards the form. It fails while a submission is running.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Status == StatusSubmitting {
		return bookingerrors.ErrSubmissionInProgress
	}
	c.closed = true
	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
	return nil
}

func (c *Controller) checkEditableLocked() error {
	if c.closed {
		return bookingerrors.ErrFormClosed
	}
	switch c.state.Status {
	case StatusEditing:
		return nil
	case StatusSubmitting:
		return bookingerrors.ErrSubmissionInProgress
	default:
		return bookingerrors.ErrFormLocked
	}
}

func (c *Controller) newAppointment(req model.AppointmentRequest) *model.Appointment {
	return &model.Appointment{
		ID:           c.opts.NewID(),
		DoctorID:     c.doctor.ID,
		PatientName:  req.PatientName,
		PatientEmail: req.PatientEmail,
		PatientPhone: req.PatientPhone,
		Date:         req.Date,
		Time:         req.Time,
		Service:      req.Service,
		Notes:        req.Notes,
	}
}

func (c *Controller) setProgress(step, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Step = step
	c.state.Progress = label
}

func (c *Controller) clearProgressLocked() {
	c.state.Step = ""
	c.state.Progress = ""
}

func (c *Controller) fail(err error) {
	c.opts.Log.Error("Appointment booking failed",
		"doctor_id", c.doctor.ID,
		"error", err,
	)
	c.opts.Metrics.ObserveSubmission(string(VariantIntegrated), "failed")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Status = StatusError
	c.state.Error = ErrorMessage
	c.clearProgressLocked()
	if c.closed {
		return
	}
	c.resetTimer = time.AfterFunc(c.opts.ErrorResetDelay, c.revertToEditing)
}

func (c *Controller) revertToEditing() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Status != StatusError {
		return
	}
	c.state.Status = StatusEditing
	c.state.Error = ""
	c.resetTimer = nil
}
