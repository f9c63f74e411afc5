package wizard

import (
	"context"
	"sync"

	bookingerrors "skincare/internal/bookings/errors"
	"skincare/internal/bookings/form"
	"skincare/pkg/model"
)

type Step string

const (
	StepSelection    Step = "selection"
	StepForm         Step = "form"
	StepConfirmation Step = "confirmation"
)

// Snapshot is a read-only copy of the wizard.
type Snapshot struct {
	Step        Step               `json:"step"`
	Doctor      *model.Doctor      `json:"doctor,omitempty"`
	Form        *form.State        `json:"form,omitempty"`
	Appointment *model.Appointment `json:"appointment,omitempty"`
}

// Booking is what a successful Submit produced.
type Booking struct {
	Appointment *model.Appointment
	Doctor      *model.Doctor
}

// Wizard drives one patient through selection, form and confirmation.
// All transitions are synchronous; the only long-running call is Submit.
type Wizard struct {
	mu sync.Mutex

	formOptions form.Options

	step        Step
	doctor      *model.Doctor
	form        *form.Controller
	booked      *Booking
	appointment *model.Appointment
}

func New(formOptions form.Options) *Wizard {
	return &Wizard{
		formOptions: formOptions,
		step:        StepSelection,
	}
}

// SelectDoctor moves selection -> form with a fresh form for doctor.
func (w *Wizard) SelectDoctor(doctor *model.Doctor) error {
	if doctor == nil {
		return bookingerrors.ErrNoDoctor
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepSelection {
		return bookingerrors.ErrInvalidTransition
	}
	w.doctor = doctor.Clone()
	// A form books at most once, so one slot per form is enough. The
	// controller fills it on the submitting goroutine.
	booked := &Booking{}
	w.booked = booked
	w.form = form.NewController(w.doctor, func(appointment *model.Appointment) error {
		b, err := w.confirm(appointment)
		if err != nil {
			return err
		}
		*booked = *b
		return nil
	}, w.formOptions)
	w.step = StepForm
	return nil
}

// SubmitAppointment moves form -> confirmation and stores appointment.
// The form controller calls it once booking succeeds.
func (w *Wizard) SubmitAppointment(appointment *model.Appointment) error {
	_, err := w.confirm(appointment)
	return err
}

func (w *Wizard) confirm(appointment *model.Appointment) (*Booking, error) {
	if appointment == nil {
		return nil, bookingerrors.ErrInvalidTransition
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepForm {
		return nil, bookingerrors.ErrInvalidTransition
	}
	a := *appointment
	w.appointment = &a
	w.step = StepConfirmation
	stored := a
	return &Booking{Appointment: &stored, Doctor: w.doctor.Clone()}, nil
}

// Submit hands req to the current form. The returned state reflects the
// form after the attempt. On success the wizard is already on confirmation
// and the booking is returned as stored at that moment, so a Reset racing
// with the caller cannot lose it.
func (w *Wizard) Submit(ctx context.Context, req model.AppointmentRequest) (form.State, *Booking, error) {
	w.mu.Lock()
	if w.step != StepForm || w.form == nil {
		w.mu.Unlock()
		return form.State{}, nil, bookingerrors.ErrInvalidTransition
	}
	ctrl, booked := w.form, w.booked
	w.mu.Unlock()

	state, err := ctrl.Submit(ctx, req)
	if err != nil || state.Status != form.StatusSubmitted || booked.Appointment == nil {
		return state, nil, err
	}
	b := *booked
	return state, &b, nil
}

// GoBack moves form -> selection and forgets the selected doctor.
func (w *Wizard) GoBack() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepForm {
		return bookingerrors.ErrInvalidTransition
	}
	if err := w.discardFormLocked(); err != nil {
		return err
	}
	w.doctor = nil
	w.step = StepSelection
	return nil
}

// Reset starts over from selection, clearing doctor and appointment.
func (w *Wizard) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.discardFormLocked(); err != nil {
		return err
	}
	w.doctor = nil
	w.appointment = nil
	w.step = StepSelection
	return nil
}

func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := Snapshot{
		Step:   w.step,
		Doctor: w.doctor.Clone(),
	}
	if w.form != nil && w.step == StepForm {
		state := w.form.State()
		s.Form = &state
	}
	if w.appointment != nil {
		a := *w.appointment
		s.Appointment = &a
	}
	return s
}

// Confirmation returns the booked appointment and its doctor once the wizard
// has reached the confirmation step.
func (w *Wizard) Confirmation() (*model.Appointment, *model.Doctor, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step != StepConfirmation || w.appointment == nil {
		return nil, nil, bookingerrors.ErrInvalidTransition
	}
	a := *w.appointment
	return &a, w.doctor.Clone(), nil
}

// Close releases the form's timers. The wizard must not be used afterwards.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.form != nil {
		_ = w.form.Close()
	}
}

func (w *Wizard) discardFormLocked() error {
	if w.form == nil {
		return nil
	}
	if err := w.form.Close(); err != nil {
		return err
	}
	w.form = nil
	w.booked = nil
	return nil
}
