package service

import (
	"context"
	"errors"
	"time"

	"skincare/internal/integration/core"
	"skincare/internal/integration/flows"
	"skincare/internal/integration/provider"
	"skincare/pkg/logger"
	"skincare/pkg/metrics"
	"skincare/pkg/model"
)

// ProgressFunc receives the human-readable label of each step as it starts.
type ProgressFunc func(step, label string)

type Result struct {
	Event       *model.CalendarEvent
	MeetingRoom *model.MeetingRoom
}

type IntegrationService interface {
	// Book pushes one appointment through the provider. Every call creates a
	// new calendar event; a failed call leaves earlier side effects in place.
	Book(ctx context.Context, doctor *model.Doctor, req model.AppointmentRequest, progress ProgressFunc) (*Result, error)
}

type integrationService struct {
	engine  *core.Engine[*flows.BookingContext]
	metrics *metrics.IntegrationMetrics
	log     *logger.Logger
}

func NewIntegrationService(p provider.SchedulingProvider, m *metrics.IntegrationMetrics, log *logger.Logger) IntegrationService {
	if log == nil {
		log = logger.Discard()
	}
	log = log.WithComponent("integration")
	engine := core.NewEngine(flows.NewBookAppointmentFlow(p))
	engine.Observe(&stepObserver{metrics: m, log: log})
	log.Debug("Integration engine ready", "flows", engine.Flows())
	return &integrationService{
		engine:  engine,
		metrics: m,
		log:     log,
	}
}

func (s *integrationService) Book(ctx context.Context, doctor *model.Doctor, req model.AppointmentRequest, progress ProgressFunc) (*Result, error) {
	if doctor == nil {
		return nil, errors.New("book appointment: doctor is required")
	}

	bc := flows.NewBookingContext(doctor, req)
	var observers []core.Observer
	if progress != nil {
		observers = append(observers, progressObserver(progress))
	}

	if err := s.engine.Run(ctx, flows.BookAppointment, bc, observers...); err != nil {
		s.metrics.ObserveFlow(flows.BookAppointment, "error")
		attrs := []any{"doctor_id", doctor.ID, "error", err}
		if bc.Event != nil {
			attrs = append(attrs, "orphaned_event_id", bc.Event.ID)
		}
		s.log.Error("booking integration failed", attrs...)
		return nil, err
	}

	s.metrics.ObserveFlow(flows.BookAppointment, "ok")
	return &Result{
		Event:       bc.Event,
		MeetingRoom: bc.MeetingRoom,
	}, nil
}

type progressObserver ProgressFunc

func (p progressObserver) StepStarted(_, step, label string) { p(step, label) }
func (p progressObserver) StepSkipped(string, string) {}
func (p progressObserver) StepFinished(string, string, time.Duration, error) {}

type stepObserver struct {
	metrics *metrics.IntegrationMetrics
	log     *logger.Logger
}

func (o *stepObserver) StepStarted(flow, step, label string) {
	o.log.Debug("step started", "flow", flow, "step", step, "label", label)
}

func (o *stepObserver) StepSkipped(flow, step string) {
	o.metrics.ObserveStep(flow, step, "skipped", 0)
	o.log.Debug("step skipped", "flow", flow, "step", step)
}

func (o *stepObserver) StepFinished(flow, step string, elapsed time.Duration, err error) {
	if err != nil {
		o.metrics.ObserveStep(flow, step, "error", elapsed.Seconds())
		o.log.Warn("step failed", "flow", flow, "step", step, "duration", elapsed, "error", err)
		return
	}
	o.metrics.ObserveStep(flow, step, "ok", elapsed.Seconds())
	o.log.Debug("step finished", "flow", flow, "step", step, "duration", elapsed)
}
