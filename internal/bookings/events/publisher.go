package events

import (
	"context"
	"time"

	"skincare/pkg/kafka"
	kafka_config "skincare/pkg/kafka/config"
	kafka_middleware "skincare/pkg/kafka/middleware"
	"skincare/pkg/logger"
	"skincare/pkg/metrics"
	"skincare/pkg/model"
)

const (
	EventAppointmentBooked = "appointment.booked"
	SchemaVersion          = "1"
)

// AppointmentBooked is the payload of EventAppointmentBooked.
type AppointmentBooked struct {
	Appointment model.Appointment `json:"appointment"`
	DoctorName  string            `json:"doctor_name"`
	DoctorEmail string            `json:"doctor_email"`
	BookedAt    time.Time         `json:"booked_at"`
}

type Publisher interface {
	PublishAppointmentBooked(ctx context.Context, appointment *model.Appointment, doctor *model.Doctor) error
	Close() error
}

// NewPublisher returns a Kafka-backed publisher when brokers are configured
// and a logging no-op otherwise.
func NewPublisher(cfg *kafka_config.Config, topic, source string, m *metrics.BookingMetrics, log *logger.Logger) (Publisher, error) {
	if log == nil {
		log = logger.Discard()
	}
	log = log.WithComponent("booking_events")
	if cfg == nil || !cfg.Enabled() {
		log.Info("Kafka brokers not configured, booking events will only be logged")
		return NewNoopPublisher(log), nil
	}

	producer, err := kafka.NewProducer(cfg, topic, log)
	if err != nil {
		return nil, err
	}
	if cfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(log))
		producer.Use(kafka_middleware.MetricsProducerMiddleware(m))
	}
	log.Info("Booking events publisher initialized", "topic", topic, "brokers", cfg.Brokers)
	return NewKafkaPublisher(producer, source, log), nil
}

type KafkaPublisher struct {
	producer *kafka.Producer
	source   string
	now      func() time.Time
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, source string, log *logger.Logger) *KafkaPublisher {
	if log == nil {
		log = logger.Discard()
	}
	return &KafkaPublisher{
		producer: producer,
		source:   source,
		now:      time.Now,
		log:      log,
	}
}

func (p *KafkaPublisher) PublishAppointmentBooked(ctx context.Context, appointment *model.Appointment, doctor *model.Doctor) error {
	now := p.now()
	msg, err := kafka.NewMessage().
		WithKey(appointment.ID).
		WithValue(bookedPayload(appointment, doctor, now)).
		WithEventID("").
		WithEventType(EventAppointmentBooked).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithTimestamp(now).
		Build()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

type NoopPublisher struct {
	log *logger.Logger
}

func NewNoopPublisher(log *logger.Logger) *NoopPublisher {
	if log == nil {
		log = logger.Discard()
	}
	return &NoopPublisher{log: log}
}

func (p *NoopPublisher) PublishAppointmentBooked(_ context.Context, appointment *model.Appointment, doctor *model.Doctor) error {
	p.log.Info("Booking event",
		"event_type", EventAppointmentBooked,
		"appointment_id", appointment.ID,
		"doctor", doctor.Name,
	)
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}

func bookedPayload(appointment *model.Appointment, doctor *model.Doctor, at time.Time) AppointmentBooked {
	return AppointmentBooked{
		Appointment: *appointment,
		DoctorName:  doctor.Name,
		DoctorEmail: doctor.Email,
		BookedAt:    at.UTC(),
	}
}
