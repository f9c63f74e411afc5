package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "skincare"

// IntegrationMetrics tracks the steps of integration flows.
type IntegrationMetrics struct {
	stepsTotal  *prometheus.CounterVec
	stepLatency *prometheus.HistogramVec
	flowsTotal  *prometheus.CounterVec
}

func NewIntegrationMetrics(reg prometheus.Registerer) *IntegrationMetrics {
	m := &IntegrationMetrics{
		stepsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "integration",
			Name:      "steps_total",
			Help:      "Integration steps by outcome (ok, error, skipped)",
		}, []string{"flow", "step", "status"}),
		stepLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "integration",
			Name:      "step_duration_seconds",
			Help:      "Duration of integration steps",
			Buckets:   []float64{.05, .1, .25, .5, 1, 1.5, 2, 3, 5},
		}, []string{"flow", "step"}),
		flowsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "integration",
			Name:      "flows_total",
			Help:      "Integration flows by outcome",
		}, []string{"flow", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.stepsTotal, m.stepLatency, m.flowsTotal)
	return m
}

func (m *IntegrationMetrics) ObserveStep(flow, step, status string, seconds float64) {
	if m == nil {
		return
	}
	m.stepsTotal.WithLabelValues(flow, step, status).Inc()
	if seconds > 0 {
		m.stepLatency.WithLabelValues(flow, step).Observe(seconds)
	}
}

func (m *IntegrationMetrics) ObserveFlow(flow, status string) {
	if m == nil {
		return
	}
	m.flowsTotal.WithLabelValues(flow, status).Inc()
}

// BookingMetrics tracks booking submissions and live sessions.
type BookingMetrics struct {
	bookingsTotal  *prometheus.CounterVec
	sessionsActive prometheus.Gauge
	eventsTotal    *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Appointment submissions by variant and outcome",
		}, []string{"variant", "outcome"}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "sessions_active",
			Help:      "Booking sessions currently held in memory",
		}),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "events_published_total",
			Help:      "Booking events handed to the publisher by outcome",
		}, []string{"event_type", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.sessionsActive, m.eventsTotal)
	return m
}

func (m *BookingMetrics) ObserveSubmission(variant, outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(variant, outcome).Inc()
}

func (m *BookingMetrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.sessionsActive.Set(float64(n))
}

func (m *BookingMetrics) ObserveEvent(eventType string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.eventsTotal.WithLabelValues(eventType, status).Inc()
}
