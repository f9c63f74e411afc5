package config

import "time"

const (
	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 64 * 1024 // 64KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 35 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultClinicTimeZone      = "America/New_York"
	DefaultAppointmentDuration = 60 * time.Minute

	DefaultCalendarEventLatency = 1500 * time.Millisecond
	DefaultMeetingRoomLatency   = 1000 * time.Millisecond
	DefaultInvitationsLatency   = 800 * time.Millisecond
	DefaultEmailsLatency        = 1200 * time.Millisecond

	DefaultErrorResetDelay       = 3 * time.Second
	DefaultIntegrationEnabled    = true
	DefaultSimulationFailureRate = 0.0

	DefaultSessionTTL             = 30 * time.Minute
	DefaultSessionCleanupInterval = 5 * time.Minute

	DefaultBookingEventsTopic = "appointments.booked"
)
