package config

const (
	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvClinicTimeZone      = "CLINIC_TIME_ZONE"
	EnvAppointmentDuration = "APPOINTMENT_DURATION"

	EnvCalendarEventLatency = "CALENDAR_EVENT_LATENCY"
	EnvMeetingRoomLatency   = "MEETING_ROOM_LATENCY"
	EnvInvitationsLatency   = "INVITATIONS_LATENCY"
	EnvEmailsLatency        = "EMAILS_LATENCY"

	EnvErrorResetDelay       = "ERROR_RESET_DELAY"
	EnvIntegrationEnabled    = "BOOKING_INTEGRATION_ENABLED"
	EnvSimulationFailureRate = "SIMULATION_FAILURE_RATE"

	EnvSessionTTL             = "SESSION_TTL"
	EnvSessionCleanupInterval = "SESSION_CLEANUP_INTERVAL"

	EnvBookingEventsTopic = "BOOKING_EVENTS_TOPIC"
)
