package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"skincare/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	ClinicTimeZone      string
	AppointmentDuration time.Duration

	CalendarEventLatency time.Duration
	MeetingRoomLatency   time.Duration
	InvitationsLatency   time.Duration
	EmailsLatency        time.Duration

	ErrorResetDelay       time.Duration
	IntegrationEnabled    bool
	SimulationFailureRate float64

	SessionTTL             time.Duration
	SessionCleanupInterval time.Duration

	BookingEventsTopic string

	Log *logger.Logger
}

// Load reads .env (if present) and the environment, validates the result
// and exits the process on invalid configuration.
func Load(serviceName string) *Config {
	_ = godotenv.Load()

	cfg := FromEnv()
	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: true,
		Service:   serviceName,
	})

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv builds a Config from environment variables without validating it.
// The returned config carries a discarding logger.
func FromEnv() *Config {
	return &Config{
		Port:      getEnvStr(EnvPort, DefaultPort),
		LogLevel:  getEnvStr(EnvLogLevel, DefaultLogLevel),
		LogFormat: getEnvStr(EnvLogFormat, DefaultLogFormat),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		ClinicTimeZone:      getEnvStr(EnvClinicTimeZone, DefaultClinicTimeZone),
		AppointmentDuration: getEnvDuration(EnvAppointmentDuration, DefaultAppointmentDuration),

		CalendarEventLatency: getEnvDuration(EnvCalendarEventLatency, DefaultCalendarEventLatency),
		MeetingRoomLatency:   getEnvDuration(EnvMeetingRoomLatency, DefaultMeetingRoomLatency),
		InvitationsLatency:   getEnvDuration(EnvInvitationsLatency, DefaultInvitationsLatency),
		EmailsLatency:        getEnvDuration(EnvEmailsLatency, DefaultEmailsLatency),

		ErrorResetDelay:       getEnvDuration(EnvErrorResetDelay, DefaultErrorResetDelay),
		IntegrationEnabled:    getEnvBool(EnvIntegrationEnabled, DefaultIntegrationEnabled),
		SimulationFailureRate: getEnvFloat(EnvSimulationFailureRate, DefaultSimulationFailureRate),

		SessionTTL:             getEnvDuration(EnvSessionTTL, DefaultSessionTTL),
		SessionCleanupInterval: getEnvDuration(EnvSessionCleanupInterval, DefaultSessionCleanupInterval),

		BookingEventsTopic: getEnvStr(EnvBookingEventsTopic, DefaultBookingEventsTopic),

		Log: logger.Discard(),
	}
}

// Location resolves ClinicTimeZone. Validate guarantees it loads.
func (cfg *Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.ClinicTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if _, err := time.LoadLocation(cfg.ClinicTimeZone); err != nil {
		errors = append(errors, fmt.Sprintf("ClinicTimeZone must be a valid IANA time zone, got: %s", cfg.ClinicTimeZone))
	}
	if cfg.AppointmentDuration <= 0 {
		errors = append(errors, fmt.Sprintf("AppointmentDuration must be positive, got: %s", cfg.AppointmentDuration))
	}

	latencies := []struct {
		name  string
		value time.Duration
	}{
		{"CalendarEventLatency", cfg.CalendarEventLatency},
		{"MeetingRoomLatency", cfg.MeetingRoomLatency},
		{"InvitationsLatency", cfg.InvitationsLatency},
		{"EmailsLatency", cfg.EmailsLatency},
		{"ErrorResetDelay", cfg.ErrorResetDelay},
	}
	for _, l := range latencies {
		if l.value < 0 {
			errors = append(errors, fmt.Sprintf("%s cannot be negative, got: %s", l.name, l.value))
		}
	}

	if cfg.SimulationFailureRate < 0 || cfg.SimulationFailureRate > 1 {
		errors = append(errors, fmt.Sprintf("SimulationFailureRate must be between 0 and 1, got: %v", cfg.SimulationFailureRate))
	}

	if cfg.SessionTTL <= 0 {
		errors = append(errors, fmt.Sprintf("SessionTTL must be positive, got: %s", cfg.SessionTTL))
	}
	if cfg.SessionCleanupInterval <= 0 {
		errors = append(errors, fmt.Sprintf("SessionCleanupInterval must be positive, got: %s", cfg.SessionCleanupInterval))
	}

	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.BookingEventsTopic == "" {
		errors = append(errors, "BookingEventsTopic cannot be empty")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"clinic_time_zone", cfg.ClinicTimeZone,
		"appointment_duration", cfg.AppointmentDuration,
		"calendar_event_latency", cfg.CalendarEventLatency,
		"meeting_room_latency", cfg.MeetingRoomLatency,
		"invitations_latency", cfg.InvitationsLatency,
		"emails_latency", cfg.EmailsLatency,
		"error_reset_delay", cfg.ErrorResetDelay,
		"integration_enabled", cfg.IntegrationEnabled,
		"simulation_failure_rate", cfg.SimulationFailureRate,
		"session_ttl", cfg.SessionTTL,
		"session_cleanup_interval", cfg.SessionCleanupInterval,
		"booking_events_topic", cfg.BookingEventsTopic,
	)
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
