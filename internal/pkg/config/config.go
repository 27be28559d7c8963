package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timezone, timeouts, policy defaults)
// -----------------------------------------------------------------------------

type Config struct {
	Server       ServerConfig
	DB           DBConfig
	CORS         CORSConfig
	Log          LogConfig
	JWT          JWTConfig
	Store        StoreConfig
	Booking      BookingConfig
	Cancellation CancellationConfig
	Calendar     CalendarConfig
	Notify       NotifyConfig
	Reminder     ReminderConfig
	RateLimit    RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME" default:"scheduler"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Issuer   string        `envconfig:"JWT_ISSUER" default:"appointment-scheduler"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

// StoreConfig selects the persistence backend: "postgres" or "memory".
type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

type BookingConfig struct {
	DefaultSlotMinutes  int           `envconfig:"BOOKING_DEFAULT_SLOT_MINUTES" default:"30"`
	LockTimeout         time.Duration `envconfig:"BOOKING_LOCK_TIMEOUT" default:"2s"`
	TimeZone            string        `envconfig:"SCHEDULE_TIMEZONE" default:"UTC"`
	DefaultHoursEnabled bool          `envconfig:"BOOKING_DEFAULT_HOURS_ENABLED" default:"true"`
}

type CancellationConfig struct {
	LimitHours   int `envconfig:"CANCELLATION_LIMIT_HOURS" default:"24"`
	GraceMinutes int `envconfig:"CANCELLATION_GRACE_MINUTES" default:"15"`
	// ProviderPolicies maps a provider id to "<limitHours>/<graceMinutes>",
	// e.g. CANCELLATION_PROVIDER_POLICIES=<uuid>:48/30,<uuid>:2/0
	ProviderPolicies map[string]string `envconfig:"CANCELLATION_PROVIDER_POLICIES"`
}

type CalendarConfig struct {
	DefaultLocale string `envconfig:"CALENDAR_DEFAULT_LOCALE" default:"ISO"`
}

// NotifyConfig selects the notification sink: "log", "postgres" or "kafka".
type NotifyConfig struct {
	Sink         string   `envconfig:"NOTIFY_SINK" default:"log"`
	QueueSize    int      `envconfig:"NOTIFY_QUEUE_SIZE" default:"100"`
	KafkaBrokers []string `envconfig:"NOTIFY_KAFKA_BROKERS"`
	KafkaTopic   string   `envconfig:"NOTIFY_KAFKA_TOPIC" default:"appointment-notifications"`
}

type ReminderConfig struct {
	Enabled  bool          `envconfig:"REMINDER_ENABLED" default:"false"`
	Interval time.Duration `envconfig:"REMINDER_INTERVAL" default:"1h"`
	Lead     time.Duration `envconfig:"REMINDER_LEAD" default:"24h"`
}

// RateLimitConfig selects the limiter: "memory", "redis" or "off".
type RateLimitConfig struct {
	Driver        string        `envconfig:"RATE_LIMIT_DRIVER" default:"memory"`
	RPS           float64       `envconfig:"RATE_LIMIT_RPS" default:"10"`
	Burst         int           `envconfig:"RATE_LIMIT_BURST" default:"20"`
	Limit         int           `envconfig:"RATE_LIMIT_WINDOW_LIMIT" default:"600"`
	Window        time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
	FailOpen      bool          `envconfig:"RATE_LIMIT_FAIL_OPEN" default:"true"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// Location resolves SCHEDULE_TIMEZONE, the zone in which provider civil times are read.
func (c BookingConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}
	switch c.Notify.Sink {
	case "log", "postgres", "kafka":
	default:
		return fmt.Errorf("unsupported NOTIFY_SINK %q", c.Notify.Sink)
	}
	if c.Notify.Sink == "postgres" && c.Store.Driver != "postgres" {
		return fmt.Errorf("NOTIFY_SINK=postgres requires STORE_DRIVER=postgres")
	}
	if c.Notify.Sink == "kafka" && len(c.Notify.KafkaBrokers) == 0 {
		return fmt.Errorf("NOTIFY_SINK=kafka requires NOTIFY_KAFKA_BROKERS")
	}
	switch c.RateLimit.Driver {
	case "memory", "redis", "off":
	default:
		return fmt.Errorf("unsupported RATE_LIMIT_DRIVER %q", c.RateLimit.Driver)
	}
	if c.Booking.DefaultSlotMinutes < 1 {
		return fmt.Errorf("BOOKING_DEFAULT_SLOT_MINUTES must be positive")
	}
	if c.Cancellation.LimitHours < 0 || c.Cancellation.GraceMinutes < 0 {
		return fmt.Errorf("cancellation limit and grace must not be negative")
	}
	if c.Reminder.Enabled && c.Reminder.Interval <= 0 {
		return fmt.Errorf("REMINDER_INTERVAL must be positive when REMINDER_ENABLED is set")
	}
	if _, err := c.Booking.Location(); err != nil {
		return err
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-signing-tokens",
			Issuer:   "appointment-scheduler-test",
			Duration: time.Hour,
		},
		Store: StoreConfig{Driver: "memory"},
		Booking: BookingConfig{
			DefaultSlotMinutes:  30,
			LockTimeout:         500 * time.Millisecond,
			TimeZone:            "UTC",
			DefaultHoursEnabled: true,
		},
		Cancellation: CancellationConfig{LimitHours: 24, GraceMinutes: 15},
		Calendar:     CalendarConfig{DefaultLocale: "ISO"},
		Notify:       NotifyConfig{Sink: "log", QueueSize: 16},
		Reminder:     ReminderConfig{Interval: time.Hour, Lead: 24 * time.Hour},
		RateLimit:    RateLimitConfig{Driver: "off", RPS: 100, Burst: 100, Limit: 1000, Window: time.Minute, FailOpen: true},
	}
}
