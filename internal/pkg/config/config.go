package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Booking   BookingConfig
	Reconcile ReconcileConfig
	Redis     RedisConfig
	Events    EventsConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host          string `envconfig:"DB_HOST" default:"localhost"`
	Port          string `envconfig:"DB_PORT" default:"5432"`
	User          string `envconfig:"DB_USER" required:"true"`
	Password      string `envconfig:"DB_PASSWORD" required:"true"`
	DBName        string `envconfig:"DB_NAME" required:"true"`
	SSLMode       string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone      string `envconfig:"DB_TIMEZONE" default:"Asia/Ho_Chi_Minh"`
	MaxConns      int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	RunMigrations bool   `envconfig:"DB_RUN_MIGRATIONS" default:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Ho_Chi_Minh"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"25200"` // 7*60*60
}

type JWTConfig struct {
	Secret               string `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration  string `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"15m"`
	RefreshTokenDuration string `envconfig:"JWT_REFRESH_TOKEN_DURATION" default:"168h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"lax"`
}

type BookingConfig struct {
	Horizon              time.Duration `envconfig:"BOOKING_HORIZON" default:"24h"`
	TxTimeout            time.Duration `envconfig:"BOOKING_TX_TIMEOUT" default:"5s"`
	CodeLength           int           `envconfig:"BOOKING_CODE_LENGTH" default:"8"`
	DeferCheckoutRelease bool          `envconfig:"BOOKING_DEFER_CHECKOUT_RELEASE" default:"true"`
}

type ReconcileConfig struct {
	Interval   time.Duration `envconfig:"RECONCILE_INTERVAL" default:"5s"`
	BatchSize  int           `envconfig:"RECONCILE_BATCH_SIZE" default:"10"`
	QueueSize  int           `envconfig:"RECONCILE_QUEUE_SIZE" default:"1024"`
	SweepEvery int           `envconfig:"RECONCILE_SWEEP_EVERY" default:"12"`
}

type RedisConfig struct {
	Enabled         bool          `envconfig:"REDIS_ENABLED" default:"true"`
	Addr            string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password        string        `envconfig:"REDIS_PASSWORD" default:""`
	DB              int           `envconfig:"REDIS_DB" default:"0"`
	AvailabilityTTL time.Duration `envconfig:"REDIS_AVAILABILITY_TTL" default:"30s"`
}

type EventsConfig struct {
	Enabled      bool          `envconfig:"EVENTS_ENABLED" default:"false"`
	Brokers      []string      `envconfig:"EVENTS_BROKERS" default:"localhost:9092"`
	Topic        string        `envconfig:"EVENTS_TOPIC" default:"booking-events"`
	PollInterval time.Duration `envconfig:"EVENTS_POLL_INTERVAL" default:"2s"`
	BatchSize    int           `envconfig:"EVENTS_BATCH_SIZE" default:"100"`
	MaxAttempts  int           `envconfig:"EVENTS_MAX_ATTEMPTS" default:"5"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the bounds envconfig tags cannot express.
func (c Config) Validate() error {
	switch {
	case c.Booking.Horizon <= 0:
		return fmt.Errorf("BOOKING_HORIZON must be positive, got %s", c.Booking.Horizon)
	case c.Booking.TxTimeout <= 0:
		return fmt.Errorf("BOOKING_TX_TIMEOUT must be positive, got %s", c.Booking.TxTimeout)
	case c.Booking.CodeLength < 6 || c.Booking.CodeLength > 32:
		return fmt.Errorf("BOOKING_CODE_LENGTH must be between 6 and 32, got %d", c.Booking.CodeLength)
	case c.Reconcile.Interval <= 0:
		return fmt.Errorf("RECONCILE_INTERVAL must be positive, got %s", c.Reconcile.Interval)
	case c.Reconcile.BatchSize <= 0 || c.Reconcile.QueueSize <= 0:
		return fmt.Errorf("RECONCILE_BATCH_SIZE and RECONCILE_QUEUE_SIZE must be positive")
	case c.Reconcile.SweepEvery < 0:
		return fmt.Errorf("RECONCILE_SWEEP_EVERY must not be negative, got %d", c.Reconcile.SweepEvery)
	case c.Events.Enabled && len(c.Events.Brokers) == 0:
		return fmt.Errorf("EVENTS_BROKERS is required when EVENTS_ENABLED is set")
	case c.Events.Enabled && c.Events.MaxAttempts <= 0:
		return fmt.Errorf("EVENTS_MAX_ATTEMPTS must be positive, got %d", c.Events.MaxAttempts)
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
			TimeZone: "Asia/Ho_Chi_Minh",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Ho_Chi_Minh",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 25200,
		},
		JWT: JWTConfig{
			Secret:               "test-secret-key-for-jwt-signing",
			AccessTokenDuration:  "15m",
			RefreshTokenDuration: "168h",
		},
		Cookie: CookieConfig{
			Secure:   false,
			SameSite: "lax",
		},
		Booking: BookingConfig{
			Horizon:              24 * time.Hour,
			TxTimeout:            5 * time.Second,
			CodeLength:           8,
			DeferCheckoutRelease: true,
		},
		Reconcile: ReconcileConfig{
			Interval:   100 * time.Millisecond,
			BatchSize:  10,
			QueueSize:  64,
			SweepEvery: 1,
		},
		Redis: RedisConfig{
			Addr:            "localhost:6379",
			AvailabilityTTL: 30 * time.Second,
		},
		Events: EventsConfig{
			Enabled:      false,
			Topic:        "booking-events",
			PollInterval: time.Second,
			BatchSize:    100,
			MaxAttempts:  5,
		},
	}
}
