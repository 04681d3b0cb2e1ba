package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Eventing      EventingConfig
	Booking       BookingConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
	Stripe        StripeConfig
	Metrics       MetricsConfig
	Maintenance   MaintenanceConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	if err := cfg.Booking.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"FRAMEHOUSE_APP_ENV" required:"true"`
	Port         string   `envconfig:"FRAMEHOUSE_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"FRAMEHOUSE_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"FRAMEHOUSE_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"FRAMEHOUSE_CORS_ORIGINS" default:"*"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FRAMEHOUSE_DB_DSN"`
	Driver string `envconfig:"FRAMEHOUSE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FRAMEHOUSE_DB_HOST"`
	LegacyPort     int    `envconfig:"FRAMEHOUSE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FRAMEHOUSE_DB_USER"`
	LegacyPassword string `envconfig:"FRAMEHOUSE_DB_PASSWORD"`
	LegacyName     string `envconfig:"FRAMEHOUSE_DB_NAME"`
	LegacySSLMode  string `envconfig:"FRAMEHOUSE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FRAMEHOUSE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FRAMEHOUSE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FRAMEHOUSE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FRAMEHOUSE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FRAMEHOUSE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FRAMEHOUSE_REDIS_ADDR"`
	Password     string        `envconfig:"FRAMEHOUSE_REDIS_PASSWORD"`
	DB           int           `envconfig:"FRAMEHOUSE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FRAMEHOUSE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FRAMEHOUSE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FRAMEHOUSE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FRAMEHOUSE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FRAMEHOUSE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"FRAMEHOUSE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"FRAMEHOUSE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"FRAMEHOUSE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"FRAMEHOUSE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FRAMEHOUSE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FRAMEHOUSE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FRAMEHOUSE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FRAMEHOUSE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FRAMEHOUSE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"FRAMEHOUSE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"FRAMEHOUSE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"FRAMEHOUSE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"FRAMEHOUSE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"FRAMEHOUSE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"FRAMEHOUSE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"FRAMEHOUSE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"FRAMEHOUSE_AUTO_MIGRATE" default:"false"`
}

type EventingConfig struct {
	WebhookIdempotencyTTL time.Duration `envconfig:"FRAMEHOUSE_WEBHOOK_IDEMPOTENCY_TTL" default:"720h"`
	HTTPIdempotencyTTL    time.Duration `envconfig:"FRAMEHOUSE_HTTP_IDEMPOTENCY_TTL" default:"168h"`
}

// BookingConfig holds studio-wide booking rules.
type BookingConfig struct {
	StudioName     string `envconfig:"FRAMEHOUSE_STUDIO_NAME" default:"Framehouse Studio"`
	Currency       string `envconfig:"FRAMEHOUSE_CURRENCY" default:"usd"`
	DepositPercent int    `envconfig:"FRAMEHOUSE_DEPOSIT_PERCENT" default:"50"`
	SlotStartHour  int    `envconfig:"FRAMEHOUSE_SLOT_START_HOUR" default:"10"`
	SlotEndHour    int    `envconfig:"FRAMEHOUSE_SLOT_END_HOUR" default:"18"`
}

func (b BookingConfig) validate() error {
	if b.DepositPercent <= 0 || b.DepositPercent > 100 {
		return fmt.Errorf("%s must be between 1 and 100", EnvDepositPercent)
	}
	if b.SlotStartHour < 0 || b.SlotEndHour > 23 || b.SlotStartHour >= b.SlotEndHour {
		return fmt.Errorf("%s must be before %s", EnvSlotStartHour, EnvSlotEndHour)
	}
	return nil
}

type GCPConfig struct {
	ProjectID              string `envconfig:"FRAMEHOUSE_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"FRAMEHOUSE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"FRAMEHOUSE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	BookingTopic string `envconfig:"FRAMEHOUSE_PUBSUB_BOOKING_TOPIC" default:"fh-booking-events"`
	DLQTopic     string `envconfig:"FRAMEHOUSE_PUBSUB_DLQ_TOPIC" default:"fh-booking-events-dlq"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"FRAMEHOUSE_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"FRAMEHOUSE_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"FRAMEHOUSE_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

// MaintenanceConfig drives cmd/cron-worker.
type MaintenanceConfig struct {
	Interval            time.Duration `envconfig:"FRAMEHOUSE_MAINTENANCE_INTERVAL" default:"24h"`
	LockTTL             time.Duration `envconfig:"FRAMEHOUSE_MAINTENANCE_LOCK_TTL" default:"1h"`
	OutboxRetentionDays int           `envconfig:"FRAMEHOUSE_OUTBOX_RETENTION_DAYS" default:"30"`
}

type StripeConfig struct {
	APIKey string `envconfig:"FRAMEHOUSE_STRIPE_API_KEY"`
	Secret string `envconfig:"FRAMEHOUSE_STRIPE_WEBHOOK_SECRET"`
	Env    string `envconfig:"FRAMEHOUSE_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"FRAMEHOUSE_METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"FRAMEHOUSE_METRICS_PATH" default:"/metrics"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if db.DSN != "" {
		return nil
	}
	if useSQLite {
		db.DSN = "file:framehouse.db?cache=shared"
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
