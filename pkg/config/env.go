package config

// EnvPrefix namespaces every variable read by Load. Fields carry their full
// variable name in the envconfig tag, so lookups fall back to that name.
const EnvPrefix = "FRAMEHOUSE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "FRAMEHOUSE_APP_ENV"
	EnvPort                   = "FRAMEHOUSE_APP_PORT"
	EnvDBDSN                  = "FRAMEHOUSE_DB_DSN"
	EnvDBHost                 = "FRAMEHOUSE_DB_HOST"
	EnvDBUser                 = "FRAMEHOUSE_DB_USER"
	EnvDBName                 = "FRAMEHOUSE_DB_NAME"
	EnvRedisURL               = "FRAMEHOUSE_REDIS_URL"
	EnvJWTSecret              = "FRAMEHOUSE_JWT_SECRET"
	EnvJWTIssuer              = "FRAMEHOUSE_JWT_ISSUER"
	EnvJWTExpMins             = "FRAMEHOUSE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "FRAMEHOUSE_REFRESH_TOKEN_TTL_MINUTES"
	EnvUseSQLite              = "FRAMEHOUSE_USE_SQLITE"
	EnvDepositPercent         = "FRAMEHOUSE_DEPOSIT_PERCENT"
	EnvSlotStartHour          = "FRAMEHOUSE_SLOT_START_HOUR"
	EnvSlotEndHour            = "FRAMEHOUSE_SLOT_END_HOUR"
	EnvStripeAPIKey           = "FRAMEHOUSE_STRIPE_API_KEY"
	EnvStripeWebhookSecret    = "FRAMEHOUSE_STRIPE_WEBHOOK_SECRET"
	EnvPubSubBookingTopic     = "FRAMEHOUSE_PUBSUB_BOOKING_TOPIC"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
