package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for fields without a tag.
const EnvPrefix = "WATCHSTORE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "WATCHSTORE_APP_ENV"
	EnvPort       = "WATCHSTORE_APP_PORT"
	EnvDBDSN      = "WATCHSTORE_DB_DSN"
	EnvDBHost     = "WATCHSTORE_DB_HOST"
	EnvDBUser     = "WATCHSTORE_DB_USER"
	EnvDBName     = "WATCHSTORE_DB_NAME"
	EnvRedisURL   = "WATCHSTORE_REDIS_URL"
	EnvAuthBase   = "WATCHSTORE_AUTH_BASE_URL"
	EnvAuthAPIKey = "WATCHSTORE_AUTH_API_KEY"
	EnvAdminToken = "WATCHSTORE_ADMIN_TOKEN"
)

// splitDBEnvVars are the variables required when no DSN is supplied.
var splitDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
