package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Auth         AuthConfig
	Gemini       GeminiConfig
	Admin        AdminConfig
	Session      SessionConfig
	CheckoutRate CheckoutRateLimitConfig
	FeatureFlags FeatureFlagsConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WATCHSTORE_APP_ENV" required:"true"`
	Port         string `envconfig:"WATCHSTORE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WATCHSTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WATCHSTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WATCHSTORE_DB_DSN"`
	Driver string `envconfig:"WATCHSTORE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"WATCHSTORE_DB_HOST"`
	Port     int    `envconfig:"WATCHSTORE_DB_PORT" default:"5432"`
	User     string `envconfig:"WATCHSTORE_DB_USER"`
	Password string `envconfig:"WATCHSTORE_DB_PASSWORD"`
	Name     string `envconfig:"WATCHSTORE_DB_NAME"`
	SSLMode  string `envconfig:"WATCHSTORE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WATCHSTORE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WATCHSTORE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WATCHSTORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WATCHSTORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WATCHSTORE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WATCHSTORE_REDIS_ADDR"`
	Password     string        `envconfig:"WATCHSTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"WATCHSTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WATCHSTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WATCHSTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WATCHSTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WATCHSTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WATCHSTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AuthConfig points at the passwordless sign-in collaborator.
type AuthConfig struct {
	BaseURL        string        `envconfig:"WATCHSTORE_AUTH_BASE_URL" required:"true"`
	APIKey         string        `envconfig:"WATCHSTORE_AUTH_API_KEY" required:"true"`
	RequestTimeout time.Duration `envconfig:"WATCHSTORE_AUTH_REQUEST_TIMEOUT" default:"10s"`
	RedirectURL    string        `envconfig:"WATCHSTORE_AUTH_REDIRECT_URL"`
}

type GeminiConfig struct {
	APIKey string `envconfig:"WATCHSTORE_GEMINI_API_KEY"`
	Model  string `envconfig:"WATCHSTORE_GEMINI_MODEL" default:"gemini-1.5-flash"`
}

// AdminConfig guards the reporting surface with a static token.
type AdminConfig struct {
	Token string `envconfig:"WATCHSTORE_ADMIN_TOKEN" required:"true"`
}

type SessionConfig struct {
	CookieName string        `envconfig:"WATCHSTORE_SESSION_COOKIE" default:"ws_session"`
	TTL        time.Duration `envconfig:"WATCHSTORE_SESSION_TTL" default:"24h"`
}

type CheckoutRateLimitConfig struct {
	Window     time.Duration `envconfig:"WATCHSTORE_CHECKOUT_RATE_LIMIT_WINDOW" default:"1m"`
	EmailLimit int           `envconfig:"WATCHSTORE_CHECKOUT_RATE_LIMIT_EMAIL_LIMIT" default:"5"`
	IPLimit    int           `envconfig:"WATCHSTORE_CHECKOUT_RATE_LIMIT_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"WATCHSTORE_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"WATCHSTORE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	hostValues := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range splitDBEnvVars {
		if hostValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
