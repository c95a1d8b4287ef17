package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable read by the services.
	EnvPrefix = "PIXELCART"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "PIXELCART_DB_DSN"
	EnvDBHost = "PIXELCART_DB_HOST"
	EnvDBUser = "PIXELCART_DB_USER"
	EnvDBName = "PIXELCART_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

// Config aggregates the settings shared by the catalog, orders and analytics
// binaries. Each binary reads the sections it needs; BigQuery settings are
// only required by the analytics service.
type Config struct {
	App          AppConfig
	DB           DBConfig
	FeatureFlags FeatureFlagsConfig
	Migrate      MigrateConfig
	GCP          GCPConfig
	BigQuery     BigQueryConfig
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

// LoadWithoutDB parses config without requiring database settings. The
// analytics binary talks only to BigQuery.
func LoadWithoutDB() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PIXELCART_APP_ENV" required:"true"`
	Port         string `envconfig:"PIXELCART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PIXELCART_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"PIXELCART_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"PIXELCART_LOG_WARN_STACK" default:"false"`
}

// LogConsole reports whether log output should use the console writer
// instead of JSON lines.
func (a AppConfig) LogConsole() bool {
	return strings.EqualFold(a.LogFormat, "console")
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PIXELCART_DB_DSN"`
	Driver string `envconfig:"PIXELCART_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"PIXELCART_DB_HOST"`
	Port     int    `envconfig:"PIXELCART_DB_PORT" default:"5432"`
	User     string `envconfig:"PIXELCART_DB_USER"`
	Password string `envconfig:"PIXELCART_DB_PASSWORD"`
	Name     string `envconfig:"PIXELCART_DB_NAME"`
	SSLMode  string `envconfig:"PIXELCART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PIXELCART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PIXELCART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PIXELCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PIXELCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"PIXELCART_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"PIXELCART_SQLITE_PATH" default:"pixelcart.db"`
	AutoMigrate bool   `envconfig:"PIXELCART_AUTO_MIGRATE" default:"false"`
}

// MigrateConfig controls the startup schema-initialization retry loop.
type MigrateConfig struct {
	Attempts int           `envconfig:"PIXELCART_MIGRATE_ATTEMPTS" default:"5"`
	Delay    time.Duration `envconfig:"PIXELCART_MIGRATE_DELAY" default:"5s"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"PIXELCART_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"PIXELCART_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"PIXELCART_GOOGLE_APPLICATION_CREDENTIALS"`
}

type BigQueryConfig struct {
	Dataset     string `envconfig:"PIXELCART_BIGQUERY_DATASET" default:"pixelcart"`
	EventsTable string `envconfig:"PIXELCART_BIGQUERY_EVENTS_TABLE" default:"analytics_events"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
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
