package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreJSONFile = "jsonfile"
	StorePostgres = "postgres"
)

// PostgreSQL drivers.
const (
	DriverPGX  = "pgx"
	DriverSQL  = "sql"
	DriverSQLX = "sqlx"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

var (
	// ErrLoadingEnvFileFailed is returned when an existing .env file cannot be read.
	ErrLoadingEnvFileFailed = errors.New("loading env file failed")

	// ErrParsingEnvFailed is returned when the environment does not fit the Config.
	ErrParsingEnvFailed = errors.New("parsing environment failed")

	// ErrInvalidConfig is returned by Validate.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config is the runtime configuration of the loan sweeper.
type Config struct {
	Store       string `env:"LOAN_STORE" envDefault:"memory"`
	LoanFile    string `env:"LOAN_FILE" envDefault:"loans.json"`
	CatalogFile string `env:"CATALOG_FILE" envDefault:"catalog.json"`

	OverdueSchedule string `env:"OVERDUE_SCHEDULE" envDefault:"@every 1h"`
	DueDateSchedule string `env:"DUE_DATE_SCHEDULE" envDefault:"0 8 * * *"`
	RunOnStart      bool   `env:"RUN_ON_START" envDefault:"true"`

	MetricsAddr     string        `env:"METRICS_ADDR" envDefault:":9090"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	LogLevel    slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat   string     `env:"LOG_FORMAT" envDefault:"text"`
	OTelEnabled bool       `env:"OTEL_ENABLED" envDefault:"false"`

	RetryMaxAttempts int           `env:"RETRY_MAX_ATTEMPTS" envDefault:"6"`
	RetryBaseDelay   time.Duration `env:"RETRY_BASE_DELAY" envDefault:"10ms"`

	Postgres PostgresConfig `envPrefix:"POSTGRES_"`
}

// PostgresConfig configures the connection pool of the postgres store.
type PostgresConfig struct {
	DSN             string        `env:"DSN"`
	Driver          string        `env:"DRIVER" envDefault:"pgx"`
	TableName       string        `env:"TABLE" envDefault:"loans"`
	CreateSchema    bool          `env:"CREATE_SCHEMA" envDefault:"true"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"8"`
	MinConns        int           `env:"MIN_CONNS" envDefault:"2"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"4"`
	MaxConnLifetime time.Duration `env:"MAX_CONN_LIFETIME" envDefault:"1h"`
	MaxConnIdleTime time.Duration `env:"MAX_CONN_IDLE_TIME" envDefault:"5m"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
}

// Load reads the given .env files, if they exist, and parses the environment into a validated Config.
func Load(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return Config{}, errors.Join(ErrLoadingEnvFileFailed, fmt.Errorf("%s: %w", file, err))
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrParsingEnvFailed, err)
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the values env tags cannot express.
func (c Config) Validate() error {
	var errs []error

	if !slices.Contains([]string{StoreMemory, StoreJSONFile, StorePostgres}, c.Store) {
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}

	if c.Store == StoreJSONFile && c.LoanFile == "" {
		errs = append(errs, errors.New("LOAN_FILE must be set for the jsonfile store"))
	}

	if c.Store == StorePostgres {
		if c.Postgres.DSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN must be set for the postgres store"))
		}

		if !slices.Contains([]string{DriverPGX, DriverSQL, DriverSQLX}, c.Postgres.Driver) {
			errs = append(errs, fmt.Errorf("unknown postgres driver %q", c.Postgres.Driver))
		}
	}

	if !slices.Contains([]string{LogFormatText, LogFormatJSON}, c.LogFormat) {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}

	if c.RetryMaxAttempts < 1 {
		errs = append(errs, errors.New("RETRY_MAX_ATTEMPTS must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}

	return nil
}
