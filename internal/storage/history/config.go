package history

import (
	"fmt"
	"time"
)

// Config contains submission history database settings.
type Config struct {
	// Driver selects the SQL backend; "sqlite" or "postgres".
	Driver string `json:"driver" yaml:"driver"`
	// DSN is the connection string. For sqlite this is a file path or
	// ":memory:"; for postgres a standard connection URL.
	DSN string `json:"dsn" yaml:"dsn"`

	// Connection pool settings.
	MaxOpenConns    int           `json:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime"`

	DefaultTimeout time.Duration `json:"default_timeout" yaml:"default_timeout"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Driver:          DriverSQLite,
		DSN:             "history.db",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		DefaultTimeout:  30 * time.Second,
	}
}

// SQLiteConfig returns a configuration for a SQLite store at path.
func SQLiteConfig(path string) *Config {
	config := NewConfig()
	config.Driver = DriverSQLite
	config.DSN = path
	config.MaxOpenConns = 1 // SQLite limitation
	config.MaxIdleConns = 1
	return config
}

// PostgresConfig returns a configuration for a PostgreSQL store.
func PostgresConfig(dsn string) *Config {
	config := NewConfig()
	config.Driver = DriverPostgres
	config.DSN = dsn
	return config
}

// Validate checks the configuration and normalizes the driver name.
func (c *Config) Validate() error {
	switch c.Driver {
	case "sqlite", "sqlite3":
		c.Driver = DriverSQLite
	case "postgres", "postgresql":
		c.Driver = DriverPostgres
	default:
		return fmt.Errorf("unsupported history driver: %s", c.Driver)
	}
	if c.DSN == "" {
		return ErrMissingDSN
	}
	if c.MaxOpenConns < 0 {
		return fmt.Errorf("max_open_conns must be non-negative, got %d", c.MaxOpenConns)
	}
	return nil
}
