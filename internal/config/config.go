// Package config loads the dsv tool's settings from environment variables.
// Every setting has a default; values are validated once at startup so a
// bad setting fails before any input is read.
package config

import "time"

// Config holds all tool configuration.
type Config struct {
	Parse    ParseConfig
	Map      MapConfig
	Input    InputConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// ParseConfig holds DSV parsing defaults. Command-line flags override them.
type ParseConfig struct {
	// Delimiter separates cells within a line; one ASCII character (default: ,)
	Delimiter rune `env:"DSV_DELIMITER" default:","`

	// Header marks the first parsed row as a header (default: true)
	Header bool `env:"DSV_HEADER" default:"true"`

	// Owned copies cell text out of the input buffer after parsing (default: false)
	Owned bool `env:"DSV_OWNED" default:"false"`
}

// MapConfig bounds the worker pool used for whole-table transforms.
type MapConfig struct {
	// Workers is the maximum number of concurrent workers; 0 means GOMAXPROCS (default: 0)
	Workers int `env:"MAP_WORKERS" default:"0"`

	// ChunkRows is the number of rows handed to a worker at a time (default: 256)
	ChunkRows int `env:"MAP_CHUNK_ROWS" default:"256"`
}

// InputConfig holds limits on the text read before parsing.
type InputConfig struct {
	// MaxSize is the maximum input size in bytes (default: 100MB)
	MaxSize int64 `env:"INPUT_MAX_SIZE" default:"104857600"`
}

// DatabaseConfig holds settings for the load command. The URL is only
// checked when a command needs the database; see RequireDatabase.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// CopyTimeout bounds a single COPY into the database (default: 10m)
	CopyTimeout time.Duration `env:"DB_COPY_TIMEOUT" default:"10m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
