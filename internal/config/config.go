package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Batch     BatchConfig     `yaml:"batch"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// BatchConfig holds load pipeline settings. Input and error files are
// resolved under BaseDir; only file names cross the API boundary.
type BatchConfig struct {
	BaseDir          string `yaml:"base_dir"           env:"BATCH_BASE_DIR"           env-default:"/opt/masterdata/data"`
	ChunkSize        int    `yaml:"chunk_size"         env:"BATCH_CHUNK_SIZE"         env-default:"10"`
	CountrySkipLimit int    `yaml:"country_skip_limit" env:"BATCH_COUNTRY_SKIP_LIMIT" env-default:"10"`
	TeamSkipLimit    int    `yaml:"team_skip_limit"    env:"BATCH_TEAM_SKIP_LIMIT"    env-default:"100"`
}

// SchedulerConfig holds the periodic team load settings. The scheduler keeps
// retrying one fixed data version until it is applied; once applied every
// tick is a no-op.
type SchedulerConfig struct {
	Enabled     bool          `yaml:"enabled"      env:"SCHEDULER_ENABLED"      env-default:"false"`
	Interval    time.Duration `yaml:"interval"     env:"SCHEDULER_INTERVAL"     env-default:"60s"`
	DataVersion string        `yaml:"data_version" env:"SCHEDULER_DATA_VERSION" env-default:"1.0.0"`
	FileName    string        `yaml:"file_name"    env:"SCHEDULER_FILE_NAME"    env-default:"teams.csv"`
	CountryCode string        `yaml:"country_code" env:"SCHEDULER_COUNTRY_CODE" env-default:"ENG"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
