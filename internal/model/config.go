package model

import "time"

// Config is the complete rivalry configuration.
// Field tags serve both yaml.v3 (config init/show) and viper unmarshalling.
type Config struct {
	Roster       Roster            `yaml:"roster" mapstructure:"roster"`
	Store        StoreConfig       `yaml:"store" mapstructure:"store"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	HTTP         HTTPConfig        `yaml:"http" mapstructure:"http"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Sources      []string          `yaml:"sources" mapstructure:"sources"`
	Server       ServerConfig      `yaml:"server" mapstructure:"server"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Log          LogConfig         `yaml:"log" mapstructure:"log"`
}

// StoreConfig selects the fact store backend
type StoreConfig struct {
	Driver       string `yaml:"driver" mapstructure:"driver"` // sqlite3, postgres, memory
	DSN          string `yaml:"dsn" mapstructure:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns" mapstructure:"max_open_conns"`
}

// CacheConfig controls caching of store reads and fetched pages
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Backend string        `yaml:"backend" mapstructure:"backend"` // memory, disk, layered, redis
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	Redis   RedisConfig   `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig holds the redis cache connection
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password,omitempty" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
	Prefix   string `yaml:"prefix" mapstructure:"prefix"` // prepended to every key, e.g. "prod:"
}

// HTTPConfig controls source fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	Retries       int           `yaml:"retries" mapstructure:"retries"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// RateLimitConfig is the per-domain fetch rate
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Addr           string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout    time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
	RefreshCron    string        `yaml:"refresh_cron,omitempty" mapstructure:"refresh_cron"` // Empty disables scheduled refresh
}

// ConcurrencyConfig controls batch answering
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LogConfig controls structured logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // console or json
}

// DefaultSources are tried in order by the refresher
var DefaultSources = []string{
	"https://messivsronaldo.app",
	"https://messivsronaldo.net",
	"https://www.messivsronaldo.io",
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Roster: DefaultRoster(),
		Store: StoreConfig{
			Driver:       "sqlite3",
			DSN:          "football_stats.db",
			MaxOpenConns: 4,
		},
		Cache: CacheConfig{
			Enabled: true,
			Backend: "memory",
			TTL:     10 * time.Minute,
			Dir:     ".rivalry-cache",
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		HTTP: HTTPConfig{
			Timeout:       10 * time.Second,
			UserAgent:     "Rivalry/0.1 (+https://github.com/ppiankov/rivalry)",
			MaxBodyBytes:  2_000_000,
			Retries:       3,
			RespectRobots: true,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 1,
			BurstSize:         2,
		},
		Sources: append([]string(nil), DefaultSources...),
		Server: ServerConfig{
			Addr:           ":5000",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
			RequestTimeout: 15 * time.Second,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
