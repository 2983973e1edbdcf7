package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	Addr              string        `koanf:"addr"`
	DBPath            string        `koanf:"db_path"`
	LogLevel          string        `koanf:"log_level"`
	LogFormat         string        `koanf:"log_format"`
	APIBaseURL        string        `koanf:"api_base_url"`
	HTTPTimeout       time.Duration `koanf:"http_timeout"`
	BatchSize         int           `koanf:"batch_size"`
	CORSOrigins       string        `koanf:"cors_origins"`
	RedisAddr         string        `koanf:"redis_addr"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`
	ImportWorkerCount int           `koanf:"import_worker_count"`
	ImportQueueSize   int           `koanf:"import_queue_size"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Addr:              ":8080",
		DBPath:            "file:stageboard.db",
		LogLevel:          "INFO",
		LogFormat:         "text",
		APIBaseURL:        "https://platform.acexr.com/api/1.1",
		HTTPTimeout:       15 * time.Second,
		BatchSize:         500,
		CORSOrigins:       "*",
		RedisAddr:         "",
		CacheTTL:          5 * time.Minute,
		ImportWorkerCount: 2,
		ImportQueueSize:   32,
	}
}

// Origins splits CORSOrigins on commas.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Validate checks every field and reports all problems together.
func (c *Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}

	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
		c.LogLevel = strings.ToUpper(c.LogLevel)
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json (got %q)", c.LogFormat))
	}

	if u, err := url.Parse(c.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("API_BASE_URL must be an absolute URL (got %q)", c.APIBaseURL))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("HTTP_TIMEOUT must be positive (got %v)", c.HTTPTimeout))
	}
	if c.BatchSize < 1 || c.BatchSize > 500 {
		errs = append(errs, fmt.Errorf("BATCH_SIZE must be between 1 and 500 (got %d)", c.BatchSize))
	}
	if len(c.Origins()) == 0 {
		errs = append(errs, errors.New("CORS_ORIGINS cannot be empty"))
	}
	if c.RedisAddr != "" && c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be positive when REDIS_ADDR is set (got %v)", c.CacheTTL))
	}
	if c.ImportWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("IMPORT_WORKER_COUNT must be at least 1 (got %d)", c.ImportWorkerCount))
	}
	if c.ImportQueueSize < 1 {
		errs = append(errs, fmt.Errorf("IMPORT_QUEUE_SIZE must be at least 1 (got %d)", c.ImportQueueSize))
	}

	return errors.Join(errs...)
}
