package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// loadDotEnv copies a .env file in the working directory, if present, into
// the process environment. Variables already set win.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("config: loading .env: %w", err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func parseEnv(cfg *Config, lookup lookupFunc) error {
	e := envReader{lookup: lookup}

	e.str("ADDR", &cfg.Addr)
	e.str("STORE_DRIVER", &cfg.StoreDriver)
	e.str("DATABASE_DSN", &cfg.DatabaseDSN)
	e.str("MONGO_URI", &cfg.MongoURI)
	e.str("MONGO_DATABASE", &cfg.MongoDatabase)
	e.duration("SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)

	e.str("LOG_LEVEL", &cfg.Log.Level)
	e.str("LOG_FILENAME", &cfg.Log.Filename)
	e.integer("LOG_MAX_SIZE", &cfg.Log.MaxSize)
	e.integer("LOG_MAX_BACKUPS", &cfg.Log.MaxBackups)
	e.integer("LOG_MAX_AGE", &cfg.Log.MaxAge)
	e.boolean("LOG_COMPRESS", &cfg.Log.Compress)

	return e.err
}

// envReader keeps the first parse error so callers can read every variable
// and check once.
type envReader struct {
	lookup lookupFunc
	err    error
}

func (e *envReader) str(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

func (e *envReader) integer(key string, dst *int) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = n
}

func (e *envReader) boolean(key string, dst *bool) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = b
}

func (e *envReader) duration(key string, dst *time.Duration) {
	v, ok := e.lookup(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = d
}

func (e *envReader) fail(key string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("config: %s: %w", key, err)
	}
}
