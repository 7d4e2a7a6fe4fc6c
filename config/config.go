// Package config loads the service configuration in layers: built-in
// defaults, then an optional JSON file, then the environment (including a
// .env file), then command-line flags. Each layer only overrides the values
// it sets.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jimiolaniyan/accounts/logging"
)

var storeDrivers = []string{"memory", "sqlite", "postgres", "mongo"}

type Config struct {
	Addr            string
	StoreDriver     string
	DatabaseDSN     string
	MongoURI        string
	MongoDatabase   string
	ShutdownTimeout time.Duration
	Log             logging.Config
}

// LoadDefaults populates c with development defaults: an in-memory SQLite
// store and logs on stdout.
func (c *Config) LoadDefaults() {
	c.Addr = ":8000"
	c.StoreDriver = "sqlite"
	c.DatabaseDSN = ":memory:"
	c.MongoURI = "mongodb://127.0.0.1:27017"
	c.MongoDatabase = "accounts"
	c.ShutdownTimeout = 10 * time.Second
	c.Log = logging.Config{
		Level:      "info",
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}

// LoadConfig builds a Config from the defaults and the layers found in args
// (usually os.Args[1:]) and the process environment.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: empty listen address")
	}
	for _, d := range storeDrivers {
		if c.StoreDriver == d {
			return nil
		}
	}
	return fmt.Errorf("config: unknown store driver %q", c.StoreDriver)
}
