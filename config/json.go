package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration reads either a Go duration string ("10s") or integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

// jsonConfig mirrors Config for unmarshalling. Pointer fields tell an absent
// key apart from a zero value.
type jsonConfig struct {
	Addr            *string   `json:"addr"`
	StoreDriver     *string   `json:"store_driver"`
	DatabaseDSN     *string   `json:"database_dsn"`
	MongoURI        *string   `json:"mongo_uri"`
	MongoDatabase   *string   `json:"mongo_database"`
	ShutdownTimeout *Duration `json:"shutdown_timeout"`
	Log             *struct {
		Level      *string `json:"level"`
		Filename   *string `json:"filename"`
		MaxSize    *int    `json:"max_size"`
		MaxBackups *int    `json:"max_backups"`
		MaxAge     *int    `json:"max_age"`
		Compress   *bool   `json:"compress"`
	} `json:"log"`
}

// parseJSON overlays cfg with the file named by -c or -config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := jsonConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}

	setString(&cfg.Addr, jc.Addr)
	setString(&cfg.StoreDriver, jc.StoreDriver)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.MongoURI, jc.MongoURI)
	setString(&cfg.MongoDatabase, jc.MongoDatabase)
	if jc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}

	if l := jc.Log; l != nil {
		setString(&cfg.Log.Level, l.Level)
		setString(&cfg.Log.Filename, l.Filename)
		setInt(&cfg.Log.MaxSize, l.MaxSize)
		setInt(&cfg.Log.MaxBackups, l.MaxBackups)
		setInt(&cfg.Log.MaxAge, l.MaxAge)
		if l.Compress != nil {
			cfg.Log.Compress = *l.Compress
		}
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
