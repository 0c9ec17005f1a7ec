package app

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the server runtime configuration, loaded from a TOML file with
// documented defaults for every field.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	World   WorldConfig   `toml:"world"`
	Logging LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	BindAddress     string        `toml:"bind_address"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

type WorldConfig struct {
	Seed      int64  `toml:"seed"`
	PropCount int    `toml:"prop_count"`
	MapFile   string `toml:"map_file"` // optional spawn-record JSON
}

type LoggingConfig struct {
	Sinks       []string `toml:"sinks"` // console, json, zap
	EventLog    string   `toml:"event_log"`
	MinSeverity string   `toml:"min_severity"`
	Development bool     `toml:"development"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			BindAddress:     ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		World: WorldConfig{
			Seed:      1,
			PropCount: 48,
		},
		Logging: LoggingConfig{
			Sinks:       []string{"console"},
			EventLog:    "events.ndjson",
			MinSeverity: "info",
		},
	}
}

// LoadConfig reads the TOML file at path. A missing path returns defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
