package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix of the environment variables read by Load
const Prefix = "PRINTCOST"

// Config holds the process settings read from PRINTCOST_* variables.
// Command line flags override these values.
type Config struct {
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	Catalog       string        `envconfig:"CATALOG"`
	Material      string        `envconfig:"MATERIAL" default:"Enduse PETG"`
	Workers       int           `envconfig:"WORKERS" default:"1"`
	WatchDebounce time.Duration `envconfig:"WATCH_DEBOUNCE" default:"500ms"`
	// TransformLayout is "rows" or "columns" for 3MF transform attributes
	TransformLayout string `envconfig:"TRANSFORM_LAYOUT" default:"rows"`
	// Params is a TOML file of slicer settings
	Params string `envconfig:"PARAMS"`
}

// Load reads the configuration from the environment, filling defaults
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
