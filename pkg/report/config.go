package report

import (
	"flag"

	"github.com/robotalks/patchlink/pkg/env"
)

// Config defines reporting options.
type Config struct {
	// Labels is a comma separated label list, or @file for one label
	// per line.
	Labels string
}

var (
	defaultConfig Config
)

func init() {
	if val := env.Getenv("PATCHLINK_LABELS"); val != "" {
		defaultConfig.Labels = val
	}
}

// SetupFlags sets up flags for default config.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Labels, "labels", defaultConfig.Labels, "Class labels, comma separated or @file.")
}

// Default returns the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config from default values.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// LoadLabels resolves the configured label table. It is empty when no
// labels are configured.
func (c *Config) LoadLabels() (Labels, error) {
	if c.Labels == "" {
		return nil, nil
	}
	if c.Labels[0] == '@' {
		return ReadLabelsFile(c.Labels[1:])
	}
	return ParseLabels(c.Labels), nil
}
