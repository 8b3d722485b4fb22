package link

import (
	"flag"
	"strconv"
	"time"

	"github.com/robotalks/patchlink/pkg/env"
)

// Config defines how to open a port.
type Config struct {
	// Port is a device path (/dev/ttyUSB0, COM4) or a URL whose scheme
	// selects a registered Dialer (tcp://, ws://, sim://).
	Port string
	Baud int
	// WriteTimeout bounds a single write; 0 disables it.
	WriteTimeout time.Duration
	// SettleDelay is waited after opening, for boards that reset when
	// the port opens.
	SettleDelay time.Duration
}

var defaultConfig = Config{
	Port:         "/dev/ttyS0",
	Baud:         115200,
	WriteTimeout: time.Second,
}

func init() {
	if val := env.Getenv("PATCHLINK_PORT"); val != "" {
		defaultConfig.Port = val
	}
	if val := env.Getenv("PATCHLINK_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			defaultConfig.Baud = baud
		}
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial device or port URL (tcp://, ws://, sim://).")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Baud rate.")
	flag.DurationVar(&defaultConfig.WriteTimeout, "write-timeout", defaultConfig.WriteTimeout, "Timeout of a single write, 0 to disable.")
	flag.DurationVar(&defaultConfig.SettleDelay, "settle", defaultConfig.SettleDelay, "Wait after opening the port.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
