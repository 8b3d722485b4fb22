package classify

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/robotalks/patchlink/pkg/link"
	"github.com/robotalks/patchlink/pkg/patch"
)

// ResponseFormat is how the accelerator encodes a class index.
type ResponseFormat int

const (
	// ResponseByte is a single unsigned byte.
	ResponseByte ResponseFormat = iota
	// ResponseLine is a newline terminated decimal number.
	ResponseLine
)

// String implements flag.Value.
func (f ResponseFormat) String() string {
	if f == ResponseLine {
		return "line"
	}
	return "byte"
}

// Set implements flag.Value.
func (f *ResponseFormat) Set(s string) error {
	switch strings.ToLower(s) {
	case "byte":
		*f = ResponseByte
	case "line":
		*f = ResponseLine
	default:
		return fmt.Errorf("unknown response format %q", s)
	}
	return nil
}

// MaxClasses is the number of classes a one-byte response can address.
const MaxClasses = 256

// Config defines the protocol parameters of a run.
type Config struct {
	PatchSize      int
	Mode           link.Mode
	InterByteDelay time.Duration
	ReadTimeout    time.Duration
	NumClasses     int
	Response       ResponseFormat
	// DrainStale discards bytes left on the line before each patch, so
	// a late reply can't be paired with the wrong patch.
	DrainStale bool
}

var defaultConfig = Config{
	PatchSize:      patch.DefaultSize,
	Mode:           link.ModePaced,
	InterByteDelay: time.Millisecond,
	ReadTimeout:    1500 * time.Millisecond,
	NumClasses:     20,
	DrainStale:     true,
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.PatchSize, "patch-size", defaultConfig.PatchSize, "Patch side length in pixels.")
	flag.Var(&defaultConfig.Mode, "mode", "Transmission mode: paced or block.")
	flag.DurationVar(&defaultConfig.InterByteDelay, "byte-delay", defaultConfig.InterByteDelay, "Delay after each byte in paced mode.")
	flag.DurationVar(&defaultConfig.ReadTimeout, "read-timeout", defaultConfig.ReadTimeout, "Time to wait for a classification.")
	flag.IntVar(&defaultConfig.NumClasses, "classes", defaultConfig.NumClasses, "Number of classes, 0 to use the label count.")
	flag.Var(&defaultConfig.Response, "response", "Response format: byte or line.")
	flag.BoolVar(&defaultConfig.DrainStale, "drain", defaultConfig.DrainStale, "Discard stale input before each patch.")
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

// Validate checks the config.
func (c *Config) Validate() error {
	if c.PatchSize <= 0 {
		return fmt.Errorf("invalid patch size %d", c.PatchSize)
	}
	if c.NumClasses <= 0 || c.NumClasses > MaxClasses {
		return fmt.Errorf("number of classes must be in [1, %d], got %d", MaxClasses, c.NumClasses)
	}
	if c.ReadTimeout < 0 || c.InterByteDelay < 0 {
		return fmt.Errorf("negative timeout or delay")
	}
	return nil
}
