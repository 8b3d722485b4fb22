package patch

import "flag"

// Config defines how an image file becomes patches.
type Config struct {
	Width  int
	Height int
	Size   int
}

var defaultConfig = Config{
	Width:  DefaultWidth,
	Height: DefaultHeight,
	Size:   DefaultSize,
}

// SetupFlags sets up command line flags. The patch size flag is owned
// by the protocol config.
func SetupFlags() {
	flag.IntVar(&defaultConfig.Width, "width", defaultConfig.Width, "Width images are resized to.")
	flag.IntVar(&defaultConfig.Height, "height", defaultConfig.Height, "Height images are resized to.")
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

// LoadPatches loads path, normalizes it and extracts patches.
func (c *Config) LoadPatches(path string) ([]Patch, error) {
	img, err := LoadNormalized(path, c.Width, c.Height)
	if err != nil {
		return nil, err
	}
	return Extract(img, c.Size)
}
