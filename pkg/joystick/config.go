package joystick

import "flag"

// Config defines the configurations for the joystick Source.
type Config struct {
	DeviceIndex int
	MaxAxes     int
	MaxButtons  int
	Verbose     bool
}

var defaultConfig = Config{
	DeviceIndex: -1,
	MaxAxes:     -1,
	MaxButtons:  -1,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.DeviceIndex, "device", defaultConfig.DeviceIndex, "Device index, -1 for auto detection.")
	flag.IntVar(&defaultConfig.MaxAxes, "axes", defaultConfig.MaxAxes, "Max number of axes to sample, -1 for all.")
	flag.IntVar(&defaultConfig.MaxButtons, "buttons", defaultConfig.MaxButtons, "Max number of buttons to sample, -1 for all.")
	flag.BoolVar(&defaultConfig.Verbose, "verbose", defaultConfig.Verbose, "Print joystick events.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewSource creates a Source using the config.
func (c *Config) NewSource() *Source {
	s := NewSource()
	s.DeviceIndex = c.DeviceIndex
	s.MaxAxes, s.MaxButtons = c.MaxAxes, c.MaxButtons
	s.Verbose = c.Verbose
	return s
}
