package logger

import "fmt"

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: debug, info, warn, error (default: info).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format: json or console (default: json).
	Format string `yaml:"format" mapstructure:"format"`

	// Output is the destination: stdout or stderr (default: stdout).
	Output string `yaml:"output" mapstructure:"output"`

	// NoColor disables colored console output.
	NoColor bool `yaml:"no_color" mapstructure:"no_color"`
}

// ApplyDefaults sets sensible defaults for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logger.level must be one of trace/debug/info/warn/error (got: %s)", c.Level)
	}
	switch c.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console (got: %s)", c.Format)
	}
	return nil
}
