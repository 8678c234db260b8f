package scan

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds everything needed to run one scan.
type Config struct {
	// Host is the manager host name or address.
	Host string `toml:"host"`

	// Port is the manager port (default 9390).
	Port int `toml:"port"`

	// Username for protocol authentication.
	Username string `toml:"username"`

	// Password for protocol authentication. Usually left out of the file
	// and supplied by the caller (environment or prompt).
	Password string `toml:"password"`

	// Insecure skips TLS certificate verification.
	// WARNING: Only use for testing.
	Insecure bool `toml:"insecure"`

	// TaskName names the created task; generated when empty.
	TaskName string `toml:"task_name"`

	// TargetName names the created target; derived from TaskName when
	// empty.
	TargetName string `toml:"target_name"`

	// Hosts is the target host list, comma separated.
	Hosts string `toml:"hosts"`

	// ConfigName is the scan config to run (default "Full and fast").
	ConfigName string `toml:"config_name"`

	// Comment is attached to the created task and target.
	Comment string `toml:"comment"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Port:       9390,
		ConfigName: "Full and fast",
	}
}

// LoadConfig reads a TOML scan configuration, applying defaults for fields
// the file leaves out.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("scan: load config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is complete enough to run.
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("scan: host is required")
	}
	if c.Username == "" {
		return errors.New("scan: username is required")
	}
	if c.Hosts == "" {
		return errors.New("scan: hosts is required")
	}
	return nil
}

// Addr returns the manager address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
