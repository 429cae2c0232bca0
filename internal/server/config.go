package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/plantainpro/internal/config"
	"github.com/iwvelando/plantainpro/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address       string               `yaml:"address"`
	SessionTTL    string               `yaml:"sessionTTL"`
	SweepSchedule string               `yaml:"sweepSchedule"`
	MaxSessions   int                  `yaml:"maxSessions"`
	Logging       config.LoggingConfig `yaml:"logging"`
	sessionTTL    time.Duration
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:       constants.DefaultServerAddress,
		SessionTTL:    constants.DefaultSessionTTL,
		SweepSchedule: constants.DefaultSweepSchedule,
		MaxSessions:   constants.DefaultMaxSessions,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// keep defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read server config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse server config: %w", err)
			}
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SessionTTLDuration returns the parsed session idle timeout. Zero means
// sessions never expire.
func (c *Config) SessionTTLDuration() time.Duration {
	return c.sessionTTL
}

// ApplyEnv overrides the listen address from PLANTAINPRO_ADDRESS when set.
func (c *Config) ApplyEnv() {
	if addr := strings.TrimSpace(os.Getenv(constants.AddressEnvVar)); addr != "" {
		c.Address = addr
	}
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = constants.DefaultServerAddress
	}
	if strings.TrimSpace(c.SweepSchedule) == "" {
		c.SweepSchedule = constants.DefaultSweepSchedule
	}

	if c.MaxSessions < 0 {
		return fmt.Errorf("invalid maxSessions %d: must not be negative", c.MaxSessions)
	}
	if c.MaxSessions == 0 {
		c.MaxSessions = constants.DefaultMaxSessions
	}

	ttl := strings.TrimSpace(c.SessionTTL)
	if ttl == "" {
		ttl = constants.DefaultSessionTTL
		c.SessionTTL = ttl
	}
	d, err := time.ParseDuration(ttl)
	if err != nil {
		return fmt.Errorf("invalid sessionTTL %q: %w", c.SessionTTL, err)
	}
	if d < 0 {
		return fmt.Errorf("invalid sessionTTL %q: must not be negative", c.SessionTTL)
	}
	c.sessionTTL = d
	return nil
}
