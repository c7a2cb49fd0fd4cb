package config

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/testhost/logger"
)

// Settings holds all tunable fixture configuration.
type Settings struct {
	Logging logger.Config  `mapstructure:"logging"`
	Server  ServerSettings `mapstructure:"server"`
	Client  ClientSettings `mapstructure:"client"`
	Auth    AuthSettings   `mapstructure:"auth"`
}

// ServerSettings configures the in-process test server.
type ServerSettings struct {
	Host string `mapstructure:"host" validate:"required"`
}

// ClientSettings configures the fixture's HTTP client.
type ClientSettings struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// AuthSettings configures the optional bearer-token middleware.
type AuthSettings struct {
	// Secret signs and verifies HS256 test tokens. Only read when a
	// fixture opts into bearer auth.
	Secret string `mapstructure:"secret"`
}

// ApplyDefaults applies default values to all settings.
func (s *Settings) ApplyDefaults() {
	s.Logging.ApplyDefaults()
	if s.Server.Host == "" {
		s.Server.Host = "127.0.0.1"
	}
	if s.Client.Timeout == 0 {
		s.Client.Timeout = 10 * time.Second
	}
}

// Validate validates all settings.
func (s *Settings) Validate() error {
	if err := s.Logging.Validate(); err != nil {
		return err
	}
	return validator.New().Struct(s)
}
