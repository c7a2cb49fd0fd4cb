package server

// Config contains test server configuration.
type Config struct {
	// Host is advisory only; httptest picks the listener itself.
	Host string `yaml:"host" mapstructure:"host"`
	// RequestLog enables per-request logging middleware.
	RequestLog bool `yaml:"request_log" mapstructure:"request_log"`
	// AuthSecret, when non-empty, enables bearer-token middleware that
	// verifies HS256 tokens signed with this secret.
	AuthSecret string `yaml:"auth_secret" mapstructure:"auth_secret"`
}

// ApplyDefaults applies default values to server configuration.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
}
