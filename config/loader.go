package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment variables, e.g. TESTHOST_LOGGING_LEVEL.
const envPrefix = "TESTHOST"

// LoaderOption customizes Load.
type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit config file path (YAML).
func WithConfigFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.envFile = path }
}

// Load populates cfg from config file, environment, and .env file, then
// applies defaults and validates. A missing config or .env file is not
// an error; the environment and defaults carry the load.
func Load(cfg *Settings, opts ...LoaderOption) error {
	var lc loaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	if lc.envFile == "" {
		if _, err := os.Stat(".env"); err == nil {
			lc.envFile = ".env"
		}
	}
	if lc.envFile != "" {
		if err := godotenv.Load(lc.envFile); err != nil {
			fmt.Printf("[config] warning: failed to load .env file %s: %v\n", lc.envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if lc.configFile != "" {
		v.SetConfigFile(lc.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", lc.configFile, err)
		}
	}

	// AutomaticEnv alone does not surface env-only keys through Unmarshal,
	// so bind the known keys explicitly.
	for _, key := range settingsKeys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	return cfg.Validate()
}

// settingsKeys lists every leaf key in Settings for env binding.
var settingsKeys = []string{
	"logging.level",
	"logging.format",
	"logging.output",
	"logging.no_color",
	"logging.timestamp",
	"logging.caller",
	"server.host",
	"client.timeout",
	"auth.secret",
}

// Default returns settings with defaults applied and nothing loaded.
func Default() *Settings {
	cfg := &Settings{}
	cfg.ApplyDefaults()
	return cfg
}
