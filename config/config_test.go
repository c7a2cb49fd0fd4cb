package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	cfg := Default()

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("default host = %q", cfg.Server.Host)
	}
	if cfg.Client.Timeout != 10*time.Second {
		t.Errorf("default client timeout = %v", cfg.Client.Timeout)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("default logging = %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TESTHOST_LOGGING_LEVEL", "debug")
	t.Setenv("TESTHOST_SERVER_HOST", "localhost")
	t.Setenv("TESTHOST_CLIENT_TIMEOUT", "5s")
	t.Setenv("TESTHOST_AUTH_SECRET", "env-secret")

	var cfg Settings
	if err := Load(&cfg); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q", cfg.Logging.Level)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("server.host = %q", cfg.Server.Host)
	}
	if cfg.Client.Timeout != 5*time.Second {
		t.Errorf("client.timeout = %v", cfg.Client.Timeout)
	}
	if cfg.Auth.Secret != "env-secret" {
		t.Errorf("auth.secret = %q", cfg.Auth.Secret)
	}
}

func TestLoadFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testhost.yaml")
	content := []byte("server:\n  host: 0.0.0.0\nclient:\n  timeout: 3s\nlogging:\n  level: warn\n  format: json\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var cfg Settings
	if err := Load(&cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q", cfg.Server.Host)
	}
	if cfg.Client.Timeout != 3*time.Second {
		t.Errorf("client.timeout = %v", cfg.Client.Timeout)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadMissingConfigFileFails(t *testing.T) {
	var cfg Settings
	if err := Load(&cfg, WithConfigFile("/nonexistent/testhost.yaml")); err == nil {
		t.Error("expected error for explicit missing config file")
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("TESTHOST_SERVER_HOST=envfile-host\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("TESTHOST_SERVER_HOST") })

	var cfg Settings
	if err := Load(&cfg, WithEnvFile(path)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Host != "envfile-host" {
		t.Errorf("server.host = %q", cfg.Server.Host)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"bad log level", func(s *Settings) { s.Logging.Level = "verbose" }},
		{"bad log format", func(s *Settings) { s.Logging.Format = "xml" }},
		{"empty host", func(s *Settings) { s.Server.Host = "" }},
		{"negative timeout", func(s *Settings) { s.Client.Timeout = -time.Second }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
