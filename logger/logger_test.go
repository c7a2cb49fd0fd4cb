package logger

import "testing"

func TestConfigApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("default level = %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("default format = %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("default output = %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("timestamps must default to on")
	}
}

func TestConfigApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{Level: "debug", Format: "json", Output: "stderr"}
	cfg.ApplyDefaults()

	if cfg.Level != "debug" || cfg.Format != "json" || cfg.Output != "stderr" {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid json", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"bad level", Config{Level: "verbose", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewFallsBackOnBadLevel(t *testing.T) {
	cfg := &Config{Level: "not-a-level", Format: "json", Output: "stdout"}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("New returned nil")
	}
	// Must not panic.
	l.Debug("debug message")
	l.Info("info message")
}

func TestDerivedLoggers(t *testing.T) {
	l := Nop()

	if got := l.WithComponent("server"); got == nil || got == l {
		t.Error("WithComponent must return a new logger")
	}
	if got := l.WithFields(map[string]interface{}{"k": "v"}); got == nil || got == l {
		t.Error("WithFields must return a new logger")
	}
	if got := l.WithError(nil); got == nil {
		t.Error("WithError must return a logger")
	}

	// Derived loggers must not panic when used.
	l.WithComponent("x").Info("hello", map[string]interface{}{FieldService: "svc"})
}

func TestFieldsBuilder(t *testing.T) {
	m := Fields("service", "mailer", FieldRequestID, "r1")
	if m["service"] != "mailer" || m[FieldRequestID] != "r1" {
		t.Errorf("Fields = %v", m)
	}

	// Trailing keys without values are dropped.
	if got := Fields("only-key"); len(got) != 0 {
		t.Errorf("odd arguments must be ignored: %v", got)
	}
	// Non-string keys are skipped.
	if got := Fields(42, "v", "ok", true); len(got) != 1 || got["ok"] != true {
		t.Errorf("non-string keys must be skipped: %v", got)
	}
}

func TestGlobalLogger(t *testing.T) {
	prev := globalLogger
	t.Cleanup(func() { globalLogger = prev })

	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("GetGlobalLogger must create a default logger")
	}

	custom := Nop()
	SetGlobalLogger(custom)
	if GetGlobalLogger() != custom {
		t.Error("SetGlobalLogger must replace the global instance")
	}
	// Package-level funcs go through the global logger.
	Info("global info")
	Warn("global warn", Fields("k", "v"))
}
