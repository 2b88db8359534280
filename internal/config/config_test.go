package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	SetLogger(zerolog.New(os.Stdout).Level(zerolog.ErrorLevel))
}

func TestApplyDefaults(t *testing.T) {
	t.Run("Config struct defaults", func(t *testing.T) {
		config := &Config{}
		applyDefaults(config)

		if config.Version != SupportedVersion {
			t.Errorf("Expected version %q, got %q", SupportedVersion, config.Version)
		}

		// Server defaults
		if config.Server.Host != "127.0.0.1" {
			t.Errorf("Expected host '127.0.0.1', got %q", config.Server.Host)
		}
		if config.Addr() != "127.0.0.1:12601" {
			t.Errorf("Expected addr '127.0.0.1:12601', got %q", config.Addr())
		}

		// Storage defaults
		if config.Storage.Backend != BackendSQLite {
			t.Errorf("Expected backend %q, got %q", BackendSQLite, config.Storage.Backend)
		}
		if config.Storage.Key != "jb_prompts_docs" {
			t.Errorf("Expected storage key 'jb_prompts_docs', got %q", config.Storage.Key)
		}
		if config.Storage.Compression != "zstd" {
			t.Errorf("Expected compression 'zstd', got %q", config.Storage.Compression)
		}
		if config.Storage.S3.Timeout != 10*time.Second {
			t.Errorf("Expected S3 timeout 10s, got %v", config.Storage.S3.Timeout)
		}

		// Session defaults
		if config.Session.Placeholder != "Write something..." {
			t.Errorf("Expected placeholder 'Write something...', got %q", config.Session.Placeholder)
		}
		if config.Session.AutosaveInterval != 5*time.Second {
			t.Errorf("Expected autosave interval 5s, got %v", config.Session.AutosaveInterval)
		}
		if !config.Session.AutosaveStatus {
			t.Error("Expected autosave status to be shown by default")
		}
		if config.Session.StatusDuration != 2*time.Second || config.Session.CopiedDuration != 2*time.Second {
			t.Errorf("Expected 2s indicator durations, got %v and %v", config.Session.StatusDuration, config.Session.CopiedDuration)
		}

		// Logging defaults
		if config.Logging.Level != "info" {
			t.Errorf("Expected logging level 'info', got %q", config.Logging.Level)
		}
	})

	t.Run("Custom struct with various field types", func(t *testing.T) {
		type TestStruct struct {
			StringField   string        `default:"test-string"`
			BoolField     bool          `default:"true"`
			IntField      int           `default:"42"`
			Float64Field  float64       `default:"3.14"`
			DurationField time.Duration `default:"1m30s"`
			SliceField    []string      `default:"a, b,c"`
			NoDefault     string
		}

		s := &TestStruct{}
		ApplyDefaults(s)

		if s.StringField != "test-string" || !s.BoolField || s.IntField != 42 || s.Float64Field != 3.14 {
			t.Errorf("Unexpected scalar defaults: %+v", s)
		}
		if s.DurationField != 90*time.Second {
			t.Errorf("Expected 1m30s, got %v", s.DurationField)
		}
		if len(s.SliceField) != 3 || s.SliceField[1] != "b" {
			t.Errorf("Expected trimmed slice [a b c], got %v", s.SliceField)
		}
		if s.NoDefault != "" {
			t.Errorf("Expected empty field without default, got %q", s.NoDefault)
		}
	})

	t.Run("Non-struct input is ignored", func(t *testing.T) {
		value := 7
		ApplyDefaults(&value)
		if value != 7 {
			t.Errorf("Expected value untouched, got %d", value)
		}
	})
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Expected no error for a missing file, got %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Expected default backend, got %q", cfg.Storage.Backend)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load("testdata/partial.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.Backend != BackendFS || cfg.Storage.FSDir != "/tmp/notes" {
		t.Errorf("Expected fs backend in /tmp/notes, got %+v", cfg.Storage)
	}
	if cfg.Session.AutosaveInterval != 30*time.Second {
		t.Errorf("Expected autosave interval 30s, got %v", cfg.Session.AutosaveInterval)
	}
	if cfg.Session.AutosaveStatus {
		t.Error("Expected autosave status to be disabled")
	}
	if cfg.Session.StatusDuration != 2*time.Second {
		t.Errorf("Expected default status duration, got %v", cfg.Session.StatusDuration)
	}
	if cfg.Storage.Key != "jb_prompts_docs" {
		t.Errorf("Expected default key, got %q", cfg.Storage.Key)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("Expected parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(*Config)
		errorText string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, "unknown storage backend"},
		{"s3 without bucket", func(c *Config) { c.Storage.Backend = BackendS3 }, "storage.s3.bucket"},
		{"s3 with bucket", func(c *Config) { c.Storage.Backend = BackendS3; c.Storage.S3.Bucket = "notes" }, ""},
		{"empty key", func(c *Config) { c.Storage.Key = "" }, "storage.key"},
		{"zero autosave", func(c *Config) { c.Session.AutosaveInterval = 0 }, "session.autosave_interval"},
		{"negative status", func(c *Config) { c.Session.StatusDuration = -time.Second }, "session.status_duration"},
		{"unknown clipboard", func(c *Config) { c.Session.Clipboard = "xclip" }, "unknown clipboard"},
		{"memory clipboard", func(c *Config) { c.Session.Clipboard = ClipboardMemory }, ""},
		{"unknown renderer", func(c *Config) { c.Theme.Renderer = "pandoc" }, "unknown markdown renderer"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.errorText == "" {
				if err != nil {
					t.Errorf("Expected valid config, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errorText) {
				t.Errorf("Expected error containing %q, got %v", tc.errorText, err)
			}
		})
	}
}
