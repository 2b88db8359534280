package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

const SupportedVersion = "1"

const (
	BackendMemory = "memory"
	BackendFS     = "fs"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
)

const (
	ClipboardOSC52       = "osc52"
	ClipboardOSC52Tmux   = "osc52-tmux"
	ClipboardOSC52Screen = "osc52-screen"
	ClipboardMemory      = "memory"
)

const (
	RendererMmark   = "mmark"
	RendererClassic = "classic"
)

// Config represents the complete configuration structure
type Config struct {
	Version string        `yaml:"version" default:"1"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Session SessionConfig `yaml:"session"`
	Theme   ThemeConfig   `yaml:"theme"`
	Logging LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"console"`
}

type ServerConfig struct {
	Host string `yaml:"host" default:"127.0.0.1"`
	Port string `yaml:"port" default:"12601"`
}

type StorageConfig struct {
	Backend     string   `yaml:"backend" default:"sqlite"`
	Key         string   `yaml:"key" default:"jb_prompts_docs"`
	FSDir       string   `yaml:"fs_dir" default:"./data"`
	SQLitePath  string   `yaml:"sqlite_path" default:"./notebook.db"`
	Compression string   `yaml:"compression" default:"zstd"`
	S3          S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket   string        `yaml:"bucket" default:""`
	Prefix   string        `yaml:"prefix" default:""`
	Region   string        `yaml:"region" default:"auto"`
	Endpoint string        `yaml:"endpoint" default:""`
	Timeout  time.Duration `yaml:"timeout" default:"10s"`
}

type SessionConfig struct {
	Placeholder      string        `yaml:"placeholder" default:"Write something..."`
	AutosaveInterval time.Duration `yaml:"autosave_interval" default:"5s"`
	AutosaveStatus   bool          `yaml:"autosave_status" default:"true"`
	StatusDuration   time.Duration `yaml:"status_duration" default:"2s"`
	CopiedDuration   time.Duration `yaml:"copied_duration" default:"2s"`
	Clipboard        string        `yaml:"clipboard" default:"osc52"`
}

// Page themes, as stored in the theme cookie, and the syntax themes each starts with.
const (
	LightTheme = "light-theme"
	DarkTheme  = "dark-theme"

	DefaultDarkSyntaxTheme  = "gruvbox"
	DefaultLightSyntaxTheme = "catppuccin-latte"
)

type ThemeConfig struct {
	Default            string       `yaml:"default" default:"dark-theme"`
	Renderer           string       `yaml:"renderer" default:"mmark"`
	SyntaxHighlighting SyntaxConfig `yaml:"syntax_highlighting"`
}

type SyntaxConfig struct {
	DefaultDark  string `yaml:"default_dark" default:"gruvbox"`
	DefaultLight string `yaml:"default_light" default:"catppuccin-latte"`
}

var AppConfig *Config

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		return config, nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func LoadConfig(path string) error {
	config, err := Load(path)
	if err != nil {
		return err
	}
	AppConfig = config
	return nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Version != SupportedVersion {
		errs = append(errs, fmt.Errorf("unsupported configuration version %q", c.Version))
	}

	switch c.Storage.Backend {
	case BackendMemory, BackendFS, BackendSQLite:
	case BackendS3:
		if c.Storage.S3.Bucket == "" {
			errs = append(errs, errors.New("storage.s3.bucket is required for the s3 backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}

	switch c.Session.Clipboard {
	case ClipboardOSC52, ClipboardOSC52Tmux, ClipboardOSC52Screen, ClipboardMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown clipboard %q", c.Session.Clipboard))
	}

	switch c.Theme.Renderer {
	case RendererMmark, RendererClassic:
	default:
		errs = append(errs, fmt.Errorf("unknown markdown renderer %q", c.Theme.Renderer))
	}

	if c.Storage.Key == "" {
		errs = append(errs, errors.New("storage.key must not be empty"))
	}

	for name, d := range map[string]time.Duration{
		"session.autosave_interval": c.Session.AutosaveInterval,
		"session.status_duration":   c.Session.StatusDuration,
		"session.copied_duration":   c.Session.CopiedDuration,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}

	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

var durationType = reflect.TypeOf(time.Duration(0))

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		if field.Type() == durationType {
			if val, err := time.ParseDuration(defaultValue); err == nil {
				field.SetInt(int64(val))
			}
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int, reflect.Int64:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Float64:
			if val, err := strconv.ParseFloat(defaultValue, 64); err == nil {
				field.SetFloat(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
