package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/xy-planning-network/rest"
	"github.com/xy-planning-network/rest/controller"
	"github.com/xy-planning-network/rest/http/template"
	"github.com/xy-planning-network/rest/version"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of a rest service.
type Config struct {
	Env        rest.Environment `yaml:"env" toml:"env"`
	Debug      *bool            `yaml:"debug" toml:"debug"`
	Server     Server           `yaml:"server" toml:"server"`
	Log        Log              `yaml:"log" toml:"log"`
	Versioning Versioning       `yaml:"versioning" toml:"versioning"`
	Formats    []Format         `yaml:"formats" toml:"formats" validate:"dive"`
	Rules      []Rule           `yaml:"rules" toml:"rules" validate:"dive"`
	Exception  Exception        `yaml:"exception" toml:"exception"`
	Templates  Templates        `yaml:"templates" toml:"templates"`
}

// Server configures the *http.Server and the middlewares in front of it.
type Server struct {
	Addr            string   `yaml:"addr" toml:"addr" validate:"required"`
	BaseURL         string   `yaml:"base_url" toml:"base_url" validate:"omitempty,url"`
	ReadTimeout     Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout" toml:"write_timeout"`
	IdleTimeout     Duration `yaml:"idle_timeout" toml:"idle_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	CORSOrigin      string   `yaml:"cors_origin" toml:"cors_origin" validate:"omitempty,url"`
	ForceHTTPS      bool     `yaml:"force_https" toml:"force_https"`
	RateLimit       float64  `yaml:"rate_limit" toml:"rate_limit" validate:"gte=0"`
	RateBurst       int      `yaml:"rate_burst" toml:"rate_burst" validate:"gte=0"`
}

type Log struct {
	Level     string `yaml:"level" toml:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR FATAL"`
	SentryDSN string `yaml:"sentry_dsn" toml:"sentry_dsn" validate:"omitempty,url"`
}

// Versioning lists the strategies extracting API versions, tried in order.
type Versioning struct {
	Strategies []Strategy `yaml:"strategies" toml:"strategies" validate:"dive"`
}

// A Strategy configures one way of extracting a version.
// Key names the header or query parameter; Pattern is the media type pattern.
type Strategy struct {
	Type    version.Strategy `yaml:"type" toml:"type" validate:"required,oneof=disabled header query media_type"`
	Key     string           `yaml:"key" toml:"key"`
	Pattern string           `yaml:"pattern" toml:"pattern"`
}

// A Format adds a format to, or replaces one in, the default registry.
type Format struct {
	Name       string   `yaml:"name" toml:"name" validate:"required,lowercase"`
	MediaTypes []string `yaml:"media_types" toml:"media_types" validate:"required,min=1,dive,required,contains=/"`
	Templating bool     `yaml:"templating" toml:"templating"`
	Versions   []string `yaml:"versions" toml:"versions"`
}

// A Rule configures how formats are negotiated for matching requests.
type Rule struct {
	Path            string   `yaml:"path" toml:"path"`
	Methods         []string `yaml:"methods" toml:"methods" validate:"dive,uppercase"`
	Priorities      []string `yaml:"priorities" toml:"priorities"`
	Fallback        string   `yaml:"fallback" toml:"fallback"`
	PreferExtension bool     `yaml:"prefer_extension" toml:"prefer_extension"`
	AcceptOnly      bool     `yaml:"accept_only" toml:"accept_only"`
	Stop            bool     `yaml:"stop" toml:"stop"`
}

// Exception configures how exceptions are classified.
//
// Classes declares exception classes as children of known classes, in order.
// Codes maps classes to status codes and Messages to whether their messages are shown.
type Exception struct {
	Classes  Table[string] `yaml:"classes" toml:"classes" validate:"dive"`
	Codes    Table[int]    `yaml:"codes" toml:"codes" validate:"dive"`
	Messages Table[bool]   `yaml:"messages" toml:"messages" validate:"dive"`

	// DefaultFormat names the format exceptions are rendered in
	// when negotiation stops and the request declares no format.
	DefaultFormat string `yaml:"default_format" toml:"default_format"`
}

// Templates configures where exception templates are found.
type Templates struct {
	Dir     string `yaml:"dir" toml:"dir"`
	Pattern string `yaml:"pattern" toml:"pattern"`
	Reload  bool   `yaml:"reload" toml:"reload"`
}

// Default constructs a *Config with every default applied.
func Default() *Config {
	c := new(Config)
	c.applyDefaults()
	return c
}

// Load reads the file at path, decoding it by its extension,
// applies defaults and environment overrides, then validates the result.
//
// Load does not read .env files; call LoadEnv beforehand.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: reading config: %s", rest.ErrNotExist, err)
	}

	return Parse(b, filepath.Ext(path))
}

// Parse decodes data written in the format ext names, ".yaml", ".yml" or ".toml",
// applies defaults and environment overrides, then validates the result.
func Parse(data []byte, ext string) (*Config, error) {
	c := new(Config)

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: parsing yaml: %s", rest.ErrNotValid, err)
		}

	case "toml":
		if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(c); err != nil {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				row, col := derr.Position()
				return nil, fmt.Errorf("%w: parsing toml at line %d, column %d: %s", rest.ErrNotValid, row, col, derr)
			}
			return nil, fmt.Errorf("%w: parsing toml: %s", rest.ErrNotValid, err)
		}

	default:
		return nil, fmt.Errorf("%w: unknown config extension %q", rest.ErrNotValid, ext)
	}

	c.applyDefaults()
	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadEnv loads the .env files into the environment, skipping those that do not exist.
// Variables already set are not overridden.
// No files loads ".env".
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("%w: loading %s: %s", rest.ErrBadConfig, f, err)
		}
	}

	return nil
}

// IsDebug asserts whether exception messages and debug templates are shown.
// Unless set explicitly, the environment decides.
func (c *Config) IsDebug() bool {
	if c.Debug != nil {
		return *c.Debug
	}

	return c.Env.Debug()
}

func (c *Config) applyDefaults() {
	if c.Env == "" {
		c.Env = rest.Development
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = ":8080"
	}

	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = Duration(5 * time.Second)
	}

	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = Duration(10 * time.Second)
	}

	if c.Server.IdleTimeout <= 0 {
		c.Server.IdleTimeout = Duration(120 * time.Second)
	}

	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = Duration(10 * time.Second)
	}

	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = 5
	}

	if c.Server.RateBurst == 0 {
		c.Server.RateBurst = 20
	}

	if c.Log.Level == "" {
		c.Log.Level = "INFO"
	}

	if c.Templates.Pattern == "" {
		c.Templates.Pattern = template.DefaultPathPattern
	}

	if c.Exception.DefaultFormat == "" {
		c.Exception.DefaultFormat = controller.DefaultFormat
	}
}

// applyEnv overrides settings with those found in the environment.
func (c *Config) applyEnv() {
	c.Env = rest.EnvVarOrEnv("ENVIRONMENT", c.Env)
	c.Server.Addr = rest.EnvVarOrString("REST_ADDR", c.Server.Addr)
	c.Server.BaseURL = rest.EnvVarOrString("BASE_URL", c.Server.BaseURL)
	c.Server.CORSOrigin = rest.EnvVarOrString("REST_CORS_ORIGIN", c.Server.CORSOrigin)
	c.Server.ForceHTTPS = rest.EnvVarOrBool("REST_FORCE_HTTPS", c.Server.ForceHTTPS)
	c.Server.ShutdownTimeout = Duration(rest.EnvVarOrDuration("REST_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout.Std()))
	c.Log.Level = strings.ToUpper(rest.EnvVarOrString("LOG_LEVEL", c.Log.Level))
	c.Log.SentryDSN = rest.EnvVarOrString("SENTRY_DSN", c.Log.SentryDSN)
	c.Templates.Dir = rest.EnvVarOrString("REST_TEMPLATES_DIR", c.Templates.Dir)

	if os.Getenv("REST_DEBUG") != "" {
		debug := rest.EnvVarOrBool("REST_DEBUG", c.IsDebug())
		c.Debug = &debug
	}
}
