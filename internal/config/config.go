package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultEnvironment  = "local"
	defaultLogLevel     = "info"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second
	defaultCMSTimeout   = 5 * time.Second
	defaultSiteName     = "Studio Field"
	defaultSiteURL      = "http://localhost:8080"
	defaultMaxUpload    = 10 << 20
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	CMS       CMSConfig
	Site      SiteConfig
	Contact   ContactConfig
	Session   SessionConfig
	Analytics AnalyticsConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	Environment  string
	DevMode      bool
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// CMSConfig points at the headless CMS and the local seed dataset.
type CMSConfig struct {
	BaseURL  string
	Timeout  time.Duration
	SeedFile string
}

// SiteConfig holds public site metadata used for SEO.
type SiteConfig struct {
	Name string
	URL  string
}

// ContactConfig controls contact form handling.
type ContactConfig struct {
	Inbox     string
	MaxUpload int64
}

// SessionConfig holds the cookie signing key.
type SessionConfig struct {
	SigningKey string
}

// AnalyticsConfig lists optional tag manager ids.
type AnalyticsConfig struct {
	GAMeasurementID string
	GTMContainerID  string
}

// Production reports whether the server runs with production settings.
func (c Config) Production() bool {
	return c.Server.Environment == "prod" || c.Server.Environment == "production"
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises the loader.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile sets the dotenv file consulted last. An empty path disables it.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over the OS environment and dotenv file.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv ignores the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load reads configuration from an explicit map, the process environment and an
// optional dotenv file, in that order of precedence.
func Load(_ context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	var invalid []string
	duration := func(key string, fallback time.Duration) time.Duration {
		d, ok := durationWithDefault(lookup, key, fallback)
		if !ok {
			invalid = append(invalid, key)
		}
		return d
	}

	cfg := Config{
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "STUDIO_WEB_PORT", stringWithDefault(lookup, "PORT", defaultPort)),
			Environment:  strings.ToLower(stringWithDefault(lookup, "STUDIO_WEB_ENV", defaultEnvironment)),
			DevMode:      boolWithDefault(lookup, "STUDIO_WEB_DEV", false),
			LogLevel:     strings.ToLower(stringWithDefault(lookup, "STUDIO_WEB_LOG_LEVEL", defaultLogLevel)),
			ReadTimeout:  duration("STUDIO_WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: duration("STUDIO_WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  duration("STUDIO_WEB_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		CMS: CMSConfig{
			BaseURL:  strings.TrimRight(stringWithDefault(lookup, "STUDIO_WEB_CMS_BASE_URL", ""), "/"),
			Timeout:  duration("STUDIO_WEB_CMS_TIMEOUT", defaultCMSTimeout),
			SeedFile: stringWithDefault(lookup, "STUDIO_WEB_SEED_FILE", ""),
		},
		Site: SiteConfig{
			Name: stringWithDefault(lookup, "STUDIO_WEB_SITE_NAME", defaultSiteName),
			URL:  strings.TrimRight(stringWithDefault(lookup, "STUDIO_WEB_SITE_URL", defaultSiteURL), "/"),
		},
		Contact: ContactConfig{
			Inbox: stringWithDefault(lookup, "STUDIO_WEB_CONTACT_INBOX", ""),
		},
		Session: SessionConfig{
			SigningKey: stringWithDefault(lookup, "STUDIO_WEB_SESSION_SIGNING_KEY", ""),
		},
		Analytics: AnalyticsConfig{
			GAMeasurementID: stringWithDefault(lookup, "STUDIO_WEB_GA_MEASUREMENT_ID", ""),
			GTMContainerID:  stringWithDefault(lookup, "STUDIO_WEB_GTM_CONTAINER_ID", ""),
		},
	}

	maxUpload, ok := int64WithDefault(lookup, "STUDIO_WEB_CONTACT_MAX_UPLOAD", defaultMaxUpload)
	if !ok {
		invalid = append(invalid, "STUDIO_WEB_CONTACT_MAX_UPLOAD")
	}
	cfg.Contact.MaxUpload = maxUpload

	if err := validateConfig(cfg, invalid); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config, invalid []string) error {
	missing := append([]string(nil), invalid...)

	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		missing = append(missing, "Server.Port")
	}
	if cfg.CMS.BaseURL != "" && !isHTTPURL(cfg.CMS.BaseURL) {
		missing = append(missing, "CMS.BaseURL")
	}
	if !isHTTPURL(cfg.Site.URL) {
		missing = append(missing, "Site.URL")
	}
	if cfg.Contact.MaxUpload <= 0 {
		missing = append(missing, "Contact.MaxUpload")
	}
	if cfg.Production() && strings.TrimSpace(cfg.Session.SigningKey) == "" {
		missing = append(missing, "Session.SigningKey")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) (time.Duration, bool) {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, true
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		return fallback, false
	}
	return d, true
}

func int64WithDefault(lookup func(string) (string, bool), key string, fallback int64) (int64, bool) {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, true
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fallback, false
	}
	return parsed, true
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
