// Package config loads server configuration from defaults, DRAGONBALL_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/olgasafonova/dragonball-mcp-server/internal/base"
	"github.com/olgasafonova/dragonball-mcp-server/internal/dragonball"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "DRAGONBALL"

// Keys double as flag names; the env name is EnvPrefix + "_" + upper-snake key.
const (
	KeyAPIURL      = "api-url"
	KeyTimeout     = "timeout"
	KeyUserAgent   = "user-agent"
	KeyLogLevel    = "log-level"
	KeyLogFormat   = "log-format"
	KeyMetricsAddr = "metrics-addr"
)

// Log formats
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Config holds the complete configuration for the server
type Config struct {
	APIURL      string
	Timeout     time.Duration
	UserAgent   string
	LogLevel    string
	LogFormat   string
	MetricsAddr string // empty disables the metrics listener
}

// AddFlags registers the configuration flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(KeyAPIURL, dragonball.DefaultBaseURL, "Dragon Ball API base URL")
	fs.Duration(KeyTimeout, base.DefaultTimeout, "HTTP timeout for upstream requests (0 disables)")
	fs.String(KeyUserAgent, base.DefaultUserAgent, "User-Agent sent to the API")
	fs.String(KeyLogLevel, "info", "Log level: debug, info, warn, error")
	fs.String(KeyLogFormat, FormatText, "Log format: text, json, pretty")
	fs.String(KeyMetricsAddr, "", "Address for the /metrics and /health listener, e.g. :9090 (disabled when empty)")
}

// Load resolves the configuration. flags may be nil, in which case only
// defaults and the environment are consulted.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyAPIURL, dragonball.DefaultBaseURL)
	v.SetDefault(KeyTimeout, base.DefaultTimeout)
	v.SetDefault(KeyUserAgent, base.DefaultUserAgent)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, FormatText)
	v.SetDefault(KeyMetricsAddr, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range []string{KeyAPIURL, KeyTimeout, KeyUserAgent, KeyLogLevel, KeyLogFormat, KeyMetricsAddr} {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", key, err)
				}
			}
		}
	}

	cfg := &Config{
		APIURL:      strings.TrimSpace(v.GetString(KeyAPIURL)),
		Timeout:     v.GetDuration(KeyTimeout),
		UserAgent:   v.GetString(KeyUserAgent),
		LogLevel:    strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:   strings.ToLower(v.GetString(KeyLogFormat)),
		MetricsAddr: v.GetString(KeyMetricsAddr),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all configuration values are usable
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("%s: %q is not an http(s) URL", KeyAPIURL, c.APIURL))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%s: must not be negative, got %s", KeyTimeout, c.Timeout))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case FormatText, FormatJSON, FormatPretty:
	default:
		errs = append(errs, fmt.Errorf("%s: unknown format %q", KeyLogFormat, c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%s: unknown level %q", KeyLogLevel, level)
}
