package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/d3s/internal/logger"
	"github.com/oshokin/d3s/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// CallbackURL is the URL prefix the ACS redirects to when authentication is finished.
	// It is only used as a detection signal, the address does not have to exist.
	CallbackURL string `mapstructure:"callback_url"`
	// Headless runs the browser without a window. Real ACS challenges need a visible window.
	Headless bool `mapstructure:"headless"`
	// BrowserBin is an explicit path to a Chrome binary. Empty means autodetect or download.
	BrowserBin string `mapstructure:"browser_bin"`
	// UserAgent overrides the browser User-Agent. Empty keeps the default one.
	UserAgent string `mapstructure:"user_agent"`
	// Stealth enables the go-rod stealth page to hide automation markers.
	Stealth bool `mapstructure:"stealth"`
	// AuthorizationTimeout is the maximum time to wait for the cardholder (e.g., "10m").
	AuthorizationTimeout string `mapstructure:"authorization_timeout"`
	// ScanGracePeriod is how long a callback navigation waits for in-flight markup scans (e.g., "1500ms").
	ScanGracePeriod string `mapstructure:"scan_grace_period"`
	// CallbackPassthrough lets the intercepted callback request reach the real server.
	CallbackPassthrough bool `mapstructure:"callback_passthrough"`
	// CallbackPlaceholder completes v2 sessions with placeholder values when the callback
	// page is reached without any extracted result.
	CallbackPlaceholder bool `mapstructure:"callback_placeholder"`
	// MaxLogLength caps the size of HTTP dumps in debug logs (e.g., "1MB").
	MaxLogLength string `mapstructure:"max_log_length"`
	// OutputPath is the file the result is written to. Empty means stdout.
	OutputPath string `mapstructure:"output_path"`
	// OutputFormat is the result encoding: yaml or json.
	OutputFormat string `mapstructure:"output_format"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedAuthorizationTimeout is the parsed authorization timeout.
	ParsedAuthorizationTimeout time.Duration
	// ParsedScanGracePeriod is the parsed scan grace period.
	ParsedScanGracePeriod time.Duration
	// ParsedMaxLogLength is the parsed maximum log dump length in bytes.
	ParsedMaxLogLength int64
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".d3s.yaml"

	// DefaultCallbackURL is the callback prefix used when neither the configuration
	// nor the v2 request supplies one.
	DefaultCallbackURL = "https://www.google.com"

	// DefaultMaxLogLength is the default maximum size (in bytes) for HTTP dumps in logs.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// DefaultAuthorizationTimeout is the default time the cardholder has to finish the challenge.
	DefaultAuthorizationTimeout = 10 * time.Minute

	// DefaultScanGracePeriod is the default wait for in-flight scans on callback navigation.
	DefaultScanGracePeriod = 1500 * time.Millisecond

	// OutputFormatYAML renders the result as YAML.
	OutputFormatYAML = "yaml"
	// OutputFormatJSON renders the result as JSON.
	OutputFormatJSON = "json"
)

// Static error definitions for better error handling.
var (
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidCallbackURL indicates that the callback URL is not an absolute http(s) URL.
	ErrInvalidCallbackURL = errors.New("callback_url must be an absolute http(s) URL")
	// ErrInvalidAuthorizationTimeout indicates that the authorization timeout is invalid.
	ErrInvalidAuthorizationTimeout = errors.New("authorization_timeout must be positive")
	// ErrInvalidScanGracePeriod indicates that the scan grace period is invalid.
	ErrInvalidScanGracePeriod = errors.New("scan_grace_period cannot be negative")
	// ErrUnknownOutputFormat indicates that the output format is not supported.
	ErrUnknownOutputFormat = errors.New("unknown output format")
)

// LoadConfig loads configuration settings from a YAML file.
// A missing default file is not an error: built-in defaults are used instead.
// A file named explicitly must exist.
func LoadConfig(configFilename string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := configFilename != ""
	if !explicit {
		configFilename = DefaultConfigFilename
	}

	exists, err := utils.IsFileExist(configFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file: %w", err)
	}

	if exists || explicit {
		v.SetConfigFile(configFilename)

		if err = v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err = v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers the built-in values for every key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("callback_url", DefaultCallbackURL)
	v.SetDefault("headless", false)
	v.SetDefault("browser_bin", "")
	v.SetDefault("user_agent", "")
	v.SetDefault("stealth", true)
	v.SetDefault("authorization_timeout", DefaultAuthorizationTimeout.String())
	v.SetDefault("scan_grace_period", DefaultScanGracePeriod.String())
	v.SetDefault("callback_passthrough", false)
	v.SetDefault("callback_placeholder", false)
	v.SetDefault("max_log_length", "1MiB")
	v.SetDefault("output_path", "")
	v.SetDefault("output_format", OutputFormatYAML)
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:cyclop // Validation functions naturally have high complexity due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	cfg.CallbackURL = strings.TrimSpace(cfg.CallbackURL)
	if cfg.CallbackURL == "" {
		cfg.CallbackURL = DefaultCallbackURL
	}

	if !utils.IsHTTPURL(cfg.CallbackURL) {
		return fmt.Errorf("%w: '%s'", ErrInvalidCallbackURL, cfg.CallbackURL)
	}

	cfg.ParsedAuthorizationTimeout, err = parseDurationOrDefault(cfg.AuthorizationTimeout, DefaultAuthorizationTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse authorization timeout: %w", err)
	}

	if cfg.ParsedAuthorizationTimeout <= 0 {
		return ErrInvalidAuthorizationTimeout
	}

	cfg.ParsedScanGracePeriod, err = parseDurationOrDefault(cfg.ScanGracePeriod, DefaultScanGracePeriod)
	if err != nil {
		return fmt.Errorf("failed to parse scan grace period: %w", err)
	}

	if cfg.ParsedScanGracePeriod < 0 {
		return ErrInvalidScanGracePeriod
	}

	maxLogLength := strings.TrimSpace(cfg.MaxLogLength)
	if maxLogLength == "" || maxLogLength == "0" {
		cfg.ParsedMaxLogLength = DefaultMaxLogLength
	} else {
		parsedMaxLogLength, parseErr := humanize.ParseBytes(maxLogLength)
		if parseErr != nil {
			return fmt.Errorf("failed to parse max log length: %w", parseErr)
		}

		cfg.ParsedMaxLogLength = utils.SafeUint64ToInt64(parsedMaxLogLength)
	}

	cfg.OutputFormat = strings.ToLower(strings.TrimSpace(cfg.OutputFormat))
	switch cfg.OutputFormat {
	case "":
		cfg.OutputFormat = OutputFormatYAML
	case OutputFormatYAML, OutputFormatJSON:
	default:
		return fmt.Errorf("%w: '%s'", ErrUnknownOutputFormat, cfg.OutputFormat)
	}

	return nil
}

func parseDurationOrDefault(value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}

	return time.ParseDuration(value)
}
