package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrRendererFormatInvalid = errors.New("footnotes config: renderer default format is invalid")
var ErrStorageProviderInvalid = errors.New("footnotes config: storage provider is invalid")
var ErrStorageDriverInvalid = errors.New("footnotes config: storage driver is invalid")
var ErrStorageDSNRequired = errors.New("footnotes config: storage dsn is required for bun storage")
var ErrCacheRequiresBunStorage = errors.New("footnotes config: cache feature requires bun storage")
var ErrCacheTTLInvalid = errors.New("footnotes config: cache ttl must be positive")
var ErrLoggingProviderRequired = errors.New("footnotes config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("footnotes config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("footnotes config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("footnotes config: logging format is invalid")

// Config aggregates feature flags and adapter settings for the footnotes
// module. Fields use plain types so hosts can bind them from any source.
type Config struct {
	Renderer RendererConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Logging  LoggingConfig
	Features Features
}

// RendererConfig controls base rich-text rendering.
type RendererConfig struct {
	// DefaultFormat applies to values without an explicit format.
	DefaultFormat string
	Sanitize      bool
	Markdown      MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions.
type MarkdownParserConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// StorageConfig selects the footnote repository. Provider "memory" keeps
// footnotes in process; "bun" uses Driver and DSN.
type StorageConfig struct {
	Provider     string
	Driver       string
	DSN          string
	AutoMigrate  bool
	MaxOpenConns int
}

// CacheConfig tunes the go-repository-cache layer over bun storage.
type CacheConfig struct {
	DefaultTTL time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles optional subsystems.
type Features struct {
	Logger bool
	Cache  bool
}

// DefaultConfig returns an in-memory, HTML-first configuration with
// logging disabled.
func DefaultConfig() Config {
	return Config{
		Renderer: RendererConfig{
			DefaultFormat: "html",
			Sanitize:      true,
		},
		Storage: StorageConfig{
			Provider:     "memory",
			Driver:       "sqlite",
			AutoMigrate:  true,
			MaxOpenConns: 1,
		},
		Cache: CacheConfig{
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate reports the first inconsistency in cfg.
func (cfg Config) Validate() error {
	switch normalize(cfg.Renderer.DefaultFormat) {
	case "html", "markdown":
	default:
		return fmt.Errorf("%w: %s", ErrRendererFormatInvalid, cfg.Renderer.DefaultFormat)
	}

	provider := normalize(cfg.Storage.Provider)
	switch provider {
	case "memory":
	case "bun":
		switch normalize(cfg.Storage.Driver) {
		case "sqlite", "postgres":
		default:
			return fmt.Errorf("%w: %s", ErrStorageDriverInvalid, cfg.Storage.Driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderInvalid, cfg.Storage.Provider)
	}

	if cfg.Features.Cache {
		if provider != "bun" {
			return ErrCacheRequiresBunStorage
		}
		if cfg.Cache.DefaultTTL <= 0 {
			return ErrCacheTTLInvalid
		}
	}

	if cfg.Features.Logger {
		logProvider := normalize(cfg.Logging.Provider)
		if logProvider == "" {
			return ErrLoggingProviderRequired
		}
		if logProvider != "gologger" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, logProvider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
