package di

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	footnotescmd "github.com/goliatone/go-cms-footnotes/internal/commands/footnotes"
	"github.com/goliatone/go-cms-footnotes/internal/footnotes"
	"github.com/goliatone/go-cms-footnotes/internal/logging"
	"github.com/goliatone/go-cms-footnotes/internal/logging/gologger"
	"github.com/goliatone/go-cms-footnotes/internal/markdown"
	"github.com/goliatone/go-cms-footnotes/internal/migrations"
	"github.com/goliatone/go-cms-footnotes/internal/richtext"
	"github.com/goliatone/go-cms-footnotes/internal/runtimeconfig"
	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Option mutates the container before services are built.
type Option func(*Container)

// Container wires the footnote runtime from configuration and overrides.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	metrics        interfaces.FootnoteMetrics
	registry       footnotescmd.CommandRegistry

	bunDB    *bun.DB
	ownedDB  *sql.DB
	cacheTTL time.Duration

	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	repo     footnotes.Repository
	base     interfaces.RichTextRenderer
	renderer *footnotes.Renderer
	service  footnotes.Service
	commands *footnotescmd.HandlerSet
}

// WithBunDB supplies an existing database; the container will not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider replaces the provider derived from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithRepository bypasses storage configuration entirely.
func WithRepository(repo footnotes.Repository) Option {
	return func(c *Container) {
		c.repo = repo
	}
}

// WithRichTextRenderer replaces the base html/markdown renderer.
func WithRichTextRenderer(renderer interfaces.RichTextRenderer) Option {
	return func(c *Container) {
		c.base = renderer
	}
}

func WithMetrics(metrics interfaces.FootnoteMetrics) Option {
	return func(c *Container) {
		c.metrics = metrics
	}
}

// WithCommandRegistry registers the footnote command handlers with reg.
func WithCommandRegistry(reg footnotescmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cfg.Cache.DefaultTTL,
		metrics:  footnotes.NoOpMetrics(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureRenderers()

	c.service = footnotes.NewService(c.repo, c.renderer, c.base,
		footnotes.WithLogger(logging.ServiceLogger(c.loggerProvider)),
	)

	set, err := footnotescmd.RegisterFootnoteCommands(c.registry, c.service, c.loggerProvider)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.commands = set
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	provider, err := gologger.FromLoggingConfig(c.Config.Logging)
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureStorage() error {
	if c.repo != nil || strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider)) != "bun" {
		return nil
	}

	if c.bunDB == nil {
		db, err := openBunDB(c.Config.Storage)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownedDB = db.DB
	}

	if !c.Config.Storage.AutoMigrate {
		return nil
	}
	applied, err := migrations.Apply(context.Background(), c.bunDB)
	if err != nil {
		_ = c.Close()
		return fmt.Errorf("footnotes storage: migrate: %w", err)
	}
	logging.StorageLogger(c.loggerProvider).Info("footnotes.storage.migrated", "applied", len(applied))
	return nil
}

func openBunDB(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	var (
		sqlDB *sql.DB
		db    *bun.DB
		err   error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "postgres":
		sqlDB, err = sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("footnotes storage: open postgres: %w", err)
		}
		db = bun.NewDB(sqlDB, pgdialect.New())
	default:
		sqlDB, err = sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("footnotes storage: open sqlite: %w", err)
		}
		db = bun.NewDB(sqlDB, sqlitedialect.New())
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	return db, nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Features.Cache {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.repo != nil {
		return
	}
	if c.bunDB != nil {
		c.repo = footnotes.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return
	}
	c.repo = footnotes.NewMemoryRepository()
}

func (c *Container) configureRenderers() {
	if c.base == nil {
		rc := c.Config.Renderer
		var sanitizer *richtext.Sanitizer
		if rc.Sanitize {
			sanitizer = richtext.NewSanitizer()
		}
		parser := markdown.NewGoldmarkParser(interfaces.ParseOptions{
			Extensions: rc.Markdown.Extensions,
			HardWraps:  rc.Markdown.HardWraps,
			SafeMode:   rc.Markdown.SafeMode,
		})
		c.base = richtext.NewMultiRenderer(rc.DefaultFormat, map[string]interfaces.RichTextRenderer{
			richtext.FormatHTML:     richtext.NewHTMLRenderer(sanitizer),
			richtext.FormatMarkdown: richtext.NewMarkdownRenderer(parser, sanitizer),
		})
	}
	c.renderer = footnotes.NewRenderer(c.base,
		footnotes.WithRendererLogger(logging.RendererLogger(c.loggerProvider)),
		footnotes.WithRendererMetrics(c.metrics),
	)
}

// Close releases the database opened by the container, if any.
func (c *Container) Close() error {
	if c == nil || c.ownedDB == nil {
		return nil
	}
	err := c.ownedDB.Close()
	c.ownedDB = nil
	return err
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

func (c *Container) Repository() footnotes.Repository { return c.repo }

func (c *Container) RichTextRenderer() interfaces.RichTextRenderer { return c.base }

func (c *Container) Renderer() *footnotes.Renderer { return c.renderer }

func (c *Container) FootnoteService() footnotes.Service { return c.service }

func (c *Container) Commands() *footnotescmd.HandlerSet { return c.commands }

// BunDB returns the configured database, or nil for memory storage.
func (c *Container) BunDB() *bun.DB { return c.bunDB }
