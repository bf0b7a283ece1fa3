package footnotes

import "github.com/goliatone/go-cms-footnotes/internal/runtimeconfig"

var (
	ErrRendererFormatInvalid   = runtimeconfig.ErrRendererFormatInvalid
	ErrStorageProviderInvalid  = runtimeconfig.ErrStorageProviderInvalid
	ErrStorageDriverInvalid    = runtimeconfig.ErrStorageDriverInvalid
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrCacheRequiresBunStorage = runtimeconfig.ErrCacheRequiresBunStorage
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	RendererConfig       = runtimeconfig.RendererConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	StorageConfig        = runtimeconfig.StorageConfig
	CacheConfig          = runtimeconfig.CacheConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
	Features             = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
