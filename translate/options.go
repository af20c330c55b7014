//Options for creating a Loader

package translate

import (
	"go.uber.org/zap"
)

// Defaults for the Loader options
const (
	DefaultLanguagePath = "language/"
	DefaultCachePath    = "cache/"
	DefaultBundleName   = "lc"
)

// DefaultSourceExtensions are the translation text file extensions tried, in order, for every language
var DefaultSourceExtensions = []string{"yml", "yaml", "json"}

// Option configures a Loader
type Option func(*Loader)

// WithLanguagePath sets the directory with the translation text files. Default “language/”.
func WithLanguagePath(path string) Option {
	return func(ld *Loader) { ld.languagePath = path }
}

// WithCachePath sets the directory compiled artifacts are written to. Default “cache/”.
func WithCachePath(path string) Option {
	return func(ld *Loader) { ld.cachePath = path }
}

// WithAutoInit sets whether New calls Init. Default true.
func WithAutoInit(autoInit bool) Option {
	return func(ld *Loader) { ld.autoInit = autoInit }
}

// WithSeparator sets the string joining nested key names. Default “_”.
func WithSeparator(separator string) Option {
	return func(ld *Loader) { ld.separator = separator }
}

// WithBundleName sets the name stored in compiled artifacts and used as the go bundle package name. Default “lc”.
func WithBundleName(name string) Option {
	return func(ld *Loader) { ld.bundleName = name }
}

// WithSourceExtensions sets the translation text file extensions (without the dot) tried in order. Default yml, yaml, json.
func WithSourceExtensions(extensions ...string) Option {
	return func(ld *Loader) { ld.sourceExtensions = extensions }
}

// WithCompression sets whether compiled artifacts are gzip compressed (.ftr.gz)
func WithCompression(isCompressed bool) Option {
	return func(ld *Loader) { ld.isCompressed = isCompressed }
}

// WithStrictKeys makes 2 entries that flatten to the same key an error instead of keeping the first one
func WithStrictKeys(strict bool) Option {
	return func(ld *Loader) { ld.strictKeys = strict }
}

// WithIgnoreTimestamps always regenerates the artifact, ignoring compiled files even if they are newer
func WithIgnoreTimestamps(ignore bool) Option {
	return func(ld *Loader) { ld.ignoreTimestamps = ignore }
}

// WithGoBundlePath also writes a go bundle file under this directory whenever the artifact is regenerated. See GoBundlePath.
func WithGoBundlePath(path string) Option {
	return func(ld *Loader) { ld.goBundlePath = path }
}

// WithAllowJSONTrailingComma lets JSON translation files have trailing commas
func WithAllowJSONTrailingComma(allow bool) Option {
	return func(ld *Loader) { ld.allowJSONTrailingComma = allow }
}

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(ld *Loader) {
		if logger != nil {
			ld.logger = logger
		}
	}
}
