//Load the settings from the settings file, the environment, and command line flags

package execute

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/dakusan/go18/translate"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// EnvPrefix is the prefix of environment variables that override settings. Example: GO18_CACHE_PATH
const EnvPrefix = "GO18_"

// ProcessSettings are taken from $SettingsFileName and are used to compile every language stack of a translation base file.
//
// Compiled artifacts are read from (and not written to) if their modification timestamps are newer than their translation text files, unless IgnoreTimestamps=true.
//
// Updating the fallback language file forces all other languages to be updated.
type ProcessSettings struct {
	FallbackLanguage       string   `koanf:"fallback_language" yaml:"fallback_language"` //The identifier for the fallback language
	Languages              []string `koanf:"languages" yaml:"languages"`                 //The preferred languages to compile. If empty, every language with a translation text file is compiled
	BaseFile               string   `koanf:"base_file" yaml:"base_file"`                 //Translation text files are named “$BaseFile_$language.$ext”
	LanguagePath           string   `koanf:"language_path" yaml:"language_path"`         //The directory with the translation text files
	CachePath              string   `koanf:"cache_path" yaml:"cache_path"`               //The directory to output the compiled artifacts to
	GoPath                 string   `koanf:"go_path" yaml:"go_path"`                     //If set, the directory to output go bundles to. Each language stack gets its own directory
	Separator              string   `koanf:"separator" yaml:"separator"`                 //Joins nested key names
	BundleName             string   `koanf:"bundle_name" yaml:"bundle_name"`             //The name stored in artifacts and the go bundle package name
	Compress               bool     `koanf:"compress" yaml:"compress"`                   //Whether compiled artifacts are saved as .ftr or .ftr.gz (gzip compressed)
	StrictKeys             bool     `koanf:"strict_keys" yaml:"strict_keys"`             //If entries that flatten to the same key are an error
	AllowJSONTrailingComma bool     `koanf:"allow_json_comma" yaml:"allow_json_comma"`   //If JSON files can have trailing commas
	IgnoreTimestamps       bool     `koanf:"ignore_timestamps" yaml:"ignore_timestamps"` //Whether to always regenerate, ignoring compiled artifacts even if they are newer

	Logger *zap.Logger `koanf:"-" yaml:"-"` //Not from the settings. A nil logger does not log
}

// DefaultSettings returns the settings used for anything not in the settings file, environment, or flags
func DefaultSettings() ProcessSettings {
	return ProcessSettings{
		FallbackLanguage: "en",
		BaseFile:         "lang",
		LanguagePath:     translate.DefaultLanguagePath,
		CachePath:        translate.DefaultCachePath,
		Separator:        translate.DefaultSeparator,
		BundleName:       translate.DefaultBundleName,
	}
}

// Command line flags that override settings. Flag names are the setting keys with dashes instead of underscores.
var settingFlagKeys = map[string]string{
	"fallback-language": "fallback_language",
	"base-file":         "base_file",
	"language-path":     "language_path",
	"cache-path":        "cache_path",
	"go-path":           "go_path",
	"separator":         "separator",
	"bundle-name":       "bundle_name",
	"compress":          "compress",
	"strict-keys":       "strict_keys",
	"allow-json-comma":  "allow_json_comma",
	"ignore-timestamps": "ignore_timestamps",
}

// LoadSettings reads the settings. Precedence (highest to lowest): changed flags, GO18_* environment variables, the settings file, defaults.
//
// A settings file that does not exist is not an error. flags may be nil.
func LoadSettings(settingsFile string, flags *pflag.FlagSet) (*ProcessSettings, error) {
	k := koanf.New(".")

	//Defaults
	d := DefaultSettings()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"fallback_language": d.FallbackLanguage,
		"base_file":         d.BaseFile,
		"language_path":     d.LanguagePath,
		"cache_path":        d.CachePath,
		"separator":         d.Separator,
		"bundle_name":       d.BundleName,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("Could not load default settings: %w", err)
	}

	//Settings file
	if settingsFile != "" {
		if _, err := os.Stat(settingsFile); err == nil {
			if err := k.Load(file.Provider(settingsFile), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("Could not read settings file “%s”: %w", settingsFile, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("Could not read settings file “%s”: %w", settingsFile, err)
		}
	}

	//Environment. GO18_CACHE_PATH -> cache_path
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("Could not load environment variables: %w", err)
	}

	//Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, isSetting := settingFlagKeys[f.Name]
			if !f.Changed || !isSetting {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("Could not load flags: %w", err)
		}
	}

	var settings ProcessSettings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, fmt.Errorf("Could not decode settings: %w", err)
	}
	return &settings, nil
}

// Options returns the translate.Loader options for the settings. The Loader does not automatically Init().
func (settings *ProcessSettings) Options() []translate.Option {
	return []translate.Option{
		translate.WithAutoInit(false),
		translate.WithLanguagePath(settings.LanguagePath),
		translate.WithCachePath(settings.CachePath),
		translate.WithSeparator(settings.Separator),
		translate.WithBundleName(settings.BundleName),
		translate.WithCompression(settings.Compress),
		translate.WithStrictKeys(settings.StrictKeys),
		translate.WithAllowJSONTrailingComma(settings.AllowJSONTrailingComma),
		translate.WithIgnoreTimestamps(settings.IgnoreTimestamps),
		translate.WithGoBundlePath(settings.GoPath),
		translate.WithLogger(settings.Logger),
	}
}

func (settings *ProcessSettings) logger() *zap.Logger {
	return cond(settings.Logger != nil, settings.Logger, zap.NewNop())
}
