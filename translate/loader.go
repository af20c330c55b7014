//Compile, cache, and load translation tables

/*
Package translate loads flattened translation tables from hierarchical translation text files (YAML or JSON).

A Loader is given a preferred language and a fallback language. Each language’s file is flattened into a single level table whose keys are the nested names joined by a separator (“group1: {test: …}” becomes “group1_test”), the preferred table is merged over the fallback table, and the result is saved as a compiled .ftr artifact in the cache directory.

Compiled artifacts are read from (and not regenerated) when their modification timestamps are newer than their translation text files.

The loaded translations are held by a Table, which is queried by key.
*/
package translate

import (
	"fmt"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Loader compiles the translation text files of a language stack into a cached artifact and loads it
type Loader struct {
	languages              []string //Fallback first, then the preferred language. Only unique languages
	languageFile           string
	languagePath           string
	cachePath              string
	separator              string
	bundleName             string
	goBundlePath           string
	sourceExtensions       []string
	autoInit               bool
	isCompressed           bool
	strictKeys             bool
	ignoreTimestamps       bool
	allowJSONTrailingComma bool
	logger                 *zap.Logger

	//State from Init()
	table            *Table
	loadedInfo       os.FileInfo //The artifact the table was loaded from
	cacheState       CacheState
	regenerations    uint
	preferredMissing bool
	goBundleUpdated  bool
	warnings         []string
}

// New creates a Loader for the language stack [languageFallback, language] and the translation text files named “$languageFile_$language.$ext”.
//
// If both languages are the same, only 1 language is used. Unless WithAutoInit(false) is given, Init() is called before returning.
func New(language, languageFallback, languageFile string, opts ...Option) (*Loader, error) {
	if language == "" || languageFallback == "" {
		return nil, ErrEmptyLanguage
	} else if languageFile == "" {
		return nil, fmt.Errorf("%w: Language file name cannot be empty", ErrEmptyLanguage)
	}

	ld := &Loader{
		languages:        []string{languageFallback},
		languageFile:     languageFile,
		languagePath:     DefaultLanguagePath,
		cachePath:        DefaultCachePath,
		separator:        DefaultSeparator,
		bundleName:       DefaultBundleName,
		sourceExtensions: DefaultSourceExtensions,
		autoInit:         true,
		logger:           zap.NewNop(),
	}
	if language != languageFallback {
		ld.languages = append(ld.languages, language)
	}
	for _, opt := range opts {
		opt(ld)
	}

	//Check the options
	if len(ld.sourceExtensions) == 0 {
		return nil, fmt.Errorf("%w: At least 1 source extension is required", ErrConfiguration)
	}
	for _, ext := range ld.sourceExtensions {
		if _, ok := TextFileTypeFromExtension(ext, false); !ok {
			return nil, fmt.Errorf("%w: Extension “%s” must be yml, yaml, or json", ErrConfiguration, ext)
		}
	}
	if ld.goBundlePath != "" && !token.IsIdentifier(ld.bundleName) {
		return nil, fmt.Errorf("%w: Bundle name “%s” is not a valid go package name", ErrConfiguration, ld.bundleName)
	}

	if ld.autoInit {
		if err := ld.Init(); err != nil {
			return nil, err
		}
	}
	return ld, nil
}

// Init validates the directories, regenerates the compiled artifact if it is stale or missing, and loads it.
//
// Calling Init again only regenerates when a translation text file changed. An artifact that is already loaded is not loaded again.
// On error, the previously loaded Table (if any) is kept.
func (ld *Loader) Init() error {
	//Confirm the directories exist
	if err := checkDir(ld.languagePath, "Language path"); err != nil {
		return err
	} else if err := checkDir(ld.cachePath, "Cache path"); err != nil {
		return err
	}

	//Find the translation text files
	artifactPath := ld.ArtifactPath()
	fallbackSource, _ := ld.findSource(ld.LanguageFallback())
	preferredSource := ""
	if len(ld.languages) > 1 {
		preferredSource, _ = ld.findSource(ld.Language())
	}
	ld.preferredMissing = len(ld.languages) > 1 && preferredSource == ""
	ld.goBundleUpdated = false
	ld.warnings = nil
	log := ld.logger.With(zap.String("artifact", artifactPath), zap.Strings("languages", ld.languages))

	//Check the compiled artifact
	ld.cacheState = CacheStaleOrMissing
	var artifactInfo os.FileInfo
	if !ld.ignoreTimestamps {
		ld.cacheState, artifactInfo = checkCache(artifactPath, fallbackSource, preferredSource)
	}
	log.Debug("Checked compiled artifact", zap.Stringer("state", ld.cacheState))

	//The go bundle is written with the artifact, so a missing go bundle means the artifact must be regenerated
	if ld.cacheState == CacheFresh && ld.goBundlePath != "" {
		if _, err := os.Stat(ld.goBundleFilePath()); err != nil {
			log.Debug("Go bundle is missing, regenerating", zap.Error(err))
			ld.cacheState = CacheStaleOrMissing
		}
	}

	//Load the fresh artifact
	if ld.cacheState == CacheFresh {
		if ld.table != nil && sameArtifact(ld.loadedInfo, artifactInfo) {
			log.Debug("Compiled artifact is already loaded")
			return nil
		}

		if t, err := ld.loadArtifact(artifactPath); err != nil {
			log.Warn("Could not load compiled artifact, regenerating", zap.Error(err))
			ld.cacheState = CacheStaleOrMissing
		} else if err := ld.checkArtifactOptions(t); err != nil {
			log.Info("Compiled artifact was built with other options, regenerating", zap.Error(err))
			ld.cacheState = CacheStaleOrMissing
		} else {
			ld.table, ld.loadedInfo = t, artifactInfo
			return nil
		}
	}

	return ld.regenerate(artifactPath, fallbackSource, preferredSource, log)
}

func (ld *Loader) regenerate(artifactPath, fallbackSource, preferredSource string, log *zap.Logger) error {
	//The fallback language file is required
	if fallbackSource == "" {
		return fmt.Errorf("%w: “%s” was not found or is not readable", ErrMissingFallbackFile, ld.SourcePath(ld.LanguageFallback()))
	}
	var table FlatTable
	if f, err := os.Open(fallbackSource); err != nil {
		return fmt.Errorf("%w: “%s”: %w", ErrMissingFallbackFile, fallbackSource, err)
	} else if table, err = ld.readSource(f); err != nil {
		return err
	}

	//Merge the preferred language over the fallback. A preferred language file that cannot be opened is skipped.
	if preferredSource != "" {
		if f, err := os.Open(preferredSource); err != nil {
			log.Debug("Preferred language file could not be opened", zap.String("file", preferredSource), zap.Error(err))
			ld.preferredMissing = true
		} else if preferredTable, err := ld.readSource(f); err != nil {
			return err
		} else {
			table = Merge(table, preferredTable)
		}
	}

	//The go bundle is saved before the artifact so a failed bundle write never leaves a fresh artifact
	var bundleWarnings []string
	var bundleUpdated bool
	if ld.goBundlePath != "" {
		if warnings, updated, err := SaveGoBundle(ld.goBundleFilePath(), ld.bundleName, table, ld.languages); err != nil {
			return fmt.Errorf("Could not save go bundle: %w", err)
		} else {
			bundleWarnings, bundleUpdated = warnings, updated
		}
		for _, w := range bundleWarnings {
			log.Warn("Go bundle", zap.String("warning", w))
		}
	}

	//Save and stat the compiled artifact
	if err := writeFileAtomic(artifactPath, func(w io.Writer) error {
		return SaveCompiled(w, table, ld.bundleName, ld.separator, ld.languages, ld.isCompressed)
	}); err != nil {
		return fmt.Errorf("Could not save compiled artifact “%s”: %w", artifactPath, err)
	}
	artifactInfo, err := os.Stat(artifactPath)
	if err != nil {
		return fmt.Errorf("Could not get file info for “%s”: %w", artifactPath, err)
	}

	//Store the table
	ld.table = newTable(table, ld.bundleName, ld.separator, ld.languages)
	ld.warnings, ld.goBundleUpdated = bundleWarnings, bundleUpdated
	ld.loadedInfo = artifactInfo
	ld.regenerations++
	log.Info("Regenerated compiled artifact", zap.Int("entries", len(table)), zap.Bool("preferred_missing", ld.preferredMissing))
	return nil
}

// Read, parse, and flatten a translation text file. The file is closed when done.
func (ld *Loader) readSource(f *os.File) (FlatTable, error) {
	defer func() { _ = f.Close() }()

	ext := strings.TrimPrefix(filepath.Ext(f.Name()), ".")
	lf, ok := TextFileTypeFromExtension(ext, ld.allowJSONTrailingComma)
	if !ok {
		return nil, fmt.Errorf("Extension “%s” for file “%s” must be yml, yaml, or json", ext, f.Name())
	}

	if table, err := lf.Load(f, ld.separator, ld.strictKeys); err != nil {
		return nil, fmt.Errorf("Could not load language file “%s”: %w", f.Name(), err)
	} else {
		return table, nil
	}
}

func (ld *Loader) loadArtifact(artifactPath string) (*Table, error) {
	f, err := os.Open(artifactPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return LoadCompiled(f, ld.isCompressed)
}

// Returns the first translation text file that exists and is readable for the language
func (ld *Loader) findSource(language string) (string, bool) {
	for _, ext := range ld.sourceExtensions {
		p := filepath.Join(ld.languagePath, ld.languageFile+"_"+language+"."+ext)
		if info, err := os.Stat(p); err != nil || info.IsDir() {
			continue
		} else if f, err := os.Open(p); err != nil {
			continue
		} else {
			_ = f.Close()
			return p, true
		}
	}
	return "", false
}

// Confirms a loaded artifact was compiled with the Loader’s bundle name, separator, and language stack
func (ld *Loader) checkArtifactOptions(t *Table) error {
	if t.BundleName() != ld.bundleName {
		return fmt.Errorf("Bundle name “%s” does not match “%s”", t.BundleName(), ld.bundleName)
	} else if t.Separator() != ld.separator {
		return fmt.Errorf("Separator “%s” does not match “%s”", t.Separator(), ld.separator)
	} else if !slices.Equal(t.Languages(), ld.languages) {
		return fmt.Errorf("Languages “%s” do not match “%s”", strings.Join(t.Languages(), ", "), strings.Join(ld.languages, ", "))
	}
	return nil
}

func (ld *Loader) goBundleFilePath() string {
	return GoBundlePath(ld.goBundlePath, ld.languageFile, ld.languages, ld.bundleName)
}

func checkDir(dirPath, dirName string) error {
	if info, err := os.Stat(dirPath); err != nil {
		return fmt.Errorf("%w: %s “%s” does not exist", ErrConfiguration, dirName, dirPath)
	} else if !info.IsDir() {
		return fmt.Errorf("%w: %s “%s” is not a directory", ErrConfiguration, dirName, dirPath)
	}
	return nil
}

// If 2 file infos are of the same unchanged file
func sameArtifact(a, b os.FileInfo) bool {
	return a != nil && b != nil && os.SameFile(a, b) && a.ModTime().Equal(b.ModTime()) && a.Size() == b.Size()
}

//------------------------------------Getters-----------------------------------

// Language returns the preferred (most specific) language
func (ld *Loader) Language() string {
	return ld.languages[len(ld.languages)-1]
}

// LanguageFallback returns the fallback (least specific) language
func (ld *Loader) LanguageFallback() string {
	return ld.languages[0]
}

// Languages returns the language stack, fallback first
func (ld *Loader) Languages() []string {
	return slices.Clone(ld.languages)
}

// Table returns the loaded table, or nil if Init() has not succeeded yet
func (ld *Loader) Table() *Table {
	return ld.table
}

// Get retrieves a translation from the loaded table
func (ld *Loader) Get(key string) (string, bool) {
	if ld.table == nil {
		return returnBlankStrOnErr, false
	}
	return ld.table.Get(key)
}

// MustGet retrieves a translation from the loaded table. It returns a blank string when the key does not exist.
func (ld *Loader) MustGet(key string) string {
	return twoToOne(ld.Get(key))
}

// ArtifactPath returns the path of the compiled artifact
func (ld *Loader) ArtifactPath() string {
	return filepath.Join(ld.cachePath, ArtifactName(ld.languageFile, ld.languages, ld.isCompressed))
}

// SourcePath returns the translation text file used for the language, or the path it is expected at (with the first extension) if none exists
func (ld *Loader) SourcePath(language string) string {
	if p, ok := ld.findSource(language); ok {
		return p
	}
	return filepath.Join(ld.languagePath, ld.languageFile+"_"+language+"."+ld.sourceExtensions[0])
}

// CacheState returns the state of the compiled artifact found by the last Init()
func (ld *Loader) CacheState() CacheState {
	return ld.cacheState
}

// Regenerations returns how many times this Loader has regenerated the compiled artifact
func (ld *Loader) Regenerations() uint {
	return ld.regenerations
}

// PreferredMissing returns if the last Init() had to use the fallback language alone because the preferred language file was missing
func (ld *Loader) PreferredMissing() bool {
	return ld.preferredMissing
}

// GoBundleUpdated returns if the last Init() wrote a changed go bundle file
func (ld *Loader) GoBundleUpdated() bool {
	return ld.goBundleUpdated
}

// Warnings returns the warnings from the last go bundle write
func (ld *Loader) Warnings() []string {
	return slices.Clone(ld.warnings)
}
