// Package load_compiled loads compiled artifacts directly, without translation text files or timestamp checks.
//
// This is for deployments that only ship the cache directory.
package load_compiled

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dakusan/go18/translate"
)

// Load loads the compiled artifact of the language stack [languageFallback, language]. If both languages are the same, only 1 language is used.
func Load(cachePath, baseName, language, languageFallback string, isCompressed bool) (*translate.Table, error) {
	if language == "" || languageFallback == "" {
		return nil, translate.ErrEmptyLanguage
	}

	//Get the language stack and artifact path
	languages := []string{languageFallback}
	if language != languageFallback {
		languages = append(languages, language)
	}
	path := filepath.Join(cachePath, translate.ArtifactName(baseName, languages, isCompressed))

	//Load the artifact
	t, err := LoadPath(path, isCompressed)
	if err != nil {
		return nil, err
	}

	//Make sure the languages match what’s in the file
	if !slices.Equal(t.Languages(), languages) {
		return nil, fmt.Errorf("%w: Compiled artifact “%s” languages “%s” do not match “%s”", translate.ErrInvalidArtifact, path, strings.Join(t.Languages(), ", "), strings.Join(languages, ", "))
	}
	return t, nil
}

// LoadPath loads a single compiled artifact file
func LoadPath(path string, isCompressed bool) (*translate.Table, error) {
	//Open the file
	var f *os.File
	if _f, err := os.Open(path); err != nil {
		return nil, fmt.Errorf("Could not open compiled artifact: %w", err)
	} else {
		f = _f
	}
	defer func() { _ = f.Close() }()

	if t, err := translate.LoadCompiled(f, isCompressed); err != nil {
		return nil, fmt.Errorf("Could not load compiled artifact “%s”: %w", path, err)
	} else {
		return t, nil
	}
}
