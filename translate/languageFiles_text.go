//Public functions to load text files from io.Reader

package translate

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// LanguageTextFile is the interface to load translation text files
type LanguageTextFile int

//goland:noinspection GoSnakeCaseUsage
const (
	LF_YAML LanguageTextFile = iota
	LF_JSON
	LF_JSON_AllowTrailingComma
)

// Load reads (yaml or json) a translation text file and flattens it with the given separator.
//
// When strict is set, 2 entries that flatten to the same key return ErrKeyCollision instead of keeping the first.
func (lf LanguageTextFile) Load(r io.Reader, separator string, strict bool) (FlatTable, error) {
	//Read the full file
	var b []byte
	if _b, err := io.ReadAll(r); err != nil {
		return nil, fmt.Errorf("Error reading the file: %w", err)
	} else {
		b = _b
	}

	//Load the tree from the translation text file
	var tree tpMap
	var err error
	switch lf {
	case LF_YAML:
		tree, err = fromYamlFile(b)
	case LF_JSON, LF_JSON_AllowTrailingComma:
		tree, err = fromJsonFile(b, lf == LF_JSON_AllowTrailingComma)
	default:
		return nil, errors.New("Invalid LanguageTextFile type given")
	}
	if err != nil {
		return nil, err
	}

	return flatten(tree, separator, strict)
}

// TextFileTypeFromExtension returns the LanguageTextFile that reads files with the given extension (without the dot)
func TextFileTypeFromExtension(ext string, allowJSONTrailingComma bool) (LanguageTextFile, bool) {
	switch strings.ToLower(ext) {
	case "yml", "yaml":
		return LF_YAML, true
	case "json":
		return cond(allowJSONTrailingComma, LF_JSON_AllowTrailingComma, LF_JSON), true
	default:
		return 0, false
	}
}
