//Public functions to load and save compiled files from io.Reader and io.Writer

package translate

import (
	"compress/gzip"
	"fmt"
	"io"
)

// LoadCompiled reads a compiled (.ftr or gzip compressed .ftr.gz) translation file into a Table
func LoadCompiled(r io.Reader, isCompressed bool) (*Table, error) {
	//Handle compressed files
	if isCompressed {
		if _r, err := gzip.NewReader(r); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
		} else {
			defer func() { _ = _r.Close() }()
			r = _r
		}
	}

	//Read the file
	if a, err := readCompiled(r); err != nil {
		return nil, err
	} else {
		return newTable(a.table, a.bundleName, a.separator, a.languages), nil
	}
}

// SaveCompiled writes a compiled (.ftr or gzip compressed .ftr.gz) translation file.
//
// separator is the one the table keys were flattened with. languages is the language stack the table was built from, fallback first.
func SaveCompiled(w io.Writer, table FlatTable, bundleName, separator string, languages []string, isCompressed bool) error {
	if !isCompressed {
		return writeCompiled(w, table, bundleName, separator, languages)
	}

	_w := gzip.NewWriter(w)
	if err := writeCompiled(_w, table, bundleName, separator, languages); err != nil {
		_ = _w.Close()
		return err
	}
	return _w.Close()
}
