//The loaded translation table and its retrieval functions

package translate

import (
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/klauspost/lctime"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Table is a loaded, read only translation table. It is safe for concurrent use.
type Table struct {
	values     FlatTable
	bundleName string
	separator  string   //What the keys were flattened with
	languages  []string //Fallback first, preferred last

	languageTag       language.Tag //Pulled from the preferred language
	messagePrinter    *message.Printer
	timeLocalizer     *lctime.Localizer
	timeLocalizerErr  error
	messagePrinterSet sync.Once
	timeLocalizerSet  sync.Once
}

func newTable(values FlatTable, bundleName, separator string, languages []string) *Table {
	t := &Table{
		values:      values,
		bundleName:  bundleName,
		separator:   separator,
		languages:   slices.Clone(languages),
		languageTag: language.Und,
	}

	//Language identifiers are opaque, so a tag that does not parse is not an error
	if len(languages) != 0 {
		if tag, err := language.Parse(languages[len(languages)-1]); err == nil {
			t.languageTag = tag
		}
	}

	return t
}

//------------------------------Retrieval functions-----------------------------

// Get retrieves a translation by its flattened key
func (t *Table) Get(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// MustGet retrieves a translation by its flattened key. It returns a blank string when the key does not exist.
func (t *Table) MustGet(key string) string {
	return t.values[key]
}

//------------------------------------Getters-----------------------------------

// Len returns the number of translations in the table
func (t *Table) Len() int {
	return len(t.values)
}

// Keys returns all flattened keys in sorted order
func (t *Table) Keys() []string {
	ret := make([]string, 0, len(t.values))
	for k := range t.values {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// BundleName returns the bundle name the table was compiled under
func (t *Table) BundleName() string {
	return t.bundleName
}

// Separator returns the string the nested key names were joined with
func (t *Table) Separator() string {
	return t.separator
}

// Languages returns the language stack the table was compiled from (fallback first)
func (t *Table) Languages() []string {
	return slices.Clone(t.languages)
}

// Language returns the preferred language of the table
func (t *Table) Language() string {
	if len(t.languages) == 0 {
		return ""
	}
	return t.languages[len(t.languages)-1]
}

// LanguageTag returns the LanguageTag of the preferred language, or language.Und if it could not be parsed
func (t *Table) LanguageTag() language.Tag {
	return t.languageTag
}

// MessagePrinter returns the MessagePrinter
func (t *Table) MessagePrinter() *message.Printer {
	t.messagePrinterSet.Do(func() {
		t.messagePrinter = message.NewPrinter(t.languageTag)
	})
	return t.messagePrinter
}

// TimeLocalizer returns the TimeLocalizer
func (t *Table) TimeLocalizer() (*lctime.Localizer, error) {
	t.timeLocalizerSet.Do(func() {
		if loc, err := lctime.NewLocalizer(strings.ReplaceAll(t.languageTag.String(), "-", "_")); err != nil {
			t.timeLocalizerErr = err
		} else {
			t.timeLocalizer = &loc
		}
	})
	return t.timeLocalizer, t.timeLocalizerErr
}
