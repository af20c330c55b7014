package translate

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var compiledTestTable = FlatTable{
	"string1":     "Hej",
	"string2":     "World",
	"group1_test": "Testvärde",
	"empty":       "",
}

func saveCompiledBytes(t *testing.T, table FlatTable, isCompressed bool) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, SaveCompiled(&buf, table, "lc", "_", []string{"en", "se"}, isCompressed))
	return buf.Bytes()
}

func TestCompiledRoundTrip(t *testing.T) {
	t.Parallel()

	for _, isCompressed := range []bool{false, true} {
		b := saveCompiledBytes(t, compiledTestTable, isCompressed)
		table, err := LoadCompiled(bytes.NewReader(b), isCompressed)
		require.NoError(t, err)

		require.Equal(t, "lc", table.BundleName())
		require.Equal(t, "_", table.Separator())
		require.Equal(t, []string{"en", "se"}, table.Languages())
		require.Equal(t, "se", table.Language())
		require.Equal(t, len(compiledTestTable), table.Len())
		for k, v := range compiledTestTable {
			got, ok := table.Get(k)
			require.True(t, ok, k)
			require.Equal(t, v, got, k)
		}
	}
}

func TestCompiledIsDeterministic(t *testing.T) {
	t.Parallel()

	first := saveCompiledBytes(t, compiledTestTable, false)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, saveCompiledBytes(t, compiledTestTable, false))
	}
	require.Equal(t, compiledFileType, string(first[:3]))
}

func TestCompiledEmptyTable(t *testing.T) {
	t.Parallel()

	b := saveCompiledBytes(t, FlatTable{}, false)
	require.Len(t, b, size_storeHeader+len("lc")+len("_")+len("en\x00se"))
	table, err := LoadCompiled(bytes.NewReader(b), false)
	require.NoError(t, err)
	require.Zero(t, table.Len())
}

func TestCompiledRejectsInvalidFiles(t *testing.T) {
	t.Parallel()

	valid := saveCompiledBytes(t, compiledTestTable, false)
	mutate := func(f func(b []byte) []byte) []byte {
		return f(bytes.Clone(valid))
	}

	for name, b := range map[string][]byte{
		"empty":          {},
		"bad file type":  mutate(func(b []byte) []byte { b[0] = 'X'; return b }),
		"bad version":    mutate(func(b []byte) []byte { b[3] = compiledFileVersion + 1; return b }),
		"truncated":      mutate(func(b []byte) []byte { return b[:len(b)-1] }),
		"trailing bytes": mutate(func(b []byte) []byte { return append(b, 0) }),
		"changed body":   mutate(func(b []byte) []byte { b[len(b)-1] ^= 0xff; return b }),
		"changed hash":   mutate(func(b []byte) []byte { b[size_storeHeader-1] ^= 0xff; return b }),
	} {
		_, err := LoadCompiled(bytes.NewReader(b), false)
		require.ErrorIs(t, err, ErrInvalidArtifact, name)
	}

	//Not gzip compressed
	_, err := LoadCompiled(bytes.NewReader(valid), true)
	require.ErrorIs(t, err, ErrInvalidArtifact)
}

func TestCompiledRejectsInvalidLanguages(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.Error(t, SaveCompiled(&buf, compiledTestTable, "lc", "_", []string{"e\x00n"}, false))
}

func TestTable(t *testing.T) {
	t.Parallel()

	table := newTable(FlatTable{"b": "B", "a": "A", "c": "C"}, "lc", "_", []string{"en", "en-US"})
	require.Equal(t, []string{"a", "b", "c"}, table.Keys())
	require.Equal(t, "B", table.MustGet("b"))
	require.Equal(t, "", table.MustGet("missing"))
	_, ok := table.Get("missing")
	require.False(t, ok)

	require.Equal(t, language.AmericanEnglish, table.LanguageTag())
	require.NotNil(t, table.MessagePrinter())
	require.Same(t, table.MessagePrinter(), table.MessagePrinter())

	loc, err := table.TimeLocalizer()
	require.NoError(t, err)
	require.NotNil(t, loc)

	//The returned language stack is a copy
	langs := table.Languages()
	langs[0] = "changed"
	require.Equal(t, []string{"en", "en-US"}, table.Languages())

	//Identifiers that are not BCP 47 tags are still allowed
	require.Equal(t, language.Und, newTable(nil, "lc", "_", []string{"not a tag"}).LanguageTag())
}
