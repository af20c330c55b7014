package execute

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/dakusan/go18/translate"
)

func newTestSettings(t *testing.T, sources map[string]string) *ProcessSettings {
	t.Helper()
	root := t.TempDir()
	settings := DefaultSettings()
	settings.LanguagePath = filepath.Join(root, "language")
	settings.CachePath = filepath.Join(root, "cache")
	require.NoError(t, os.Mkdir(settings.LanguagePath, 0755))
	require.NoError(t, os.Mkdir(settings.CachePath, 0755))

	past := time.Now().Add(-2 * time.Hour)
	for name, content := range sources {
		path := filepath.Join(settings.LanguagePath, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		require.NoError(t, os.Chtimes(path, past, past))
	}
	return &settings
}

func TestDirectory(t *testing.T) {
	t.Parallel()

	settings := newTestSettings(t, map[string]string{
		"lang_en.yml":  "string1: Hello\nstring2: World\n",
		"lang_se.yml":  "string1: Hej\n",
		"lang_de.json": `{"string1": "Hallo"}`,
		"other_fr.yml": "string1: Bonjour\n",
		"readme.txt":   "not a translation file",
	})

	list, err := settings.Directory()
	require.NoError(t, err)
	require.Len(t, list, 3)

	en := list["en"]
	require.Equal(t, PFF_Language_SuccessfullyLoaded|PFF_Language_IsFallback|PFF_Load_Regenerated, en.Flags)
	require.Equal(t, filepath.Join(settings.CachePath, "go18_lang_en.ftr"), en.ArtifactPath)

	se := list["se"]
	require.NoError(t, se.Err)
	require.Equal(t, PFF_Language_SuccessfullyLoaded|PFF_Load_Regenerated, se.Flags)
	require.Equal(t, "Hej", se.Table.MustGet("string1"))
	require.Equal(t, "World", se.Table.MustGet("string2"))
	require.Equal(t, "Hallo", list["de"].Table.MustGet("string1"))

	//Everything is cached on the second run
	list, err = settings.Directory()
	require.NoError(t, err)
	for lang, pf := range list {
		require.NotZero(t, pf.Flags&PFF_Load_Cached, lang)
		require.Zero(t, pf.Flags&PFF_Load_Regenerated, lang)
	}
}

func TestDirectoryConfiguredLanguages(t *testing.T) {
	t.Parallel()

	settings := newTestSettings(t, map[string]string{
		"lang_en.yml": "string1: Hello\n",
		"lang_se.yml": "string1: Hej\n",
	})
	settings.Languages = []string{"se", "fr"}

	list, err := settings.Directory()
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.NotZero(t, list["fr"].Flags&PFF_Language_FallbackOnly)
	require.Equal(t, "Hello", list["fr"].Table.MustGet("string1"))
	require.Zero(t, list["se"].Flags&PFF_Language_FallbackOnly)
}

func TestDirectoryErrors(t *testing.T) {
	t.Parallel()

	t.Run("fallback language not found", func(t *testing.T) {
		t.Parallel()
		settings := newTestSettings(t, map[string]string{"lang_se.yml": "string1: Hej\n"})
		list, err := settings.Directory()
		require.ErrorIs(t, err, translate.ErrMissingFallbackFile)
		require.Nil(t, list)
	})

	t.Run("language identity found twice", func(t *testing.T) {
		t.Parallel()
		settings := newTestSettings(t, map[string]string{
			"lang_en.yml":  "string1: Hello\n",
			"lang_en.json": `{"string1": "Hello"}`,
		})
		_, err := settings.Directory()
		require.ErrorContains(t, err, "found again")
	})

	t.Run("errors in a preferred language are listed", func(t *testing.T) {
		t.Parallel()
		settings := newTestSettings(t, map[string]string{
			"lang_en.yml": "string1: Hello\n",
			"lang_se.yml": "string1: [unclosed\n",
			"lang_de.yml": "string1: Hallo\n",
		})
		list, err := settings.Directory()
		require.ErrorIs(t, err, translate.ErrParse)
		require.ErrorContains(t, err, "Lang “se”")
		require.NotZero(t, list["se"].Flags&PFF_Error_DuringProcessing)
		require.Nil(t, list["se"].Table)
		require.NoError(t, list["de"].Err)
	})

	t.Run("fallback language error stops processing", func(t *testing.T) {
		t.Parallel()
		settings := newTestSettings(t, map[string]string{
			"lang_en.yml": "string1: [unclosed\n",
			"lang_se.yml": "string1: Hej\n",
		})
		list, err := settings.Directory()
		require.ErrorIs(t, err, translate.ErrParse)
		require.Equal(t, PFF_Load_NotAttempted, list["se"].Flags)
	})

	t.Run("missing language path", func(t *testing.T) {
		t.Parallel()
		settings := newTestSettings(t, nil)
		settings.LanguagePath = filepath.Join(settings.LanguagePath, "missing")
		_, err := settings.Directory()
		require.ErrorIs(t, err, translate.ErrConfiguration)
	})

	t.Run("empty settings", func(t *testing.T) {
		t.Parallel()
		_, err := (&ProcessSettings{}).Directory()
		require.ErrorIs(t, err, translate.ErrEmptyLanguage)
		require.ErrorIs(t, err, translate.ErrConfiguration)
	})
}

func TestFile(t *testing.T) {
	t.Parallel()

	settings := newTestSettings(t, map[string]string{
		"lang_en.yml": "string1: Hello\ngroup:\n  a: A\n",
		"lang_se.yml": "string1: Hej\n",
	})
	settings.GoPath = t.TempDir()
	settings.Compress = true

	list, err := settings.File("se")
	require.NoError(t, err)
	require.Len(t, list, 1)
	pf := list["se"]
	require.Equal(t, PFF_Language_SuccessfullyLoaded|PFF_Load_Regenerated|PFF_OutputSuccess_GoBundle, pf.Flags)
	require.Equal(t, filepath.Join(settings.CachePath, "go18_lang_en_se.ftr.gz"), pf.ArtifactPath)
	require.FileExists(t, translate.GoBundlePath(settings.GoPath, "lang", []string{"en", "se"}, "lc"))
	require.Equal(t, "A", pf.Table.MustGet("group_a"))

	_, err = settings.File("")
	require.ErrorIs(t, err, translate.ErrEmptyLanguage)
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	settingsFile := filepath.Join(dir, SettingsFileName)
	require.NoError(t, os.WriteFile(settingsFile, []byte(
		"fallback_language: en-US\nlanguages:\n  - se\n  - de\nlanguage_path: from-file\ncache_path: from-file\nbundle_name: texts\ncompress: true\n",
	), 0644))

	t.Run("defaults when there is no settings file", func(t *testing.T) {
		settings, err := LoadSettings(filepath.Join(dir, "missing.yaml"), nil)
		require.NoError(t, err)
		d := DefaultSettings()
		require.Equal(t, &d, settings)
	})

	t.Run("settings file overrides defaults", func(t *testing.T) {
		settings, err := LoadSettings(settingsFile, nil)
		require.NoError(t, err)
		require.Equal(t, "en-US", settings.FallbackLanguage)
		require.Equal(t, []string{"se", "de"}, settings.Languages)
		require.Equal(t, "from-file", settings.LanguagePath)
		require.Equal(t, "texts", settings.BundleName)
		require.True(t, settings.Compress)
		require.Equal(t, "lang", settings.BaseFile)
		require.Equal(t, translate.DefaultSeparator, settings.Separator)
	})

	t.Run("environment overrides the settings file and flags override both", func(t *testing.T) {
		t.Setenv("GO18_CACHE_PATH", "from-env")
		t.Setenv("GO18_LANGUAGE_PATH", "from-env")
		t.Setenv("GO18_STRICT_KEYS", "true")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.StringP("language-path", "p", "", "")
		flags.StringP("base-file", "b", "", "")
		flags.BoolP("compress", "m", false, "")
		flags.BoolP("table", "t", true, "")
		require.NoError(t, flags.Parse([]string{"-p", "from-flag", "--compress=false", "--table=false"}))

		settings, err := LoadSettings(settingsFile, flags)
		require.NoError(t, err)
		require.Equal(t, "from-env", settings.CachePath)
		require.Equal(t, "from-flag", settings.LanguagePath)
		require.True(t, settings.StrictKeys)
		require.False(t, settings.Compress)
		require.Equal(t, "lang", settings.BaseFile, "unchanged flags do not override")
	})

	t.Run("invalid settings file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("languages: [unclosed\n"), 0644))
		_, err := LoadSettings(bad, nil)
		require.Error(t, err)
	})
}

func TestOptions(t *testing.T) {
	t.Parallel()

	settings := newTestSettings(t, map[string]string{"lang_en.yml": "a:\n  b: c\n"})
	settings.Separator = "."
	ld, err := translate.New("en", settings.FallbackLanguage, settings.BaseFile, settings.Options()...)
	require.NoError(t, err)
	require.Nil(t, ld.Table(), "Options() does not auto init")
	require.NoError(t, ld.Init())
	require.Equal(t, "c", ld.MustGet("a.b"))
}
