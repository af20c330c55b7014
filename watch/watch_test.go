package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dakusan/go18/execute"
)

func newWatchSettings(t *testing.T) *execute.ProcessSettings {
	t.Helper()
	root := t.TempDir()
	settings := execute.DefaultSettings()
	settings.LanguagePath = filepath.Join(root, "language")
	settings.CachePath = filepath.Join(root, "cache")
	require.NoError(t, os.Mkdir(settings.LanguagePath, 0755))
	require.NoError(t, os.Mkdir(settings.CachePath, 0755))

	past := time.Now().Add(-2 * time.Hour)
	for name, content := range map[string]string{
		"lang_en.yml": "string1: Hello\nstring2: World\n",
		"lang_se.yml": "string1: Hej\n",
	} {
		path := filepath.Join(settings.LanguagePath, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		require.NoError(t, os.Chtimes(path, past, past))
	}
	return &settings
}

// Returns the next ReturnData that is not a message
func nextData(t *testing.T, ch <-chan ReturnData) ReturnData {
	t.Helper()
	timeout := time.After(10 * time.Second)
	for {
		select {
		case rd, ok := <-ch:
			require.True(t, ok, "channel closed")
			if rd.Type != WR_Message {
				return rd
			}
		case <-timeout:
			require.FailNow(t, "timed out waiting for watch data")
		}
	}
}

func TestExecuteContext(t *testing.T) {
	t.Parallel()

	settings := newWatchSettings(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := ExecuteContext(ctx, settings)

	//Initial compile of the directory
	rd := nextData(t, ch)
	require.Equal(t, WR_ProcessedDirectory, rd.Type)
	require.NoError(t, rd.Err)
	require.Len(t, rd.Files, 2)
	require.NotZero(t, rd.Files["se"].Flags&execute.PFF_Load_Regenerated)

	//Changing a preferred language only recompiles its language stack
	require.NoError(t, os.WriteFile(filepath.Join(settings.LanguagePath, "lang_se.yml"), []byte("string1: Hej igen\n"), 0644))
	rd = nextData(t, ch)
	require.Equal(t, WR_ProcessedFile, rd.Type)
	require.NoError(t, rd.Err)
	require.Equal(t, "lang_se.yml", rd.Message)
	require.Len(t, rd.Files, 1)
	require.Equal(t, "Hej igen", rd.Files["se"].Table.MustGet("string1"))
	require.Equal(t, "World", rd.Files["se"].Table.MustGet("string2"))

	//Changing the fallback language recompiles everything
	require.NoError(t, os.WriteFile(filepath.Join(settings.LanguagePath, "lang_en.yml"), []byte("string1: Hello\nstring2: Earth\n"), 0644))
	rd = nextData(t, ch)
	require.Equal(t, WR_ProcessedDirectory, rd.Type)
	require.NoError(t, rd.Err)
	require.Equal(t, "Earth", rd.Files["se"].Table.MustGet("string2"))

	//Files that are not translation text files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(settings.LanguagePath, "notes.txt"), []byte("ignored"), 0644))

	cancel()
	rd = nextData(t, ch)
	require.Equal(t, WR_CloseRequested, rd.Type)

	//The channel is closed once the watch exits
	for range ch {
	}
}

func TestExecuteMissingPath(t *testing.T) {
	t.Parallel()

	settings := newWatchSettings(t)
	settings.LanguagePath = filepath.Join(settings.LanguagePath, "missing")
	rd := nextData(t, Execute(settings))
	require.Equal(t, WR_ErroredOut, rd.Type)
	require.Error(t, rd.Err)
}
