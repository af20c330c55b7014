package translate

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFileAt(t *testing.T, path, content string, modTime time.Time) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestArtifactName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "go18_lang_en_se.ftr", ArtifactName("lang", []string{"en", "se"}, false))
	require.Equal(t, "go18_lang_en.ftr.gz", ArtifactName("lang", []string{"en"}, true))
}

func TestCheckCache(t *testing.T) {
	t.Parallel()

	now := time.Now()
	dir := t.TempDir()
	fallback := writeFileAt(t, filepath.Join(dir, "lang_en.yml"), "a: b", now.Add(-2*time.Hour))
	preferred := writeFileAt(t, filepath.Join(dir, "lang_se.yml"), "a: c", now.Add(-2*time.Hour))
	artifact := filepath.Join(dir, "go18_lang_en_se.ftr")

	t.Run("missing artifact is stale", func(t *testing.T) {
		state, info := checkCache(filepath.Join(dir, "missing.ftr"), fallback, preferred)
		require.Equal(t, CacheStaleOrMissing, state)
		require.Nil(t, info)
	})

	writeFileAt(t, artifact, "", now.Add(-time.Hour))

	t.Run("newer artifact is fresh", func(t *testing.T) {
		state, info := checkCache(artifact, fallback, preferred)
		require.Equal(t, CacheFresh, state)
		require.NotNil(t, info)
		require.Equal(t, "fresh", state.String())
	})

	t.Run("missing preferred file is tolerated", func(t *testing.T) {
		state, _ := checkCache(artifact, fallback, "")
		require.Equal(t, CacheFresh, state)
	})

	t.Run("missing fallback file is stale", func(t *testing.T) {
		state, _ := checkCache(artifact, "", preferred)
		require.Equal(t, CacheStaleOrMissing, state)
	})

	t.Run("equal timestamps are stale", func(t *testing.T) {
		writeFileAt(t, preferred, "a: c", now.Add(-time.Hour))
		state, _ := checkCache(artifact, fallback, preferred)
		require.Equal(t, CacheStaleOrMissing, state)
		require.Equal(t, "stale", state.String())
	})

	t.Run("newer preferred file is stale", func(t *testing.T) {
		writeFileAt(t, preferred, "a: c", now.Add(-30*time.Minute))
		state, _ := checkCache(artifact, fallback, preferred)
		require.Equal(t, CacheStaleOrMissing, state)
	})
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "artifact.ftr")

	require.NoError(t, writeFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write([]byte("first"))
		return err
	}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "first", string(b))

	//A failed write leaves the previous file and no temporary files
	failErr := errors.New("write failed")
	require.ErrorIs(t, writeFileAtomic(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return failErr
	}), failErr)
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "first", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
