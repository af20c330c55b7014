//Decide if a compiled artifact is still valid, and write new ones

package translate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CacheState is the result of comparing a compiled artifact against its translation text files
type CacheState int

const (
	CacheStaleOrMissing CacheState = iota //The artifact must be regenerated
	CacheFresh                            //The artifact is newer than all of its translation text files
)

func (s CacheState) String() string {
	switch s {
	case CacheFresh:
		return "fresh"
	case CacheStaleOrMissing:
		return "stale"
	default:
		return fmt.Sprintf("CacheState(%d)", int(s))
	}
}

//goland:noinspection GoSnakeCaseUsage
const (
	ToolPrefix                 = "go18"
	FTR_Extension_Uncompressed = ".ftr"
	FTR_Extension_Compressed   = ".ftr.gz"
)

// ArtifactName returns the deterministic file name of a compiled artifact: “go18_$baseName_$lang1[_$lang2].ftr[.gz]”
func ArtifactName(baseName string, languages []string, isCompressed bool) string {
	return ToolPrefix + "_" + baseName + "_" + strings.Join(languages, "_") +
		cond(isCompressed, FTR_Extension_Compressed, FTR_Extension_Uncompressed)
}

// checkCache compares the modification time of the artifact to its translation text files.
//
// fallbackSource is required. A blank preferredSource means there is no preferred language file, which is not an error.
// The returned FileInfo is the artifact’s, and only filled when the state is fresh.
func checkCache(artifactPath, fallbackSource, preferredSource string) (CacheState, os.FileInfo) {
	//Artifact must exist
	var artifactInfo os.FileInfo
	if info, err := os.Stat(artifactPath); err != nil || info.IsDir() {
		return CacheStaleOrMissing, nil
	} else {
		artifactInfo = info
	}

	//Without the fallback file there is nothing to compare against
	if fallbackSource == "" {
		return CacheStaleOrMissing, nil
	}
	var reference os.FileInfo
	if info, err := os.Stat(fallbackSource); err != nil {
		return CacheStaleOrMissing, nil
	} else {
		reference = info
	}

	//Use the newer of the 2 translation text files
	if preferredSource != "" {
		if info, err := os.Stat(preferredSource); err == nil && info.ModTime().After(reference.ModTime()) {
			reference = info
		}
	}

	//The artifact must be strictly newer
	if !artifactInfo.ModTime().After(reference.ModTime()) {
		return CacheStaleOrMissing, nil
	}
	return CacheFresh, artifactInfo
}

// writeFileAtomic writes to a temporary file in the destination directory and renames it over the destination.
//
// Readers (including other processes) see either the old file or the complete new one.
func writeFileAtomic(path string, write func(w io.Writer) error) (err error) {
	//Create the temporary file
	var f *os.File
	if f, err = os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp"); err != nil {
		return fmt.Errorf("Could not create temporary file for “%s”: %w", path, err)
	}
	tempName := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tempName)
		}
	}()

	//Write and flush the contents
	if err = write(f); err != nil {
		return err
	} else if err = f.Chmod(0644); err != nil {
		return err
	} else if err = f.Sync(); err != nil {
		return err
	} else if err = f.Close(); err != nil {
		return err
	}

	//Move the file in place
	if err = os.Rename(tempName, path); err != nil {
		return fmt.Errorf("Could not move temporary file to “%s”: %w", path, err)
	}
	return nil
}
