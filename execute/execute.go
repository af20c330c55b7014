//Primary public processing functions to interact with this library. All of these functions are available through the command line interface

// Package execute contains the functions called by the main command line interface
package execute

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/dakusan/go18/translate"
	"go.uber.org/zap"
)

// ProcessedFile is an item in the list of processed languages and what was done to/with them.
type ProcessedFile struct {
	LangIdentifier string //The preferred language
	ArtifactPath   string
	Warnings       []string
	Err            error
	Flags          ProcessedFileFlag
	Table          *translate.Table //Only filled if Flags.PFF_Language_SuccessfullyLoaded
}
type ProcessedFileFlag uint

// ProcessedFileList is a list of ProcessedFiles keyed to their language identifier
type ProcessedFileList map[string]*ProcessedFile

// Directory compiles the language stack of every preferred language. The fallback language is compiled first, and on its own.
//
// If Languages is empty, every language with a “$BaseFile_$language.$ext” file in LanguagePath is compiled.
//
// No ProcessedFiles are returned if any of the following errors occur: Directory error, language identity used more than once, fallback language not found
func (settings *ProcessSettings) Directory() (ProcessedFileList, error) {
	//Check the settings
	if err := settings.checkSettings(); err != nil {
		return nil, err
	}

	//Get the languages to process
	var langs []string
	if len(settings.Languages) != 0 {
		langs = slices.Clone(settings.Languages)
		if !slices.Contains(langs, settings.FallbackLanguage) {
			langs = append(langs, settings.FallbackLanguage)
		}
	} else if _langs, err := settings.FindLanguages(); err != nil {
		return nil, err
	} else if !slices.Contains(_langs, settings.FallbackLanguage) {
		return nil, fmt.Errorf("%w: Fallback language “%s” not found", translate.ErrMissingFallbackFile, settings.FallbackLanguage)
	} else {
		langs = _langs
	}

	//Create the list of files to process
	list := make(ProcessedFileList, len(langs))
	for _, lang := range langs {
		list[lang] = &ProcessedFile{LangIdentifier: lang, Flags: PFF_Load_NotAttempted}
	}

	//Process the fallback language. If there is an error with it, stop here
	if pf := list[settings.FallbackLanguage]; settings.processFile(pf) != nil {
		return list, fmt.Errorf("Fallback language error: %w", pf.Err)
	}

	//Process the other languages. Each language stack writes its own artifact.
	var waitForFiles sync.WaitGroup
	for lang, pf := range list {
		if lang != settings.FallbackLanguage {
			waitForFiles.Add(1)
			go func(pf *ProcessedFile) {
				defer waitForFiles.Done()
				_ = settings.processFile(pf)
			}(pf)
		}
	}
	waitForFiles.Wait()

	//Gather the errors
	var errs []error
	for _, lang := range getMapKeys(list) {
		if err := list[lang].Err; err != nil {
			errs = append(errs, fmt.Errorf("Lang “%s”: %w", lang, err))
		}
	}
	if len(errs) != 0 {
		return list, errors.Join(append([]error{errors.New("There were errors while processing files")}, errs...)...)
	}

	//Return success
	return list, nil
}

// File compiles the language stack of a single preferred language (with the fallback language under it)
func (settings *ProcessSettings) File(languageIdentifier string) (ProcessedFileList, error) {
	//Check the settings
	if err := settings.checkSettings(); err != nil {
		return nil, err
	} else if languageIdentifier == "" {
		return nil, translate.ErrEmptyLanguage
	}

	pf := &ProcessedFile{LangIdentifier: languageIdentifier, Flags: PFF_Load_NotAttempted}
	list := ProcessedFileList{languageIdentifier: pf}
	return list, settings.processFile(pf)
}

// FindLanguages returns the sorted languages that have a translation text file in LanguagePath
func (settings *ProcessSettings) FindLanguages() ([]string, error) {
	//Get a list of the files in the directory
	var d []os.DirEntry
	if _d, err := os.ReadDir(settings.LanguagePath); err != nil {
		return nil, fmt.Errorf("%w: Error reading language path: %w", translate.ErrConfiguration, err)
	} else {
		d = _d
	}

	//Only use files whose name and extension match
	checkFiletype := regexp.MustCompile(`^` + regexp.QuoteMeta(settings.BaseFile) + `_(.+)\.(` + strings.Join(translate.DefaultSourceExtensions, "|") + `)$`)
	langIdentsFound := make(map[string]string)
	for _, f := range d {
		fName := f.Name()
		var m []string
		if f.IsDir() {
			continue
		} else if m = checkFiletype.FindStringSubmatch(fName); m == nil {
			continue
		}

		//Error on duplicate language identifiers
		if prevFile, ok := langIdentsFound[m[1]]; ok {
			return nil, fmt.Errorf("Language identity “%s” found again in file “%s” (first in “%s”)", m[1], fName, prevFile)
		}
		langIdentsFound[m[1]] = fName
	}

	return getMapKeys(langIdentsFound), nil
}

//------------------Combined processing for the above functions-----------------

func (settings *ProcessSettings) checkSettings() error {
	var errs []error
	if settings.FallbackLanguage == "" {
		errs = append(errs, translate.ErrEmptyLanguage)
	}
	if settings.BaseFile == "" {
		errs = append(errs, fmt.Errorf("%w: Base file name cannot be empty", translate.ErrConfiguration))
	}
	if settings.GoPath != "" {
		if info, err := os.Stat(settings.GoPath); err == nil && !info.IsDir() {
			errs = append(errs, fmt.Errorf("%w: Go path “%s” is not a directory", translate.ErrConfiguration, settings.GoPath))
		}
	}
	return errors.Join(errs...)
}

func (settings *ProcessSettings) processFile(pf *ProcessedFile) error {
	pf.Err = settings.processFileReal(pf)
	if pf.Err != nil {
		pf.Flags |= PFF_Error_DuringProcessing
		settings.logger().Warn("Could not process language", zap.String("language", pf.LangIdentifier), zap.Error(pf.Err))
	} else {
		settings.logger().Debug("Processed language", zap.String("language", pf.LangIdentifier), zap.Stringer("flags", pf.Flags))
	}
	return pf.Err
}

func (settings *ProcessSettings) processFileReal(pf *ProcessedFile) error {
	if pf.LangIdentifier == settings.FallbackLanguage {
		pf.Flags |= PFF_Language_IsFallback
	}

	//Create the loader
	var ld *translate.Loader
	if _ld, err := translate.New(pf.LangIdentifier, settings.FallbackLanguage, settings.BaseFile, settings.Options()...); err != nil {
		return err
	} else {
		ld = _ld
	}
	pf.ArtifactPath = ld.ArtifactPath()

	//Compile or load the artifact
	pf.Flags &= ^PFF_Load_NotAttempted
	if err := ld.Init(); err != nil {
		return err
	}

	//Store the results
	pf.Flags |= PFF_Language_SuccessfullyLoaded | cond(ld.Regenerations() > 0, PFF_Load_Regenerated, PFF_Load_Cached)
	if ld.PreferredMissing() {
		pf.Flags |= PFF_Language_FallbackOnly
	}
	if ld.GoBundleUpdated() {
		pf.Flags |= PFF_OutputSuccess_GoBundle
	}
	pf.Warnings = ld.Warnings()
	pf.Table = ld.Table()
	return nil
}
