//Command line interface

/*
Package main is the command line interface to the “translate” package, which compiles hierarchical translation text files into flattened, cached translation tables.

go18 [flags] [preferred language...]:

	Without arguments, every language with a “$BaseFile_$language.$ext” file in the language path is compiled (or the “languages” setting, if given)
	With arguments, only those preferred languages are compiled (with the fallback language under them)

	-w, --watch                      Continually watches the language directory for relevant changes
	                                 Only recompiles the necessary artifacts when a change is detected
	    --create-settings            Create the settings-go18.yaml file from the defaults and given flags
	-h, --help                       This help prompt

The following are for overriding settings from settings-go18.yaml (and GO18_* environment variables). If not given, the values from the settings file will be used:

	-f, --fallback-language string   The identifier for the fallback language
	-b, --base-file string           Translation text files are named “$BaseFile_$language.$ext”
	-p, --language-path string       The directory with the translation text files
	-o, --cache-path string          The directory to output the compiled artifacts to
	-s, --separator string           Joins nested key names
	-n, --bundle-name string         The name stored in artifacts and the go bundle package name
	-g, --go-path string             The directory to output go bundles to. Each language stack gets its own directory
	-m, --compress                   Whether compiled artifacts are saved as .ftr or .ftr.gz (gzip compressed)
	-i, --ignore-timestamps          Always compile from translation text files [ignore compiled artifacts even if they are newer]
	-k, --strict-keys                Entries that flatten to the same key are an error
	-j, --allow-json-comma           If JSON files can have trailing commas

Command line display modifiers:

	-t, --table[=false]              Output an ascii table of the processed languages and their flags (default true)
	-v, --verbose                    Output a list of processed languages and their flags, and log processing details
	-x, --warnings[=false]           Output a list of go bundle warnings (default true)
*/
package main

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/dakusan/go18/execute"
	"github.com/dakusan/go18/watch"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

func main() {
	if !mainWrapper() {
		os.Exit(1)
	}
}

// Returns if successful
func mainWrapper() bool {
	//Mode flags
	flagWatchFiles := pflag.BoolP("watch", "w", false, "Continually watches the language directory for relevant changes\nOnly recompiles the necessary artifacts when a change is detected")
	flagCreateSettingsFile := pflag.Bool("create-settings", false, "Create the "+execute.SettingsFileName+" file from the defaults and given flags")
	flagShowHelp := pflag.BoolP("help", "h", false, "This help prompt")

	//Settings flags. These are read by execute.LoadSettings
	pflag.StringP("fallback-language", "f", "", "The identifier for the fallback language")
	pflag.StringP("base-file", "b", "", "Translation text files are named “$BaseFile_$language.$ext”")
	pflag.StringP("language-path", "p", "", "The directory with the translation text files")
	pflag.StringP("cache-path", "o", "", "The directory to output the compiled artifacts to")
	pflag.StringP("separator", "s", "", "Joins nested key names")
	pflag.StringP("bundle-name", "n", "", "The name stored in artifacts and the go bundle package name")
	pflag.StringP("go-path", "g", "", "The directory to output go bundles to. Each language stack gets its own directory")
	pflag.BoolP("compress", "m", false, "Whether compiled artifacts are saved as .ftr or .ftr.gz (gzip compressed)")
	pflag.BoolP("ignore-timestamps", "i", false, "Always compile from translation text files [ignore compiled artifacts even if they are newer]")
	pflag.BoolP("strict-keys", "k", false, "Entries that flatten to the same key are an error")
	pflag.BoolP("allow-json-comma", "j", false, "If JSON files can have trailing commas")

	//Output flags
	flagShowTable := pflag.BoolP("table", "t", true, "Output an ascii table of the processed languages and their flags")
	flagVerbose := pflag.BoolP("verbose", "v", false, "Output a list of processed languages and their flags, and log processing details")
	flagShowWarnings := pflag.BoolP("warnings", "x", true, "Output a list of go bundle warnings")
	for _, flagName := range []string{"table", "warnings"} {
		pflag.Lookup(flagName).NoOptDefVal = "false"
	}

	//Set up help prompt
	stdErr := func(str string) bool {
		_, _ = fmt.Fprintln(os.Stderr, str)
		return false
	}
	pflag.CommandLine.SortFlags = false
	pflag.Usage = func() {
		//Add title above a flag
		flagsSection := pflag.CommandLine.FlagUsages()
		titleFlagSection := func(shortLetter byte, titleLine string, args ...interface{}) {
			flagsSection = regexp.MustCompile(`(?m)^\s*-`+string(shortLetter)).ReplaceAllStringFunc(flagsSection, func(str string) string {
				return fmt.Sprintf("\n"+titleLine+"\n%s", append(args, str)...)
			})
		}

		//Add the titles
		titleFlagSection('f', "The following are for overriding settings from %s (and %s* environment variables). If not given, the values from the settings file will be used:", execute.SettingsFileName, execute.EnvPrefix)
		titleFlagSection('t', "Command line display modifiers:")

		stdErr(fmt.Sprintf(
			"%s [flags] [preferred language...]:\n\n%s\n%s\n\n%s",
			regexp.MustCompile(`^.*[/\\]`).ReplaceAllString(os.Args[0], ""),
			"   Without arguments, every language with a translation text file in the language path is compiled",
			"   With arguments, only those preferred languages are compiled (with the fallback language under them)",
			flagsSection,
		))
	}
	pflag.ErrHelp = errors.New("")

	//Run flags parsing
	pflag.Parse()

	//If help is requested
	if *flagShowHelp {
		pflag.Usage()
		return false
	}

	//If settings file creation is requested
	if *flagCreateSettingsFile {
		settings, err := execute.LoadSettings("", pflag.CommandLine)
		if err != nil {
			return stdErr(err.Error())
		}
		if b, err := yaml.Marshal(settings); err != nil {
			return stdErr(fmt.Sprintf("Error compiling settings to %s: %s", execute.SettingsFileName, err.Error()))
		} else if err := os.WriteFile(execute.SettingsFileName, b, 0644); err != nil {
			return stdErr(fmt.Sprintf("Error writing %s: %s", execute.SettingsFileName, err.Error()))
		}
		fmt.Println("Settings file created")
		return true
	}

	//Read the settings
	settings, err := execute.LoadSettings(execute.SettingsFileName, pflag.CommandLine)
	if err != nil {
		return stdErr(err.Error())
	}
	if pflag.NArg() > 0 {
		settings.Languages = pflag.Args()
	}

	//Create the logger
	if *flagVerbose {
		if logger, err := zap.NewDevelopment(); err != nil {
			return stdErr(fmt.Sprintf("Could not create logger: %s", err.Error()))
		} else {
			settings.Logger = logger
			defer func() { _ = logger.Sync() }()
		}
	}

	//Run the requested mode
	if !*flagWatchFiles {
		dirData, err := settings.Directory()
		outputDirData(dirData, err, *flagShowTable, *flagVerbose, *flagShowWarnings)
		return err == nil
	}

	for msg := range watch.Execute(settings) {
		switch msg.Type {
		case watch.WR_Message:
			fmt.Println(msg.Message)
		case watch.WR_ProcessedFile:
			if msg.Err != nil {
				fmt.Printf("Processing file “%s”: %s\n", msg.Message, msg.Err.Error())
			} else {
				fmt.Printf("Processing file “%s”: %s\n", msg.Message, "Success")
			}
		case watch.WR_ProcessedDirectory:
			fmt.Println("Finished processing language directory")
			outputDirData(msg.Files, msg.Err, *flagShowTable, *flagVerbose, *flagShowWarnings)
		case watch.WR_ErroredOut:
			fmt.Printf("Fatal error, exiting: %s\n", msg.Err)
			return false
		case watch.WR_CloseRequested:
			fmt.Println("Exiting watch")
			return true
		}
	}
	return true
}

func outputDirData(ret execute.ProcessedFileList, err error, showTable, showProcessedFlags, showWarnings bool) {
	//Output errors
	if err != nil {
		fmt.Println("Errors: " + err.Error())
		fmt.Println(strings.Repeat("-", 80))
	} else {
		fmt.Println("Success")
	}

	//Print the flag table
	if len(ret) != 0 && showTable {
		fmt.Println(strings.Join(ret.CreateFlagTable(), "\n"))
	}

	//Print the processed flags
	if len(ret) != 0 && showProcessedFlags {
		for _, pf := range ret {
			fmt.Printf("%s (%s): %s\n", pf.LangIdentifier, pf.ArtifactPath, pf.Flags.String())
		}
	}

	//Print warnings
	if showWarnings {
		isFirstWarning := true
		for _, pf := range ret {
			if len(pf.Warnings) == 0 {
				continue
			}
			if isFirstWarning {
				fmt.Println(strings.Repeat("-", 80))
				fmt.Println("Warnings:")
				isFirstWarning = false
			}

			fmt.Printf("Lang “%s”: %s\n", pf.LangIdentifier, strings.Join(pf.Warnings, "\n"))
		}
	}
}
