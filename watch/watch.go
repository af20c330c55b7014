//The interface to watch for changes

// Package watch contains the watch.Execute function called by the main command line interface
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/dakusan/go18/execute"
	"github.com/dakusan/go18/translate"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ReturnData is the data that is returned through a channel from watch.Execute when it processes files
type ReturnData struct {
	Type    ReturnType
	Files   execute.ProcessedFileList //Only on ReturnType=WR_ProcessedDirectory or WR_ProcessedFile
	Err     error                     //Only on ReturnType=WR_ProcessedDirectory or WR_ProcessedFile or WR_ErroredOut
	Message string                    //Only on ReturnType=WR_Message or WR_ProcessedFile
}

type ReturnType int

//goland:noinspection GoSnakeCaseUsage
const (
	WR_Message            ReturnType = iota //An informative message is being sent
	WR_ProcessedDirectory                   //Directory() was called due to initialization or a fallback language update
	WR_ProcessedFile                        //A single preferred language was recompiled. Message contains the filename. Error is filled on error.
	WR_ErroredOut                           //The watch could not be started or has closed
	WR_CloseRequested                       //Process close was requested
)

// Events on the same file within this duration are merged
const timeoutWatch = time.Millisecond * 100

// Execute compiles every language in the LanguagePath directory.
//
// It continually watches the directory for relevant changes in its own goroutine, and only recompiles the necessary artifacts when a change is detected.
// Tables already loaded by other processes are not reloaded. They see the change on their next Init().
func Execute(settings *execute.ProcessSettings) <-chan ReturnData {
	return ExecuteContext(context.Background(), settings)
}

// ExecuteContext is Execute that also stops (with WR_CloseRequested) when the context is done
func ExecuteContext(ctx context.Context, settings *execute.ProcessSettings) <-chan ReturnData {
	ret := make(chan ReturnData, 10)
	go execWatchReal(ctx, settings, ret)
	return ret
}

func execWatchReal(ctx context.Context, settings *execute.ProcessSettings, ret chan<- ReturnData) {
	defer close(ret)
	log := cond(settings.Logger != nil, settings.Logger, zap.NewNop()).With(zap.String("path", settings.LanguagePath))

	//Send a message ReturnData
	sendMessage := func(message string) {
		ret <- ReturnData{WR_Message, nil, nil, message}
	}

	//Create the watcher
	var watcher *fsnotify.Watcher
	if _watcher, err := fsnotify.NewWatcher(); err != nil {
		ret <- ReturnData{WR_ErroredOut, nil, err, ""}
		return
	} else {
		watcher = _watcher
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(settings.LanguagePath); err != nil {
		ret <- ReturnData{WR_ErroredOut, nil, err, ""}
		return
	}

	//Execute the primary Directory() function first before we start watching
	{
		langs, err := settings.Directory()
		ret <- ReturnData{WR_ProcessedDirectory, langs, err, ""}
	}

	//Keeps a list of file changes that have happened within the last $timeoutWatch
	//These are cancelled if another event on the same file occurs within the timeout
	recentWatches := make(map[string]*bool) //If the bool pointer is set to true then the event is cancelled
	var recentWatchesMutex sync.Mutex

	//Changes are processed one at a time
	var processMutex sync.Mutex
	var pending sync.WaitGroup
	defer pending.Wait()

	//Handle os shutdown signal
	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdownSignal)

	//Execute the watcher
	checkFiletype := regexp.MustCompile(`^` + regexp.QuoteMeta(settings.BaseFile) + `_(.+)\.(` + strings.Join(translate.DefaultSourceExtensions, "|") + `)$`)
	sendMessage("Initiating watch")
	log.Info("Watching for changes")
	for {
		select {
		//Return error message
		case err, ok := <-watcher.Errors:
			if !ok {
				ret <- ReturnData{WR_ErroredOut, nil, errors.New("Watcher was closed out"), ""}
				return
			}
			sendMessage("Watcher sent an error: " + err.Error())
		//Process an event
		case event, ok := <-watcher.Events:
			//Check for valid event
			if !ok {
				ret <- ReturnData{WR_ErroredOut, nil, errors.New("Watcher was closed out"), ""}
				return
			}
			fName := filepath.Base(event.Name)
			var langIdent string
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) { //Ignore Rename and Delete since file no longer exists
				continue
			} else if m := checkFiletype.FindStringSubmatch(fName); m == nil {
				continue
			} else if langIdent = m[1]; len(settings.Languages) != 0 && langIdent != settings.FallbackLanguage && !slices.Contains(settings.Languages, langIdent) {
				continue
			}

			//Wait for $timeoutWatch before executing. If another event on the file comes in, erase the previous event
			recentWatchesMutex.Lock()
			if b, exists := recentWatches[fName]; exists {
				*b = true
			}
			isCancelled := new(bool)
			recentWatches[fName] = isCancelled
			recentWatchesMutex.Unlock()

			pending.Add(1)
			go func(op fsnotify.Op) {
				defer pending.Done()
				time.Sleep(timeoutWatch)

				//See if the event was cancelled and exit if so
				recentWatchesMutex.Lock()
				if *isCancelled {
					recentWatchesMutex.Unlock()
					return
				}

				//Remove self from the recent watches list
				delete(recentWatches, fName)
				recentWatchesMutex.Unlock()

				//Send message about change and process the file
				processMutex.Lock()
				defer processMutex.Unlock()
				sendMessage(fmt.Sprintf("%s: Change (%s) occurred on “%s”", time.Now().Format("2006-01-02 15:04:05"), op.String(), fName))
				log.Debug("Change detected", zap.String("file", fName), zap.Stringer("op", op))
				processFile(langIdent, fName, settings, ret)
			}(event.Op)
		case <-shutdownSignal:
			ret <- ReturnData{WR_CloseRequested, nil, nil, ""}
			return
		case <-ctx.Done():
			ret <- ReturnData{WR_CloseRequested, nil, nil, ""}
			return
		}
	}
}

func processFile(langIdent, fName string, settings *execute.ProcessSettings, ret chan<- ReturnData) {
	//If this is the fallback language then every language stack depends on it
	if langIdent == settings.FallbackLanguage {
		langs, err := settings.Directory()
		ret <- ReturnData{WR_ProcessedDirectory, langs, err, ""}
		return
	}

	//Process the language stack of the file
	langs, err := settings.File(langIdent)
	ret <- ReturnData{WR_ProcessedFile, langs, err, fName}
}

// Conditional
func cond[T any](isTrue bool, ifTrue, ifFalse T) T {
	if isTrue {
		return ifTrue
	}
	return ifFalse
}
