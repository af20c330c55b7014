//Constants used in automations

package execute

import (
	"strings"

	"github.com/dakusan/go18/translate"
)

//goland:noinspection GoSnakeCaseUsage
const (
	SettingsFileName = "settings-" + translate.ToolPrefix + ".yaml"
)

//goland:noinspection GoSnakeCaseUsage,GoCommentStart
const (
	_ ProcessedFileFlag = 1 << iota

	//Language info
	PFF_Language_SuccessfullyLoaded //If the Table was successfully loaded and filled into ProcessedFiles
	PFF_Language_IsFallback         //If this is the fallback language
	PFF_Language_FallbackOnly       //If the preferred language file was missing so only the fallback language was used

	//Loading state (mutually exclusive)
	PFF_Load_NotAttempted //Loading was not attempted because other errors occurred first
	PFF_Load_Cached       //If the Table was loaded from an already compiled artifact
	PFF_Load_Regenerated  //If the Table was compiled from the translation text files and the artifact was rewritten

	//Error information
	PFF_Error_DuringProcessing //If errors occurred during processing

	//File output success flags
	PFF_OutputSuccess_GoBundle //If a changed go bundle file was written (only when ProcessSettings.GoPath is set)
)

// ProcessedFileFlagName : See ProcessedFileFlagNames
type ProcessedFileFlagName struct {
	Flag      ProcessedFileFlag
	Name      string
	ShortName [4]byte //All shortname strings must be 4 bytes
}

// ProcessedFileFlagNames is named information about the ProcessedFileFlags
var ProcessedFileFlagNames = []ProcessedFileFlagName{
	createPFFN(1, "UNUSED", "    "),
	createPFFN(PFF_Language_SuccessfullyLoaded, "Language_SuccessfullyLoaded", "SuLD"),
	createPFFN(PFF_Language_IsFallback, "Language_IsFallback", "Fall"),
	createPFFN(PFF_Language_FallbackOnly, "Language_FallbackOnly", "FaOn"),
	createPFFN(PFF_Load_NotAttempted, "Load_NotAttempted", "LoNA"),
	createPFFN(PFF_Load_Cached, "Load_Cached", "LoCa"),
	createPFFN(PFF_Load_Regenerated, "Load_Regenerated", "LoRe"),
	createPFFN(PFF_Error_DuringProcessing, "Error_DuringProcessing", "Er  "),
	createPFFN(PFF_OutputSuccess_GoBundle, "OutputSuccess_GoBundle", "OuGB"),
}

func createPFFN(Flag ProcessedFileFlag, Name string, shortName string) ProcessedFileFlagName {
	return ProcessedFileFlagName{Flag, Name, [4]byte([]byte(shortName))}
}

// Names returns the long names of the flags that are set
func (f ProcessedFileFlag) Names() []string {
	ret := make([]string, 0, len(ProcessedFileFlagNames))
	for _, n := range ProcessedFileFlagNames[1:] {
		if f&n.Flag != 0 {
			ret = append(ret, n.Name)
		}
	}
	return ret
}

func (f ProcessedFileFlag) String() string {
	return strings.Join(f.Names(), ", ")
}
