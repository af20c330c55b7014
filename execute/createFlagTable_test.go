package execute

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateFlagTable(t *testing.T) {
	t.Parallel()

	list := ProcessedFileList{
		"se": {LangIdentifier: "se", Flags: PFF_Language_SuccessfullyLoaded | PFF_Load_Cached},
		"en": {LangIdentifier: "en", Flags: PFF_Language_SuccessfullyLoaded | PFF_Language_IsFallback | PFF_Load_Regenerated},
	}
	require.Equal(t, []string{
		"|  |Su|Fa|Lo|Lo|",
		"|  |LD|ll|Ca|Re|",
		"|en|* |* |  |* |",
		"|se|* |  |* |  |",
	}, list.CreateFlagTable())

	list = ProcessedFileList{
		"en-US": {LangIdentifier: "en-US", Flags: PFF_Error_DuringProcessing},
		"x":     {LangIdentifier: "x", Flags: PFF_Load_NotAttempted},
	}
	require.Equal(t, []string{
		"|     |Lo|Er|",
		"|     |NA|  |",
		"|en-US|  |* |",
		"|x    |* |  |",
	}, list.CreateFlagTable())
}

func TestProcessedFileFlagString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", ProcessedFileFlag(0).String())
	require.Equal(t, "Language_SuccessfullyLoaded, Load_Cached", (PFF_Load_Cached | PFF_Language_SuccessfullyLoaded).String())
	require.Equal(t, []string{"Error_DuringProcessing", "OutputSuccess_GoBundle"}, (PFF_OutputSuccess_GoBundle | PFF_Error_DuringProcessing).Names())
}
