//Create a table of the flags of a list of ProcessFiles

package execute

import (
	"bytes"
)

// CreateFlagTable creates an aligned ascii table that shows which flags are set on which ProcessedFiles. The column headers are the ProcessedFileFlagNames.ShortName and the row headers are the ProcessedFile.LangIdentifier.
//
// Format: 2 header rows, then 1 row per language sorted by language. 1 column per used flag. 4 letter flag names are split over the 2 header rows
//
// Symbols: | column separator, * values
func (list ProcessedFileList) CreateFlagTable() []string {
	//Get which ProcessFileFlags were used and the maximum length of the language identifiers
	usedPFFlags := make([]bool, len(ProcessedFileFlagNames))
	maxLangLen := 2 //All columns must be at least 2 bytes
	for _, pf := range list {
		maxLangLen = max(maxLangLen, len(pf.LangIdentifier))
		for flagIndex, flagInfo := range ProcessedFileFlagNames {
			if pf.Flags&flagInfo.Flag != 0 {
				usedPFFlags[flagIndex] = true
			}
		}
	}

	//Get the list of flags to use
	flagsList := make([]int, 0, len(usedPFFlags))
	for flagIndex, wasUsed := range usedPFFlags {
		if wasUsed {
			flagsList = append(flagsList, flagIndex)
		}
	}

	//Pull the used flag values and create a byte array of the row format
	const charColSeparator, charSpacer, charFlagSet = '|', ' ', '*'
	const colWidth, colSepWidth = 2, 1 //All flag column widths are 2 characters
	type flagValue struct {
		flag ProcessedFileFlag
		pos  int
	}
	flagValues := make([]flagValue, len(flagsList))
	rowBytes := bytes.Repeat([]byte{charSpacer}, colSepWidth*2+maxLangLen+len(flagsList)*(colWidth+colSepWidth))
	rowBytes[0] = charColSeparator
	rowBytes[maxLangLen+colSepWidth] = charColSeparator
	for localIndex, lookupIndex := range flagsList {
		fv := &flagValues[localIndex]
		fv.flag = ProcessedFileFlagNames[lookupIndex].Flag
		fv.pos = maxLangLen + colSepWidth + colSepWidth + localIndex*(colWidth+colSepWidth)
		rowBytes[fv.pos+colWidth] = charColSeparator
	}

	//Create the 2 header rows
	outRows := make([]string, 0, len(list)+2)
	for i := 0; i < 2; i++ {
		for localIndex, lookupIndex := range flagsList {
			name := ProcessedFileFlagNames[lookupIndex].ShortName
			pos := flagValues[localIndex].pos
			copy(rowBytes[pos:pos+colWidth], name[i*colWidth:(i+1)*colWidth])
		}
		outRows = append(outRows, string(rowBytes))
	}
	for _, fv := range flagValues {
		rowBytes[fv.pos+1] = charSpacer
	}

	//Output the rows
	langIdentSpacer := bytes.Repeat([]byte{charSpacer}, maxLangLen)
	for _, lang := range getMapKeys(list) {
		pf := list[lang]
		copy(rowBytes[colSepWidth:], langIdentSpacer)
		copy(rowBytes[colSepWidth:], pf.LangIdentifier)
		for _, f := range flagValues {
			rowBytes[f.pos] = cond[byte](pf.Flags&f.flag == 0, charSpacer, charFlagSet)
		}
		outRows = append(outRows, string(rowBytes))
	}

	return outRows
}
