//Read translations from compiled (.ftr) files

package translate

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Main storage structures. Fields are exported only so encoding/binary can fill them.
type storeHeader struct {
	FileType       [3]byte //FTR
	Version        uint8
	NumEntries     uint32
	BundleNameSize uint16
	LanguagesSize  uint16
	SeparatorSize  uint16
	KeysSize       uint32
	ValuesSize     uint32
	Hash           [sha1.Size]byte //Hash of everything after the header
}
type storeEntrySize struct {
	KeyLength   uint16
	ValueLength uint32
}

// compiledArtifact is the decoded content of a compiled file
type compiledArtifact struct {
	bundleName string
	separator  string
	languages  []string
	table      FlatTable
}

//goland:noinspection GoSnakeCaseUsage
const (
	compiledFileType    = "FTR"
	compiledFileVersion = 2
	languageSeparator   = "\x00" //Joins the language stack inside the file

	//Struct sizes
	size_storeHeader    = 42
	size_storeEntrySize = 6

	//Soft limits
	softLimit_numEntries     = 1_000_000
	softLimit_keysSize       = 1024 * 1024 * 32
	softLimit_valuesSize     = 1024 * 1024 * 1024
	softLimit_bundleNameSize = 255
	softLimit_languagesSize  = 1024
	softLimit_separatorSize  = 255
)

var byteOrder = binary.LittleEndian

// Get the size of everything after the header
func (header storeHeader) getBodySize() uint64 {
	return uint64(header.BundleNameSize) + uint64(header.LanguagesSize) + uint64(header.SeparatorSize) +
		uint64(header.NumEntries)*size_storeEntrySize +
		uint64(header.KeysSize) + uint64(header.ValuesSize)
}

// Check soft size caps
func (header storeHeader) checkSoftCaps() error {
	for _, v := range []struct {
		size    uint32
		maxSize uint32
		varName string
	}{
		{header.NumEntries, softLimit_numEntries, "Num Entries"},
		{header.KeysSize, softLimit_keysSize, "Keys Size"},
		{header.ValuesSize, softLimit_valuesSize, "Values Size"},
		{uint32(header.BundleNameSize), softLimit_bundleNameSize, "Bundle Name Size"},
		{uint32(header.LanguagesSize), softLimit_languagesSize, "Languages Size"},
		{uint32(header.SeparatorSize), softLimit_separatorSize, "Separator Size"},
	} {
		if v.size > v.maxSize {
			return errors.New(message.NewPrinter(language.English).Sprintf("%s cannot be larger than %d", v.varName, v.maxSize))
		}
	}

	return nil
}

func readCompiled(r io.Reader) (*compiledArtifact, error) {
	//Handle returning errors
	retErrStr := func(err string, location uint64) error {
		return fmt.Errorf("%w: @%d %s", ErrInvalidArtifact, location, err)
	}
	readErr := func(err error) string {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return "File ended early"
		}
		return err.Error()
	}

	//Confirm the header and its data
	var header storeHeader
	if err := binary.Read(r, byteOrder, &header); err != nil {
		return nil, retErrStr(readErr(err), 0)
	} else if string(header.FileType[:]) != compiledFileType {
		return nil, retErrStr("Invalid file header", 0)
	} else if header.Version != compiledFileVersion {
		return nil, retErrStr(fmt.Sprintf("Unsupported file version (%d!=%d)", header.Version, compiledFileVersion), 3)
	} else if err := header.checkSoftCaps(); err != nil {
		return nil, retErrStr(err.Error(), 4)
	}

	//Read the body and make sure we are at the end of the file
	body := make([]byte, header.getBodySize())
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, retErrStr(readErr(err), size_storeHeader)
	}
	if n, _ := io.ReadFull(r, make([]byte, 1)); n != 0 {
		return nil, retErrStr("End of file not reached", size_storeHeader+uint64(len(body)))
	}

	//Confirm the hash
	if sha1.Sum(body) != header.Hash {
		return nil, retErrStr("Hash does not match", size_storeHeader-sha1.Size)
	}

	//Pull out the bundle name, separator, and languages
	pos := uint64(0)
	next := func(size uint64) []byte {
		ret := body[pos : pos+size]
		pos += size
		return ret
	}
	ret := compiledArtifact{
		bundleName: string(next(uint64(header.BundleNameSize))),
		separator:  string(next(uint64(header.SeparatorSize))),
		table:      make(FlatTable, header.NumEntries),
	}
	if langs := next(uint64(header.LanguagesSize)); len(langs) != 0 {
		ret.languages = strings.Split(string(langs), languageSeparator)
	}

	//Read in the entry sizes
	sizes := make([]storeEntrySize, header.NumEntries)
	if err := binary.Read(bytes.NewReader(next(uint64(header.NumEntries)*size_storeEntrySize)), byteOrder, sizes); err != nil {
		return nil, retErrStr(readErr(err), size_storeHeader+pos)
	}

	//Make sure the accumulated sizes match the data lengths
	var keysAccum, valuesAccum uint64
	for _, s := range sizes {
		keysAccum += uint64(s.KeyLength)
		valuesAccum += uint64(s.ValueLength)
	}
	if keysAccum != uint64(header.KeysSize) || valuesAccum != uint64(header.ValuesSize) {
		return nil, retErrStr(fmt.Sprintf(
			"Length of accumulated data (%d, %d) does not match given data lengths (%d, %d)",
			keysAccum, valuesAccum, header.KeysSize, header.ValuesSize,
		), size_storeHeader+pos)
	}

	//Fill in the table
	keysData := string(next(uint64(header.KeysSize)))
	valuesData := string(next(uint64(header.ValuesSize)))
	var keyPos, valuePos uint64
	for _, s := range sizes {
		key := keysData[keyPos : keyPos+uint64(s.KeyLength)]
		if _, ok := ret.table[key]; ok {
			return nil, retErrStr(fmt.Sprintf("Key “%s” found more than once", key), size_storeHeader)
		}
		ret.table[key] = valuesData[valuePos : valuePos+uint64(s.ValueLength)]
		keyPos += uint64(s.KeyLength)
		valuePos += uint64(s.ValueLength)
	}

	return &ret, nil
}
