//Write out translations to compiled (.ftr) files

package translate

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

func writeCompiled(_w io.Writer, table FlatTable, bundleName, separator string, languages []string) error {
	//Check the settings strings
	for _, l := range languages {
		if strings.Contains(l, languageSeparator) {
			return fmt.Errorf("Language “%s” cannot contain a null character", l)
		}
	}
	languagesString := strings.Join(languages, languageSeparator)
	if len(bundleName) > math.MaxUint16 || len(separator) > math.MaxUint16 || len(languagesString) > math.MaxUint16 {
		return errors.New("Bundle name, separator, and languages cannot be larger than 64KB")
	}

	//Entries are written in key order so the same table always produces the same file
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	//Get the entry sizes
	var keysSize, valuesSize uint64
	sizes := make([]storeEntrySize, len(keys))
	for i, k := range keys {
		v := table[k]
		if len(k) > math.MaxUint16 {
			return fmt.Errorf("Key “%s” must be smaller than 64KB", k[0:32])
		} else if uint64(len(v)) > math.MaxUint32 {
			return fmt.Errorf("Value of “%s” must be smaller than 4GB", k)
		}
		sizes[i] = storeEntrySize{uint16(len(k)), uint32(len(v))}
		keysSize += uint64(len(k))
		valuesSize += uint64(len(v))
	}
	if err := checkFor32BitOverflow(uint64(len(keys)), keysSize, valuesSize); err != nil {
		return err
	}

	//Prepare the header
	header := storeHeader{
		[3]byte([]byte(compiledFileType)),
		compiledFileVersion,
		uint32(len(keys)),
		uint16(len(bundleName)),
		uint16(len(languagesString)),
		uint16(len(separator)),
		uint32(keysSize),
		uint32(valuesSize),
		[sha1.Size]byte{},
	}
	if err := header.checkSoftCaps(); err != nil {
		return err
	}

	//Build the body so its hash can go in the header
	var body bytes.Buffer
	body.Grow(int(header.getBodySize()))
	body.WriteString(bundleName)
	body.WriteString(separator)
	body.WriteString(languagesString)
	if err := binary.Write(&body, byteOrder, sizes); err != nil {
		return err
	}
	for _, k := range keys {
		body.WriteString(k)
	}
	for _, k := range keys {
		body.WriteString(table[k])
	}
	header.Hash = sha1.Sum(body.Bytes())

	//Write out the parts of the file
	w := &countedWriter{0, _w}
	if err := binary.Write(w, byteOrder, &header); err != nil {
		return fmt.Errorf("Could not write header: %w", err)
	} else if err := writeBytesToFile(w, body.Bytes()); err != nil {
		return err
	}

	//Make sure the file size matches
	if newFileSize := size_storeHeader + header.getBodySize(); uint64(w.bytesWritten) != newFileSize {
		return fmt.Errorf("Output file size (%d) did not match what it should (%d)", w.bytesWritten, newFileSize)
	}

	//Return success
	return nil
}

func writeBytesToFile(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("Could not write %d bytes: %w", len(b), err)
	}

	return nil
}

func checkFor32BitOverflow(values ...uint64) error {
	for _, v := range values {
		if v > math.MaxUint32 {
			return errors.New("Uint32 overflow occurred")
		}
	}
	return nil
}

// ---------------Specialized io.Writer struct for counting bytes written---------------
type countedWriter struct {
	bytesWritten uint
	w            io.Writer
}

func (w *countedWriter) Write(b []byte) (int, error) {
	num, err := w.w.Write(b)
	w.bytesWritten += uint(num)
	return num, err
}
