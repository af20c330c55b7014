//Write go bundle files

package translate

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"go/format"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// GoBundlePath returns where the go bundle of an artifact is written: “$outputDirectory/$baseName_$lang1[_$lang2]/$bundleName.go”
//
// Every language stack gets its own directory so bundles sharing a bundle name do not collide in one package.
func GoBundlePath(outputDirectory, baseName string, languages []string, bundleName string) string {
	return filepath.Join(outputDirectory, baseName+"_"+strings.Join(languages, "_"), bundleName+".go")
}

// SaveGoBundle writes the table as a go package named bundleName, with every key as an exported string constant.
//
// Keys that cannot be turned into go identifiers are skipped and returned as warnings. The file is only written when its content changed.
func SaveGoBundle(path, bundleName string, table FlatTable, languages []string) (warnings []string, updated bool, err error) {
	//Create the file content
	var content []byte
	if content, warnings, err = createGoBundle(bundleName, table, languages); err != nil {
		return
	}

	//If the hash has not changed then nothing left to do
	if existing, err := os.ReadFile(path); err == nil && sha1.Sum(existing) == sha1.Sum(content) {
		return warnings, false, nil
	}

	//Create/confirm the directory
	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return warnings, false, fmt.Errorf("Error creating bundle directory “%s”: %w", filepath.Dir(path), err)
	}

	//Write the file
	if err = os.WriteFile(path, content, 0644); err != nil {
		return warnings, false, fmt.Errorf("Error writing “%s”: %w", path, err)
	}
	return warnings, true, nil
}

func createGoBundle(bundleName string, table FlatTable, languages []string) (_ []byte, warnings []string, _ error) {
	if !token.IsIdentifier(bundleName) {
		return nil, nil, fmt.Errorf("Bundle name “%s” is not a valid go package name", bundleName)
	}

	//Get the constant name for every key
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	constNames := make(map[string]string, len(keys)) //Constant name to key
	constKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		name := exportedName(k)
		if !token.IsIdentifier(name) || !token.IsExported(name) {
			warnings = append(warnings, fmt.Sprintf("Key “%s” is not a valid go identifier", k))
		} else if prevKey, ok := constNames[name]; ok {
			warnings = append(warnings, fmt.Sprintf("Key “%s” has the same constant name as “%s”", k, prevKey))
		} else {
			constNames[name] = k
			constKeys = append(constKeys, k)
		}
	}

	//Add the header
	builder := bytes.Buffer{}
	_, _ = fmt.Fprintf(&builder, "// Code generated by %s for languages %s. DO NOT EDIT.\n\npackage %s\n\n", ToolPrefix, strings.Join(languages, ", "), bundleName)

	//Write the constants
	if len(constKeys) > 0 {
		builder.WriteString("//goland:noinspection NonAsciiCharacters,GoSnakeCaseUsage\nconst (\n")
		for _, k := range constKeys {
			builder.WriteByte('\t')
			builder.WriteString(exportedName(k))
			builder.WriteString(" = ")
			builder.WriteString(strconv.Quote(table[k]))
			builder.WriteByte('\n')
		}
		builder.WriteString(")\n")
	}

	//Format the result
	if ret, err := format.Source(builder.Bytes()); err != nil {
		return nil, warnings, fmt.Errorf("Could not format go bundle: %w", err)
	} else {
		return ret, warnings, nil
	}
}

// Upper case the first character so the constant is exported
func exportedName(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return key
	}
	return string(unicode.ToUpper(r)) + key[size:]
}
