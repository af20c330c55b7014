//Convert from YAML files

package translate

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v2"
)

// Decoding into a MapSlice keeps keys in file order, which the first-wins collision rule depends on.
// Nested mappings are decoded into the same named type.
type yamlMapSlice yaml.MapSlice
type yamlItem yaml.MapItem

// Sequences are exposed as mappings keyed by their index
type yamlSequence []interface{}

func (ms *yamlMapSlice) toOrdered() []tpItem {
	ret := make([]tpItem, len(*ms))
	for i, v := range *ms {
		ret[i] = yamlItem(v)
	}

	return ret
}

func (ms *yamlMapSlice) getLength() uint {
	return ulen(*ms)
}

func (s yamlSequence) toOrdered() []tpItem {
	ret := make([]tpItem, len(s))
	for i, v := range s {
		ret[i] = yamlItem{Key: i, Value: v}
	}

	return ret
}

func (s yamlSequence) getLength() uint {
	return ulen(s)
}

func (i yamlItem) getName() string {
	return twoToOne(yamlValToStr(i.Key))
}

func (i yamlItem) getObject() (val tpMap, ok bool) {
	switch v := i.Value.(type) {
	case yamlMapSlice:
		return &v, true
	case []interface{}:
		return yamlSequence(v), true
	default:
		return nil, false
	}
}

func (i yamlItem) getString() (val string, ok bool) {
	val, ok = yamlValToStr(i.Value)
	return
}

func yamlValToStr(i interface{}) (val string, ok bool) {
	switch v := i.(type) {
	case string:
		//Note: YAML.v2 returns timestamps as strings
		return v, true
	case int:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', 15, 64), true
	case bool:
		//Unquoted Yes/No/On/Off are read as booleans
		if v {
			return "Yes", true
		}
		return "No", true
	case nil:
		return "", true
	default:
		return returnBlankStrOnErr, false
	}
}

func fromYamlFile(textStr []byte) (tpMap, error) {
	//Check for valid utf8
	if !utf8.Valid(textStr) {
		return nil, fmt.Errorf("%w: File is not utf8 valid", ErrParse)
	}

	ms := yamlMapSlice{}
	if err := yaml.Unmarshal(textStr, &ms); err != nil {
		return nil, fmt.Errorf("%w: Error parsing YAML file: %w", ErrParse, err)
	}

	return &ms, nil
}
