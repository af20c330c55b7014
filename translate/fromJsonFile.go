//Convert from JSON files

package translate

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/valyala/fastjson"
)

type jsonMapSlice struct {
	obj *fastjson.Object
}
type jsonArray []*fastjson.Value
type jsonItem struct {
	name  string
	value *fastjson.Value
}

var regexJSONTrailingComma = regexp.MustCompile(`,\s*?\n\s*([}\]])`)

func (ms jsonMapSlice) toOrdered() []tpItem {
	ret := make([]tpItem, 0, ms.obj.Len())
	ms.obj.Visit(func(key []byte, v *fastjson.Value) {
		//The key is copied since the flattened table outlives the parser
		ret = append(ret, jsonItem{string(key), v})
	})

	return ret
}

func (ms jsonMapSlice) getLength() uint {
	return uint(ms.obj.Len())
}

func (a jsonArray) toOrdered() []tpItem {
	ret := make([]tpItem, len(a))
	for i, v := range a {
		ret[i] = jsonItem{strconv.Itoa(i), v}
	}

	return ret
}

func (a jsonArray) getLength() uint {
	return ulen(a)
}

func (i jsonItem) getName() string {
	return i.name
}

func (i jsonItem) getObject() (val tpMap, ok bool) {
	switch i.value.Type() {
	case fastjson.TypeObject:
		if getObj, err := i.value.Object(); err != nil {
			return nil, false
		} else {
			return jsonMapSlice{getObj}, true
		}
	case fastjson.TypeArray:
		if getArr, err := i.value.Array(); err != nil {
			return nil, false
		} else {
			return jsonArray(getArr), true
		}
	default:
		return nil, false
	}
}

func (i jsonItem) getString() (val string, ok bool) {
	switch i.value.Type() {
	case fastjson.TypeString:
		if getStr, err := i.value.StringBytes(); err != nil {
			return returnBlankStrOnErr, false
		} else {
			return string(getStr), true
		}
	case fastjson.TypeNumber, fastjson.TypeTrue, fastjson.TypeFalse:
		return i.value.String(), true
	case fastjson.TypeNull:
		return "", true
	default:
		return returnBlankStrOnErr, false
	}
}

func fromJsonFile(textStr []byte, allowJSONTrailingComma bool) (tpMap, error) {
	//Check for valid utf8
	if !utf8.Valid(textStr) {
		return nil, fmt.Errorf("%w: File is not utf8 valid", ErrParse)
	}

	//Remove trailing commas if requested
	if allowJSONTrailingComma {
		textStr = regexJSONTrailingComma.ReplaceAll(textStr, []byte("$1"))
	}

	var ret *fastjson.Value
	if _ret, err := (&fastjson.Parser{}).ParseBytes(textStr); err != nil {
		return nil, fmt.Errorf("%w: Error parsing JSON file: %w", ErrParse, err)
	} else {
		ret = _ret
	}

	//The top level must be an object
	if obj, err := ret.Object(); err != nil {
		return nil, fmt.Errorf("%w: Error parsing JSON file: %w", ErrParse, err)
	} else {
		return jsonMapSlice{obj}, nil
	}
}
