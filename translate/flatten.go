//Flatten nested translation trees into single level tables

package translate

import (
	"fmt"
	"sort"
	"strings"
)

// FlatTable maps composite keys (nested names joined by a separator) to their translation strings
type FlatTable map[string]string

// DefaultSeparator joins the names of nested levels into a single key
const DefaultSeparator = "_"

// -------------------Interface to access text processing maps-------------------
type tpMap interface {
	toOrdered() []tpItem
	getLength() uint
}
type tpItem interface {
	getName() string
	getObject() (val tpMap, ok bool)
	getString() (val string, ok bool)
}

// flatten walks the tree depth first and joins the names on the path to every leaf with separator.
//
// If 2 leaves produce the same key, the first one encountered is kept. When strict is set, ErrKeyCollision is returned instead.
func flatten(tree tpMap, separator string, strict bool) (FlatTable, error) {
	ret := make(FlatTable, tree.getLength())
	path := make([]string, 0, 8)

	var walk func(level tpMap) error
	walk = func(level tpMap) error {
		for _, item := range level.toOrdered() {
			path = append(path, item.getName())

			if obj, ok := item.getObject(); ok {
				if err := walk(obj); err != nil {
					return err
				}
			} else if str, ok := item.getString(); !ok {
				return fmt.Errorf("%w: Value at “%s” is not a string or a dictionary", ErrParse, strings.Join(path, separator))
			} else if key := strings.Join(path, separator); !hasKey(ret, key) {
				ret[key] = str
			} else if strict {
				return fmt.Errorf("%w: “%s”", ErrKeyCollision, key)
			}

			path = path[:len(path)-1]
		}
		return nil
	}

	if err := walk(tree); err != nil {
		return nil, err
	}
	return ret, nil
}

func hasKey(t FlatTable, key string) bool {
	_, ok := t[key]
	return ok
}

// FlattenMap flattens an already decoded tree. Nested levels must be map[string]any, and everything else is a leaf.
//
// Go maps have no order, so sibling keys are visited in sorted order to keep the first-wins rule deterministic.
func FlattenMap(tree map[string]any, separator string) FlatTable {
	//A decoded map only holds stringable values, so this cannot fail
	return twoToOne(flatten(anyMap(tree), separator, false))
}

// ---------------------Adapter for already decoded go maps----------------------
type anyMap map[string]any
type anyItem struct {
	name  string
	value any
}

func (m anyMap) toOrdered() []tpItem {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ret := make([]tpItem, len(keys))
	for i, k := range keys {
		ret[i] = anyItem{k, m[k]}
	}
	return ret
}

func (m anyMap) getLength() uint {
	return uint(len(m))
}

func (i anyItem) getName() string {
	return i.name
}

func (i anyItem) getObject() (val tpMap, ok bool) {
	if m, ok := i.value.(map[string]any); ok {
		return anyMap(m), true
	}
	return nil, false
}

func (i anyItem) getString() (val string, ok bool) {
	switch v := i.value.(type) {
	case string:
		return v, true
	case nil:
		return "", true
	default:
		return fmt.Sprint(v), true
	}
}
