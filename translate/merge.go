//Merge a fallback language table under a preferred language table

package translate

// Merge returns a copy of fallback with every entry of preferred written over it.
//
// Keys only found in one of the tables are kept as is. Neither input is modified.
func Merge(fallback, preferred FlatTable) FlatTable {
	ret := make(FlatTable, max(len(fallback), len(preferred)))
	for k, v := range fallback {
		ret[k] = v
	}
	for k, v := range preferred {
		ret[k] = v
	}

	return ret
}
