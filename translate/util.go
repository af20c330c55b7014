//Utility functions (shortening and conversion functions)

package translate

// Returned as the string when a translation is not found
const returnBlankStrOnErr = ""

//-----------------------Missing go language functionality----------------------

// Turn a return with 2 values into 1 value (ignore the second)
func twoToOne[V1 any, V2 any](v1 V1, _ V2) V1 {
	return v1
}

// Conditional
func cond[T any](isTrue bool, ifTrue, ifFalse T) T {
	if isTrue {
		return ifTrue
	}
	return ifFalse
}

// ------------------------------Pull length as uint-----------------------------
func ulen[S ~[]E, E any](v S) uint {
	return uint(len(v))
}
