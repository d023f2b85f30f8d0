package stdlib

import (
	"quill/object"
)

var mathFunctions = map[string]object.BuiltinFunction{
	"abs": funcII("abs", abs),
	"min": funcReduceI("min", func(a, b int64) int64 { return min(a, b) }),
	"max": funcReduceI("max", func(a, b int64) int64 { return max(a, b) }),
}

// abs wraps on the most negative integer, like the arithmetic operators do.
func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
