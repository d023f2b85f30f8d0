package stdlib

import (
	"strings"

	"quill/object"
)

var stringFunctions = map[string]object.BuiltinFunction{
	"join":     stringJoin,
	"split":    stringSplit,
	"contains": contains,
	"upper":    funcSS("upper", strings.ToUpper),
	"lower":    funcSS("lower", strings.ToLower),
	"trim":     funcSS("trim", strings.TrimSpace),
}

var stringContains = funcSSB("contains", strings.Contains)

// Join concatenates the elements of its first argument to create a single
// string. Non-string elements are rendered the way the REPL prints them.
func stringJoin(args ...object.Object) object.Object {
	if len(args) != 2 {
		return wrongArgCount(2, len(args))
	}

	array, ok := args[0].(*object.Array)
	if !ok {
		return newError("first argument to `join` must be ARRAY, got %s", args[0].Type())
	}
	separator, ok := args[1].(*object.String)
	if !ok {
		return newError("separator needs to be of type STRING, got %s", args[1].Type())
	}

	elements := make([]string, 0, len(array.Elements))
	for _, elem := range array.Elements {
		elements = append(elements, elem.Inspect())
	}

	return &object.String{
		Value: strings.Join(elements, separator.Value),
	}
}

// Split string s into all substrings separated by separator and returns an
// array of the substrings between those separators.
func stringSplit(args ...object.Object) object.Object {
	if len(args) != 2 {
		return wrongArgCount(2, len(args))
	}

	s, ok := args[0].(*object.String)
	if !ok {
		return newError("first argument to `split` must be STRING, got %s", args[0].Type())
	}
	separator, ok := args[1].(*object.String)
	if !ok {
		return newError("separator needs to be of type STRING, got %s", args[1].Type())
	}

	elements := strings.Split(s.Value, separator.Value)
	array := make([]object.Object, 0, len(elements))
	for _, elem := range elements {
		array = append(array, &object.String{Value: elem})
	}

	return &object.Array{Elements: array}
}

// contains reports substring membership for strings, element membership for
// arrays and key membership for hashes.
func contains(args ...object.Object) object.Object {
	if len(args) != 2 {
		return wrongArgCount(2, len(args))
	}

	switch container := args[0].(type) {
	case *object.String:
		return stringContains(args...)
	case *object.Array:
		for _, elem := range container.Elements {
			if object.Equal(elem, args[1]) {
				return object.TRUE
			}
		}
		return object.FALSE
	case *object.Hash:
		key, ok := args[1].(object.Hashable)
		if !ok {
			return newError("unusable as hash key: %s", args[1].Type())
		}
		_, found := container.Get(key)
		return object.NativeBool(found)
	default:
		return newError("argument to `contains` not supported, got %s", args[0].Type())
	}
}
