package stdlib

import (
	"quill/object"
)

var typeFunctions = map[string]object.BuiltinFunction{
	"type": typeOf,
	"str":  str,
}

// typeOf names the variant of its argument, e.g. "INTEGER" or "HASH".
func typeOf(args ...object.Object) object.Object {
	if len(args) != 1 {
		return wrongArgCount(1, len(args))
	}
	return &object.String{Value: string(args[0].Type())}
}

func str(args ...object.Object) object.Object {
	if len(args) != 1 {
		return wrongArgCount(1, len(args))
	}
	if s, ok := args[0].(*object.String); ok {
		return s
	}
	return &object.String{Value: args[0].Inspect()}
}
