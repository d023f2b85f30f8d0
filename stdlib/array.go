package stdlib

import (
	"unicode/utf8"

	"quill/object"
)

var arrayFunctions = map[string]object.BuiltinFunction{
	"len":   length,
	"first": first,
	"last":  last,
	"rest":  rest,
	"push":  push,
}

// len counts characters of a string, elements of an array and entries of a hash.
func length(args ...object.Object) object.Object {
	if len(args) != 1 {
		return wrongArgCount(1, len(args))
	}

	switch arg := args[0].(type) {
	case *object.String:
		return &object.Integer{Value: int64(utf8.RuneCountInString(arg.Value))}
	case *object.Array:
		return &object.Integer{Value: int64(len(arg.Elements))}
	case *object.Hash:
		return &object.Integer{Value: int64(arg.Len())}
	default:
		return newError("argument to `len` not supported, got %s", args[0].Type())
	}
}

func arrayArg(name string, args []object.Object) (*object.Array, *object.Error) {
	if len(args) != 1 {
		return nil, wrongArgCount(1, len(args))
	}
	array, ok := args[0].(*object.Array)
	if !ok {
		return nil, newError("argument to `%s` must be ARRAY, got %s", name, args[0].Type())
	}
	return array, nil
}

func first(args ...object.Object) object.Object {
	array, err := arrayArg("first", args)
	if err != nil {
		return err
	}
	if len(array.Elements) == 0 {
		return object.NULL
	}
	return array.Elements[0]
}

func last(args ...object.Object) object.Object {
	array, err := arrayArg("last", args)
	if err != nil {
		return err
	}
	if len(array.Elements) == 0 {
		return object.NULL
	}
	return array.Elements[len(array.Elements)-1]
}

// rest returns a new array without the first element.
func rest(args ...object.Object) object.Object {
	array, err := arrayArg("rest", args)
	if err != nil {
		return err
	}
	if len(array.Elements) == 0 {
		return object.NULL
	}

	elements := make([]object.Object, len(array.Elements)-1)
	copy(elements, array.Elements[1:])
	return &object.Array{Elements: elements}
}

// push returns a new array, the argument is left untouched.
func push(args ...object.Object) object.Object {
	if len(args) != 2 {
		return wrongArgCount(2, len(args))
	}
	array, ok := args[0].(*object.Array)
	if !ok {
		return newError("argument to `push` must be ARRAY, got %s", args[0].Type())
	}

	elements := make([]object.Object, len(array.Elements), len(array.Elements)+1)
	copy(elements, array.Elements)
	elements = append(elements, args[1])
	return &object.Array{Elements: elements}
}
