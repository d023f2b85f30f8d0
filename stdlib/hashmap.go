package stdlib

import (
	"quill/object"
)

var hashmapFunctions = map[string]object.BuiltinFunction{
	"keys":   keys,
	"values": values,
}

func hashArg(name string, args []object.Object) (*object.Hash, *object.Error) {
	if len(args) != 1 {
		return nil, wrongArgCount(1, len(args))
	}
	hash, ok := args[0].(*object.Hash)
	if !ok {
		return nil, newError("argument to `%s` must be HASH, got %s", name, args[0].Type())
	}
	return hash, nil
}

// keys lists the keys of a hash in insertion order.
func keys(args ...object.Object) object.Object {
	hash, err := hashArg("keys", args)
	if err != nil {
		return err
	}

	result := make([]object.Object, 0, hash.Len())
	for _, pair := range hash.Pairs() {
		result = append(result, pair.Key)
	}
	return &object.Array{Elements: result}
}

func values(args ...object.Object) object.Object {
	hash, err := hashArg("values", args)
	if err != nil {
		return err
	}

	result := make([]object.Object, 0, hash.Len())
	for _, pair := range hash.Pairs() {
		result = append(result, pair.Value)
	}
	return &object.Array{Elements: result}
}
