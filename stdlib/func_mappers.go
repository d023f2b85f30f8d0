package stdlib

import (
	"quill/object"
)

// maps a function type fn func(string, string) bool
// to a builtin function
func funcSSB(name string, fn func(string, string) bool) object.BuiltinFunction {
	return func(args ...object.Object) object.Object {
		if len(args) != 2 {
			return wrongArgCount(2, len(args))
		}

		firstArg, ok := args[0].(*object.String)
		if !ok {
			return newError("first argument to `%s` must be STRING, got %s", name, args[0].Type())
		}
		secondArg, ok := args[1].(*object.String)
		if !ok {
			return newError("second argument to `%s` must be STRING, got %s", name, args[1].Type())
		}

		return object.NativeBool(fn(firstArg.Value, secondArg.Value))
	}
}

// maps a function type fn func(string) string
// to a builtin function
func funcSS(name string, fn func(string) string) object.BuiltinFunction {
	return func(args ...object.Object) object.Object {
		if len(args) != 1 {
			return wrongArgCount(1, len(args))
		}

		firstArg, ok := args[0].(*object.String)
		if !ok {
			return newError("argument to `%s` must be STRING, got %s", name, args[0].Type())
		}

		return &object.String{
			Value: fn(firstArg.Value),
		}
	}
}

// maps a function type fn func(int64) int64
// to a builtin function
func funcII(name string, fn func(int64) int64) object.BuiltinFunction {
	return func(args ...object.Object) object.Object {
		if len(args) != 1 {
			return wrongArgCount(1, len(args))
		}

		firstArg, ok := args[0].(*object.Integer)
		if !ok {
			return newError("argument to `%s` must be INTEGER, got %s", name, args[0].Type())
		}

		return &object.Integer{
			Value: fn(firstArg.Value),
		}
	}
}

// maps a reducing function type fn func(int64, int64) int64 over one or
// more integer arguments to a builtin function
func funcReduceI(name string, fn func(int64, int64) int64) object.BuiltinFunction {
	return func(args ...object.Object) object.Object {
		if len(args) == 0 {
			return newError("`%s` expects at least one argument", name)
		}

		var acc int64
		for idx, arg := range args {
			num, ok := arg.(*object.Integer)
			if !ok {
				return newError("arguments to `%s` must be INTEGER, got %s", name, arg.Type())
			}
			if idx == 0 {
				acc = num.Value
				continue
			}
			acc = fn(acc, num.Value)
		}

		return &object.Integer{Value: acc}
	}
}
