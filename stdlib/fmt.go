package stdlib

import (
	"fmt"
	"io"

	"quill/object"
)

func fmtFunctions(out io.Writer) map[string]object.BuiltinFunction {
	return map[string]object.BuiltinFunction{
		"puts": puts(out),
	}
}

// puts prints each argument on its own line and yields null.
func puts(out io.Writer) object.BuiltinFunction {
	return func(args ...object.Object) object.Object {
		for _, arg := range args {
			fmt.Fprintln(out, arg.Inspect())
		}
		return object.NULL
	}
}
