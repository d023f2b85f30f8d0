package stdlib

import (
	"fmt"
	"io"
	"sort"

	"quill/object"
)

func newError(format string, a ...interface{}) *object.Error {
	return &object.Error{Message: fmt.Sprintf(format, a...)}
}

func wrongArgCount(want, got int) *object.Error {
	return newError("wrong number of arguments: expected %d, got %d", want, got)
}

// New returns a fresh builtin table. puts writes to out, every other entry
// is a pure function of its arguments.
func New(out io.Writer) object.Builtins {
	builtins := object.Builtins{}
	for _, section := range []map[string]object.BuiltinFunction{
		arrayFunctions,
		hashmapFunctions,
		stringFunctions,
		mathFunctions,
		typeFunctions,
		fmtFunctions(out),
	} {
		for name, fn := range section {
			builtins[name] = &object.Builtin{Name: name, Fn: fn}
		}
	}
	return builtins
}

// Names lists every builtin New registers, used by the REPL for completion.
func Names() []string {
	names := []string{}
	for name := range New(io.Discard) {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
