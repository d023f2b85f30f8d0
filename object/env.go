package object

// Environment is one scope of the lexical chain. The outer link only ever
// points at an enclosing scope, so chains never form cycles.
type Environment struct {
	outer *Environment
	store map[string]Object
}

func NewEnvironment(outer *Environment) *Environment {
	s := make(map[string]Object)
	return &Environment{
		outer: outer,
		store: s,
	}
}

// Get resolves name in this scope, then outward.
func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		obj, ok = e.outer.Get(name)
	}
	return obj, ok
}

// Set binds name in this scope, replacing an existing binding of the same scope.
func (e *Environment) Set(name string, val Object) Object {
	e.store[name] = val
	return val
}

func (e *Environment) Outer() *Environment { return e.outer }
