package object

// Equal reports value equality. Scalars compare by payload, arrays and
// hashes structurally, functions and builtins by identity. Values of
// different variants are never equal.
func Equal(a, b Object) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type() != b.Type() {
		return false
	}

	switch a := a.(type) {
	case *Integer:
		return a.Value == b.(*Integer).Value
	case *String:
		return a.Value == b.(*String).Value
	case *Boolean:
		return a.value == b.(*Boolean).value
	case *Null:
		return true
	case *Array:
		other := b.(*Array)
		if len(a.Elements) != len(other.Elements) {
			return false
		}
		for idx, el := range a.Elements {
			if !Equal(el, other.Elements[idx]) {
				return false
			}
		}
		return true
	case *Hash:
		other := b.(*Hash)
		if a.Len() != other.Len() {
			return false
		}
		for hk, pair := range a.pairs {
			otherPair, ok := other.pairs[hk]
			if !ok || !Equal(pair.Value, otherPair.Value) {
				return false
			}
		}
		return true
	case *Function:
		return a == b.(*Function)
	case *Builtin:
		return a == b.(*Builtin)
	default:
		return false
	}
}
