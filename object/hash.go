package object

import (
	"bytes"
	"strings"
)

// HashKey identifies a hash entry. It is derived from the variant and payload
// of a value only, so equal values always land on the same entry.
type HashKey struct {
	Type ObjectType
	Int  int64
	Str  string
}

type Hashable interface {
	Object
	HashKey() HashKey
}

func (i *Integer) HashKey() HashKey {
	return HashKey{Type: i.Type(), Int: i.Value}
}

func (s *String) HashKey() HashKey {
	return HashKey{Type: s.Type(), Str: s.Value}
}

type HashPair struct {
	Key   Object
	Value Object
}

// Hash keeps its entries in first insertion order.
type Hash struct {
	pairs map[HashKey]HashPair
	order []HashKey
}

func NewHash() *Hash {
	return &Hash{pairs: make(map[HashKey]HashPair)}
}

// Set stores value under key, overwriting an existing entry in place.
func (h *Hash) Set(key Hashable, value Object) {
	hk := key.HashKey()
	if _, ok := h.pairs[hk]; !ok {
		h.order = append(h.order, hk)
	}
	h.pairs[hk] = HashPair{Key: key, Value: value}
}

func (h *Hash) Get(key Hashable) (Object, bool) {
	pair, ok := h.pairs[key.HashKey()]
	if !ok {
		return nil, false
	}
	return pair.Value, true
}

func (h *Hash) Len() int { return len(h.order) }

// Pairs returns the entries in insertion order.
func (h *Hash) Pairs() []HashPair {
	out := make([]HashPair, 0, len(h.order))
	for _, hk := range h.order {
		out = append(out, h.pairs[hk])
	}
	return out
}

func (h *Hash) Type() ObjectType { return HASH_OBJ }
func (h *Hash) Inspect() string {
	var out bytes.Buffer
	pairs := []string{}
	for _, pair := range h.Pairs() {
		pairs = append(pairs, inspectNested(pair.Key)+": "+inspectNested(pair.Value))
	}
	out.WriteString("{")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString("}")
	return out.String()
}
