package typing

import "strings"

// Sequence is a growable ordered container of Elem (DST Vec<Elem>).
type Sequence struct {
	Elem DataType
}

func (s Sequence) equals(other DataType) bool {
	os, ok := other.(Sequence)
	return ok && Equals(s.Elem, os.Elem)
}

func (s Sequence) Repr() string {
	return "Sequence[" + s.Elem.Repr() + "]"
}

// Mapping is a hashed key->value store (DST HashMap<Key, Value>).
type Mapping struct {
	Key   DataType
	Value DataType
}

func (m Mapping) equals(other DataType) bool {
	om, ok := other.(Mapping)
	return ok && Equals(m.Key, om.Key) && Equals(m.Value, om.Value)
}

func (m Mapping) Repr() string {
	return "Mapping[" + m.Key.Repr() + ", " + m.Value.Repr() + "]"
}

// UnorderedSet is a hashed set of Elem (DST HashSet<Elem>).
type UnorderedSet struct {
	Elem DataType
}

func (s UnorderedSet) equals(other DataType) bool {
	os, ok := other.(UnorderedSet)
	return ok && Equals(s.Elem, os.Elem)
}

func (s UnorderedSet) Repr() string {
	return "Set[" + s.Elem.Repr() + "]"
}

// Tuple is a fixed-arity heterogeneous sequence.
type Tuple struct {
	Elems []DataType
}

func (t Tuple) equals(other DataType) bool {
	ot, ok := other.(Tuple)
	if !ok || len(t.Elems) != len(ot.Elems) {
		return false
	}
	for i := range t.Elems {
		if !Equals(t.Elems[i], ot.Elems[i]) {
			return false
		}
	}
	return true
}

func (t Tuple) Repr() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.Repr()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Optional represents presence-or-absence of Inner (DST Option<Inner>).
type Optional struct {
	Inner DataType
}

func (o Optional) equals(other DataType) bool {
	oo, ok := other.(Optional)
	return ok && Equals(o.Inner, oo.Inner)
}

func (o Optional) Repr() string {
	return "Optional[" + o.Inner.Repr() + "]"
}

// Fallible represents success Ok or failure Err (DST Result<Ok, Err>).
type Fallible struct {
	Ok  DataType
	Err DataType
}

func (f Fallible) equals(other DataType) bool {
	of, ok := other.(Fallible)
	return ok && Equals(f.Ok, of.Ok) && Equals(f.Err, of.Err)
}

func (f Fallible) Repr() string {
	return "Fallible[" + f.Ok.Repr() + ", " + f.Err.Repr() + "]"
}
