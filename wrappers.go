package packall

import "reflect"

// shapeTag identifies a node in the canonical type-tree traversal used by
// the fingerprint (C6). Tags 0-23 are the fixed alphabet; 24 and above are
// assigned at registration time to user-defined Custom shapes.
type shapeTag byte

const (
	tagBool shapeTag = iota
	tagU8
	tagS8
	tagCh
	tagU16
	tagS16
	tagU32
	tagS32
	tagU64
	tagS64
	tagF32
	tagF64
	tagString
	tagAggregate
	tagList
	tagSet
	tagMap
	tagOptional
	tagOwnedBox
	tagDeprecated
	tagOmit
	tagTuple
	tagVariant
	tagPair

	firstCustomTag shapeTag = 24
)

// typeShaper is implemented by every wrapper type that needs to contribute a
// shape tag other than the plain aggregate/struct default, along with the
// child type(s) the traversal should descend into next.
type typeShaper interface {
	ShapeTag() shapeTag
	ShapeElems() []reflect.Type
}

func elemTypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Deprecated marks a field that used to carry data but no longer should be
// written; a single zero byte, in immutable aggregates too, stands in for a
// present-but-ignored value. Deprecated fields
// still consume the same wire slot so older/newer readers stay aligned.
type Deprecated[T any] struct {
	Value T
}

func (Deprecated[T]) ShapeTag() shapeTag         { return tagDeprecated }
func (Deprecated[T]) ShapeElems() []reflect.Type { return []reflect.Type{elemTypeOf[T]()} }

// Omit marks a field that is never written to the wire and never read back;
// it contributes zero to an aggregate's visible field count and consumes no
// arity slot at all (distinct from Deprecated, which still occupies a slot).
type Omit[T any] struct {
	Value T
}

func (Omit[T]) ShapeTag() shapeTag         { return tagOmit }
func (Omit[T]) ShapeElems() []reflect.Type { return []reflect.Type{elemTypeOf[T]()} }

// Optional represents a field that may or may not be present, encoded with
// a single presence byte ahead of the value (0 = absent, 1 = present then
// value). Distinct from a native *T, which this codec treats as OwnedBox —
// a boxed value intended to model ownership/indirection rather than
// presence, though it shares the same wire shape.
type Optional[T any] struct {
	Valid bool
	Value T
}

func (Optional[T]) ShapeTag() shapeTag         { return tagOptional }
func (Optional[T]) ShapeElems() []reflect.Type { return []reflect.Type{elemTypeOf[T]()} }

// Some constructs a present Optional[T].
func Some[T any](v T) Optional[T] { return Optional[T]{Valid: true, Value: v} }

// None constructs an absent Optional[T].
func None[T any]() Optional[T] { return Optional[T]{} }

// Pair is an unframed (first, second) shape: no predecode byte, no
// deprecation/omission semantics, just two consecutive values. It exists so
// map[K]V and []Pair[K,V] encode to the same bytes (Testable Property 8:
// a map decodes identically to a same-keyed list of pairs).
type Pair[A, B any] struct {
	First  A
	Second B
}

func (Pair[A, B]) ShapeTag() shapeTag {
	return tagPair
}

func (Pair[A, B]) ShapeElems() []reflect.Type {
	return []reflect.Type{elemTypeOf[A](), elemTypeOf[B]()}
}

// Set is a set-like container backed by a map with an empty struct value,
// matching the reference's unordered_set/set/multiset family collapsing
// onto the same wire shape as a plain list of keys.
type Set[K comparable] map[K]struct{}

func (Set[K]) ShapeTag() shapeTag         { return tagSet }
func (Set[K]) ShapeElems() []reflect.Type { return []reflect.Type{elemTypeOf[K]()} }

// NewSet builds a Set from a slice of keys.
func NewSet[K comparable](keys ...K) Set[K] {
	s := make(Set[K], len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Keys returns the set's members as a slice, in map iteration order (the
// wire format doesn't promise an order across encode/decode round-trips).
func (s Set[K]) Keys() []K {
	out := make([]K, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}
