package packall

import "reflect"

// Tuple2-Tuple4 are a small hand-written family standing in for the
// code-generated tuple-accessor shims the reference implementation builds
// for std::tuple<...> at arbitrary arity. Generating an arbitrary-arity
// tuple family is explicitly out of scope (spec Non-goals), so this codec
// only ever needs as many arities as its own tests and callers use; 2-4
// covers everything a hand-rolled aggregate wouldn't already cover better.
//
// Unlike Pair, a tuple is framed like an aggregate: an sz-encoded predecode
// byte carrying arity+1 precedes the fields, which lets a reader detect and
// reject a stored arity it doesn't know how to read.

type Tuple2[A, B any] struct {
	V0 A
	V1 B
}

func (Tuple2[A, B]) ShapeTag() shapeTag { return tagTuple }
func (Tuple2[A, B]) ShapeElems() []reflect.Type {
	return []reflect.Type{elemTypeOf[A](), elemTypeOf[B]()}
}

type Tuple3[A, B, C any] struct {
	V0 A
	V1 B
	V2 C
}

func (Tuple3[A, B, C]) ShapeTag() shapeTag { return tagTuple }
func (Tuple3[A, B, C]) ShapeElems() []reflect.Type {
	return []reflect.Type{elemTypeOf[A](), elemTypeOf[B](), elemTypeOf[C]()}
}

type Tuple4[A, B, C, D any] struct {
	V0 A
	V1 B
	V2 C
	V3 D
}

func (Tuple4[A, B, C, D]) ShapeTag() shapeTag { return tagTuple }
func (Tuple4[A, B, C, D]) ShapeElems() []reflect.Type {
	return []reflect.Type{elemTypeOf[A](), elemTypeOf[B](), elemTypeOf[C](), elemTypeOf[D]()}
}
