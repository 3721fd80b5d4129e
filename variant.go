package packall

import "reflect"

// Variant2-Variant4 are the sum-type counterpart to Tuple2-Tuple4: exactly
// one of the Vn fields is meaningful, selected by Index. The wire format
// writes Index as an sz-encoded discriminant (checked against the
// alternative count on decode — out of range is StatusIncompatible)
// followed by the encoding of the selected alternative.
//
// Go has no union type, so the unselected fields still occupy memory.

type Variant2[A, B any] struct {
	Index int
	V0    A
	V1    B
}

func NewVariant2V0[A, B any](v A) Variant2[A, B] { return Variant2[A, B]{Index: 0, V0: v} }
func NewVariant2V1[A, B any](v B) Variant2[A, B] { return Variant2[A, B]{Index: 1, V1: v} }

func (v Variant2[A, B]) Get() any {
	switch v.Index {
	case 0:
		return v.V0
	case 1:
		return v.V1
	default:
		return nil
	}
}

func (Variant2[A, B]) ShapeTag() shapeTag { return tagVariant }
func (Variant2[A, B]) ShapeElems() []reflect.Type {
	return []reflect.Type{elemTypeOf[A](), elemTypeOf[B]()}
}

type Variant3[A, B, C any] struct {
	Index int
	V0    A
	V1    B
	V2    C
}

func NewVariant3V0[A, B, C any](v A) Variant3[A, B, C] { return Variant3[A, B, C]{Index: 0, V0: v} }
func NewVariant3V1[A, B, C any](v B) Variant3[A, B, C] { return Variant3[A, B, C]{Index: 1, V1: v} }
func NewVariant3V2[A, B, C any](v C) Variant3[A, B, C] { return Variant3[A, B, C]{Index: 2, V2: v} }

func (v Variant3[A, B, C]) Get() any {
	switch v.Index {
	case 0:
		return v.V0
	case 1:
		return v.V1
	case 2:
		return v.V2
	default:
		return nil
	}
}

func (Variant3[A, B, C]) ShapeTag() shapeTag { return tagVariant }
func (Variant3[A, B, C]) ShapeElems() []reflect.Type {
	return []reflect.Type{elemTypeOf[A](), elemTypeOf[B](), elemTypeOf[C]()}
}

type Variant4[A, B, C, D any] struct {
	Index int
	V0    A
	V1    B
	V2    C
	V3    D
}

func NewVariant4V0[A, B, C, D any](v A) Variant4[A, B, C, D] {
	return Variant4[A, B, C, D]{Index: 0, V0: v}
}
func NewVariant4V1[A, B, C, D any](v B) Variant4[A, B, C, D] {
	return Variant4[A, B, C, D]{Index: 1, V1: v}
}
func NewVariant4V2[A, B, C, D any](v C) Variant4[A, B, C, D] {
	return Variant4[A, B, C, D]{Index: 2, V2: v}
}
func NewVariant4V3[A, B, C, D any](v D) Variant4[A, B, C, D] {
	return Variant4[A, B, C, D]{Index: 3, V3: v}
}

func (v Variant4[A, B, C, D]) Get() any {
	switch v.Index {
	case 0:
		return v.V0
	case 1:
		return v.V1
	case 2:
		return v.V2
	case 3:
		return v.V3
	default:
		return nil
	}
}

func (Variant4[A, B, C, D]) ShapeTag() shapeTag { return tagVariant }
func (Variant4[A, B, C, D]) ShapeElems() []reflect.Type {
	return []reflect.Type{elemTypeOf[A](), elemTypeOf[B](), elemTypeOf[C](), elemTypeOf[D]()}
}
