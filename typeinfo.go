package packall

import (
	"reflect"

	"github.com/puzpuzpuz/xsync/v3"
)

// kind classifies a reflect.Type into one of the wire shapes the type
// dispatcher (C4) knows how to pack/unpack. It mirrors the fingerprint's
// shapeTag alphabet but carries the extra bookkeeping (field plans, element
// types) the codec actually needs at pack/unpack time, not just at
// fingerprint time.
type kind int

const (
	kindBool kind = iota
	kindU8
	kindS8
	kindCh
	kindU16
	kindS16
	kindU32
	kindS32
	kindU64
	kindS64
	kindF32
	kindF64
	kindString
	kindAggregate
	kindList
	kindSet
	kindMap
	kindOptional
	kindOwnedBox
	kindDeprecated
	kindTuple
	kindVariant
	kindPair
	kindCustom
)

// typeInfo is the cached, precomputed dispatch plan for one reflect.Type —
// the direct descendant of the teacher's fixed.go sizeCache idiom
// (xsync.NewMap[reflect.Type, int] caching binary.Size results), generalized
// here to cache an entire shape plan instead of just a size, since the type
// dispatcher is reflection-heavy by construction (Go has no templates to
// specialize this away at compile time).
type typeInfo struct {
	typ    reflect.Type
	kind   kind
	fields []fieldPlan // kindAggregate
	arity  int         // kindAggregate
	traits Traits      // kindAggregate
	elem   reflect.Type
	key    reflect.Type // kindMap
	elems  []reflect.Type
	custom shapeTag // kindCustom
}

var typeInfoCache = xsync.NewMapOf[reflect.Type, *typeInfo]()

// getTypeInfo returns the cached dispatch plan for t, building and caching
// it on first use.
func getTypeInfo(t reflect.Type) *typeInfo {
	if ti, ok := typeInfoCache.Load(t); ok {
		return ti
	}
	ti := buildTypeInfo(t)
	actual, _ := typeInfoCache.LoadOrStore(t, ti)
	return actual
}

func buildTypeInfo(t reflect.Type) *typeInfo {
	if t.Kind() == reflect.Ptr {
		return &typeInfo{typ: t, kind: kindOwnedBox, elem: t.Elem()}
	}

	if implementsCustom(t) {
		return &typeInfo{typ: t, kind: kindCustom}
	}

	if t.Implements(typeShaperType) {
		zero := reflect.Zero(t).Interface().(typeShaper)
		elems := zero.ShapeElems()
		ti := &typeInfo{typ: t, elems: elems}
		switch zero.ShapeTag() {
		case tagOptional:
			ti.kind = kindOptional
			ti.elem = elems[0]
		case tagDeprecated:
			ti.kind = kindDeprecated
			ti.elem = elems[0]
		case tagOmit:
			// Omit fields are filtered out by decomposeFields before we ever
			// get here as a struct field. A standalone Omit[T] is classified
			// as kindCustom; since it does not implement Custom, packing or
			// unpacking one returns a StatusBadFormat error rather than
			// writing or reading nothing.
			ti.kind = kindCustom
		case tagSet:
			ti.kind = kindSet
			ti.key = elems[0]
		case tagPair:
			ti.kind = kindPair
		case tagTuple:
			ti.kind = kindTuple
		case tagVariant:
			ti.kind = kindVariant
		default:
			ti.kind = kindAggregate
			ti.fields = decomposeFields(t)
			ti.arity = arityOf(t, reflect.Value{})
			ti.traits = traitsOf(t, reflect.Value{})
		}
		return ti
	}

	switch t.Kind() {
	case reflect.Bool:
		return &typeInfo{typ: t, kind: kindBool}
	case reflect.Int8:
		return &typeInfo{typ: t, kind: kindS8}
	case reflect.Uint8:
		if t == charType {
			return &typeInfo{typ: t, kind: kindCh}
		}
		return &typeInfo{typ: t, kind: kindU8}
	case reflect.Int16:
		return &typeInfo{typ: t, kind: kindS16}
	case reflect.Uint16:
		return &typeInfo{typ: t, kind: kindU16}
	case reflect.Int32:
		return &typeInfo{typ: t, kind: kindS32}
	case reflect.Uint32:
		return &typeInfo{typ: t, kind: kindU32}
	case reflect.Int, reflect.Int64:
		return &typeInfo{typ: t, kind: kindS64}
	case reflect.Uint, reflect.Uint64:
		return &typeInfo{typ: t, kind: kindU64}
	case reflect.Float32:
		return &typeInfo{typ: t, kind: kindF32}
	case reflect.Float64:
		return &typeInfo{typ: t, kind: kindF64}
	case reflect.String:
		return &typeInfo{typ: t, kind: kindString}
	case reflect.Slice, reflect.Array:
		return &typeInfo{typ: t, kind: kindList, elem: t.Elem()}
	case reflect.Map:
		return &typeInfo{typ: t, kind: kindMap, key: t.Key(), elem: t.Elem()}
	case reflect.Struct:
		return &typeInfo{
			typ:    t,
			kind:   kindAggregate,
			fields: decomposeFields(t),
			arity:  arityOf(t, reflect.Value{}),
			traits: traitsOf(t, reflect.Value{}),
		}
	case reflect.Interface:
		return customInterfaceTypeInfo(t)
	default:
		tag := customShapeTag(t)
		return &typeInfo{typ: t, kind: kindCustom, custom: tag}
	}
}

// customInterfaceTypeInfo handles a Custom-coded interface type: the actual
// dynamic type is resolved at pack/unpack time via the Custom interface
// implemented by the concrete value, not at plan-build time.
func customInterfaceTypeInfo(t reflect.Type) *typeInfo {
	return &typeInfo{typ: t, kind: kindCustom}
}
