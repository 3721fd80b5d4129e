package packall

import (
	"hash"
	"hash/crc32"
	"reflect"
)

// typeShaperType is the reflect.Type of the typeShaper interface, used to
// detect our own wrapper types (Optional, Deprecated, Omit, Pair, Set,
// Tuple2-4, Variant2-4) during the fingerprint traversal and the aggregate
// decomposer, without resorting to name matching.
var typeShaperType = reflect.TypeOf((*typeShaper)(nil)).Elem()

// Fingerprint computes the canonical type-tree fingerprint for t (C6): a
// depth-first traversal emitting one byte per shape-class tag, reduced with
// CRC-32/IEEE (poly 0xEDB88320, init/final XOR 0xFFFFFFFF — crc32.IEEE).
// Two types whose field shapes differ (added/removed/reordered fields, a
// changed field type, a changed wrapper) always produce different
// fingerprints; two types that only differ in field *names* or in Traits
// produce the same one, since the traversal records neither.
func Fingerprint(t reflect.Type) uint32 {
	h := crc32.NewIEEE()
	visiting := map[reflect.Type]bool{}
	fingerprintType(h, t, visiting)
	return h.Sum32()
}

func fingerprintType(h hash.Hash32, t reflect.Type, visiting map[reflect.Type]bool) {
	if t.Kind() == reflect.Ptr {
		h.Write([]byte{byte(tagOwnedBox)})
		fingerprintDescend(h, t.Elem(), visiting)
		return
	}

	if t.Implements(typeShaperType) {
		zero := reflect.Zero(t).Interface().(typeShaper)
		h.Write([]byte{byte(zero.ShapeTag())})
		for _, elem := range zero.ShapeElems() {
			fingerprintDescend(h, elem, visiting)
		}
		return
	}

	switch t.Kind() {
	case reflect.Bool:
		h.Write([]byte{byte(tagBool)})
	case reflect.Int8:
		h.Write([]byte{byte(tagS8)})
	case reflect.Uint8:
		if t == charType {
			h.Write([]byte{byte(tagCh)})
		} else {
			h.Write([]byte{byte(tagU8)})
		}
	case reflect.Int16:
		h.Write([]byte{byte(tagS16)})
	case reflect.Uint16:
		h.Write([]byte{byte(tagU16)})
	case reflect.Int32:
		h.Write([]byte{byte(tagS32)})
	case reflect.Uint32:
		h.Write([]byte{byte(tagU32)})
	case reflect.Int, reflect.Int64:
		h.Write([]byte{byte(tagS64)})
	case reflect.Uint, reflect.Uint64:
		h.Write([]byte{byte(tagU64)})
	case reflect.Float32:
		h.Write([]byte{byte(tagF32)})
	case reflect.Float64:
		h.Write([]byte{byte(tagF64)})
	case reflect.String:
		h.Write([]byte{byte(tagString)})
	case reflect.Slice, reflect.Array:
		h.Write([]byte{byte(tagList)})
		fingerprintDescend(h, t.Elem(), visiting)
	case reflect.Map:
		h.Write([]byte{byte(tagMap)})
		fingerprintDescend(h, t.Key(), visiting)
		fingerprintDescend(h, t.Elem(), visiting)
	case reflect.Struct:
		fingerprintStruct(h, t, visiting)
	default:
		h.Write([]byte{byte(customShapeTag(t))})
	}
}

func fingerprintStruct(h hash.Hash32, t reflect.Type, visiting map[reflect.Type]bool) {
	if visiting[t] {
		// Recursive reference (e.g. a tree node holding *Node): emit the
		// aggregate tag again without descending further, breaking the
		// cycle. Both encoder and decoder are built from the same Go type,
		// so this is stable across the pair even though it isn't a full
		// structural description.
		h.Write([]byte{byte(tagAggregate)})
		return
	}
	visiting[t] = true
	defer delete(visiting, t)

	h.Write([]byte{byte(tagAggregate)})
	n := t.NumField()
	for i := 0; i < n; i++ {
		f := t.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue // unexported, not part of the wire shape
		}
		fingerprintType(h, f.Type, visiting)
	}
}

func fingerprintDescend(h hash.Hash32, t reflect.Type, visiting map[reflect.Type]bool) {
	fingerprintType(h, t, visiting)
}

// customShapeTags assigns stable tags >= firstCustomTag to user-registered
// Custom shapes, in first-seen order within a process. Registration order
// is deterministic as long as RegisterCustomShape calls happen the same way
// on every binary sharing a wire format, exactly as the reference's
// registration-order-dependent custom type IDs do.
var (
	customShapeTags   = map[reflect.Type]shapeTag{}
	nextCustomTagFree = firstCustomTag
)

// RegisterCustomShape assigns t a stable custom shape tag. Call it once per
// custom type, in the same order on every binary that must agree on wire
// fingerprints.
func RegisterCustomShape(t reflect.Type) {
	if _, ok := customShapeTags[t]; ok {
		return
	}
	customShapeTags[t] = nextCustomTagFree
	nextCustomTagFree++
}

func customShapeTag(t reflect.Type) shapeTag {
	if tag, ok := customShapeTags[t]; ok {
		return tag
	}
	RegisterCustomShape(t)
	return customShapeTags[t]
}
