package packall

import "reflect"

// fieldPlan is one wire-visible field of an aggregate. Omit[T] fields never
// appear here at all — they contribute to neither the visible field count
// nor the arity, exactly like the reference's omit<T> (an omitted field
// consumes no arity slot, unlike Deprecated which still occupies one).
type fieldPlan struct {
	Index int // reflect.StructField index on the original type
	Type  reflect.Type
}

// decomposeFields enumerates the wire-visible fields of an aggregate type in
// declaration order (C3). Unexported, non-embedded fields are skipped; they
// aren't addressable from another package and can't be part of the wire
// contract.
func decomposeFields(t reflect.Type) []fieldPlan {
	n := t.NumField()
	fields := make([]fieldPlan, 0, n)
	for i := 0; i < n; i++ {
		f := t.Field(i)
		if f.PkgPath != "" && !f.Anonymous {
			continue
		}
		if isOmitType(f.Type) {
			continue
		}
		fields = append(fields, fieldPlan{Index: i, Type: f.Type})
	}
	return fields
}

func isOmitType(t reflect.Type) bool {
	if !t.Implements(typeShaperType) {
		return false
	}
	zero := reflect.Zero(t).Interface().(typeShaper)
	return zero.ShapeTag() == tagOmit
}

func isDeprecatedType(t reflect.Type) bool {
	if !t.Implements(typeShaperType) {
		return false
	}
	zero := reflect.Zero(t).Interface().(typeShaper)
	return zero.ShapeTag() == tagDeprecated
}

// arityOf returns the declared arity of an aggregate value: an explicit
// PackArity() if the type implements AritySetter (the escape hatch for
// tuples or other custom layouts), or the count of wire-visible fields
// otherwise. In Go, reflect.NumField (filtered for Omit) is exact and never
// overshoots the way the reference's aggregate-initialization-count probe
// can for C++ aggregates — see SPEC_FULL.md Open Question 1.
func arityOf(t reflect.Type, v reflect.Value) int {
	if as, ok := asInterface(t, v, aritySetterType); ok {
		return as.(AritySetter).PackArity()
	}
	return len(decomposeFields(t))
}

func traitsOf(t reflect.Type, v reflect.Value) Traits {
	if tt, ok := asInterface(t, v, tratiedTypeType); ok {
		return tt.(TraitedType).PackTraits()
	}
	return TraitNone
}

func postDecoderOf(v reflect.Value) (PostDecoder, bool) {
	if !v.CanAddr() {
		if pd, ok := v.Interface().(PostDecoder); ok {
			return pd, true
		}
		return nil, false
	}
	if pd, ok := v.Addr().Interface().(PostDecoder); ok {
		return pd, true
	}
	return nil, false
}

var (
	aritySetterType = reflect.TypeOf((*AritySetter)(nil)).Elem()
	tratiedTypeType = reflect.TypeOf((*TraitedType)(nil)).Elem()
)

// asInterface checks both the value and pointer method sets for iface,
// since a type may declare PackArity/PackTraits with a pointer receiver.
func asInterface(t reflect.Type, v reflect.Value, iface reflect.Type) (any, bool) {
	if t.Implements(iface) {
		if v.IsValid() {
			return v.Interface(), true
		}
		return reflect.Zero(t).Interface(), true
	}
	pt := reflect.PointerTo(t)
	if pt.Implements(iface) {
		if v.IsValid() && v.CanAddr() {
			return v.Addr().Interface(), true
		}
		// No addressable value available (e.g. probing the type alone);
		// fall back to a throwaway pointer.
		nv := reflect.New(t)
		return nv.Interface(), true
	}
	return nil, false
}
