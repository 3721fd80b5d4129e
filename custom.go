package packall

import "reflect"

// Custom lets a type bypass the reflection-driven aggregate/container
// encoding entirely and own its own wire representation — the escape hatch
// for types whose wire shape isn't a plain struct/list/map (e.g. a type
// with an invariant-preserving custom layout, or one that needs to stay
// byte-compatible with a hand-written format from elsewhere).
type Custom interface {
	PackCustom(w *Writer, opt Options) error
	UnpackCustom(r *Reader, opt Options) error
}

var customType = reflect.TypeOf((*Custom)(nil)).Elem()

func implementsCustom(t reflect.Type) bool {
	return t.Implements(customType) || reflect.PointerTo(t).Implements(customType)
}

func packCustom(v reflect.Value, w *Writer, opt Options) error {
	c, ok := asCustom(v)
	if !ok {
		return newErr(StatusBadFormat, "type %s does not implement Custom", v.Type())
	}
	return c.PackCustom(w, opt)
}

func unpackCustom(v reflect.Value, r *Reader, opt Options) error {
	c, ok := asCustom(v)
	if !ok {
		return newErr(StatusBadFormat, "type %s does not implement Custom", v.Type())
	}
	return c.UnpackCustom(r, opt)
}

func asCustom(v reflect.Value) (Custom, bool) {
	if c, ok := v.Interface().(Custom); ok {
		return c, true
	}
	if v.CanAddr() {
		if c, ok := v.Addr().Interface().(Custom); ok {
			return c, true
		}
	}
	return nil, false
}
