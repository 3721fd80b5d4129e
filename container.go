package packall

import "reflect"

// packList encodes a slice or array (C4 list-like shape). A nil slice
// writes a bare absent marker (sz literal 0); a non-nil slice, including an
// empty one, writes sz=len+1 followed by each element, each fully framed (no
// shared predecode byte is hoisted ahead of the elements). Fixed-size Go
// arrays are always "present"; on decode a stored length greater than the
// declared length is rejected, and a shorter one fills only the leading
// elements.
func packList(v reflect.Value, w *Writer, opt Options) error {
	if v.Kind() == reflect.Slice && v.IsNil() {
		writeVarint(w, 0)
		return w.Err()
	}
	n := v.Len()
	writeSize(w, n)
	for i := 0; i < n; i++ {
		if err := packValue(v.Index(i), w, opt); err != nil {
			return err
		}
	}
	return w.Err()
}

func unpackList(v reflect.Value, r *Reader, opt Options) error {
	n, present := readSize(r)
	if r.Err() != nil {
		return r.Err()
	}
	if v.Kind() == reflect.Array {
		if !present {
			return ErrIncompatible
		}
		if n > v.Len() {
			return ErrIncompatible
		}
		for i := 0; i < n; i++ {
			if err := unpackValue(r, v.Index(i), opt); err != nil {
				return err
			}
		}
		return nil
	}
	if !present {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}
	out := reflect.MakeSlice(v.Type(), n, n)
	for i := 0; i < n; i++ {
		if err := unpackValue(r, out.Index(i), opt); err != nil {
			return err
		}
	}
	v.Set(out)
	return nil
}

// packSet encodes a Set[K] as a count followed by each key, in whatever
// order Go's map iteration gives — the same wire shape a list of keys
// would produce, mirroring the reference's set/unordered_set/multiset
// family collapsing onto one encoding.
func packSet(v reflect.Value, w *Writer, opt Options) error {
	if v.IsNil() {
		writeVarint(w, 0)
		return w.Err()
	}
	writeSize(w, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		if err := packValue(iter.Key(), w, opt); err != nil {
			return err
		}
	}
	return w.Err()
}

func unpackSet(v reflect.Value, ti *typeInfo, r *Reader, opt Options) error {
	n, present := readSize(r)
	if r.Err() != nil {
		return r.Err()
	}
	if !present {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}
	out := reflect.MakeMapWithSize(v.Type(), n)
	empty := reflect.Zero(v.Type().Elem())
	for i := 0; i < n; i++ {
		key := reflect.New(ti.key).Elem()
		if err := unpackValue(r, key, opt); err != nil {
			return err
		}
		out.SetMapIndex(key, empty)
	}
	v.Set(out)
	return nil
}

// packMap encodes map[K]V identically to a []Pair[K,V] would: a count
// followed by (key, value) pairs, unframed. This is what lets the map and
// pair-list forms decode into each other (Testable Property 8).
func packMap(v reflect.Value, w *Writer, opt Options) error {
	if v.IsNil() {
		writeVarint(w, 0)
		return w.Err()
	}
	writeSize(w, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		if err := packValue(iter.Key(), w, opt); err != nil {
			return err
		}
		if err := packValue(iter.Value(), w, opt); err != nil {
			return err
		}
	}
	return w.Err()
}

func unpackMap(v reflect.Value, ti *typeInfo, r *Reader, opt Options) error {
	n, present := readSize(r)
	if r.Err() != nil {
		return r.Err()
	}
	if !present {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}
	out := reflect.MakeMapWithSize(v.Type(), n)
	for i := 0; i < n; i++ {
		key := reflect.New(ti.key).Elem()
		if err := unpackValue(r, key, opt); err != nil {
			return err
		}
		val := reflect.New(ti.elem).Elem()
		if err := unpackValue(r, val, opt); err != nil {
			return err
		}
		out.SetMapIndex(key, val)
	}
	v.Set(out)
	return nil
}

// packPairLike encodes Pair as its two fields concatenated in declaration
// order with no framing at all — the arity is fixed at two and known
// statically to both sides, so there's nothing to negotiate.
func packPairLike(v reflect.Value, w *Writer, opt Options) error {
	n := v.NumField()
	for i := 0; i < n; i++ {
		if err := packValue(v.Field(i), w, opt); err != nil {
			return err
		}
	}
	return w.Err()
}

func unpackPairLike(v reflect.Value, r *Reader, opt Options) error {
	n := v.NumField()
	for i := 0; i < n; i++ {
		if err := unpackValue(r, v.Field(i), opt); err != nil {
			return err
		}
	}
	return nil
}

// packTuple encodes Tuple2-4, which, unlike Pair, are framed like an
// aggregate: an sz-encoded predecode byte carrying arity+1, then the fields
// in order. Containers of tuples write this byte for every element; it is
// not hoisted to the front of the container.
func packTuple(v reflect.Value, w *Writer, opt Options) error {
	n := v.NumField()
	writeSize(w, n)
	for i := 0; i < n; i++ {
		if err := packValue(v.Field(i), w, opt); err != nil {
			return err
		}
	}
	return w.Err()
}

// unpackTuple mirrors the aggregate unpacking algorithm without the
// backwards-compatible tail frame: if the stored arity exceeds the reader's
// declared arity, the excess can't be skipped and is incompatible.
func unpackTuple(v reflect.Value, r *Reader, opt Options) error {
	n := v.NumField()
	stored, present := readSize(r)
	if r.Err() != nil {
		return r.Err()
	}
	if !present {
		return nil
	}
	if stored > n {
		return ErrIncompatible
	}
	for i := 0; i < stored; i++ {
		if err := unpackValue(r, v.Field(i), opt); err != nil {
			return err
		}
	}
	return nil
}

// packVariant writes the active alternative's index as an sz-encoded
// discriminant (count+1, like every other size prefix), followed by its
// encoded value.
func packVariant(v reflect.Value, ti *typeInfo, w *Writer, opt Options) error {
	idx := int(v.FieldByName("Index").Int())
	if idx < 0 || idx >= len(ti.elems) {
		return ErrIncompatible
	}
	writeSize(w, idx)
	field := v.Field(idx + 1) // Index is field 0; V0..Vn follow
	return packValue(field, w, opt)
}

func unpackVariant(v reflect.Value, ti *typeInfo, r *Reader, opt Options) error {
	idx, present := readSize(r)
	if r.Err() != nil {
		return r.Err()
	}
	if !present || idx >= len(ti.elems) {
		return ErrIncompatible
	}
	v.FieldByName("Index").SetInt(int64(idx))
	field := v.Field(idx + 1)
	return unpackValue(r, field, opt)
}
