package packall

import "reflect"

// packAggregate encodes a struct field-by-field, emitting the predecode
// byte and backwards-compatible tail-size framing the schema-evolution
// framer (C5) needs, unless the aggregate is declared immutable (in which
// case fields are concatenated raw with no predecode byte at all — an
// immutable aggregate's schema may never change again, so there is nothing
// to evolve around).
func packAggregate(v reflect.Value, ti *typeInfo, w *Writer, opt Options) error {
	immutable := ti.traits.Has(TraitImmutable)
	bc := ti.traits.Has(TraitBackwardsCompatible)

	var marker int64
	if !immutable {
		visible := len(ti.fields)
		p := byte(visible<<2) | 2
		if bc {
			p |= 1
		}
		w.WriteByte(p)
		if bc {
			var err error
			marker, err = w.Push()
			if err != nil {
				return w.Err()
			}
		}
	}

	for _, fp := range ti.fields {
		fv := v.Field(fp.Index)
		if isDeprecatedType(fp.Type) {
			w.WriteByte(0)
			continue
		}
		if err := packValue(fv, w, opt); err != nil {
			return err
		}
	}

	if !immutable && bc {
		if err := w.Pop(marker); err != nil {
			return err
		}
	}
	return w.Err()
}

// unpackAggregate decodes a struct, honoring the predecode byte's arity and
// backwards-compatible framing. Fields present in the stream beyond this
// type's known arity are skipped via the tail-size (if the writer marked
// the aggregate backwards-compatible) or rejected as incompatible
// otherwise; fields known to this type but absent from an older stream are
// left at their zero value.
func unpackAggregate(v reflect.Value, ti *typeInfo, r *Reader, opt Options) error {
	immutable := ti.traits.Has(TraitImmutable)

	count := ti.arity
	var endOffset int64
	hasEnd := false

	if !immutable {
		p, err := r.ReadByte()
		if err != nil {
			return err
		}
		bc := p&1 != 0
		count = int(p) >> 2

		if bc {
			endOffset, err = r.Enter()
			if err != nil {
				return err
			}
			hasEnd = true
		}

		if count > ti.arity && !bc {
			return ErrIncompatible
		}
	}

	toRead := count
	if toRead > ti.arity {
		toRead = ti.arity
	}

	for i := 0; i < toRead; i++ {
		fp := ti.fields[i]
		fv := v.Field(fp.Index)
		if isDeprecatedType(fp.Type) {
			if err := unpackDeprecated(r, fp.Type, opt); err != nil {
				return err
			}
			continue
		}
		if err := unpackValue(r, fv, opt); err != nil {
			return err
		}
	}

	if hasEnd {
		if err := r.Leave(endOffset); err != nil {
			return err
		}
	}

	if pd, ok := postDecoderOf(v); ok {
		if err := pd.PostDecode(); err != nil {
			return err
		}
	}
	return nil
}

// unpackDeprecated implements deprecation neutrality: a peer that has
// tombstoned this field writes a single zero byte, but a peer that still
// carries it live writes a full encoding of the wrapped shape whose first
// byte may be anything. The reader peeks that byte to tell which happened —
// zero consumes the tombstone, nonzero decodes and discards a full value of
// the wrapped type — so a live writer never desyncs a reader that has
// deprecated the field, and vice versa.
func unpackDeprecated(r *Reader, wrapperType reflect.Type, opt Options) error {
	b, err := r.PeekU8()
	if err != nil {
		return err
	}
	if b == 0 {
		_, err := r.ReadByte()
		return err
	}
	ti := getTypeInfo(wrapperType)
	throwaway := reflect.New(ti.elem).Elem()
	return unpackValue(r, throwaway, opt)
}
