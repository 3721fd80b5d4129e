package packall

import (
	"io"
	"reflect"
)

// packValue is the type dispatcher's (C4) single recursive entry point on
// the encode side: every shape — primitive, aggregate, container, wrapper,
// or custom — routes through here once, driven by the cached typeInfo for
// v's type.
func packValue(v reflect.Value, w *Writer, opt Options) error {
	ti := getTypeInfo(v.Type())
	switch ti.kind {
	case kindBool:
		WriteBool(w, v.Bool())
	case kindU8:
		WriteUint8(w, uint8(v.Uint()))
	case kindS8:
		WriteInt8(w, int8(v.Int()))
	case kindCh:
		WriteChar(w, Char(v.Uint()))
	case kindU16:
		WriteUint16(w, uint16(v.Uint()), opt)
	case kindS16:
		WriteInt16(w, int16(v.Int()), opt)
	case kindU32:
		WriteUint32(w, uint32(v.Uint()), opt)
	case kindS32:
		WriteInt32(w, int32(v.Int()), opt)
	case kindU64:
		WriteUint64(w, v.Uint(), opt)
	case kindS64:
		WriteInt64(w, v.Int(), opt)
	case kindF32:
		WriteFloat32(w, float32(v.Float()))
	case kindF64:
		WriteFloat64(w, v.Float())
	case kindString:
		return packString(v, w)
	case kindAggregate:
		return packAggregate(v, ti, w, opt)
	case kindList:
		return packList(v, w, opt)
	case kindSet:
		return packSet(v, w, opt)
	case kindMap:
		return packMap(v, w, opt)
	case kindPair:
		return packPairLike(v, w, opt)
	case kindTuple:
		return packTuple(v, w, opt)
	case kindVariant:
		return packVariant(v, ti, w, opt)
	case kindOptional:
		return packOptional(v, w, opt)
	case kindOwnedBox:
		return packOwnedBox(v, w, opt)
	case kindDeprecated:
		w.WriteByte(0)
	case kindCustom:
		return packCustom(v, w, opt)
	}
	return w.Err()
}

// unpackValue is packValue's decode-side counterpart. v must be addressable
// (settable) — every caller either holds the top-level decode target or a
// reflect.Value produced by Field/Index/MakeSlice-and-Index, all of which
// are addressable.
func unpackValue(r *Reader, v reflect.Value, opt Options) error {
	ti := getTypeInfo(v.Type())
	switch ti.kind {
	case kindBool:
		v.SetBool(ReadBool(r))
	case kindU8:
		v.SetUint(uint64(ReadUint8(r)))
	case kindS8:
		v.SetInt(int64(ReadInt8(r)))
	case kindCh:
		v.SetUint(uint64(ReadChar(r)))
	case kindU16:
		v.SetUint(uint64(ReadUint16(r, opt)))
	case kindS16:
		v.SetInt(int64(ReadInt16(r, opt)))
	case kindU32:
		v.SetUint(uint64(ReadUint32(r, opt)))
	case kindS32:
		v.SetInt(int64(ReadInt32(r, opt)))
	case kindU64:
		v.SetUint(ReadUint64(r, opt))
	case kindS64:
		v.SetInt(ReadInt64(r, opt))
	case kindF32:
		v.SetFloat(float64(ReadFloat32(r)))
	case kindF64:
		v.SetFloat(ReadFloat64(r))
	case kindString:
		return unpackString(v, r)
	case kindAggregate:
		return unpackAggregate(v, ti, r, opt)
	case kindList:
		return unpackList(v, r, opt)
	case kindSet:
		return unpackSet(v, ti, r, opt)
	case kindMap:
		return unpackMap(v, ti, r, opt)
	case kindPair:
		return unpackPairLike(v, r, opt)
	case kindTuple:
		return unpackTuple(v, r, opt)
	case kindVariant:
		return unpackVariant(v, ti, r, opt)
	case kindOptional:
		return unpackOptional(v, ti, r, opt)
	case kindOwnedBox:
		return unpackOwnedBox(v, ti, r, opt)
	case kindDeprecated:
		return unpackDeprecated(r, v.Type(), opt)
	case kindCustom:
		return unpackCustom(v, r, opt)
	}
	return r.Err()
}

func packString(v reflect.Value, w *Writer) error {
	s := v.String()
	writeSize(w, len(s))
	w.WriteString(s)
	return w.Err()
}

func unpackString(v reflect.Value, r *Reader) error {
	n, _ := readSize(r)
	if r.Err() != nil {
		return r.Err()
	}
	if n == 0 {
		v.SetString("")
		return nil
	}
	buf := r.ReadBytes(n)
	if r.Err() != nil {
		return r.Err()
	}
	v.SetString(string(buf))
	return nil
}

func packOptional(v reflect.Value, w *Writer, opt Options) error {
	valid := v.FieldByName("Valid").Bool()
	if !valid {
		w.WriteByte(0)
		return w.Err()
	}
	w.WriteByte(1)
	return packValue(v.FieldByName("Value"), w, opt)
}

func unpackOptional(v reflect.Value, ti *typeInfo, r *Reader, opt Options) error {
	present, err := r.ReadByte()
	if err != nil {
		return err
	}
	if present == 0 {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}
	v.FieldByName("Valid").SetBool(true)
	return unpackValue(r, v.FieldByName("Value"), opt)
}

func packOwnedBox(v reflect.Value, w *Writer, opt Options) error {
	if v.IsNil() {
		w.WriteByte(0)
		return w.Err()
	}
	w.WriteByte(1)
	return packValue(v.Elem(), w, opt)
}

func unpackOwnedBox(v reflect.Value, ti *typeInfo, r *Reader, opt Options) error {
	present, err := r.ReadByte()
	if err != nil {
		return err
	}
	if present == 0 {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}
	nv := reflect.New(ti.elem)
	if err := unpackValue(r, nv.Elem(), opt); err != nil {
		return err
	}
	v.Set(nv)
	return nil
}

// Pack encodes v onto w using the given Options. v is typically a pointer
// to the value being encoded, or the value itself.
func Pack(w io.Writer, v any, opt Options) error {
	ww, err := NewWriter(w)
	if err != nil {
		return err
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if err := packValue(rv, ww, opt); err != nil {
		return err
	}
	_, err = ww.Result()
	return err
}

// Unpack decodes from r into dst, which must be a non-nil pointer.
func Unpack(r io.Reader, dst any, opt Options) error {
	rr, err := NewReader(r)
	if err != nil {
		return err
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return newErr(StatusBadFormat, "Unpack destination must be a non-nil pointer, got %T", dst)
	}
	return unpackValue(rr, rv.Elem(), opt)
}

// PackBytes encodes v to a new byte slice.
func PackBytes(v any, opt Options) ([]byte, error) {
	bw := NewBytesWriter(nil)
	if err := Pack(bw, v, opt); err != nil {
		return nil, err
	}
	return bw.Bytes(), nil
}

// UnpackBytes decodes buf into dst, which must be a non-nil pointer.
func UnpackBytes(buf []byte, dst any, opt Options) error {
	return Unpack(NewBytesReader(buf), dst, opt)
}
