package packall

import (
	"math"
	"reflect"
)

// Primitive read/write routines (C2): fixed-width little-endian values in
// fixed mode, varint+zigzag in variable mode. Single-byte values are always
// written raw regardless of mode — there's nothing to gain from varint-coding
// a value that already fits in one byte.
//
// varintMaxBytes bounds decoding per width so a corrupt or hostile buffer
// with an unterminated continuation-bit run can't be read forever; exceeding
// the bound is StatusBadData (an overlong encoding).
func varintMaxBytes(bits int) int {
	switch bits {
	case 8:
		return 2
	case 16:
		return 3
	case 32:
		return 5
	case 64:
		return 10
	default:
		return 10
	}
}

func zigzagEncode64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func zigzagDecode64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// writeVarint writes u as a base-128 varint, least-significant group first,
// high bit of each byte set except the last.
func writeVarint(w *Writer, u uint64) {
	for {
		b := byte(u & 0x7F)
		u >>= 7
		if u != 0 {
			w.WriteByte(b | 0x80)
		} else {
			w.WriteByte(b)
			return
		}
	}
}

// readVarint reads a bounded varint, failing with StatusBadData if more than
// maxBytes groups are needed (an overlong encoding).
func readVarint(r *Reader, maxBytes int) (uint64, error) {
	var u uint64
	var shift uint
	for i := 0; i < maxBytes; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		u |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return u, nil
		}
		shift += 7
	}
	r.setError(ErrBadData)
	return 0, ErrBadData
}

// --- unsigned ---

func WriteUint8(w *Writer, v uint8) { w.WriteUint8(v) }

func ReadUint8(r *Reader) uint8 {
	var v uint8
	r.ReadUint8(&v)
	return v
}

func WriteUint16(w *Writer, v uint16, opt Options) {
	if !opt.Variable() {
		w.WriteUint16(v)
		return
	}
	writeVarint(w, uint64(v))
}

func ReadUint16(r *Reader, opt Options) uint16 {
	if !opt.Variable() {
		var v uint16
		r.ReadUint16(&v)
		return v
	}
	u, err := readVarint(r, varintMaxBytes(16))
	if err != nil {
		return 0
	}
	if u > 0xFFFF {
		r.setError(ErrBadData)
		return 0
	}
	return uint16(u)
}

func WriteUint32(w *Writer, v uint32, opt Options) {
	if !opt.Variable() {
		w.WriteUint32(v)
		return
	}
	writeVarint(w, uint64(v))
}

func ReadUint32(r *Reader, opt Options) uint32 {
	if !opt.Variable() {
		var v uint32
		r.ReadUint32(&v)
		return v
	}
	u, err := readVarint(r, varintMaxBytes(32))
	if err != nil {
		return 0
	}
	if u > 0xFFFFFFFF {
		r.setError(ErrBadData)
		return 0
	}
	return uint32(u)
}

func WriteUint64(w *Writer, v uint64, opt Options) {
	if !opt.Variable() {
		w.WriteUint64(v)
		return
	}
	writeVarint(w, v)
}

func ReadUint64(r *Reader, opt Options) uint64 {
	if !opt.Variable() {
		var v uint64
		r.ReadUint64(&v)
		return v
	}
	u, err := readVarint(r, varintMaxBytes(64))
	if err != nil {
		return 0
	}
	return u
}

// --- signed ---

func WriteInt8(w *Writer, v int8) { w.WriteInt8(v) }

func ReadInt8(r *Reader) int8 {
	var v int8
	r.ReadInt8(&v)
	return v
}

func WriteInt16(w *Writer, v int16, opt Options) {
	if !opt.Variable() {
		w.WriteInt16(v)
		return
	}
	writeVarint(w, zigzagEncode64(int64(v)))
}

func ReadInt16(r *Reader, opt Options) int16 {
	if !opt.Variable() {
		var v int16
		r.ReadInt16(&v)
		return v
	}
	u, err := readVarint(r, varintMaxBytes(16))
	if err != nil {
		return 0
	}
	v := zigzagDecode64(u)
	if v < -0x8000 || v > 0x7FFF {
		r.setError(ErrBadData)
		return 0
	}
	return int16(v)
}

func WriteInt32(w *Writer, v int32, opt Options) {
	if !opt.Variable() {
		w.WriteInt32(v)
		return
	}
	writeVarint(w, zigzagEncode64(int64(v)))
}

func ReadInt32(r *Reader, opt Options) int32 {
	if !opt.Variable() {
		var v int32
		r.ReadInt32(&v)
		return v
	}
	u, err := readVarint(r, varintMaxBytes(32))
	if err != nil {
		return 0
	}
	v := zigzagDecode64(u)
	if v < -0x80000000 || v > 0x7FFFFFFF {
		r.setError(ErrBadData)
		return 0
	}
	return int32(v)
}

func WriteInt64(w *Writer, v int64, opt Options) {
	if !opt.Variable() {
		w.WriteInt64(v)
		return
	}
	writeVarint(w, zigzagEncode64(v))
}

func ReadInt64(r *Reader, opt Options) int64 {
	if !opt.Variable() {
		var v int64
		r.ReadInt64(&v)
		return v
	}
	u, err := readVarint(r, varintMaxBytes(64))
	if err != nil {
		return 0
	}
	return zigzagDecode64(u)
}

// --- floats, bool, char ---

func WriteFloat32(w *Writer, v float32) {
	w.WriteUint32(math.Float32bits(v))
}

func ReadFloat32(r *Reader) float32 {
	var u uint32
	r.ReadUint32(&u)
	return math.Float32frombits(u)
}

func WriteFloat64(w *Writer, v float64) {
	w.WriteUint64(math.Float64bits(v))
}

func ReadFloat64(r *Reader) float64 {
	var u uint64
	r.ReadUint64(&u)
	return math.Float64frombits(u)
}

func WriteBool(w *Writer, v bool) { w.WriteBool(v) }

func ReadBool(r *Reader) bool {
	var v bool
	r.ReadBool(&v)
	return v
}

// Char is the wire's 8-bit code unit, distinct from a plain Go int32/rune
// (which maps to the s32 shape). Go aliases rune to int32, so char can only
// be distinguished from a 32-bit signed integer through a dedicated named
// type rather than by sniffing reflect.Type against rune.
type Char uint8

var charType = reflect.TypeOf(Char(0))

func WriteChar(w *Writer, v Char) {
	WriteUint8(w, uint8(v))
}

func ReadChar(r *Reader) Char {
	return Char(ReadUint8(r))
}

// --- size prefix (sz): count+1 varint, so 0 unambiguously means absent ---

func writeSize(w *Writer, n int) {
	if n < 0 {
		w.setError(ErrBadData)
		return
	}
	writeVarint(w, uint64(n)+1)
}

// readSize reads a count+1-encoded size prefix. present reports whether a
// value follows at all (raw encoded byte was non-zero); n is the decoded
// count when present is true.
func readSize(r *Reader) (n int, present bool) {
	u, err := readVarint(r, varintMaxBytes(32))
	if err != nil {
		return 0, false
	}
	if u == 0 {
		return 0, false
	}
	count := u - 1
	if count > uint64(MaxContainerSize) {
		r.setError(ErrOutOfMemory)
		return 0, false
	}
	return int(count), true
}
