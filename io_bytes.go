package packall

import "io"

// BytesReader is an io.Reader that reads from a pre-allocated byte slice.
// It is the in-memory collaborator C1 (the byte-stream adapter) wraps for
// Unpack calls against a []byte, avoiding a bufio layer entirely.
type BytesReader struct {
	B []byte // source slice
	N int    // current read position
}

// NewBytesReader creates a new BytesReader.
func NewBytesReader(b []byte) *BytesReader { return &BytesReader{B: b} }

func (r *BytesReader) Close() error { return nil }

func (r *BytesReader) Read(p []byte) (int, error) {
	if r.N >= len(r.B) {
		return 0, io.EOF
	}
	n := copy(p, r.B[r.N:])
	r.N += n
	return n, nil
}

func (r *BytesReader) ReadByte() (byte, error) {
	if r.N >= len(r.B) {
		return 0, io.EOF
	}
	b := r.B[r.N]
	r.N++
	return b, nil
}

// PeekByte returns the next byte without advancing the cursor.
func (r *BytesReader) PeekByte() (byte, error) {
	if r.N >= len(r.B) {
		return 0, io.EOF
	}
	return r.B[r.N], nil
}

func (r *BytesReader) WriteTo(w io.Writer) (int64, error) {
	if r.N >= len(r.B) {
		return 0, nil
	}
	b := r.B[r.N:]
	n, err := w.Write(b)
	if n > len(b) {
		return int64(n), ErrInvalidRead
	}
	r.N += n
	return int64(n), err
}

func (r *BytesReader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(r.N) + offset
	case io.SeekEnd:
		abs = int64(len(r.B)) + offset
	default:
		return 0, ErrInvalidWhence
	}
	if abs < 0 {
		return 0, ErrInvalidSeek
	}
	r.N = int(abs)
	return abs, nil
}

func (r *BytesReader) Reset()        { r.N = 0 }
func (r *BytesReader) Len() int      { return r.N }
func (r *BytesReader) Size() int     { return len(r.B) }
func (r *BytesReader) AtEnd() bool   { return r.N >= len(r.B) }
func (r *BytesReader) Available() int {
	if n := len(r.B) - r.N; n > 0 {
		return n
	}
	return 0
}

// BytesWriter is an io.Writer backed by a growable byte slice, the write-side
// analogue of BytesReader. Unlike the teacher's fixed-capacity BytesWriter,
// it grows on demand (C1 requires an "amortized-linear growing write
// buffer", not a fixed-capacity one).
type BytesWriter struct {
	B []byte
}

// NewBytesWriter creates a BytesWriter seeded with an initial buffer (may be
// nil or zero-length; it grows as needed).
func NewBytesWriter(p []byte) *BytesWriter { return &BytesWriter{B: p[:0:cap(p)]} }

func (w *BytesWriter) Close() error { return nil }

func (w *BytesWriter) Write(p []byte) (int, error) {
	w.B = append(w.B, p...)
	return len(p), nil
}

func (w *BytesWriter) WriteByte(c byte) error {
	w.B = append(w.B, c)
	return nil
}

func (w *BytesWriter) WriteString(s string) (int, error) {
	w.B = append(w.B, s...)
	return len(s), nil
}

func (w *BytesWriter) ReadFrom(r io.Reader) (int64, error) {
	start := len(w.B)
	buf := bufPool.Get().(*[]byte)
	defer bufPool.Put(buf)
	for {
		n, err := r.Read(*buf)
		if n > 0 {
			w.B = append(w.B, (*buf)[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				return int64(len(w.B) - start), nil
			}
			return int64(len(w.B) - start), err
		}
	}
}

func (w *BytesWriter) Flush() error  { return nil }
func (w *BytesWriter) Reset()        { w.B = w.B[:0] }
func (w *BytesWriter) Len() int      { return len(w.B) }
func (w *BytesWriter) Size() int     { return cap(w.B) }
func (w *BytesWriter) Bytes() []byte { return w.B }

// writeAt overwrites len(p) bytes starting at offset off, used by pop() to
// patch a previously reserved tail-size slot. off+len(p) must not exceed
// len(w.B).
func (w *BytesWriter) writeAt(off int, p []byte) {
	copy(w.B[off:off+len(p)], p)
}
