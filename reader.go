package packall

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
)

// Zero is an io.Reader that reads an infinite stream of zero bytes.
var Zero io.Reader = zero{}

type zero struct{}

func (z zero) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

type reader interface {
	io.Reader
	io.WriterTo
	io.Closer
}

type ReaderPro interface {
	reader
	io.ByteReader
	io.Seeker
	Size() int
}

// Reader provides a buffered reader that simplifies reading binary data.
// It wraps bufio.Reader and tracks the first error. Subsequent reads become no-ops.
// It additionally implements the framing primitives the schema-evolution
// framer needs: PeekU8/AtEnd for absence-flag lookahead, and Enter/Leave for
// backwards-compatible aggregates that may carry trailing unknown fields.
type Reader struct {
	r       ReaderPro
	count   int64 // total bytes read
	err     error // first error encountered.
	order   binary.ByteOrder
	peeked  bool
	peekVal byte
}

var _ ReaderPro = (*Reader)(nil)

// NewReaderSize creates a new Reader with a specified buffer size.
func NewReaderSize(r io.Reader, size int) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}

	switch reader := r.(type) {
	// Reuse the underlying buffer if it's already a compatible Reader.
	case *Reader:
		if reader.r.Size() >= size {
			return &Reader{r: reader.r, order: Order}, nil
		}

	// prevent unpredictable double-buffering.
	case *bufio.Reader:
		if reader.Size() >= size {
			return &Reader{r: &bufioReaderAdapter{Reader: reader}, order: Order}, nil
		}
		return nil, ErrAlreadyBuffered

	// underlying is a buf so we don't need buffering
	case *BytesReader:
		return &Reader{r: reader, order: Order}, nil
	case *bytes.Reader:
		return &Reader{r: &bytesReaderAdapter{reader}, order: Order}, nil
	case *bytes.Buffer:
		return &Reader{r: &bytesBufferReaderAdapter{Buffer: reader}, order: Order}, nil
	}

	if size <= 0 {
		size = BUFFER_SIZE
	} else if size < 16 {
		return nil, ErrSizeTooSmall
	}

	// default use bufio
	return &Reader{
		r:     &bufioReaderAdapter{Reader: bufio.NewReaderSize(r, size), seeker: ForwardSeeker(r)},
		order: Order,
	}, nil
}

// NewReader creates a new Reader with a default buffer size.
func NewReader(r io.Reader) (*Reader, error) {
	return NewReaderSize(r, 0)
}

// WithByteOrder allows setting a custom byte order and returns
// the configured for chaining.
func (r *Reader) WithByteOrder(order binary.ByteOrder) *Reader {
	r.order = order
	return r
}

// Close closes the underlying reader if it implements io.Closer.
func (r *Reader) Close() error {
	return r.r.Close()
}

// Read implements the io.Reader interface.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.r.Read(p)
	r.count += int64(n)
	r.setError(err)
	return n, r.err
}

// Seek moves the read pointer.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	if r.err != nil {
		return r.count, r.err
	}
	newPos, err := r.r.Seek(offset, whence)
	r.count = newPos
	r.setError(err)
	return newPos, err
}

// WriteTo implements io.WriterTo for efficient copying.
func (r *Reader) WriteTo(w io.Writer) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	if w == nil {
		r.setError(ErrWriteToNil)
		return 0, r.err
	}

	n, err := r.r.WriteTo(w)
	r.count += n
	r.setError(err)
	return n, r.err
}

func (r *Reader) Size() int    { return r.r.Size() }
func (r *Reader) Count() int64 { return r.count }
func (r *Reader) Err() error   { return r.err }
func (r *Reader) IsEOF() bool  { return r.err == io.EOF }

// setError records the first non-nil error.
func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// Result returns the total bytes read and the final error state.
func (r *Reader) Result() (int64, error) {
	return r.count, r.err
}

// ReadTo reads data from this reader into an io.ReaderFrom.
func (r *Reader) ReadTo(w io.ReaderFrom) {
	if r.err != nil {
		return
	}
	if w == nil {
		r.setError(ErrReadToNil)
		return
	}
	n, err := w.ReadFrom(r.r)
	r.count += n
	r.setError(err)
}

// readFull is an internal helper to read an exact number of bytes.
func (r *Reader) readFull(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	if n > 0 && r.peeked {
		buf[0] = r.peekVal
		r.peeked = false
		r.count++
		if n == 1 {
			return buf
		}
		if _, err := io.ReadFull(r.r, buf[1:]); err != nil {
			if err == io.EOF {
				r.err = io.ErrUnexpectedEOF
			} else {
				r.err = err
			}
			return nil
		}
		r.count += int64(n - 1)
		return buf
	}
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF {
			// To provide a more specific error for callers;
			// a partial read is different from a clean end-of-stream.
			r.err = io.ErrUnexpectedEOF
		} else {
			r.err = err
		}
		return nil
	}
	return buf
}

// ReadBytes reads n bytes and returns a new byte slice.
func (r *Reader) ReadBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	return r.readFull(n)
}

func (r *Reader) ReadBytesTo(dest []byte) {
	if r.err != nil {
		return
	}
	if len(dest) == 0 {
		return
	}
	if _, err := io.ReadFull(r, dest); err != nil {
		r.err = err
	}
}

// Align discard bytes until offset algin with give n.
func (r *Reader) Align(n int) {
	if n > 1 {
		Discard(r, Roundup(r.count, int64(n))-r.count)
	}
}

// --- Primitive Read Operations ---

func (r *Reader) ReadBool(dest *bool) {
	b, err := r.ReadByte()
	if err == nil {
		*dest = b != 0
	}
}

// ReadByte reads and consumes the next byte, honoring a previously peeked
// lookahead byte from PeekU8.
func (r *Reader) ReadByte() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.peeked {
		r.peeked = false
		r.count++
		return r.peekVal, nil
	}
	b, err := r.r.ReadByte()
	if err == nil {
		r.count++
	} else {
		r.err = err
	}
	return b, err
}

func (r *Reader) ReadUint8(dest *uint8) {
	b, err := r.ReadByte()
	if err == nil {
		*dest = b
	}
}

// PeekU8 returns the next byte without consuming it. A subsequent ReadByte
// (or any primitive read built on it) returns the same byte. Used by the
// deprecation wrapper to decide whether a tombstone or a live value follows
// without committing to reading it.
func (r *Reader) PeekU8() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.peeked {
		return r.peekVal, nil
	}
	b, err := r.r.ReadByte()
	if err != nil {
		r.setError(err)
		return 0, err
	}
	r.peekVal = b
	r.peeked = true
	return b, nil
}

// AtEnd reports whether the stream has no more bytes to read.
func (r *Reader) AtEnd() bool {
	if r.err != nil {
		return true
	}
	_, err := r.PeekU8()
	return err != nil
}

// Enter begins a backwards-compatible framed region: it reads a 4-byte
// little-endian tail size and returns the absolute byte offset at which the
// region ends, for a matching Leave once the known fields have been decoded.
func (r *Reader) Enter() (int64, error) {
	var sz uint32
	r.ReadUint32(&sz)
	if r.err != nil {
		return 0, r.err
	}
	return r.count + int64(sz), nil
}

// Leave skips forward to endOffset (as returned by Enter), discarding any
// trailing fields the caller's schema doesn't know about.
func (r *Reader) Leave(endOffset int64) error {
	if r.err != nil {
		return r.err
	}
	if endOffset < r.count {
		r.setError(ErrIncompatible)
		return r.err
	}
	if endOffset == r.count {
		return nil
	}
	_, err := Discard(r, endOffset-r.count)
	r.count = endOffset
	if err != nil {
		r.setError(err)
	}
	return err
}

func (r *Reader) ReadUint16(dest *uint16) {
	buf := r.readFull(2)
	if r.err == nil {
		*dest = r.order.Uint16(buf)
	}
}

func (r *Reader) ReadUint32(dest *uint32) {
	buf := r.readFull(4)
	if r.err == nil {
		*dest = r.order.Uint32(buf)
	}
}

func (r *Reader) ReadUint64(dest *uint64) {
	buf := r.readFull(8)
	if r.err == nil {
		*dest = r.order.Uint64(buf)
	}
}

func (r *Reader) ReadInt8(dest *int8) {
	b, err := r.ReadByte()
	if err == nil {
		*dest = int8(b)
	}
}

func (r *Reader) ReadInt16(dest *int16) {
	buf := r.readFull(2)
	if r.err == nil {
		*dest = int16(r.order.Uint16(buf))
	}
}

func (r *Reader) ReadInt32(dest *int32) {
	buf := r.readFull(4)
	if r.err == nil {
		*dest = int32(r.order.Uint32(buf))
	}
}

func (r *Reader) ReadInt64(dest *int64) {
	buf := r.readFull(8)
	if r.err == nil {
		*dest = int64(r.order.Uint64(buf))
	}
}
