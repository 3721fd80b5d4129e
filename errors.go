package packall

import (
	"errors"
	"fmt"
	"io"
)

// Status is the single error surface every pack/unpack/parse/format call
// bottoms out in.
type Status int

const (
	StatusOK Status = iota
	// StatusIncompatible: the buffer is either wrong or a newer version
	// without decode assists (arity mismatch, variant index out of range).
	StatusIncompatible
	// StatusDataUnderrun: the stream ended mid-field.
	StatusDataUnderrun
	// StatusBadData: a malformed primitive encoding (overlong varint).
	StatusBadData
	// StatusStackOverflow: a text value nested past max_depth.
	StatusStackOverflow
	// StatusBadFormat: the text parser hit a syntax error.
	StatusBadFormat
	StatusBadVariantValue
	StatusUnknownKey
	// StatusOutOfMemory: a decoded container length exceeded MaxContainerSize.
	StatusOutOfMemory
	StatusWriteDisallowed
	StatusReadDisallowed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusIncompatible:
		return "incompatible"
	case StatusDataUnderrun:
		return "data_underrun"
	case StatusBadData:
		return "bad_data"
	case StatusStackOverflow:
		return "stack_overflow"
	case StatusBadFormat:
		return "bad_format"
	case StatusBadVariantValue:
		return "bad_variant_value"
	case StatusUnknownKey:
		return "unknown_key"
	case StatusOutOfMemory:
		return "out_of_memory"
	case StatusWriteDisallowed:
		return "write_disallowed"
	case StatusReadDisallowed:
		return "read_disallowed"
	default:
		return "status(?)"
	}
}

// Error adapts a Status into the error interface so it composes with errors.Is/As.
type Error struct {
	Status Status
	Msg    string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return "packall: " + e.Status.String()
	}
	return fmt.Sprintf("packall: %s: %s", e.Status, e.Msg)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Status == e.Status
}

func newErr(s Status, format string, args ...any) *Error {
	return &Error{Status: s, Msg: fmt.Sprintf(format, args...)}
}

// Sentinel *Error values, one per Status, for errors.Is comparisons.
var (
	ErrIncompatible    = &Error{Status: StatusIncompatible}
	ErrDataUnderrun    = &Error{Status: StatusDataUnderrun}
	ErrBadData         = &Error{Status: StatusBadData}
	ErrStackOverflow   = &Error{Status: StatusStackOverflow}
	ErrBadFormat       = &Error{Status: StatusBadFormat}
	ErrBadVariantValue = &Error{Status: StatusBadVariantValue}
	ErrUnknownKey      = &Error{Status: StatusUnknownKey}
	ErrOutOfMemory     = &Error{Status: StatusOutOfMemory}
	ErrWriteDisallowed = &Error{Status: StatusWriteDisallowed}
	ErrReadDisallowed  = &Error{Status: StatusReadDisallowed}

	// ErrNilIO indicates NewReader/NewWriter was called with a nil io.Reader/io.Writer.
	ErrNilIO = errors.New("packall: NewReader/NewWriter called with a nil io.Reader/io.Writer")

	// ErrAlreadyBuffered indicates the underlying stream is already buffered,
	// which would lead to unpredictable double-buffering.
	ErrAlreadyBuffered = errors.New("packall: reader or writer is already buffered")

	// ErrInvalidWhence indicates an unsupported whence was passed to Seek.
	ErrInvalidWhence = errors.New("packall: unsupported whence for forward-only seeker")

	// ErrUnsupportedNegativeSeek indicates a backward seek on a forward-only seeker.
	ErrUnsupportedNegativeSeek = errors.New("packall: unsupported negative offset for forward-only seeker")

	// ErrDiscardNegative indicates Discard was called with a negative count.
	ErrDiscardNegative = errors.New("packall: cannot discard a negative number of bytes")

	// ErrSizeTooSmall indicates NewReaderSize was called with a size too
	// small to be compatible with bufio's own minimum.
	ErrSizeTooSmall = errors.New("packall: buffer size too small")

	// ErrWriteToNil indicates a WriteTo operation was attempted on a nil io.Writer.
	ErrWriteToNil = errors.New("packall: WriteTo called with a nil io.Writer")

	// ErrReadToNil indicates a ReadTo operation was attempted on a nil io.ReaderFrom.
	ErrReadToNil = errors.New("packall: ReadTo called with a nil io.ReaderFrom")

	// ErrInvalidSeek indicates a seek to an invalid (negative) position.
	ErrInvalidSeek = errors.New("packall: seek to an invalid position")

	// ErrInvalidWrite indicates an io.Writer returned an invalid (negative) count from Write.
	ErrInvalidWrite = errors.New("packall: writer returned invalid count from Write")

	// ErrInvalidRead indicates an io.Reader returned an invalid (negative or out-of-bound) count from Read.
	ErrInvalidRead = errors.New("packall: reader returned invalid count from Read")
)

// StatusOf unwraps err (nil, a *Error, or a generic error) to a Status.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return StatusDataUnderrun
	}
	return StatusBadData
}
