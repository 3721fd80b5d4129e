package packall

import (
	"encoding/binary"
	"io"

	"golang.org/x/exp/constraints"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
	// Order is the default wire byte order: little-endian, per the wire
	// format (fixed-width integers are always little-endian regardless of
	// host order).
	Order = LE
)

const BUFFER_SIZE = 4096

var (
	empty   [BUFFER_SIZE]byte
	discard [BUFFER_SIZE]byte
)

func Ptr[T any](v T) *T { return &v } // ptr is a helper function to create a pointer to a value, making test setup cleaner.

func Discard(r io.Reader, n int64) (int64, error) {
	if n == 0 {
		return 0, nil
	}
	if n < 0 {
		return 0, ErrDiscardNegative
	}
	if n <= BUFFER_SIZE {
		skip, err := r.Read(discard[:n])
		return int64(skip), err
	}
	return io.CopyN(io.Discard, r, n)
}

// Roundup rounds n up to the nearest multiple of align.
func Roundup[T constraints.Integer](n, align T) T { return (n + (align - 1)) &^ (align - 1) }
