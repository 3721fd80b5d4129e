package packall

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PrimitiveSuite struct {
	suite.Suite
}

func TestPrimitiveSuite(t *testing.T) {
	suite.Run(t, new(PrimitiveSuite))
}

func (s *PrimitiveSuite) TestZigzagRoundTrip() {
	cases := []int64{0, 1, -1, 2, -2, 1<<31 - 1, -(1 << 31), 1<<62 - 1, -(1 << 62)}
	for _, c := range cases {
		s.Equal(c, zigzagDecode64(zigzagEncode64(c)), "value %d", c)
	}
}

func (s *PrimitiveSuite) TestVarintRoundTrip() {
	bw := NewBytesWriter(nil)
	w, err := NewWriter(bw)
	s.Require().NoError(err)
	values := []uint64{0, 1, 127, 128, 300, 1 << 20, 1 << 40, ^uint64(0)}
	for _, v := range values {
		writeVarint(w, v)
	}
	_, err = w.Result()
	s.Require().NoError(err)

	br := NewBytesReader(bw.Bytes())
	r, err := NewReader(br)
	s.Require().NoError(err)
	for _, v := range values {
		got, err := readVarint(r, varintMaxBytes(64))
		s.Require().NoError(err)
		s.Equal(v, got)
	}
}

func (s *PrimitiveSuite) TestOverlongVarintIsBadData() {
	bw := NewBytesWriter(nil)
	w, err := NewWriter(bw)
	s.Require().NoError(err)
	for i := 0; i < 4; i++ {
		w.WriteByte(0x80)
	}
	w.WriteByte(0x01)
	_, err = w.Result()
	s.Require().NoError(err)

	br := NewBytesReader(bw.Bytes())
	r, err := NewReader(br)
	s.Require().NoError(err)
	_, err = readVarint(r, varintMaxBytes(16))
	require.ErrorIs(s.T(), err, ErrBadData)
}

func (s *PrimitiveSuite) TestSizePrefixAbsentVsZeroLength() {
	bw := NewBytesWriter(nil)
	w, err := NewWriter(bw)
	s.Require().NoError(err)
	writeVarint(w, 0) // absent
	writeSize(w, 0)   // present, zero-length
	writeSize(w, 5)
	_, err = w.Result()
	s.Require().NoError(err)

	br := NewBytesReader(bw.Bytes())
	r, err := NewReader(br)
	s.Require().NoError(err)

	n, present := readSize(r)
	s.Equal(0, n)
	s.False(present)

	n, present = readSize(r)
	s.Equal(0, n)
	s.True(present)

	n, present = readSize(r)
	s.Equal(5, n)
	s.True(present)
}

// TestInt32VariableModeMatchesScenarioTable exercises the documented
// i32=-100000 variable-mode scenario (payload BF 9A 0C; wrapped in an
// arity-1 struct it is preceded by that struct's predecode byte, 0x06 under
// this codec's (count<<2)|2 formula): a plain int32 field must route through
// zigzag+varint encoding in variable mode, not through WriteChar/ReadChar's
// fixed 8-bit shape.
func (s *PrimitiveSuite) TestInt32VariableModeMatchesScenarioTable() {
	bw := NewBytesWriter(nil)
	w, err := NewWriter(bw)
	s.Require().NoError(err)
	WriteInt32(w, -100000, OptionsVariableLength)
	_, err = w.Result()
	s.Require().NoError(err)
	s.Equal([]byte{0xBF, 0x9A, 0x0C}, bw.Bytes())

	br := NewBytesReader(bw.Bytes())
	r, err := NewReader(br)
	s.Require().NoError(err)
	s.EqualValues(-100000, ReadInt32(r, OptionsVariableLength))
}

func (s *PrimitiveSuite) TestCharIsAnEightBitCodeUnit() {
	bw := NewBytesWriter(nil)
	w, err := NewWriter(bw)
	s.Require().NoError(err)
	WriteChar(w, Char('A'))
	_, err = w.Result()
	s.Require().NoError(err)
	s.Equal([]byte{'A'}, bw.Bytes())

	br := NewBytesReader(bw.Bytes())
	r, err := NewReader(br)
	s.Require().NoError(err)
	s.Equal(Char('A'), ReadChar(r))
}

func (s *PrimitiveSuite) TestFloatBitRoundTrip() {
	bw := NewBytesWriter(nil)
	w, err := NewWriter(bw)
	s.Require().NoError(err)
	WriteFloat32(w, 3.5)
	WriteFloat64(w, -2.25)
	_, err = w.Result()
	s.Require().NoError(err)

	br := NewBytesReader(bw.Bytes())
	r, err := NewReader(br)
	s.Require().NoError(err)
	s.Equal(float32(3.5), ReadFloat32(r))
	s.Equal(-2.25, ReadFloat64(r))
}
