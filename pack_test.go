package packall

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type simpleStruct struct {
	A int32
	B string
	C []uint16
}

type PackRoundTripSuite struct {
	suite.Suite
}

func TestPackRoundTripSuite(t *testing.T) {
	suite.Run(t, new(PackRoundTripSuite))
}

func (s *PackRoundTripSuite) roundTrip(opt Options, in, out any) {
	buf, err := PackBytes(in, opt)
	s.Require().NoError(err)
	s.Require().NoError(UnpackBytes(buf, out, opt))
}

func (s *PackRoundTripSuite) TestPrimitivesFixed() {
	in := simpleStruct{A: -42, B: "hello", C: []uint16{1, 2, 3}}
	var out simpleStruct
	s.roundTrip(OptionsNone, &in, &out)
	s.Equal(in, out)
}

func (s *PackRoundTripSuite) TestPrimitivesVariable() {
	in := simpleStruct{A: -123456, B: "world", C: []uint16{10, 20, 30, 40}}
	var out simpleStruct
	s.roundTrip(OptionsVariableLength, &in, &out)
	s.Equal(in, out)
}

func (s *PackRoundTripSuite) TestNilSliceStaysNil() {
	in := simpleStruct{A: 1, B: "x", C: nil}
	var out simpleStruct
	out.C = []uint16{9}
	s.roundTrip(OptionsNone, &in, &out)
	s.Nil(out.C)
}

func (s *PackRoundTripSuite) TestEmptySliceStaysEmpty() {
	in := simpleStruct{A: 1, B: "x", C: []uint16{}}
	var out simpleStruct
	s.roundTrip(OptionsNone, &in, &out)
	s.NotNil(out.C)
	s.Len(out.C, 0)
}

func (s *PackRoundTripSuite) TestOptional() {
	type withOpt struct {
		V Optional[int32]
	}
	in := withOpt{V: Some[int32](7)}
	var out withOpt
	s.roundTrip(OptionsNone, &in, &out)
	s.True(out.V.Valid)
	s.EqualValues(7, out.V.Value)

	in2 := withOpt{V: None[int32]()}
	var out2 withOpt
	out2.V = Some[int32](1)
	s.roundTrip(OptionsNone, &in2, &out2)
	s.False(out2.V.Valid)
}

func (s *PackRoundTripSuite) TestOwnedBox() {
	type withBox struct {
		V *int64
	}
	n := int64(99)
	in := withBox{V: &n}
	var out withBox
	s.roundTrip(OptionsNone, &in, &out)
	s.Require().NotNil(out.V)
	s.EqualValues(99, *out.V)

	in2 := withBox{V: nil}
	var out2 withBox
	x := int64(1)
	out2.V = &x
	s.roundTrip(OptionsNone, &in2, &out2)
	s.Nil(out2.V)
}

func (s *PackRoundTripSuite) TestSet() {
	type withSet struct {
		S Set[string]
	}
	in := withSet{S: NewSet("a", "b", "c")}
	var out withSet
	s.roundTrip(OptionsNone, &in, &out)
	s.ElementsMatch(in.S.Keys(), out.S.Keys())
}

func (s *PackRoundTripSuite) TestMapAsPairListEquivalence() {
	type withMap struct {
		M map[string]int32
	}
	type withPairs struct {
		P []Pair[string, int32]
	}
	in := withMap{M: map[string]int32{"x": 1, "y": 2}}
	buf, err := PackBytes(&in, OptionsNone)
	s.Require().NoError(err)

	var outPairs withPairs
	s.Require().NoError(UnpackBytes(buf, &outPairs, OptionsNone))
	got := map[string]int32{}
	for _, p := range outPairs.P {
		got[p.First] = p.Second
	}
	s.Equal(in.M, got)
}

func (s *PackRoundTripSuite) TestTuple() {
	type withTuple struct {
		T Tuple3[int32, string, bool]
	}
	in := withTuple{T: Tuple3[int32, string, bool]{V0: 1, V1: "two", V2: true}}
	var out withTuple
	s.roundTrip(OptionsNone, &in, &out)
	s.Equal(in, out)
}

func (s *PackRoundTripSuite) TestVariant() {
	type withVariant struct {
		V Variant3[int32, string, bool]
	}
	in := withVariant{V: NewVariant3V1[int32, string, bool]("chosen")}
	var out withVariant
	s.roundTrip(OptionsNone, &in, &out)
	s.Equal(1, out.V.Index)
	s.Equal("chosen", out.V.V1)
}

func (s *PackRoundTripSuite) TestDeprecatedFieldWritesSingleZeroByte() {
	type withDep struct {
		A int32
		D Deprecated[string]
		B int32
	}
	in := withDep{A: 1, D: Deprecated[string]{Value: "ignored"}, B: 2}
	buf, err := PackBytes(&in, OptionsNone)
	s.Require().NoError(err)
	// predecode (3<<2)|2, A, the single zero byte for D, B
	s.Equal([]byte{0x0E, 1, 0, 0, 0, 0, 2, 0, 0, 0}, buf)

	var out withDep
	s.Require().NoError(UnpackBytes(buf, &out, OptionsNone))
	s.EqualValues(1, out.A)
	s.EqualValues(2, out.B)
}

// TestDeprecatedFieldToleratesLiveWriter exercises deprecation neutrality
// (Testable Property 5) in the direction that matters most: a peer that has
// NOT deprecated the field yet writes a full live value, and a reader that
// HAS deprecated it must still decode every field after it correctly
// instead of getting desynced by a decode that assumes a single tombstone
// byte.
func (s *PackRoundTripSuite) TestDeprecatedFieldToleratesLiveWriter() {
	type liveStruct struct {
		A int32
		D string
		B int32
	}
	type depStruct struct {
		A int32
		D Deprecated[string]
		B int32
	}
	in := liveStruct{A: 1, D: "still here", B: 2}
	buf, err := PackBytes(&in, OptionsNone)
	s.Require().NoError(err)

	var out depStruct
	s.Require().NoError(UnpackBytes(buf, &out, OptionsNone))
	s.EqualValues(1, out.A)
	s.EqualValues(2, out.B)
}

func (s *PackRoundTripSuite) TestOmitFieldContributesNoArity() {
	type withOmit struct {
		A int32
		O Omit[string]
		B int32
	}
	in := withOmit{A: 5, O: Omit[string]{Value: "never encoded"}, B: 6}
	buf, err := PackBytes(&in, OptionsNone)
	s.Require().NoError(err)
	// predecode (2<<2)|2: only A and B count toward the field count
	s.Equal(byte(0x0A), buf[0])
	s.Len(buf, 9)

	var out withOmit
	s.Require().NoError(UnpackBytes(buf, &out, OptionsNone))
	s.EqualValues(5, out.A)
	s.EqualValues(6, out.B)
}

func TestPackBytesRejectsNonPointerUnpackDest(t *testing.T) {
	var x int
	err := UnpackBytes([]byte{1}, x, OptionsNone)
	require.Error(t, err)
}
