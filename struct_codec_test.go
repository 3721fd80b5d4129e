package packall

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type bcStructV1 struct {
	A int32
}

func (bcStructV1) PackTraits() Traits { return TraitBackwardsCompatible }

type bcStructV2 struct {
	A int32
	B int32
}

func (bcStructV2) PackTraits() Traits { return TraitBackwardsCompatible }

type plainStructV1 struct {
	A int32
}

type plainStructV2 struct {
	A int32
	B int32
}

type immutableStruct struct {
	A int32
}

func (immutableStruct) PackTraits() Traits { return TraitImmutable }

type SchemaEvolutionSuite struct {
	suite.Suite
}

func TestSchemaEvolutionSuite(t *testing.T) {
	suite.Run(t, new(SchemaEvolutionSuite))
}

func (s *SchemaEvolutionSuite) TestBackwardsCompatibleReaderSkipsUnknownTrailingField() {
	in := bcStructV2{A: 1, B: 2}
	buf, err := PackBytes(&in, OptionsNone)
	s.Require().NoError(err)

	var out bcStructV1
	s.Require().NoError(UnpackBytes(buf, &out, OptionsNone))
	s.EqualValues(1, out.A)
}

func (s *SchemaEvolutionSuite) TestNonBackwardsCompatibleArityMismatchIsIncompatible() {
	in := plainStructV2{A: 1, B: 2}
	buf, err := PackBytes(&in, OptionsNone)
	s.Require().NoError(err)

	var out plainStructV1
	err = UnpackBytes(buf, &out, OptionsNone)
	s.Require().Error(err)
	s.Equal(StatusIncompatible, StatusOf(err))
}

func (s *SchemaEvolutionSuite) TestOlderWriterNewerReaderLeavesZeroValue() {
	in := plainStructV1{A: 7}
	buf, err := PackBytes(&in, OptionsNone)
	s.Require().NoError(err)

	var out plainStructV2
	s.Require().NoError(UnpackBytes(buf, &out, OptionsNone))
	s.EqualValues(7, out.A)
	s.EqualValues(0, out.B)
}

func (s *SchemaEvolutionSuite) TestTupleArityExceedsReaderIsIncompatible() {
	in := Tuple3[int32, int32, int32]{V0: 1, V1: 2, V2: 3}
	buf, err := PackBytes(&in, OptionsNone)
	s.Require().NoError(err)

	var out Tuple2[int32, int32]
	err = UnpackBytes(buf, &out, OptionsNone)
	s.Require().Error(err)
	s.Equal(StatusIncompatible, StatusOf(err))
}

func (s *SchemaEvolutionSuite) TestVariantDiscriminantIsSzEncoded() {
	in := NewVariant2V0[int32, string](1)
	buf, err := PackBytes(&in, OptionsNone)
	s.Require().NoError(err)
	// index 0 -> sz(0) -> wire byte 0x01, then the int32 payload.
	s.Equal(byte(0x01), buf[0])

	var out Variant2[int32, string]
	s.Require().NoError(UnpackBytes(buf, &out, OptionsNone))
	s.Equal(0, out.Index)
	s.EqualValues(1, out.V0)
}

func (s *SchemaEvolutionSuite) TestImmutableAggregateHasNoPredecodeByte() {
	in := immutableStruct{A: 0x11223344}
	buf, err := PackBytes(&in, OptionsNone)
	s.Require().NoError(err)
	s.Len(buf, 4)

	var out immutableStruct
	s.Require().NoError(UnpackBytes(buf, &out, OptionsNone))
	s.Equal(in, out)
}
