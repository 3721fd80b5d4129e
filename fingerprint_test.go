package packall

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type fpStructA struct {
	X int32
	Y string
}

type fpStructRenamed struct {
	P int32 // same shape as fpStructA, different field names
	Q string
}

type fpStructExtra struct {
	X int32
	Y string
	Z bool
}

type fpTreeNode struct {
	Value    int32
	Children []*fpTreeNode
}

type FingerprintSuite struct {
	suite.Suite
}

func TestFingerprintSuite(t *testing.T) {
	suite.Run(t, new(FingerprintSuite))
}

func (s *FingerprintSuite) TestFieldNamesDontAffectFingerprint() {
	a := Fingerprint(reflect.TypeOf(fpStructA{}))
	b := Fingerprint(reflect.TypeOf(fpStructRenamed{}))
	s.Equal(a, b)
}

func (s *FingerprintSuite) TestDifferentShapeDiffers() {
	a := Fingerprint(reflect.TypeOf(fpStructA{}))
	c := Fingerprint(reflect.TypeOf(fpStructExtra{}))
	s.NotEqual(a, c)
}

func (s *FingerprintSuite) TestSelfReferentialStructDoesNotHang() {
	done := make(chan uint32, 1)
	go func() {
		done <- Fingerprint(reflect.TypeOf(fpTreeNode{}))
	}()
	select {
	case v := <-done:
		s.NotZero(v)
	case <-time.After(2 * time.Second):
		s.Fail("Fingerprint of a self-referential type did not terminate")
	}
}

func (s *FingerprintSuite) TestInt32AndCharAreDistinctShapes() {
	type withS32 struct{ V int32 }
	type withCh struct{ V Char }
	s32 := Fingerprint(reflect.TypeOf(withS32{}))
	ch := Fingerprint(reflect.TypeOf(withCh{}))
	s.NotEqual(s32, ch)
}

func (s *FingerprintSuite) TestStableAcrossCalls() {
	t1 := Fingerprint(reflect.TypeOf(fpStructA{}))
	t2 := Fingerprint(reflect.TypeOf(fpStructA{}))
	s.Equal(t1, t2)
}
