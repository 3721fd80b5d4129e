package packall

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type textFixture struct {
	Name   string
	Count  int32
	Tags   []string
	Scores map[string]int32
}

type TextRoundTripSuite struct {
	suite.Suite
}

func TestTextRoundTripSuite(t *testing.T) {
	suite.Run(t, new(TextRoundTripSuite))
}

func (s *TextRoundTripSuite) TestAggregateRoundTrip() {
	in := textFixture{
		Name:   "widget",
		Count:  3,
		Tags:   []string{"a", "b"},
		Scores: map[string]int32{"x": 1, "y": 2},
	}
	text, err := Format(&in, FormatOptions{})
	s.Require().NoError(err)

	var out textFixture
	s.Require().NoError(Parse(text, &out, DefaultParseOptions()))
	s.Equal(in, out)
}

func (s *TextRoundTripSuite) TestCharRoundTrip() {
	type withChar struct {
		C Char
	}
	in := withChar{C: Char('Q')}
	text, err := Format(&in, FormatOptions{})
	s.Require().NoError(err)

	var out withChar
	s.Require().NoError(Parse(text, &out, DefaultParseOptions()))
	s.Equal(in, out)
}

func (s *TextRoundTripSuite) TestLongBracketStringForMultiline() {
	type withMultiline struct {
		Body string
	}
	in := withMultiline{Body: "line one\nline two"}
	text, err := Format(&in, FormatOptions{})
	s.Require().NoError(err)
	s.Contains(text, "[[")

	var out withMultiline
	s.Require().NoError(Parse(text, &out, DefaultParseOptions()))
	s.Equal(in.Body, out.Body)
}

func (s *TextRoundTripSuite) TestLongBracketCollisionAvoidance() {
	s.Equal("[[abc]]", (&formatState{}).wrapLongBracketForTest("abc"))
	s.Equal("[=[a]]b]=]", (&formatState{}).wrapLongBracketForTest("a]]b"))
}

func (s *TextRoundTripSuite) TestNilOptional() {
	type withOpt struct {
		V Optional[int32]
	}
	in := withOpt{V: None[int32]()}
	text, err := Format(&in, FormatOptions{})
	s.Require().NoError(err)

	var out withOpt
	out.V = Some[int32](1)
	s.Require().NoError(Parse(text, &out, DefaultParseOptions()))
	s.False(out.V.Valid)
}

func (s *TextRoundTripSuite) TestHexIntegerLiteral() {
	type withInt struct {
		V int32
	}
	var out withInt
	s.Require().NoError(Parse("{ V = 0xFF }", &out, DefaultParseOptions()))
	s.EqualValues(255, out.V)
}

func (s *TextRoundTripSuite) TestUnknownKeySkippedByDefault() {
	type small struct {
		A int32
	}
	var out small
	err := Parse(`{ A = 1, B = { 1, 2, "x" }, C = 3 }`, &out, DefaultParseOptions())
	s.Require().NoError(err)
	s.EqualValues(1, out.A)
}

func (s *TextRoundTripSuite) TestUnknownKeyRejectedWhenDisallowed() {
	type small struct {
		A int32
	}
	var out small
	opts := DefaultParseOptions()
	opts.AllowUnknownKeys = false
	err := Parse(`{ A = 1, B = 2 }`, &out, opts)
	s.Error(err)
}

func (s *TextRoundTripSuite) TestVariantTextForm() {
	type withVariant struct {
		V Variant2[int32, string]
	}
	in := withVariant{V: NewVariant2V1[int32, string]("hi")}
	text, err := Format(&in, FormatOptions{})
	s.Require().NoError(err)

	var out withVariant
	s.Require().NoError(Parse(text, &out, DefaultParseOptions()))
	s.Equal(1, out.V.Index)
	s.Equal("hi", out.V.V1)
}

// wrapLongBracketForTest exposes writeLongBracket's string result without
// going through the full formatState/Format plumbing.
func (fw *formatState) wrapLongBracketForTest(s string) string {
	fw.sb.Reset()
	fw.writeLongBracket(s)
	return fw.sb.String()
}
