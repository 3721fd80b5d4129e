package packall

// Options selects the wire encoding mode for a top-level Pack/Unpack call.
type Options uint8

const (
	OptionsNone Options = 0
	// OptionsVariableLength selects varint+zigzag encoding for multi-byte
	// integers instead of raw fixed-width little-endian.
	OptionsVariableLength Options = 1
)

func (o Options) Variable() bool { return o&OptionsVariableLength != 0 }

// Traits are compile-time-ish (here: declared via an optional interface)
// markers on an aggregate that change its framing.
type Traits uint8

const (
	TraitNone Traits = 0
	// TraitBackwardsCompatible adds a 4-byte tail-size after the predecode
	// byte, letting readers skip unknown trailing fields.
	TraitBackwardsCompatible Traits = 1
	// TraitImmutable drops the predecode byte entirely; fields are
	// concatenated raw. The schema of such a struct may never change again.
	TraitImmutable Traits = 2
)

func (t Traits) Has(f Traits) bool { return t&f != 0 }

// TraitedType is implemented by aggregates that declare non-default Traits.
// Mirrors the reference implementation's static_assert-enforced
// struct_traits<T>::Traits constant, expressed in Go as a method instead of
// a compile-time constant since Go has no equivalent of a static struct
// member usable at the type level.
type TraitedType interface {
	PackTraits() Traits
}

// AritySetter lets a type declare its own field count instead of relying on
// reflect.NumField, mirroring the reference's explicit `Arity` escape hatch
// (used there to route around aggregate-arity-inference overshoot; in Go the
// escape hatch instead exists for tuple-like or custom-layout types).
type AritySetter interface {
	PackArity() int
}

// PostDecoder is invoked after a struct finishes unpacking, letting the value
// validate or derive dependent state. Mirrors the reference's post_decode().
type PostDecoder interface {
	PostDecode() error
}

// MaxContainerSize bounds every decoded list/set/map/array length, matching
// the reference's kMaximumVectorSize. Decoding a declared length beyond this
// fails with StatusOutOfMemory before any allocation happens.
var MaxContainerSize = 1_000_000

// DefaultMaxDepth bounds text-parser recursion (nested tables).
const DefaultMaxDepth = 256

// ParseOptions configures the text parser.
type ParseOptions struct {
	MaxDepth                  int
	AllowUnknownKeys          bool
	AllowUnknownVariantValues bool
	AllowUnknownTupleElements bool
	AllowExtraArrayEntries    bool
	SkipInitialScope          bool
}

// DefaultParseOptions matches the reference's parse_options defaults.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		MaxDepth:                  DefaultMaxDepth,
		AllowUnknownKeys:          true,
		AllowUnknownVariantValues: true,
		AllowUnknownTupleElements: true,
		AllowExtraArrayEntries:    true,
	}
}

// FormatOptions configures the text formatter.
type FormatOptions struct {
	OmitDefault      bool
	OmitNames        bool
	SkipInitialScope bool
}
