package record

import (
	"fmt"
	"slices"
	"time"
	"unicode/utf16"
)

// Kind classifies a Value by its structural shape.
type Kind int

const (
	KindScalar Kind = iota
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a sealed interface for nodes of a record tree.
// Only the types in this file implement it.
type Value interface {
	Kind() Kind
	recordValue()
}

// DateLike is implemented by scalars that have a canonical date/time text form.
type DateLike interface {
	Value
	ISOFormat() string
}

// Null is an explicit YAML null (or an empty document).
type Null struct{}

func (Null) Kind() Kind   { return KindScalar }
func (Null) recordValue() {}

// String is a string scalar.
type String string

func (String) Kind() Kind   { return KindScalar }
func (String) recordValue() {}

// Int is an integer scalar.
type Int int64

func (Int) Kind() Kind   { return KindScalar }
func (Int) recordValue() {}

// Float is a floating point scalar. Registry records carry measurements
// (wingspan, thrust, Mach numbers), so unlike integers these are common.
type Float float64

func (Float) Kind() Kind   { return KindScalar }
func (Float) recordValue() {}

// Bool is a boolean scalar.
type Bool bool

func (Bool) Kind() Kind   { return KindScalar }
func (Bool) recordValue() {}

// Timestamp is a YAML timestamp scalar such as `first_flight: 1997-09-07`.
//
// DateOnly is set when the source literal carried no time of day, Zoned when
// it carried an explicit offset. Both only affect ISOFormat.
type Timestamp struct {
	Time     time.Time
	DateOnly bool
	Zoned    bool
}

func (Timestamp) Kind() Kind   { return KindScalar }
func (Timestamp) recordValue() {}

// ISOFormat renders the timestamp the way registry tooling has always seen it:
// "2006-01-02" for dates, "2006-01-02T15:04:05" for naive date-times,
// microseconds only when non-zero and the offset only when the source had one.
func (t Timestamp) ISOFormat() string {
	if t.DateOnly {
		return t.Time.Format(time.DateOnly)
	}
	layout := "2006-01-02T15:04:05"
	if t.Time.Nanosecond()/1000 != 0 {
		layout += ".000000"
	}
	if t.Zoned {
		layout += "-07:00"
	}
	return t.Time.Format(layout)
}

// Sequence is an ordered list of values.
type Sequence []Value

func (Sequence) Kind() Kind   { return KindSequence }
func (Sequence) recordValue() {}

// Mapping is a set of uniquely keyed values.
// Use SortedKeys for deterministic iteration.
type Mapping map[string]Value

func (Mapping) Kind() Kind   { return KindMapping }
func (Mapping) recordValue() {}

// SortedKeys returns keys in RFC 8785 order (UTF-16 code units).
func (m Mapping) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

// compareUTF16 orders strings by UTF-16 code units rather than UTF-8 bytes.
// The two orders differ for characters outside the BMP.
func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}

var (
	_ DateLike = Timestamp{}
	_ Value    = Null{}
	_ Value    = String("")
	_ Value    = Int(0)
	_ Value    = Float(0)
	_ Value    = Bool(false)
	_ Value    = Sequence(nil)
	_ Value    = Mapping(nil)
)
