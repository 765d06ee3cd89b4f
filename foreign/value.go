package foreign

import (
	"errors"
	"time"
)

// ErrUnsupported is returned by accessors for messages a value does not
// support.
var ErrUnsupported = errors.New("foreign: unsupported message")

// Date is a civil date as reported by a foreign value.
type Date struct {
	Year  int
	Month int // 1..12
	Day   int // 1..31
}

// TimeOfDay is a wall-clock time as reported by a foreign value.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
	Nano   int
}

// Duration is an exact span of seconds plus a nanosecond adjustment.
// It is deliberately not time.Duration, which caps out around 292 years.
type Duration struct {
	Seconds int64
	Nanos   int32 // 0..999999999
}

// Value is the foreign-value capability protocol.
//
// Predicates report which capabilities a value holds and never fail.
// Accessors read the data behind a capability and fail with an error
// (conventionally ErrUnsupported) when the capability is absent.
type Value interface {
	IsNull() bool

	IsBoolean() bool
	AsBoolean() (bool, error)

	IsNumber() bool
	FitsInByte() bool
	FitsInShort() bool
	FitsInInt() bool
	FitsInLong() bool
	FitsInFloat() bool
	FitsInDouble() bool
	AsByte() (int8, error)
	AsShort() (int16, error)
	AsInt() (int32, error)
	AsLong() (int64, error)
	AsFloat() (float32, error)
	AsDouble() (float64, error)

	IsString() bool
	AsString() (string, error)

	// IsException marks values that represent a failure in their origin
	// system. There is no accessor; exceptional foreign values are
	// carried whole.
	IsException() bool

	HasArrayElements() bool
	ArraySize() (int64, error)
	ReadArrayElement(index int64) (Value, error)

	HasBufferElements() bool
	BufferSize() (int64, error)
	ReadBufferByte(offset int64) (byte, error)

	HasMembers() bool
	MemberNames() ([]string, error)
	HasMember(name string) bool
	ReadMember(name string) (Value, error)

	// HasMetaObject reports whether the value carries a description of
	// its own type in the origin system. MetaQualifiedName is asked of
	// the meta object itself (IsMetaObject true), not of the value.
	HasMetaObject() bool
	MetaObject() (Value, error)
	IsMetaObject() bool
	MetaQualifiedName() (string, error)

	IsDate() bool
	AsDate() (Date, error)
	IsTime() bool
	AsTime() (TimeOfDay, error)
	IsInstant() bool
	AsInstant() (time.Time, error)
	IsDuration() bool
	AsDuration() (Duration, error)
	IsTimeZone() bool
	AsTimeZone() (string, error)
}

type nullValue struct{ Opaque }

func (nullValue) IsNull() bool { return true }

// Null is a foreign value whose only capability is being null.
var Null Value = nullValue{}
