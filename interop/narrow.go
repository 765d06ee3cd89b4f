package interop

import (
	"math"
	"time"

	"github.com/chazu/kona/foreign"
	"github.com/chazu/kona/meta"
)

// The must* helpers read accessors whose paired predicate promised
// success. A failure there is a broken foreign value, so they panic
// with *ContractViolationError.

func mustBoolean(v foreign.Value) bool {
	b, err := v.AsBoolean()
	if err != nil {
		panic(&ContractViolationError{Predicate: "IsBoolean", Accessor: "AsBoolean", Err: err})
	}
	return b
}

func mustByte(v foreign.Value) int8 {
	b, err := v.AsByte()
	if err != nil {
		panic(&ContractViolationError{Predicate: "FitsInByte", Accessor: "AsByte", Err: err})
	}
	return b
}

func mustShort(v foreign.Value) int16 {
	s, err := v.AsShort()
	if err != nil {
		panic(&ContractViolationError{Predicate: "FitsInShort", Accessor: "AsShort", Err: err})
	}
	return s
}

func mustInt(v foreign.Value) int32 {
	i, err := v.AsInt()
	if err != nil {
		panic(&ContractViolationError{Predicate: "FitsInInt", Accessor: "AsInt", Err: err})
	}
	return i
}

func mustLong(v foreign.Value) int64 {
	l, err := v.AsLong()
	if err != nil {
		panic(&ContractViolationError{Predicate: "FitsInLong", Accessor: "AsLong", Err: err})
	}
	return l
}

func mustFloat(v foreign.Value) float32 {
	f, err := v.AsFloat()
	if err != nil {
		panic(&ContractViolationError{Predicate: "FitsInFloat", Accessor: "AsFloat", Err: err})
	}
	return f
}

func mustDouble(v foreign.Value) float64 {
	d, err := v.AsDouble()
	if err != nil {
		panic(&ContractViolationError{Predicate: "FitsInDouble", Accessor: "AsDouble", Err: err})
	}
	return d
}

func mustString(v foreign.Value) string {
	s, err := v.AsString()
	if err != nil {
		panic(&ContractViolationError{Predicate: "IsString", Accessor: "AsString", Err: err})
	}
	return s
}

func mustDate(v foreign.Value) foreign.Date {
	d, err := v.AsDate()
	if err != nil {
		panic(&ContractViolationError{Predicate: "IsDate", Accessor: "AsDate", Err: err})
	}
	return d
}

func mustTime(v foreign.Value) foreign.TimeOfDay {
	t, err := v.AsTime()
	if err != nil {
		panic(&ContractViolationError{Predicate: "IsTime", Accessor: "AsTime", Err: err})
	}
	return t
}

func mustInstant(v foreign.Value) time.Time {
	t, err := v.AsInstant()
	if err != nil {
		panic(&ContractViolationError{Predicate: "IsInstant", Accessor: "AsInstant", Err: err})
	}
	return t
}

func mustDuration(v foreign.Value) foreign.Duration {
	d, err := v.AsDuration()
	if err != nil {
		panic(&ContractViolationError{Predicate: "IsDuration", Accessor: "AsDuration", Err: err})
	}
	return d
}

func mustTimeZone(v foreign.Value) string {
	z, err := v.AsTimeZone()
	if err != nil {
		panic(&ContractViolationError{Predicate: "IsTimeZone", Accessor: "AsTimeZone", Err: err})
	}
	return z
}

// Host scalars arrive as raw Go values and carry no protocol, so the
// engine decides fit itself. Fit means lossless: an integer fits a
// floating width only if it round-trips, a float fits an integer width
// only if it is integral and in range.

// 2^63 is exactly representable as float64; 2^63-1 is not. The
// exclusive upper bound keeps the range check honest.
const (
	minLongDouble = -9223372036854775808.0
	maxLongDouble = 9223372036854775808.0
)

func hostLong(value any) (int64, bool) {
	switch v := value.(type) {
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}

func hostDouble(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func longFitsByte(v int64) bool  { return v >= math.MinInt8 && v <= math.MaxInt8 }
func longFitsShort(v int64) bool { return v >= math.MinInt16 && v <= math.MaxInt16 }
func longFitsInt(v int64) bool   { return v >= math.MinInt32 && v <= math.MaxInt32 }

// The round-trip checks below guard the range before converting back:
// converting an out-of-range float to int64 is implementation-defined.

func longFitsFloat(v int64) bool {
	f := float64(float32(v))
	return f >= minLongDouble && f < maxLongDouble && int64(f) == v
}

func longFitsDouble(v int64) bool {
	f := float64(v)
	return f >= minLongDouble && f < maxLongDouble && int64(f) == v
}

func doubleIsIntegral(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Trunc(v) == v
}

func doubleFitsLong(v float64) bool {
	return doubleIsIntegral(v) && v >= minLongDouble && v < maxLongDouble
}

func doubleFitsFloat(v float64) bool {
	return math.IsNaN(v) || float64(float32(v)) == v
}

// singleUTF16 extracts the sole UTF-16 code unit of s. Strings that
// decode to anything but one basic-plane rune do not narrow to char.
func singleUTF16(s string) (uint16, bool) {
	rs := []rune(s)
	if len(rs) != 1 || rs[0] > 0xFFFF {
		return 0, false
	}
	return uint16(rs[0]), true
}

// boxSmallest boxes a foreign number at the narrowest width it fits,
// probing ascending byte through double. The produced box class is
// observable afterwards, so the order is contractual. Accessor
// failures fold into a plain miss here; Number coercion treats a lying
// fits-report as unsupported rather than broken.
func boxSmallest(m *meta.Meta, v foreign.Value) (*meta.Object, bool) {
	switch {
	case v.FitsInByte():
		if b, err := v.AsByte(); err == nil {
			return m.BoxByte(b), true
		}
	case v.FitsInShort():
		if s, err := v.AsShort(); err == nil {
			return m.BoxShort(s), true
		}
	case v.FitsInInt():
		if i, err := v.AsInt(); err == nil {
			return m.BoxInt(i), true
		}
	case v.FitsInLong():
		if l, err := v.AsLong(); err == nil {
			return m.BoxLong(l), true
		}
	case v.FitsInFloat():
		if f, err := v.AsFloat(); err == nil {
			return m.BoxFloat(f), true
		}
	case v.FitsInDouble():
		if d, err := v.AsDouble(); err == nil {
			return m.BoxDouble(d), true
		}
	}
	return nil, false
}
