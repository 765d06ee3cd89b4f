// Package hostvalue exposes native Go values through the foreign-value
// protocol.
//
// Wrap maps Go kinds onto protocol capabilities: booleans, integers,
// floats and strings become the matching scalars, byte slices expose
// buffer elements, other slices and arrays expose array elements,
// string-keyed maps and structs expose members, time.Time carries the
// date, time, instant and time zone capabilities at once, and errors
// are exceptional. Composite wrappers report the Go type name as their
// meta qualified name, which is what kona.toml mappings key on.
package hostvalue

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"

	"github.com/chazu/kona/foreign"
)

// Wrap adapts a Go value to the foreign-value protocol. Values that
// already implement foreign.Value pass through, nil and nil pointers
// become the foreign null, and kinds with no protocol shape (channels,
// funcs, complex numbers) wrap opaquely with only a meta object.
func Wrap(value any) foreign.Value {
	if value == nil {
		return foreign.Null
	}
	switch v := value.(type) {
	case foreign.Value:
		return v
	case time.Time:
		return instant{t: v}
	case time.Duration:
		return span{d: v}
	case *time.Location:
		if v == nil {
			return foreign.Null
		}
		return zone{id: v.String()}
	case error:
		return exception{err: v}
	case []byte:
		return &buffer{b: v}
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return boolean{v: rv.Bool()}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return integer{v: rv.Int()}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u <= math.MaxInt64 {
			return integer{v: int64(u)}
		}
		return unsigned{v: u}

	case reflect.Float32, reflect.Float64:
		return floating{v: rv.Float()}

	case reflect.String:
		return str{s: rv.String()}

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return &buffer{b: rv.Bytes()}
		}
		return &array{v: rv}

	case reflect.Array:
		return &array{v: rv}

	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return &record{v: rv, name: rv.Type().String()}
		}

	case reflect.Pointer:
		if rv.IsNil() {
			return foreign.Null
		}
		if rv.Elem().Kind() == reflect.Struct {
			return &structure{v: rv.Elem(), name: rv.Type().Elem().String()}
		}
		return Wrap(rv.Elem().Interface())

	case reflect.Struct:
		return &structure{v: rv, name: rv.Type().String()}
	}

	return opaque{name: rv.Type().String()}
}

// ---------------------------------------------------------------------------
// Scalars
// ---------------------------------------------------------------------------

type boolean struct {
	foreign.Opaque
	v bool
}

func (b boolean) IsBoolean() bool          { return true }
func (b boolean) AsBoolean() (bool, error) { return b.v, nil }

// 2^63 is exactly representable as float64; 2^63-1 is not. The range
// guards below run before any float-to-integer conversion, which is
// implementation-defined when the float is out of range.
const (
	minLongDouble  = -9223372036854775808.0
	maxLongDouble  = 9223372036854775808.0
	maxUlongDouble = 18446744073709551616.0
)

type integer struct {
	foreign.Opaque
	v int64
}

func (n integer) IsNumber() bool    { return true }
func (n integer) FitsInByte() bool  { return n.v >= math.MinInt8 && n.v <= math.MaxInt8 }
func (n integer) FitsInShort() bool { return n.v >= math.MinInt16 && n.v <= math.MaxInt16 }
func (n integer) FitsInInt() bool   { return n.v >= math.MinInt32 && n.v <= math.MaxInt32 }
func (n integer) FitsInLong() bool  { return true }

func (n integer) FitsInFloat() bool {
	f := float64(float32(n.v))
	return f >= minLongDouble && f < maxLongDouble && int64(f) == n.v
}

func (n integer) FitsInDouble() bool {
	f := float64(n.v)
	return f >= minLongDouble && f < maxLongDouble && int64(f) == n.v
}

func (n integer) AsByte() (int8, error) {
	if !n.FitsInByte() {
		return 0, foreign.ErrUnsupported
	}
	return int8(n.v), nil
}

func (n integer) AsShort() (int16, error) {
	if !n.FitsInShort() {
		return 0, foreign.ErrUnsupported
	}
	return int16(n.v), nil
}

func (n integer) AsInt() (int32, error) {
	if !n.FitsInInt() {
		return 0, foreign.ErrUnsupported
	}
	return int32(n.v), nil
}

func (n integer) AsLong() (int64, error) { return n.v, nil }

func (n integer) AsFloat() (float32, error) {
	if !n.FitsInFloat() {
		return 0, foreign.ErrUnsupported
	}
	return float32(n.v), nil
}

func (n integer) AsDouble() (float64, error) {
	if !n.FitsInDouble() {
		return 0, foreign.ErrUnsupported
	}
	return float64(n.v), nil
}

// unsigned carries uint64 values above the int64 range. Nothing below
// double can hold them losslessly except the float widths, and those
// only when the value round-trips.
type unsigned struct {
	foreign.Opaque
	v uint64
}

func (n unsigned) IsNumber() bool { return true }

func (n unsigned) FitsInFloat() bool {
	f := float64(float32(n.v))
	return f >= 0 && f < maxUlongDouble && uint64(f) == n.v
}

func (n unsigned) FitsInDouble() bool {
	f := float64(n.v)
	return f >= 0 && f < maxUlongDouble && uint64(f) == n.v
}

func (n unsigned) AsFloat() (float32, error) {
	if !n.FitsInFloat() {
		return 0, foreign.ErrUnsupported
	}
	return float32(n.v), nil
}

func (n unsigned) AsDouble() (float64, error) {
	if !n.FitsInDouble() {
		return 0, foreign.ErrUnsupported
	}
	return float64(n.v), nil
}

type floating struct {
	foreign.Opaque
	v float64
}

func (n floating) IsNumber() bool { return true }

func (n floating) integral() bool {
	return !math.IsNaN(n.v) && !math.IsInf(n.v, 0) && math.Trunc(n.v) == n.v
}

func (n floating) FitsInByte() bool  { return n.integral() && n.v >= math.MinInt8 && n.v <= math.MaxInt8 }
func (n floating) FitsInShort() bool { return n.integral() && n.v >= math.MinInt16 && n.v <= math.MaxInt16 }
func (n floating) FitsInInt() bool   { return n.integral() && n.v >= math.MinInt32 && n.v <= math.MaxInt32 }
func (n floating) FitsInLong() bool {
	return n.integral() && n.v >= minLongDouble && n.v < maxLongDouble
}
func (n floating) FitsInFloat() bool {
	return math.IsNaN(n.v) || float64(float32(n.v)) == n.v
}
func (n floating) FitsInDouble() bool { return true }

func (n floating) AsByte() (int8, error) {
	if !n.FitsInByte() {
		return 0, foreign.ErrUnsupported
	}
	return int8(n.v), nil
}

func (n floating) AsShort() (int16, error) {
	if !n.FitsInShort() {
		return 0, foreign.ErrUnsupported
	}
	return int16(n.v), nil
}

func (n floating) AsInt() (int32, error) {
	if !n.FitsInInt() {
		return 0, foreign.ErrUnsupported
	}
	return int32(n.v), nil
}

func (n floating) AsLong() (int64, error) {
	if !n.FitsInLong() {
		return 0, foreign.ErrUnsupported
	}
	return int64(n.v), nil
}

func (n floating) AsFloat() (float32, error) {
	if !n.FitsInFloat() {
		return 0, foreign.ErrUnsupported
	}
	return float32(n.v), nil
}

func (n floating) AsDouble() (float64, error) { return n.v, nil }

type str struct {
	foreign.Opaque
	s string
}

func (v str) IsString() bool            { return true }
func (v str) AsString() (string, error) { return v.s, nil }

// ---------------------------------------------------------------------------
// Composites
// ---------------------------------------------------------------------------

type buffer struct {
	foreign.Opaque
	b []byte
}

func (v *buffer) HasBufferElements() bool    { return true }
func (v *buffer) BufferSize() (int64, error) { return int64(len(v.b)), nil }

func (v *buffer) ReadBufferByte(offset int64) (byte, error) {
	if offset < 0 || offset >= int64(len(v.b)) {
		return 0, fmt.Errorf("hostvalue: buffer offset %d out of range [0,%d)", offset, len(v.b))
	}
	return v.b[offset], nil
}

type array struct {
	foreign.Opaque
	v reflect.Value
}

func (v *array) HasArrayElements() bool    { return true }
func (v *array) ArraySize() (int64, error) { return int64(v.v.Len()), nil }

func (v *array) ReadArrayElement(index int64) (foreign.Value, error) {
	if index < 0 || index >= int64(v.v.Len()) {
		return nil, fmt.Errorf("hostvalue: array index %d out of range [0,%d)", index, v.v.Len())
	}
	return Wrap(v.v.Index(int(index)).Interface()), nil
}

// record is a string-keyed map exposed as members.
type record struct {
	foreign.Opaque
	v    reflect.Value
	name string
}

func (v *record) HasMembers() bool { return true }

func (v *record) MemberNames() ([]string, error) {
	names := make([]string, 0, v.v.Len())
	iter := v.v.MapRange()
	for iter.Next() {
		names = append(names, iter.Key().String())
	}
	sort.Strings(names)
	return names, nil
}

func (v *record) HasMember(name string) bool {
	return v.v.MapIndex(reflect.ValueOf(name).Convert(v.v.Type().Key())).IsValid()
}

func (v *record) ReadMember(name string) (foreign.Value, error) {
	mv := v.v.MapIndex(reflect.ValueOf(name).Convert(v.v.Type().Key()))
	if !mv.IsValid() {
		return nil, fmt.Errorf("hostvalue: no member %q", name)
	}
	return Wrap(mv.Interface()), nil
}

func (v *record) HasMetaObject() bool { return true }
func (v *record) MetaObject() (foreign.Value, error) {
	return metaObject{name: v.name}, nil
}

// structure exposes the exported fields of a struct as members.
type structure struct {
	foreign.Opaque
	v    reflect.Value
	name string
}

func (v *structure) HasMembers() bool { return true }

func (v *structure) MemberNames() ([]string, error) {
	t := v.v.Type()
	var names []string
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.IsExported() {
			names = append(names, f.Name)
		}
	}
	return names, nil
}

func (v *structure) HasMember(name string) bool {
	f, ok := v.v.Type().FieldByName(name)
	return ok && f.IsExported()
}

func (v *structure) ReadMember(name string) (foreign.Value, error) {
	f, ok := v.v.Type().FieldByName(name)
	if !ok || !f.IsExported() {
		return nil, fmt.Errorf("hostvalue: no member %q", name)
	}
	return Wrap(v.v.FieldByIndex(f.Index).Interface()), nil
}

func (v *structure) HasMetaObject() bool { return true }
func (v *structure) MetaObject() (foreign.Value, error) {
	return metaObject{name: v.name}, nil
}

// ---------------------------------------------------------------------------
// Temporals, exceptions, opaque leftovers
// ---------------------------------------------------------------------------

// instant is a time.Time, which answers the date, time, instant and
// time zone messages all at once.
type instant struct {
	foreign.Opaque
	t time.Time
}

func (v instant) IsDate() bool { return true }
func (v instant) AsDate() (foreign.Date, error) {
	y, m, d := v.t.Date()
	return foreign.Date{Year: y, Month: int(m), Day: d}, nil
}

func (v instant) IsTime() bool { return true }
func (v instant) AsTime() (foreign.TimeOfDay, error) {
	return foreign.TimeOfDay{
		Hour:   v.t.Hour(),
		Minute: v.t.Minute(),
		Second: v.t.Second(),
		Nano:   v.t.Nanosecond(),
	}, nil
}

func (v instant) IsInstant() bool               { return true }
func (v instant) AsInstant() (time.Time, error) { return v.t, nil }
func (v instant) IsTimeZone() bool              { return true }
func (v instant) AsTimeZone() (string, error)   { return v.t.Location().String(), nil }

type span struct {
	foreign.Opaque
	d time.Duration
}

func (v span) IsDuration() bool { return true }
func (v span) AsDuration() (foreign.Duration, error) {
	secs := int64(v.d / time.Second)
	nanos := int32(v.d % time.Second)
	if nanos < 0 {
		secs--
		nanos += int32(time.Second)
	}
	return foreign.Duration{Seconds: secs, Nanos: nanos}, nil
}

type zone struct {
	foreign.Opaque
	id string
}

func (v zone) IsTimeZone() bool            { return true }
func (v zone) AsTimeZone() (string, error) { return v.id, nil }

type exception struct {
	foreign.Opaque
	err error
}

func (v exception) IsException() bool { return true }

func (v exception) HasMetaObject() bool { return true }
func (v exception) MetaObject() (foreign.Value, error) {
	return metaObject{name: reflect.TypeOf(v.err).String()}, nil
}

type metaObject struct {
	foreign.Opaque
	name string
}

func (v metaObject) IsMetaObject() bool { return true }
func (v metaObject) MetaQualifiedName() (string, error) {
	return v.name, nil
}

// opaque covers kinds with no protocol shape. The meta object still
// names the Go type so failures stay diagnosable.
type opaque struct {
	foreign.Opaque
	name string
}

func (v opaque) HasMetaObject() bool { return true }
func (v opaque) MetaObject() (foreign.Value, error) {
	return metaObject{name: v.name}, nil
}
