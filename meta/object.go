package meta

import (
	"fmt"

	"github.com/chazu/kona/foreign"
)

// ---------------------------------------------------------------------------
// Object: managed reference values
// ---------------------------------------------------------------------------

// Object is a managed reference: an instance of a class, a box, a
// managed string, a date/time value, a wrapped foreign value, or the
// null reference.
type Object struct {
	class  *Class             // nil for null references
	fval   foreign.Value      // original foreign value for wrapped handles
	data   any                // payload; see the constructors for shapes
	fields map[string]*Object // dynamic field storage for instances
}

// Null is the managed null reference.
var Null = &Object{}

// IsNull reports whether o is a null reference. Wrapped foreign nulls
// are null references that retain their foreign identity.
func (o *Object) IsNull() bool {
	return o == nil || o.class == nil
}

// Class returns the dynamic class of o, nil for null references.
func (o *Object) Class() *Class {
	if o == nil {
		return nil
	}
	return o.class
}

// IsForeign reports whether o wraps a foreign value.
func (o *Object) IsForeign() bool {
	return o != nil && o.fval != nil
}

// Foreign returns the foreign value behind a wrapped handle, nil for
// purely managed objects.
func (o *Object) Foreign() foreign.Value {
	if o == nil {
		return nil
	}
	return o.fval
}

// Unbox returns the payload of boxes, managed strings and date/time
// objects, nil for everything else.
func (o *Object) Unbox() any {
	if o == nil {
		return nil
	}
	return o.data
}

// StringValue returns the payload of a managed string. It panics when o
// is not a managed string.
func (o *Object) StringValue() string {
	s, ok := o.Unbox().(string)
	if !ok {
		panic("meta: StringValue on non-string object")
	}
	return s
}

func (o *Object) String() string {
	switch {
	case o.IsNull():
		if o != nil && o.fval != nil {
			return "foreign null"
		}
		return "null"
	case o.fval != nil:
		return "foreign " + o.class.Name
	case o.data != nil:
		return fmt.Sprintf("%s(%v)", o.class.Name, o.data)
	default:
		return o.class.Name
	}
}

// NewForeign wraps a foreign value as a managed handle of the given
// class. The original value stays reachable through Foreign.
func NewForeign(class *Class, v foreign.Value) *Object {
	return &Object{class: class, fval: v}
}

// NewForeignNull wraps a foreign null, preserving its identity.
func NewForeignNull(v foreign.Value) *Object {
	return &Object{fval: v}
}

// NewInstance creates an empty instance of class with dynamic field
// storage, populated through SetField.
func NewInstance(class *Class) *Object {
	return &Object{class: class, fields: make(map[string]*Object)}
}

// SetField stores a field value on an instance created by NewInstance.
func (o *Object) SetField(name string, v *Object) {
	if o == nil || o.fields == nil {
		panic("meta: SetField on non-instance object")
	}
	o.fields[name] = v
}

// FieldValue returns the named field of an instance, Null when unset or
// when o has no field storage.
func (o *Object) FieldValue(name string) *Object {
	if o == nil || o.fields == nil {
		return Null
	}
	if v, ok := o.fields[name]; ok {
		return v
	}
	return Null
}

// ---------------------------------------------------------------------------
// Well-known object constructors
// ---------------------------------------------------------------------------

// DateTimeParts is the payload of kona.time.LocalDateTime objects.
type DateTimeParts struct {
	Date *Object
	Time *Object
}

// ZonedParts is the payload of kona.time.ZonedDateTime objects.
type ZonedParts struct {
	Instant *Object
	Zone    *Object
}

// InstantParts is the payload of kona.time.Instant objects.
type InstantParts struct {
	Seconds int64
	Nanos   int32
}

func (m *Meta) BoxBoolean(v bool) *Object   { return &Object{class: m.Boolean, data: v} }
func (m *Meta) BoxByte(v int8) *Object      { return &Object{class: m.Byte, data: v} }
func (m *Meta) BoxShort(v int16) *Object    { return &Object{class: m.Short, data: v} }
func (m *Meta) BoxChar(v uint16) *Object    { return &Object{class: m.Character, data: v} }
func (m *Meta) BoxInt(v int32) *Object      { return &Object{class: m.Integer, data: v} }
func (m *Meta) BoxLong(v int64) *Object     { return &Object{class: m.Long, data: v} }
func (m *Meta) BoxFloat(v float32) *Object  { return &Object{class: m.Float, data: v} }
func (m *Meta) BoxDouble(v float64) *Object { return &Object{class: m.Double, data: v} }

// NewString returns a managed string.
func (m *Meta) NewString(s string) *Object {
	return &Object{class: m.String, data: s}
}

// NewForeignException wraps an exceptional foreign value as a guest
// ForeignException instance.
func (m *Meta) NewForeignException(v foreign.Value) *Object {
	return &Object{class: m.ForeignException, fval: v}
}

// NewLocalDate builds a guest LocalDate from civil date parts.
func (m *Meta) NewLocalDate(d foreign.Date) *Object {
	return &Object{class: m.LocalDate, data: d}
}

// NewLocalTime builds a guest LocalTime from wall-clock parts.
func (m *Meta) NewLocalTime(t foreign.TimeOfDay) *Object {
	return &Object{class: m.LocalTime, data: t}
}

// NewLocalDateTime composes a guest LocalDateTime from guest date and
// time objects.
func (m *Meta) NewLocalDateTime(date, tod *Object) *Object {
	return &Object{class: m.LocalDateTime, data: DateTimeParts{Date: date, Time: tod}}
}

// NewInstant builds a guest Instant from an epoch second and the
// nanosecond adjustment within that second.
func (m *Meta) NewInstant(seconds int64, nanos int32) *Object {
	return &Object{class: m.Instant, data: InstantParts{Seconds: seconds, Nanos: nanos}}
}

// NewZoneID builds a guest ZoneId carrying the zone id string verbatim.
func (m *Meta) NewZoneID(id string) *Object {
	return &Object{class: m.ZoneID, data: id}
}

// NewZonedDateTime composes a guest ZonedDateTime from guest instant
// and zone objects.
func (m *Meta) NewZonedDateTime(instant, zone *Object) *Object {
	return &Object{class: m.ZonedDateTime, data: ZonedParts{Instant: instant, Zone: zone}}
}

// NewDuration builds a guest Duration carrying exact seconds and nanos.
func (m *Meta) NewDuration(d foreign.Duration) *Object {
	return &Object{class: m.Duration, data: d}
}

// NewUtilDate builds a legacy kona.util.Date from a guest instant.
func (m *Meta) NewUtilDate(instant *Object) *Object {
	return &Object{class: m.UtilDate, data: instant}
}
