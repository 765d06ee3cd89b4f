package wirevalue

import (
	"fmt"
	"time"

	"github.com/chazu/kona/foreign"
	"github.com/chazu/kona/foreign/hostvalue"
)

// Value exposes the snapshot through the foreign-value protocol.
// Numeric snapshots answer the fits and as messages exactly like the
// host scalar they were captured from.
func (s *Snapshot) Value() foreign.Value {
	if s == nil || s.Caps&CapNull != 0 {
		return foreign.Null
	}
	v := &snapValue{s: s}
	switch {
	case s.Caps&CapLong != 0:
		v.num = hostvalue.Wrap(s.Long)
	case s.Caps&CapDouble != 0:
		v.num = hostvalue.Wrap(s.Double)
	}
	return v
}

type snapValue struct {
	foreign.Opaque
	s   *Snapshot
	num foreign.Value
}

func (v *snapValue) IsBoolean() bool { return v.s.Caps&CapBoolean != 0 }

func (v *snapValue) AsBoolean() (bool, error) {
	if !v.IsBoolean() {
		return false, foreign.ErrUnsupported
	}
	return v.s.Bool, nil
}

func (v *snapValue) IsNumber() bool { return v.num != nil }

func (v *snapValue) FitsInByte() bool   { return v.num != nil && v.num.FitsInByte() }
func (v *snapValue) FitsInShort() bool  { return v.num != nil && v.num.FitsInShort() }
func (v *snapValue) FitsInInt() bool    { return v.num != nil && v.num.FitsInInt() }
func (v *snapValue) FitsInLong() bool   { return v.num != nil && v.num.FitsInLong() }
func (v *snapValue) FitsInFloat() bool  { return v.num != nil && v.num.FitsInFloat() }
func (v *snapValue) FitsInDouble() bool { return v.num != nil && v.num.FitsInDouble() }

func (v *snapValue) AsByte() (int8, error) {
	if v.num == nil {
		return 0, foreign.ErrUnsupported
	}
	return v.num.AsByte()
}

func (v *snapValue) AsShort() (int16, error) {
	if v.num == nil {
		return 0, foreign.ErrUnsupported
	}
	return v.num.AsShort()
}

func (v *snapValue) AsInt() (int32, error) {
	if v.num == nil {
		return 0, foreign.ErrUnsupported
	}
	return v.num.AsInt()
}

func (v *snapValue) AsLong() (int64, error) {
	if v.num == nil {
		return 0, foreign.ErrUnsupported
	}
	return v.num.AsLong()
}

func (v *snapValue) AsFloat() (float32, error) {
	if v.num == nil {
		return 0, foreign.ErrUnsupported
	}
	return v.num.AsFloat()
}

func (v *snapValue) AsDouble() (float64, error) {
	if v.num == nil {
		return 0, foreign.ErrUnsupported
	}
	return v.num.AsDouble()
}

func (v *snapValue) IsString() bool { return v.s.Caps&CapString != 0 }

func (v *snapValue) AsString() (string, error) {
	if !v.IsString() {
		return "", foreign.ErrUnsupported
	}
	return v.s.Str, nil
}

func (v *snapValue) IsException() bool { return v.s.Caps&CapException != 0 }

func (v *snapValue) HasBufferElements() bool { return v.s.Caps&CapBuffer != 0 }

func (v *snapValue) BufferSize() (int64, error) {
	if !v.HasBufferElements() {
		return 0, foreign.ErrUnsupported
	}
	return int64(len(v.s.Buffer)), nil
}

func (v *snapValue) ReadBufferByte(offset int64) (byte, error) {
	if !v.HasBufferElements() {
		return 0, foreign.ErrUnsupported
	}
	if offset < 0 || offset >= int64(len(v.s.Buffer)) {
		return 0, fmt.Errorf("wirevalue: buffer offset %d out of range [0,%d)", offset, len(v.s.Buffer))
	}
	return v.s.Buffer[offset], nil
}

func (v *snapValue) HasArrayElements() bool { return v.s.Caps&CapArray != 0 }

func (v *snapValue) ArraySize() (int64, error) {
	if !v.HasArrayElements() {
		return 0, foreign.ErrUnsupported
	}
	return int64(len(v.s.Array)), nil
}

func (v *snapValue) ReadArrayElement(index int64) (foreign.Value, error) {
	if !v.HasArrayElements() {
		return nil, foreign.ErrUnsupported
	}
	if index < 0 || index >= int64(len(v.s.Array)) {
		return nil, fmt.Errorf("wirevalue: array index %d out of range [0,%d)", index, len(v.s.Array))
	}
	return v.s.Array[index].Value(), nil
}

func (v *snapValue) HasMembers() bool { return v.s.Caps&CapMembers != 0 }

func (v *snapValue) MemberNames() ([]string, error) {
	if !v.HasMembers() {
		return nil, foreign.ErrUnsupported
	}
	names := make([]string, len(v.s.Members))
	for i, m := range v.s.Members {
		names[i] = m.Name
	}
	return names, nil
}

func (v *snapValue) HasMember(name string) bool {
	if !v.HasMembers() {
		return false
	}
	for _, m := range v.s.Members {
		if m.Name == name {
			return true
		}
	}
	return false
}

func (v *snapValue) ReadMember(name string) (foreign.Value, error) {
	if !v.HasMembers() {
		return nil, foreign.ErrUnsupported
	}
	for _, m := range v.s.Members {
		if m.Name == name {
			return m.Value.Value(), nil
		}
	}
	return nil, fmt.Errorf("wirevalue: no member %q", name)
}

func (v *snapValue) HasMetaObject() bool { return v.s.Caps&CapMeta != 0 }

func (v *snapValue) MetaObject() (foreign.Value, error) {
	if !v.HasMetaObject() {
		return nil, foreign.ErrUnsupported
	}
	return metaObject{name: v.s.MetaName}, nil
}

func (v *snapValue) IsDate() bool { return v.s.Caps&CapDate != 0 }

func (v *snapValue) AsDate() (foreign.Date, error) {
	if !v.IsDate() || v.s.Date == nil {
		return foreign.Date{}, foreign.ErrUnsupported
	}
	return foreign.Date{Year: v.s.Date.Year, Month: v.s.Date.Month, Day: v.s.Date.Day}, nil
}

func (v *snapValue) IsTime() bool { return v.s.Caps&CapTime != 0 }

func (v *snapValue) AsTime() (foreign.TimeOfDay, error) {
	if !v.IsTime() || v.s.Time == nil {
		return foreign.TimeOfDay{}, foreign.ErrUnsupported
	}
	t := v.s.Time
	return foreign.TimeOfDay{Hour: t.Hour, Minute: t.Minute, Second: t.Second, Nano: t.Nano}, nil
}

func (v *snapValue) IsInstant() bool { return v.s.Caps&CapInstant != 0 }

func (v *snapValue) AsInstant() (time.Time, error) {
	if !v.IsInstant() || v.s.Instant == nil {
		return time.Time{}, foreign.ErrUnsupported
	}
	return time.Unix(v.s.Instant.Seconds, int64(v.s.Instant.Nanos)).UTC(), nil
}

func (v *snapValue) IsDuration() bool { return v.s.Caps&CapDuration != 0 }

func (v *snapValue) AsDuration() (foreign.Duration, error) {
	if !v.IsDuration() || v.s.Duration == nil {
		return foreign.Duration{}, foreign.ErrUnsupported
	}
	return foreign.Duration{Seconds: v.s.Duration.Seconds, Nanos: v.s.Duration.Nanos}, nil
}

func (v *snapValue) IsTimeZone() bool { return v.s.Caps&CapZone != 0 }

func (v *snapValue) AsTimeZone() (string, error) {
	if !v.IsTimeZone() {
		return "", foreign.ErrUnsupported
	}
	return v.s.Zone, nil
}

type metaObject struct {
	foreign.Opaque
	name string
}

func (v metaObject) IsMetaObject() bool { return true }
func (v metaObject) MetaQualifiedName() (string, error) {
	return v.name, nil
}
