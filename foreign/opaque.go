package foreign

import "time"

// Opaque is a foreign value with no capabilities at all. Adapters embed
// it and override the messages they actually support.
type Opaque struct{}

func (Opaque) IsNull() bool    { return false }
func (Opaque) IsBoolean() bool { return false }

func (Opaque) AsBoolean() (bool, error) { return false, ErrUnsupported }

func (Opaque) IsNumber() bool     { return false }
func (Opaque) FitsInByte() bool   { return false }
func (Opaque) FitsInShort() bool  { return false }
func (Opaque) FitsInInt() bool    { return false }
func (Opaque) FitsInLong() bool   { return false }
func (Opaque) FitsInFloat() bool  { return false }
func (Opaque) FitsInDouble() bool { return false }

func (Opaque) AsByte() (int8, error)      { return 0, ErrUnsupported }
func (Opaque) AsShort() (int16, error)    { return 0, ErrUnsupported }
func (Opaque) AsInt() (int32, error)      { return 0, ErrUnsupported }
func (Opaque) AsLong() (int64, error)     { return 0, ErrUnsupported }
func (Opaque) AsFloat() (float32, error)  { return 0, ErrUnsupported }
func (Opaque) AsDouble() (float64, error) { return 0, ErrUnsupported }

func (Opaque) IsString() bool            { return false }
func (Opaque) AsString() (string, error) { return "", ErrUnsupported }

func (Opaque) IsException() bool { return false }

func (Opaque) HasArrayElements() bool { return false }
func (Opaque) ArraySize() (int64, error) {
	return 0, ErrUnsupported
}
func (Opaque) ReadArrayElement(index int64) (Value, error) {
	return nil, ErrUnsupported
}

func (Opaque) HasBufferElements() bool { return false }
func (Opaque) BufferSize() (int64, error) {
	return 0, ErrUnsupported
}
func (Opaque) ReadBufferByte(offset int64) (byte, error) {
	return 0, ErrUnsupported
}

func (Opaque) HasMembers() bool { return false }
func (Opaque) MemberNames() ([]string, error) {
	return nil, ErrUnsupported
}
func (Opaque) HasMember(name string) bool { return false }
func (Opaque) ReadMember(name string) (Value, error) {
	return nil, ErrUnsupported
}

func (Opaque) HasMetaObject() bool { return false }
func (Opaque) MetaObject() (Value, error) {
	return nil, ErrUnsupported
}
func (Opaque) IsMetaObject() bool { return false }
func (Opaque) MetaQualifiedName() (string, error) {
	return "", ErrUnsupported
}

func (Opaque) IsDate() bool { return false }
func (Opaque) AsDate() (Date, error) {
	return Date{}, ErrUnsupported
}
func (Opaque) IsTime() bool { return false }
func (Opaque) AsTime() (TimeOfDay, error) {
	return TimeOfDay{}, ErrUnsupported
}
func (Opaque) IsInstant() bool { return false }
func (Opaque) AsInstant() (time.Time, error) {
	return time.Time{}, ErrUnsupported
}
func (Opaque) IsDuration() bool { return false }
func (Opaque) AsDuration() (Duration, error) {
	return Duration{}, ErrUnsupported
}
func (Opaque) IsTimeZone() bool { return false }
func (Opaque) AsTimeZone() (string, error) {
	return "", ErrUnsupported
}
