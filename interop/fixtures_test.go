package interop

import (
	"sort"
	"testing"
	"time"

	"github.com/chazu/kona/foreign"
	"github.com/chazu/kona/meta"
)

// testWorld is a universe plus a few embedder classes the tests coerce
// into.
type testWorld struct {
	m     *meta.Meta
	point *meta.Class // test.Point {x, y}
	pixel *meta.Class // test.Pixel extends Point, adds {color}
	seq   *meta.Class // test.Sequence interface
	list  *meta.Class // test.List implements Sequence
}

func newWorld(t *testing.T) *testWorld {
	t.Helper()
	m := meta.NewMeta()
	point, err := m.DefineClass("test.Point", nil, nil, []meta.Field{
		{Name: "x"}, {Name: "y"}, {Name: "instances", Static: true},
	})
	if err != nil {
		t.Fatalf("DefineClass(test.Point): %v", err)
	}
	pixel, err := m.DefineClass("test.Pixel", point, nil, []meta.Field{{Name: "color"}})
	if err != nil {
		t.Fatalf("DefineClass(test.Pixel): %v", err)
	}
	seq, err := m.DefineInterface("test.Sequence", nil)
	if err != nil {
		t.Fatalf("DefineInterface(test.Sequence): %v", err)
	}
	list, err := m.DefineClass("test.List", nil, []*meta.Class{seq}, nil)
	if err != nil {
		t.Fatalf("DefineClass(test.List): %v", err)
	}
	return &testWorld{m: m, point: point, pixel: pixel, seq: seq, list: list}
}

// ---------------------------------------------------------------------------
// Foreign value fakes, one capability bundle each
// ---------------------------------------------------------------------------

type fakeBool struct {
	foreign.Opaque
	v bool
}

func (f fakeBool) IsBoolean() bool          { return true }
func (f fakeBool) AsBoolean() (bool, error) { return f.v, nil }

// fakeLong is a foreign number with an integral payload. Its fits
// answers follow the lossless rules the protocol prescribes.
type fakeLong struct {
	foreign.Opaque
	v int64
}

func (f fakeLong) IsNumber() bool     { return true }
func (f fakeLong) FitsInByte() bool   { return longFitsByte(f.v) }
func (f fakeLong) FitsInShort() bool  { return longFitsShort(f.v) }
func (f fakeLong) FitsInInt() bool    { return longFitsInt(f.v) }
func (f fakeLong) FitsInLong() bool   { return true }
func (f fakeLong) FitsInFloat() bool  { return longFitsFloat(f.v) }
func (f fakeLong) FitsInDouble() bool { return longFitsDouble(f.v) }

func (f fakeLong) AsByte() (int8, error) {
	if !f.FitsInByte() {
		return 0, foreign.ErrUnsupported
	}
	return int8(f.v), nil
}

func (f fakeLong) AsShort() (int16, error) {
	if !f.FitsInShort() {
		return 0, foreign.ErrUnsupported
	}
	return int16(f.v), nil
}

func (f fakeLong) AsInt() (int32, error) {
	if !f.FitsInInt() {
		return 0, foreign.ErrUnsupported
	}
	return int32(f.v), nil
}

func (f fakeLong) AsLong() (int64, error) { return f.v, nil }

func (f fakeLong) AsFloat() (float32, error) {
	if !f.FitsInFloat() {
		return 0, foreign.ErrUnsupported
	}
	return float32(f.v), nil
}

func (f fakeLong) AsDouble() (float64, error) {
	if !f.FitsInDouble() {
		return 0, foreign.ErrUnsupported
	}
	return float64(f.v), nil
}

// fakeDouble is a foreign number with a floating payload.
type fakeDouble struct {
	foreign.Opaque
	v float64
}

func (f fakeDouble) IsNumber() bool { return true }
func (f fakeDouble) FitsInByte() bool {
	return doubleFitsLong(f.v) && longFitsByte(int64(f.v))
}
func (f fakeDouble) FitsInShort() bool {
	return doubleFitsLong(f.v) && longFitsShort(int64(f.v))
}
func (f fakeDouble) FitsInInt() bool {
	return doubleFitsLong(f.v) && longFitsInt(int64(f.v))
}
func (f fakeDouble) FitsInLong() bool   { return doubleFitsLong(f.v) }
func (f fakeDouble) FitsInFloat() bool  { return doubleFitsFloat(f.v) }
func (f fakeDouble) FitsInDouble() bool { return true }

func (f fakeDouble) AsByte() (int8, error) {
	if !f.FitsInByte() {
		return 0, foreign.ErrUnsupported
	}
	return int8(f.v), nil
}

func (f fakeDouble) AsShort() (int16, error) {
	if !f.FitsInShort() {
		return 0, foreign.ErrUnsupported
	}
	return int16(f.v), nil
}

func (f fakeDouble) AsInt() (int32, error) {
	if !f.FitsInInt() {
		return 0, foreign.ErrUnsupported
	}
	return int32(f.v), nil
}

func (f fakeDouble) AsLong() (int64, error) {
	if !f.FitsInLong() {
		return 0, foreign.ErrUnsupported
	}
	return int64(f.v), nil
}

func (f fakeDouble) AsFloat() (float32, error) {
	if !f.FitsInFloat() {
		return 0, foreign.ErrUnsupported
	}
	return float32(f.v), nil
}

func (f fakeDouble) AsDouble() (float64, error) { return f.v, nil }

// lyingNumber claims every numeric fit and fails every accessor, which
// violates the protocol contract.
type lyingNumber struct {
	foreign.Opaque
}

func (lyingNumber) IsNumber() bool     { return true }
func (lyingNumber) FitsInByte() bool   { return true }
func (lyingNumber) FitsInShort() bool  { return true }
func (lyingNumber) FitsInInt() bool    { return true }
func (lyingNumber) FitsInLong() bool   { return true }
func (lyingNumber) FitsInFloat() bool  { return true }
func (lyingNumber) FitsInDouble() bool { return true }

type fakeString struct {
	foreign.Opaque
	s string
}

func (f fakeString) IsString() bool            { return true }
func (f fakeString) AsString() (string, error) { return f.s, nil }

type fakeError struct {
	foreign.Opaque
}

func (fakeError) IsException() bool { return true }

type fakeArray struct {
	foreign.Opaque
	elems []foreign.Value
}

func (f *fakeArray) HasArrayElements() bool    { return true }
func (f *fakeArray) ArraySize() (int64, error) { return int64(len(f.elems)), nil }

func (f *fakeArray) ReadArrayElement(i int64) (foreign.Value, error) {
	if i < 0 || i >= int64(len(f.elems)) {
		return nil, foreign.ErrUnsupported
	}
	return f.elems[i], nil
}

type fakeBuffer struct {
	foreign.Opaque
	b []byte
}

func (f *fakeBuffer) HasBufferElements() bool    { return true }
func (f *fakeBuffer) BufferSize() (int64, error) { return int64(len(f.b)), nil }

func (f *fakeBuffer) ReadBufferByte(off int64) (byte, error) {
	if off < 0 || off >= int64(len(f.b)) {
		return 0, foreign.ErrUnsupported
	}
	return f.b[off], nil
}

// stringBuffer is string-shaped and also exposes buffer elements; the
// array coercers must keep treating it as a string.
type stringBuffer struct {
	fakeString
	b []byte
}

func (f *stringBuffer) HasBufferElements() bool    { return true }
func (f *stringBuffer) BufferSize() (int64, error) { return int64(len(f.b)), nil }

func (f *stringBuffer) ReadBufferByte(off int64) (byte, error) {
	if off < 0 || off >= int64(len(f.b)) {
		return 0, foreign.ErrUnsupported
	}
	return f.b[off], nil
}

// arrayAndBuffer exposes both element protocols at once.
type arrayAndBuffer struct {
	foreign.Opaque
}

func (arrayAndBuffer) HasArrayElements() bool     { return true }
func (arrayAndBuffer) ArraySize() (int64, error)  { return 0, nil }
func (arrayAndBuffer) HasBufferElements() bool    { return true }
func (arrayAndBuffer) BufferSize() (int64, error) { return 0, nil }

type fakeMetaObject struct {
	foreign.Opaque
	name string
}

func (f fakeMetaObject) IsMetaObject() bool { return true }
func (f fakeMetaObject) MetaQualifiedName() (string, error) {
	return f.name, nil
}

// fakeComposite is a member-bearing foreign object, optionally typed
// through a meta object.
type fakeComposite struct {
	foreign.Opaque
	typeName string
	members  map[string]foreign.Value
}

func (f *fakeComposite) HasMembers() bool { return true }

func (f *fakeComposite) HasMember(name string) bool {
	_, ok := f.members[name]
	return ok
}

func (f *fakeComposite) ReadMember(name string) (foreign.Value, error) {
	v, ok := f.members[name]
	if !ok {
		return nil, foreign.ErrUnsupported
	}
	return v, nil
}

func (f *fakeComposite) MemberNames() ([]string, error) {
	names := make([]string, 0, len(f.members))
	for name := range f.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeComposite) HasMetaObject() bool { return f.typeName != "" }

func (f *fakeComposite) MetaObject() (foreign.Value, error) {
	if f.typeName == "" {
		return nil, foreign.ErrUnsupported
	}
	return fakeMetaObject{name: f.typeName}, nil
}

// brokenMeta claims a meta object and then refuses to produce one.
type brokenMeta struct {
	foreign.Opaque
}

func (brokenMeta) HasMetaObject() bool { return true }

type opaqueValue struct {
	foreign.Opaque
}

// ---------------------------------------------------------------------------
// Temporal fakes
// ---------------------------------------------------------------------------

type fakeDate struct {
	foreign.Opaque
	d foreign.Date
}

func (f fakeDate) IsDate() bool                  { return true }
func (f fakeDate) AsDate() (foreign.Date, error) { return f.d, nil }

type fakeTime struct {
	foreign.Opaque
	t foreign.TimeOfDay
}

func (f fakeTime) IsTime() bool                       { return true }
func (f fakeTime) AsTime() (foreign.TimeOfDay, error) { return f.t, nil }

type fakeDateTime struct {
	foreign.Opaque
	d foreign.Date
	t foreign.TimeOfDay
}

func (f fakeDateTime) IsDate() bool                       { return true }
func (f fakeDateTime) AsDate() (foreign.Date, error)      { return f.d, nil }
func (f fakeDateTime) IsTime() bool                       { return true }
func (f fakeDateTime) AsTime() (foreign.TimeOfDay, error) { return f.t, nil }

type fakeInstant struct {
	foreign.Opaque
	t time.Time
}

func (f fakeInstant) IsInstant() bool               { return true }
func (f fakeInstant) AsInstant() (time.Time, error) { return f.t, nil }

type fakeZone struct {
	foreign.Opaque
	id string
}

func (f fakeZone) IsTimeZone() bool            { return true }
func (f fakeZone) AsTimeZone() (string, error) { return f.id, nil }

type fakeZoned struct {
	foreign.Opaque
	t  time.Time
	id string
}

func (f fakeZoned) IsInstant() bool               { return true }
func (f fakeZoned) AsInstant() (time.Time, error) { return f.t, nil }
func (f fakeZoned) IsTimeZone() bool              { return true }
func (f fakeZoned) AsTimeZone() (string, error)   { return f.id, nil }

type fakeDuration struct {
	foreign.Opaque
	d foreign.Duration
}

func (f fakeDuration) IsDuration() bool                      { return true }
func (f fakeDuration) AsDuration() (foreign.Duration, error) { return f.d, nil }

// lyingDate reports a date and fails the accessor.
type lyingDate struct {
	foreign.Opaque
}

func (lyingDate) IsDate() bool { return true }

// ---------------------------------------------------------------------------
// Assertion helpers
// ---------------------------------------------------------------------------

func wantUnsupported(t *testing.T, err error) *UnsupportedTypeError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected UnsupportedTypeError, got nil")
	}
	ute, ok := err.(*UnsupportedTypeError)
	if !ok {
		t.Fatalf("expected *UnsupportedTypeError, got %T: %v", err, err)
	}
	return ute
}

func wantForeignWrap(t *testing.T, o *meta.Object, class *meta.Class, v foreign.Value) {
	t.Helper()
	if o.Class() != class {
		t.Fatalf("wrapped class = %v, want %v", o.Class(), class)
	}
	if o.Foreign() != v {
		t.Fatalf("wrapped handle lost its foreign identity")
	}
}

func wantForeignNull(t *testing.T, o *meta.Object, v foreign.Value) {
	t.Helper()
	if !o.IsNull() {
		t.Fatalf("result = %v, want wrapped null", o)
	}
	if o.Foreign() != v {
		t.Fatalf("wrapped null lost its foreign identity")
	}
}
