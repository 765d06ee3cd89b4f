package hostvalue

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/chazu/kona/foreign"
	"github.com/chazu/kona/interop"
	"github.com/chazu/kona/meta"
)

func TestWrap_Scalars(t *testing.T) {
	v := Wrap(true)
	if !v.IsBoolean() {
		t.Errorf("Wrap(true).IsBoolean() = false")
	}
	if b, err := v.AsBoolean(); err != nil || !b {
		t.Errorf("AsBoolean() = %v, %v", b, err)
	}

	v = Wrap(int16(-7))
	if !v.IsNumber() || !v.FitsInShort() {
		t.Errorf("Wrap(int16) is not a short-sized number")
	}
	if s, err := v.AsShort(); err != nil || s != -7 {
		t.Errorf("AsShort() = %v, %v", s, err)
	}

	v = Wrap(uint8(200))
	if got, err := v.AsShort(); err != nil || got != 200 {
		t.Errorf("Wrap(uint8).AsShort() = %v, %v", got, err)
	}

	v = Wrap(3.5)
	if !v.IsNumber() || v.FitsInLong() {
		t.Errorf("Wrap(3.5) should be a number that does not fit long")
	}
	if d, err := v.AsDouble(); err != nil || d != 3.5 {
		t.Errorf("AsDouble() = %v, %v", d, err)
	}

	v = Wrap("kona")
	if !v.IsString() {
		t.Errorf("Wrap(string).IsString() = false")
	}
	if s, err := v.AsString(); err != nil || s != "kona" {
		t.Errorf("AsString() = %q, %v", s, err)
	}

	type label string
	if v := Wrap(label("named")); !v.IsString() {
		t.Errorf("named string kind should wrap as a string")
	}
}

func TestWrap_NumberFits(t *testing.T) {
	tests := []struct {
		name  string
		value any
		fits  func(foreign.Value) bool
		want  bool
	}{
		{"MaxInt8 fits byte", int64(math.MaxInt8), foreign.Value.FitsInByte, true},
		{"128 misses byte", int64(128), foreign.Value.FitsInByte, false},
		{"1<<24 fits float", int64(1 << 24), foreign.Value.FitsInFloat, true},
		{"1<<24+1 misses float", int64(1<<24 + 1), foreign.Value.FitsInFloat, false},
		{"1<<53+1 misses double", int64(1<<53 + 1), foreign.Value.FitsInDouble, false},
		{"MaxInt64 misses double", int64(math.MaxInt64), foreign.Value.FitsInDouble, false},
		{"integral double fits int", 65536.0, foreign.Value.FitsInInt, true},
		{"fractional misses int", 65536.5, foreign.Value.FitsInInt, false},
		{"NaN fits float", math.NaN(), foreign.Value.FitsInFloat, true},
		{"NaN misses long", math.NaN(), foreign.Value.FitsInLong, false},
		{"+Inf misses long", math.Inf(1), foreign.Value.FitsInLong, false},
		{"1e300 misses float", 1e300, foreign.Value.FitsInFloat, false},
		{"big uint misses long", uint64(math.MaxInt64) + 1, foreign.Value.FitsInLong, false},
		{"2^63 as uint fits double", uint64(1) << 63, foreign.Value.FitsInDouble, true},
		{"MaxUint64 misses double", uint64(math.MaxUint64), foreign.Value.FitsInDouble, false},
	}
	for _, tt := range tests {
		v := Wrap(tt.value)
		if !v.IsNumber() {
			t.Errorf("%s: Wrap(%v) is not a number", tt.name, tt.value)
			continue
		}
		if got := tt.fits(v); got != tt.want {
			t.Errorf("%s: fit = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWrap_AccessorsGuardTheFit(t *testing.T) {
	v := Wrap(int64(1000))
	if _, err := v.AsByte(); err == nil {
		t.Errorf("AsByte on 1000 should fail")
	}
	if l, err := v.AsLong(); err != nil || l != 1000 {
		t.Errorf("AsLong() = %v, %v", l, err)
	}

	v = Wrap(0.5)
	if _, err := v.AsLong(); err == nil {
		t.Errorf("AsLong on 0.5 should fail")
	}
	if f, err := v.AsFloat(); err != nil || f != 0.5 {
		t.Errorf("AsFloat() = %v, %v", f, err)
	}
}

func TestWrap_Buffers(t *testing.T) {
	v := Wrap([]byte{1, 2, 3})
	if !v.HasBufferElements() {
		t.Fatalf("byte slice should expose buffer elements")
	}
	if v.HasArrayElements() {
		t.Errorf("byte slice should not expose array elements")
	}
	if n, err := v.BufferSize(); err != nil || n != 3 {
		t.Errorf("BufferSize() = %v, %v", n, err)
	}
	if b, err := v.ReadBufferByte(2); err != nil || b != 3 {
		t.Errorf("ReadBufferByte(2) = %v, %v", b, err)
	}
	if _, err := v.ReadBufferByte(3); err == nil {
		t.Errorf("out of range read should fail")
	}

	type blob []byte
	if v := Wrap(blob{9}); !v.HasBufferElements() {
		t.Errorf("named byte slice should expose buffer elements")
	}
}

func TestWrap_Arrays(t *testing.T) {
	v := Wrap([]string{"a", "b"})
	if !v.HasArrayElements() {
		t.Fatalf("slice should expose array elements")
	}
	if n, err := v.ArraySize(); err != nil || n != 2 {
		t.Errorf("ArraySize() = %v, %v", n, err)
	}
	el, err := v.ReadArrayElement(1)
	if err != nil {
		t.Fatalf("ReadArrayElement: %v", err)
	}
	if s, err := el.AsString(); err != nil || s != "b" {
		t.Errorf("element = %q, %v", s, err)
	}
	if _, err := v.ReadArrayElement(-1); err == nil {
		t.Errorf("negative index should fail")
	}

	if v := Wrap([2]int{4, 5}); !v.HasArrayElements() {
		t.Errorf("array kind should expose array elements")
	}
}

func TestWrap_Maps(t *testing.T) {
	v := Wrap(map[string]int{"b": 2, "a": 1})
	if !v.HasMembers() {
		t.Fatalf("string-keyed map should expose members")
	}
	names, err := v.MemberNames()
	if err != nil || !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Errorf("MemberNames() = %v, %v", names, err)
	}
	if !v.HasMember("a") || v.HasMember("c") {
		t.Errorf("HasMember misreports")
	}
	mv, err := v.ReadMember("b")
	if err != nil {
		t.Fatalf("ReadMember: %v", err)
	}
	if l, err := mv.AsLong(); err != nil || l != 2 {
		t.Errorf("member b = %v, %v", l, err)
	}
	if _, err := v.ReadMember("c"); err == nil {
		t.Errorf("missing member read should fail")
	}

	if v := Wrap(map[int]string{1: "x"}); v.HasMembers() {
		t.Errorf("non-string keys should not expose members")
	}
}

type point struct {
	X      int
	Y      int
	hidden bool
}

func TestWrap_Structs(t *testing.T) {
	v := Wrap(point{X: 1, Y: 2, hidden: true})
	if !v.HasMembers() {
		t.Fatalf("struct should expose members")
	}
	names, err := v.MemberNames()
	if err != nil || !reflect.DeepEqual(names, []string{"X", "Y"}) {
		t.Errorf("MemberNames() = %v, %v", names, err)
	}
	if v.HasMember("hidden") {
		t.Errorf("unexported field leaked")
	}
	mv, err := v.ReadMember("Y")
	if err != nil {
		t.Fatalf("ReadMember: %v", err)
	}
	if l, err := mv.AsLong(); err != nil || l != 2 {
		t.Errorf("member Y = %v, %v", l, err)
	}

	if !v.HasMetaObject() {
		t.Fatalf("struct should carry a meta object")
	}
	mo, err := v.MetaObject()
	if err != nil || !mo.IsMetaObject() {
		t.Fatalf("MetaObject() = %v, %v", mo, err)
	}
	if name, err := mo.MetaQualifiedName(); err != nil || name != "hostvalue.point" {
		t.Errorf("meta name = %q, %v", name, err)
	}

	if v := Wrap(&point{X: 3}); !v.HasMember("X") {
		t.Errorf("struct pointer should expose the struct's members")
	}
}

func TestWrap_NilsAndPassThrough(t *testing.T) {
	if v := Wrap(nil); !v.IsNull() {
		t.Errorf("Wrap(nil) is not null")
	}
	var p *point
	if v := Wrap(p); !v.IsNull() {
		t.Errorf("nil pointer is not null")
	}
	var loc *time.Location
	if v := Wrap(loc); !v.IsNull() {
		t.Errorf("nil location is not null")
	}

	orig := Wrap("once")
	if again := Wrap(orig); again != orig {
		t.Errorf("foreign values should pass through unchanged")
	}
	if v := Wrap(foreign.Null); !v.IsNull() {
		t.Errorf("foreign null should pass through")
	}

	n := 7
	if v := Wrap(&n); !v.IsNumber() {
		t.Errorf("pointer to int should wrap the int")
	}
}

func TestWrap_Temporals(t *testing.T) {
	loc, err := time.LoadLocation("UTC")
	if err != nil {
		t.Fatal(err)
	}
	moment := time.Date(2024, time.May, 2, 10, 30, 15, 42, loc)

	v := Wrap(moment)
	if !v.IsDate() || !v.IsTime() || !v.IsInstant() || !v.IsTimeZone() {
		t.Fatalf("time.Time should carry date, time, instant and zone")
	}
	d, err := v.AsDate()
	if err != nil || d != (foreign.Date{Year: 2024, Month: 5, Day: 2}) {
		t.Errorf("AsDate() = %+v, %v", d, err)
	}
	tod, err := v.AsTime()
	if err != nil || tod != (foreign.TimeOfDay{Hour: 10, Minute: 30, Second: 15, Nano: 42}) {
		t.Errorf("AsTime() = %+v, %v", tod, err)
	}
	in, err := v.AsInstant()
	if err != nil || !in.Equal(moment) {
		t.Errorf("AsInstant() = %v, %v", in, err)
	}
	z, err := v.AsTimeZone()
	if err != nil || z != "UTC" {
		t.Errorf("AsTimeZone() = %q, %v", z, err)
	}

	v = Wrap(90*time.Minute + 500*time.Nanosecond)
	if !v.IsDuration() {
		t.Fatalf("time.Duration should carry the duration capability")
	}
	dur, err := v.AsDuration()
	if err != nil || dur != (foreign.Duration{Seconds: 5400, Nanos: 500}) {
		t.Errorf("AsDuration() = %+v, %v", dur, err)
	}

	// Negative spans normalize so nanos stay in range.
	v = Wrap(-1500 * time.Millisecond)
	dur, err = v.AsDuration()
	if err != nil || dur != (foreign.Duration{Seconds: -2, Nanos: 500000000}) {
		t.Errorf("negative AsDuration() = %+v, %v", dur, err)
	}

	v = Wrap(loc)
	if !v.IsTimeZone() {
		t.Fatalf("*time.Location should carry the zone capability")
	}
	if z, err := v.AsTimeZone(); err != nil || z != "UTC" {
		t.Errorf("AsTimeZone() = %q, %v", z, err)
	}
}

func TestWrap_ErrorsAndOpaqueKinds(t *testing.T) {
	v := Wrap(errors.New("boom"))
	if !v.IsException() {
		t.Errorf("error should be exceptional")
	}
	if v.IsString() || v.HasMembers() {
		t.Errorf("error should carry no other capabilities")
	}

	v = Wrap(make(chan int))
	if v.IsNull() || v.IsNumber() || v.HasMembers() {
		t.Errorf("channel should wrap opaquely")
	}
	if !v.HasMetaObject() {
		t.Fatalf("opaque wrap should still name its type")
	}
	mo, err := v.MetaObject()
	if err != nil {
		t.Fatal(err)
	}
	if name, _ := mo.MetaQualifiedName(); name != "chan int" {
		t.Errorf("meta name = %q, want chan int", name)
	}
}

// End to end: wrapped host values flow through the coercion engine
// like any other foreign value.
func TestWrap_CoercesThroughEngine(t *testing.T) {
	m := meta.NewMeta()
	target, err := m.DefineClass("geo.Point", m.Object, nil, []meta.Field{
		{Name: "X"}, {Name: "Y"},
	})
	if err != nil {
		t.Fatal(err)
	}
	e := interop.New(m)

	o, err := e.Coerce(Wrap(42), m.PrimInt)
	if err != nil {
		t.Fatalf("Coerce(42, int): %v", err)
	}
	if got := o.Unbox(); got != int32(42) {
		t.Errorf("unboxed = %v, want int32(42)", got)
	}

	o, err = e.Coerce(Wrap([]byte("abc")), m.ByteArray)
	if err != nil {
		t.Fatalf("Coerce([]byte, byte[]): %v", err)
	}
	if o.Class() != m.ByteArray {
		t.Errorf("class = %v, want byte[]", o.Class())
	}

	o, err = e.Coerce(Wrap(point{X: 1, Y: 2}), target)
	if err != nil {
		t.Fatalf("Coerce(point, geo.Point): %v", err)
	}
	if o.Class() != target {
		t.Errorf("class = %v, want geo.Point", o.Class())
	}

	if _, err := e.Coerce(Wrap(struct{ X int }{1}), target); err == nil {
		t.Errorf("struct missing Y should not coerce to geo.Point")
	}

	o, err = e.Coerce(Wrap(time.Unix(100, 7).UTC()), m.Instant)
	if err != nil {
		t.Fatalf("Coerce(time.Time, Instant): %v", err)
	}
	parts, ok := o.Unbox().(meta.InstantParts)
	if !ok || parts != (meta.InstantParts{Seconds: 100, Nanos: 7}) {
		t.Errorf("instant parts = %+v", o.Unbox())
	}
}
