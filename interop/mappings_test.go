package interop

import (
	"testing"

	"github.com/chazu/kona/meta"
)

func passConverter() TypeConverter {
	return TypeConverterFunc(func(h *meta.Object) (*meta.Object, error) {
		return h, nil
	})
}

func TestMappings_AddInterfaceValidation(t *testing.T) {
	w := newWorld(t)
	reg := NewMappings(w.m)

	if err := reg.AddInterface("py.Vector", w.seq); err != nil {
		t.Fatalf("AddInterface: %v", err)
	}
	if err := reg.AddInterface("py.Vector", w.seq); err == nil {
		t.Errorf("duplicate interface mapping accepted")
	}
	if err := reg.AddInterface("", w.seq); err == nil {
		t.Errorf("empty meta name accepted")
	}
	if err := reg.AddInterface("py.Point", w.point); err == nil {
		t.Errorf("class target accepted for an interface mapping")
	}
	if err := reg.AddInterface("py.Nil", nil); err == nil {
		t.Errorf("nil target accepted for an interface mapping")
	}
}

func TestMappings_AddConverterValidation(t *testing.T) {
	w := newWorld(t)
	m := w.m
	reg := NewMappings(m)
	conv := passConverter()

	if err := reg.AddConverter("py.Decimal", w.point, conv); err != nil {
		t.Fatalf("AddConverter: %v", err)
	}
	if err := reg.AddConverter("py.Decimal", w.pixel, conv); err == nil {
		t.Errorf("duplicate converter mapping accepted")
	}
	if err := reg.AddConverter("", w.point, conv); err == nil {
		t.Errorf("empty meta name accepted")
	}
	if err := reg.AddConverter("py.Seq", w.seq, conv); err == nil {
		t.Errorf("interface target accepted for a converter")
	}
	if err := reg.AddConverter("py.Int", m.PrimInt, conv); err == nil {
		t.Errorf("primitive target accepted for a converter")
	}
	if err := reg.AddConverter("py.List", m.ObjectArray, conv); err == nil {
		t.Errorf("array target accepted for a converter")
	}
	if err := reg.AddConverter("py.Null", nil, conv); err == nil {
		t.Errorf("nil target accepted for a converter")
	}
}

func TestMappings_BindConverterLifecycle(t *testing.T) {
	w := newWorld(t)
	reg := NewMappings(w.m)

	// Declared without code, e.g. from a config file.
	if err := reg.AddConverter("py.Decimal", w.point, nil); err != nil {
		t.Fatalf("AddConverter(nil): %v", err)
	}
	// Sealing before the bind names the unbound mapping.
	if err := reg.Seal(); err == nil {
		t.Errorf("Seal accepted an unbound converter")
	}

	if err := reg.BindConverter("py.Unknown", passConverter()); err == nil {
		t.Errorf("BindConverter accepted an undeclared name")
	}
	if err := reg.BindConverter("py.Decimal", nil); err == nil {
		t.Errorf("BindConverter accepted a nil converter")
	}
	if err := reg.BindConverter("py.Decimal", passConverter()); err != nil {
		t.Fatalf("BindConverter: %v", err)
	}
	if err := reg.BindConverter("py.Decimal", passConverter()); err == nil {
		t.Errorf("BindConverter rebound an already bound name")
	}

	if err := reg.Seal(); err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if reg.LookupConverter("py.Decimal") == nil {
		t.Errorf("LookupConverter lost the bound converter")
	}

	// Sealed registries are closed.
	if err := reg.AddInterface("py.Late", w.seq); err == nil {
		t.Errorf("AddInterface accepted after Seal")
	}
	if err := reg.AddConverter("py.Late", w.point, passConverter()); err == nil {
		t.Errorf("AddConverter accepted after Seal")
	}
	if err := reg.BindConverter("py.Decimal", passConverter()); err == nil {
		t.Errorf("BindConverter accepted after Seal")
	}
}

func TestMappings_Lookups(t *testing.T) {
	w := newWorld(t)
	m := w.m
	reg := NewMappings(m)
	if reg.HasMappings() {
		t.Errorf("empty registry reports mappings")
	}

	if err := reg.AddInterface("py.Vector", w.seq); err != nil {
		t.Fatalf("AddInterface: %v", err)
	}
	if err := reg.AddConverter("py.Decimal", w.point, passConverter()); err != nil {
		t.Fatalf("AddConverter: %v", err)
	}
	if err := reg.Seal(); err != nil {
		t.Fatalf("Seal: %v", err)
	}

	if !reg.HasMappings() {
		t.Errorf("populated registry reports no mappings")
	}
	if !reg.MapsInterface(w.seq) || reg.MapsInterface(m.CharSequence) {
		t.Errorf("MapsInterface answers are wrong")
	}
	if !reg.MapsType(w.point) || reg.MapsType(w.pixel) {
		t.Errorf("MapsType answers are wrong")
	}

	// Proxy lookups intern one class per (meta name, interface) pair.
	a := reg.LookupProxy("py.Vector", w.seq)
	b := reg.LookupProxy("py.Vector", w.seq)
	if a == nil || a != b {
		t.Fatalf("LookupProxy did not intern: %v vs %v", a, b)
	}
	if !w.seq.IsAssignableFrom(a) {
		t.Errorf("proxy does not implement its interface")
	}
	// The object root accepts any proxy; a foreign interface does not.
	if reg.LookupProxy("py.Vector", m.Object) != a {
		t.Errorf("LookupProxy against the object root did not resolve")
	}
	other, err := m.DefineInterface("test.Other", nil)
	if err != nil {
		t.Fatalf("DefineInterface: %v", err)
	}
	if got := reg.LookupProxy("py.Vector", other); got != nil {
		t.Errorf("LookupProxy(%v) = %v, want nil", other.Name, got)
	}
	if got := reg.LookupProxy("js.Map", w.seq); got != nil {
		t.Errorf("LookupProxy for an unmapped name = %v, want nil", got)
	}
	if got := reg.LookupConverter("js.Map"); got != nil {
		t.Errorf("LookupConverter for an unmapped name = %v, want nil", got)
	}
}

func TestNoMappings_IsInert(t *testing.T) {
	w := newWorld(t)

	if NoMappings.HasMappings() {
		t.Errorf("NoMappings reports mappings")
	}
	if NoMappings.MapsInterface(w.seq) || NoMappings.MapsType(w.point) {
		t.Errorf("NoMappings claims a target")
	}
	if NoMappings.LookupProxy("py.Vector", w.seq) != nil {
		t.Errorf("NoMappings resolved a proxy")
	}
	if NoMappings.LookupConverter("py.Decimal") != nil {
		t.Errorf("NoMappings resolved a converter")
	}
}
