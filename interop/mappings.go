package interop

import (
	"fmt"

	"github.com/chazu/kona/meta"
)

// TypeConverter turns a target-typed foreign handle into the managed
// value it stands for. Converters run on the coercion path and must be
// safe for concurrent use.
type TypeConverter interface {
	Convert(handle *meta.Object) (*meta.Object, error)
}

// TypeConverterFunc adapts a function to the TypeConverter interface.
type TypeConverterFunc func(handle *meta.Object) (*meta.Object, error)

func (f TypeConverterFunc) Convert(handle *meta.Object) (*meta.Object, error) {
	return f(handle)
}

// TypeMappings is the engine's view of the extension registry: which
// interfaces have foreign proxy mappings, which classes are produced
// by converters, and the name-keyed lookups serving them. The foreign
// key is the qualified name a value's meta object reports.
//
// Implementations must be immutable by the time an Engine reads them.
type TypeMappings interface {
	// HasMappings reports whether any mapping is registered at all.
	HasMappings() bool
	// MapsInterface reports whether target is an interface with at
	// least one registered proxy mapping.
	MapsInterface(target *meta.Class) bool
	// MapsType reports whether target is produced by a registered
	// converter.
	MapsType(target *meta.Class) bool
	// LookupProxy resolves the proxy class for a foreign meta name.
	// It returns nil when no mapping is registered or the proxy does
	// not satisfy target.
	LookupProxy(metaName string, target *meta.Class) *meta.Class
	// LookupConverter resolves the converter for a foreign meta name,
	// or nil.
	LookupConverter(metaName string) TypeConverter
}

// NoMappings is the empty registry used when an Engine is built
// without WithMappings.
var NoMappings TypeMappings = noMappings{}

type noMappings struct{}

func (noMappings) HasMappings() bool                           { return false }
func (noMappings) MapsInterface(*meta.Class) bool              { return false }
func (noMappings) MapsType(*meta.Class) bool                   { return false }
func (noMappings) LookupProxy(string, *meta.Class) *meta.Class { return nil }
func (noMappings) LookupConverter(string) TypeConverter        { return nil }

// Mappings is the standard TypeMappings implementation: populated
// during startup, sealed, then handed to the engine. It is not safe
// for concurrent mutation; seal it before sharing.
type Mappings struct {
	meta       *meta.Meta
	interfaces map[string]*meta.Class
	converters map[string]TypeConverter
	ifaceSet   map[*meta.Class]bool
	targetSet  map[*meta.Class]bool
	sealed     bool
}

// NewMappings returns an empty registry bound to a type universe.
func NewMappings(m *meta.Meta) *Mappings {
	return &Mappings{
		meta:       m,
		interfaces: make(map[string]*meta.Class),
		converters: make(map[string]TypeConverter),
		ifaceSet:   make(map[*meta.Class]bool),
		targetSet:  make(map[*meta.Class]bool),
	}
}

// AddInterface maps foreign values whose meta object reports metaName
// to a generated proxy implementing iface.
func (r *Mappings) AddInterface(metaName string, iface *meta.Class) error {
	if r.sealed {
		return fmt.Errorf("interop: mappings already sealed")
	}
	if metaName == "" {
		return fmt.Errorf("interop: interface mapping needs a foreign type name")
	}
	if iface == nil || !iface.IsInterface {
		return fmt.Errorf("interop: interface mapping %q needs an interface target", metaName)
	}
	if _, dup := r.interfaces[metaName]; dup {
		return fmt.Errorf("interop: duplicate interface mapping for %q", metaName)
	}
	r.interfaces[metaName] = iface
	r.ifaceSet[iface] = true
	return nil
}

// AddConverter maps foreign values whose meta object reports metaName
// to target through conv. conv may be nil and bound later with
// BindConverter, which lets declarative configs reserve the mapping
// before the embedder supplies the code behind it.
func (r *Mappings) AddConverter(metaName string, target *meta.Class, conv TypeConverter) error {
	if r.sealed {
		return fmt.Errorf("interop: mappings already sealed")
	}
	if metaName == "" {
		return fmt.Errorf("interop: converter mapping needs a foreign type name")
	}
	if target == nil || target.IsInterface || target.IsPrimitive() || target.IsArray() {
		return fmt.Errorf("interop: converter mapping %q needs a concrete class target", metaName)
	}
	if _, dup := r.converters[metaName]; dup {
		return fmt.Errorf("interop: duplicate converter mapping for %q", metaName)
	}
	r.converters[metaName] = conv
	r.targetSet[target] = true
	return nil
}

// BindConverter attaches the conversion function to a mapping declared
// earlier, typically one loaded from a config file.
func (r *Mappings) BindConverter(metaName string, conv TypeConverter) error {
	if r.sealed {
		return fmt.Errorf("interop: mappings already sealed")
	}
	if conv == nil {
		return fmt.Errorf("interop: nil converter for %q", metaName)
	}
	existing, ok := r.converters[metaName]
	if !ok {
		return fmt.Errorf("interop: no converter mapping declared for %q", metaName)
	}
	if existing != nil {
		return fmt.Errorf("interop: converter for %q already bound", metaName)
	}
	r.converters[metaName] = conv
	return nil
}

// Seal freezes the registry. It fails when a declared converter was
// never bound.
func (r *Mappings) Seal() error {
	for name, conv := range r.converters {
		if conv == nil {
			return fmt.Errorf("interop: converter mapping %q was never bound", name)
		}
	}
	r.sealed = true
	return nil
}

func (r *Mappings) HasMappings() bool {
	return len(r.interfaces) > 0 || len(r.converters) > 0
}

func (r *Mappings) MapsInterface(target *meta.Class) bool {
	return r.ifaceSet[target]
}

func (r *Mappings) MapsType(target *meta.Class) bool {
	return r.targetSet[target]
}

// LookupProxy interns the proxy class for metaName's interface mapping
// and returns it when it satisfies target.
func (r *Mappings) LookupProxy(metaName string, target *meta.Class) *meta.Class {
	iface, ok := r.interfaces[metaName]
	if !ok {
		return nil
	}
	proxy := r.meta.ProxyClass(metaName, iface)
	if !target.IsAssignableFrom(proxy) {
		return nil
	}
	return proxy
}

func (r *Mappings) LookupConverter(metaName string) TypeConverter {
	return r.converters[metaName]
}
