package meta

import (
	"fmt"
	"strings"
	"sync"
)

// ---------------------------------------------------------------------------
// Meta: one managed type universe
// ---------------------------------------------------------------------------

// Meta holds the well-known classes a Kona universe is born with, a
// registry of embedder-defined classes, and caches for array and proxy
// classes. The well-known fields are immutable after NewMeta returns.
type Meta struct {
	Object       *Class
	String       *Class
	CharSequence *Class
	Number       *Class

	PrimBoolean *Class
	PrimByte    *Class
	PrimShort   *Class
	PrimChar    *Class
	PrimInt     *Class
	PrimLong    *Class
	PrimFloat   *Class
	PrimDouble  *Class
	PrimVoid    *Class

	Boolean   *Class
	Byte      *Class
	Short     *Class
	Character *Class
	Integer   *Class
	Long      *Class
	Float     *Class
	Double    *Class

	Throwable        *Class
	Exception        *Class
	RuntimeException *Class
	ForeignException *Class

	LocalDate     *Class
	LocalTime     *Class
	LocalDateTime *Class
	ZonedDateTime *Class
	Instant       *Class
	Duration      *Class
	ZoneID        *Class
	UtilDate      *Class

	ByteArray   *Class
	ObjectArray *Class

	mu      sync.RWMutex
	classes map[string]*Class
	arrays  map[*Class]*Class
	proxies map[proxyKey]*Class
}

type proxyKey struct {
	metaName string
	iface    *Class
}

// NewMeta builds a fresh universe with the full well-known type table.
func NewMeta() *Meta {
	m := &Meta{
		classes: make(map[string]*Class),
		arrays:  make(map[*Class]*Class),
		proxies: make(map[proxyKey]*Class),
	}

	m.Object = m.mustDefine(&Class{Name: "kona.lang.Object"})
	m.CharSequence = m.mustDefine(&Class{Name: "kona.lang.CharSequence", IsInterface: true})
	m.String = m.mustDefine(&Class{
		Name:       "kona.lang.String",
		Superclass: m.Object,
		Interfaces: []*Class{m.CharSequence},
	})
	m.Number = m.mustDefine(&Class{Name: "kona.lang.Number", Superclass: m.Object})

	prim := func(name string, k Kind) *Class {
		return m.mustDefine(&Class{Name: name, Kind: k})
	}
	m.PrimBoolean = prim("boolean", KindBoolean)
	m.PrimByte = prim("byte", KindByte)
	m.PrimShort = prim("short", KindShort)
	m.PrimChar = prim("char", KindChar)
	m.PrimInt = prim("int", KindInt)
	m.PrimLong = prim("long", KindLong)
	m.PrimFloat = prim("float", KindFloat)
	m.PrimDouble = prim("double", KindDouble)
	m.PrimVoid = prim("void", KindVoid)

	// Box classes declare their value field so structural checks can
	// fall back to it.
	box := func(name string, super *Class) *Class {
		return m.mustDefine(&Class{
			Name:       name,
			Superclass: super,
			Fields:     []Field{{Name: "value"}},
		})
	}
	m.Boolean = box("kona.lang.Boolean", m.Object)
	m.Character = box("kona.lang.Character", m.Object)
	m.Byte = box("kona.lang.Byte", m.Number)
	m.Short = box("kona.lang.Short", m.Number)
	m.Integer = box("kona.lang.Integer", m.Number)
	m.Long = box("kona.lang.Long", m.Number)
	m.Float = box("kona.lang.Float", m.Number)
	m.Double = box("kona.lang.Double", m.Number)

	m.Throwable = m.mustDefine(&Class{
		Name:       "kona.lang.Throwable",
		Superclass: m.Object,
		Fields:     []Field{{Name: "message"}, {Name: "cause"}},
	})
	m.Exception = m.mustDefine(&Class{Name: "kona.lang.Exception", Superclass: m.Throwable})
	m.RuntimeException = m.mustDefine(&Class{Name: "kona.lang.RuntimeException", Superclass: m.Exception})
	m.ForeignException = m.mustDefine(&Class{Name: "kona.interop.ForeignException", Superclass: m.RuntimeException})

	m.LocalDate = m.mustDefine(&Class{Name: "kona.time.LocalDate", Superclass: m.Object})
	m.LocalTime = m.mustDefine(&Class{Name: "kona.time.LocalTime", Superclass: m.Object})
	m.LocalDateTime = m.mustDefine(&Class{Name: "kona.time.LocalDateTime", Superclass: m.Object})
	m.ZonedDateTime = m.mustDefine(&Class{Name: "kona.time.ZonedDateTime", Superclass: m.Object})
	m.Instant = m.mustDefine(&Class{Name: "kona.time.Instant", Superclass: m.Object})
	m.Duration = m.mustDefine(&Class{Name: "kona.time.Duration", Superclass: m.Object})
	m.ZoneID = m.mustDefine(&Class{Name: "kona.time.ZoneId", Superclass: m.Object})
	m.UtilDate = m.mustDefine(&Class{Name: "kona.util.Date", Superclass: m.Object})

	m.ByteArray = m.ArrayOf(m.PrimByte)
	m.ObjectArray = m.ArrayOf(m.Object)

	return m
}

func (m *Meta) mustDefine(c *Class) *Class {
	if _, dup := m.classes[c.Name]; dup {
		panic(fmt.Sprintf("meta: duplicate well-known class %q", c.Name))
	}
	m.classes[c.Name] = c
	return c
}

// DefineClass registers an ordinary class. A nil superclass defaults to
// the object root.
func (m *Meta) DefineClass(name string, superclass *Class, interfaces []*Class, fields []Field) (*Class, error) {
	if name == "" {
		return nil, fmt.Errorf("meta: class name must not be empty")
	}
	if superclass == nil {
		superclass = m.Object
	}
	c := &Class{Name: name, Superclass: superclass, Interfaces: interfaces, Fields: fields}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.classes[name]; dup {
		return nil, fmt.Errorf("meta: class %q already defined", name)
	}
	m.classes[name] = c
	return c, nil
}

// DefineInterface registers an interface type, optionally extending
// other interfaces.
func (m *Meta) DefineInterface(name string, extends []*Class) (*Class, error) {
	if name == "" {
		return nil, fmt.Errorf("meta: interface name must not be empty")
	}
	c := &Class{Name: name, Interfaces: extends, IsInterface: true}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.classes[name]; dup {
		return nil, fmt.Errorf("meta: class %q already defined", name)
	}
	m.classes[name] = c
	return c, nil
}

// Lookup returns the registered class with the given name, or nil.
// Array classes register under their display name ("byte[]").
func (m *Meta) Lookup(name string) *Class {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.classes[name]
}

// ArrayOf returns the array class with the given element type. Array
// classes are interned: repeated calls return the same *Class.
func (m *Meta) ArrayOf(elem *Class) *Class {
	m.mu.RLock()
	a := m.arrays[elem]
	m.mu.RUnlock()
	if a != nil {
		return a
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if a := m.arrays[elem]; a != nil {
		return a
	}
	a = &Class{Name: elem.Name + "[]", Superclass: m.Object, Elem: elem}
	m.arrays[elem] = a
	m.classes[a.Name] = a
	return a
}

// ProxyClass returns the synthetic class standing in for foreign values
// whose meta object reports metaName and which are used where iface is
// expected. Proxy classes are interned per (metaName, iface) pair.
func (m *Meta) ProxyClass(metaName string, iface *Class) *Class {
	key := proxyKey{metaName: metaName, iface: iface}

	m.mu.RLock()
	p := m.proxies[key]
	m.mu.RUnlock()
	if p != nil {
		return p
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if p := m.proxies[key]; p != nil {
		return p
	}
	p = &Class{
		Name:       iface.Name + "$$" + sanitizeProxyName(metaName),
		Superclass: m.Object,
		Interfaces: []*Class{iface},
	}
	m.proxies[key] = p
	return p
}

func sanitizeProxyName(metaName string) string {
	var b strings.Builder
	for _, r := range metaName {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// UnboxedKind maps a box class to its primitive kind, KindRef for
// everything else.
func (m *Meta) UnboxedKind(c *Class) Kind {
	switch c {
	case m.Boolean:
		return KindBoolean
	case m.Byte:
		return KindByte
	case m.Short:
		return KindShort
	case m.Character:
		return KindChar
	case m.Integer:
		return KindInt
	case m.Long:
		return KindLong
	case m.Float:
		return KindFloat
	case m.Double:
		return KindDouble
	}
	return KindRef
}

// IsBoxed reports whether c is one of the eight box classes.
func (m *Meta) IsBoxed(c *Class) bool {
	return m.UnboxedKind(c) != KindRef
}

// BoxClass maps a primitive kind to its box class, nil for KindRef and
// KindVoid.
func (m *Meta) BoxClass(k Kind) *Class {
	switch k {
	case KindBoolean:
		return m.Boolean
	case KindByte:
		return m.Byte
	case KindShort:
		return m.Short
	case KindChar:
		return m.Character
	case KindInt:
		return m.Integer
	case KindLong:
		return m.Long
	case KindFloat:
		return m.Float
	case KindDouble:
		return m.Double
	}
	return nil
}

// PrimClass maps a primitive kind to its primitive class, nil for
// KindRef.
func (m *Meta) PrimClass(k Kind) *Class {
	switch k {
	case KindBoolean:
		return m.PrimBoolean
	case KindByte:
		return m.PrimByte
	case KindShort:
		return m.PrimShort
	case KindChar:
		return m.PrimChar
	case KindInt:
		return m.PrimInt
	case KindLong:
		return m.PrimLong
	case KindFloat:
		return m.PrimFloat
	case KindDouble:
		return m.PrimDouble
	case KindVoid:
		return m.PrimVoid
	}
	return nil
}
