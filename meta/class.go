package meta

// ---------------------------------------------------------------------------
// Class: managed type descriptors
// ---------------------------------------------------------------------------

// Field describes one declared field of a class. Only the class's own
// declarations appear here; inherited fields are reached through the
// superclass link.
type Field struct {
	Name   string
	Static bool
}

// Class describes a managed type: a primitive kind, an array type, an
// interface, or an ordinary class. Classes are built through a Meta and
// must be treated as immutable once published; they are shared freely
// across goroutines without synchronization.
type Class struct {
	Name        string // display name, e.g. "kona.lang.String", "byte[]"
	Kind        Kind   // KindRef for all reference types
	Superclass  *Class
	Interfaces  []*Class // directly declared interfaces
	Fields      []Field  // declared fields of this class only
	Elem        *Class   // array element type, nil unless this is an array
	IsInterface bool
}

// IsPrimitive reports whether the class describes a primitive type,
// void included.
func (c *Class) IsPrimitive() bool {
	return c.Kind != KindRef
}

// IsArray reports whether the class describes an array type.
func (c *Class) IsArray() bool {
	return c.Elem != nil
}

// IsObjectRoot reports whether the class sits at the top of the
// reference hierarchy.
func (c *Class) IsObjectRoot() bool {
	return c.Kind == KindRef && c.Superclass == nil && !c.IsInterface && c.Elem == nil
}

// IsAssignableFrom reports whether a value of class other can stand
// where a value of class c is expected. Primitive classes are
// assignable only from themselves. Arrays are covariant for reference
// element types and invariant for primitive element types.
func (c *Class) IsAssignableFrom(other *Class) bool {
	if c == other {
		return true
	}
	if c.Kind != KindRef || other.Kind != KindRef {
		return false
	}
	if c.IsObjectRoot() {
		return true
	}
	if c.Elem != nil {
		if other.Elem == nil {
			return false
		}
		if c.Elem.Kind != KindRef || other.Elem.Kind != KindRef {
			return false
		}
		return c.Elem.IsAssignableFrom(other.Elem)
	}
	if other.Elem != nil {
		return false
	}
	if c.IsInterface {
		return implementsInterface(other, c)
	}
	return other.isSubclassOf(c)
}

// isSubclassOf walks the superclass chain, the receiver included.
func (c *Class) isSubclassOf(target *Class) bool {
	for k := c; k != nil; k = k.Superclass {
		if k == target {
			return true
		}
	}
	return false
}

// implementsInterface reports whether c or any of its supertypes
// declares iface, directly or through a superinterface.
func implementsInterface(c, iface *Class) bool {
	if c == iface {
		return true
	}
	for _, i := range c.Interfaces {
		if implementsInterface(i, iface) {
			return true
		}
	}
	if c.Superclass != nil {
		return implementsInterface(c.Superclass, iface)
	}
	return false
}

// AllFieldNames returns the names of every non-static field declared by
// c and its superclasses, nearest declarations first.
func (c *Class) AllFieldNames() []string {
	var names []string
	for k := c; k != nil; k = k.Superclass {
		for _, f := range k.Fields {
			if !f.Static {
				names = append(names, f.Name)
			}
		}
	}
	return names
}
