package mappings

import (
	"fmt"

	"github.com/chazu/kona/interop"
	"github.com/chazu/kona/meta"
)

// Resolve declares every interface and class the config names into m,
// then builds the interop registry from the interop mappings. The
// registry comes back unsealed so the embedder can bind converter
// functions by name before sealing.
//
// Declarations may reference each other in any order; resolution
// iterates until it stops making progress and reports the first name
// that never resolves.
func (c *Config) Resolve(m *meta.Meta) (*interop.Mappings, error) {
	if err := c.declareInterfaces(m); err != nil {
		return nil, err
	}
	if err := c.declareClasses(m); err != nil {
		return nil, err
	}

	reg := interop.NewMappings(m)
	for _, im := range c.Interop.Interfaces {
		target := m.Lookup(im.Target)
		if target == nil {
			return nil, fmt.Errorf("mappings: interface mapping %q: unknown target %q", im.Foreign, im.Target)
		}
		if err := reg.AddInterface(im.Foreign, target); err != nil {
			return nil, err
		}
	}
	for _, cm := range c.Interop.Converters {
		target := m.Lookup(cm.Target)
		if target == nil {
			return nil, fmt.Errorf("mappings: converter mapping %q: unknown target %q", cm.Foreign, cm.Target)
		}
		if err := reg.AddConverter(cm.Foreign, target, nil); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (c *Config) declareInterfaces(m *meta.Meta) error {
	pending := make([]InterfaceDecl, len(c.Interfaces))
	copy(pending, c.Interfaces)

	for len(pending) > 0 {
		progress := false
		var next []InterfaceDecl
		for _, d := range pending {
			extends, ok := lookupAll(m, d.Extends)
			if !ok {
				next = append(next, d)
				continue
			}
			if _, err := m.DefineInterface(d.Name, extends); err != nil {
				return fmt.Errorf("mappings: %w", err)
			}
			progress = true
		}
		if !progress {
			d := next[0]
			return fmt.Errorf("mappings: interface %q references undeclared types %v", d.Name, missingNames(m, d.Extends))
		}
		pending = next
	}
	return nil
}

func (c *Config) declareClasses(m *meta.Meta) error {
	pending := make([]ClassDecl, len(c.Classes))
	copy(pending, c.Classes)

	for len(pending) > 0 {
		progress := false
		var next []ClassDecl
		for _, d := range pending {
			var superclass *meta.Class
			if d.Superclass != "" {
				if superclass = m.Lookup(d.Superclass); superclass == nil {
					next = append(next, d)
					continue
				}
			}
			ifaces, ok := lookupAll(m, d.Interfaces)
			if !ok {
				next = append(next, d)
				continue
			}
			fields := make([]meta.Field, 0, len(d.Fields)+len(d.StaticFields))
			for _, name := range d.Fields {
				fields = append(fields, meta.Field{Name: name})
			}
			for _, name := range d.StaticFields {
				fields = append(fields, meta.Field{Name: name, Static: true})
			}
			if _, err := m.DefineClass(d.Name, superclass, ifaces, fields); err != nil {
				return fmt.Errorf("mappings: %w", err)
			}
			progress = true
		}
		if !progress {
			d := next[0]
			missing := missingNames(m, append([]string{d.Superclass}, d.Interfaces...))
			return fmt.Errorf("mappings: class %q references undeclared types %v", d.Name, missing)
		}
		pending = next
	}
	return nil
}

func lookupAll(m *meta.Meta, names []string) ([]*meta.Class, bool) {
	if len(names) == 0 {
		return nil, true
	}
	classes := make([]*meta.Class, 0, len(names))
	for _, name := range names {
		c := m.Lookup(name)
		if c == nil {
			return nil, false
		}
		classes = append(classes, c)
	}
	return classes, true
}

func missingNames(m *meta.Meta, names []string) []string {
	var missing []string
	for _, name := range names {
		if name != "" && m.Lookup(name) == nil {
			missing = append(missing, name)
		}
	}
	return missing
}
