package interop

import (
	"errors"

	"github.com/chazu/kona/foreign"
	"github.com/chazu/kona/meta"
)

// toMappedInterface serves interface targets with a registered proxy
// mapping. Foreign values reach the interface only through a proxy
// class generated for their reported meta name.
type toMappedInterface struct {
	e      *Engine
	target *meta.Class
}

func (c *toMappedInterface) Coerce(value any) (*meta.Object, error) {
	switch v := value.(type) {
	case *meta.Object:
		if v.IsNull() || c.target.IsAssignableFrom(v.Class()) {
			return v, nil
		}
	case foreign.Value:
		if v.IsNull() {
			return meta.NewForeignNull(v), nil
		}
		if v.HasMetaObject() {
			name, err := metaName(v)
			if err != nil {
				return nil, couldNotCast(v, c.target, "%s", err)
			}
			if proxy := c.e.mappings.LookupProxy(name, c.target); proxy != nil {
				return meta.NewForeign(proxy, v), nil
			}
			return nil, couldNotCast(v, c.target, "no interface mapping for %s", name)
		}
	}
	return nil, unsupported(value, c.target)
}

// toMappedType serves class targets produced by a registered
// converter. The converter receives a handle already typed by the
// target and owns the result; the engine does not re-check it.
type toMappedType struct {
	e      *Engine
	target *meta.Class
}

func (c *toMappedType) Coerce(value any) (*meta.Object, error) {
	switch v := value.(type) {
	case *meta.Object:
		if v.IsNull() || c.target.IsAssignableFrom(v.Class()) {
			return v, nil
		}
	case foreign.Value:
		if v.IsNull() {
			return meta.NewForeignNull(v), nil
		}
		if v.HasMetaObject() {
			name, err := metaName(v)
			if err != nil {
				return nil, couldNotCast(v, c.target, "%s", err)
			}
			conv := c.e.mappings.LookupConverter(name)
			if conv == nil {
				return nil, couldNotCast(v, c.target, "no converter for %s", name)
			}
			out, cerr := conv.Convert(meta.NewForeign(c.target, v))
			if cerr != nil {
				var ge *meta.GuestError
				if errors.As(cerr, &ge) {
					return nil, cerr
				}
				return nil, couldNotCast(v, c.target, "%s", cerr)
			}
			return out, nil
		}
	}
	return nil, unsupported(value, c.target)
}
