package interop

import (
	"errors"

	"github.com/chazu/kona/foreign"
	"github.com/chazu/kona/meta"
)

// toObjectRoot serves the universal top type. Every managed value
// passes; everything else probes the protocol in a fixed order and
// takes the first capability that matches.
type toObjectRoot struct {
	e *Engine
}

func (c *toObjectRoot) Coerce(value any) (*meta.Object, error) {
	m := c.e.meta
	switch v := value.(type) {
	case *meta.Object:
		return v, nil
	case *meta.GuestError:
		return v.Exception(), nil
	case string:
		return m.NewString(v), nil
	case bool:
		return m.BoxBoolean(v), nil
	case int8:
		return m.BoxByte(v), nil
	case int16:
		return m.BoxShort(v), nil
	case int32:
		return m.BoxInt(v), nil
	case int64:
		return m.BoxLong(v), nil
	case int:
		return m.BoxLong(int64(v)), nil
	case uint16:
		return m.BoxChar(v), nil
	case float32:
		return m.BoxFloat(v), nil
	case float64:
		return m.BoxDouble(v), nil
	case foreign.Value:
		return c.coerceForeign(v)
	}
	return nil, unsupported(value, m.Object)
}

func (c *toObjectRoot) coerceForeign(v foreign.Value) (*meta.Object, error) {
	m := c.e.meta
	switch {
	case v.IsNull():
		return meta.NewForeignNull(v), nil
	case v.IsBoolean():
		return m.BoxBoolean(mustBoolean(v)), nil
	case v.IsNumber():
		// Number-shaped handles stay foreign; only the width claim is
		// checked here.
		if v.FitsInDouble() {
			return meta.NewForeign(m.Number, v), nil
		}
		return nil, couldNotCast(v, m.Object, "unsupported number")
	case v.IsString():
		return m.NewString(mustString(v)), nil
	case v.IsException():
		return m.NewForeignException(v), nil
	case v.HasArrayElements():
		return meta.NewForeign(m.Object, v), nil
	case v.HasBufferElements():
		return meta.NewForeign(m.ByteArray, v), nil
	case v.HasMetaObject() && c.e.mappings.HasMappings():
		return c.coerceMapped(v)
	default:
		return meta.NewForeign(m.Object, v), nil
	}
}

// coerceMapped resolves a typed composite against the extension
// registry: converter first, proxy second, plain object-root wrap when
// neither claims the foreign type.
func (c *toObjectRoot) coerceMapped(v foreign.Value) (*meta.Object, error) {
	m := c.e.meta
	name, err := metaName(v)
	if err != nil {
		return nil, couldNotCast(v, m.Object, "due to: %s", err)
	}
	if conv := c.e.mappings.LookupConverter(name); conv != nil {
		out, cerr := conv.Convert(meta.NewForeign(m.Object, v))
		if cerr != nil {
			var ge *meta.GuestError
			if errors.As(cerr, &ge) {
				return nil, cerr
			}
			return nil, couldNotCast(v, m.Object, "due to: %s", cerr)
		}
		return out, nil
	}
	if proxy := c.e.mappings.LookupProxy(name, m.Object); proxy != nil {
		return meta.NewForeign(proxy, v), nil
	}
	return meta.NewForeign(m.Object, v), nil
}

// metaName reads the qualified type name off a value's meta object.
// Failures are reported, not panicked: meta objects come from foreign
// type systems whose introspection may legitimately refuse.
func metaName(v foreign.Value) (string, error) {
	mo, err := v.MetaObject()
	if err != nil {
		return "", err
	}
	return mo.MetaQualifiedName()
}
