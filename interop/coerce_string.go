package interop

import (
	"github.com/chazu/kona/foreign"
	"github.com/chazu/kona/meta"
)

// toString serves the managed string class.
type toString struct {
	e *Engine
}

func (c *toString) Coerce(value any) (*meta.Object, error) {
	m := c.e.meta
	switch v := value.(type) {
	case *meta.Object:
		if v.IsNull() || v.Class() == m.String {
			return v, nil
		}
	case string:
		return m.NewString(v), nil
	case foreign.Value:
		if v.IsNull() {
			return meta.NewForeignNull(v), nil
		}
		if v.IsString() {
			return m.NewString(mustString(v)), nil
		}
	}
	return nil, unsupported(value, m.String)
}

// toCharSequence accepts anything string-like plus managed values whose
// class already implements the interface.
type toCharSequence struct {
	e *Engine
}

func (c *toCharSequence) Coerce(value any) (*meta.Object, error) {
	m := c.e.meta
	switch v := value.(type) {
	case *meta.Object:
		if v.IsNull() || m.CharSequence.IsAssignableFrom(v.Class()) {
			return v, nil
		}
	case string:
		return m.NewString(v), nil
	case foreign.Value:
		if v.IsNull() {
			return meta.NewForeignNull(v), nil
		}
		if v.IsString() {
			return m.NewString(mustString(v)), nil
		}
	}
	return nil, unsupported(value, m.CharSequence)
}
