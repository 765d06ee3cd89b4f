package interop

import (
	"github.com/chazu/kona/foreign"
	"github.com/chazu/kona/meta"
)

// toByteArray serves the byte[] class through the buffer protocol.
// Strings are excluded even when they expose buffer elements; a string
// that should act as bytes must be converted by the embedder first.
type toByteArray struct {
	e *Engine
}

func (c *toByteArray) Coerce(value any) (*meta.Object, error) {
	m := c.e.meta
	switch v := value.(type) {
	case *meta.Object:
		if v.IsNull() || v.Class() == m.ByteArray {
			return v, nil
		}
	case foreign.Value:
		if v.IsNull() {
			return meta.NewForeignNull(v), nil
		}
		if v.HasBufferElements() && !v.IsString() {
			return meta.NewForeign(m.ByteArray, v), nil
		}
	}
	return nil, unsupported(value, m.ByteArray)
}

// toArray serves array targets other than byte[] through the array
// protocol. The wrapped handle keeps the target type so element loads
// know what they must produce.
type toArray struct {
	e      *Engine
	target *meta.Class
}

func (c *toArray) Coerce(value any) (*meta.Object, error) {
	switch v := value.(type) {
	case *meta.Object:
		if v.IsNull() || c.target.IsAssignableFrom(v.Class()) {
			return v, nil
		}
	case foreign.Value:
		if v.IsNull() {
			return meta.NewForeignNull(v), nil
		}
		if v.HasArrayElements() && !v.IsString() {
			return meta.NewForeign(c.target, v), nil
		}
	}
	return nil, unsupported(value, c.target)
}
