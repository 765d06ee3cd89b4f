package interop

import (
	"github.com/chazu/kona/foreign"
	"github.com/chazu/kona/meta"
)

// toNumber serves the abstract Number class. Host numerics box at
// their own width; foreign numbers box at the narrowest width they fit
// (see boxSmallest). Booleans and chars are not numbers.
type toNumber struct {
	e *Engine
}

func (c *toNumber) Coerce(value any) (*meta.Object, error) {
	m := c.e.meta
	switch v := value.(type) {
	case *meta.Object:
		if v.IsNull() || m.Number.IsAssignableFrom(v.Class()) {
			return v, nil
		}
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
	case float32:
		return m.BoxFloat(v), nil
	case float64:
		return m.BoxDouble(v), nil
	case foreign.Value:
		if v.IsNull() {
			return meta.NewForeignNull(v), nil
		}
		if v.IsNumber() {
			if o, ok := boxSmallest(m, v); ok {
				return o, nil
			}
		}
	}
	return nil, unsupported(value, m.Number)
}
