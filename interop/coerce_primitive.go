package interop

import (
	"github.com/chazu/kona/foreign"
	"github.com/chazu/kona/meta"
)

// toVoid serves void call sites, which have no result to coerce.
type toVoid struct{}

func (toVoid) Coerce(any) (*meta.Object, error) {
	return meta.Null, nil
}

// toPrimitive narrows to one primitive kind and boxes the result. It
// serves both primitive targets and their box classes; the two differ
// only in what the caller does with the box.
type toPrimitive struct {
	e    *Engine
	kind meta.Kind
}

func (c *toPrimitive) Coerce(value any) (*meta.Object, error) {
	if fv, ok := value.(foreign.Value); ok && fv.IsNull() {
		return meta.NewForeignNull(fv), nil
	}
	if o, ok := c.narrow(value); ok {
		return o, nil
	}
	return nil, unsupported(value, c.e.meta.PrimClass(c.kind))
}

func (c *toPrimitive) narrow(value any) (*meta.Object, bool) {
	m := c.e.meta
	// A box of the matching kind passes through; cross-kind boxes do
	// not re-narrow.
	if o, ok := value.(*meta.Object); ok {
		if m.UnboxedKind(o.Class()) == c.kind {
			return o, true
		}
		return nil, false
	}
	switch c.kind {
	case meta.KindBoolean:
		switch v := value.(type) {
		case bool:
			return m.BoxBoolean(v), true
		case foreign.Value:
			if v.IsBoolean() {
				return m.BoxBoolean(mustBoolean(v)), true
			}
		}
	case meta.KindChar:
		switch v := value.(type) {
		case uint16:
			return m.BoxChar(v), true
		case string:
			if u, ok := singleUTF16(v); ok {
				return m.BoxChar(u), true
			}
		case foreign.Value:
			if v.IsString() {
				if u, ok := singleUTF16(mustString(v)); ok {
					return m.BoxChar(u), true
				}
			}
		}
	default:
		return c.narrowNumeric(value)
	}
	return nil, false
}

func (c *toPrimitive) narrowNumeric(value any) (*meta.Object, bool) {
	m := c.e.meta
	if i, ok := hostLong(value); ok {
		switch c.kind {
		case meta.KindByte:
			if longFitsByte(i) {
				return m.BoxByte(int8(i)), true
			}
		case meta.KindShort:
			if longFitsShort(i) {
				return m.BoxShort(int16(i)), true
			}
		case meta.KindInt:
			if longFitsInt(i) {
				return m.BoxInt(int32(i)), true
			}
		case meta.KindLong:
			return m.BoxLong(i), true
		case meta.KindFloat:
			if longFitsFloat(i) {
				return m.BoxFloat(float32(i)), true
			}
		case meta.KindDouble:
			if longFitsDouble(i) {
				return m.BoxDouble(float64(i)), true
			}
		}
		return nil, false
	}
	if f, ok := hostDouble(value); ok {
		switch c.kind {
		case meta.KindByte:
			if doubleFitsLong(f) && longFitsByte(int64(f)) {
				return m.BoxByte(int8(f)), true
			}
		case meta.KindShort:
			if doubleFitsLong(f) && longFitsShort(int64(f)) {
				return m.BoxShort(int16(f)), true
			}
		case meta.KindInt:
			if doubleFitsLong(f) && longFitsInt(int64(f)) {
				return m.BoxInt(int32(f)), true
			}
		case meta.KindLong:
			if doubleFitsLong(f) {
				return m.BoxLong(int64(f)), true
			}
		case meta.KindFloat:
			if doubleFitsFloat(f) {
				return m.BoxFloat(float32(f)), true
			}
		case meta.KindDouble:
			return m.BoxDouble(f), true
		}
		return nil, false
	}
	fv, ok := value.(foreign.Value)
	if !ok || !fv.IsNumber() {
		return nil, false
	}
	switch c.kind {
	case meta.KindByte:
		if fv.FitsInByte() {
			return m.BoxByte(mustByte(fv)), true
		}
	case meta.KindShort:
		if fv.FitsInShort() {
			return m.BoxShort(mustShort(fv)), true
		}
	case meta.KindInt:
		if fv.FitsInInt() {
			return m.BoxInt(mustInt(fv)), true
		}
	case meta.KindLong:
		if fv.FitsInLong() {
			return m.BoxLong(mustLong(fv)), true
		}
	case meta.KindFloat:
		if fv.FitsInFloat() {
			return m.BoxFloat(mustFloat(fv)), true
		}
	case meta.KindDouble:
		if fv.FitsInDouble() {
			return m.BoxDouble(mustDouble(fv)), true
		}
	}
	return nil, false
}
