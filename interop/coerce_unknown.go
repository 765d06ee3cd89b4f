package interop

import (
	"github.com/chazu/kona/foreign"
	"github.com/chazu/kona/meta"
)

// toUnknown serves targets nothing else claims: embedder classes
// reached structurally. A foreign value must present a member for
// every field the target declares, superclasses included. Interfaces
// have no fields to check against, so foreign values never reach an
// interface without a proxy mapping.
type toUnknown struct {
	e      *Engine
	target *meta.Class
}

func (c *toUnknown) Coerce(value any) (*meta.Object, error) {
	switch v := value.(type) {
	case *meta.Object:
		if v.IsNull() || c.target.IsAssignableFrom(v.Class()) {
			return v, nil
		}
	case foreign.Value:
		if v.IsNull() {
			return meta.NewForeignNull(v), nil
		}
		if c.target.IsInterface {
			break
		}
		if err := checkFields(v, c.target, c.e.meta); err != nil {
			return nil, err
		}
		return meta.NewForeign(c.target, v), nil
	}
	return nil, unsupported(value, c.target)
}

// checkFields is the structural duck check. Box-like targets accept a
// value that directly fits their primitive; everything else must show
// a member per declared non-static field, walking superclasses up to
// but not including the object root. The first missing field aborts.
func checkFields(v foreign.Value, target *meta.Class, m *meta.Meta) error {
	if k := m.UnboxedKind(target); k != meta.KindRef && fitsKind(v, k) {
		return nil
	}
	for cls := target; cls != nil && !cls.IsObjectRoot(); cls = cls.Superclass {
		for _, f := range cls.Fields {
			if f.Static {
				continue
			}
			if !v.HasMember(f.Name) {
				return couldNotCast(v, target, "Missing field: %s", f.Name)
			}
		}
	}
	return nil
}

// fitsKind mirrors the primitive narrowing predicates without reading
// any accessor besides the char case's string.
func fitsKind(v foreign.Value, k meta.Kind) bool {
	switch k {
	case meta.KindBoolean:
		return v.IsBoolean()
	case meta.KindByte:
		return v.IsNumber() && v.FitsInByte()
	case meta.KindShort:
		return v.IsNumber() && v.FitsInShort()
	case meta.KindChar:
		if !v.IsString() {
			return false
		}
		_, ok := singleUTF16(mustString(v))
		return ok
	case meta.KindInt:
		return v.IsNumber() && v.FitsInInt()
	case meta.KindLong:
		return v.IsNumber() && v.FitsInLong()
	case meta.KindFloat:
		return v.IsNumber() && v.FitsInFloat()
	case meta.KindDouble:
		return v.IsNumber() && v.FitsInDouble()
	}
	return false
}
