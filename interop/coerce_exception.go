package interop

import (
	"github.com/chazu/kona/foreign"
	"github.com/chazu/kona/meta"
)

// toThrowableFamily serves the four throwable targets: the foreign
// exception marker, Throwable, Exception and RuntimeException. A
// thrown guest exception unwraps to its exception object, re-checked
// against the requested family member. Exceptional foreign values wrap
// as ForeignException, which sits below RuntimeException and therefore
// satisfies every member.
type toThrowableFamily struct {
	e      *Engine
	member *meta.Class
}

func (c *toThrowableFamily) Coerce(value any) (*meta.Object, error) {
	switch v := value.(type) {
	case *meta.GuestError:
		ex := v.Exception()
		if c.member.IsAssignableFrom(ex.Class()) {
			return ex, nil
		}
	case *meta.Object:
		if v.IsNull() || c.member.IsAssignableFrom(v.Class()) {
			return v, nil
		}
	case foreign.Value:
		if v.IsNull() {
			return meta.NewForeignNull(v), nil
		}
		if v.IsException() {
			return c.e.meta.NewForeignException(v), nil
		}
	}
	return nil, unsupported(value, c.member)
}
