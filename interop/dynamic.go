package interop

import (
	"sync/atomic"

	"github.com/chazu/kona/meta"
)

// Limit caps how many distinct target types one call site caches
// before it flips to the generic path.
const Limit = 8

// Dynamic is a per-call-site coercion cache. Build one with
// Engine.NewDynamic; the zero value is not usable.
//
// A site starts empty and caches one coercer per distinct target type.
// Seeing more than Limit distinct targets flips the site permanently
// to a generic path that classifies on every call: type diversity at a
// call site is assumed stable once high, so the flip never reverts.
type Dynamic struct {
	e     *Engine
	state atomic.Pointer[dynState]
}

// dynState is an immutable snapshot; every transition installs a fresh
// one, so readers never see a half-updated cache.
type dynState struct {
	generic bool
	entries []dynEntry
}

type dynEntry struct {
	target *meta.Class
	conv   Coercer
}

// NewDynamic builds a call-site cache over the engine.
func (e *Engine) NewDynamic() *Dynamic {
	d := &Dynamic{e: e}
	d.state.Store(&dynState{})
	return d
}

// Generic reports whether the site has flipped to the generic path.
func (d *Dynamic) Generic() bool {
	return d.state.Load().generic
}

// Targets returns how many target types the site currently caches.
func (d *Dynamic) Targets() int {
	return len(d.state.Load().entries)
}

// Execute coerces value to target, remembering the target's coercer
// for later calls.
//
// Managed values that already satisfy the target skip conversion
// entirely, whatever state the site is in.
func (d *Dynamic) Execute(value any, target *meta.Class) (*meta.Object, error) {
	if o, ok := value.(*meta.Object); ok {
		if o.IsNull() || target.IsAssignableFrom(o.Class()) {
			return o, nil
		}
	}
	st := d.state.Load()
	if st.generic {
		return d.e.coerceGeneric(value, target)
	}
	for i := range st.entries {
		if st.entries[i].target == target {
			return st.entries[i].conv.Coerce(value)
		}
	}
	return d.record(st, value, target)
}

// record installs a coercer for a target the site has not seen, then
// runs it. Concurrent first observations may build the same coercer
// twice; exactly one snapshot wins the swap and the losers retry
// against it, so the entry count never exceeds Limit.
func (d *Dynamic) record(st *dynState, value any, target *meta.Class) (*meta.Object, error) {
	conv := d.e.NewCoercer(target)
	for {
		if st.generic {
			return d.e.coerceGeneric(value, target)
		}
		for i := range st.entries {
			if st.entries[i].target == target {
				return st.entries[i].conv.Coerce(value)
			}
		}
		var next *dynState
		if len(st.entries) >= Limit {
			next = &dynState{generic: true}
		} else {
			entries := make([]dynEntry, len(st.entries)+1)
			copy(entries, st.entries)
			entries[len(st.entries)] = dynEntry{target: target, conv: conv}
			next = &dynState{entries: entries}
		}
		if d.state.CompareAndSwap(st, next) {
			if next.generic {
				log.Debugf("call site flipped to generic after %d cached target types", len(st.entries))
				return d.e.coerceGeneric(value, target)
			}
			return conv.Coerce(value)
		}
		st = d.state.Load()
	}
}

// coerceGeneric is the megamorphic path: classify on every call,
// dispatch shared shapes through the engine singletons and build the
// per-target shapes on the stack. Behavior matches the cached coercers
// exactly.
func (e *Engine) coerceGeneric(value any, target *meta.Class) (*meta.Object, error) {
	shape := e.Classify(target)
	switch shape {
	case ShapeArray:
		c := toArray{e: e, target: target}
		return c.Coerce(value)
	case ShapeMappedInterface:
		c := toMappedInterface{e: e, target: target}
		return c.Coerce(value)
	case ShapeMappedType:
		c := toMappedType{e: e, target: target}
		return c.Coerce(value)
	case ShapeUnknown:
		c := toUnknown{e: e, target: target}
		return c.Coerce(value)
	default:
		return e.shared[shape].Coerce(value)
	}
}
