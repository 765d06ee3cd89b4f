package interop

import (
	"github.com/tliron/commonlog"

	"github.com/chazu/kona/meta"
)

var log = commonlog.GetLogger("kona.interop")

// Coercer converts values to managed objects for one fixed target
// type. Implementations are immutable and safe for concurrent use.
//
// The inputs a Coercer understands: managed objects (*meta.Object),
// thrown guest exceptions (*meta.GuestError), foreign values
// (foreign.Value), and the host scalars bool, int8, int16, int32,
// int64, int, uint16 (one UTF-16 code unit), float32, float64 and
// string. Host int is treated as a long. Anything else fails with
// *UnsupportedTypeError.
type Coercer interface {
	Coerce(value any) (*meta.Object, error)
}

// Engine builds coercers over one type universe and one extension
// registry.
type Engine struct {
	meta     *meta.Meta
	mappings TypeMappings
	shared   [shapeCount]Coercer
}

// Option configures an Engine.
type Option func(*Engine)

// WithMappings installs the extension registry consulted for interface
// proxies and type converters. Without it the engine runs with
// NoMappings and every interface that is not CharSequence is
// unreachable from foreign values.
func WithMappings(tm TypeMappings) Option {
	return func(e *Engine) {
		if tm != nil {
			e.mappings = tm
		}
	}
}

// New builds an engine over the given type universe.
func New(m *meta.Meta, opts ...Option) *Engine {
	e := &Engine{meta: m, mappings: NoMappings}
	for _, opt := range opts {
		opt(e)
	}

	e.shared[ShapeVoid] = toVoid{}
	for _, k := range []meta.Kind{
		meta.KindBoolean, meta.KindByte, meta.KindShort, meta.KindChar,
		meta.KindInt, meta.KindLong, meta.KindFloat, meta.KindDouble,
	} {
		e.shared[shapeOfKind(k)] = &toPrimitive{e: e, kind: k}
	}
	e.shared[ShapeNumber] = &toNumber{e: e}
	e.shared[ShapeByteArray] = &toByteArray{e: e}
	e.shared[ShapeObjectRoot] = &toObjectRoot{e: e}
	e.shared[ShapeString] = &toString{e: e}
	e.shared[ShapeCharSequence] = &toCharSequence{e: e}
	e.shared[ShapeForeignException] = &toThrowableFamily{e: e, member: m.ForeignException}
	e.shared[ShapeThrowable] = &toThrowableFamily{e: e, member: m.Throwable}
	e.shared[ShapeException] = &toThrowableFamily{e: e, member: m.Exception}
	e.shared[ShapeRuntimeException] = &toThrowableFamily{e: e, member: m.RuntimeException}
	installTemporals(e)

	return e
}

// Meta returns the engine's type universe.
func (e *Engine) Meta() *meta.Meta { return e.meta }

// Mappings returns the engine's extension registry.
func (e *Engine) Mappings() TypeMappings { return e.mappings }

// NewCoercer builds the coercer for a target type. Target-independent
// shapes share one coercer per engine; shapes that close over their
// target (generic arrays, mapped interfaces, converter types, unknown
// composites) get a fresh one.
func (e *Engine) NewCoercer(target *meta.Class) Coercer {
	shape := e.Classify(target)
	switch shape {
	case ShapeArray:
		return &toArray{e: e, target: target}
	case ShapeMappedInterface:
		return &toMappedInterface{e: e, target: target}
	case ShapeMappedType:
		return &toMappedType{e: e, target: target}
	case ShapeUnknown:
		return &toUnknown{e: e, target: target}
	default:
		return e.shared[shape]
	}
}

// SharedCoercer returns the engine-wide coercer for targets whose
// shape needs no per-target state. It panics with *InvariantError for
// shapes that do; those must go through NewCoercer.
func (e *Engine) SharedCoercer(target *meta.Class) Coercer {
	shape := e.Classify(target)
	if c := e.shared[shape]; c != nil {
		return c
	}
	panic(&InvariantError{Shape: shape, Target: target})
}

// Coerce classifies target and converts value in one step, without
// retaining a coercer. Call sites that repeat should hold on to a
// NewCoercer result or use a Dynamic cache instead.
func (e *Engine) Coerce(value any, target *meta.Class) (*meta.Object, error) {
	return e.coerceGeneric(value, target)
}
