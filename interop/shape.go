package interop

import "github.com/chazu/kona/meta"

// Shape tags the coercion strategy a target type requires. Every class
// classifies to exactly one shape.
type Shape uint8

const (
	ShapeVoid Shape = iota
	ShapeBoolean
	ShapeByte
	ShapeShort
	ShapeChar
	ShapeInt
	ShapeLong
	ShapeFloat
	ShapeDouble
	ShapeNumber
	ShapeByteArray
	ShapeArray
	ShapeObjectRoot
	ShapeString
	ShapeMappedInterface
	ShapeCharSequence
	ShapeForeignException
	ShapeThrowable
	ShapeException
	ShapeRuntimeException
	ShapeLocalDate
	ShapeLocalTime
	ShapeLocalDateTime
	ShapeZonedDateTime
	ShapeInstant
	ShapeDuration
	ShapeZoneID
	ShapeUtilDate
	ShapeMappedType
	ShapeUnknown
)

const shapeCount = int(ShapeUnknown) + 1

var shapeNames = [...]string{
	ShapeVoid:             "void",
	ShapeBoolean:          "boolean",
	ShapeByte:             "byte",
	ShapeShort:            "short",
	ShapeChar:             "char",
	ShapeInt:              "int",
	ShapeLong:             "long",
	ShapeFloat:            "float",
	ShapeDouble:           "double",
	ShapeNumber:           "number",
	ShapeByteArray:        "byte array",
	ShapeArray:            "array",
	ShapeObjectRoot:       "object root",
	ShapeString:           "string",
	ShapeMappedInterface:  "mapped interface",
	ShapeCharSequence:     "char sequence",
	ShapeForeignException: "foreign exception",
	ShapeThrowable:        "throwable",
	ShapeException:        "exception",
	ShapeRuntimeException: "runtime exception",
	ShapeLocalDate:        "local date",
	ShapeLocalTime:        "local time",
	ShapeLocalDateTime:    "local date time",
	ShapeZonedDateTime:    "zoned date time",
	ShapeInstant:          "instant",
	ShapeDuration:         "duration",
	ShapeZoneID:           "zone id",
	ShapeUtilDate:         "date",
	ShapeMappedType:       "mapped type",
	ShapeUnknown:          "unknown",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "invalid"
}

func shapeOfKind(k meta.Kind) Shape {
	switch k {
	case meta.KindBoolean:
		return ShapeBoolean
	case meta.KindByte:
		return ShapeByte
	case meta.KindShort:
		return ShapeShort
	case meta.KindChar:
		return ShapeChar
	case meta.KindInt:
		return ShapeInt
	case meta.KindLong:
		return ShapeLong
	case meta.KindFloat:
		return ShapeFloat
	case meta.KindDouble:
		return ShapeDouble
	case meta.KindVoid:
		return ShapeVoid
	}
	return ShapeUnknown
}

// Classify maps a target type to its coercion shape. The check order
// is fixed and encodes precedence: a box class is boxed before it is a
// Number, an interface with a registered proxy mapping is mapped
// before it is CharSequence, a well-known class wins over a registered
// converter, and only types nothing else claims fall through to the
// structural unknown shape.
func (e *Engine) Classify(target *meta.Class) Shape {
	m := e.meta
	if target.IsPrimitive() {
		return shapeOfKind(target.Kind)
	}
	if k := m.UnboxedKind(target); k != meta.KindRef {
		return shapeOfKind(k)
	}
	switch target {
	case m.Number:
		return ShapeNumber
	case m.ByteArray:
		return ShapeByteArray
	}
	if target.IsArray() {
		return ShapeArray
	}
	if target.IsObjectRoot() {
		return ShapeObjectRoot
	}
	if target == m.String {
		return ShapeString
	}
	if target.IsInterface {
		switch {
		case e.mappings.MapsInterface(target):
			return ShapeMappedInterface
		case target == m.CharSequence:
			return ShapeCharSequence
		default:
			return ShapeUnknown
		}
	}
	switch target {
	case m.ForeignException:
		return ShapeForeignException
	case m.Throwable:
		return ShapeThrowable
	case m.Exception:
		return ShapeException
	case m.RuntimeException:
		return ShapeRuntimeException
	case m.LocalDate:
		return ShapeLocalDate
	case m.LocalTime:
		return ShapeLocalTime
	case m.LocalDateTime:
		return ShapeLocalDateTime
	case m.ZonedDateTime:
		return ShapeZonedDateTime
	case m.Instant:
		return ShapeInstant
	case m.Duration:
		return ShapeDuration
	case m.ZoneID:
		return ShapeZoneID
	case m.UtilDate:
		return ShapeUtilDate
	}
	if e.mappings.MapsType(target) {
		return ShapeMappedType
	}
	return ShapeUnknown
}
