package interop

import (
	"github.com/chazu/kona/foreign"
	"github.com/chazu/kona/meta"
)

// toTemporal serves one date/time class. fits is the conjunction of
// protocol predicates that class requires; a value satisfying only
// part of a conjunction is unsupported, never half-built. build
// combines the accessor results through the class's own constructor.
type toTemporal struct {
	e      *Engine
	target *meta.Class
	fits   func(foreign.Value) bool
	build  func(*meta.Meta, foreign.Value) *meta.Object
}

func (c *toTemporal) Coerce(value any) (*meta.Object, error) {
	switch v := value.(type) {
	case *meta.Object:
		if v.IsNull() || c.target.IsAssignableFrom(v.Class()) {
			return v, nil
		}
	case foreign.Value:
		if v.IsNull() {
			return meta.NewForeignNull(v), nil
		}
		if c.fits(v) {
			return c.build(c.e.meta, v), nil
		}
	}
	return nil, unsupported(value, c.target)
}

func installTemporals(e *Engine) {
	m := e.meta
	e.shared[ShapeLocalDate] = &toTemporal{
		e: e, target: m.LocalDate,
		fits:  foreign.Value.IsDate,
		build: buildLocalDate,
	}
	e.shared[ShapeLocalTime] = &toTemporal{
		e: e, target: m.LocalTime,
		fits:  foreign.Value.IsTime,
		build: buildLocalTime,
	}
	e.shared[ShapeLocalDateTime] = &toTemporal{
		e: e, target: m.LocalDateTime,
		fits:  func(v foreign.Value) bool { return v.IsDate() && v.IsTime() },
		build: buildLocalDateTime,
	}
	e.shared[ShapeZonedDateTime] = &toTemporal{
		e: e, target: m.ZonedDateTime,
		fits:  func(v foreign.Value) bool { return v.IsInstant() && v.IsTimeZone() },
		build: buildZonedDateTime,
	}
	e.shared[ShapeInstant] = &toTemporal{
		e: e, target: m.Instant,
		fits:  foreign.Value.IsInstant,
		build: buildInstant,
	}
	e.shared[ShapeDuration] = &toTemporal{
		e: e, target: m.Duration,
		fits:  foreign.Value.IsDuration,
		build: buildDuration,
	}
	e.shared[ShapeZoneID] = &toTemporal{
		e: e, target: m.ZoneID,
		fits:  foreign.Value.IsTimeZone,
		build: buildZoneID,
	}
	e.shared[ShapeUtilDate] = &toTemporal{
		e: e, target: m.UtilDate,
		fits:  foreign.Value.IsInstant,
		build: buildUtilDate,
	}
}

func buildLocalDate(m *meta.Meta, v foreign.Value) *meta.Object {
	return m.NewLocalDate(mustDate(v))
}

func buildLocalTime(m *meta.Meta, v foreign.Value) *meta.Object {
	return m.NewLocalTime(mustTime(v))
}

func buildLocalDateTime(m *meta.Meta, v foreign.Value) *meta.Object {
	return m.NewLocalDateTime(m.NewLocalDate(mustDate(v)), m.NewLocalTime(mustTime(v)))
}

func buildInstant(m *meta.Meta, v foreign.Value) *meta.Object {
	t := mustInstant(v)
	return m.NewInstant(t.Unix(), int32(t.Nanosecond()))
}

func buildZonedDateTime(m *meta.Meta, v foreign.Value) *meta.Object {
	return m.NewZonedDateTime(buildInstant(m, v), m.NewZoneID(mustTimeZone(v)))
}

func buildDuration(m *meta.Meta, v foreign.Value) *meta.Object {
	return m.NewDuration(mustDuration(v))
}

func buildZoneID(m *meta.Meta, v foreign.Value) *meta.Object {
	// The zone id string is carried verbatim; no normalization here.
	return m.NewZoneID(mustTimeZone(v))
}

func buildUtilDate(m *meta.Meta, v foreign.Value) *meta.Object {
	return m.NewUtilDate(buildInstant(m, v))
}
