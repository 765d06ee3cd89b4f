// Package wirevalue moves foreign values between processes as CBOR
// snapshots.
//
// Capture walks a foreign value's capability surface into a Snapshot:
// every predicate that answers true has its payload read and recorded,
// arrays and members recursively. Encode and Decode move snapshots as
// canonical CBOR bytes, and Snapshot.Value exposes a decoded snapshot
// through the foreign-value protocol again, so remote values coerce
// exactly like local ones. Transport of the bytes is the embedder's
// business.
package wirevalue

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/kona/foreign"
)

// Capability bits recorded in Snapshot.Caps. CapLong and CapDouble
// discriminate the number lane: integers travel as int64, everything
// else as float64.
const (
	CapNull uint32 = 1 << iota
	CapBoolean
	CapLong
	CapDouble
	CapString
	CapException
	CapArray
	CapBuffer
	CapMembers
	CapMeta
	CapDate
	CapTime
	CapInstant
	CapDuration
	CapZone
)

// Snapshot is the wire form of one foreign value. The capability
// bitmask is authoritative: payload fields are meaningful only when
// the matching bit is set, which keeps empty buffers, arrays and
// member lists distinguishable from absent capabilities.
type Snapshot struct {
	Caps     uint32         `cbor:"1,keyasint"`
	Bool     bool           `cbor:"2,keyasint,omitempty"`
	Long     int64          `cbor:"3,keyasint,omitempty"`
	Double   float64        `cbor:"4,keyasint,omitempty"`
	Str      string         `cbor:"5,keyasint,omitempty"`
	Buffer   []byte         `cbor:"6,keyasint,omitempty"`
	Array    []*Snapshot    `cbor:"7,keyasint,omitempty"`
	Members  []Member       `cbor:"8,keyasint,omitempty"`
	MetaName string         `cbor:"9,keyasint,omitempty"`
	Date     *DateParts     `cbor:"10,keyasint,omitempty"`
	Time     *TimeParts     `cbor:"11,keyasint,omitempty"`
	Instant  *InstantParts  `cbor:"12,keyasint,omitempty"`
	Duration *DurationParts `cbor:"13,keyasint,omitempty"`
	Zone     string         `cbor:"14,keyasint,omitempty"`
}

// Member is one named member in capture order.
type Member struct {
	Name  string    `cbor:"1,keyasint"`
	Value *Snapshot `cbor:"2,keyasint"`
}

type DateParts struct {
	Year  int `cbor:"1,keyasint"`
	Month int `cbor:"2,keyasint"`
	Day   int `cbor:"3,keyasint"`
}

type TimeParts struct {
	Hour   int `cbor:"1,keyasint"`
	Minute int `cbor:"2,keyasint"`
	Second int `cbor:"3,keyasint"`
	Nano   int `cbor:"4,keyasint"`
}

type InstantParts struct {
	Seconds int64 `cbor:"1,keyasint"`
	Nanos   int32 `cbor:"2,keyasint"`
}

type DurationParts struct {
	Seconds int64 `cbor:"1,keyasint"`
	Nanos   int32 `cbor:"2,keyasint"`
}

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wirevalue: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// Encode serializes a snapshot to canonical CBOR bytes.
func Encode(s *Snapshot) ([]byte, error) {
	return encMode.Marshal(s)
}

// Decode deserializes a snapshot from CBOR bytes.
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("wirevalue: unmarshal snapshot: %w", err)
	}
	return &s, nil
}

// Graphs deeper than this fail capture rather than recurse forever on
// self-referencing values.
const maxDepth = 64

// Capture walks v's capability surface into a snapshot. It fails when
// an accessor breaks its predicate's promise or the graph is deeper
// than maxDepth.
func Capture(v foreign.Value) (*Snapshot, error) {
	return capture(v, 0)
}

func capture(v foreign.Value, depth int) (*Snapshot, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("wirevalue: value graph deeper than %d levels", maxDepth)
	}
	s := &Snapshot{}

	if v.IsNull() {
		s.Caps = CapNull
		return s, nil
	}

	if v.IsBoolean() {
		b, err := v.AsBoolean()
		if err != nil {
			return nil, fmt.Errorf("wirevalue: capturing boolean: %w", err)
		}
		s.Caps |= CapBoolean
		s.Bool = b
	}

	if v.IsNumber() {
		switch {
		case v.FitsInLong():
			l, err := v.AsLong()
			if err != nil {
				return nil, fmt.Errorf("wirevalue: capturing number: %w", err)
			}
			s.Caps |= CapLong
			s.Long = l
		case v.FitsInDouble():
			d, err := v.AsDouble()
			if err != nil {
				return nil, fmt.Errorf("wirevalue: capturing number: %w", err)
			}
			s.Caps |= CapDouble
			s.Double = d
		default:
			return nil, fmt.Errorf("wirevalue: number fits no wire lane")
		}
	}

	if v.IsString() {
		str, err := v.AsString()
		if err != nil {
			return nil, fmt.Errorf("wirevalue: capturing string: %w", err)
		}
		s.Caps |= CapString
		s.Str = str
	}

	if v.IsException() {
		s.Caps |= CapException
	}

	if v.HasBufferElements() {
		n, err := v.BufferSize()
		if err != nil {
			return nil, fmt.Errorf("wirevalue: capturing buffer size: %w", err)
		}
		data := make([]byte, n)
		for i := int64(0); i < n; i++ {
			b, err := v.ReadBufferByte(i)
			if err != nil {
				return nil, fmt.Errorf("wirevalue: capturing buffer byte %d: %w", i, err)
			}
			data[i] = b
		}
		s.Caps |= CapBuffer
		s.Buffer = data
	}

	if v.HasArrayElements() {
		n, err := v.ArraySize()
		if err != nil {
			return nil, fmt.Errorf("wirevalue: capturing array size: %w", err)
		}
		elems := make([]*Snapshot, n)
		for i := int64(0); i < n; i++ {
			el, err := v.ReadArrayElement(i)
			if err != nil {
				return nil, fmt.Errorf("wirevalue: capturing array element %d: %w", i, err)
			}
			elems[i], err = capture(el, depth+1)
			if err != nil {
				return nil, err
			}
		}
		s.Caps |= CapArray
		s.Array = elems
	}

	if v.HasMembers() {
		names, err := v.MemberNames()
		if err != nil {
			return nil, fmt.Errorf("wirevalue: capturing member names: %w", err)
		}
		members := make([]Member, 0, len(names))
		for _, name := range names {
			mv, err := v.ReadMember(name)
			if err != nil {
				return nil, fmt.Errorf("wirevalue: capturing member %q: %w", name, err)
			}
			ms, err := capture(mv, depth+1)
			if err != nil {
				return nil, err
			}
			members = append(members, Member{Name: name, Value: ms})
		}
		s.Caps |= CapMembers
		s.Members = members
	}

	if v.HasMetaObject() {
		mo, err := v.MetaObject()
		if err != nil {
			return nil, fmt.Errorf("wirevalue: capturing meta object: %w", err)
		}
		name, err := mo.MetaQualifiedName()
		if err != nil {
			return nil, fmt.Errorf("wirevalue: capturing meta name: %w", err)
		}
		s.Caps |= CapMeta
		s.MetaName = name
	}

	if v.IsDate() {
		d, err := v.AsDate()
		if err != nil {
			return nil, fmt.Errorf("wirevalue: capturing date: %w", err)
		}
		s.Caps |= CapDate
		s.Date = &DateParts{Year: d.Year, Month: d.Month, Day: d.Day}
	}

	if v.IsTime() {
		tod, err := v.AsTime()
		if err != nil {
			return nil, fmt.Errorf("wirevalue: capturing time: %w", err)
		}
		s.Caps |= CapTime
		s.Time = &TimeParts{Hour: tod.Hour, Minute: tod.Minute, Second: tod.Second, Nano: tod.Nano}
	}

	if v.IsInstant() {
		in, err := v.AsInstant()
		if err != nil {
			return nil, fmt.Errorf("wirevalue: capturing instant: %w", err)
		}
		s.Caps |= CapInstant
		s.Instant = &InstantParts{Seconds: in.Unix(), Nanos: int32(in.Nanosecond())}
	}

	if v.IsDuration() {
		d, err := v.AsDuration()
		if err != nil {
			return nil, fmt.Errorf("wirevalue: capturing duration: %w", err)
		}
		s.Caps |= CapDuration
		s.Duration = &DurationParts{Seconds: d.Seconds, Nanos: d.Nanos}
	}

	if v.IsTimeZone() {
		z, err := v.AsTimeZone()
		if err != nil {
			return nil, fmt.Errorf("wirevalue: capturing time zone: %w", err)
		}
		s.Caps |= CapZone
		s.Zone = z
	}

	return s, nil
}
