// Package protovalue exposes dynamic protobuf messages through the
// foreign-value protocol.
//
// A message's known fields become members, repeated fields expose
// array elements, string-keyed map fields expose members of their own,
// and scalar leaves wrap as host scalars. The message's fully
// qualified descriptor name doubles as the meta qualified name, so
// kona.toml mappings can target protobuf types directly. The
// well-known google.protobuf.Timestamp and google.protobuf.Duration
// additionally answer the instant and duration messages.
package protovalue

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/chazu/kona/foreign"
	"github.com/chazu/kona/foreign/hostvalue"
)

// Message adapts a dynamic protobuf message to the foreign-value
// protocol. A nil message is the foreign null.
func Message(msg *dynamic.Message) foreign.Value {
	if msg == nil {
		return foreign.Null
	}
	m := message{msg: msg}
	switch msg.GetMessageDescriptor().GetFullyQualifiedName() {
	case "google.protobuf.Timestamp":
		return timestamp{m}
	case "google.protobuf.Duration":
		return span{m}
	}
	return m
}

type message struct {
	foreign.Opaque
	msg *dynamic.Message
}

func (v message) HasMembers() bool { return true }

func (v message) MemberNames() ([]string, error) {
	fields := v.msg.GetMessageDescriptor().GetFields()
	names := make([]string, len(fields))
	for i, fd := range fields {
		names[i] = fd.GetName()
	}
	return names, nil
}

func (v message) HasMember(name string) bool {
	return v.msg.GetMessageDescriptor().FindFieldByName(name) != nil
}

func (v message) ReadMember(name string) (foreign.Value, error) {
	fd := v.msg.GetMessageDescriptor().FindFieldByName(name)
	if fd == nil {
		return nil, fmt.Errorf("protovalue: no field %q on %s",
			name, v.msg.GetMessageDescriptor().GetFullyQualifiedName())
	}
	return fieldValue(v.msg.GetField(fd), fd)
}

func (v message) HasMetaObject() bool { return true }
func (v message) MetaObject() (foreign.Value, error) {
	return metaObject{name: v.msg.GetMessageDescriptor().GetFullyQualifiedName()}, nil
}

// timestamp is a google.protobuf.Timestamp, which also answers the
// instant message.
type timestamp struct{ message }

func (v timestamp) IsInstant() bool { return true }

func (v timestamp) AsInstant() (time.Time, error) {
	secs, err := v.msg.TryGetFieldByNumber(1)
	if err != nil {
		return time.Time{}, err
	}
	nanos, err := v.msg.TryGetFieldByNumber(2)
	if err != nil {
		return time.Time{}, err
	}
	s, _ := secs.(int64)
	n, _ := nanos.(int32)
	return time.Unix(s, int64(n)).UTC(), nil
}

// span is a google.protobuf.Duration, which also answers the duration
// message.
type span struct{ message }

func (v span) IsDuration() bool { return true }

func (v span) AsDuration() (foreign.Duration, error) {
	secs, err := v.msg.TryGetFieldByNumber(1)
	if err != nil {
		return foreign.Duration{}, err
	}
	nanos, err := v.msg.TryGetFieldByNumber(2)
	if err != nil {
		return foreign.Duration{}, err
	}
	s, _ := secs.(int64)
	n, _ := nanos.(int32)
	if n < 0 {
		s--
		n += 1e9
	}
	return foreign.Duration{Seconds: s, Nanos: n}, nil
}

func fieldValue(val any, fd *desc.FieldDescriptor) (foreign.Value, error) {
	if fd.IsMap() {
		return mapValue(val, fd)
	}
	if fd.IsRepeated() {
		return repeatedValue(val, fd)
	}
	return elementValue(val, fd)
}

// elementValue converts one field value, or one element of a repeated
// field. Scalar leaves reuse the host adapter; messages recurse.
func elementValue(val any, fd *desc.FieldDescriptor) (foreign.Value, error) {
	if val == nil {
		return foreign.Null, nil
	}
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		msg, ok := val.(*dynamic.Message)
		if !ok {
			return nil, fmt.Errorf("protovalue: field %s: expected message, got %T", fd.GetName(), val)
		}
		return Message(msg), nil

	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		num, _ := val.(int32)
		if ev := fd.GetEnumType().FindValueByNumber(num); ev != nil {
			return hostvalue.Wrap(ev.GetName()), nil
		}
		return hostvalue.Wrap(num), nil

	case descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		return nil, fmt.Errorf("protovalue: field %s: groups are not supported", fd.GetName())
	}
	return hostvalue.Wrap(val), nil
}

func repeatedValue(val any, fd *desc.FieldDescriptor) (foreign.Value, error) {
	slice := reflect.ValueOf(val)
	if !slice.IsValid() || slice.Kind() != reflect.Slice {
		return nil, fmt.Errorf("protovalue: field %s: expected repeated value, got %T", fd.GetName(), val)
	}
	elems := make([]foreign.Value, slice.Len())
	for i := range elems {
		el, err := elementValue(slice.Index(i).Interface(), fd)
		if err != nil {
			return nil, err
		}
		elems[i] = el
	}
	return &list{elems: elems}, nil
}

// Map fields arrive as map[interface{}]interface{}. Keys become member
// names through their canonical string form; protobuf map keys are
// scalars, so the form is unambiguous.
func mapValue(val any, fd *desc.FieldDescriptor) (foreign.Value, error) {
	raw, ok := val.(map[any]any)
	if !ok {
		return nil, fmt.Errorf("protovalue: field %s: expected map, got %T", fd.GetName(), val)
	}
	vd := fd.GetMapValueType()
	members := make(map[string]foreign.Value, len(raw))
	names := make([]string, 0, len(raw))
	for k, mv := range raw {
		el, err := elementValue(mv, vd)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("%v", k)
		members[name] = el
		names = append(names, name)
	}
	sort.Strings(names)
	return &table{names: names, members: members}, nil
}

type list struct {
	foreign.Opaque
	elems []foreign.Value
}

func (v *list) HasArrayElements() bool    { return true }
func (v *list) ArraySize() (int64, error) { return int64(len(v.elems)), nil }

func (v *list) ReadArrayElement(index int64) (foreign.Value, error) {
	if index < 0 || index >= int64(len(v.elems)) {
		return nil, fmt.Errorf("protovalue: array index %d out of range [0,%d)", index, len(v.elems))
	}
	return v.elems[index], nil
}

type table struct {
	foreign.Opaque
	names   []string
	members map[string]foreign.Value
}

func (v *table) HasMembers() bool { return true }

func (v *table) MemberNames() ([]string, error) {
	return v.names, nil
}

func (v *table) HasMember(name string) bool {
	_, ok := v.members[name]
	return ok
}

func (v *table) ReadMember(name string) (foreign.Value, error) {
	mv, ok := v.members[name]
	if !ok {
		return nil, fmt.Errorf("protovalue: no member %q", name)
	}
	return mv, nil
}

type metaObject struct {
	foreign.Opaque
	name string
}

func (v metaObject) IsMetaObject() bool { return true }
func (v metaObject) MetaQualifiedName() (string, error) {
	return v.name, nil
}
