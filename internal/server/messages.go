package server

import (
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/protobuf/types/descriptorpb"
)

// setField stores a Go value into the named field, converting it to the
// representation the dynamic message expects for the field's wire type.
func setField(msg *dynamic.Message, name string, value interface{}) error {
	fd := msg.GetMessageDescriptor().FindFieldByName(name)
	if fd == nil {
		return fmt.Errorf("%s has no field %s", msg.GetMessageDescriptor().GetFullyQualifiedName(), name)
	}
	v, err := toProtoValue(fd, value)
	if err != nil {
		return err
	}
	if fd.IsRepeated() {
		return msg.TryAddRepeatedField(fd, v)
	}
	return msg.TrySetField(fd, v)
}

func toProtoValue(fd *desc.FieldDescriptor, value interface{}) (interface{}, error) {
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		switch v := value.(type) {
		case string:
			return v, nil
		case fmt.Stringer:
			return v.String(), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		if v, ok := value.(bool); ok {
			return v, nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_INT32:
		switch v := value.(type) {
		case int:
			return int32(v), nil
		case int32:
			return v, nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		if v, ok := value.(*dynamic.Message); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("cannot store %T in field %s of type %s", value, fd.GetName(), fd.GetType())
}

// stringField reads a string field, returning "" when it is unset or of
// another type.
func stringField(msg *dynamic.Message, name string) string {
	v, err := msg.TryGetFieldByName(name)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func boolField(msg *dynamic.Message, name string) bool {
	v, err := msg.TryGetFieldByName(name)
	if err != nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

func intField(msg *dynamic.Message, name string) int {
	v, err := msg.TryGetFieldByName(name)
	if err != nil {
		return 0
	}
	n, _ := v.(int32)
	return int(n)
}

// repeatedMessages reads a repeated message field.
func repeatedMessages(msg *dynamic.Message, name string) []*dynamic.Message {
	v, err := msg.TryGetFieldByName(name)
	if err != nil {
		return nil
	}
	items, _ := v.([]interface{})
	out := make([]*dynamic.Message, 0, len(items))
	for _, item := range items {
		if m, ok := item.(*dynamic.Message); ok {
			out = append(out, m)
		}
	}
	return out
}
