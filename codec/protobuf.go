package codec

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"

	"github.com/unkn0wn-root/byteman"
)

type Protobuf[T proto.Message] struct {
	new func() T // constructor for a concrete message (e.g., func() *wrapperspb.BytesValue { return &wrapperspb.BytesValue{} })
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}
func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}

// TypeURLPrefix prefixes the kind name in the type URL written by ProtoValue.
const TypeURLPrefix = "type.byteman.dev/"

// ProtoValue carries a byteman.Value inside a google.protobuf.Any whose type
// URL names the kind, e.g. "type.byteman.dev/integer", and whose value is the
// binary frame. Peers can route on the URL without decoding the frame.
type ProtoValue struct{}

var _ Codec[byteman.Value] = ProtoValue{}

func (ProtoValue) Encode(v byteman.Value) ([]byte, error) {
	frame, err := v.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return proto.Marshal(&anypb.Any{TypeUrl: TypeURLPrefix + v.Kind().String(), Value: frame})
}

func (ProtoValue) Decode(b []byte) (byteman.Value, error) {
	a := &anypb.Any{}
	if err := proto.Unmarshal(b, a); err != nil {
		return byteman.Value{}, err
	}
	var v byteman.Value
	if err := v.UnmarshalBinary(a.GetValue()); err != nil {
		return byteman.Value{}, err
	}
	if want := TypeURLPrefix + v.Kind().String(); a.GetTypeUrl() != want {
		return byteman.Value{}, fmt.Errorf("codec: type url %q does not match %s frame", a.GetTypeUrl(), v.Kind())
	}
	return v, nil
}
