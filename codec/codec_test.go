package codec

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/unkn0wn-root/byteman"
)

type envelope struct {
	ID    string        `json:"id" msgpack:"id" cbor:"1,keyasint"`
	Value byteman.Value `json:"value" msgpack:"value" cbor:"2,keyasint"`
}

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return n
}

func TestMsgpackCarriesOutOfRangeBuffer(t *testing.T) {
	// packing-only buffers may hold values outside the byte range; the frame
	// keeps them so the receiver sees the same error the sender would.
	in := envelope{ID: "a", Value: byteman.Buf(byteman.Buffer{4, 29, 392, -1})}

	c := Msgpack[envelope]{}
	b, err := c.Encode(in)
	require.NoError(t, err)
	out, err := c.Decode(b)
	require.NoError(t, err)

	require.Equal(t, "a", out.ID)
	require.True(t, in.Value.Equal(out.Value), "got %#v", out.Value)
	_, err = byteman.BufferToHexDigest(out.Value.Buffer())
	require.ErrorIs(t, err, byteman.ErrInvalidArgument)
}

func TestCBORDeterministicIsStable(t *testing.T) {
	c := MustCBOR[envelope](true)
	v := envelope{ID: "n", Value: byteman.Int(bigFromString(t, "435692254137895873546447972"))}

	b1, err := c.Encode(v)
	require.NoError(t, err)
	b2, err := c.Encode(v)
	require.NoError(t, err)
	require.True(t, bytes.Equal(b1, b2))

	out, err := c.Decode(b1)
	require.NoError(t, err)
	require.True(t, v.Value.Equal(out.Value))
}

func TestJSONValueShape(t *testing.T) {
	c := JSON[byteman.Value]{}

	b, err := c.Encode(byteman.Uint64(3253))
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"integer","hex":"0cb5"}`, string(b))

	b, err = c.Encode(byteman.Str("hi"))
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"string","hex":"6869"}`, string(b))

	out, err := c.Decode([]byte(`{"kind":"buffer","buf":[0,255]}`))
	require.NoError(t, err)
	require.Equal(t, byteman.Buffer{0, 255}, out.Buffer())

	_, err = c.Decode([]byte(`{"kind":"integer","hex":"zz"}`))
	require.ErrorIs(t, err, byteman.ErrInvalidArgument)

	_, err = c.Encode(byteman.ValueOf(32.5))
	require.Error(t, err)
}

func TestProtobufWrapper(t *testing.T) {
	c := NewProtobuf(func() *wrapperspb.BytesValue { return &wrapperspb.BytesValue{} })

	raw, err := byteman.DecodeHex(byteman.Str("4ff9a4c"))
	require.NoError(t, err)
	b, err := c.Encode(wrapperspb.Bytes([]byte(raw)))
	require.NoError(t, err)

	out, err := c.Decode(b)
	require.NoError(t, err)
	require.Equal(t, []byte{0x04, 0xff, 0x9a, 0x4c}, out.GetValue())
}

func TestProtoValueTypeURL(t *testing.T) {
	c := ProtoValue{}
	b, err := c.Encode(byteman.Buf(byteman.Buffer{32, 125, 9, 0, 84}))
	require.NoError(t, err)

	a := &anypb.Any{}
	require.NoError(t, proto.Unmarshal(b, a))
	require.Equal(t, "type.byteman.dev/buffer", a.GetTypeUrl())

	out, err := c.Decode(b)
	require.NoError(t, err)
	require.Equal(t, byteman.Buffer{32, 125, 9, 0, 84}, out.Buffer())

	a.TypeUrl = TypeURLPrefix + "integer"
	forged, err := proto.Marshal(a)
	require.NoError(t, err)
	_, err = c.Decode(forged)
	require.Error(t, err)
}

func TestHexWrapsInner(t *testing.T) {
	c := Hex[string]{Inner: String{}}

	b, err := c.Encode("hello world")
	require.NoError(t, err)
	require.Equal(t, "68656c6c6f20776f726c64", string(b))

	s, err := c.Decode([]byte("68656C6C6F"))
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	_, err = c.Decode([]byte("6g"))
	require.ErrorIs(t, err, byteman.ErrInvalidArgument)
}

func TestLimitRejectsOversized(t *testing.T) {
	c := Limit[[]byte]{Inner: Bytes{}, MaxDecode: 4}

	_, err := c.Decode([]byte("12345"))
	require.ErrorIs(t, err, ErrTooLarge)

	b, err := c.Decode([]byte("1234"))
	require.NoError(t, err)
	require.Equal(t, []byte("1234"), b)
}

func TestValueAndValuesFrames(t *testing.T) {
	_, err := Value{}.Encode(byteman.ValueOf(3235.124))
	require.ErrorIs(t, err, byteman.ErrInvalidArgument)

	in := []byteman.Value{byteman.Uint64(0), byteman.Str("\x01hello world"), byteman.Buf(nil)}
	b, err := Values{}.Encode(in)
	require.NoError(t, err)
	out, err := Values{}.Decode(b)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	for i := range in {
		require.True(t, in[i].Equal(out[i]), "item %d: got %#v", i, out[i])
	}
}
