package byteman

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/byteman/internal/wire"
)

func TestValueOfClassifies(t *testing.T) {
	cases := []struct {
		in   any
		want Kind
	}{
		{42, KindInteger},
		{int8(1), KindInteger},
		{uint64(1 << 63), KindInteger},
		{big.NewInt(7), KindInteger},
		{Buffer{1, 2}, KindBuffer},
		{[]int{1, 2}, KindBuffer},
		{[]byte{1, 2}, KindString},
		{"hello", KindString},
		{Str("x"), KindString},
		{-1, KindInvalid},
		{big.NewInt(-1), KindInvalid},
		{(*big.Int)(nil), KindInvalid},
		{32.5, KindInvalid},
		{float32(1), KindInvalid},
		{struct{}{}, KindInvalid},
		{nil, KindInvalid},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ValueOf(tc.in).Kind(), "ValueOf(%#v)", tc.in)
	}
}

func TestValueCopiesInputsAndOutputs(t *testing.T) {
	n := big.NewInt(10)
	v := Int(n)
	n.SetInt64(99)
	require.Zero(t, v.Integer().Cmp(big.NewInt(10)))

	out := v.Integer()
	out.SetInt64(5)
	require.Zero(t, v.Integer().Cmp(big.NewInt(10)))

	b := Buffer{1, 2}
	bv := Buf(b)
	b[0] = 9
	got := bv.Buffer()
	require.Equal(t, Buffer{1, 2}, got)
	got[1] = 9
	require.Equal(t, Buffer{1, 2}, bv.Buffer())
}

func TestValueAccessorsOnOtherKinds(t *testing.T) {
	s := Str("x")
	require.Nil(t, s.Integer())
	require.Nil(t, s.Buffer())
	require.Equal(t, "", Uint64(1).Str())
	require.False(t, Value{}.Valid())
	require.False(t, Value{}.Equal(Value{}))
}

func TestKindNames(t *testing.T) {
	for _, k := range []Kind{KindInteger, KindBuffer, KindString} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
	}
	_, err := ParseKind("invalid")
	require.Error(t, err)
	require.Equal(t, "kind(9)", Kind(9).String())
}

func TestBufferHelpers(t *testing.T) {
	require.Equal(t, Buffer{0, 128, 255}, BufferFromBytes([]byte{0, 128, 255}))

	p, err := Buffer{0, 128, 255}.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0, 128, 255}, p)

	_, err = Buffer{0, 256}.Bytes()
	requireInvalid(t, err)
	requireInvalid(t, Buffer{-1}.Validate())
	require.NoError(t, Buffer(nil).Validate())
}

func TestMarshalBinaryRoundTrip(t *testing.T) {
	huge, ok := new(big.Int).SetString("435692254137895873546447972", 10)
	require.True(t, ok)

	for _, v := range []Value{
		Uint64(0),
		Int(huge),
		Buf(Buffer{0, 255}),
		Buf(Buffer{392, -1}), // packing-only buffers survive intact
		Buf(nil),
		Str(""),
		Str("\x01hello world"),
	} {
		b, err := v.MarshalBinary()
		require.NoError(t, err)
		var out Value
		require.NoError(t, out.UnmarshalBinary(b))
		require.True(t, v.Equal(out), "got %#v want %#v", out, v)
	}

	_, err := ValueOf(1.5).MarshalBinary()
	requireInvalid(t, err)
}

func TestUnmarshalBinaryRejectsCorrupt(t *testing.T) {
	var v Value
	require.ErrorIs(t, v.UnmarshalBinary([]byte("nope")), wire.ErrCorrupt)
	require.ErrorIs(t, v.UnmarshalBinary(wire.Encode(byte(KindBuffer), []byte{1, 2, 3})), wire.ErrCorrupt)
	require.ErrorIs(t, v.UnmarshalBinary(wire.Encode(0, nil)), wire.ErrCorrupt)
	require.ErrorIs(t, v.UnmarshalBinary(wire.Encode(42, nil)), wire.ErrCorrupt)
}

func TestMarshalValues(t *testing.T) {
	in := []Value{Uint64(3253), Buf(Buffer{93, 128}), Str("hi")}
	b, err := MarshalValues(in)
	require.NoError(t, err)
	out, err := UnmarshalValues(b)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i := range in {
		require.True(t, in[i].Equal(out[i]))
	}

	_, err = MarshalValues([]Value{Uint64(1), {}})
	requireInvalid(t, err)
}

func TestValueJSON(t *testing.T) {
	b, err := json.Marshal([]Value{Uint64(3253), Buf(Buffer{0, 1}), Str("hello world")})
	require.NoError(t, err)
	require.JSONEq(t, `[
		{"kind":"integer","hex":"0cb5"},
		{"kind":"buffer","buf":[0,1]},
		{"kind":"string","hex":"68656c6c6f20776f726c64"}
	]`, string(b))

	var out []Value
	require.NoError(t, json.Unmarshal(b, &out))
	require.Len(t, out, 3)
	require.Zero(t, out[0].Integer().Cmp(big.NewInt(3253)))
	require.Equal(t, Buffer{0, 1}, out[1].Buffer())
	require.Equal(t, "hello world", out[2].Str())

	var v Value
	err = json.Unmarshal([]byte(`{"kind":"float"}`), &v)
	require.Error(t, err)

	_, err = json.Marshal(Value{})
	require.True(t, errors.Is(err, ErrInvalidArgument))
}
