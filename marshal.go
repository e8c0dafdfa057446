package byteman

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/unkn0wn-root/byteman/internal/wire"
)

// payload is the canonical body of a valid value inside a wire frame.
// Buffers use 8 signed big-endian bytes per element so that out-of-range
// elements survive a round trip.
func (v Value) payload() []byte {
	switch v.kind {
	case KindInteger:
		return v.n.Bytes()
	case KindBuffer:
		p := make([]byte, 8*len(v.buf))
		for i, e := range v.buf {
			binary.BigEndian.PutUint64(p[8*i:], uint64(int64(e)))
		}
		return p
	case KindString:
		return []byte(v.str)
	default:
		return nil
	}
}

func fromPayload(kind Kind, p []byte) (Value, error) {
	switch kind {
	case KindInteger:
		return Value{kind: KindInteger, n: new(big.Int).SetBytes(p)}, nil
	case KindBuffer:
		if len(p)%8 != 0 {
			return Value{}, fmt.Errorf("buffer payload of %d bytes: %w", len(p), wire.ErrCorrupt)
		}
		b := make(Buffer, len(p)/8)
		for i := range b {
			b[i] = int(int64(binary.BigEndian.Uint64(p[8*i:])))
		}
		return Value{kind: KindBuffer, buf: b}, nil
	case KindString:
		return Value{kind: KindString, str: string(p)}, nil
	default:
		return Value{}, fmt.Errorf("unknown kind tag %d: %w", uint8(kind), wire.ErrCorrupt)
	}
}

// MarshalBinary frames the value as magic "BYTM" | version | kind | length |
// payload. Invalid values cannot be marshaled.
func (v Value) MarshalBinary() ([]byte, error) {
	if v.kind == KindInvalid {
		return nil, unsupported("MarshalBinary", v)
	}
	return wire.Encode(byte(v.kind), v.payload()), nil
}

func (v *Value) UnmarshalBinary(b []byte) error {
	tag, p, err := wire.Decode(b)
	if err != nil {
		return err
	}
	out, err := fromPayload(Kind(tag), p)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// MarshalValues frames several values into one batch frame.
func MarshalValues(vs []Value) ([]byte, error) {
	items := make([]wire.Item, len(vs))
	for i, v := range vs {
		if v.kind == KindInvalid {
			return nil, unsupported("MarshalValues", v)
		}
		items[i] = wire.Item{Tag: byte(v.kind), Payload: v.payload()}
	}
	return wire.EncodeBatch(items)
}

func UnmarshalValues(b []byte) ([]Value, error) {
	items, err := wire.DecodeBatch(b)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(items))
	for i, it := range items {
		v, err := fromPayload(Kind(it.Tag), it.Payload)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

type jsonValue struct {
	Kind string `json:"kind"`
	Hex  string `json:"hex,omitempty"`
	Buf  []int  `json:"buf,omitempty"`
}

// MarshalJSON writes integers and strings as hex digests and buffers as
// arrays of numbers.
func (v Value) MarshalJSON() ([]byte, error) {
	jv := jsonValue{Kind: v.kind.String()}
	switch v.kind {
	case KindInteger:
		jv.Hex = integerDigest(v.n)
	case KindBuffer:
		jv.Buf = v.buf
	case KindString:
		jv.Hex = StringToHexDigest(v.str)
	default:
		return nil, unsupported("MarshalJSON", v)
	}
	return json.Marshal(jv)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var jv jsonValue
	if err := json.Unmarshal(b, &jv); err != nil {
		return err
	}
	kind, err := ParseKind(jv.Kind)
	if err != nil {
		return err
	}
	switch kind {
	case KindInteger:
		n, err := DigestToInteger(jv.Hex)
		if err != nil {
			return err
		}
		*v = Value{kind: KindInteger, n: n}
	case KindBuffer:
		*v = Buf(jv.Buf)
	case KindString:
		s, err := DecodeHex(Str(jv.Hex))
		if err != nil {
			return err
		}
		*v = Str(s)
	}
	return nil
}
