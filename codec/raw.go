package codec

import "github.com/unkn0wn-root/byteman"

// Bytes is an identity codec for []byte values.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// String is a trivial codec for Go string values. By convention this
// assumes nothing about the contents and performs no validation, so it
// carries ByteStrings unchanged.
type String struct{}

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }

// Value writes a byteman.Value as its binary frame with no outer envelope.
type Value struct{}

var _ Codec[byteman.Value] = Value{}

func (Value) Encode(v byteman.Value) ([]byte, error) { return v.MarshalBinary() }
func (Value) Decode(b []byte) (byteman.Value, error) {
	var v byteman.Value
	err := v.UnmarshalBinary(b)
	return v, err
}

// Values writes a slice of values as one batch frame.
type Values struct{}

var _ Codec[[]byteman.Value] = Values{}

func (Values) Encode(vs []byteman.Value) ([]byte, error) { return byteman.MarshalValues(vs) }
func (Values) Decode(b []byte) ([]byteman.Value, error)  { return byteman.UnmarshalValues(b) }
