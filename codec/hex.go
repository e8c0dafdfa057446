package codec

import "github.com/unkn0wn-root/byteman"

// Hex wraps Inner and carries its output as lowercase hex text, for channels
// that only take text. Decode accepts mixed case and, like byteman.DecodeHex,
// reads odd-length input as if it had one more leading zero.
type Hex[V any] struct {
	Inner Codec[V]
}

func (c Hex[V]) Encode(v V) ([]byte, error) {
	b, err := c.Inner.Encode(v)
	if err != nil {
		return nil, err
	}
	d, err := byteman.HexDigestOf(byteman.Bytes(b))
	if err != nil {
		return nil, err
	}
	return []byte(d), nil
}

func (c Hex[V]) Decode(b []byte) (V, error) {
	raw, err := byteman.DecodeHex(byteman.Str(string(b)))
	if err != nil {
		var zero V
		return zero, err
	}
	return c.Inner.Decode([]byte(raw))
}
