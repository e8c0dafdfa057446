package byteman

import (
	"math/big"

	"github.com/unkn0wn-root/byteman/internal/hexenc"
)

const (
	opHexDigestOf         = "HexDigestOf"
	opDecodeHex           = "DecodeHex"
	opIntegerToHexDigest  = "IntegerToHexDigest"
	opIntegerToBuffer     = "IntegerToBuffer"
	opBufferToInteger     = "BufferToInteger"
	opBufferToHexDigest   = "BufferToHexDigest"
	opBufferToByteString  = "BufferToByteString"
	opByteStringToBuffer  = "ByteStringToBuffer"
	opDigestToBuffer      = "DigestToBuffer"
	opDigestToInteger     = "DigestToInteger"
	opStringToHexDigest   = "StringToHexDigest"
	opByteStringToInteger = "ByteStringToInteger"
	opPad                 = "Pad"
)

// byteDigests[b] is the two-digit digest of the integer b.
var byteDigests [256]string

func init() {
	for b := range byteDigests {
		byteDigests[b] = integerDigest(big.NewInt(int64(b)))
	}
}

// integerDigest formats n in base 16 and prepends one zero when the digit
// count is odd. Leading zero nibbles are otherwise stripped.
func integerDigest(n *big.Int) string {
	d := n.Text(16)
	if len(d)%2 == 1 {
		d = "0" + d
	}
	return d
}

// bufferDigest emits exactly two digits per element, keeping each byte's own
// leading zero nibble.
func bufferDigest(op string, b Buffer) (string, error) {
	if err := b.validate(op); err != nil {
		return "", err
	}
	return hexenc.Encode(b.pack()), nil
}

// decodeDigest pads one leading zero onto odd-length input, then decodes
// digit pairs in order.
func decodeDigest(op, d string) (string, error) {
	if len(d)%2 == 1 {
		d = "0" + d
	}
	p, err := hexenc.Decode(d)
	if err != nil {
		return "", invalid(op, KindString, "%v", err)
	}
	return string(p), nil
}

func parseBase16(op, d string) (*big.Int, error) {
	if d == "" {
		return new(big.Int), nil
	}
	if i := hexenc.Index(d); i >= 0 {
		return nil, invalid(op, KindString, "invalid hex character %q at offset %d", d[i], i)
	}
	n, ok := new(big.Int).SetString(d, 16)
	if !ok {
		return nil, invalid(op, KindString, "not a base-16 number")
	}
	return n, nil
}

// HexDigestOf returns the hex digest of an Integer, Buffer or ByteString.
// Integers lose leading zero nibbles (then get one back if the digit count is
// odd); buffers and strings keep two digits per byte.
func HexDigestOf(v Value) (string, error) {
	switch v.kind {
	case KindInteger:
		return integerDigest(v.n), nil
	case KindBuffer:
		return bufferDigest(opHexDigestOf, v.buf)
	case KindString:
		return hexenc.Encode([]byte(v.str)), nil
	default:
		return "", unsupported(opHexDigestOf, v)
	}
}

// DecodeHex returns raw bytes as a ByteString. A string argument is read as a
// HexDigest. A buffer is packed as-is: no hex decoding and no range check, so
// out-of-range elements keep only their low 8 bits.
func DecodeHex(v Value) (string, error) {
	switch v.kind {
	case KindInteger:
		return decodeDigest(opDecodeHex, integerDigest(v.n))
	case KindString:
		return decodeDigest(opDecodeHex, v.str)
	case KindBuffer:
		return string(v.buf.pack()), nil
	default:
		return "", unsupported(opDecodeHex, v)
	}
}

func IntegerToHexDigest(n *big.Int) (string, error) {
	v := Int(n)
	if v.kind != KindInteger {
		return "", unsupported(opIntegerToHexDigest, v)
	}
	return integerDigest(v.n), nil
}

// IntegerToBuffer returns the minimal big-endian buffer of n. Zero is [0].
func IntegerToBuffer(n *big.Int) (Buffer, error) {
	v := Int(n)
	if v.kind != KindInteger {
		return nil, unsupported(opIntegerToBuffer, v)
	}
	s, err := DecodeHex(v)
	if err != nil {
		return nil, err
	}
	return ByteStringToBuffer(s), nil
}

// BufferToInteger parses the byte-wise digest of b. Leading zero bytes do not
// change the value; an empty buffer is zero.
func BufferToInteger(b Buffer) (*big.Int, error) {
	d, err := bufferDigest(opBufferToInteger, b)
	if err != nil {
		return nil, err
	}
	return parseBase16(opBufferToInteger, d)
}

func BufferToHexDigest(b Buffer) (string, error) {
	return bufferDigest(opBufferToHexDigest, b)
}

// BufferToByteString packs b byte for byte. Like DecodeHex it does not
// validate: out-of-range elements keep their low 8 bits.
func BufferToByteString(b Buffer) string {
	return string(b.pack())
}

func ByteStringToBuffer(s string) Buffer {
	b := make(Buffer, len(s))
	for i := 0; i < len(s); i++ {
		b[i] = int(s[i])
	}
	return b
}

func DigestToBuffer(d string) (Buffer, error) {
	s, err := decodeDigest(opDigestToBuffer, d)
	if err != nil {
		return nil, err
	}
	return ByteStringToBuffer(s), nil
}

// DigestToInteger parses d directly as a base-16 number. The empty digest is
// zero.
func DigestToInteger(d string) (*big.Int, error) {
	return parseBase16(opDigestToInteger, d)
}

func StringToHexDigest(s string) string {
	out := make([]byte, 0, 2*len(s))
	for i := 0; i < len(s); i++ {
		out = append(out, byteDigests[s[i]]...)
	}
	return string(out)
}

// ByteStringToInteger reads every byte of s as a nibble pair of its own hex
// form, so "hello world" is 0x68656c6c6f20776f726c64. Compare DigestToInteger,
// which expects s to already be hex text.
func ByteStringToInteger(s string) *big.Int {
	n := new(big.Int)
	if s == "" {
		return n
	}
	n.SetString(StringToHexDigest(s), 16)
	return n
}
