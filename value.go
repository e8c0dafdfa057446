package byteman

import (
	"fmt"
	"math/big"
)

// Kind tags the representation held by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInteger
	KindBuffer
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInteger:
		return "integer"
	case KindBuffer:
		return "buffer"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind is the inverse of Kind.String for the three valid kinds.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "integer":
		return KindInteger, nil
	case "buffer":
		return KindBuffer, nil
	case "string":
		return KindString, nil
	default:
		return KindInvalid, fmt.Errorf("byteman: unknown kind %q", s)
	}
}

// Buffer is a big-endian sequence of byte values. Elements outside [0,255]
// are representable so that callers get an error instead of silent
// truncation from the functions that require real bytes.
type Buffer []int

// BufferFromBytes returns one element per byte of p.
func BufferFromBytes(p []byte) Buffer {
	b := make(Buffer, len(p))
	for i, c := range p {
		b[i] = int(c)
	}
	return b
}

// Validate reports the first element outside [0,255].
func (b Buffer) Validate() error { return b.validate("Buffer.Validate") }

func (b Buffer) validate(op string) error {
	for i, e := range b {
		if e < 0 || e > 0xFF {
			return invalid(op, KindBuffer, "element %d out of byte range: %d", i, e)
		}
	}
	return nil
}

// Bytes validates b and returns its bytes.
func (b Buffer) Bytes() ([]byte, error) {
	if err := b.validate("Buffer.Bytes"); err != nil {
		return nil, err
	}
	return b.pack(), nil
}

// pack keeps the low 8 bits of every element without validation.
func (b Buffer) pack() []byte {
	p := make([]byte, len(b))
	for i, e := range b {
		p[i] = byte(e)
	}
	return p
}

// Value is the tagged union accepted by the polymorphic operations.
// The zero Value is KindInvalid.
type Value struct {
	kind   Kind
	n      *big.Int
	buf    Buffer
	str    string
	reason string // KindInvalid only
}

func invalidValue(format string, args ...any) Value {
	return Value{kind: KindInvalid, reason: fmt.Sprintf(format, args...)}
}

// Int wraps a copy of n. Nil and negative integers yield an invalid Value.
func Int(n *big.Int) Value {
	if n == nil {
		return invalidValue("nil integer")
	}
	if n.Sign() < 0 {
		return invalidValue("negative integer %s", n)
	}
	return Value{kind: KindInteger, n: new(big.Int).Set(n)}
}

func Uint64(n uint64) Value {
	return Value{kind: KindInteger, n: new(big.Int).SetUint64(n)}
}

func fromInt64(n int64) Value {
	if n < 0 {
		return invalidValue("negative integer %d", n)
	}
	return Uint64(uint64(n))
}

// Buf wraps a copy of b.
func Buf(b Buffer) Value {
	return Value{kind: KindBuffer, buf: append(Buffer(nil), b...)}
}

// Str wraps a string. Operations read it as a ByteString or a HexDigest
// depending on what they accept.
func Str(s string) Value { return Value{kind: KindString, str: s} }

// Bytes wraps raw bytes as a ByteString.
func Bytes(p []byte) Value { return Str(string(p)) }

// ValueOf classifies a Go value. Unsupported types, including floats, and
// negative integers give an invalid Value that every operation rejects.
func ValueOf(x any) Value {
	switch t := x.(type) {
	case Value:
		return t
	case *big.Int:
		return Int(t)
	case int:
		return fromInt64(int64(t))
	case int8:
		return fromInt64(int64(t))
	case int16:
		return fromInt64(int64(t))
	case int32:
		return fromInt64(int64(t))
	case int64:
		return fromInt64(t)
	case uint:
		return Uint64(uint64(t))
	case uint8:
		return Uint64(uint64(t))
	case uint16:
		return Uint64(uint64(t))
	case uint32:
		return Uint64(uint64(t))
	case uint64:
		return Uint64(t)
	case Buffer:
		return Buf(t)
	case []int:
		return Buf(Buffer(t))
	case []byte:
		return Bytes(t)
	case string:
		return Str(t)
	case nil:
		return invalidValue("nil value")
	default:
		return invalidValue("unsupported type %T", x)
	}
}

func (v Value) Kind() Kind  { return v.kind }
func (v Value) Valid() bool { return v.kind != KindInvalid }

// Integer returns a copy of the integer, or nil for other kinds.
func (v Value) Integer() *big.Int {
	if v.kind != KindInteger {
		return nil
	}
	return new(big.Int).Set(v.n)
}

// Buffer returns a copy of the buffer, or nil for other kinds.
func (v Value) Buffer() Buffer {
	if v.kind != KindBuffer {
		return nil
	}
	return append(Buffer(nil), v.buf...)
}

// Str returns the string, or "" for other kinds.
func (v Value) Str() string { return v.str }

// Equal reports whether both values have the same kind and contents.
// Invalid values are never equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.n.Cmp(o.n) == 0
	case KindBuffer:
		if len(v.buf) != len(o.buf) {
			return false
		}
		for i := range v.buf {
			if v.buf[i] != o.buf[i] {
				return false
			}
		}
		return true
	case KindString:
		return v.str == o.str
	default:
		return false
	}
}

func (v Value) GoString() string {
	switch v.kind {
	case KindInteger:
		return fmt.Sprintf("byteman.Int(%s)", v.n)
	case KindBuffer:
		return fmt.Sprintf("byteman.Buf(%v)", []int(v.buf))
	case KindString:
		return fmt.Sprintf("byteman.Str(%q)", v.str)
	default:
		return fmt.Sprintf("byteman.Value{invalid: %s}", v.reason)
	}
}
