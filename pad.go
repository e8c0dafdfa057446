package byteman

import "strings"

// Unit selects the padding granularity.
type Unit string

const (
	UnitBytes Unit = "bytes"
	UnitBits  Unit = "bits"
)

// Anchor selects which end of the value receives the padding.
type Anchor string

const (
	AnchorMSB Anchor = "msb" // front
	AnchorLSB Anchor = "lsb" // back
)

// PadOptions configures Pad. The zero value pads bytes on the msb side.
type PadOptions struct {
	Unit   Unit
	Anchor Anchor
}

func (o PadOptions) withDefaults() PadOptions {
	return PadOptions{
		Unit:   coalesce(o.Unit, UnitBytes),
		Anchor: coalesce(o.Anchor, AnchorMSB),
	}
}

// overflow is the number of padding units added to a value of the given
// length. A length that is already a multiple of n gets a full extra block.
func overflow(length, n int) int {
	return n - length%n
}

// Pad prepends (AnchorMSB) or appends (AnchorLSB) zero units so the length
// becomes a multiple of n, using overflow = n - (len mod n).
//
// Bytes accept a Buffer (result: Buffer), an Integer or a ByteString (result:
// ByteString). Bits accept an Integer, formatted in base 2, or a string of
// '0'/'1' characters (result: bit string). A bit form that is already longer
// than n is cut to its n low-order characters after padding.
func Pad(v Value, n int, opts PadOptions) (Value, error) {
	opts = opts.withDefaults()
	if n <= 0 {
		return Value{}, invalid(opPad, v.kind, "target length must be positive, got %d", n)
	}
	if opts.Anchor != AnchorMSB && opts.Anchor != AnchorLSB {
		return Value{}, invalid(opPad, v.kind, "unsupported anchor %q", opts.Anchor)
	}
	switch opts.Unit {
	case UnitBytes:
		return padBytes(v, n, opts.Anchor)
	case UnitBits:
		return padBits(v, n, opts.Anchor)
	default:
		return Value{}, invalid(opPad, v.kind, "unsupported unit %q", opts.Unit)
	}
}

func padBytes(v Value, n int, anchor Anchor) (Value, error) {
	switch v.kind {
	case KindBuffer:
		if err := v.buf.validate(opPad); err != nil {
			return Value{}, err
		}
		return Value{kind: KindBuffer, buf: padBuffer(v.buf, n, anchor)}, nil
	case KindInteger:
		b, err := IntegerToBuffer(v.n)
		if err != nil {
			return Value{}, err
		}
		return Str(BufferToByteString(padBuffer(b, n, anchor))), nil
	case KindString:
		b := ByteStringToBuffer(v.str)
		return Str(BufferToByteString(padBuffer(b, n, anchor))), nil
	default:
		return Value{}, unsupported(opPad, v)
	}
}

func padBuffer(b Buffer, n int, anchor Anchor) Buffer {
	out := make(Buffer, overflow(len(b), n)+len(b))
	if anchor == AnchorLSB {
		copy(out, b)
	} else {
		copy(out[len(out)-len(b):], b)
	}
	return out
}

func padBits(v Value, n int, anchor Anchor) (Value, error) {
	var bits string
	switch v.kind {
	case KindInteger:
		bits = v.n.Text(2)
	case KindString:
		if i := strings.IndexFunc(v.str, func(r rune) bool { return r != '0' && r != '1' }); i >= 0 {
			return Value{}, invalid(opPad, v.kind, "non-binary character at offset %d", i)
		}
		bits = v.str
	default:
		return Value{}, unsupported(opPad, v)
	}

	zeros := strings.Repeat("0", overflow(len(bits), n))
	var out string
	if anchor == AnchorLSB {
		out = bits + zeros
	} else {
		out = zeros + bits
	}
	if len(bits) > n {
		out = out[len(out)-n:]
	}
	return Str(out), nil
}
