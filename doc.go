// Package byteman converts between four representations of the same data:
// non-negative big integers, byte buffers, raw byte strings and hex digests.
// It also pads values to a fixed byte or bit width.
//
// Representations:
//   - Integer:    *big.Int, never negative.
//   - Buffer:     []int of byte values, most-significant byte first.
//   - ByteString: Go string holding raw bytes.
//   - HexDigest:  lowercase hex text, two characters per byte.
//
// Every conversion composes two primitives: Integer <-> HexDigest (base-16
// formatting and parsing) and Buffer <-> ByteString (byte-for-byte copy).
//
// Arguments of polymorphic operations are passed as a Value, a closed tagged
// union over {Integer, Buffer, String}. Anything else is rejected with an error
// matching ErrInvalidArgument:
//
//	d, _ := byteman.HexDigestOf(byteman.Uint64(3253))        // "0cb5"
//	s, _ := byteman.DecodeHex(byteman.Str("4ff9a4c"))        // "\x04\xff\x9a\x4c"
//	p, _ := byteman.Pad(byteman.Uint64(42), 8, byteman.PadOptions{Unit: byteman.UnitBits})
//	_ = p.Str()                                              // "00101010"
//
// The package-level functions are pure and safe for concurrent use. Converter
// wraps them with logging, hooks and an optional memo store.
package byteman
