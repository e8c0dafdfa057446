// Package hexenc is the byte-wise hex hot path shared by the codec functions.
// Output is always lowercase. Input may be mixed case.
package hexenc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/templexxx/xhex"
)

var ErrOddLength = errors.New("hex text of odd length")

// InvalidByteError reports the first non-hex character in the input.
type InvalidByteError struct {
	Offset int
	Char   byte
}

func (e *InvalidByteError) Error() string {
	return fmt.Sprintf("invalid hex character %q at offset %d", e.Char, e.Offset)
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// Index returns the offset of the first non-hex character in s, or -1.
func Index(s string) int {
	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) {
			return i
		}
	}
	return -1
}

func Encode(src []byte) string {
	if len(src) == 0 {
		return ""
	}
	dst := make([]byte, len(src)*2)
	xhex.Encode(dst, src)
	return string(dst)
}

// Decode decodes even-length hex text. Odd-length input is rejected; callers
// that accept odd digests pad them first.
func Decode(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, ErrOddLength
	}
	if i := Index(s); i >= 0 {
		return nil, &InvalidByteError{Offset: i, Char: s[i]}
	}
	if len(s) == 0 {
		return []byte{}, nil
	}
	dst := make([]byte, len(s)/2)
	if err := xhex.Decode(dst, []byte(strings.ToLower(s))); err != nil {
		return nil, err
	}
	return dst, nil
}
