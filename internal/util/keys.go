package util

import (
	"crypto/sha256"
	"fmt"
)

// MemoKey returns prefix + ":" + sha256 of the framed input.
// The full digest is kept: a collision would serve a wrong conversion.
func MemoKey(prefix string, frame []byte) string {
	sum := sha256.Sum256(frame)
	return fmt.Sprintf("%s:%x", prefix, sum)
}
