// Package codec serializes values to bytes for transport or storage.
// byteman.Value implements encoding.BinaryMarshaler and json.Marshaler, so the
// generic codecs here carry Values (and structs holding them) as-is.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
