package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	version byte = 1

	// TagBatch is reserved for batch frames; single frames must use another tag.
	TagBatch byte = 0xFF
)

var (
	ErrCorrupt = errors.New("byteman: corrupt frame")
	magic4     = [...]byte{'B', 'Y', 'T', 'M'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Single: magic(4) | ver(1) | tag(1) | vlen(u32 be) | payload(vlen)
func Encode(tag byte, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(4 + 1 + 1 + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(tag)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

func Decode(b []byte) (tag byte, payload []byte, err error) {
	const hdr = 4 + 1 + 1 + 4
	if len(b) < hdr || !hasMagic(b) || b[4] != version || b[5] == TagBatch {
		return 0, nil, ErrCorrupt
	}
	tag = b[5]

	off := 6
	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // trailing bytes are corruption too
		return 0, nil, ErrCorrupt
	}

	return tag, b[off : off+vlen], nil
}

// Item is one member of a batch frame.
type Item struct {
	Tag     byte
	Payload []byte
}

// Batch:
//
//	magic(4) | ver(1) | tag(1=0xFF) | n(u32 be)
//	tag(1) | vlen(u32 be) | payload(vlen) * n
func EncodeBatch(items []Item) ([]byte, error) {
	total := 4 + 1 + 1 + 4
	for _, it := range items {
		total += 1 + 4 + len(it.Payload)
	}

	var buf bytes.Buffer
	buf.Grow(total)

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(TagBatch)

	var u4 [4]byte
	binary.BigEndian.PutUint32(u4[:], uint32(len(items)))
	buf.Write(u4[:])

	for i, it := range items {
		if it.Tag == TagBatch {
			return nil, fmt.Errorf("byteman: batch item %d uses reserved tag", i)
		}
		buf.WriteByte(it.Tag)
		binary.BigEndian.PutUint32(u4[:], uint32(len(it.Payload)))
		buf.Write(u4[:])
		buf.Write(it.Payload)
	}

	return buf.Bytes(), nil
}

func DecodeBatch(b []byte) ([]Item, error) {
	const hdr = 4 + 1 + 1 + 4
	if len(b) < hdr || !hasMagic(b) || b[4] != version || b[5] != TagBatch {
		return nil, ErrCorrupt
	}

	off := 6
	n := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	// each item needs at least 5 bytes; reject bogus counts before allocating
	if n < 0 || n > (len(b)-off)/5 {
		return nil, ErrCorrupt
	}

	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		if off+5 > len(b) {
			return nil, ErrCorrupt
		}
		tag := b[off]
		off++
		if tag == TagBatch {
			return nil, ErrCorrupt
		}

		vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
		off += 4
		if vlen < 0 || vlen > len(b)-off {
			return nil, ErrCorrupt
		}

		items = append(items, Item{Tag: tag, Payload: b[off : off+vlen]})
		off += vlen
	}
	if off != len(b) {
		return nil, ErrCorrupt
	}

	return items, nil
}
