package hexenc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeLowercase(t *testing.T) {
	require.Equal(t, "00ff0a9c", Encode([]byte{0x00, 0xff, 0x0a, 0x9c}))
	require.Equal(t, "", Encode(nil))
}

func TestDecodeMixedCase(t *testing.T) {
	got, err := Decode("04FF9a4C")
	require.NoError(t, err)
	require.Equal(t, []byte{0x04, 0xff, 0x9a, 0x4c}, got)
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode("abc")
	require.ErrorIs(t, err, ErrOddLength)

	_, err = Decode("0g")
	var ib *InvalidByteError
	require.True(t, errors.As(err, &ib))
	require.Equal(t, 1, ib.Offset)
	require.Equal(t, byte('g'), ib.Char)

	_, err = Decode("+1")
	require.Error(t, err)
}

func TestIndex(t *testing.T) {
	require.Equal(t, -1, Index("0123456789abcdefABCDEF"))
	require.Equal(t, 3, Index("abc-"))
}
