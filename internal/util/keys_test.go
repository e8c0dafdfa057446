package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoKeyDeterministicAndPrefixed(t *testing.T) {
	a := MemoKey("memo:ns:HexDigestOf", []byte{1, 2, 3})
	b := MemoKey("memo:ns:HexDigestOf", []byte{1, 2, 3})
	c := MemoKey("memo:ns:HexDigestOf", []byte{1, 2, 4})

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.True(t, strings.HasPrefix(a, "memo:ns:HexDigestOf:"))
	require.Len(t, a, len("memo:ns:HexDigestOf:")+64)
}
