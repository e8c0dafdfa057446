package ristretto

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	p, err := New(DefaultConfig(1 << 20))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close(ctx) })

	ok, err := p.Set(ctx, "memo:t:k", []byte{0xde, 0xad}, 0, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	p.Wait()

	got, hit, err := p.Get(ctx, "memo:t:k")
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, []byte{0xde, 0xad}, got)

	require.NoError(t, p.Del(ctx, "memo:t:k"))
	_, hit, err = p.Get(ctx, "memo:t:k")
	require.NoError(t, err)
	require.False(t, hit)
}
