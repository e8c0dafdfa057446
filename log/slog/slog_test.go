package slog

import (
	"bytes"
	stdslog "log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/byteman"
)

func TestSlogLoggerLevelsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	h := stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelInfo})
	l := New(stdslog.New(h))

	l.Debug("dropped", byteman.Fields{"op": "Pad"})
	require.Empty(t, buf.String())

	l.Info("kept", byteman.Fields{"op": "Pad"})
	require.Contains(t, buf.String(), "msg=kept")
	require.Contains(t, buf.String(), "byteman.op=Pad")
}
