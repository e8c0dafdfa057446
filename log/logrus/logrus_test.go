package logrus

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/unkn0wn-root/byteman"
)

func TestLogrusLoggerFields(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	l := New(base)

	l.Warn("memo get failed", byteman.Fields{"key": "memo:ns:k", "err": errors.New("down")})

	e := hook.LastEntry()
	require.NotNil(t, e)
	require.Equal(t, logrus.WarnLevel, e.Level)
	require.Equal(t, "byteman", e.Data["component"])
	require.Equal(t, "memo:ns:k", e.Data["key"])
	require.EqualError(t, e.Data[logrus.ErrorKey].(error), "down")
}
