package zap

import (
	"sort"

	"go.uber.org/zap"

	"github.com/unkn0wn-root/byteman"
)

var _ byteman.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

// New names the logger "byteman" so converter output is easy to filter.
func New(l *zap.Logger) ZapLogger { return ZapLogger{L: l.Named("byteman")} }

func (z ZapLogger) Debug(msg string, f byteman.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f byteman.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f byteman.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f byteman.Fields) { z.L.Error(msg, zf(f)...) }

// zf sorts keys so repeated events render identically.
func zf(f byteman.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		if err, ok := f[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
