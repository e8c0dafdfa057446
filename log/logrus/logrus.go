package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/byteman"
)

var _ byteman.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

// New tags every entry with component=byteman.
func New(l *logrus.Logger) LogrusLogger {
	return LogrusLogger{E: l.WithField("component", "byteman")}
}

func (l LogrusLogger) Debug(msg string, f byteman.Fields) { l.with(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f byteman.Fields)  { l.with(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f byteman.Fields)  { l.with(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f byteman.Fields) { l.with(f).Error(msg) }

func (l LogrusLogger) with(f byteman.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	// logrus renders errors under the "error" key only when added via WithError
	if err, ok := f["err"].(error); ok {
		rest := make(logrus.Fields, len(f)-1)
		for k, v := range f {
			if k != "err" {
				rest[k] = v
			}
		}
		return l.E.WithError(err).WithFields(rest)
	}
	return l.E.WithFields(logrus.Fields(f))
}
