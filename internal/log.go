package internal

import (
	"github.com/sirupsen/logrus"
)

// Logger returns log, or the standard logger if log is nil.
func Logger(log *logrus.Logger) *logrus.Logger {
	if log == nil {
		return logrus.StandardLogger()
	}
	return log
}

// Verbosity maps a count of -v flags to a log level, starting from warnings.
func Verbosity(count int) logrus.Level {
	level := logrus.WarnLevel + logrus.Level(count)
	if level > logrus.TraceLevel {
		level = logrus.TraceLevel
	}
	return level
}
