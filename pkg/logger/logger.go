// Package logger provides the process-wide structured logger for lectern.
//
// It wraps logrus with printf-style helpers so call sites stay terse:
//
//	logger.Info("[Orchestrator] strategy %q resolved", name)
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	std  = logrus.New()
	once sync.Once
)

func init() {
	std.SetOutput(os.Stderr)
	std.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	std.SetLevel(logrus.InfoLevel)
}

// Init configures the global logger level once. Subsequent calls are no-ops.
func Init(level string) {
	once.Do(func() {
		lvl, err := logrus.ParseLevel(strings.ToLower(level))
		if err != nil {
			std.Warnf("unknown log level %q, keeping %s", level, std.GetLevel())
			return
		}
		std.SetLevel(lvl)
	})
}

// SetOutput redirects log output. Used by tests to silence or capture logs.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// StandardLogger exposes the underlying logrus logger for advanced callers
// (hooks, per-field logging).
func StandardLogger() *logrus.Logger {
	return std
}

func Debug(format string, args ...interface{}) {
	std.Debugf(format, args...)
}

func Info(format string, args ...interface{}) {
	std.Infof(format, args...)
}

func Warn(format string, args ...interface{}) {
	std.Warnf(format, args...)
}

func Error(format string, args ...interface{}) {
	std.Errorf(format, args...)
}

func Fatal(format string, args ...interface{}) {
	std.Fatalf(format, args...)
}
