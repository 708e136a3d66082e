// Package log constructs the process-wide structured logger. Callers
// receive a *logrus.Logger explicitly and thread it through; a
// component whose Logger field is left nil falls back to logrus's
// standard logger.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a JSON-formatted logger at the given level ("debug",
// "info", "warn", "error"). An unrecognised level defaults to info.
func New(level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	return l
}
