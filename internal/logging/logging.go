package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Discard returns a logger that drops everything. Engine components use
// it when no logger is configured.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// New returns a text logger writing to w, at debug level if debug is set.
func New(w io.Writer, debug bool) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return logrus.NewEntry(l)
}
