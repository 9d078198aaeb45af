package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/stellar/go/support/log"
)

// entryLogger logs through a stellar/go support/log entry so every line carries the structured fields of the entry
type entryLogger struct {
	entry *log.Entry
}

// ensure it implements Logger
var _ Logger = &entryLogger{}

// MakeEntryLogger is the factory method, all entries are written to out at info level and above
func MakeEntryLogger(out io.Writer) Logger {
	entry := log.New()
	entry.Logger.SetOutput(out)
	entry.Logger.SetLevel(logrus.InfoLevel)
	return &entryLogger{entry: entry}
}

// Info impl
func (l *entryLogger) Info(msg string) {
	l.entry.Info(msg)
}

// Infof impl
func (l *entryLogger) Infof(msg string, args ...interface{}) {
	l.entry.Infof(strings.TrimSuffix(msg, "\n"), args...)
}

// Error impl
func (l *entryLogger) Error(msg string) {
	l.entry.Error(msg)
}

// Errorf impl
func (l *entryLogger) Errorf(msg string, args ...interface{}) {
	l.entry.Errorf(strings.TrimSuffix(msg, "\n"), args...)
}

// WithField impl
func (l *entryLogger) WithField(key string, value interface{}) Logger {
	return &entryLogger{entry: l.entry.WithField(key, value)}
}
