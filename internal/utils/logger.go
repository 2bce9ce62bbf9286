package utils

import (
	"io"
	"log"
	"os"
)

type Logger struct {
	*log.Logger
	level string
}

// NewLogger writes leveled lines to out. Pass nil for stderr; the TUI
// passes a rotating file so the alternate screen stays clean.
func NewLogger(level string, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{Logger: log.New(out, "", log.LstdFlags), level: level}
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.level == "debug" {
		l.Printf("DEBUG: "+format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	l.Printf("INFO: "+format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.Printf("WARN: "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.Printf("ERROR: "+format, args...)
}
