package logsvc

import (
	"log"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core"
)

// StdLogger logs to the standard logger only; used in DEV|TEST mode where
// shipping to Rollbar is undesirable.
type StdLogger struct {
	std      *log.Logger
	disabled bool
}

var _ core.Logger = (*StdLogger)(nil)

func NewStdLogger(std *log.Logger) *StdLogger {
	return &StdLogger{std: std}
}

func (l *StdLogger) Enable(enabled bool) { l.disabled = !enabled }

func (l *StdLogger) print(lvl, msg string, args []interface{}) {
	if l.disabled {
		return
	}
	l.std.Printf("%s: %s", lvl, msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l *StdLogger) Debug(msg string, args ...interface{}) { l.print("DEBUG", msg, args) }
func (l *StdLogger) Info(msg string, args ...interface{})  { l.print("INFO", msg, args) }
func (l *StdLogger) Warn(msg string, args ...interface{})  { l.print("WARN", msg, args) }
func (l *StdLogger) Error(msg string, args ...interface{}) { l.print("ERROR", msg, args) }

func (l *StdLogger) Fatal(msg string, args ...interface{}) {
	l.print("FATAL", msg, args)
	l.std.Fatal(msg)
}
