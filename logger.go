package netsuite

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Logger is the minimal structured logging surface the client emits to.
// Arguments after the message are alternating key/value pairs.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// NopLogger discards all log events. It is the default so logging never
// gates the request path.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Warn implements Logger.
func (NopLogger) Warn(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, ...any) {}

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger wraps l for use with WithLogger.
func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{l: l}
}

// Debug implements Logger.
func (z *ZerologLogger) Debug(msg string, keysAndValues ...any) {
	emit(z.l.Debug(), msg, keysAndValues)
}

// Info implements Logger.
func (z *ZerologLogger) Info(msg string, keysAndValues ...any) {
	emit(z.l.Info(), msg, keysAndValues)
}

// Warn implements Logger.
func (z *ZerologLogger) Warn(msg string, keysAndValues ...any) {
	emit(z.l.Warn(), msg, keysAndValues)
}

// Error implements Logger.
func (z *ZerologLogger) Error(msg string, keysAndValues ...any) {
	emit(z.l.Error(), msg, keysAndValues)
}

func emit(ev *zerolog.Event, msg string, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		switch v := keysAndValues[i+1].(type) {
		case string:
			ev = ev.Str(key, v)
		case int:
			ev = ev.Int(key, v)
		case int64:
			ev = ev.Int64(key, v)
		case error:
			ev = ev.AnErr(key, v)
		default:
			ev = ev.Interface(key, v)
		}
	}
	ev.Msg(msg)
}
