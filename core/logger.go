package core

// Logger is any service that can report diagnostics. Implementations may ship
// entries to an external tracker; args can carry an error, a context map or
// the acting user.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
