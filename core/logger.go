package core

// Logger is the application-wide logging contract. Implementations may
// forward entries to an error-reporting backend in addition to stdout.
//
// args may carry anything worth reporting alongside the message; an error
// and the acting user are recognized by reporting implementations.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
