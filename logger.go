package termcore

// Logger is the narrow contract the core uses for the handful of places
// that log a failure instead of propagating it (a manager resize failure
// on one screen, a resize callback error). Logging is an external
// collaborator - the core never constructs one on its own; integrators
// supply an implementation (cmd/termdemo wires go.uber.org/zap's
// SugaredLogger behind this interface).
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// noopLogger discards everything. It is the zero-value default so that
// Terminal and ScreenManager are usable without an integrator wiring a
// real logger.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Warnf(string, ...any)  {}
func (noopLogger) Errorf(string, ...any) {}

// defaultLogger is shared by every value that hasn't had a Logger set.
var defaultLogger Logger = noopLogger{}
