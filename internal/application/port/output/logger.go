package output

type LoggerPort interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	WithField(key string, value any) LoggerPort
	WithFields(fields map[string]any) LoggerPort

	Close() error
}

// NopLogger drops every entry. Handy in tests and for optional loggers.
type NopLogger struct{}

var _ LoggerPort = NopLogger{}

func (NopLogger) Debug(string, ...any)                   {}
func (NopLogger) Info(string, ...any)                    {}
func (NopLogger) Warn(string, ...any)                    {}
func (NopLogger) Error(string, ...any)                   {}
func (n NopLogger) WithField(string, any) LoggerPort     { return n }
func (n NopLogger) WithFields(map[string]any) LoggerPort { return n }
func (NopLogger) Close() error                           { return nil }
