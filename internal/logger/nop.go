package logger

type nopLogger struct{}

// NewNop returns a Logger that discards everything. For tests.
func NewNop() Logger {
	return nopLogger{}
}

func (nopLogger) With(args ...interface{}) Logger { return nopLogger{} }

func (nopLogger) Debugf(template string, args ...interface{}) {}

func (nopLogger) Infof(template string, args ...interface{}) {}

func (nopLogger) Warnf(template string, args ...interface{}) {}

func (nopLogger) Errorf(template string, args ...interface{}) {}

func (nopLogger) Fatalf(template string, args ...interface{}) {}

func (nopLogger) Sync() error { return nil }
