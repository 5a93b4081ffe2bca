package log

import "context"

// Logger defines the interface for structured logging.
// Implementations are safe for concurrent use.
type Logger interface {
	Debug(ctx context.Context, args ...any)
	Debugf(ctx context.Context, template string, args ...any)
	Info(ctx context.Context, args ...any)
	Infof(ctx context.Context, template string, args ...any)
	Warn(ctx context.Context, args ...any)
	Warnf(ctx context.Context, template string, args ...any)
	Error(ctx context.Context, args ...any)
	Errorf(ctx context.Context, template string, args ...any)
	Fatal(ctx context.Context, args ...any)
	Fatalf(ctx context.Context, template string, args ...any)
}

// Init initializes and returns a new Logger with the provided Zap configuration.
func Init(cfg ZapConfig) Logger {
	l := &zapLogger{cfg: &cfg}
	l.init()
	return l
}
