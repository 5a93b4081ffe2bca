package log

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapConfig holds configuration for the Zap logger.
type ZapConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// zapLogger implements Logger.
type zapLogger struct {
	sugar *zap.SugaredLogger
	cfg   *ZapConfig
}

const timeFormat = "2006-01-02 15:04:05.000"

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format(timeFormat))
}

var logLevelMap = map[string]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
	LevelFatal: zapcore.FatalLevel,
}

func (l *zapLogger) loggerLevel() zapcore.Level {
	level, ok := logLevelMap[l.cfg.Level]
	if !ok {
		return zapcore.DebugLevel
	}
	return level
}

func (l *zapLogger) init() {
	writer := zapcore.AddSync(os.Stderr)

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	if l.cfg.Mode == ModeProduction {
		encoderCfg = zap.NewProductionEncoderConfig()
	}
	encoderCfg.LevelKey = "LEVEL"
	encoderCfg.CallerKey = "CALLER"
	encoderCfg.TimeKey = "TIME"
	encoderCfg.NameKey = "NAME"
	encoderCfg.MessageKey = "MESSAGE"
	encoderCfg.EncodeTime = timeEncoder

	if l.cfg.ColorEnabled && l.cfg.Encoding == EncodingConsole {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var encoder zapcore.Encoder
	if l.cfg.Encoding == EncodingConsole {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, writer, zap.NewAtomicLevelAt(l.loggerLevel()))
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	l.sugar = logger.Sugar()
}

func (l *zapLogger) Debug(ctx context.Context, args ...any) { l.sugar.Debug(args...) }
func (l *zapLogger) Debugf(ctx context.Context, template string, args ...any) {
	l.sugar.Debugf(template, args...)
}
func (l *zapLogger) Info(ctx context.Context, args ...any) { l.sugar.Info(args...) }
func (l *zapLogger) Infof(ctx context.Context, template string, args ...any) {
	l.sugar.Infof(template, args...)
}
func (l *zapLogger) Warn(ctx context.Context, args ...any) { l.sugar.Warn(args...) }
func (l *zapLogger) Warnf(ctx context.Context, template string, args ...any) {
	l.sugar.Warnf(template, args...)
}
func (l *zapLogger) Error(ctx context.Context, args ...any) { l.sugar.Error(args...) }
func (l *zapLogger) Errorf(ctx context.Context, template string, args ...any) {
	l.sugar.Errorf(template, args...)
}
func (l *zapLogger) Fatal(ctx context.Context, args ...any) { l.sugar.Fatal(args...) }
func (l *zapLogger) Fatalf(ctx context.Context, template string, args ...any) {
	l.sugar.Fatalf(template, args...)
}
