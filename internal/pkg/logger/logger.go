package logger

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type ctxKey struct{}

var global = zap.NewNop().Sugar()

// Init builds the process logger. mode is "prod" for JSON output, anything
// else gets the development console encoder.
func Init(mode string) error {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	global = l.Sugar()
	return nil
}

func Sync() {
	_ = global.Sync()
}

// WithRequestID attaches a request id that every log line for this context
// will carry.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func fromCtx(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if id := RequestID(ctx); id != "" {
			return global.With("request_id", id)
		}
	}
	return global
}

func Debugf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Debugf(format, args...)
}

func Info(ctx context.Context, msg string) {
	fromCtx(ctx).Info(msg)
}

func Infof(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Warnf(format, args...)
}

func Error(ctx context.Context, msg string) {
	fromCtx(ctx).Error(msg)
}

func Errorf(ctx context.Context, format string, args ...interface{}) {
	fromCtx(ctx).Errorf(format, args...)
}

func Fatal(ctx context.Context, err error) {
	if err == nil {
		return
	}
	fromCtx(ctx).Fatal(err.Error())
}
