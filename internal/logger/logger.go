package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New() *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	opts := []zap.Option{
		zap.AddStacktrace(zap.ErrorLevel),
	}

	if strings.ToLower(os.Getenv("QB_ENV")) == "dev" {
		logger, err = zap.NewDevelopment(opts...)
	} else {
		opts = append(opts, zap.Fields(zap.Field{
			Key:    "QB_ENV",
			Type:   zapcore.StringType,
			String: os.Getenv("QB_ENV"),
		}))
		logger, err = zap.NewProduction(opts...)
	}

	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}

	return logger.Sugar()
}

type contextKey struct{}

var ContextKey = contextKey{}

func FromContext(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(ContextKey).(*zap.SugaredLogger); ok {
		return logger
	}
	return New()
}

func init() {
	logger := New()
	zap.ReplaceGlobals(logger.Desugar())
}
