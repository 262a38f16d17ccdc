package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFromContext(t *testing.T) {
	t.Run("returns the stored logger", func(t *testing.T) {
		stored := zap.NewNop().Sugar()
		ctx := context.WithValue(context.Background(), ContextKey, stored)
		require.Same(t, stored, FromContext(ctx))
	})

	t.Run("falls back to a fresh logger", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})
}
