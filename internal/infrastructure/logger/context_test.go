package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	l := zap.NewExample()
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestWithJobID(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)

	ctx, enriched := WithJobID(context.Background(), zap.New(core), "job-1")
	enriched.Info("PDF created successfully")

	assert.Equal(t, "job-1", GetJobID(ctx))
	assert.Equal(t, "", GetJobID(context.Background()))

	entries := recorded.FilterField(zap.String("job_id", "job-1")).All()
	assert.Len(t, entries, 1)

	FromContext(ctx).Info("from context")
	assert.Equal(t, 2, recorded.FilterField(zap.String("job_id", "job-1")).Len())
}
