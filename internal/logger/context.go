package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const jobIDKey ctxKey = "job_id"

// WithJobID tags the context with the id of a generation/import job so
// every log line emitted under it can be correlated.
func WithJobID(ctx context.Context, jobID string) context.Context {
	return context.WithValue(ctx, jobIDKey, jobID)
}

func JobIDFrom(ctx context.Context) string {
	if v := ctx.Value(jobIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// FromCtx returns logger with job_id automatically added
func FromCtx(ctx context.Context) *zap.Logger {
	jobID := JobIDFrom(ctx)
	if jobID == "" {
		return L()
	}
	return L().With(zap.String("job_id", jobID))
}
