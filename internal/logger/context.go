package logger

import "context"

type ctxKey int

const (
	runIDKey ctxKey = iota
	stageKey
)

// WithRunID tags every line logged with ctx with the given run id
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithStage tags every line logged with ctx with the current pipeline stage
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey, stage)
}

func fields(ctx context.Context) []interface{} {
	if ctx == nil {
		return nil
	}
	var kv []interface{}
	if id, ok := ctx.Value(runIDKey).(string); ok && id != "" {
		kv = append(kv, "run_id", id)
	}
	if stage, ok := ctx.Value(stageKey).(string); ok && stage != "" {
		kv = append(kv, "stage", stage)
	}
	return kv
}
