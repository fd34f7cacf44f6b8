package logger

import "context"

type ctxKey int

const (
	traceIDKey ctxKey = iota
	jobNameKey
	workerIDKey
	actionTypeKey
	alertTypeKey
)

// WithTraceID 注入 trace_id
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceID 读取 trace_id
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}

// WithJobName 注入任务名
func WithJobName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, jobNameKey, name)
}

// WithWorkerID 注入处理协程编号
func WithWorkerID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, workerIDKey, id)
}

// WithActionType 注入队列任务类型
func WithActionType(ctx context.Context, actionType string) context.Context {
	return context.WithValue(ctx, actionTypeKey, actionType)
}

// WithAlertType 注入告警类型
func WithAlertType(ctx context.Context, alertType string) context.Context {
	return context.WithValue(ctx, alertTypeKey, alertType)
}
