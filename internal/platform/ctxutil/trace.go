package ctxutil

import "context"

type traceKey struct{}

// Trace holds the correlation ids echoed in X-Trace-Id and X-Request-Id.
type Trace struct {
	TraceID   string
	RequestID string
}

func WithTrace(ctx context.Context, t Trace) context.Context {
	return context.WithValue(ctx, traceKey{}, t)
}

func TraceFrom(ctx context.Context) (Trace, bool) {
	if ctx == nil {
		return Trace{}, false
	}
	t, ok := ctx.Value(traceKey{}).(Trace)
	return t, ok
}

// LogFields returns the ids that are set, as logger key/value pairs.
func (t Trace) LogFields() []interface{} {
	out := make([]interface{}, 0, 4)
	if t.TraceID != "" {
		out = append(out, "trace_id", t.TraceID)
	}
	if t.RequestID != "" {
		out = append(out, "request_id", t.RequestID)
	}
	return out
}
