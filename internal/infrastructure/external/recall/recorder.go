package recall

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type recorderKey struct{}

// APICall is one vendor HTTP call captured in debug mode
type APICall struct {
	URL        string          `json:"url"`
	Method     string          `json:"method"`
	Status     int             `json:"status"`
	DurationMs int64           `json:"duration_ms"`
	Timestamp  time.Time       `json:"timestamp"`
	Response   json.RawMessage `json:"response,omitempty"`
}

// CallRecorder collects vendor calls made under a context
type CallRecorder struct {
	mu    sync.Mutex
	calls []APICall
}

// NewCallRecorder creates an empty recorder
func NewCallRecorder() *CallRecorder {
	return &CallRecorder{}
}

// Record appends a call
func (r *CallRecorder) Record(call APICall) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

// Calls returns a copy of the recorded calls
func (r *CallRecorder) Calls() []APICall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]APICall, len(r.calls))
	copy(out, r.calls)
	return out
}

// WithRecorder attaches a recorder to ctx; calls made with the returned context are captured
func WithRecorder(ctx context.Context, rec *CallRecorder) context.Context {
	return context.WithValue(ctx, recorderKey{}, rec)
}

func recordCall(ctx context.Context, call APICall) {
	if rec, ok := ctx.Value(recorderKey{}).(*CallRecorder); ok && rec != nil {
		rec.Record(call)
	}
}
