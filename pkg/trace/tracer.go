package trace

import (
	"context"
	"time"

	"rag-chat-be/internal/pkg/logger"
)

// Sink receives completed root runs for externalization. Implementations
// must be safe for concurrent use.
type Sink interface {
	Export(ctx context.Context, sessionID string, root *Run) error
}

// Tracer creates per-request Traces and flushes completed trees to its
// sink. A nil Tracer is a valid no-op collaborator.
type Tracer struct {
	sink Sink
	log  logger.ILogger
}

// NewTracer returns a tracer writing to sink, or nil when disabled - all
// Trace methods tolerate the nil receiver.
func NewTracer(enabled bool, sink Sink, log logger.ILogger) *Tracer {
	if !enabled || sink == nil {
		return nil
	}
	return &Tracer{sink: sink, log: log}
}

// NewTrace opens an empty per-request trace. Safe on a nil receiver.
func (t *Tracer) NewTrace(sessionID string) *Trace {
	if t == nil {
		return nil
	}
	return &Trace{SessionID: sessionID, tracer: t}
}

func (t *Tracer) export(sessionID string, root *Run) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Export failures are logged, never surfaced to the request.
	if err := t.sink.Export(ctx, sessionID, root); err != nil && t.log != nil {
		t.log.Error("tracer", "Failed to export trace run", map[string]interface{}{
			"error":      err.Error(),
			"session_id": sessionID,
			"run":        root.Name,
		})
	}
}

// LogSink writes completed run trees to the application log. Default sink
// when no external trace store is configured.
type LogSink struct {
	Log logger.ILogger
}

func (s *LogSink) Export(_ context.Context, sessionID string, root *Run) error {
	s.Log.Info("tracer", "Pipeline run completed", map[string]interface{}{
		"session_id": sessionID,
		"run":        root,
	})
	return nil
}
