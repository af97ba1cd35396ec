package trace

import (
	"context"
	"time"

	"rag-chat-be/pkg/events"
	pktNats "rag-chat-be/pkg/nats"
)

// NatsSink publishes completed run trees to the event bus so evaluation
// tooling can replay pipeline behavior offline.
type NatsSink struct {
	publisher *pktNats.Publisher
}

func NewNatsSink(publisher *pktNats.Publisher) *NatsSink {
	return &NatsSink{publisher: publisher}
}

func (s *NatsSink) Export(ctx context.Context, sessionID string, root *Run) error {
	return s.publisher.Publish(ctx, events.BaseEvent{
		Type: "TRACE_RUN_COMPLETED",
		Data: map[string]interface{}{
			"session_id": sessionID,
			"run":        root,
		},
		OccurredAt: time.Now(),
	})
}
