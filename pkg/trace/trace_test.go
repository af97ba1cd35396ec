package trace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	sessionID string
	root      *Run
	exports   int
}

func (s *captureSink) Export(ctx context.Context, sessionID string, root *Run) error {
	s.sessionID = sessionID
	s.root = root
	s.exports++
	return nil
}

func TestTraceBuildsNestedTree(t *testing.T) {
	sink := &captureSink{}
	tracer := NewTracer(true, sink, nil)

	tr := tracer.NewTrace("session-1")

	root := tr.Begin("agent", RunTypeChain, map[string]interface{}{"message": "Hallo"})
	child := tr.Begin("retrieve_documents", RunTypeRetriever, nil)
	grandchild := tr.Begin("embed", RunTypeTool, nil)
	tr.End(grandchild, nil, nil)
	tr.End(child, map[string]interface{}{"documents": 2}, nil)
	llmRun := tr.Begin("stream_generation", RunTypeLLM, nil)
	tr.End(llmRun, nil, nil)
	tr.End(root, map[string]interface{}{"response": "Guten Tag"}, nil)

	require.Equal(t, 1, sink.exports)
	assert.Equal(t, "session-1", sink.sessionID)

	require.NotNil(t, sink.root)
	assert.Equal(t, "agent", sink.root.Name)
	require.Len(t, sink.root.Children, 2)
	assert.Equal(t, "retrieve_documents", sink.root.Children[0].Name)
	require.Len(t, sink.root.Children[0].Children, 1)
	assert.Equal(t, "embed", sink.root.Children[0].Children[0].Name)
	assert.Equal(t, "stream_generation", sink.root.Children[1].Name)
}

func TestTraceRecordsErrorAndTimestamps(t *testing.T) {
	sink := &captureSink{}
	tracer := NewTracer(true, sink, nil)

	tr := tracer.NewTrace("s")
	root := tr.Begin("agent", RunTypeChain, nil)
	tr.End(root, nil, errors.New("retrieval failed"))

	require.NotNil(t, sink.root)
	assert.Equal(t, "retrieval failed", sink.root.Error)
	assert.False(t, sink.root.StartTime.IsZero())
	assert.False(t, sink.root.EndTime.IsZero())
	assert.False(t, sink.root.EndTime.Before(sink.root.StartTime))
}

func TestTraceExportsOnlyOnRootEnd(t *testing.T) {
	sink := &captureSink{}
	tracer := NewTracer(true, sink, nil)

	tr := tracer.NewTrace("s")
	root := tr.Begin("agent", RunTypeChain, nil)
	child := tr.Begin("child", RunTypeTool, nil)
	tr.End(child, nil, nil)
	assert.Equal(t, 0, sink.exports)

	tr.End(root, nil, nil)
	assert.Equal(t, 1, sink.exports)
}

func TestDisabledTracerIsNoOp(t *testing.T) {
	tracer := NewTracer(false, &captureSink{}, nil)
	assert.Nil(t, tracer)

	// Nil tracer and nil trace tolerate the full call pattern.
	tr := tracer.NewTrace("s")
	run := tr.Begin("agent", RunTypeChain, nil)
	tr.End(run, nil, nil)
}

func TestTracesAreIndependentPerRequest(t *testing.T) {
	sink := &captureSink{}
	tracer := NewTracer(true, sink, nil)

	first := tracer.NewTrace("a")
	second := tracer.NewTrace("b")

	rootA := first.Begin("agent", RunTypeChain, nil)
	rootB := second.Begin("agent", RunTypeChain, nil)

	childB := second.Begin("child", RunTypeTool, nil)
	second.End(childB, nil, nil)
	second.End(rootB, nil, nil)

	// The first trace's stack is untouched by the second's activity.
	first.End(rootA, nil, nil)

	assert.Equal(t, 2, sink.exports)
	assert.Empty(t, sink.root.Children)
}
