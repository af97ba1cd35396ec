package trace

import (
	"time"

	"github.com/google/uuid"
)

// RunType tags what kind of pipeline stage a run represents.
type RunType string

const (
	RunTypeChain     RunType = "chain"
	RunTypeTool      RunType = "tool"
	RunTypeRetriever RunType = "retriever"
	RunTypeLLM       RunType = "llm"
)

// Run is one recorded pipeline-stage execution. Runs form a tree via
// Children matching the call nesting of the stages.
type Run struct {
	ID        uuid.UUID              `json:"id"`
	Name      string                 `json:"name"`
	Type      RunType                `json:"type"`
	Inputs    map[string]interface{} `json:"inputs,omitempty"`
	Outputs   map[string]interface{} `json:"outputs,omitempty"`
	Error     string                 `json:"error,omitempty"`
	StartTime time.Time              `json:"start_time"`
	EndTime   time.Time              `json:"end_time"`
	Children  []*Run                 `json:"children,omitempty"`
}

// Trace tracks the active run path of a single request. Each request owns
// its own Trace; instances are never shared across goroutines.
type Trace struct {
	SessionID string
	root      *Run
	stack     []*Run
	tracer    *Tracer
}

// Begin opens a run as a child of the currently active run and makes it the
// active one. Returns nil on a disabled trace; End tolerates nil runs so
// call sites stay unconditional.
func (t *Trace) Begin(name string, runType RunType, inputs map[string]interface{}) *Run {
	if t == nil || t.tracer == nil {
		return nil
	}

	run := &Run{
		ID:        uuid.New(),
		Name:      name,
		Type:      runType,
		Inputs:    inputs,
		StartTime: time.Now(),
	}

	if len(t.stack) == 0 {
		t.root = run
	} else {
		parent := t.stack[len(t.stack)-1]
		parent.Children = append(parent.Children, run)
	}
	t.stack = append(t.stack, run)

	return run
}

// End finalizes the run on both success and failure paths and pops it from
// the active path. When the root run ends, the completed tree is handed to
// the sink.
func (t *Trace) End(run *Run, outputs map[string]interface{}, err error) {
	if t == nil || t.tracer == nil || run == nil {
		return
	}

	run.EndTime = time.Now()
	run.Outputs = outputs
	if err != nil {
		run.Error = err.Error()
	}

	// Pop up to and including the run; guards against unbalanced Begin/End.
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.stack[i] == run {
			t.stack = t.stack[:i]
			break
		}
	}

	if run == t.root {
		t.tracer.export(t.SessionID, run)
	}
}
