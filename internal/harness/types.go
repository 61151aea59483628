package harness

import (
	"github.com/roach88/conflictpatch/internal/patch"
)

// TraceEvent records the outcome of one rule in one pass.
type TraceEvent struct {
	Pass    int           `json:"pass"`  // 1-based pass number
	Index   int           `json:"index"` // 1-based position in the sequence
	Rule    patch.RuleID  `json:"rule"`
	Outcome patch.Outcome `json:"outcome"`
	Reason  string        `json:"reason,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all assertions hold.
	Pass bool `json:"pass"`

	// RunID is the run ID shared by every pass.
	RunID string `json:"run_id"`

	// Trace contains one event per rule per pass, in execution order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Outputs holds the buffer after each pass; Outputs[0] is the input.
	Outputs []string `json:"-"`
}

// NewResult creates a new passing result for the given input buffer.
func NewResult(input string) *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
		Outputs: []string{input},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Passes returns the number of completed passes.
func (r *Result) Passes() int {
	return len(r.Outputs) - 1
}

// Final returns the buffer after the last pass.
func (r *Result) Final() string {
	return r.Outputs[len(r.Outputs)-1]
}

// Outcome returns the outcome of rule in the given 1-based pass.
func (r *Result) Outcome(pass int, rule patch.RuleID) (TraceEvent, bool) {
	for _, ev := range r.Trace {
		if ev.Pass == pass && ev.Rule == rule {
			return ev, true
		}
	}
	return TraceEvent{}, false
}
