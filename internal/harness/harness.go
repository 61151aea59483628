package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/conflictpatch/internal/engine"
	"github.com/roach88/conflictpatch/internal/patch"
	"github.com/roach88/conflictpatch/internal/rules"
	"github.com/roach88/conflictpatch/internal/testutil"
)

// Harness is the scenario execution engine.
// It runs scenarios with a fixed run ID and a discarding logger.
type Harness struct {
	engine *engine.Engine
	runIDs *testutil.FixedRunIDGenerator
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
// 1. Resolve the input buffer and the rule sequence
// 2. Run the sequence Passes times, each over the previous output
// 3. Evaluate assertions against the outputs and the trace
//
// Returns an error only when the scenario cannot be set up (unknown rule
// IDs, bad move target). Assertion failures are reported in the Result.
func Run(scenario *Scenario) (*Result, error) {
	seq, err := resolveSequence(scenario)
	if err != nil {
		return nil, err
	}

	input, err := resolveInput(scenario)
	if err != nil {
		return nil, err
	}

	h := &Harness{
		runIDs: testutil.NewFixedRunIDGenerator(scenario.RunID),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	h.engine = engine.New(seq,
		engine.WithRunIDGenerator(h.runIDs),
		engine.WithLogger(h.logger),
	)

	passes := scenario.Passes
	if passes == 0 {
		passes = 1
	}

	result := NewResult(input)
	h.executePasses(passes, result)

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

func (h *Harness) executePasses(passes int, result *Result) {
	buf := result.Final()
	for pass := 1; pass <= passes; pass++ {
		var report *engine.Report
		buf, report = h.engine.Run(buf)

		result.RunID = report.RunID
		for _, rr := range report.Rules {
			result.Trace = append(result.Trace, TraceEvent{
				Pass:    pass,
				Index:   rr.Index,
				Rule:    rr.ID,
				Outcome: rr.Outcome,
				Reason:  rr.Reason,
			})
		}
		result.Outputs = append(result.Outputs, buf)
	}
}

func resolveSequence(s *Scenario) (patch.Sequence, error) {
	seq := rules.Sequence()
	if len(s.Rules) > 0 {
		sub, err := seq.Subset(s.Rules...)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		seq = sub
	}
	if s.Move != nil {
		moved, err := seq.Move(s.Move.Rule, s.Move.To)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		seq = moved
	}
	return seq, nil
}

func resolveInput(s *Scenario) (string, error) {
	switch s.Fixture {
	case "":
		return s.Input, nil
	case FixtureGame:
		return testutil.GameSource, nil
	default:
		return "", fmt.Errorf("scenario %s: unknown fixture %q", s.Name, s.Fixture)
	}
}
