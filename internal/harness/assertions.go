package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/conflictpatch/internal/patch"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [pass %d #%d] %s %s", ev.Pass, ev.Index, ev.Rule, ev.Outcome)
			if ev.Reason != "" {
				fmt.Fprintf(&buf, " (%s)", ev.Reason)
			}
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// assertOutputContains checks that the final buffer contains the text.
func assertOutputContains(result *Result, a Assertion) error {
	if strings.Contains(result.Final(), a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutputContains,
		Expected: fmt.Sprintf("output contains %q", a.Text),
		Actual:   "not found",
		Trace:    result.Trace,
	}
}

// assertOutputExcludes checks that the final buffer does not contain the text.
func assertOutputExcludes(result *Result, a Assertion) error {
	if i := strings.Index(result.Final(), a.Text); i >= 0 {
		return &AssertionError{
			Type:     AssertOutputExcludes,
			Expected: fmt.Sprintf("output does not contain %q", a.Text),
			Actual:   fmt.Sprintf("found at byte %d", i),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertOutputOrder checks that the first occurrences of the texts appear
// in the given order. Texts need not be adjacent.
func assertOutputOrder(result *Result, a Assertion) error {
	final := result.Final()
	prev := -1
	for i, text := range a.Texts {
		pos := strings.Index(final, text)
		if pos < 0 {
			return &AssertionError{
				Type:     AssertOutputOrder,
				Expected: fmt.Sprintf("texts in order %q", a.Texts),
				Actual:   fmt.Sprintf("%q not found", text),
			}
		}
		if pos < prev {
			return &AssertionError{
				Type:     AssertOutputOrder,
				Expected: fmt.Sprintf("texts in order %q", a.Texts),
				Actual:   fmt.Sprintf("%q (byte %d) precedes %q", text, pos, a.Texts[i-1]),
			}
		}
		prev = pos
	}
	return nil
}

// assertOutputCount checks that text occurs exactly Count times.
func assertOutputCount(result *Result, a Assertion) error {
	n := strings.Count(result.Final(), a.Text)
	if n == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutputCount,
		Expected: fmt.Sprintf("%q occurs %d time(s)", a.Text, a.Count),
		Actual:   fmt.Sprintf("%d time(s)", n),
	}
}

// assertOutcome checks the outcome a rule reported in a pass.
func assertOutcome(result *Result, a Assertion) error {
	pass := a.Pass
	if pass == 0 {
		pass = result.Passes()
	}

	ev, ok := result.Outcome(pass, a.Rule)
	if !ok {
		return &AssertionError{
			Type:     AssertOutcome,
			Expected: fmt.Sprintf("rule %s in pass %d", a.Rule, pass),
			Actual:   "rule not in trace",
			Trace:    result.Trace,
		}
	}
	if ev.Outcome != a.Outcome {
		return &AssertionError{
			Type:     AssertOutcome,
			Expected: fmt.Sprintf("rule %s %s in pass %d", a.Rule, a.Outcome, pass),
			Actual:   string(ev.Outcome),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertStable checks that the last pass changed nothing.
func assertStable(result *Result) error {
	n := len(result.Outputs)
	if n < 2 || result.Outputs[n-1] == result.Outputs[n-2] {
		return nil
	}

	var applied []string
	for _, ev := range result.Trace {
		if ev.Pass == result.Passes() && ev.Outcome == patch.OutcomeApplied {
			applied = append(applied, string(ev.Rule))
		}
	}
	return &AssertionError{
		Type:     AssertStable,
		Expected: "last pass leaves the buffer unchanged",
		Actual:   fmt.Sprintf("changed by %s", strings.Join(applied, ", ")),
		Trace:    result.Trace,
	}
}

// EvaluateAssertions runs all assertions against the result.
// Returns a slice of error messages (empty if all pass).
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string

	for _, a := range assertions {
		var err error

		switch a.Type {
		case AssertOutputContains:
			err = assertOutputContains(result, a)
		case AssertOutputExcludes:
			err = assertOutputExcludes(result, a)
		case AssertOutputOrder:
			err = assertOutputOrder(result, a)
		case AssertOutputCount:
			err = assertOutputCount(result, a)
		case AssertOutcome:
			err = assertOutcome(result, a)
		case AssertStable:
			err = assertStable(result)
		default:
			err = fmt.Errorf("unknown assertion type: %s", a.Type)
		}

		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	return errs
}
