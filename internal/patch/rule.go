package patch

// RuleID identifies a rule within a sequence.
type RuleID string

// Outcome classifies what a rule did to the buffer.
type Outcome string

const (
	// OutcomeApplied means at least one edit changed the buffer.
	OutcomeApplied Outcome = "applied"

	// OutcomeSkippedByGuard means the guard reported the change present.
	OutcomeSkippedByGuard Outcome = "skipped-by-guard"

	// OutcomeAlreadyApplied means anchors were found but every located
	// payload was already in place.
	OutcomeAlreadyApplied Outcome = "already-applied"

	// OutcomeNoAnchor means no edit found its anchor.
	OutcomeNoAnchor Outcome = "no-anchor"
)

// Rule is a single named transformation over a source buffer.
type Rule struct {
	ID RuleID

	// Summary is the one-line, user-facing description of the change.
	Summary string

	// Notes records known limitations of the rule, if any.
	Notes string

	// Guard suppresses the rule when it holds. Nil means no guard; the rule
	// then relies on its edits being no-ops once applied.
	Guard *Guard

	// Edits run in order, each on the output of the previous one.
	Edits []Edit
}

// Result reports what Apply did.
type Result struct {
	Outcome Outcome

	// Reason names the guard marker that caused a skip.
	Reason string

	// Edits holds one status per edit, in order. Empty when skipped.
	Edits []EditStatus
}

// Partial reports whether the rule applied some edits while others
// found no anchor.
func (r Result) Partial() bool {
	if r.Outcome != OutcomeApplied {
		return false
	}
	for _, s := range r.Edits {
		if s == EditNoAnchor {
			return true
		}
	}
	return false
}

// Apply runs the rule against buf.
//
// Returns buf unchanged with OutcomeSkippedByGuard when the guard holds.
// Otherwise every edit runs in order; anchor absence is never an error.
func (r Rule) Apply(buf string) (string, Result) {
	if skip, reason := r.Guard.Holds(buf); skip {
		return buf, Result{Outcome: OutcomeSkippedByGuard, Reason: reason}
	}

	res := Result{Edits: make([]EditStatus, 0, len(r.Edits))}
	var applied, present int
	for _, e := range r.Edits {
		var st EditStatus
		buf, st = e.Apply(buf)
		res.Edits = append(res.Edits, st)
		switch st {
		case EditApplied:
			applied++
		case EditAlreadyPresent:
			present++
		}
	}

	switch {
	case applied > 0:
		res.Outcome = OutcomeApplied
	case present > 0:
		res.Outcome = OutcomeAlreadyApplied
	default:
		res.Outcome = OutcomeNoAnchor
	}
	return buf, res
}

// Payloads returns the text every edit of the rule may introduce.
func (r Rule) Payloads() []string {
	out := make([]string, 0, len(r.Edits))
	for _, e := range r.Edits {
		if e.Text != "" {
			out = append(out, e.Text)
		}
	}
	return out
}
