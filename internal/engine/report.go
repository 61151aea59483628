package engine

import "github.com/roach88/conflictpatch/internal/patch"

// RuleReport records the result of one rule in a run.
type RuleReport struct {
	Index   int                `json:"index"` // 1-based position in the sequence
	ID      patch.RuleID       `json:"id"`
	Summary string             `json:"summary"`
	Outcome patch.Outcome      `json:"outcome"`
	Reason  string             `json:"reason,omitempty"`
	Edits   []patch.EditStatus `json:"edits,omitempty"`
	Partial bool               `json:"partial,omitempty"`
}

// Report is the application report of one run.
// Diagnostics only; it is never persisted.
type Report struct {
	RunID       string       `json:"run_id"`
	Target      string       `json:"target,omitempty"`
	Rules       []RuleReport `json:"rules"`
	BytesBefore int          `json:"bytes_before"`
	BytesAfter  int          `json:"bytes_after"`
	Warnings    []string     `json:"warnings,omitempty"`
}

func newReport(runID string, bytesBefore int) *Report {
	return &Report{
		RunID:       runID,
		Rules:       []RuleReport{},
		BytesBefore: bytesBefore,
		BytesAfter:  bytesBefore,
	}
}

func (r *Report) add(i int, rule patch.Rule, res patch.Result) {
	r.Rules = append(r.Rules, RuleReport{
		Index:   i + 1,
		ID:      rule.ID,
		Summary: rule.Summary,
		Outcome: res.Outcome,
		Reason:  res.Reason,
		Edits:   res.Edits,
		Partial: res.Partial(),
	})
}

func (r *Report) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Changed reports whether any rule modified the buffer.
func (r *Report) Changed() bool {
	return r.Count(patch.OutcomeApplied) > 0
}

// Count returns the number of rules with the given outcome.
func (r *Report) Count(o patch.Outcome) int {
	n := 0
	for _, rr := range r.Rules {
		if rr.Outcome == o {
			n++
		}
	}
	return n
}

// WithOutcome returns the rule reports with the given outcome, in order.
func (r *Report) WithOutcome(o patch.Outcome) []RuleReport {
	var out []RuleReport
	for _, rr := range r.Rules {
		if rr.Outcome == o {
			out = append(out, rr)
		}
	}
	return out
}

// Outcome returns the outcome recorded for a rule.
func (r *Report) Outcome(id patch.RuleID) (patch.Outcome, bool) {
	for _, rr := range r.Rules {
		if rr.ID == id {
			return rr.Outcome, true
		}
	}
	return "", false
}
