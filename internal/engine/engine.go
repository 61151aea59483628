package engine

import (
	"io"
	"log/slog"

	"github.com/roach88/conflictpatch/internal/depgraph"
	"github.com/roach88/conflictpatch/internal/patch"
)

// RunIDGenerator generates run identifiers for report and log correlation.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type RunIDGenerator interface {
	Generate() string
}

// Engine applies a fixed sequence of rules to source buffers.
//
// INVARIANTS:
//   - seq order NEVER changes after construction
//   - Run never fails; missing anchors are reported, not raised
type Engine struct {
	seq    patch.Sequence
	runIDs RunIDGenerator
	logger *slog.Logger
}

// Option allows configuration of engine parameters.
type Option func(*Engine)

// WithLogger sets the logger used for per-rule diagnostics.
// Default: a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithRunIDGenerator overrides the run ID source.
// Default: UUIDv7Generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(e *Engine) {
		e.runIDs = g
	}
}

// New creates an Engine for the given sequence.
//
// The sequence is copied to prevent external mutation from changing the
// application order.
func New(seq patch.Sequence, opts ...Option) *Engine {
	seqCopy := make(patch.Sequence, len(seq))
	copy(seqCopy, seq)

	e := &Engine{
		seq:    seqCopy,
		runIDs: UUIDv7Generator{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Sequence returns a copy of the engine's rule sequence.
func (e *Engine) Sequence() patch.Sequence {
	out := make(patch.Sequence, len(e.seq))
	copy(out, e.seq)
	return out
}

// Run applies every rule in order and returns the final buffer with a
// report of what each rule did.
func (e *Engine) Run(buf string) (string, *Report) {
	report := newReport(e.runIDs.Generate(), len(buf))
	log := e.logger.With("run_id", report.RunID)

	analysis := depgraph.Analyze(e.seq)
	for _, c := range analysis.Cycles {
		report.addWarning(c.Message)
	}
	for _, v := range analysis.Violations {
		report.addWarning((&depgraph.OrderError{Violations: []depgraph.Violation{v}}).Error())
	}

	log.Debug("applying sequence", "rules", len(e.seq), "bytes", len(buf))

	for i, rule := range e.seq {
		var res patch.Result
		buf, res = rule.Apply(buf)
		report.add(i, rule, res)

		log.Debug("rule evaluated",
			"index", i+1,
			"rule", rule.ID,
			"outcome", res.Outcome,
			"reason", res.Reason,
		)
		if res.Partial() {
			log.Warn("rule applied partially", "rule", rule.ID, "edits", res.Edits)
		}
	}

	report.BytesAfter = len(buf)
	log.Info("sequence applied",
		"applied", report.Count(patch.OutcomeApplied),
		"skipped", report.Count(patch.OutcomeSkippedByGuard),
		"already_applied", report.Count(patch.OutcomeAlreadyApplied),
		"no_anchor", report.Count(patch.OutcomeNoAnchor),
	)

	return buf, report
}

// Run applies seq to buf with a default engine.
func Run(buf string, seq patch.Sequence) (string, *Report) {
	return New(seq).Run(buf)
}
