package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/conflictpatch/internal/depgraph"
	"github.com/roach88/conflictpatch/internal/patch"
	"github.com/roach88/conflictpatch/internal/rules"
)

// RuleEntry describes one rule in the `rules` listing.
type RuleEntry struct {
	Index      int          `json:"index"`
	ID         patch.RuleID `json:"id"`
	Summary    string       `json:"summary"`
	SkipIfAny  []string     `json:"skip_if_any,omitempty"`
	RequireAll []string     `json:"require_all,omitempty"`
	Anchors    []string     `json:"anchors"`
	Notes      string       `json:"notes,omitempty"`
}

// RulesListing is the JSON payload of the rules command.
type RulesListing struct {
	Target   string             `json:"target"`
	Rules    []RuleEntry        `json:"rules"`
	Analysis *depgraph.Analysis `json:"analysis"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the patch sequence and its ordering constraints",
		Long: `List every rule in application order with its guard, anchors and known
limitations, followed by the ordering constraints derived from the rules'
guard markers and inserted text.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			return listRules(formatter, rules.Sequence())
		},
	}
}

// listRules prints the listing of seq and fails when its order breaks a
// constraint, so a bad sequence exits non-zero after being shown.
func listRules(formatter *OutputFormatter, seq patch.Sequence) error {
	if err := outputRules(formatter, buildListing(seq)); err != nil {
		return err
	}
	if err := depgraph.Validate(seq); err != nil {
		return WrapExitError(ExitFailure, "invalid rule order", err)
	}
	return nil
}

func buildListing(seq patch.Sequence) *RulesListing {
	listing := &RulesListing{
		Target:   rules.TargetFile,
		Rules:    make([]RuleEntry, 0, len(seq)),
		Analysis: depgraph.Analyze(seq),
	}
	for i, r := range seq {
		entry := RuleEntry{
			Index:   i + 1,
			ID:      r.ID,
			Summary: r.Summary,
			Notes:   r.Notes,
			Anchors: make([]string, 0, len(r.Edits)),
		}
		if r.Guard != nil {
			entry.SkipIfAny = r.Guard.SkipIfAny
			entry.RequireAll = r.Guard.RequireAll
		}
		for _, e := range r.Edits {
			entry.Anchors = append(entry.Anchors, fmt.Sprintf("%s %s", e.Kind, e.Anchor.Name))
		}
		listing.Rules = append(listing.Rules, entry)
	}
	return listing
}

func outputRules(formatter *OutputFormatter, listing *RulesListing) error {
	if formatter.JSON() {
		return formatter.Success(listing)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Patch sequence for %s (%d rules):\n\n", listing.Target, len(listing.Rules))
	for _, r := range listing.Rules {
		fmt.Fprintf(w, "%2d. %s\n", r.Index, r.ID)
		fmt.Fprintf(w, "    %s\n", r.Summary)
		if g := describeGuard(r); g != "" {
			fmt.Fprintf(w, "    guard:  %s\n", g)
		}
		for _, a := range r.Anchors {
			fmt.Fprintf(w, "    edit:   %s\n", a)
		}
		if r.Notes != "" {
			fmt.Fprintf(w, "    note:   %s\n", r.Notes)
		}
	}

	a := listing.Analysis
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ordering constraints:")
	if len(a.Edges) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, e := range a.Edges {
		fmt.Fprintf(w, "  %s → %s (marker %s)\n", e.From, e.To, strconv.Quote(e.Marker))
	}

	for _, c := range a.Cycles {
		fmt.Fprintf(w, "⚠ %s\n", c.Message)
	}
	for _, v := range a.Violations {
		fmt.Fprintf(w, "✗ %s\n", (&depgraph.OrderError{Violations: []depgraph.Violation{v}}).Error())
	}
	return nil
}

func describeGuard(r RuleEntry) string {
	var parts []string
	if len(r.SkipIfAny) > 0 {
		parts = append(parts, "skip if any of "+quoteAll(r.SkipIfAny))
	}
	if len(r.RequireAll) > 0 {
		parts = append(parts, "require "+quoteAll(r.RequireAll))
	}
	return strings.Join(parts, "; ")
}

func quoteAll(ss []string) string {
	q := make([]string, len(ss))
	for i, s := range ss {
		q[i] = strconv.Quote(s)
	}
	return strings.Join(q, ", ")
}
