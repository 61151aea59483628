// Package depgraph makes the ordering constraints of a patch sequence explicit.
//
// A rule guarded by "skip if marker M is present" must run before any other
// rule whose inserted text contains M. Otherwise the later rule's output
// trips the guard on the next evaluation and the guarded change is silently
// never made. Analyze derives these edges from the rules' own guards and
// payloads, so the constraints stay in sync with the rule data.
package depgraph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/conflictpatch/internal/patch"
)

// Edge states that From must run before To.
type Edge struct {
	From   patch.RuleID `json:"from"`
	To     patch.RuleID `json:"to"`
	Marker string       `json:"marker"` // guard marker of From found in a payload of To
}

// Violation is an edge whose rules appear in the wrong order.
type Violation struct {
	Edge
	FromIndex int `json:"from_index"`
	ToIndex   int `json:"to_index"`
}

// CycleWarning reports rules that shadow each other's guards.
//
// No order satisfies a cycle, so cycles are warnings rather than errors:
// whichever rule applies first suppresses the others.
type CycleWarning struct {
	Path    []patch.RuleID `json:"path"`    // e.g. ["rule-a", "rule-b", "rule-a"]
	Message string         `json:"message"` // human-readable description
	Level   string         `json:"level"`   // always "warning"
}

// Analysis is the dependency graph of a sequence.
type Analysis struct {
	Edges      []Edge         `json:"edges"`
	Violations []Violation    `json:"violations"`
	Cycles     []CycleWarning `json:"cycles"`
}

// OrderError is returned by Validate when a sequence breaks an ordering
// constraint.
type OrderError struct {
	Violations []Violation
}

func (e *OrderError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = fmt.Sprintf("%s (#%d) must run before %s (#%d): marker %q",
			v.From, v.FromIndex+1, v.To, v.ToIndex+1, v.Marker)
	}
	return "rule order violation: " + strings.Join(parts, "; ")
}

// Analyze builds the dependency graph of seq.
//
// The algorithm:
//  1. For every pair (A, B), add A → B when a payload of B contains one of
//     A's SkipIfAny markers
//  2. Find strongly connected components with Tarjan's algorithm and report
//     each component of size > 1 as a CycleWarning
//  3. Report every edge outside a cycle whose From runs after its To
func Analyze(seq patch.Sequence) *Analysis {
	a := &Analysis{
		Edges:      []Edge{},
		Violations: []Violation{},
		Cycles:     []CycleWarning{},
	}
	if len(seq) == 0 {
		return a
	}

	graph := make(dependencyGraph, len(seq))
	for _, r := range seq {
		graph[r.ID] = []patch.RuleID{}
	}

	for _, from := range seq {
		if from.Guard == nil {
			continue
		}
		for _, to := range seq {
			if to.ID == from.ID {
				continue
			}
			if marker, ok := shadowingMarker(from.Guard.SkipIfAny, to.Payloads()); ok {
				a.Edges = append(a.Edges, Edge{From: from.ID, To: to.ID, Marker: marker})
				graph[from.ID] = append(graph[from.ID], to.ID)
			}
		}
	}

	inCycle := make(map[patch.RuleID]int)
	sccs := tarjanSCC(graph, seq.IDs())
	for i, scc := range sccs {
		if len(scc) < 2 {
			continue
		}
		// Present members in sequence order for stable output.
		sort.Slice(scc, func(x, y int) bool { return seq.Index(scc[x]) < seq.Index(scc[y]) })
		for _, id := range scc {
			inCycle[id] = i + 1
		}
		a.Cycles = append(a.Cycles, cycleSCCToWarning(scc, graph))
	}

	for _, e := range a.Edges {
		if c := inCycle[e.From]; c != 0 && c == inCycle[e.To] {
			continue
		}
		fi, ti := seq.Index(e.From), seq.Index(e.To)
		if fi > ti {
			a.Violations = append(a.Violations, Violation{Edge: e, FromIndex: fi, ToIndex: ti})
		}
	}

	return a
}

// Validate checks rule IDs and ordering constraints of seq.
// Returns *OrderError if any edge outside a cycle is reversed.
func Validate(seq patch.Sequence) error {
	if err := seq.CheckIDs(); err != nil {
		return err
	}
	if a := Analyze(seq); len(a.Violations) > 0 {
		return &OrderError{Violations: a.Violations}
	}
	return nil
}

// Dependents returns the rules that must run after id.
func (a *Analysis) Dependents(id patch.RuleID) []patch.RuleID {
	var out []patch.RuleID
	for _, e := range a.Edges {
		if e.From == id {
			out = append(out, e.To)
		}
	}
	return out
}

// shadowingMarker returns the first marker contained in any payload.
func shadowingMarker(markers, payloads []string) (string, bool) {
	for _, m := range markers {
		for _, p := range payloads {
			if strings.Contains(p, m) {
				return m, true
			}
		}
	}
	return "", false
}

// dependencyGraph maps rule ID → rules that must run after it.
type dependencyGraph map[patch.RuleID][]patch.RuleID

// tarjanSCC finds strongly connected components using Tarjan's algorithm.
//
// Nodes are visited in the given order so results are deterministic.
// Single-node SCCs are returned too; callers filter them.
func tarjanSCC(graph dependencyGraph, order []patch.RuleID) [][]patch.RuleID {
	var (
		index   = 0
		stack   []patch.RuleID
		indices = make(map[patch.RuleID]int)
		lowlink = make(map[patch.RuleID]int)
		onStack = make(map[patch.RuleID]bool)
		sccs    [][]patch.RuleID
	)

	var strongConnect func(patch.RuleID)
	strongConnect = func(v patch.RuleID) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		// v is a root node: pop the stack to form an SCC
		if lowlink[v] == indices[v] {
			var scc []patch.RuleID
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, node := range order {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}

	return sccs
}

// cycleSCCToWarning converts an SCC (in sequence order) to a CycleWarning.
func cycleSCCToWarning(scc []patch.RuleID, graph dependencyGraph) CycleWarning {
	path := reconstructCyclePath(scc, graph)

	names := make([]string, len(path))
	for i, id := range path {
		names[i] = string(id)
	}
	return CycleWarning{
		Path:    path,
		Message: fmt.Sprintf("rules shadow each other's guards: %s", strings.Join(names, " → ")),
		Level:   "warning",
	}
}

// reconstructCyclePath builds a cycle path from an SCC.
//
// Starts at the first member and follows edges to unvisited members until
// it returns to the start.
func reconstructCyclePath(scc []patch.RuleID, graph dependencyGraph) []patch.RuleID {
	if len(scc) == 0 {
		return []patch.RuleID{}
	}

	sccSet := make(map[patch.RuleID]bool, len(scc))
	for _, node := range scc {
		sccSet[node] = true
	}

	start := scc[0]
	current := start
	path := []patch.RuleID{current}
	visited := make(map[patch.RuleID]bool)

	for {
		visited[current] = true

		var next patch.RuleID
		for _, neighbor := range graph[current] {
			if sccSet[neighbor] && (!visited[neighbor] || neighbor == start) {
				next = neighbor
				break
			}
		}

		if next == "" {
			break
		}

		path = append(path, next)

		if next == start {
			break
		}

		current = next
	}

	return path
}
