package patch

import (
	"strconv"
	"strings"
)

// Guard decides whether a rule's change is already present.
//
// The guard holds (and the rule is skipped) when ANY SkipIfAny marker is
// found in the buffer, or when ANY RequireAll marker is missing. Markers are
// plain substrings, not patterns.
//
// A guard only looks at markers; it does not verify that the rule's own
// anchors match. A broad marker can therefore suppress a rule whose specific
// change has never been made.
type Guard struct {
	// SkipIfAny lists markers whose presence means "already applied".
	SkipIfAny []string

	// RequireAll lists markers that must exist for the rule to run.
	RequireAll []string
}

// SkipIf creates a guard that holds when any marker is present.
func SkipIf(markers ...string) *Guard {
	return &Guard{SkipIfAny: markers}
}

// Requiring returns a copy of the guard that also requires markers.
func (g *Guard) Requiring(markers ...string) *Guard {
	out := &Guard{
		SkipIfAny:  append([]string(nil), g.SkipIfAny...),
		RequireAll: append(append([]string(nil), g.RequireAll...), markers...),
	}
	return out
}

// Holds reports whether the rule should be skipped for buf.
// The returned reason names the deciding marker.
// A nil guard never holds.
func (g *Guard) Holds(buf string) (bool, string) {
	if g == nil {
		return false, ""
	}
	for _, m := range g.SkipIfAny {
		if strings.Contains(buf, m) {
			return true, "found " + strconv.Quote(m)
		}
	}
	for _, m := range g.RequireAll {
		if !strings.Contains(buf, m) {
			return true, "missing " + strconv.Quote(m)
		}
	}
	return false, ""
}
