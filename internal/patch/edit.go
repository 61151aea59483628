package patch

import (
	"fmt"
	"strings"
)

// EditKind selects where an edit places its text relative to its anchor.
type EditKind int

const (
	// InsertAfter inserts Text at the end of the anchored group.
	InsertAfter EditKind = iota

	// InsertBefore inserts Text at the start of the anchored group.
	InsertBefore

	// Replace substitutes the anchored group with Text.
	Replace
)

// String returns the kind name used in reports.
func (k EditKind) String() string {
	switch k {
	case InsertAfter:
		return "insert-after"
	case InsertBefore:
		return "insert-before"
	case Replace:
		return "replace"
	default:
		return fmt.Sprintf("EditKind(%d)", int(k))
	}
}

// EditStatus is the outcome of applying a single edit.
type EditStatus string

const (
	// EditApplied means the buffer changed.
	EditApplied EditStatus = "applied"

	// EditAlreadyPresent means the anchor was found but the payload was
	// already in place.
	EditAlreadyPresent EditStatus = "already-present"

	// EditNoAnchor means the anchor (or its group) was not found.
	EditNoAnchor EditStatus = "no-anchor"
)

// Edit is a single pattern-based transformation.
//
// Group selects the capture group of Anchor the edit is positioned against;
// 0 means the whole match.
type Edit struct {
	Kind   EditKind
	Anchor Anchor
	Group  int
	Text   string
}

// After creates an InsertAfter edit against the whole anchor match.
func After(a Anchor, text string) Edit {
	return Edit{Kind: InsertAfter, Anchor: a, Text: text}
}

// AfterGroup creates an InsertAfter edit against capture group g.
func AfterGroup(a Anchor, g int, text string) Edit {
	return Edit{Kind: InsertAfter, Anchor: a, Group: g, Text: text}
}

// Before creates an InsertBefore edit against the whole anchor match.
func Before(a Anchor, text string) Edit {
	return Edit{Kind: InsertBefore, Anchor: a, Text: text}
}

// With creates a Replace edit for the whole anchor match.
func With(a Anchor, text string) Edit {
	return Edit{Kind: Replace, Anchor: a, Text: text}
}

// Apply runs the edit against buf.
//
// Never fails: a missing anchor yields (buf, EditNoAnchor). Insert edits
// whose payload already sits at the insertion point yield
// (buf, EditAlreadyPresent), and so does a Replace whose group already
// equals Text.
func (e Edit) Apply(buf string) (string, EditStatus) {
	span, ok := e.Anchor.Locate(buf)
	if !ok {
		return buf, EditNoAnchor
	}
	start, end, ok := span.Group(e.Group)
	if !ok {
		return buf, EditNoAnchor
	}

	switch e.Kind {
	case InsertAfter:
		if strings.HasPrefix(buf[end:], e.Text) {
			return buf, EditAlreadyPresent
		}
		return buf[:end] + e.Text + buf[end:], EditApplied
	case InsertBefore:
		if strings.HasSuffix(buf[:start], e.Text) {
			return buf, EditAlreadyPresent
		}
		return buf[:start] + e.Text + buf[start:], EditApplied
	case Replace:
		if buf[start:end] == e.Text {
			return buf, EditAlreadyPresent
		}
		return buf[:start] + e.Text + buf[end:], EditApplied
	default:
		return buf, EditNoAnchor
	}
}
