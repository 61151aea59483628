package cli

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// lineDiff renders a line-level diff of before → after.
//
// Inserted lines are prefixed with "+ ", deleted lines with "- ". Runs of
// unchanged lines collapse into a single "@@ n unchanged line(s)" marker.
// Returns "" when the buffers are equal.
func lineDiff(before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		chunk := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			fmt.Fprintf(&sb, "@@ %d unchanged line(s)\n", len(chunk))
		case diffmatchpatch.DiffInsert:
			writePrefixed(&sb, "+ ", chunk)
		case diffmatchpatch.DiffDelete:
			writePrefixed(&sb, "- ", chunk)
		}
	}
	return sb.String()
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func writePrefixed(sb *strings.Builder, prefix string, lines []string) {
	for _, l := range lines {
		sb.WriteString(prefix)
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
}
