package patch

import (
	"fmt"
	"regexp"
)

// Anchor locates a structural span of text inside a buffer.
//
// Anchors are backed by RE2 patterns. Literal anchors quote their text, so
// callers never need to escape punctuation such as braces or template
// placeholders. Pattern anchors should use non-greedy repetition when the
// span must end at the FIRST closing delimiter after a keyword.
//
// Only the first match in the buffer is ever used.
type Anchor struct {
	// Name describes the anchor in reports and logs.
	Name string

	re *regexp.Regexp
}

// Literal creates an anchor matching text exactly.
func Literal(name, text string) Anchor {
	return Anchor{Name: name, re: regexp.MustCompile(regexp.QuoteMeta(text))}
}

// Pattern creates an anchor from an RE2 expression.
// Panics if the expression does not compile; anchors are declared at init.
func Pattern(name, expr string) Anchor {
	return Anchor{Name: name, re: regexp.MustCompile(expr)}
}

// Span is the location of an anchor match within a buffer.
//
// Offsets are byte offsets into the buffer the span was located in and are
// only valid for that exact buffer value.
type Span struct {
	loc []int // submatch index pairs, as returned by regexp
}

// Locate returns the first span matching the anchor.
// Returns false if the anchor is absent (or the anchor is the zero value).
func (a Anchor) Locate(buf string) (Span, bool) {
	if a.re == nil {
		return Span{}, false
	}
	loc := a.re.FindStringSubmatchIndex(buf)
	if loc == nil {
		return Span{}, false
	}
	return Span{loc: loc}, true
}

// Present reports whether the anchor occurs anywhere in buf.
func (a Anchor) Present(buf string) bool {
	return a.re != nil && a.re.MatchString(buf)
}

// Groups returns the number of capture groups in the anchor.
func (a Anchor) Groups() int {
	if a.re == nil {
		return 0
	}
	return a.re.NumSubexp()
}

// String returns the anchor name followed by its expression.
func (a Anchor) String() string {
	if a.re == nil {
		return a.Name
	}
	return fmt.Sprintf("%s /%s/", a.Name, a.re.String())
}

// Start returns the start offset of the whole match.
func (s Span) Start() int { return s.loc[0] }

// End returns the end offset of the whole match.
func (s Span) End() int { return s.loc[1] }

// Group returns the offsets of capture group i (0 is the whole match).
// ok is false if the group does not exist or did not participate.
func (s Span) Group(i int) (start, end int, ok bool) {
	if i < 0 || 2*i+1 >= len(s.loc) {
		return 0, 0, false
	}
	start, end = s.loc[2*i], s.loc[2*i+1]
	if start < 0 {
		return 0, 0, false
	}
	return start, end, true
}

// Text returns the text of capture group i within buf.
func (s Span) Text(buf string, i int) string {
	start, end, ok := s.Group(i)
	if !ok {
		return ""
	}
	return buf[start:end]
}
