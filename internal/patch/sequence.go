package patch

import "fmt"

// Sequence is an ordered list of rules. Order is load-bearing.
type Sequence []Rule

// IDs returns the rule IDs in sequence order.
func (s Sequence) IDs() []RuleID {
	ids := make([]RuleID, len(s))
	for i, r := range s {
		ids[i] = r.ID
	}
	return ids
}

// Index returns the position of the rule with the given ID, or -1.
func (s Sequence) Index(id RuleID) int {
	for i, r := range s {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Lookup returns the rule with the given ID.
func (s Sequence) Lookup(id RuleID) (Rule, bool) {
	if i := s.Index(id); i >= 0 {
		return s[i], true
	}
	return Rule{}, false
}

// Subset returns a new sequence containing the given rules in the order
// the IDs are listed. Unknown IDs are an error.
func (s Sequence) Subset(ids ...RuleID) (Sequence, error) {
	out := make(Sequence, 0, len(ids))
	for _, id := range ids {
		r, ok := s.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("unknown rule %q", id)
		}
		out = append(out, r)
	}
	return out, nil
}

// Move returns a copy of the sequence with rule id placed at index to.
// Used to build deliberately reordered sequences.
func (s Sequence) Move(id RuleID, to int) (Sequence, error) {
	from := s.Index(id)
	if from < 0 {
		return nil, fmt.Errorf("unknown rule %q", id)
	}
	if to < 0 || to >= len(s) {
		return nil, fmt.Errorf("index %d out of range [0,%d)", to, len(s))
	}
	rest := make(Sequence, 0, len(s)-1)
	rest = append(rest, s[:from]...)
	rest = append(rest, s[from+1:]...)

	out := make(Sequence, 0, len(s))
	out = append(out, rest[:to]...)
	out = append(out, s[from])
	out = append(out, rest[to:]...)
	return out, nil
}

// CheckIDs returns an error if any rule has an empty or duplicate ID.
func (s Sequence) CheckIDs() error {
	seen := make(map[RuleID]int, len(s))
	for i, r := range s {
		if r.ID == "" {
			return fmt.Errorf("rule[%d]: id is required", i)
		}
		if j, dup := seen[r.ID]; dup {
			return fmt.Errorf("rule[%d]: duplicate id %q (first at rule[%d])", i, r.ID, j)
		}
		seen[r.ID] = i
	}
	return nil
}
