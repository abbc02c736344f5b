package rules

// Set keeps rules split by phase, each list in declaration order.
type Set struct {
	before []*Rule
	after  []*Rule
}

// NewSet groups rules by phase preserving their relative order.
func NewSet(rules ...*Rule) *Set {
	s := &Set{}
	for _, r := range rules {
		if r.Phase == Before {
			s.before = append(s.before, r)
		} else {
			s.after = append(s.after, r)
		}
	}
	return s
}

// Len returns the total number of rules.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.before) + len(s.after)
}

// Phase returns the rules of one phase. The slice must not be modified.
func (s *Set) Phase(p Phase) []*Rule {
	if s == nil {
		return nil
	}
	if p == Before {
		return s.before
	}
	return s.after
}

// First returns the first rule of the phase that matches at off together
// with the matched length.
func (s *Set) First(p Phase, t *Text, off int) (*Rule, int) {
	for _, r := range s.Phase(p) {
		if n := r.MatchText(t, off); n > 0 {
			return r, n
		}
	}
	return nil, 0
}
