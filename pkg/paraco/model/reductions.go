package model

import (
	"sort"

	"github.com/fptkit/paraco/pkg/paraco"
)

// Relation maps a Problem to the ordered list of Problems it is related
// to.
type Relation map[paraco.Problem][]paraco.Problem

// Equal compares two relations key by key, ignoring the order of the
// related problems.
func (r Relation) Equal(o Relation) bool {
	if len(r) != len(o) {
		return false
	}
	for from, to := range r {
		other, ok := o[from]
		if !ok || len(other) != len(to) {
			return false
		}
		a := append([]paraco.Problem(nil), to...)
		b := append([]paraco.Problem(nil), other...)
		sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
		sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

// relation keeps the insertion order of its keys so that successor
// generation is deterministic.
type relation struct {
	order   []paraco.Problem
	targets Relation
}

func newRelation() relation {
	return relation{targets: Relation{}}
}

func (r *relation) add(from, to paraco.Problem) {
	if _, ok := r.targets[from]; !ok {
		r.order = append(r.order, from)
	}
	r.targets[from] = append(r.targets[from], to)
}

func (r *relation) get(from paraco.Problem) []paraco.Problem {
	return append([]paraco.Problem(nil), r.targets[from]...)
}

func (r *relation) copy() Relation {
	out := make(Relation, len(r.targets))
	for from, to := range r.targets {
		out[from] = append([]paraco.Problem(nil), to...)
	}
	return out
}

// ReductionStore holds the user-declared reductions. Every reduction is
// indexed twice: pattern -> replacement in the reduction relation and
// replacement -> pattern in the antireduction relation. Add is the only
// writer, so the two relations are always inverses of each other.
type ReductionStore struct {
	reductions     relation
	antireductions relation
	count          int
}

func newReductionStore() ReductionStore {
	return ReductionStore{
		reductions:     newRelation(),
		antireductions: newRelation(),
	}
}

// Add declares that replacing pattern with replacement yields a problem
// that is tractable whenever the original is.
func (s *ReductionStore) Add(pattern, replacement paraco.Problem) {
	s.reductions.add(pattern, replacement)
	s.antireductions.add(replacement, pattern)
	s.count++
}

// Replacements returns the replacements declared for pattern.
func (s *ReductionStore) Replacements(pattern paraco.Problem) []paraco.Problem {
	return s.reductions.get(pattern)
}

// Patterns returns the patterns that were declared to reduce to
// replacement.
func (s *ReductionStore) Patterns(replacement paraco.Problem) []paraco.Problem {
	return s.antireductions.get(replacement)
}

// Len returns the number of declared reductions.
func (s *ReductionStore) Len() int {
	return s.count
}

func (s *ReductionStore) relation(dir paraco.Direction) *relation {
	if dir == paraco.TowardIntractable {
		return &s.antireductions
	}
	return &s.reductions
}

// Each calls fn for every key of the relation used in direction dir
// (reductions toward tractable, antireductions toward intractable), in
// the order the keys were first declared.
func (s *ReductionStore) Each(dir paraco.Direction, fn func(from paraco.Problem, to []paraco.Problem)) {
	r := s.relation(dir)
	for _, from := range r.order {
		fn(from, r.targets[from])
	}
}

// Relation returns a copy of the relation used in direction dir.
func (s *ReductionStore) Relation(dir paraco.Direction) Relation {
	return s.relation(dir).copy()
}
