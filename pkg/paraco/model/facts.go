package model

import (
	"github.com/fptkit/paraco/pkg/paraco"
)

// FactBase records which Problems are known to be tractable and which
// are known to be intractable. A Problem may appear in both sets; the
// FactBase does not detect or reject that.
type FactBase struct {
	tractable   map[paraco.Problem]struct{}
	intractable map[paraco.Problem]struct{}
}

func newFactBase() FactBase {
	return FactBase{
		tractable:   map[paraco.Problem]struct{}{},
		intractable: map[paraco.Problem]struct{}{},
	}
}

func (f *FactBase) set(kind paraco.Kind) map[paraco.Problem]struct{} {
	if kind == paraco.Intractable {
		return f.intractable
	}
	return f.tractable
}

// Add records p as a fact of the given kind and reports whether it was
// new. p is not validated; use Model.RegisterFact for user input.
func (f *FactBase) Add(p paraco.Problem, kind paraco.Kind) bool {
	s := f.set(kind)
	if _, ok := s[p]; ok {
		return false
	}
	s[p] = struct{}{}
	return true
}

func (f *FactBase) Has(p paraco.Problem, kind paraco.Kind) bool {
	_, ok := f.set(kind)[p]
	return ok
}

func (f *FactBase) Len(kind paraco.Kind) int {
	return len(f.set(kind))
}

// Problems returns the facts of the given kind, sorted by size and then
// lexicographically.
func (f *FactBase) Problems(kind paraco.Kind) []paraco.Problem {
	s := f.set(kind)
	out := make([]paraco.Problem, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	paraco.SortProblems(out)
	return out
}

func (f *FactBase) equal(o *FactBase) bool {
	for _, kind := range paraco.Kinds {
		a, b := f.set(kind), o.set(kind)
		if len(a) != len(b) {
			return false
		}
		for p := range a {
			if _, ok := b[p]; !ok {
				return false
			}
		}
	}
	return true
}
