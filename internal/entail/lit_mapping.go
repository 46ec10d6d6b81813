package entail

import (
	"github.com/go-air/gini/z"

	"github.com/fptkit/paraco/pkg/paraco"
)

// litMapping performs translation between Problems and the variables
// that appear in the SAT formula.
type litMapping struct {
	lits     map[paraco.Problem]z.Lit
	problems map[z.Lit]paraco.Problem
	next     z.Var
}

func newLitMapping() *litMapping {
	return &litMapping{
		lits:     map[paraco.Problem]z.Lit{},
		problems: map[z.Lit]paraco.Problem{},
	}
}

// LitOf returns the positive literal standing for "p holds", allocating
// a fresh variable the first time p is seen.
func (d *litMapping) LitOf(p paraco.Problem) z.Lit {
	if m, ok := d.lits[p]; ok {
		return m
	}
	d.next++
	m := d.next.Pos()
	d.lits[p] = m
	d.problems[m] = p
	return m
}

// ProblemOf returns the Problem behind a positive or negative literal.
func (d *litMapping) ProblemOf(m z.Lit) (paraco.Problem, bool) {
	p, ok := d.problems[m.Var().Pos()]
	return p, ok
}

func (d *litMapping) Len() int {
	return len(d.lits)
}
