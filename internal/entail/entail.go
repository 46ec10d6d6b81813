package entail

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/fptkit/paraco/internal/successor"
	"github.com/fptkit/paraco/pkg/paraco"
	"github.com/fptkit/paraco/pkg/paraco/model"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// Certificate is the outcome of an entailment check.
type Certificate struct {
	Query    paraco.Problem
	Kind     paraco.Kind
	Entailed bool
	// Support is a set of known facts sufficient for the entailment,
	// as reported by the solver's failed assumptions.
	Support []paraco.Problem
	// Problems is the number of problems encoded in the formula.
	Problems int
}

// Certify decides with a SAT solver whether q is of the given kind in
// every assignment consistent with the facts and the rules reachable
// from q. Each problem p becomes a variable x_p, each edge p -> s of the
// successor graph the Horn clause (not x_s or x_p), and each known fact
// an assumption x_f. q is entailed iff the formula is unsatisfiable
// under the additional assumption not x_q.
func Certify(m *model.Model, q paraco.Problem, kind paraco.Kind) (*Certificate, error) {
	if err := m.Validate(q); err != nil {
		return nil, err
	}

	cert := &Certificate{Query: q, Kind: kind}
	if m.IsKnown(q, kind) {
		cert.Entailed = true
		cert.Support = []paraco.Problem{q}
		cert.Problems = 1
		return cert, nil
	}

	g := gini.New()
	lits := newLitMapping()
	facts := encode(g, lits, m, q, kind)
	g.Assume(lits.LitOf(q).Not())
	g.Assume(facts...)
	cert.Problems = lits.Len()
	entailed, err := outcome(g.Solve())
	if err != nil {
		return nil, err
	}
	if entailed {
		cert.Entailed = true
		for _, why := range g.Why(nil) {
			if p, ok := lits.ProblemOf(why); ok && p != q {
				cert.Support = append(cert.Support, p)
			}
		}
		paraco.SortProblems(cert.Support)
	}
	return cert, nil
}

// outcome maps a gini result to the entailment answer. Solve is run
// synchronously, so anything but sat or unsat is a solver bug.
func outcome(result int) (bool, error) {
	switch result {
	case satisfiable:
		return false, nil
	case unsatisfiable:
		return true, nil
	}
	return false, fmt.Errorf("unexpected solver result %d", result)
}

// encode teaches g the successor graph reachable from q in the search
// direction of kind and returns the literals of the known facts found
// in it. Facts are not expanded further.
func encode(g *gini.Gini, lits *litMapping, m *model.Model, q paraco.Problem, kind paraco.Kind) []z.Lit {
	var facts []z.Lit
	gen := successor.New(m)
	dir := kind.SearchDirection()
	visited := map[paraco.Problem]struct{}{q: {}}
	stack := []paraco.Problem{q}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if m.IsKnown(current, kind) {
			facts = append(facts, lits.LitOf(current))
			continue
		}
		for _, succ := range gen.Successors(current, dir) {
			g.Add(lits.LitOf(succ).Not())
			g.Add(lits.LitOf(current))
			g.Add(0)
			if _, ok := visited[succ]; ok {
				continue
			}
			visited[succ] = struct{}{}
			stack = append(stack, succ)
		}
	}
	return facts
}
