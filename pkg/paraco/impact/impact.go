package impact

import (
	"sort"

	"github.com/fptkit/paraco/internal/successor"
	"github.com/fptkit/paraco/pkg/paraco"
	"github.com/fptkit/paraco/pkg/paraco/model"
)

// Impact lists the currently open problems that would become decided if
// Problem were declared a fact of each kind.
type Impact struct {
	Problem     paraco.Problem
	Tractable   []paraco.Problem
	Intractable []paraco.Problem
}

func (i Impact) Of(kind paraco.Kind) []paraco.Problem {
	if kind == paraco.Intractable {
		return i.Intractable
	}
	return i.Tractable
}

// Total returns the number of problems decided under either assumption.
func (i Impact) Total() int {
	return len(i.Tractable) + len(i.Intractable)
}

// Of computes the impact of p without modifying m. For each kind, the
// successor graph is explored from p in the kind's propagation
// direction; problems already known to be of either kind are not
// entered. p itself is never part of the result.
func Of(m *model.Model, p paraco.Problem) (*Impact, error) {
	if err := m.Validate(p); err != nil {
		return nil, err
	}
	gen := successor.New(m)
	return &Impact{
		Problem:     p,
		Tractable:   reach(m, gen, p, paraco.Tractable),
		Intractable: reach(m, gen, p, paraco.Intractable),
	}, nil
}

func reach(m *model.Model, gen *successor.Generator, p paraco.Problem, kind paraco.Kind) []paraco.Problem {
	var out []paraco.Problem
	dir := kind.PropagationDirection()
	solved := map[paraco.Problem]struct{}{}
	stack := []paraco.Problem{p}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, succ := range gen.Successors(current, dir) {
			if _, ok := solved[succ]; ok || m.IsDecided(succ) {
				continue
			}
			solved[succ] = struct{}{}
			stack = append(stack, succ)
			if succ != p {
				out = append(out, succ)
			}
		}
	}
	return out
}

// OpenProblems returns every nonempty subset of the Universe that is
// not a known fact of either kind, smallest first.
func OpenProblems(m *model.Model) []paraco.Problem {
	var open []paraco.Problem
	params := m.Universe().Params()
	for n := 1; n <= len(params); n++ {
		successor.Combinations(params, n, func(c []string) {
			p := paraco.NewProblem(c...)
			if !m.IsDecided(p) {
				open = append(open, p)
			}
		})
	}
	return open
}

// Rank computes the impact of every open problem and sorts the results
// by the number of problems they would decide, largest first.
func Rank(m *model.Model) ([]Impact, error) {
	open := OpenProblems(m)
	ranked := make([]Impact, 0, len(open))
	for _, p := range open {
		i, err := Of(m, p)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, *i)
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Total() > ranked[b].Total()
	})
	return ranked, nil
}
