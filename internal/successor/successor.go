package successor

import (
	"github.com/fptkit/paraco/pkg/paraco"
	"github.com/fptkit/paraco/pkg/paraco/model"
)

// Source is the part of a Model the Generator reads.
type Source interface {
	Universe() model.Universe
	Reductions() *model.ReductionStore
}

// Generator produces the problems reachable from a Problem by one
// reduction step. It reads the reductions of its Source on every call,
// so reductions declared after construction are taken into account.
type Generator struct {
	source Source
}

func New(source Source) *Generator {
	return &Generator{source: source}
}

// Successors returns the natural successors of p followed by its user
// successors in direction dir. The result may contain duplicates and
// is not filtered against the Universe.
func (g *Generator) Successors(p paraco.Problem, dir paraco.Direction) []paraco.Problem {
	return append(g.Natural(p, dir), g.User(p, dir)...)
}

// Natural returns the structural successors of p. Toward tractable these
// are the nonempty proper subsets of p, largest first. Toward intractable
// these are the unions of p with every nonempty proper subset S of the
// complement of p, smallest S first.
func (g *Generator) Natural(p paraco.Problem, dir paraco.Direction) []paraco.Problem {
	var out []paraco.Problem
	switch dir {
	case paraco.TowardTractable:
		params := p.Params()
		for n := len(params) - 1; n >= 1; n-- {
			Combinations(params, n, func(c []string) {
				out = append(out, paraco.NewProblem(c...))
			})
		}
	case paraco.TowardIntractable:
		complement := g.source.Universe().Complement(p).Params()
		for n := 1; n < len(complement); n++ {
			Combinations(complement, n, func(c []string) {
				out = append(out, p.Union(paraco.NewProblem(c...)))
			})
		}
	}
	return out
}

// User returns the successors of p obtained from declared reductions:
// for every pattern c that is a subset of p and every replacement r of
// c, the union of p minus c with r.
// Toward intractable the antireduction relation is used instead.
func (g *Generator) User(p paraco.Problem, dir paraco.Direction) []paraco.Problem {
	var out []paraco.Problem
	g.source.Reductions().Each(dir, func(pattern paraco.Problem, replacements []paraco.Problem) {
		if !pattern.IsSubsetOf(p) {
			return
		}
		base := p.Difference(pattern)
		for _, r := range replacements {
			out = append(out, base.Union(r))
		}
	})
	return out
}
