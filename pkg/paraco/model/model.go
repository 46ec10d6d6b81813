package model

import (
	"github.com/fptkit/paraco/pkg/paraco"
)

// Model is a knowledge base about one parameterized problem: the
// Universe of its parameters, the known facts and the declared
// reductions. Facts and reductions only ever grow; a Model is owned by
// a single caller and is not safe for concurrent use.
type Model struct {
	name       string
	universe   Universe
	facts      FactBase
	reductions ReductionStore
}

func New(name string, parameters ...string) *Model {
	return &Model{
		name:       name,
		universe:   NewUniverse(parameters...),
		facts:      newFactBase(),
		reductions: newReductionStore(),
	}
}

func (m *Model) Name() string {
	return m.name
}

func (m *Model) Universe() Universe {
	return m.universe
}

func (m *Model) Facts() *FactBase {
	return &m.facts
}

func (m *Model) Reductions() *ReductionStore {
	return &m.reductions
}

// Validate returns an InvalidParameters error if p names a parameter
// outside the Universe.
func (m *Model) Validate(p paraco.Problem) error {
	if unknown := m.universe.Unknown(p); len(unknown) > 0 {
		return paraco.InvalidParameters(unknown)
	}
	return nil
}

func (m *Model) IsValid(p paraco.Problem) bool {
	return m.Validate(p) == nil
}

// RegisterFact records p as a known fact of the given kind. It does not
// check p against facts of the other kind.
func (m *Model) RegisterFact(p paraco.Problem, kind paraco.Kind) error {
	if err := m.Validate(p); err != nil {
		return err
	}
	m.facts.Add(p, kind)
	return nil
}

// AddReduction declares the reduction pattern > replacement. Pattern
// and replacement may overlap or be equal.
func (m *Model) AddReduction(pattern, replacement paraco.Problem) error {
	if err := m.Validate(pattern); err != nil {
		return err
	}
	if err := m.Validate(replacement); err != nil {
		return err
	}
	m.reductions.Add(pattern, replacement)
	return nil
}

func (m *Model) IsKnown(p paraco.Problem, kind paraco.Kind) bool {
	return m.facts.Has(p, kind)
}

// IsDecided returns true if p is a known fact of either kind.
func (m *Model) IsDecided(p paraco.Problem) bool {
	return m.facts.Has(p, paraco.Tractable) || m.facts.Has(p, paraco.Intractable)
}

// Conflicts returns the problems registered as both tractable and
// intractable.
func (m *Model) Conflicts() []paraco.Problem {
	var out []paraco.Problem
	for _, p := range m.facts.Problems(paraco.Tractable) {
		if m.facts.Has(p, paraco.Intractable) {
			out = append(out, p)
		}
	}
	return out
}

// Equal returns true if both models have the same name, Universe, facts
// and reductions. The order in which reductions were declared is not
// significant.
func (m *Model) Equal(o *Model) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.name == o.name &&
		m.universe.all == o.universe.all &&
		m.facts.equal(&o.facts) &&
		m.reductions.Relation(paraco.TowardTractable).Equal(o.reductions.Relation(paraco.TowardTractable)) &&
		m.reductions.Relation(paraco.TowardIntractable).Equal(o.reductions.Relation(paraco.TowardIntractable))
}
