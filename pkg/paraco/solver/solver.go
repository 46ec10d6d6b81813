package solver

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fptkit/paraco/internal/logging"
	"github.com/fptkit/paraco/internal/successor"
	"github.com/fptkit/paraco/pkg/paraco"
	"github.com/fptkit/paraco/pkg/paraco/model"
)

// Derivation is the chain of problems connecting a query to the known
// fact that resolves it. A tractability derivation reads from the fact
// to the query, an intractability derivation from the query to the
// fact.
type Derivation []paraco.Problem

func (d Derivation) String() string {
	s := make([]string, len(d))
	for i, p := range d {
		s[i] = p.String()
	}
	return strings.Join(s, " -> ")
}

// Proof is returned by Solve. A Proof that is not Found means that no
// derivation was found, which does not prove the opposite kind.
type Proof struct {
	Query      paraco.Problem
	Kind       paraco.Kind
	Found      bool
	Derivation Derivation
	// Fact is the known fact the derivation ends on.
	Fact paraco.Problem
	// Novel is set when Query was not already a known fact of Kind.
	Novel bool
	// Expanded counts the problems whose successors were generated.
	Expanded int
}

// Register records the query of a found, novel proof as a known fact.
// It reports whether the model changed.
func (p *Proof) Register(m *model.Model) (bool, error) {
	if !p.Found || !p.Novel {
		return false, nil
	}
	if err := m.RegisterFact(p.Query, p.Kind); err != nil {
		return false, err
	}
	return true, nil
}

type Solver struct {
	model      *model.Model
	successors *successor.Generator
	tracer     paraco.Tracer
	logger     *logrus.Entry
}

func New(m *model.Model, options ...Option) (*Solver, error) {
	s := Solver{
		model:      m,
		successors: successor.New(m),
	}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *Solver) error

func WithTracer(t paraco.Tracer) Option {
	return func(s *Solver) error {
		s.tracer = t
		return nil
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(s *Solver) error {
		s.logger = l
		return nil
	}
}

var defaults = []Option{
	func(s *Solver) error {
		if s.tracer == nil {
			s.tracer = paraco.DefaultTracer{}
		}
		return nil
	},
	func(s *Solver) error {
		if s.logger == nil {
			s.logger = logging.Discard()
		}
		return nil
	},
}

// Solve searches for a derivation proving that q is of the given kind.
// The successor graph is explored depth first with an explicit stack;
// every problem is expanded at most once and the first path discovered
// to a known fact is the one reported.
func (s *Solver) Solve(q paraco.Problem, kind paraco.Kind) (*Proof, error) {
	if err := s.model.Validate(q); err != nil {
		return nil, err
	}

	proof := &Proof{
		Query: q,
		Kind:  kind,
		Novel: !s.model.IsKnown(q, kind),
	}
	dir := kind.SearchDirection()
	previous := map[paraco.Problem]paraco.Problem{}
	visited := map[paraco.Problem]struct{}{q: {}}
	stack := []paraco.Problem{q}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.model.IsKnown(current, kind) {
			proof.Found = true
			proof.Fact = current
			proof.Derivation = derivation(previous, q, current, kind)
			s.logger.WithFields(logrus.Fields{
				"query":    q.String(),
				"kind":     kind.String(),
				"fact":     current.String(),
				"expanded": proof.Expanded,
			}).Debug("derivation found")
			return proof, nil
		}

		s.tracer.Trace(paraco.NewPosition(current, dir, len(stack), len(visited)))
		proof.Expanded++
		for _, succ := range s.successors.Successors(current, dir) {
			if _, ok := visited[succ]; ok {
				continue
			}
			visited[succ] = struct{}{}
			previous[succ] = current
			stack = append(stack, succ)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"query":    q.String(),
		"kind":     kind.String(),
		"expanded": proof.Expanded,
	}).Debug("no derivation found")
	return proof, nil
}

// derivation walks the predecessor map back from fact to q.
func derivation(previous map[paraco.Problem]paraco.Problem, q, fact paraco.Problem, kind paraco.Kind) Derivation {
	path := Derivation{fact}
	for current := fact; current != q; {
		current = previous[current]
		path = append(path, current)
	}
	if kind == paraco.Tractable {
		return path
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
