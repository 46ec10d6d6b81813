package closure

import (
	"github.com/sirupsen/logrus"

	"github.com/fptkit/paraco/internal/logging"
	"github.com/fptkit/paraco/internal/successor"
	"github.com/fptkit/paraco/pkg/paraco"
	"github.com/fptkit/paraco/pkg/paraco/model"
)

// Result lists the problems each saturation run added to the fact base,
// per kind, in the order they were discovered.
type Result struct {
	Tractable   []paraco.Problem
	Intractable []paraco.Problem
}

func (r *Result) Found(kind paraco.Kind) []paraco.Problem {
	if kind == paraco.Intractable {
		return r.Intractable
	}
	return r.Tractable
}

func (r *Result) Count(kind paraco.Kind) int {
	return len(r.Found(kind))
}

// Option allows the saturation config to be mutated
type Option func(config *config)

type config struct {
	tracer paraco.Tracer
	logger *logrus.Entry
}

func (c *config) apply(options []Option) {
	for _, opt := range options {
		opt(c)
	}
}

func defaultConfig() *config {
	return &config{
		tracer: paraco.DefaultTracer{},
		logger: logging.Discard(),
	}
}

func WithTracer(t paraco.Tracer) Option {
	return func(c *config) {
		c.tracer = t
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Saturate adds to the fact base of m every problem that follows from
// its current facts. Each kind is closed independently: starting from
// the known facts of the kind, successors in the kind's propagation
// direction are added until no new problem is reached. Running Saturate
// on a saturated model adds nothing.
func Saturate(m *model.Model, options ...Option) *Result {
	cfg := defaultConfig()
	cfg.apply(options)

	gen := successor.New(m)
	result := &Result{}
	for _, kind := range paraco.Kinds {
		found := percolate(m, gen, kind, cfg)
		if kind == paraco.Intractable {
			result.Intractable = found
		} else {
			result.Tractable = found
		}
		cfg.logger.WithFields(logrus.Fields{
			"kind":  kind.String(),
			"added": len(found),
		}).Info("saturated")
	}
	return result
}

func percolate(m *model.Model, gen *successor.Generator, kind paraco.Kind, cfg *config) []paraco.Problem {
	var found []paraco.Problem
	facts := m.Facts()
	dir := kind.PropagationDirection()
	stack := facts.Problems(kind)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cfg.tracer.Trace(paraco.NewPosition(current, dir, len(stack), facts.Len(kind)))
		for _, succ := range gen.Successors(current, dir) {
			if !facts.Add(succ, kind) {
				continue
			}
			stack = append(stack, succ)
			found = append(found, succ)
			cfg.logger.WithFields(logrus.Fields{
				"kind":    kind.String(),
				"problem": succ.String(),
				"from":    current.String(),
			}).Debug("new fact")
		}
	}
	return found
}
