package paraco

import (
	"fmt"
	"io"
)

// SearchPosition describes the state of a traversal of the successor
// graph at the moment a Problem is expanded.
type SearchPosition interface {
	Current() Problem
	Direction() Direction
	Pending() int
	Visited() int
}

type Tracer interface {
	Trace(p SearchPosition)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ SearchPosition) {
}

type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p SearchPosition) {
	fmt.Fprintf(t.Writer, "---\nExpanding %s (%s)\n", p.Current(), p.Direction())
	fmt.Fprintf(t.Writer, "Pending: %d\nVisited: %d\n", p.Pending(), p.Visited())
}

type position struct {
	current   Problem
	direction Direction
	pending   int
	visited   int
}

// NewPosition returns a SearchPosition for tracers.
func NewPosition(current Problem, direction Direction, pending, visited int) SearchPosition {
	return position{
		current:   current,
		direction: direction,
		pending:   pending,
		visited:   visited,
	}
}

func (p position) Current() Problem { return p.current }

func (p position) Direction() Direction { return p.direction }

func (p position) Pending() int { return p.pending }

func (p position) Visited() int { return p.visited }
