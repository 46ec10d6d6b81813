package paraco

import (
	"fmt"
	"sort"
	"strings"
)

// InvalidParameters is returned when a Problem names parameters that
// are not part of the Universe. It lists the offending names in
// sorted order.
type InvalidParameters []string

func (e InvalidParameters) Error() string {
	switch len(e) {
	case 0:
		return "invalid parameters"
	case 1:
		return fmt.Sprintf("unknown parameter %q", e[0])
	}
	quoted := make([]string, len(e))
	for i, name := range e {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("unknown parameters %s", strings.Join(quoted, ", "))
}

// Problem values are the basic unit of tractability reasoning: a set of
// parameter names held in canonical form (sorted, de-duplicated, joined
// by a single space). Two Problems are equal iff their parameter sets
// are equal, so a Problem can be compared with == and used as a map key.
type Problem string

// EmptyProblem is the Problem with no parameters.
const EmptyProblem Problem = ""

// NewProblem returns the canonical Problem for the given parameter
// names. Empty names are dropped.
func NewProblem(params ...string) Problem {
	seen := make(map[string]struct{}, len(params))
	names := make([]string, 0, len(params))
	for _, p := range params {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		names = append(names, p)
	}
	sort.Strings(names)
	return Problem(strings.Join(names, " "))
}

// ParseProblem returns the Problem named by a whitespace separated list
// of parameters.
func ParseProblem(s string) Problem {
	return NewProblem(strings.Fields(s)...)
}

// Params returns the parameters of p in sorted order.
func (p Problem) Params() []string {
	return strings.Fields(string(p))
}

func (p Problem) Len() int {
	if p == EmptyProblem {
		return 0
	}
	return strings.Count(string(p), " ") + 1
}

func (p Problem) IsEmpty() bool {
	return p == EmptyProblem
}

func (p Problem) Contains(param string) bool {
	params := p.Params()
	i := sort.SearchStrings(params, param)
	return i < len(params) && params[i] == param
}

// IsSubsetOf returns true if every parameter of p is also a parameter
// of q.
func (p Problem) IsSubsetOf(q Problem) bool {
	ps, qs := p.Params(), q.Params()
	if len(ps) > len(qs) {
		return false
	}
	j := 0
	for _, name := range ps {
		for j < len(qs) && qs[j] < name {
			j++
		}
		if j == len(qs) || qs[j] != name {
			return false
		}
		j++
	}
	return true
}

func (p Problem) Union(q Problem) Problem {
	ps, qs := p.Params(), q.Params()
	out := make([]string, 0, len(ps)+len(qs))
	i, j := 0, 0
	for i < len(ps) && j < len(qs) {
		switch {
		case ps[i] < qs[j]:
			out = append(out, ps[i])
			i++
		case ps[i] > qs[j]:
			out = append(out, qs[j])
			j++
		default:
			out = append(out, ps[i])
			i++
			j++
		}
	}
	out = append(out, ps[i:]...)
	out = append(out, qs[j:]...)
	return Problem(strings.Join(out, " "))
}

// Difference returns the parameters of p that are not in q.
func (p Problem) Difference(q Problem) Problem {
	ps, qs := p.Params(), q.Params()
	out := make([]string, 0, len(ps))
	j := 0
	for _, name := range ps {
		for j < len(qs) && qs[j] < name {
			j++
		}
		if j < len(qs) && qs[j] == name {
			continue
		}
		out = append(out, name)
	}
	return Problem(strings.Join(out, " "))
}

// String implements fmt.Stringer and renders p as "{a, b, c}".
func (p Problem) String() string {
	return "{" + strings.Join(p.Params(), ", ") + "}"
}

// SortProblems sorts problems by size, then lexicographically.
func SortProblems(problems []Problem) {
	sort.SliceStable(problems, func(i, j int) bool {
		if li, lj := problems[i].Len(), problems[j].Len(); li != lj {
			return li < lj
		}
		return problems[i] < problems[j]
	})
}

// Direction selects which one-step successors are generated for a
// Problem.
type Direction int

const (
	// TowardTractable generates easier problems: natural and user
	// reductions.
	TowardTractable Direction = iota
	// TowardIntractable generates harder problems: natural and user
	// antireductions.
	TowardIntractable
)

func (d Direction) Reverse() Direction {
	if d == TowardTractable {
		return TowardIntractable
	}
	return TowardTractable
}

func (d Direction) String() string {
	switch d {
	case TowardTractable:
		return "toward-tractable"
	case TowardIntractable:
		return "toward-intractable"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Kind is the tractability class a fact asserts.
type Kind int

const (
	Tractable Kind = iota
	Intractable
)

// Kinds lists every Kind in the order reports are produced.
var Kinds = []Kind{Tractable, Intractable}

func (k Kind) String() string {
	switch k {
	case Tractable:
		return "tractable"
	case Intractable:
		return "intractable"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the Kind named by s ("tractable" or "intractable").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tractable", "t":
		return Tractable, nil
	case "intractable", "i":
		return Intractable, nil
	}
	return 0, fmt.Errorf("unknown tractability %q: expected tractable or intractable", s)
}

// SearchDirection is the direction proof search explores when trying
// to prove a problem of kind k: a problem is tractable if one of its
// reductions is, and intractable if one of its antireductions is.
func (k Kind) SearchDirection() Direction {
	if k == Intractable {
		return TowardIntractable
	}
	return TowardTractable
}

// PropagationDirection is the direction along which a known fact of
// kind k spreads to other problems. It is the inverse of
// SearchDirection.
func (k Kind) PropagationDirection() Direction {
	return k.SearchDirection().Reverse()
}
