package model

import (
	"github.com/fptkit/paraco/pkg/paraco"
)

// Universe is the closed set of parameter names a Model accepts. It is
// fixed when the Model is created.
type Universe struct {
	all   paraco.Problem
	index map[string]struct{}
}

func NewUniverse(params ...string) Universe {
	all := paraco.NewProblem(params...)
	index := make(map[string]struct{}, all.Len())
	for _, p := range all.Params() {
		index[p] = struct{}{}
	}
	return Universe{
		all:   all,
		index: index,
	}
}

func (u Universe) Contains(param string) bool {
	_, ok := u.index[param]
	return ok
}

// Problem returns the Problem made of every parameter in the Universe.
func (u Universe) Problem() paraco.Problem {
	return u.all
}

func (u Universe) Params() []string {
	return u.all.Params()
}

func (u Universe) Len() int {
	return len(u.index)
}

// Complement returns the parameters of the Universe that are not in p.
func (u Universe) Complement(p paraco.Problem) paraco.Problem {
	return u.all.Difference(p)
}

// Unknown returns the parameters of p that are not in the Universe.
func (u Universe) Unknown(p paraco.Problem) []string {
	var unknown []string
	for _, param := range p.Params() {
		if !u.Contains(param) {
			unknown = append(unknown, param)
		}
	}
	return unknown
}
