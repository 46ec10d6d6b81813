package store

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fptkit/paraco/pkg/paraco"
	"github.com/fptkit/paraco/pkg/paraco/model"
)

// Document is the persisted form of a Model. Every set of parameters is
// written as its sorted, space separated parameter names, so equal
// models always serialize identically.
type Document struct {
	Name           string              `json:"name" yaml:"name"`
	Parameters     string              `json:"parameters" yaml:"parameters"`
	Reductions     map[string][]string `json:"reductions" yaml:"reductions"`
	Antireductions map[string][]string `json:"antireductions" yaml:"antireductions"`
	Tractable      map[string]bool     `json:"tractable" yaml:"tractable"`
	Intractable    map[string]bool     `json:"intractable" yaml:"intractable"`
	Version        string              `json:"version,omitempty" yaml:"version,omitempty"`
}

// requiredFields are the top level keys every document must carry.
var requiredFields = []string{"name", "parameters", "reductions", "antireductions", "tractable", "intractable"}

// MalformedDocument is returned when a document cannot be turned into a
// Model.
type MalformedDocument struct {
	Reason string
	Err    error
}

func (e *MalformedDocument) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed document: %s", e.Reason)
	}
	return fmt.Sprintf("malformed document: %s: %v", e.Reason, e.Err)
}

func (e *MalformedDocument) Unwrap() error {
	return e.Err
}

func malformed(err error, format string, args ...interface{}) error {
	return &MalformedDocument{Reason: fmt.Sprintf(format, args...), Err: err}
}

// NewDocument returns the persisted form of m.
func NewDocument(m *model.Model) *Document {
	doc := &Document{
		Name:           m.Name(),
		Parameters:     string(m.Universe().Problem()),
		Reductions:     serializeRelation(m.Reductions().Relation(paraco.TowardTractable)),
		Antireductions: serializeRelation(m.Reductions().Relation(paraco.TowardIntractable)),
		Tractable:      serializeFacts(m.Facts().Problems(paraco.Tractable)),
		Intractable:    serializeFacts(m.Facts().Problems(paraco.Intractable)),
		Version:        Version.String(),
	}
	return doc
}

func serializeRelation(r model.Relation) map[string][]string {
	out := make(map[string][]string, len(r))
	for from, to := range r {
		values := make([]string, len(to))
		for i, p := range to {
			values[i] = string(p)
		}
		out[string(from)] = values
	}
	return out
}

func serializeFacts(problems []paraco.Problem) map[string]bool {
	out := make(map[string]bool, len(problems))
	for _, p := range problems {
		out[string(p)] = true
	}
	return out
}

// Model builds the Model described by the document. Reductions are
// replayed in sorted pattern order; the antireductions of the document
// must be their exact inverse.
func (d *Document) Model() (*model.Model, error) {
	if err := checkVersion(d.Version); err != nil {
		return nil, err
	}

	m := model.New(d.Name, strings.Fields(d.Parameters)...)

	for _, kind := range paraco.Kinds {
		facts := d.Tractable
		if kind == paraco.Intractable {
			facts = d.Intractable
		}
		for _, key := range sortedKeys(facts) {
			if err := m.RegisterFact(paraco.ParseProblem(key), kind); err != nil {
				return nil, malformed(err, "%s problem %q", kind, key)
			}
		}
	}

	patterns := make([]string, 0, len(d.Reductions))
	for key := range d.Reductions {
		patterns = append(patterns, key)
	}
	sort.Strings(patterns)
	for _, key := range patterns {
		for _, value := range d.Reductions[key] {
			if err := m.AddReduction(paraco.ParseProblem(key), paraco.ParseProblem(value)); err != nil {
				return nil, malformed(err, "reduction %q > %q", key, value)
			}
		}
	}

	anti := model.Relation{}
	for key, values := range d.Antireductions {
		from := paraco.ParseProblem(key)
		for _, value := range values {
			anti[from] = append(anti[from], paraco.ParseProblem(value))
		}
	}
	if !anti.Equal(m.Reductions().Relation(paraco.TowardIntractable)) {
		return nil, malformed(nil, "antireductions are not the inverse of reductions")
	}

	return m, nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
