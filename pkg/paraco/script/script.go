package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fptkit/paraco/pkg/paraco"
	"github.com/fptkit/paraco/pkg/paraco/model"
)

// StatementType is the kind of a script statement.
type StatementType int

const (
	FactStatement StatementType = iota
	ReductionStatement
)

// Statement is one fact or reduction line of a script.
type Statement struct {
	Line        int
	Type        StatementType
	Kind        paraco.Kind
	Problem     paraco.Problem
	Replacement paraco.Problem
}

func (s Statement) String() string {
	if s.Type == ReductionStatement {
		return fmt.Sprintf("reduction %s > %s", s.Problem, s.Replacement)
	}
	return fmt.Sprintf("%s %s", s.Kind, s.Problem)
}

// Script holds the statements of a knowledge-base script. A script may
// start with "name" and "parameters" headers, which are only used to
// create a new Model.
//
//	# comment
//	name DBU
//	parameters a b c d
//	tractable a c
//	intractable b
//	reduction a b > c
type Script struct {
	name       string
	parameters []string
	statements []Statement
}

func (s *Script) Name() string {
	return s.name
}

func (s *Script) Parameters() []string {
	return s.parameters
}

func (s *Script) Statements() []Statement {
	return s.statements
}

var (
	commentLine   = regexp.MustCompile(`^#.*`)
	nameLine      = regexp.MustCompile(`^name\s+(\S.*)$`)
	parameterLine = regexp.MustCompile(`^parameters(\s+\S+)+$`)
	factLine      = regexp.MustCompile(`^(tractable|intractable)((\s+\S+)*)$`)
	reductionLine = regexp.MustCompile(`^reduction\s+([^>]*)>([^>]*)$`)
)

// Parse reads a script from r. Errors carry the offending line number.
func Parse(r io.Reader) (*Script, error) {
	reader := bufio.NewReader(r)
	script := &Script{}

	for lineNumber := 1; ; lineNumber++ {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading script data: %w", err)
		}
		done := errors.Is(err, io.EOF)
		line = strings.TrimSpace(line)

		switch {
		case line == "" || commentLine.MatchString(line):
			// ignore blank lines and comments
		case nameLine.MatchString(line):
			if script.name != "" {
				return nil, fmt.Errorf("line %d: duplicate name statement", lineNumber)
			}
			script.name = nameLine.FindStringSubmatch(line)[1]
		case parameterLine.MatchString(line):
			if script.parameters != nil {
				return nil, fmt.Errorf("line %d: duplicate parameters statement", lineNumber)
			}
			script.parameters = strings.Fields(line)[1:]
		case factLine.MatchString(line):
			match := factLine.FindStringSubmatch(line)
			kind, err := paraco.ParseKind(match[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			script.statements = append(script.statements, Statement{
				Line:    lineNumber,
				Type:    FactStatement,
				Kind:    kind,
				Problem: paraco.ParseProblem(match[2]),
			})
		case reductionLine.MatchString(line):
			match := reductionLine.FindStringSubmatch(line)
			script.statements = append(script.statements, Statement{
				Line:        lineNumber,
				Type:        ReductionStatement,
				Problem:     paraco.ParseProblem(match[1]),
				Replacement: paraco.ParseProblem(match[2]),
			})
		default:
			// error out if the instruction is invalid
			return nil, fmt.Errorf("line %d: invalid statement: %s", lineNumber, line)
		}

		if done {
			break
		}
	}

	return script, nil
}

// NewModel creates an empty Model from the script headers and applies
// the script to it.
func (s *Script) NewModel() (*model.Model, error) {
	if len(s.parameters) == 0 {
		return nil, fmt.Errorf("script declares no parameters")
	}
	m := model.New(s.name, s.parameters...)
	if err := s.Apply(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Apply registers the facts and reductions of the script with m, in
// order. It stops at the first statement m rejects; statements before it
// stay applied.
func (s *Script) Apply(m *model.Model) error {
	for _, st := range s.statements {
		var err error
		switch st.Type {
		case FactStatement:
			err = m.RegisterFact(st.Problem, st.Kind)
		case ReductionStatement:
			err = m.AddReduction(st.Problem, st.Replacement)
		}
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", st.Line, st, err)
		}
	}
	return nil
}
