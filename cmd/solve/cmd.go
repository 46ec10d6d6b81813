package solve

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fptkit/paraco/cmd/session"
	"github.com/fptkit/paraco/internal/entail"
	"github.com/fptkit/paraco/pkg/paraco"
	"github.com/fptkit/paraco/pkg/paraco/model"
	"github.com/fptkit/paraco/pkg/paraco/solver"
)

type options struct {
	register bool
	certify  bool
}

func NewSolveCommand(s *session.Session) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "solve tractable|intractable <parameter>...",
		Short: "Checks whether a problem's tractability is known or can be deduced",
		Long: `Searches the known facts and reductions for a derivation proving that the
problem made of the given parameters is tractable (or intractable). For instance:
  paraco -f dbu.json solve tractable a b c

A tractability derivation is printed from the known fact to the query, an
intractability derivation from the query to the known fact. Finding no
derivation does not prove the opposite.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := paraco.ParseKind(args[0])
			if err != nil {
				return err
			}
			return run(s, cmd.OutOrStdout(), kind, paraco.NewProblem(args[1:]...), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.register, "register", false, "register the problem as a known fact when a derivation is found")
	cmd.Flags().BoolVar(&opts.certify, "certify", false, "double-check the answer with the SAT-based entailment checker")
	return cmd
}

func run(s *session.Session, out io.Writer, kind paraco.Kind, q paraco.Problem, opts *options) error {
	m, err := s.Load()
	if err != nil {
		return err
	}

	so, err := solver.New(m, solver.WithTracer(s.Tracer()), solver.WithLogger(s.Logger))
	if err != nil {
		return err
	}
	proof, err := so.Solve(q, kind)
	if err != nil {
		return err
	}

	if !proof.Found {
		fmt.Fprintf(out, "No derivation found for %s being %s\n", q, kind)
	} else {
		fmt.Fprintln(out, "Derivation found:")
		for _, step := range proof.Derivation {
			fmt.Fprintf(out, "-> %s-%s\n", step, m.Name())
		}
	}

	if opts.certify {
		if err := certify(out, m, proof); err != nil {
			return err
		}
	}

	if opts.register {
		changed, err := proof.Register(m)
		if err != nil {
			return err
		}
		if changed {
			if err := s.Save(m); err != nil {
				return err
			}
			fmt.Fprintf(out, "Registered %s as a known %s problem\n", q, kind)
		}
	} else if proof.Found && proof.Novel {
		fmt.Fprintf(out, "Use --register to record %s as a known %s problem\n", q, kind)
	}
	return nil
}

func certify(out io.Writer, m *model.Model, proof *solver.Proof) error {
	cert, err := entail.Certify(m, proof.Query, proof.Kind)
	if err != nil {
		return err
	}
	if cert.Entailed != proof.Found {
		return fmt.Errorf("entailment check disagrees with search for %s: entailed=%t, found=%t", proof.Query, cert.Entailed, proof.Found)
	}
	if cert.Entailed {
		fmt.Fprintf(out, "Certified over %d problems, supported by:\n", cert.Problems)
		session.List(out, cert.Support)
	} else {
		fmt.Fprintf(out, "Certified: not entailed by the known facts (%d problems)\n", cert.Problems)
	}
	return nil
}
