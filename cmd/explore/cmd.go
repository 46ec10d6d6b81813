package explore

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fptkit/paraco/cmd/session"
	"github.com/fptkit/paraco/pkg/paraco"
	"github.com/fptkit/paraco/pkg/paraco/closure"
	"github.com/fptkit/paraco/pkg/paraco/impact"
	"github.com/fptkit/paraco/pkg/paraco/model"
)

const saturateUsage = "saturate the known facts in memory first; the knowledge base is not modified"

// load reads the knowledge base and, if saturate is set, closes its facts
// without saving the result.
func load(s *session.Session, saturate bool) (*model.Model, error) {
	m, err := s.Load()
	if err != nil {
		return nil, err
	}
	if saturate {
		result := closure.Saturate(m, closure.WithTracer(s.Tracer()), closure.WithLogger(s.Logger))
		s.Logger.WithField("added", result.Count(paraco.Tractable)+result.Count(paraco.Intractable)).Debug("saturated before analysis")
	}
	return m, nil
}

func NewSaturateCommand(s *session.Session) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "saturate",
		Short: "Deduces every problem whose tractability follows from the known facts",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := s.Load()
			if err != nil {
				return err
			}
			result := closure.Saturate(m, closure.WithTracer(s.Tracer()), closure.WithLogger(s.Logger))
			out := cmd.OutOrStdout()
			for _, kind := range paraco.Kinds {
				if found := result.Found(kind); len(found) > 0 {
					fmt.Fprintf(out, "Newly found %s problems:\n", kind)
					session.List(out, found)
				} else {
					fmt.Fprintf(out, "No new %s problem found\n", kind)
				}
			}
			fmt.Fprintf(out, "Added %d tractable and %d intractable problems to database\n",
				result.Count(paraco.Tractable), result.Count(paraco.Intractable))
			if dryRun || result.Count(paraco.Tractable)+result.Count(paraco.Intractable) == 0 {
				return nil
			}
			return s.Save(m)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be added without saving")
	return cmd
}

func NewOpenCommand(s *session.Session) *cobra.Command {
	var (
		withImpact bool
		saturate   bool
	)
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Lists the problems whose tractability is still unknown",
		Long: `Lists every nonempty set of parameters that is neither known tractable nor known
intractable. Without --saturate, problems that already follow from the known facts
are listed as open; run saturate first or pass --saturate. With --impact, each open
problem is numbered and followed by the number of problems that would be decided if
it were tractable/intractable. The number can be given to the impact command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := load(s, saturate)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !withImpact {
				open := impact.OpenProblems(m)
				if len(open) == 0 {
					fmt.Fprintln(out, "No open problem found, congratulations!")
					return nil
				}
				fmt.Fprintln(out, "Currently open problems:")
				session.List(out, open)
				return nil
			}
			ranked, err := impact.Rank(m)
			if err != nil {
				return err
			}
			if len(ranked) == 0 {
				fmt.Fprintln(out, "No open problem found, congratulations!")
				return nil
			}
			fmt.Fprintln(out, "Currently open problems (tractable/intractable impact):")
			for i, r := range ranked {
				fmt.Fprintf(out, "%d - %s (%d/%d)\n", i+1, r.Problem, len(r.Tractable), len(r.Intractable))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withImpact, "impact", false, "rank open problems by the number of problems solving them would decide")
	cmd.Flags().BoolVar(&saturate, "saturate", false, saturateUsage)
	return cmd
}

func NewImpactCommand(s *session.Session) *cobra.Command {
	var saturate bool
	cmd := &cobra.Command{
		Use:   "impact <parameter>... | <id>",
		Short: "Shows which open problems would be decided by deciding another problem",
		Long: `Shows which open problems would become tractable (intractable) if the problem made
of the given parameters were tractable (intractable). A single number that is not a
parameter name selects the problem with that number in the output of open --impact;
pass the same --saturate flag to both commands so the numbering matches.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := load(s, saturate)
			if err != nil {
				return err
			}
			i, err := resolve(m, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, kind := range paraco.Kinds {
				fmt.Fprintf(out, "Problems that are %s assuming %s is %s:\n", kind, i.Problem, kind)
				session.List(out, i.Of(kind))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&saturate, "saturate", false, saturateUsage)
	return cmd
}

// resolve computes the impact named by args: either a list of parameters
// or the 1-based position of an open problem in the ranking printed by
// open --impact.
func resolve(m *model.Model, args []string) (*impact.Impact, error) {
	if len(args) == 1 && !m.Universe().Contains(args[0]) {
		if id, err := strconv.Atoi(args[0]); err == nil {
			ranked, err := impact.Rank(m)
			if err != nil {
				return nil, err
			}
			if id < 1 || id > len(ranked) {
				return nil, fmt.Errorf("no open problem with id %d: expected 1 to %d", id, len(ranked))
			}
			return &ranked[id-1], nil
		}
	}
	return impact.Of(m, paraco.NewProblem(args...))
}
