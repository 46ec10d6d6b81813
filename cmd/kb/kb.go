package kb

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fptkit/paraco/cmd/session"
	"github.com/fptkit/paraco/pkg/paraco"
	"github.com/fptkit/paraco/pkg/paraco/model"
	"github.com/fptkit/paraco/pkg/paraco/store"
)

func NewInitCommand(s *session.Session) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init <name> <parameter>...",
		Short: "Creates a new knowledge base",
		Long: `Creates a new knowledge base for the problem <name> over the given parameters.
For instance:
  paraco -f dbu.json init DBU a b c d e`,
		Args: cobra.MinimumNArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if force || s.Path == "" {
				return nil
			}
			if _, err := os.Stat(s.Path); err == nil {
				return fmt.Errorf("file (%s) already exists: use --force to overwrite it", s.Path)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			m := model.New(args[0], args[1:]...)
			if err := s.Save(m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s with %d parameters\n", m.Name(), m.Universe().Len())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing knowledge base")
	return cmd
}

func NewAddCommand(s *session.Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Adds a known fact or reduction",
	}
	cmd.AddCommand(newAddFactCommand(s, paraco.Tractable))
	cmd.AddCommand(newAddFactCommand(s, paraco.Intractable))
	cmd.AddCommand(newAddReductionCommand(s))
	return cmd
}

func newAddFactCommand(s *session.Session, kind paraco.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   kind.String() + " <parameter>...",
		Short: fmt.Sprintf("Registers a problem as known %s", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := s.Load()
			if err != nil {
				return err
			}
			p := paraco.NewProblem(args...)
			if err := m.RegisterFact(p, kind); err != nil {
				return err
			}
			if err := s.Save(m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s as a known %s problem\n", p, kind)
			return nil
		},
	}
}

func newAddReductionCommand(s *session.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "reduction <pattern>... > <replacement>...",
		Short: "Declares an FPT-reduction",
		Long: `Declares that replacing the pattern parameters with the replacement parameters
preserves tractability. Quote the '>' so the shell does not redirect output:
  paraco -f dbu.json add reduction a b c '>' a b`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, replacement, err := session.ParseReduction(args)
			if err != nil {
				return err
			}
			m, err := s.Load()
			if err != nil {
				return err
			}
			if err := m.AddReduction(pattern, replacement); err != nil {
				return err
			}
			if err := s.Save(m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added reduction %s > %s\n", pattern, replacement)
			return nil
		},
	}
}

func NewShowCommand(s *session.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Prints the content of the knowledge base",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := s.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Problem: %s\n", m.Name())
			fmt.Fprintf(out, "Parameters: %s\n", m.Universe().Problem())
			for _, kind := range paraco.Kinds {
				fmt.Fprintf(out, "Known %s problems:\n", kind)
				session.List(out, m.Facts().Problems(kind))
			}
			fmt.Fprintf(out, "Reductions:\n")
			m.Reductions().Each(paraco.TowardTractable, func(pattern paraco.Problem, replacements []paraco.Problem) {
				for _, r := range replacements {
					fmt.Fprintf(out, "- %s > %s\n", pattern, r)
				}
			})
			if conflicts := m.Conflicts(); len(conflicts) > 0 {
				fmt.Fprintf(out, "Warning: problems known as both tractable and intractable:\n")
				session.List(out, conflicts)
			}
			return nil
		},
	}
}

func NewConvertCommand(s *session.Session) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <path>",
		Short: "Writes the knowledge base to another file, converting between JSON and YAML",
		Long: `Writes the knowledge base to <path>. The output format follows the extension of
<path>: .yaml and .yml produce YAML, anything else JSON.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == s.Path {
				return errors.New("convert target must differ from the source file")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := s.Load()
			if err != nil {
				return err
			}
			format := store.FormatAuto.Resolve(args[0])
			if err := store.Save(m, args[0], format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s as %s\n", args[0], format)
			return nil
		},
	}
}
