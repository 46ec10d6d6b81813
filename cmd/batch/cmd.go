package batch

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fptkit/paraco/cmd/session"
	"github.com/fptkit/paraco/pkg/paraco/model"
	"github.com/fptkit/paraco/pkg/paraco/script"
)

func NewRunCommand(s *session.Session) *cobra.Command {
	var create bool
	cmd := &cobra.Command{
		Use:   "run <path>",
		Short: "Applies a batch script of facts and reductions",
		Long: `Applies a batch script of facts and reductions to the knowledge base. For instance:
# this is a comment
name DBU
parameters a b c d
tractable a c
intractable b
reduction a b > c

The name and parameters headers are only read with --init, which creates a new
knowledge base from the script instead of loading the existing one.
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := parse(args[0])
			if err != nil {
				return err
			}

			var m *model.Model
			if create {
				m, err = sc.NewModel()
			} else {
				m, err = s.Load()
				if err == nil {
					err = sc.Apply(m)
				}
			}
			if err != nil {
				return fmt.Errorf("error applying script (%s): %w", args[0], err)
			}

			if err := s.Save(m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d statements from %s\n", len(sc.Statements()), args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&create, "init", false, "create a new knowledge base from the script headers")
	return cmd
}

func parse(path string) (*script.Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening script file (%s): %w", path, err)
	}
	defer f.Close()

	sc, err := script.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("error parsing script file (%s): %w", path, err)
	}
	return sc, nil
}
