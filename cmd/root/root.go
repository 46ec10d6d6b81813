package root

import (
	"github.com/spf13/cobra"

	"github.com/fptkit/paraco/cmd/batch"
	"github.com/fptkit/paraco/cmd/explore"
	"github.com/fptkit/paraco/cmd/kb"
	"github.com/fptkit/paraco/cmd/session"
	"github.com/fptkit/paraco/cmd/solve"
)

// Version of the paraco command line.
const Version = "0.1.0"

func NewRootCmd() *cobra.Command {
	s := session.New()
	rootCmd := &cobra.Command{
		Use:   "paraco",
		Short: "Paraco is a tractability knowledge base for parameterized problems",
		Long: `Paraco records which parameterizations of a problem are known to be tractable or
intractable, together with known FPT-reductions, and deduces what follows from them.`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: s.Setup,
	}
	s.BindFlags(rootCmd.PersistentFlags())

	// add sub-commands
	rootCmd.AddCommand(kb.NewInitCommand(s))
	rootCmd.AddCommand(kb.NewAddCommand(s))
	rootCmd.AddCommand(kb.NewShowCommand(s))
	rootCmd.AddCommand(kb.NewConvertCommand(s))
	rootCmd.AddCommand(solve.NewSolveCommand(s))
	rootCmd.AddCommand(explore.NewSaturateCommand(s))
	rootCmd.AddCommand(explore.NewOpenCommand(s))
	rootCmd.AddCommand(explore.NewImpactCommand(s))
	rootCmd.AddCommand(batch.NewRunCommand(s))

	return rootCmd
}
