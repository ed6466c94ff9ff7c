package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwong94/goutils/internal/logging"
)

var (
	outputJSON bool
	verbosity  int
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goutils",
		Short: "Personal toolbox: environment bootstrap and file utilities",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Setup(verbosity)
		},
	}

	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().CountVar(&verbosity, "verbose", "Increase log verbosity (repeatable)")

	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newJupyterCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newGpxCmd())
	cmd.AddCommand(newJSONToCSVCmd())
	cmd.AddCommand(newKeygenCmd())
	cmd.AddCommand(newIconsCmd())
	cmd.AddCommand(newCbzCmd())
	cmd.AddCommand(newURLCheckCmd())

	return cmd
}
