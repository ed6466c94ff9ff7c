package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mwong94/goutils/internal/bootstrap"
	"github.com/mwong94/goutils/internal/config"
	"github.com/mwong94/goutils/internal/paths"
	"github.com/mwong94/goutils/internal/tools"
)

var (
	setupForce    bool
	setupBrewOnly bool
	setupUVOnly   bool
)

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Install the toolchain: brew, uv, and a Python interpreter",
		RunE:  runSetup,
	}

	cmd.Flags().BoolVarP(&setupForce, "force", "f", false, "Reinstall targets even when already satisfied")
	cmd.Flags().BoolVarP(&setupBrewOnly, "brew-only", "b", false, "Only ensure the package manager")
	cmd.Flags().BoolVarP(&setupUVOnly, "uv-only", "u", false, "Only ensure the runtime manager and interpreter")

	return cmd
}

func runSetup(cmd *cobra.Command, _ []string) error {
	if setupBrewOnly && setupUVOnly {
		return fmt.Errorf("--brew-only and --uv-only are mutually exclusive")
	}

	cfg, err := config.Load(paths.ConfigFile())
	if err != nil {
		return err
	}

	results, runErr := bootstrap.Run(cmd.Context(), tools.ExecRunner{}, bootstrap.Options{
		Force:        setupForce,
		BrewOnly:     setupBrewOnly,
		UVOnly:       setupUVOnly,
		PythonSeries: cfg.Python.Series,
	})

	if outputJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
	} else {
		printSetupResults(cmd, results)
	}

	return runErr
}

func printSetupResults(cmd *cobra.Command, results []bootstrap.Result) {
	bold := lipgloss.NewStyle().Bold(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faint := lipgloss.NewStyle().Faint(true)

	for _, res := range results {
		switch res.Action {
		case bootstrap.ActionFailed:
			cmd.Println(red.Render("✗") + " " + bold.Render(res.Name) + red.Render(" ("+res.Error+")"))
		default:
			headline := green.Render("✓") + " " + bold.Render(res.Name)
			if res.Version != "" {
				headline += " v" + res.Version
			}
			detail := string(res.Action)
			if res.Fallback {
				detail += " via fallback"
			}
			if res.Path != "" {
				detail += " · " + res.Path
			}
			cmd.Println(headline)
			cmd.Println(faint.Render("  " + detail))
		}
	}
}
