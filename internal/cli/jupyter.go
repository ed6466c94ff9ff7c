package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwong94/goutils/internal/config"
	"github.com/mwong94/goutils/internal/jupyter"
	"github.com/mwong94/goutils/internal/paths"
	"github.com/mwong94/goutils/internal/tools"
)

var (
	jupyterExtensionsOnly bool
	jupyterConfigOnly     bool
	jupyterVenv           string
)

func newJupyterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jupyter",
		Short: "Install and configure JupyterLab",
		Long: `Install JupyterLab (optionally into an isolated environment), install its
extensions, and write the configuration bundle under ~/.jupyter.`,
		RunE: runJupyter,
	}

	cmd.Flags().BoolVarP(&jupyterExtensionsOnly, "extensions-only", "e", false, "Only install extensions")
	cmd.Flags().BoolVarP(&jupyterConfigOnly, "config-only", "c", false, "Only write configuration files")
	cmd.Flags().StringVarP(&jupyterVenv, "venv", "v", "", "Virtual environment name or path")

	return cmd
}

func runJupyter(cmd *cobra.Command, _ []string) error {
	if jupyterExtensionsOnly && jupyterConfigOnly {
		return fmt.Errorf("--extensions-only and --config-only are mutually exclusive")
	}

	cfg, err := config.Load(paths.ConfigFile())
	if err != nil {
		return err
	}

	summary, err := jupyter.Run(cmd.Context(), tools.ExecRunner{}, cfg, jupyter.Options{
		VenvName:       jupyterVenv,
		ExtensionsOnly: jupyterExtensionsOnly,
		ConfigOnly:     jupyterConfigOnly,
		EnvRoot:        cfg.Envs.Root,
	})
	if err != nil {
		return err
	}

	if outputJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printJupyterSummary(cmd, summary)
	return nil
}

func printJupyterSummary(cmd *cobra.Command, summary jupyter.Summary) {
	if summary.Env != nil {
		verb := "reused"
		if summary.EnvCreated {
			verb = "created"
		}
		cmd.Printf("Environment %s: %s\n", verb, summary.Env.Path())
	}
	if summary.AppInstalled {
		cmd.Println("JupyterLab installed")
	}
	for _, name := range summary.Installed {
		cmd.Printf("  installed %s\n", name)
	}
	for _, name := range summary.Failed {
		cmd.Printf("  warning: %s failed\n", name)
	}
	for _, name := range summary.Enabled {
		cmd.Printf("  enabled server extension %s\n", name)
	}
	for _, rel := range summary.ConfigWritten {
		cmd.Printf("  wrote %s\n", rel)
	}
}
