package cli

import (
	"github.com/spf13/cobra"

	"github.com/mwong94/goutils/internal/gpx"
)

var gpxOutput string

func newGpxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gpx",
		Short: "GPX file utilities",
	}
	cmd.AddCommand(newGpxConcatCmd())
	return cmd
}

func newGpxConcatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concat <file-or-dir>...",
		Short: "Combine multiple GPX files into one",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runGpxConcat,
	}

	cmd.Flags().StringVarP(&gpxOutput, "output", "o", "combined.gpx", "Path to the output GPX file")

	return cmd
}

func runGpxConcat(cmd *cobra.Command, args []string) error {
	files, warnings, err := gpx.Collect(args)
	for _, warning := range warnings {
		cmd.PrintErrf("warning: %s\n", warning)
	}
	if err != nil {
		return err
	}
	cmd.Printf("Found %d GPX files to combine.\n", len(files))

	doc, parseWarnings, err := gpx.Concat(files)
	for _, warning := range parseWarnings {
		cmd.PrintErrf("warning: %s\n", warning)
	}
	if err != nil {
		return err
	}

	if err := gpx.WriteFile(doc, gpxOutput); err != nil {
		return err
	}
	cmd.Printf("Combined %d GPX files into %s\n", len(files), gpxOutput)
	return nil
}
