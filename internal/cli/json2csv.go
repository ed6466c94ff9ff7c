package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwong94/goutils/internal/jsoncsv"
)

var jsonCSVKey string

func newJSONToCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "json2csv <input.json> [output.csv]",
		Short: "Convert a JSON array into a single-column CSV",
		Long: `Convert a JSON array of objects into a CSV with a single column named
_JSON, one JSON-encoded object per row. With --key, a dot-delimited path
selects a nested array ("data", "payload.items"). Without an output file the
CSV goes to stdout.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runJSONToCSV,
	}

	cmd.Flags().StringVarP(&jsonCSVKey, "key", "k", "", "Dot-separated path to the array inside the document")

	return cmd
}

func runJSONToCSV(cmd *cobra.Command, args []string) error {
	input := args[0]

	if len(args) == 1 {
		_, err := jsoncsv.Convert(input, jsonCSVKey, cmd.OutOrStdout())
		return err
	}

	output := args[1]
	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer file.Close()

	rows, err := jsoncsv.Convert(input, jsonCSVKey, file)
	if err != nil {
		return err
	}
	cmd.Printf("Wrote %d rows to %s\n", rows, output)
	return nil
}
