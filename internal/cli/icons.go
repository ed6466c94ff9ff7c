package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwong94/goutils/internal/icons"
)

var (
	iconsOutputDir string
	iconsSizes     string
)

func newIconsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "icons <input.png>",
		Short: "Generate width-scaled PNG icons from a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE:  runIcons,
	}

	cmd.Flags().StringVar(&iconsOutputDir, "output-dir", "", "Directory for output PNGs (default <stem>_icons)")
	cmd.Flags().StringVar(&iconsSizes, "sizes", "", "Comma-separated list of output widths (e.g. 16,32,128)")

	return cmd
}

func runIcons(cmd *cobra.Command, args []string) error {
	input := args[0]

	widths, err := parseSizes(iconsSizes)
	if err != nil {
		return err
	}

	outputDir := iconsOutputDir
	if outputDir == "" {
		outputDir = icons.DefaultOutputDir(input)
	}

	written, err := icons.Generate(input, outputDir, widths)
	if err != nil {
		return err
	}
	for _, path := range written {
		cmd.Printf("Saved %s\n", path)
	}
	return nil
}

func parseSizes(value string) ([]int, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	var widths []int
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		width, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("sizes must be a comma-separated list of integers")
		}
		widths = append(widths, width)
	}
	return widths, nil
}
