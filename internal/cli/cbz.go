package cli

import (
	"github.com/spf13/cobra"

	"github.com/mwong94/goutils/internal/cbz"
)

func newCbzCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cbz <directory>",
		Short: "Archive a directory into a .cbz file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := cbz.Archive(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("Created %s\n", target)
			return nil
		},
	}
}
