package cli

import (
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/mwong94/goutils/internal/keygen"
	"github.com/mwong94/goutils/internal/paths"
)

var (
	keygenDir  string
	keygenName string
	keygenCopy bool
)

func newKeygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an RSA key pair in PKCS#8 format",
		RunE:  runKeygen,
	}

	cmd.Flags().StringVarP(&keygenDir, "directory", "d", "", "Directory to save the key files (default ~/.ssh)")
	cmd.Flags().StringVarP(&keygenName, "name", "n", "key", "Base name for the key files")
	cmd.Flags().BoolVarP(&keygenCopy, "copy", "c", false, "Copy the public key to the clipboard with armor and newlines removed")

	return cmd
}

func runKeygen(cmd *cobra.Command, _ []string) error {
	dir := keygenDir
	if dir == "" {
		var err error
		dir, err = paths.SSHDir()
		if err != nil {
			return err
		}
	}

	pair, err := keygen.Generate(dir, keygenName)
	if err != nil {
		return err
	}

	cmd.Printf("Private key saved to: %s\n", pair.PrivatePath)
	cmd.Printf("Public key saved to: %s\n", pair.PublicPath)

	if keygenCopy {
		pubPEM, err := os.ReadFile(pair.PublicPath)
		if err != nil {
			return err
		}
		if err := clipboard.WriteAll(keygen.StripPEM(string(pubPEM))); err != nil {
			return err
		}
		cmd.Println("Public key copied to clipboard with header/footer and newlines removed")
	}
	return nil
}
