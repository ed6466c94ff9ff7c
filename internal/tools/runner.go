package tools

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// CommandRunner abstracts external command execution so callers can be
// exercised without touching the host system.
type CommandRunner interface {
	// Run executes name with args and returns combined stdout, stderr and
	// the process exit code.
	Run(ctx context.Context, name string, args ...string) ([]byte, []byte, int, error)
	// LookPath reports the absolute path of an executable, or an error when
	// it is not present.
	LookPath(name string) (string, error)
}

// ExecRunner executes commands on the local host.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, int, error) {
	log.Debug().Str("command", name).Strs("args", args).Msg("executing command")

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), stderr.Bytes(), 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.Bytes(), stderr.Bytes(), exitErr.ExitCode(), err
	}
	return stdout.Bytes(), stderr.Bytes(), 127, err
}

func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
