package tools

import (
	"context"
	"sort"
	"strings"
	"time"
)

// Status captures the resolved state for a managed target.
type Status struct {
	Name      string `json:"name"`
	Path      string `json:"path,omitempty"`
	Version   string `json:"version,omitempty"`
	Satisfied bool   `json:"satisfied"`
	Error     string `json:"error,omitempty"`
}

// Detect returns the status of each known target, sorted by name.
func Detect(ctx context.Context, runner CommandRunner) []Status {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}

	statuses := make([]Status, 0, len(targetDefinitions))
	for _, name := range KnownTargets() {
		def, _ := Definition(name)
		statuses = append(statuses, Probe(ctx, runner, def))
	}

	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses
}

// Probe resolves the status of a single target. A target with an executable
// is satisfied when the binary is on PATH; otherwise its check command must
// exit zero.
func Probe(ctx context.Context, runner CommandRunner, def Target) Status {
	status := Status{Name: def.Name}

	if def.Executable != "" {
		path, err := runner.LookPath(def.Executable)
		if err != nil {
			status.Error = def.Executable + " not found in PATH"
			return status
		}
		status.Path = path
		status.Satisfied = true

		if def.VersionSwitch != "" {
			version, err := readVersion(ctx, runner, def, path)
			if err != nil {
				status.Error = err.Error()
				return status
			}
			status.Version = version
		}
		return status
	}

	stdout, _, code, err := runner.Run(ctx, def.Check.Name, def.Check.Args...)
	if err != nil || code != 0 {
		status.Error = checkFailure(def, err)
		return status
	}
	status.Satisfied = true
	status.Path = firstLine(strings.TrimSpace(string(stdout)))
	return status
}

func checkFailure(def Target, err error) string {
	if err != nil {
		return err.Error()
	}
	return def.Check.Name + " " + strings.Join(def.Check.Args, " ") + " failed"
}
