// Package bootstrap sequences the idempotent toolchain install: a package
// manager (brew), a runtime manager (uv), and a Python interpreter series.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/mwong94/goutils/internal/logging"
	"github.com/mwong94/goutils/internal/tools"
)

// ErrUnsupportedPlatform is returned before any installation is attempted
// when the host platform is not darwin or linux.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// ErrNoPackageManager is returned when, after all install attempts, neither
// brew nor uv is usable.
var ErrNoPackageManager = errors.New("no usable package manager")

// Options configures an installer run.
type Options struct {
	Force    bool
	BrewOnly bool
	UVOnly   bool

	// PythonSeries overrides the interpreter line; empty means the default.
	PythonSeries string
	// Platform overrides runtime.GOOS, for tests.
	Platform string
}

// Action describes the outcome for one target.
type Action string

const (
	ActionSatisfied Action = "satisfied"
	ActionInstalled Action = "installed"
	ActionFailed    Action = "failed"
)

// Result reports the outcome of one installation target.
type Result struct {
	Name     string `json:"name"`
	Action   Action `json:"action"`
	Version  string `json:"version,omitempty"`
	Path     string `json:"path,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Run executes the installer. Per-target failures are reported in the
// results without aborting the run; the returned error is non-nil only for
// the fatal cases (unsupported platform, no package manager at all).
func Run(ctx context.Context, runner tools.CommandRunner, opts Options) ([]Result, error) {
	logger := logging.Component("bootstrap")

	platform := opts.Platform
	if platform == "" {
		platform = runtime.GOOS
	}
	if platform != "darwin" && platform != "linux" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}

	var results []Result
	for _, def := range selectTargets(opts) {
		res := ensureTarget(ctx, runner, def, opts.Force)
		logger.Info().
			Str("target", res.Name).
			Str("action", string(res.Action)).
			Str("version", res.Version).
			Msg("target resolved")
		if res.Action == ActionFailed {
			logger.Warn().Str("target", res.Name).Str("error", res.Error).Msg("target failed")
		}
		results = append(results, res)
	}

	if !packageManagerUsable(ctx, runner, results) {
		return results, ErrNoPackageManager
	}
	return results, nil
}

func selectTargets(opts Options) []tools.Target {
	brew, _ := tools.Definition("brew")
	uv, _ := tools.Definition("uv")
	python := tools.PythonTarget(pythonSeries(opts))

	switch {
	case opts.BrewOnly:
		return []tools.Target{brew}
	case opts.UVOnly:
		return []tools.Target{uv, python}
	default:
		return []tools.Target{brew, uv, python}
	}
}

func pythonSeries(opts Options) string {
	if opts.PythonSeries != "" {
		return opts.PythonSeries
	}
	return tools.DefaultPythonSeries
}

// ensureTarget applies the check/install/fallback chain for one target.
func ensureTarget(ctx context.Context, runner tools.CommandRunner, def tools.Target, force bool) Result {
	status := tools.Probe(ctx, runner, def)
	if status.Satisfied && !force {
		return Result{
			Name:    def.Name,
			Action:  ActionSatisfied,
			Version: status.Version,
			Path:    status.Path,
		}
	}

	usedFallback := false
	if err := runInstall(ctx, runner, def.Install); err != nil {
		if def.Fallback.IsZero() {
			return Result{Name: def.Name, Action: ActionFailed, Error: err.Error()}
		}
		if fbErr := runInstall(ctx, runner, def.Fallback); fbErr != nil {
			return Result{
				Name:   def.Name,
				Action: ActionFailed,
				Error:  fmt.Sprintf("install: %v; fallback: %v", err, fbErr),
			}
		}
		usedFallback = true
	}

	status = tools.Probe(ctx, runner, def)
	if !status.Satisfied {
		msg := status.Error
		if msg == "" {
			msg = "still unavailable after install"
		}
		return Result{Name: def.Name, Action: ActionFailed, Fallback: usedFallback, Error: msg}
	}
	return Result{
		Name:     def.Name,
		Action:   ActionInstalled,
		Version:  status.Version,
		Path:     status.Path,
		Fallback: usedFallback,
	}
}

func runInstall(ctx context.Context, runner tools.CommandRunner, cmd tools.Command) error {
	if cmd.IsZero() {
		return errors.New("no install command")
	}
	_, stderr, code, err := runner.Run(ctx, cmd.Name, cmd.Args...)
	if err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	if code != 0 {
		return fmt.Errorf("%s exited %d: %s", cmd.Name, code, firstStderrLine(stderr))
	}
	return nil
}

// packageManagerUsable reports whether brew or uv works after the run.
// Targets outside the run's scope are probed fresh so a uv-only run with a
// preinstalled brew still passes.
func packageManagerUsable(ctx context.Context, runner tools.CommandRunner, results []Result) bool {
	seen := map[string]Action{}
	for _, res := range results {
		seen[res.Name] = res.Action
	}

	for _, name := range []string{"brew", "uv"} {
		if action, ok := seen[name]; ok {
			if action != ActionFailed {
				return true
			}
			continue
		}
		def, _ := tools.Definition(name)
		if tools.Probe(ctx, runner, def).Satisfied {
			return true
		}
	}
	return false
}

func firstStderrLine(stderr []byte) string {
	text := string(stderr)
	for i, r := range text {
		if r == '\n' {
			return text[:i]
		}
	}
	return text
}
