// Package jupyter installs JupyterLab and its add-ons into an optional
// isolated environment and writes the fixed configuration bundle.
package jupyter

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mwong94/goutils/internal/config"
	"github.com/mwong94/goutils/internal/logging"
	"github.com/mwong94/goutils/internal/paths"
	"github.com/mwong94/goutils/internal/tools"
)

// ErrNoInterpreter is returned when no tool capable of creating or
// populating an environment is available at all.
var ErrNoInterpreter = errors.New("no usable python interpreter or installer")

// Options configures a configurator run.
type Options struct {
	VenvName       string
	ExtensionsOnly bool
	ConfigOnly     bool

	// EnvRoot is the directory bare venv names resolve under; empty means
	// the product default (~/.venvs).
	EnvRoot string
	// ConfigDir is the Jupyter config directory; empty means ~/.jupyter.
	ConfigDir string
}

// Summary reports what a run did.
type Summary struct {
	Env           *Env     `json:"env,omitempty"`
	EnvCreated    bool     `json:"env_created,omitempty"`
	AppInstalled  bool     `json:"app_installed,omitempty"`
	Installed     []string `json:"installed,omitempty"`
	Failed        []string `json:"failed,omitempty"`
	Enabled       []string `json:"enabled,omitempty"`
	ConfigWritten []string `json:"config_written,omitempty"`
}

// installContext carries the resolved environment through the pipeline
// instead of relying on ambient shell state.
type installContext struct {
	env *Env
	uv  string // path of uv, empty when unavailable
}

// Run executes the configurator pipeline. Individual add-on failures are
// recorded in the summary and do not abort the run; a missing required tool
// does.
func Run(ctx context.Context, runner tools.CommandRunner, cfg config.Config, opts Options) (Summary, error) {
	logger := logging.Component("jupyter")
	var summary Summary

	ic := installContext{}
	if path, err := runner.LookPath("uv"); err == nil {
		ic.uv = path
	}

	if opts.VenvName != "" && !opts.ConfigOnly {
		env, created, err := ensureEnv(ctx, runner, opts)
		if err != nil {
			return summary, err
		}
		ic.env = &env
		summary.Env = &env
		summary.EnvCreated = created
		logger.Info().Str("env", env.Path()).Bool("created", created).Msg("environment resolved")
	}

	installApp := !opts.ExtensionsOnly && !opts.ConfigOnly
	installExtensions := !opts.ConfigOnly
	writeConfig := !opts.ExtensionsOnly

	if installApp {
		if err := checkInstaller(runner, ic); err != nil {
			return summary, err
		}
		if err := runPip(ctx, runner, ic, "jupyterlab"); err != nil {
			return summary, fmt.Errorf("install jupyterlab: %w", err)
		}
		summary.AppInstalled = true
		logger.Info().Msg("jupyterlab installed")
	}

	if installExtensions {
		if err := checkInstaller(runner, ic); err != nil {
			return summary, err
		}
		for _, name := range cfg.ExtensionList() {
			if err := runPip(ctx, runner, ic, name); err != nil {
				logger.Warn().Str("extension", name).Err(err).Msg("extension install failed")
				summary.Failed = append(summary.Failed, name)
				continue
			}
			summary.Installed = append(summary.Installed, name)
		}
		summary.Enabled = enableServerExtensions(ctx, runner, ic, cfg.ServerExtensionList(), logger)
	}

	if writeConfig {
		dir := opts.ConfigDir
		if dir == "" {
			var err error
			dir, err = paths.JupyterDir()
			if err != nil {
				return summary, err
			}
		}
		written, err := WriteBundle(dir)
		if err != nil {
			return summary, err
		}
		summary.ConfigWritten = written
		logger.Info().Int("files", len(written)).Str("dir", dir).Msg("configuration written")
	}

	return summary, nil
}

// ensureEnv resolves the venv target, reusing an existing directory and
// creating a missing one with uv, falling back to python3 -m venv.
func ensureEnv(ctx context.Context, runner tools.CommandRunner, opts Options) (Env, bool, error) {
	root := opts.EnvRoot
	if root == "" {
		var err error
		root, err = paths.DefaultEnvRoot()
		if err != nil {
			return Env{}, false, err
		}
	}

	env := Resolve(opts.VenvName, root)

	exists, err := paths.DirExists(env.Path())
	if err != nil {
		return Env{}, false, fmt.Errorf("stat env dir: %w", err)
	}
	if exists {
		return env, false, nil
	}
	if opts.ExtensionsOnly {
		return Env{}, false, fmt.Errorf("environment does not exist: %s", env.Path())
	}

	create := tools.Command{Name: "python3", Args: []string{"-m", "venv", env.Path()}}
	if uvPath, err := runner.LookPath("uv"); err == nil {
		create = tools.Command{Name: uvPath, Args: []string{"venv", env.Path()}}
	} else if _, err := runner.LookPath("python3"); err != nil {
		return Env{}, false, ErrNoInterpreter
	}

	if _, stderr, code, err := runner.Run(ctx, create.Name, create.Args...); err != nil || code != 0 {
		return Env{}, false, fmt.Errorf("create env %s: %s", env.Path(), commandFailure(stderr, code, err))
	}
	return env, true, nil
}

// checkInstaller verifies that some pip is reachable before the install
// steps start. Inside a venv the env's own pip serves; outside one, pip3
// must be on PATH.
func checkInstaller(runner tools.CommandRunner, ic installContext) error {
	if ic.env != nil {
		return nil
	}
	if _, err := runner.LookPath("pip3"); err != nil {
		return ErrNoInterpreter
	}
	return nil
}

func runPip(ctx context.Context, runner tools.CommandRunner, ic installContext, pkg string) error {
	cmd := pipCommand(ic, pkg)
	_, stderr, code, err := runner.Run(ctx, cmd.Name, cmd.Args...)
	if err != nil || code != 0 {
		return errors.New(commandFailure(stderr, code, err))
	}
	return nil
}

func pipCommand(ic installContext, pkg string) tools.Command {
	switch {
	case ic.env != nil && ic.uv != "":
		return tools.Command{
			Name: ic.uv,
			Args: []string{"pip", "install", "--upgrade", "--python", ic.env.Python(), pkg},
		}
	case ic.env != nil:
		return tools.Command{Name: ic.env.Pip(), Args: []string{"install", "--upgrade", pkg}}
	default:
		return tools.Command{Name: "pip3", Args: []string{"install", "--user", "--upgrade", pkg}}
	}
}

// enableServerExtensions flips on the server-side subset, best effort. The
// venv's jupyter launcher is used when an env is active.
func enableServerExtensions(ctx context.Context, runner tools.CommandRunner, ic installContext, names []string, logger zerolog.Logger) []string {
	launcher := "jupyter"
	if ic.env != nil {
		launcher = ic.env.Jupyter()
	} else if _, err := runner.LookPath("jupyter"); err != nil {
		logger.Warn().Msg("jupyter launcher not found; skipping server extensions")
		return nil
	}

	var enabled []string
	for _, name := range names {
		_, stderr, code, err := runner.Run(ctx, launcher, "server", "extension", "enable", name)
		if err != nil || code != 0 {
			logger.Warn().
				Str("extension", name).
				Str("error", commandFailure(stderr, code, err)).
				Msg("server extension enable failed")
			continue
		}
		enabled = append(enabled, name)
	}
	return enabled
}

func commandFailure(stderr []byte, code int, err error) string {
	if err != nil && code == 0 {
		return err.Error()
	}
	line := firstLine(string(stderr))
	if line == "" {
		return fmt.Sprintf("exit status %d", code)
	}
	return fmt.Sprintf("exit status %d: %s", code, line)
}

func firstLine(text string) string {
	for i, r := range text {
		if r == '\n' {
			return text[:i]
		}
	}
	return text
}
