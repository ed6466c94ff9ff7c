package jupyter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwong94/goutils/internal/config"
	"github.com/mwong94/goutils/internal/tools/toolstest"
)

func testConfig(extensions, serverExtensions []string) config.Config {
	cfg := config.Default()
	cfg.Jupyter.Extensions = extensions
	cfg.Jupyter.ServerExtensions = serverExtensions
	return cfg
}

func TestRunReusesExistingEnv(t *testing.T) {
	root := t.TempDir()
	envPath := filepath.Join(root, "research")
	if err := os.MkdirAll(envPath, 0o755); err != nil {
		t.Fatalf("mkdir env: %v", err)
	}

	runner := toolstest.NewFakeRunner()
	cfg := testConfig([]string{"ipywidgets"}, []string{"jupyterlab_git"})

	summary, err := Run(context.Background(), runner, cfg, Options{
		VenvName:  "research",
		EnvRoot:   root,
		ConfigDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Env == nil || summary.Env.Path() != envPath {
		t.Fatalf("env not resolved to %s", envPath)
	}
	if summary.EnvCreated {
		t.Fatal("expected existing env to be reused, not created")
	}
	if runner.RanPrefix("python3 -m venv") || runner.RanPrefix("uv venv") {
		t.Fatalf("creation attempted for existing env: %v", runner.Calls)
	}

	pip := filepath.Join(envPath, "bin", "pip")
	if !runner.Ran(pip + " install --upgrade jupyterlab") {
		t.Fatalf("jupyterlab not installed through env pip: %v", runner.Calls)
	}
	if !runner.Ran(pip + " install --upgrade ipywidgets") {
		t.Fatalf("extension not installed: %v", runner.Calls)
	}

	launcher := filepath.Join(envPath, "bin", "jupyter")
	if !runner.Ran(launcher + " server extension enable jupyterlab_git") {
		t.Fatalf("server extension not enabled: %v", runner.Calls)
	}
}

func TestRunCreatesMissingEnvWithUV(t *testing.T) {
	root := t.TempDir()
	envPath := filepath.Join(root, "research")

	runner := toolstest.NewFakeRunner()
	runner.Executables["uv"] = "/fake/uv"

	summary, err := Run(context.Background(), runner, testConfig(nil, nil), Options{
		VenvName:  "research",
		EnvRoot:   root,
		ConfigDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !summary.EnvCreated {
		t.Fatal("expected env creation")
	}
	if !runner.Ran("/fake/uv venv " + envPath) {
		t.Fatalf("uv venv not used: %v", runner.Calls)
	}

	python := filepath.Join(envPath, "bin", "python")
	if !runner.Ran("/fake/uv pip install --upgrade --python " + python + " jupyterlab") {
		t.Fatalf("jupyterlab not installed through uv pip: %v", runner.Calls)
	}
}

func TestRunFallsBackToPythonVenv(t *testing.T) {
	root := t.TempDir()
	envPath := filepath.Join(root, "research")

	runner := toolstest.NewFakeRunner()
	runner.Executables["python3"] = "/usr/bin/python3"

	summary, err := Run(context.Background(), runner, testConfig(nil, nil), Options{
		VenvName:  "research",
		EnvRoot:   root,
		ConfigDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !summary.EnvCreated {
		t.Fatal("expected env creation")
	}
	if !runner.Ran("python3 -m venv " + envPath) {
		t.Fatalf("python3 -m venv not used: %v", runner.Calls)
	}
}

func TestRunNoInterpreterIsFatal(t *testing.T) {
	runner := toolstest.NewFakeRunner()

	_, err := Run(context.Background(), runner, testConfig(nil, nil), Options{
		VenvName:  "research",
		EnvRoot:   t.TempDir(),
		ConfigDir: t.TempDir(),
	})
	if !errors.Is(err, ErrNoInterpreter) {
		t.Fatalf("err = %v, want ErrNoInterpreter", err)
	}
}

func TestRunConfigOnlySkipsInstalls(t *testing.T) {
	runner := toolstest.NewFakeRunner()
	configDir := t.TempDir()

	// Pre-existing content must be fully replaced, not merged.
	labConfig := filepath.Join(configDir, "jupyter_lab_config.py")
	if err := os.WriteFile(labConfig, []byte("c.ServerApp.port = 9999\n"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	summary, err := Run(context.Background(), runner, testConfig(nil, nil), Options{
		ConfigOnly: true,
		VenvName:   "research",
		EnvRoot:    t.TempDir(),
		ConfigDir:  configDir,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(runner.Calls) != 0 {
		t.Fatalf("config-only ran commands: %v", runner.Calls)
	}
	if len(summary.ConfigWritten) != len(Bundle()) {
		t.Fatalf("wrote %d files, want %d", len(summary.ConfigWritten), len(Bundle()))
	}

	data, err := os.ReadFile(labConfig)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if string(data) == "c.ServerApp.port = 9999\n" {
		t.Fatal("existing config was not overwritten")
	}

	overrides := filepath.Join(configDir, "lab", "settings", "overrides.json")
	if _, err := os.Stat(overrides); err != nil {
		t.Fatalf("overrides.json not written: %v", err)
	}
}

func TestRunExtensionsOnly(t *testing.T) {
	runner := toolstest.NewFakeRunner()
	runner.Executables["pip3"] = "/usr/bin/pip3"
	runner.Results["pip3 install --user --upgrade black"] = toolstest.Result{Code: 1, Stderr: "resolution failed"}

	configDir := t.TempDir()
	cfg := testConfig([]string{"black", "isort"}, nil)

	summary, err := Run(context.Background(), runner, cfg, Options{
		ExtensionsOnly: true,
		ConfigDir:      configDir,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.AppInstalled || runner.Ran("pip3 install --user --upgrade jupyterlab") {
		t.Fatal("extensions-only must not install the base application")
	}
	if len(summary.Failed) != 1 || summary.Failed[0] != "black" {
		t.Fatalf("Failed = %v, want [black]", summary.Failed)
	}
	if len(summary.Installed) != 1 || summary.Installed[0] != "isort" {
		t.Fatalf("Installed = %v, want [isort]; a failed add-on must not stop later ones", summary.Installed)
	}

	entries, err := os.ReadDir(configDir)
	if err != nil {
		t.Fatalf("read config dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("extensions-only wrote config files: %v", entries)
	}
}

func TestRunExtensionsOnlyRequiresExistingEnv(t *testing.T) {
	runner := toolstest.NewFakeRunner()

	_, err := Run(context.Background(), runner, testConfig(nil, nil), Options{
		ExtensionsOnly: true,
		VenvName:       "missing",
		EnvRoot:        t.TempDir(),
		ConfigDir:      t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing env in extensions-only mode")
	}
}
