package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mwong94/goutils/internal/bootstrap"
	"github.com/mwong94/goutils/internal/config"
	"github.com/mwong94/goutils/internal/jupyter"
	"github.com/mwong94/goutils/internal/tools"
	"github.com/mwong94/goutils/internal/urlcheck"
)

func configWithState(path string) config.Config {
	cfg := config.Default()
	cfg.URLCheck.StateFile = path
	return cfg
}

func TestPrintSetupResults(t *testing.T) {
	cmd := newSetupCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)

	printSetupResults(cmd, []bootstrap.Result{
		{Name: "brew", Action: bootstrap.ActionSatisfied, Version: "4.4.2", Path: "/opt/homebrew/bin/brew"},
		{Name: "uv", Action: bootstrap.ActionInstalled, Fallback: true, Version: "0.5.9"},
		{Name: "python", Action: bootstrap.ActionFailed, Error: "uv python install 3.13 failed"},
	})

	got := buf.String()
	for _, want := range []string{"brew v4.4.2", "satisfied", "installed via fallback", "python", "uv python install 3.13 failed"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintStatusTableSortsByName(t *testing.T) {
	cmd := newDoctorCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)

	printStatusTable(cmd, []tools.Status{
		{Name: "uv", Satisfied: true, Version: "0.5.9", Path: "/usr/local/bin/uv"},
		{Name: "brew", Satisfied: false, Error: "brew not found in PATH"},
	})

	got := buf.String()
	if !strings.Contains(got, "brew") || !strings.Contains(got, "uv v0.5.9") {
		t.Fatalf("output = %q", got)
	}
	if strings.Index(got, "brew") > strings.Index(got, "uv") {
		t.Errorf("statuses not sorted by name:\n%s", got)
	}
}

func TestPrintJupyterSummary(t *testing.T) {
	cmd := newJupyterCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)

	env := jupyter.Env{Kind: jupyter.BareName, Dir: "/home/u/.venvs", Name: "research"}
	printJupyterSummary(cmd, jupyter.Summary{
		Env:           &env,
		EnvCreated:    true,
		AppInstalled:  true,
		Installed:     []string{"black"},
		Failed:        []string{"isort"},
		ConfigWritten: []string{"jupyter_lab_config.py"},
	})

	got := buf.String()
	for _, want := range []string{
		"Environment created: /home/u/.venvs/research",
		"JupyterLab installed",
		"installed black",
		"warning: isort failed",
		"wrote jupyter_lab_config.py",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintOutcomes(t *testing.T) {
	cmd := newURLCheckCheckCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)

	printOutcomes(cmd, []urlcheck.Outcome{
		{URL: "https://a.example", Known: true, Previous: 503, Current: 200, Change: urlcheck.ChangeNowAvailable, Notified: true},
		{URL: "https://b.example", Current: urlcheck.StatusUnreachable, Detail: "timeout", Change: urlcheck.ChangeNew},
	})

	got := buf.String()
	for _, want := range []string{"https://a.example", "previous 503", "now available (notified)", "timeout", "previous n/a"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestResolveStatePathPrecedence(t *testing.T) {
	orig := urlcheckStateFile
	defer func() { urlcheckStateFile = orig }()

	cfg := configWithState("/from/config.json")

	urlcheckStateFile = "/from/flag.json"
	if got := resolveStatePath(cfg); got != "/from/flag.json" {
		t.Errorf("resolveStatePath = %q, want flag value", got)
	}

	urlcheckStateFile = ""
	if got := resolveStatePath(cfg); got != "/from/config.json" {
		t.Errorf("resolveStatePath = %q, want config value", got)
	}

	if got := resolveStatePath(configWithState("")); got == "" {
		t.Error("resolveStatePath returned empty default")
	}
}
