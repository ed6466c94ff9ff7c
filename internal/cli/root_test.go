package cli

import (
	"bytes"
	"testing"
)

func TestRootRejectsUnknownFlag(t *testing.T) {
	cmd := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"--bogus"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestRootListsSubcommands(t *testing.T) {
	cmd := newRootCmd()

	want := []string{"setup", "jupyter", "doctor", "gpx", "json2csv", "keygen", "icons", "cbz", "urlcheck"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}

func TestSetupFlagConflict(t *testing.T) {
	origBrew, origUV := setupBrewOnly, setupUVOnly
	defer func() { setupBrewOnly, setupUVOnly = origBrew, origUV }()
	setupBrewOnly = true
	setupUVOnly = true

	cmd := newSetupCmd()
	if err := runSetup(cmd, nil); err == nil {
		t.Fatal("expected error for --brew-only with --uv-only")
	}
}

func TestJupyterFlagConflict(t *testing.T) {
	origExt, origCfg := jupyterExtensionsOnly, jupyterConfigOnly
	defer func() { jupyterExtensionsOnly, jupyterConfigOnly = origExt, origCfg }()
	jupyterExtensionsOnly = true
	jupyterConfigOnly = true

	cmd := newJupyterCmd()
	if err := runJupyter(cmd, nil); err == nil {
		t.Fatal("expected error for --extensions-only with --config-only")
	}
}
