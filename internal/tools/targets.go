package tools

import "sort"

// DefaultPythonSeries is the interpreter line the installer ensures is
// available through uv.
const DefaultPythonSeries = "3.13"

const (
	brewInstallScript = "curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh | /bin/bash"
	uvInstallScript   = "curl -LsSf https://astral.sh/uv/install.sh | sh"
)

// Command is a single external invocation.
type Command struct {
	Name string
	Args []string
}

// IsZero reports whether the command is unset.
func (c Command) IsZero() bool {
	return c.Name == ""
}

// Target describes an installation target: how to decide it is satisfied,
// how to install it, and what to try when the preferred install fails.
type Target struct {
	Name          string
	Executable    string  // probed on PATH when non-empty
	VersionSwitch string  // passed to Executable to read a version line
	Check         Command // satisfaction probe when Executable is empty
	Install       Command
	Fallback      Command // zero when there is no fallback installer
}

var targetDefinitions = map[string]Target{
	"brew": {
		Name:          "brew",
		Executable:    "brew",
		VersionSwitch: "--version",
		Install:       Command{Name: "/bin/bash", Args: []string{"-c", brewInstallScript}},
	},
	"uv": {
		Name:          "uv",
		Executable:    "uv",
		VersionSwitch: "--version",
		Install:       Command{Name: "/bin/sh", Args: []string{"-c", uvInstallScript}},
		Fallback:      Command{Name: "brew", Args: []string{"install", "uv"}},
	},
	"python": PythonTarget(DefaultPythonSeries),
	// Probe-only: jupyter is installed by the configurator, not the installer.
	"jupyter": {
		Name:          "jupyter",
		Executable:    "jupyter",
		VersionSwitch: "--version",
	},
}

// PythonTarget builds the target that ensures the given interpreter series is
// available through uv. It has no executable of its own; uv answers both the
// check and the install.
func PythonTarget(series string) Target {
	return Target{
		Name:    "python",
		Check:   Command{Name: "uv", Args: []string{"python", "find", series}},
		Install: Command{Name: "uv", Args: []string{"python", "install", series}},
	}
}

// KnownTargets returns the managed target names in a stable order.
func KnownTargets() []string {
	names := make([]string, 0, len(targetDefinitions))
	for name := range targetDefinitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definition returns the target definition for the provided name.
func Definition(name string) (Target, bool) {
	def, ok := targetDefinitions[name]
	return def, ok
}
