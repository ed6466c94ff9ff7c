// Package config loads the optional goutils configuration file. Every field
// has a default, so a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures user overrides for the bootstrap and utility commands.
type Config struct {
	Version  int            `yaml:"version"`
	Python   PythonConfig   `yaml:"python"`
	Envs     EnvsConfig     `yaml:"envs"`
	Jupyter  JupyterConfig  `yaml:"jupyter"`
	URLCheck URLCheckConfig `yaml:"urlcheck"`
}

// PythonConfig selects the interpreter series the installer ensures.
type PythonConfig struct {
	Series string `yaml:"series"`
}

// EnvsConfig controls where bare venv names resolve.
type EnvsConfig struct {
	Root string `yaml:"root"`
}

// JupyterConfig overrides the extension lists installed by `goutils jupyter`.
type JupyterConfig struct {
	Extensions       []string `yaml:"extensions"`
	ServerExtensions []string `yaml:"server_extensions"`
}

// URLCheckConfig configures the urlcheck command.
type URLCheckConfig struct {
	WebhookURL     string `yaml:"webhook_url"`
	StateFile      string `yaml:"state_file"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// DefaultExtensions is the fixed, ordered list of JupyterLab add-ons.
var DefaultExtensions = []string{
	"jupyterlab-git",
	"jupyterlab-lsp",
	"python-lsp-server",
	"jupyterlab_code_formatter",
	"black",
	"isort",
	"ipywidgets",
	"jupyterlab-execute-time",
	"jupyter-resource-usage",
}

// DefaultServerExtensions is the subset enabled as server-side extensions.
var DefaultServerExtensions = []string{
	"jupyterlab_git",
	"jupyter_lsp",
	"jupyter_resource_usage",
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Python:  PythonConfig{Series: "3.13"},
		URLCheck: URLCheckConfig{
			TimeoutSeconds: 10,
		},
	}
}

// Load reads the config file at path, layering it over Default. A missing
// file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Python.Series == "" {
		c.Python.Series = "3.13"
	}
	if c.URLCheck.TimeoutSeconds <= 0 {
		c.URLCheck.TimeoutSeconds = 10
	}
}

// ExtensionList returns the configured add-on list, or the default.
func (c Config) ExtensionList() []string {
	if len(c.Jupyter.Extensions) > 0 {
		return c.Jupyter.Extensions
	}
	return DefaultExtensions
}

// ServerExtensionList returns the server extension subset, or the default.
func (c Config) ServerExtensionList() []string {
	if len(c.Jupyter.ServerExtensions) > 0 {
		return c.Jupyter.ServerExtensions
	}
	return DefaultServerExtensions
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
