package jupyter

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed templates/jupyter_lab_config.py
var labConfigPy []byte

//go:embed templates/overrides.json
var overridesJSON []byte

//go:embed templates/themes.jupyterlab-settings
var themesSettings []byte

//go:embed templates/shortcuts.jupyterlab-settings
var shortcutsSettings []byte

// bundleFile maps a destination (relative to the Jupyter config dir) to its
// embedded content.
type bundleFile struct {
	Rel     string
	Content []byte
}

// Bundle returns the fixed configuration files in write order.
func Bundle() []bundleFile {
	return []bundleFile{
		{Rel: "jupyter_lab_config.py", Content: labConfigPy},
		{Rel: filepath.Join("lab", "settings", "overrides.json"), Content: overridesJSON},
		{Rel: filepath.Join("lab", "user-settings", "@jupyterlab", "apputils-extension", "themes.jupyterlab-settings"), Content: themesSettings},
		{Rel: filepath.Join("lab", "user-settings", "@jupyterlab", "shortcuts-extension", "shortcuts.jupyterlab-settings"), Content: shortcutsSettings},
	}
}

// WriteBundle writes every bundle file under dir, creating parent
// directories. Each write fully replaces any existing file; there is no
// merge and no rollback when a later write fails.
func WriteBundle(dir string) ([]string, error) {
	var written []string
	for _, file := range Bundle() {
		dest := filepath.Join(dir, file.Rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return written, fmt.Errorf("prepare %s: %w", filepath.Dir(dest), err)
		}
		if err := os.WriteFile(dest, file.Content, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", dest, err)
		}
		written = append(written, file.Rel)
	}
	return written, nil
}
