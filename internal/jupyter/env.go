package jupyter

import (
	"path/filepath"
	"strings"
)

// EnvKind tags how a user-supplied environment name was classified.
type EnvKind int

const (
	// BareName is a plain word resolved under the default env root.
	BareName EnvKind = iota
	// RelativePath is a name containing a path separator or a ./ ../ prefix.
	RelativePath
	// AbsolutePath starts at the filesystem root.
	AbsolutePath
)

// Env is the resolved environment target: the directory it lives in and its
// basename. The venv itself is Dir/Name.
type Env struct {
	Kind EnvKind
	Dir  string
	Name string
}

// Path returns the venv directory.
func (e Env) Path() string {
	return filepath.Join(e.Dir, e.Name)
}

// BinDir returns the venv's executable directory.
func (e Env) BinDir() string {
	return filepath.Join(e.Path(), "bin")
}

// Python returns the venv's interpreter path.
func (e Env) Python() string {
	return filepath.Join(e.BinDir(), "python")
}

// Pip returns the venv's pip path.
func (e Env) Pip() string {
	return filepath.Join(e.BinDir(), "pip")
}

// Jupyter returns the venv's jupyter launcher path.
func (e Env) Jupyter() string {
	return filepath.Join(e.BinDir(), "jupyter")
}

// Classify tags a user-supplied environment name by shape.
func Classify(name string) EnvKind {
	if filepath.IsAbs(name) {
		return AbsolutePath
	}
	if strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../") {
		return RelativePath
	}
	if strings.ContainsRune(name, filepath.Separator) {
		return RelativePath
	}
	return BareName
}

// Resolve turns a name into an Env. Bare names land under envRoot; path-like
// names split into parent directory and final segment.
func Resolve(name, envRoot string) Env {
	kind := Classify(name)
	if kind == BareName {
		return Env{Kind: kind, Dir: envRoot, Name: name}
	}
	return Env{
		Kind: kind,
		Dir:  filepath.Dir(name),
		Name: filepath.Base(name),
	}
}
