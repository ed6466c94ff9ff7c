// Package toolstest provides a scripted CommandRunner for exercising
// installer and configurator flows without touching the host system.
package toolstest

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Result is a scripted outcome for one command line.
type Result struct {
	Stdout string
	Stderr string
	Code   int
	Err    error
}

// FakeRunner implements tools.CommandRunner. Commands are keyed by their
// full command line ("name arg1 arg2 …"); unscripted commands succeed with
// empty output so happy paths need no setup.
type FakeRunner struct {
	mu sync.Mutex

	// Executables maps binary names to fake paths for LookPath.
	Executables map[string]string
	// Results maps command lines to scripted outcomes.
	Results map[string]Result
	// Effects maps a command line to a function invoked after that command
	// runs, letting a test mutate the fake (for example, putting a binary
	// on PATH once its installer has executed).
	Effects map[string]func(*FakeRunner)
	// Calls records every executed command line in order.
	Calls []string
}

// NewFakeRunner returns an empty runner where nothing is on PATH.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Executables: map[string]string{},
		Results:     map[string]Result{},
		Effects:     map[string]func(*FakeRunner){},
	}
}

func (f *FakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, int, error) {
	line := commandLine(name, args)

	f.mu.Lock()
	f.Calls = append(f.Calls, line)
	res, ok := f.Results[line]
	effect := f.Effects[line]
	f.mu.Unlock()

	if effect != nil {
		effect(f)
	}
	if !ok {
		return nil, nil, 0, nil
	}
	return []byte(res.Stdout), []byte(res.Stderr), res.Code, res.Err
}

func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if path, ok := f.Executables[name]; ok {
		return path, nil
	}
	return "", errors.New("exec: " + name + ": executable file not found in $PATH")
}

// Ran reports whether a command line was executed.
func (f *FakeRunner) Ran(line string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, call := range f.Calls {
		if call == line {
			return true
		}
	}
	return false
}

// RanPrefix reports whether any executed command line starts with prefix.
func (f *FakeRunner) RanPrefix(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, call := range f.Calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
