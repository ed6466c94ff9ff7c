package urlcheck

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// State maps each monitored URL to the status code of its last check.
// A transport failure is recorded as -1.
type State struct {
	Entries map[string]int `json:"entries"`
}

// LoadState reads the state file; a missing file yields an empty state.
func LoadState(path string) (State, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{Entries: map[string]int{}}, nil
		}
		return State{}, fmt.Errorf("read state: %w", err)
	}

	var state State
	if err := json.Unmarshal(contents, &state); err != nil {
		return State{}, fmt.Errorf("unmarshal state: %w", err)
	}
	if state.Entries == nil {
		state.Entries = map[string]int{}
	}
	return state, nil
}

// SaveState atomically replaces the state file.
func SaveState(path string, state State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare state directory: %w", err)
	}

	buf, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "urlcheck-*.json")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

// ResetState deletes the state file. A missing file is not an error; the
// returned bool reports whether anything was removed.
func ResetState(path string) (bool, error) {
	err := os.Remove(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("remove state: %w", err)
}
