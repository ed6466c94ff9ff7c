// Package jsoncsv converts a JSON array of objects into a single-column CSV
// where each row holds one element, re-encoded as a JSON string.
package jsoncsv

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNotArray is returned when the selected value is not a JSON array.
var ErrNotArray = errors.New("selected value is not an array")

const headerColumn = "_JSON"

// Convert reads the JSON document at path, selects the array at keyPath
// (dot-delimited, empty for the top level), and writes the CSV to w.
// It returns the number of data rows written.
func Convert(path, keyPath string, w io.Writer) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read input: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("invalid JSON: %w", err)
	}

	selected, err := resolveKey(doc, keyPath)
	if err != nil {
		return 0, err
	}

	rows, ok := selected.([]any)
	if !ok {
		return 0, ErrNotArray
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{headerColumn}); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		encoded, err := json.Marshal(row)
		if err != nil {
			return i, fmt.Errorf("encode row %d: %w", i+1, err)
		}
		if err := writer.Write([]string{string(encoded)}); err != nil {
			return i, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return len(rows), fmt.Errorf("flush output: %w", err)
	}
	return len(rows), nil
}

// resolveKey walks a dot-delimited path of object keys.
func resolveKey(doc any, keyPath string) (any, error) {
	if keyPath == "" {
		return doc, nil
	}

	current := doc
	for _, part := range strings.Split(keyPath, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("key path %q not found", keyPath)
		}
		next, ok := obj[part]
		if !ok {
			return nil, fmt.Errorf("key path %q not found", keyPath)
		}
		current = next
	}
	return current, nil
}
