package jsoncsv

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestConvertTopLevelArray(t *testing.T) {
	path := writeInput(t, `[{"id": 1, "name": "a"}, {"id": 2, "name": "b"}]`)

	var out strings.Builder
	n, err := Convert(path, "", &out)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if n != 2 {
		t.Fatalf("rows = %d, want 2", n)
	}

	records, err := csv.NewReader(strings.NewReader(out.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	if records[0][0] != "_JSON" {
		t.Errorf("header = %q, want _JSON", records[0][0])
	}
	if !strings.Contains(records[1][0], `"id":1`) {
		t.Errorf("row 1 = %q, want JSON-encoded element", records[1][0])
	}
}

func TestConvertNestedKey(t *testing.T) {
	path := writeInput(t, `{"data": {"items": [{"x": true}]}}`)

	var out strings.Builder
	n, err := Convert(path, "data.items", &out)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if n != 1 {
		t.Fatalf("rows = %d, want 1", n)
	}
}

func TestConvertEmptyArray(t *testing.T) {
	path := writeInput(t, `[]`)

	var out strings.Builder
	n, err := Convert(path, "", &out)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if n != 0 {
		t.Fatalf("rows = %d, want 0", n)
	}
	if got := strings.TrimSpace(out.String()); got != "_JSON" {
		t.Errorf("output = %q, want header only", got)
	}
}

func TestConvertNotArray(t *testing.T) {
	path := writeInput(t, `{"data": {"count": 3}}`)

	var out strings.Builder
	if _, err := Convert(path, "data", &out); !errors.Is(err, ErrNotArray) {
		t.Fatalf("err = %v, want ErrNotArray", err)
	}
}

func TestConvertMissingKeyPath(t *testing.T) {
	path := writeInput(t, `{"data": []}`)

	var out strings.Builder
	if _, err := Convert(path, "data.items", &out); err == nil {
		t.Fatal("expected error for missing key path")
	}
}

func TestConvertInvalidJSON(t *testing.T) {
	path := writeInput(t, `{not json`)

	var out strings.Builder
	if _, err := Convert(path, "", &out); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
