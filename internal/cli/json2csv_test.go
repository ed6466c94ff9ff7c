package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunJSONToCSVToStdout(t *testing.T) {
	orig := jsonCSVKey
	defer func() { jsonCSVKey = orig }()
	jsonCSVKey = ""

	input := filepath.Join(t.TempDir(), "in.json")
	if err := os.WriteFile(input, []byte(`[{"a": 1}]`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	cmd := newJSONToCSVCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)

	if err := runJSONToCSV(cmd, []string{input}); err != nil {
		t.Fatalf("runJSONToCSV: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "_JSON") {
		t.Fatalf("stdout = %q, want CSV with _JSON header", buf.String())
	}
}

func TestRunJSONToCSVToFile(t *testing.T) {
	orig := jsonCSVKey
	defer func() { jsonCSVKey = orig }()
	jsonCSVKey = "items"

	dir := t.TempDir()
	input := filepath.Join(dir, "in.json")
	output := filepath.Join(dir, "out.csv")
	if err := os.WriteFile(input, []byte(`{"items": [{"a": 1}, {"a": 2}]}`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	cmd := newJSONToCSVCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)

	if err := runJSONToCSV(cmd, []string{input, output}); err != nil {
		t.Fatalf("runJSONToCSV: %v", err)
	}
	if !strings.Contains(buf.String(), "Wrote 2 rows") {
		t.Fatalf("output = %q, want row summary", buf.String())
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("output lines = %d, want header + 2 rows", len(lines))
	}
}

func TestRunJSONToCSVBadKey(t *testing.T) {
	orig := jsonCSVKey
	defer func() { jsonCSVKey = orig }()
	jsonCSVKey = "missing"

	input := filepath.Join(t.TempDir(), "in.json")
	if err := os.WriteFile(input, []byte(`{"items": []}`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	cmd := newJSONToCSVCmd()
	cmd.SetOut(&bytes.Buffer{})
	if err := runJSONToCSV(cmd, []string{input}); err == nil {
		t.Fatal("expected error for missing key path")
	}
}
