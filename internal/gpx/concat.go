// Package gpx combines multiple GPX files into one document by appending
// every track and route onto the first file.
package gpx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
)

// ErrNoInputs is returned when no GPX files could be collected.
var ErrNoInputs = errors.New("no GPX files found")

// Collect expands the given paths into GPX files. Directories contribute
// their *.gpx entries; non-GPX files produce a warning and are skipped.
func Collect(args []string) ([]string, []string, error) {
	var files, warnings []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if info.IsDir() {
			matches, err := filepath.Glob(filepath.Join(arg, "*.gpx"))
			if err != nil {
				return nil, nil, fmt.Errorf("scan %s: %w", arg, err)
			}
			files = append(files, matches...)
			continue
		}
		if strings.EqualFold(filepath.Ext(arg), ".gpx") {
			files = append(files, arg)
			continue
		}
		warnings = append(warnings, fmt.Sprintf("%s is not a GPX file or directory, skipping", arg))
	}

	if len(files) == 0 {
		return nil, warnings, ErrNoInputs
	}
	return files, warnings, nil
}

// Concat parses the first file as the base document and appends the tracks
// and routes of the remaining files onto its root. A file that fails to
// parse yields a warning and is skipped.
func Concat(files []string) (*etree.Document, []string, error) {
	if len(files) == 0 {
		return nil, nil, ErrNoInputs
	}

	base := etree.NewDocument()
	if err := base.ReadFromFile(files[0]); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", files[0], err)
	}
	root := base.Root()
	if root == nil {
		return nil, nil, fmt.Errorf("parse %s: no root element", files[0])
	}

	var warnings []string
	for _, file := range files[1:] {
		doc := etree.NewDocument()
		if err := doc.ReadFromFile(file); err != nil {
			warnings = append(warnings, fmt.Sprintf("could not process %s: %v", file, err))
			continue
		}
		for _, el := range append(doc.FindElements("//trk"), doc.FindElements("//rte")...) {
			root.AddChild(el.Copy())
		}
	}

	ensureDeclaration(base)
	return base, warnings, nil
}

// WriteFile serializes the combined document to path.
func WriteFile(doc *etree.Document, path string) error {
	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func ensureDeclaration(doc *etree.Document) {
	for _, child := range doc.Child {
		if pi, ok := child.(*etree.ProcInst); ok && pi.Target == "xml" {
			return
		}
	}
	decl := doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.RemoveChild(decl)
	doc.InsertChildAt(0, decl)
}
