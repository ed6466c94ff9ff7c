// Package cbz archives a directory of images into a comic-book zip.
package cbz

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyDirectory is returned when the source directory has no entries.
var ErrEmptyDirectory = errors.New("directory is empty")

// ErrTargetExists is returned when the .cbz file already exists.
var ErrTargetExists = errors.New("target file already exists")

// Archive zips dir into <dir>.cbz next to it, with every entry stored under
// the directory's basename, and returns the archive path.
func Archive(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", dir, err)
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("%s: %w", dir, ErrEmptyDirectory)
	}

	dir = filepath.Clean(dir)
	base := filepath.Base(dir)
	target := filepath.Join(filepath.Dir(dir), base+".cbz")

	if _, err := os.Stat(target); err == nil {
		return "", fmt.Errorf("%s: %w", target, ErrTargetExists)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat %s: %w", target, err)
	}

	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", target, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	if err := addTree(zw, dir, base); err != nil {
		zw.Close()
		os.Remove(target)
		return "", err
	}
	if err := zw.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("finalize archive: %w", err)
	}
	return target, nil
}

func addTree(zw *zip.Writer, dir, prefix string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := prefix + "/" + strings.ReplaceAll(rel, string(filepath.Separator), "/")

		w, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("add %s: %w", name, err)
		}
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer file.Close()

		if _, err := io.Copy(w, file); err != nil {
			return fmt.Errorf("copy %s: %w", path, err)
		}
		return nil
	})
}
