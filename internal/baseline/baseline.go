// Package baseline implements the regression harness around conversion runs:
// comparing two output trees byte for byte, and promoting the latest output to
// be the new baseline.
package baseline

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// ErrNotDir means a tree root is missing or not a directory.
var ErrNotDir = errors.New("not a directory")

// Diff compares two output trees and returns one human-readable line per
// difference: files present on only one side, and files whose bytes differ.
// An empty slice means the trees are byte-identical.
func Diff(got, want string) ([]string, error) {
	gotFiles, err := treeFiles(got)
	if err != nil {
		return nil, err
	}

	wantFiles, err := treeFiles(want)
	if err != nil {
		return nil, err
	}

	paths := make(map[string]bool, len(gotFiles)+len(wantFiles))
	for _, p := range gotFiles {
		paths[p] = true
	}

	for _, p := range wantFiles {
		paths[p] = true
	}

	sorted := make([]string, 0, len(paths))
	for p := range paths {
		sorted = append(sorted, p)
	}

	slices.Sort(sorted)

	var differences []string

	for _, p := range sorted {
		gotData, gotErr := os.ReadFile(filepath.Join(got, p))
		wantData, wantErr := os.ReadFile(filepath.Join(want, p))

		switch {
		case gotErr != nil && wantErr != nil:
			return nil, fmt.Errorf("read %s: %w", p, errors.Join(gotErr, wantErr))
		case gotErr != nil:
			differences = append(differences, fmt.Sprintf("only in %s: %s", want, p))
		case wantErr != nil:
			differences = append(differences, fmt.Sprintf("only in %s: %s", got, p))
		case !bytes.Equal(gotData, wantData):
			differences = append(differences, fmt.Sprintf("content differs: %s", p))
		}
	}

	return differences, nil
}

// Promote replaces the baseline tree wholesale with the latest output: the old
// baseline is removed and recreated from latest. The latest tree is left in
// place.
func Promote(latest, baseline string) error {
	info, err := os.Stat(latest)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDir, latest)
	}

	if err := os.RemoveAll(baseline); err != nil {
		return fmt.Errorf("remove old baseline %s: %w", baseline, err)
	}

	return copyTree(latest, baseline)
}

// treeFiles lists the relative slash paths of every regular file under root.
// Dotfiles (the vault lock among them) are not part of a tree's identity.
func treeFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDir, root)
	}

	var files []string

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		if entry.Name() != "" && entry.Name()[0] == '.' {
			return nil
		}

		files = append(files, filepath.ToSlash(rel))

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	return files, nil
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(src, path)
		if relErr != nil {
			return relErr
		}

		target := filepath.Join(dst, rel)

		if entry.IsDir() {
			return os.MkdirAll(target, 0o750)
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		data, readErr := os.ReadFile(path) //nolint:gosec // walking a tree the caller named
		if readErr != nil {
			return readErr
		}

		return os.WriteFile(target, data, 0o600)
	})
}
