package source

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir reads articles from an extracted directory.
type Dir struct {
	location string
	ext      string
}

// NewDir creates a directory-backed reader. location is not checked here;
// Paths surfaces unreadable directories.
func NewDir(location, ext string) *Dir {
	return &Dir{location: location, ext: ext}
}

func (d *Dir) Location() string { return d.location }

func (d *Dir) Extension() string { return d.ext }

// Paths lists the regular files directly inside the directory. The source
// archives are flat, so there is no recursion.
func (d *Dir) Paths() ([]string, error) {
	entries, err := os.ReadDir(d.location)
	if err != nil {
		return nil, fmt.Errorf("cannot open directory %s: %w", d.location, err)
	}

	var paths []string

	for _, entry := range entries {
		if entry.Type().IsRegular() {
			paths = append(paths, entry.Name())
		}
	}

	return paths, nil
}

func (d *Dir) Article(stem string) (string, error) {
	data, err := os.ReadFile(filepath.Join(d.location, stem+"."+d.ext))
	if err != nil {
		return "", fmt.Errorf("read article %s: %w", stem, err)
	}

	return string(data), nil
}
