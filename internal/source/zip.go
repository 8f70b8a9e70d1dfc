package source

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
)

// Zip reads articles from a zip archive without extracting it.
type Zip struct {
	location string
	ext      string
	archive  *zip.ReadCloser
}

// NewZip opens a zip-backed reader. Fails if the file is not a readable zip
// archive.
func NewZip(location, ext string) (*Zip, error) {
	archive, err := zip.OpenReader(location)
	if err != nil {
		return nil, fmt.Errorf("open zip %s: %w", location, err)
	}

	return &Zip{location: location, ext: ext, archive: archive}, nil
}

func (z *Zip) Location() string { return z.location }

func (z *Zip) Extension() string { return z.ext }

func (z *Zip) Paths() ([]string, error) {
	var paths []string

	for _, file := range z.archive.File {
		if file.FileInfo().IsDir() {
			continue
		}

		// Reject entries that escape the archive root.
		name := path.Clean(file.Name)
		if name == ".." || len(name) >= 3 && name[:3] == "../" || path.IsAbs(name) {
			continue
		}

		paths = append(paths, name)
	}

	return paths, nil
}

func (z *Zip) Article(stem string) (string, error) {
	name := stem + "." + z.ext

	file, err := z.archive.Open(name)
	if err != nil {
		return "", fmt.Errorf("read article %s from %s: %w", stem, z.location, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read article %s from %s: %w", stem, z.location, err)
	}

	return string(data), nil
}

// Close releases the underlying archive handle.
func (z *Zip) Close() error {
	return z.archive.Close()
}
