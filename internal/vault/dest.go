package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
)

const dirPerms = 0o750

// noteMeta is the frontmatter a generated note carries.
type noteMeta struct {
	ObsidianUIMode string `yaml:"obsidianUIMode"`
}

// PrepareDest makes sure the destination is a vault folder this tool may write
// into: it is created when missing, and an existing folder may contain only
// Markdown notes (dotfiles are ignored). Anything else is fatal rather than a
// warning; refusing to write beats scattering notes through an unrelated tree.
//
// Existing notes that were not generated by a previous run (their frontmatter
// lacks the obsidianUIMode marker) are about to be overwritten; each one is
// reported through warn.
func PrepareDest(dest string, warn func(format string, args ...any)) error {
	info, err := os.Stat(dest)

	switch {
	case os.IsNotExist(err):
		if mkdirErr := os.MkdirAll(dest, dirPerms); mkdirErr != nil {
			return fmt.Errorf("cannot create directory %s: %w", dest, mkdirErr)
		}

		return nil
	case err != nil:
		return fmt.Errorf("stat %s: %w", dest, err)
	case !info.IsDir():
		return fmt.Errorf("%w: %s", ErrDestNotDir, dest)
	}

	entries, err := os.ReadDir(dest)
	if err != nil {
		return fmt.Errorf("cannot open directory %s: %w", dest, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || entry.IsDir() {
			continue
		}

		if filepath.Ext(name) != ".md" {
			return fmt.Errorf("%w: found %s in %s", ErrForeignFile, name, dest)
		}

		if !generatedNote(filepath.Join(dest, name)) {
			warn("%s in %s was not generated by this tool and may be overwritten", name, dest)
		}
	}

	return nil
}

// generatedNote reports whether an existing note carries the frontmatter
// marker every generated note starts with.
func generatedNote(path string) bool {
	file, err := os.Open(path) //nolint:gosec // listed by the validator above
	if err != nil {
		return false
	}
	defer file.Close()

	var meta noteMeta

	if _, err := frontmatter.Parse(file, &meta); err != nil {
		return false
	}

	return meta.ObsidianUIMode != ""
}
