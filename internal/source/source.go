// Package source abstracts where sourcebook articles come from. A conversion
// run reads through the [Reader] capability and never learns whether the bytes
// came from a zip archive or an extracted directory; producing byte-identical
// output from both is part of the tool's contract.
package source

import (
	"errors"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"
)

var (
	// ErrNotFound means the source path does not exist.
	ErrNotFound = errors.New("source does not exist")

	// ErrWrongExtension means the source tree carries a file that does not
	// match the expected article extension.
	ErrWrongExtension = errors.New("unexpected file extension in source")
)

// Reader is the capability a conversion run reads articles through.
//
// Paths returns the slash-separated relative paths of every file in the
// source; Article returns the text of the article with the given stem.
// Implementations need no concurrency safety: a run reads one article at a
// time.
type Reader interface {
	// Location names the source for error messages.
	Location() string

	// Extension is the article extension this source expects, without dot.
	Extension() string

	// Paths lists every file in the source as a relative slash path.
	Paths() ([]string, error)

	// Article reads the article with the given stem.
	Article(stem string) (string, error)
}

// Open picks the concrete reader for a path: a directory of articles, or a
// zip archive of the same. ext is the expected article extension without dot.
func Open(location, ext string) (Reader, error) {
	info, err := os.Stat(location)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
		}

		return nil, fmt.Errorf("stat %s: %w", location, err)
	}

	if info.IsDir() {
		return NewDir(location, ext), nil
	}

	zip, err := NewZip(location, ext)
	if err != nil {
		return nil, fmt.Errorf(
			"%s is neither a directory nor a valid zip archive: %w", location, err)
	}

	return zip, nil
}

// Stems validates a source and returns its article stems, sorted.
//
// Dotfiles are ignored. Any other file must carry the reader's article
// extension; a stray file fails the whole run rather than being silently
// skipped, because a misnamed article would otherwise vanish from the vault.
func Stems(r Reader) ([]string, error) {
	paths, err := r.Paths()
	if err != nil {
		return nil, err
	}

	var stems []string

	for _, p := range paths {
		base := path.Base(p)
		if strings.HasPrefix(base, ".") {
			continue
		}

		ext := strings.TrimPrefix(path.Ext(base), ".")
		stem := strings.TrimSuffix(base, path.Ext(base))

		if ext == "" {
			continue
		}

		if ext != r.Extension() {
			return nil, fmt.Errorf("%w: files in %s should end in .%s but found %s.%s",
				ErrWrongExtension, r.Location(), r.Extension(), stem, ext)
		}

		stems = append(stems, stem)
	}

	// Directory listings and zip entries come back in different orders;
	// sorting keeps the run order, and with it every warning, identical
	// across the two source kinds.
	slices.Sort(stems)

	return stems, nil
}
