package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

const filePerms = 0o600

// notePreamble switches Obsidian to preview mode when a note opens; the notes
// are meant to be rolled on, not edited.
const notePreamble = "---\nobsidianUIMode: preview\n---\n\n"

// WriteNote writes one vault note atomically (write-then-rename), so a failed
// run never leaves a half-written note behind. Returns the note's path.
func WriteNote(dest, name, body string) (string, error) {
	path := filepath.Join(dest, name+".md")

	writeErr := atomic.WriteFile(path, strings.NewReader(notePreamble+body))
	if writeErr != nil {
		return "", fmt.Errorf("write note %s: %w", path, writeErr)
	}

	// Set file permissions (atomic.WriteFile doesn't set them for new files)
	chmodErr := os.Chmod(path, filePerms)
	if chmodErr != nil {
		return "", fmt.Errorf("chmod note %s: %w", path, chmodErr)
	}

	return path, nil
}
