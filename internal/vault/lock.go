package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// lockFileName is kept out of the note namespace with a leading dot; the
// destination validator ignores dotfiles.
const lockFileName = ".rollnote.lock"

// Lock holds an exclusive flock on a vault while a run writes to it.
//
// flock is advisory and applies to an inode, so the lock file must not be
// replaced while locks may be held; Unlock keeps it in place. Unix-only.
type Lock struct {
	file *os.File
}

// AcquireLock takes the vault lock without waiting. A vault already locked by
// another run returns ErrVaultBusy; overlapping runs would interleave their
// writes in the same tree.
func AcquireLock(dest string) (*Lock, error) {
	path := filepath.Join(dest, lockFileName)

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) //nolint:gosec // lock file inside the vault
	if err != nil {
		return nil, fmt.Errorf("open vault lock %s: %w", path, err)
	}

	flockErr := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if flockErr != nil {
		_ = file.Close()

		if errors.Is(flockErr, syscall.EWOULDBLOCK) {
			return nil, fmt.Errorf("%w: %s", ErrVaultBusy, dest)
		}

		return nil, fmt.Errorf("lock vault %s: %w", dest, flockErr)
	}

	return &Lock{file: file}, nil
}

// Unlock releases the vault lock.
func (l *Lock) Unlock() error {
	if l.file == nil {
		return nil
	}

	err := l.file.Close()
	l.file = nil

	return err
}
