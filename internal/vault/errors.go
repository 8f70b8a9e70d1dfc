package vault

import "errors"

var (
	// ErrConfigFileNotFound means an explicitly requested config file is missing.
	ErrConfigFileNotFound = errors.New("config file not found")

	// ErrConfigInvalid means a config file could not be parsed or validated.
	ErrConfigInvalid = errors.New("invalid config file")

	// ErrExtensionEmpty means the configured article extension is empty.
	ErrExtensionEmpty = errors.New("extension cannot be empty")

	// ErrExtensionDot means the configured article extension carries a dot.
	ErrExtensionDot = errors.New("extension must not start with a dot")

	// ErrNoArticles means the source contains no articles.
	ErrNoArticles = errors.New("no articles found")

	// ErrUnnumberedArticle means a source article's name does not start with
	// its sourcebook number.
	ErrUnnumberedArticle = errors.New("article name must start with a number")

	// ErrDestNotDir means the destination exists but is not a directory.
	ErrDestNotDir = errors.New("destination is not a directory")

	// ErrForeignFile means the destination contains something other than
	// Markdown notes.
	ErrForeignFile = errors.New("destination may only contain .md files")

	// ErrVaultBusy means another run holds the vault lock.
	ErrVaultBusy = errors.New("vault is locked by another run")
)
