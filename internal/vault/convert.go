// Package vault owns the output side of a conversion run: the destination
// folder, its lock, atomic note writes, and the run loop that turns a source
// of articles into a tree of notes.
package vault

import (
	"fmt"
	"strings"

	"github.com/rollnote/rollnote/internal/article"
	"github.com/rollnote/rollnote/internal/source"
)

// readmeStem is the archive's own read-me article; it is captured for the
// synthesized read-me instead of being converted.
const readmeStem = "00 Read Me"

// readmeNote is the note the synthesized read-me is written to. The dash sorts
// it above every numbered note.
const readmeNote = "00 - READ ME FIRST"

// Convert reads every article from src and writes the converted notes under
// dest. It is a pure function of the source's contents: two sources holding
// the same articles produce byte-identical trees, whatever form the sources
// take.
//
// Recoverable trouble (malformed tables, foreign notes in the destination) is
// reported through warn and does not stop the run. Anything else is fatal:
// unreadable sources, articles the converter cannot understand, and write
// failures all abort with nothing half-written, because every note write is
// atomic.
func Convert(src source.Reader, dest string, warn func(format string, args ...any)) error {
	if warn == nil {
		warn = func(string, ...any) {}
	}

	stems, err := source.Stems(src)
	if err != nil {
		return err
	}

	if len(stems) == 0 {
		return fmt.Errorf("%w in %s", ErrNoArticles, src.Location())
	}

	for _, stem := range stems {
		if _, ok, _ := article.SplitNumber(stem); !ok {
			return fmt.Errorf("%w: found %s in %s", ErrUnnumberedArticle, stem, src.Location())
		}
	}

	if err := PrepareDest(dest, warn); err != nil {
		return err
	}

	lock, err := AcquireLock(dest)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	var readme article.ReadmeInfo

	for _, stem := range stems {
		if strings.HasSuffix(stem, " copy") {
			// Duplicate article shipped in one of the archives.
			continue
		}

		text, err := src.Article(stem)
		if err != nil {
			return err
		}

		if stem == readmeStem {
			readme.SaveOriginal(text)

			continue
		}

		readme.UpdateFrom(text)

		if err := convertArticle(src, dest, stem, text, warn); err != nil {
			return err
		}
	}

	if body, ok := readme.Readme(); ok {
		if _, err := WriteNote(dest, readmeNote, body); err != nil {
			return err
		}
	}

	return nil
}

func convertArticle(
	src source.Reader, dest, stem, text string, warn func(format string, args ...any),
) error {
	title, prologue, body, ok := specialCase(text)
	if !ok {
		var err error

		title, prologue, body, err = article.Subdivide(text)
		if err != nil {
			return fmt.Errorf("can't understand article %s in %s: %w", stem, src.Location(), err)
		}
	}

	name := noteName(stem, title)

	parsed, err := article.ParseChapter(name, body)
	if err != nil {
		return fmt.Errorf("can't understand article %s in %s: %w", stem, src.Location(), err)
	}

	annotated, warnings := article.AnnotateTables(prologue + parsed)
	for _, w := range warnings {
		warn("article %s: %s", name, w)
	}

	if _, err := WriteNote(dest, name, annotated); err != nil {
		return err
	}

	return nil
}

func specialCase(text string) (title, prologue, body string, ok bool) {
	title, body, ok = article.UrbanIdeas(text)

	return title, "", body, ok
}

// noteName picks the output note name for an article. The source file name and
// the embedded header usually agree on the number but not on the title; the
// longer title tends to be the unabbreviated one. Article 12 is the known
// exception where the header is right. Numbers below 100 are zero-padded so
// the vault sorts; the rare article numbered 100+ sorts to the end unnumbered.
func noteName(stem, title string) string {
	n, _, external := article.SplitNumber(stem)
	_, _, embedded := article.SplitNumber(title)

	description := embedded
	if n != 12 && len(external) > len(embedded) {
		description = external
	}

	if n < 100 {
		return fmt.Sprintf("%02d %s", n, description)
	}

	return description
}
