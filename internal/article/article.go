// Package article transforms one sourcebook article at a time: it extracts the
// note title from the article's first header, keeps only the copyright lines of
// the prologue, rewrites numbered lists as rollable Markdown tables, and marks
// one row of every random table as the selected entry.
//
// The package is pure text-in/text-out. Reading articles and writing vault
// notes is the caller's job.
package article

import (
	"regexp"
	"strings"
)

var (
	headerRe   = regexp.MustCompile(`^#+\s+(.*\S)\s*`)
	prefixRe   = regexp.MustCompile(`^(?:20 Things #|Monstrous Lair #)(.*)`)
	subheadRe  = regexp.MustCompile(`\n#+\s`)
	noticeRe   = regexp.MustCompile(`\bOGL\b|©`)
	fallbackRe = regexp.MustCompile(`\n[^#]+#\d\d:\s*([^.]+)\.\s*©`)
	urbanRe    = regexp.MustCompile(`^#\s+71:? Urban.*\n#ideas\s*(1.)`)
	numberRe   = regexp.MustCompile(`^(\d+)?[\s_]*(.*)$`)
)

// TitleFromHeader extracts the note title from an article's first line, which
// must be a Markdown header. The header marker is stripped, as are the
// "20 Things #" and "Monstrous Lair #" series prefixes; colons are removed
// everywhere (they are not allowed in Obsidian note names).
//
// A handful of articles are titled just "Name"; for those the title is
// recovered from the product line in the copyright notice.
func TitleFromHeader(contents string) (string, error) {
	caps := headerRe.FindStringSubmatch(contents)
	if caps == nil {
		return "", ErrNotHeader
	}

	title := strings.TrimSpace(caps[1])
	if prefixCaps := prefixRe.FindStringSubmatch(title); prefixCaps != nil {
		title = strings.TrimSpace(prefixCaps[1])
	}

	if title == "Name" {
		if found := fallbackRe.FindStringSubmatch(contents); found != nil {
			title = found[1]
		}
	}

	return strings.ReplaceAll(title, ":", ""), nil
}

// Subdivide splits an article into its note title, a prologue reduced to the
// copyright/OGL lines, and the body starting at the first subheading.
//
// The first line is a title, but Obsidian shows the note name as the title, so
// the line itself is dropped. Every prologue line carrying © or an OGL notice
// becomes its own Markdown paragraph; an article without any such line is an
// error. The returned body is either empty or starts with a newline.
func Subdivide(contents string) (title, prologue, body string, err error) {
	title, err = TitleFromHeader(contents)
	if err != nil {
		return "", "", "", err
	}

	newline := strings.IndexByte(contents, '\n')
	if newline < 0 {
		return title, "", "", nil
	}

	rest := contents[newline:]

	bodyStart := len(rest)
	if loc := subheadRe.FindStringIndex(rest); loc != nil {
		bodyStart = loc[0]
	}

	region, body := rest[:bodyStart], rest[bodyStart:]

	var notices []string

	for _, line := range strings.Split(region, "\n") {
		if noticeRe.MatchString(line) {
			notices = append(notices, line, "\n")
		}
	}

	if len(notices) == 0 {
		return "", "", "", ErrNoCopyright
	}

	return title, strings.Join(notices, ""), body, nil
}

// UrbanIdeas handles the one article that breaks the copyright rule: the
// "71 Urban Events" idea list ships without a notice and with a bare #ideas
// tag. It is rebuilt as an "Ideas" section over the original numbered list.
// Returns ok=false for every other article.
func UrbanIdeas(contents string) (title, body string, ok bool) {
	loc := urbanRe.FindStringSubmatchIndex(contents)
	if loc == nil {
		return "", "", false
	}

	return "71 Urban Events", "\n## Ideas\n" + contents[loc[2]:], true
}

// SplitNumber splits a leading article number from the rest of a name.
// "12_stuff" yields (12, true, "stuff"); names without a number yield ok=false.
func SplitNumber(name string) (n int, ok bool, title string) {
	caps := numberRe.FindStringSubmatch(name)
	if caps == nil {
		return 0, false, name
	}

	if caps[1] == "" {
		return 0, false, caps[2]
	}

	for _, digit := range caps[1] {
		n = n*10 + int(digit-'0')
	}

	return n, true, caps[2]
}
