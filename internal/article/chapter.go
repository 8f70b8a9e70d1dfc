package article

import (
	"fmt"
	"regexp"
	"strings"
)

// lineKind classifies one body line. Bodies are scanned as "\n<line>" segments
// so that every inserted paragraph can reuse the segment's leading newline.
type lineKind int

const (
	vanillaLine lineKind = iota
	headerLine
	listLine
)

var (
	listLineRe   = regexp.MustCompile(`^\n\d+\.`)
	headerLineRe = regexp.MustCompile(`^\n#+ `)
	listItemRe   = regexp.MustCompile(`\n(\d+)\.\s*(.*)`)
	wordRunRe    = regexp.MustCompile(`\w+|\W+`)
	wordRe       = regexp.MustCompile(`^\w`)
	newlinesRe   = regexp.MustCompile(`\n\n\n+`)
)

// startLink is the block anchor used for a list that appears before any header.
const startLink = "^START"

// ParseChapter rewrites an article body for the vault note named name.
//
// Runs of numbered list items become Markdown tables with a dN header column,
// preceded by a dice-roll paragraph and followed by a block anchor. The anchor
// is derived from the most recent header, so the dice code rolls against the
// table that follows it. Everything else passes through, except that runs of
// three or more newlines collapse to a paragraph break.
//
// The body must be empty or start with a newline; Subdivide guarantees that.
func ParseChapter(name, body string) (string, error) {
	if body == "" {
		return "", nil
	}

	if !strings.HasPrefix(body, "\n") {
		return "", ErrBodyShape
	}

	chapter := chapter{name: name, link: startLink}
	previous := vanillaLine

	for _, segment := range segments(body) {
		kind := classify(segment)
		if kind != previous {
			if err := chapter.changeKind(previous, kind); err != nil {
				return "", err
			}
		}

		chapter.pushLine(kind, segment)

		previous = kind
	}

	if err := chapter.changeKind(previous, vanillaLine); err != nil {
		return "", err
	}

	return chapter.String(), nil
}

// segments splits body into "\n<line>" chunks. The body's leading newline
// guarantees every line has one.
func segments(body string) []string {
	var segs []string

	start := 0

	for idx := 1; idx < len(body); idx++ {
		if body[idx] == '\n' {
			segs = append(segs, body[start:idx])
			start = idx
		}
	}

	return append(segs, body[start:])
}

func classify(segment string) lineKind {
	switch {
	case listLineRe.MatchString(segment):
		return listLine
	case headerLineRe.MatchString(segment):
		return headerLine
	default:
		return vanillaLine
	}
}

// chapter accumulates the rewritten body while a run of list items is pending.
type chapter struct {
	name   string
	parsed []string
	list   []string
	link   string
}

func (c *chapter) pushLine(kind lineKind, segment string) {
	switch kind {
	case listLine:
		c.list = append(c.list, segment)
	case headerLine:
		c.link = makeLink(segment)
		c.parsed = append(c.parsed, segment)
	case vanillaLine:
		c.parsed = append(c.parsed, segment)
	}
}

// changeKind flushes material owed at a kind boundary: the dice code before a
// list begins, and the table plus anchor once it ends.
func (c *chapter) changeKind(from, to lineKind) error {
	if to == listLine {
		c.pushAsParagraph(diceCode(c.name, c.link))

		return nil
	}

	if from == listLine {
		table, err := listToTable(c.list)
		if err != nil {
			return err
		}

		c.parsed = append(c.parsed, table)
		c.list = c.list[:0]
		c.pushAsParagraph(c.link)
	}

	return nil
}

func (c *chapter) pushAsParagraph(line string) {
	const pilcrow = "\n\n"

	c.parsed = append(c.parsed, pilcrow, line, pilcrow)
}

func (c *chapter) String() string {
	return newlinesRe.ReplaceAllString(strings.Join(c.parsed, ""), "\n\n")
}

// listToTable renders numbered list segments as a Markdown table whose header
// names the die to roll: "| d6 | Item |" for a six-entry list. Rows are
// renumbered 1..n so the die result indexes the table directly.
func listToTable(items []string) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyList
	}

	var rows strings.Builder

	fmt.Fprintf(&rows, "\n| d%d | Item |\n| --:| -- |", len(items))

	for idx, item := range items {
		caps := listItemRe.FindStringSubmatch(item)
		if caps == nil {
			return "", fmt.Errorf("internal: not a list item: %q", item)
		}

		fmt.Fprintf(&rows, "\n| %d | %s |", idx+1, strings.TrimSpace(caps[2]))
	}

	return rows.String(), nil
}

// makeLink slugifies a header into an Obsidian block anchor: word runs survive,
// everything between them becomes a single dash, and the result is lowercased.
func makeLink(header string) string {
	const separator = "-"

	parts := []string{"^"}

	for _, run := range wordRunRe.FindAllString(header, -1) {
		if wordRe.MatchString(run) {
			parts = append(parts, run)
		} else {
			parts = append(parts, separator)
		}
	}

	if len(parts) >= 2 && parts[1] == separator {
		parts[1] = ""
	}

	if parts[len(parts)-1] == separator {
		parts = parts[:len(parts)-1]
	}

	return strings.ToLower(strings.Join(parts, ""))
}

// diceCode renders the inline roller directive that targets a block anchor in
// the named note.
func diceCode(name, link string) string {
	return "\n`dice: [[" + name + "#" + link + "]]`\n"
}
