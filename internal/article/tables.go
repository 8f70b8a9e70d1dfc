package article

import (
	"fmt"
	"strings"
)

// Warning reports a table block that was recognized but left untouched.
// Line is 1-based within the annotated text.
type Warning struct {
	Line   int
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
}

// AnnotateTables marks the selected entry of every random table in text.
//
// A random table is a pipe-delimited header row, a separator row of dashes and
// colons, and at least one data row; the block ends at the first line that is
// not a table row, or at end of text. The first data row is the selected
// entry: its last cell is wrapped in bold markers and an inline roller
// directive encoding the table size n is appended, so a table of three rows
// gains `dice: [[1d3]]`. Every other byte of text is preserved.
//
// The pass is idempotent: a designated row that already carries the bold
// marker or a roller directive leaves its table untouched, so re-running the
// transform is a no-op. A table whose data rows disagree with the header about
// cell count is passed through unchanged with a warning; it never aborts the
// document.
func AnnotateTables(text string) (string, []Warning) {
	lines := strings.Split(text, "\n")

	var warnings []Warning

	idx := 0
	for idx < len(lines) {
		if !isTableRow(lines[idx]) || isSeparatorRow(lines[idx]) ||
			idx+1 >= len(lines) || !isSeparatorRow(lines[idx+1]) {
			idx++

			continue
		}

		// Data rows run until the first non-row line or a fresh separator.
		end := idx + 2
		for end < len(lines) && isTableRow(lines[end]) && !isSeparatorRow(lines[end]) {
			end++
		}

		if end == idx+2 {
			// Separator with no data rows: not a random table.
			idx = end

			continue
		}

		if warning := annotateBlock(lines, idx, end); warning != nil {
			warnings = append(warnings, *warning)
		}

		idx = end
	}

	return strings.Join(lines, "\n"), warnings
}

// annotateBlock rewrites the designated row of the table spanning
// lines[start:end] in place. start is the header row; data rows begin at
// start+2. Returns a warning instead when the block is malformed.
func annotateBlock(lines []string, start, end int) *Warning {
	width := len(cells(lines[start]))

	for row := start + 2; row < end; row++ {
		if got := len(cells(lines[row])); got != width {
			return &Warning{
				Line:   start + 1,
				Reason: fmt.Sprintf("malformed table: header has %d cells, row has %d", width, got),
			}
		}
	}

	designated := start + 2
	if isAnnotated(lines[designated]) {
		return nil
	}

	lines[designated] = selectRow(lines[designated], end-(start+2))

	return nil
}

// isTableRow reports whether a line is part of a pipe table. Leading
// whitespace is tolerated; the row must open with a pipe.
func isTableRow(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

// isSeparatorRow reports whether a line is a Markdown table separator: every
// cell consists only of dashes and optional alignment colons.
func isSeparatorRow(line string) bool {
	parts := cells(line)
	if len(parts) == 0 {
		return false
	}

	for _, cell := range parts {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			return false
		}

		cell = strings.TrimPrefix(cell, ":")
		cell = strings.TrimSuffix(cell, ":")

		if cell == "" || strings.Count(cell, "-") != len(cell) {
			return false
		}
	}

	return isTableRow(line)
}

// cells splits a table row into its cell contents, dropping the empty
// fragments outside the outer pipes. Cell text keeps its inner spacing.
func cells(line string) []string {
	parts := strings.Split(line, "|")

	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}

	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	return parts
}

// isAnnotated reports whether a data row already carries the selection
// markers, which is what makes AnnotateTables idempotent.
func isAnnotated(row string) bool {
	if strings.Contains(row, "dice: [[1d") {
		return true
	}

	parts := cells(row)
	if len(parts) == 0 {
		return false
	}

	return strings.HasPrefix(strings.TrimSpace(parts[len(parts)-1]), "**")
}

// selectRow rewrites a data row as the selected entry of a table with n data
// rows. Only the last cell changes; the rest of the row keeps its bytes.
func selectRow(row string, n int) string {
	// Locate the last cell's span in the raw line so the other cells keep
	// their exact spacing.
	trimmed := strings.TrimRight(row, " \t")
	closing := strings.HasSuffix(trimmed, "|")

	body := trimmed
	if closing {
		body = trimmed[:len(trimmed)-1]
	}

	opening := strings.LastIndexByte(body, '|')
	if opening < 0 {
		return row
	}

	content := strings.TrimSpace(body[opening+1:])
	rewritten := fmt.Sprintf("%s| **%s** `dice: [[1d%d]]`", body[:opening], content, n)

	if closing {
		rewritten += " |"
	}

	return rewritten
}
