package cli

import (
	"strings"
	"unicode/utf8"
)

// Table renders rows as aligned columns. Cell widths ignore ANSI escape
// sequences so coloured previews line up with plain text.
type Table struct {
	headers    []string
	rows       [][]string
	padding    int
	rightAlign map[int]bool
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:    headers,
		rows:       make([][]string, 0),
		padding:    2,
		rightAlign: make(map[int]bool),
	}
}

// AlignRight right-aligns the column at colIndex.
func (t *Table) AlignRight(colIndex int) {
	t.rightAlign[colIndex] = true
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	normalised := make([]string, len(t.headers))
	copy(normalised, row)
	t.rows = append(t.rows, normalised)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = displayWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}

	var sb strings.Builder
	t.writeLine(&sb, t.headers, widths)

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	t.writeLine(&sb, sep, widths)

	for _, row := range t.rows {
		t.writeLine(&sb, row, widths)
	}
	return sb.String()
}

func (t *Table) writeLine(sb *strings.Builder, cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if t.rightAlign[i] {
			parts[i] = padLeft(cell, widths[i])
		} else {
			parts[i] = padRight(cell, widths[i])
		}
	}
	line := strings.Join(parts, strings.Repeat(" ", t.padding))
	sb.WriteString(strings.TrimRight(line, " "))
	sb.WriteByte('\n')
}

// displayWidth counts the runes of s that are not part of an ANSI CSI
// escape sequence.
func displayWidth(s string) int {
	width := 0
	for i := 0; i < len(s); {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			i += 2
			for i < len(s) && (s[i] < 0x40 || s[i] > 0x7e) {
				i++
			}
			i++ // final byte
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		width++
	}
	return width
}

// padRight pads s with spaces on the right to reach width display columns.
func padRight(s string, width int) string {
	if w := displayWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// padLeft pads s with spaces on the left to reach width display columns.
func padLeft(s string, width int) string {
	if w := displayWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
