package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Table formats rows into aligned columns.
type Table struct {
	headers   []string
	rows      [][]string
	padding   int
	maxWidths map[int]int // Maximum width per column index (0 = no limit)
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers:   headers,
		padding:   2,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth sets a maximum width for a specific column.
// Text longer than this will be wrapped to multiple lines.
func (t *Table) SetColumnMaxWidth(colIndex, maxWidth int) {
	t.maxWidths[colIndex] = maxWidth
}

// FitLastColumn limits the last column so rows fit a terminal of the given
// width. Widths below 40 are ignored.
func (t *Table) FitLastColumn(termWidth int) {
	if termWidth < 40 || len(t.headers) == 0 {
		return
	}
	last := len(t.headers) - 1
	used := 0
	for i := 0; i < last; i++ {
		used += t.naturalWidth(i) + t.padding
	}
	if avail := termWidth - used; avail >= 20 {
		t.maxWidths[last] = avail
	}
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row ...string) {
	normalised := make([]string, len(t.headers))
	copy(normalised, row)
	t.rows = append(t.rows, normalised)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Fprint writes the rendered table to w.
func (t *Table) Fprint(w io.Writer) {
	fmt.Fprint(w, t.Render())
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	wrapped := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		wrapped[r] = make([][]string, len(row))
		for c, cell := range row {
			if maxWidth := t.maxWidths[c]; maxWidth > 0 {
				wrapped[r][c] = wrapText(cell, maxWidth)
			} else {
				wrapped[r][c] = []string{cell}
			}
		}
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = width(h)
	}
	for _, row := range wrapped {
		for c, lines := range row {
			for _, line := range lines {
				widths[c] = max(widths[c], width(line))
			}
		}
	}

	sep := strings.Repeat(" ", t.padding)
	var sb strings.Builder
	writeLine := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = padRight(cell, widths[i])
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, sep), " "))
		sb.WriteByte('\n')
	}

	writeLine(t.headers)
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	writeLine(rule)

	for _, row := range wrapped {
		lines := 1
		for _, cell := range row {
			lines = max(lines, len(cell))
		}
		for l := 0; l < lines; l++ {
			cells := make([]string, len(t.headers))
			for c := range t.headers {
				if l < len(row[c]) {
					cells[c] = row[c][l]
				}
			}
			writeLine(cells)
		}
	}
	return sb.String()
}

func (t *Table) naturalWidth(col int) int {
	w := width(t.headers[col])
	for _, row := range t.rows {
		w = max(w, width(row[col]))
	}
	return w
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) { // #nosec G115 -- file descriptors fit in int
		return 0
	}
	cols, _, err := term.GetSize(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
	if err != nil {
		return 0
	}
	return cols
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

// padRight pads s with spaces to the given display width.
func padRight(s string, w int) string {
	if n := width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

// wrapText wraps text to fit within the specified width, breaking at word boundaries.
func wrapText(text string, w int) []string {
	if w <= 0 || width(text) <= w {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var (
		lines   []string
		current string
	)
	for _, word := range words {
		// Split words that cannot fit on any line.
		for width(word) > w {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			runes := []rune(word)
			lines = append(lines, string(runes[:w]))
			word = string(runes[w:])
		}

		switch {
		case current == "":
			current = word
		case width(current)+1+width(word) <= w:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
