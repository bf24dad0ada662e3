// ABOUTME: Aligned table rendering for CLI output
// ABOUTME: Pads by display width so wide runes do not break columns

package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table renders rows of data in aligned columns. Rows accumulate until
// Flush so column widths can fit the widest cell.
type Table struct {
	out     io.Writer
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(out io.Writer, headers ...string) *Table {
	return &Table{out: out, headers: headers}
}

// Row appends a row of values. The number of values should match the
// number of headers.
func (t *Table) Row(values ...any) {
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = fmt.Sprintf("%v", v)
	}
	t.rows = append(t.rows, row)
}

// Flush renders the headers and accumulated rows.
func (t *Table) Flush() error {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}

	lines := make([][]string, 0, len(t.rows)+1)
	lines = append(lines, t.headers)
	lines = append(lines, t.rows...)
	for _, cells := range lines {
		var b strings.Builder
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			if i < len(widths) {
				cell = runewidth.FillRight(cell, widths[i])
			}
			b.WriteString(cell)
		}
		if _, err := fmt.Fprintln(t.out, strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
