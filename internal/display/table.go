package display

import (
	"fmt"
	"strings"
)

// RowStyle selects how a table row is drawn.
type RowStyle int

const (
	RowPlain RowStyle = iota
	// RowPassed dims a boundary that is behind "now".
	RowPassed
	// RowCurrent draws the boundary in effect in green.
	RowCurrent
	// RowNext draws the upcoming boundary with the accent color.
	RowNext
)

// Table renders an aligned text table.
type Table struct {
	headers []string
	rows    [][]string
	styles  []RowStyle
}

// NewTable creates a new table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends a plain row.
func (t *Table) AddRow(values ...string) {
	t.AddStyledRow(RowPlain, values...)
}

// AddStyledRow appends a row drawn with style.
func (t *Table) AddStyledRow(style RowStyle, values ...string) {
	t.rows = append(t.rows, values)
	t.styles = append(t.styles, style)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render produces the table with a two-space indent. Column widths are
// measured before styling so escape codes do not break alignment.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if n := len([]rune(cell)); i < len(widths) && n > widths[i] {
				widths[i] = n
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("  " + Bold(formatRow(t.headers, widths)) + "\n")

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	sb.WriteString(Dim("  "+strings.Join(sep, "  ")) + "\n")

	for i, row := range t.rows {
		sb.WriteString("  " + styleRow(t.styles[i], formatRow(row, widths)) + "\n")
	}
	return sb.String()
}

func styleRow(style RowStyle, line string) string {
	switch style {
	case RowPassed:
		return Gray(line)
	case RowCurrent:
		return Green(line)
	case RowNext:
		return Accent(line)
	}
	return line
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = cell + strings.Repeat(" ", w-len([]rune(cell)))
	}
	return strings.Join(parts, "  ")
}

// Countdown renders "Asr in 2h 5m" with the name accented.
func Countdown(name, remaining string) string {
	return fmt.Sprintf("%s in %s", Accent(name), Bold(remaining))
}
