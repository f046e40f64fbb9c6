package cli

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows. The first
// column is left-aligned and the rest right-aligned.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	for _, row := range t.Rows {
		numCols = max(numCols, len(row))
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}
	line := func(cells []string, style lipgloss.Style, rightAlign bool) {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if rightAlign && i > 0 {
				b.WriteString(style.Render(" " + pad + cell + " "))
			} else {
				b.WriteString(style.Render(" " + cell + pad + " "))
			}
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")
	if len(t.Headers) > 0 {
		line(t.Headers, headerStyle, false)
		rule("├", "┼", "┤")
	}
	for _, row := range t.Rows {
		line(row, valueStyle, true)
	}
	rule("╰", "┴", "╯")

	return b.String()
}

// RenderOutcome colors a SUCCESS/FAILURE outcome.
func RenderOutcome(outcome string) string {
	if outcome == "SUCCESS" {
		return successStyle.Render(outcome)
	}
	return errorStyle.Render(outcome)
}

// RenderLevel colors a message level.
func RenderLevel(level string) string {
	if level == "CRITICAL" {
		return errorStyle.Render(level)
	}
	return warnStyle.Render(level)
}

// RenderMuted renders secondary text such as share links.
func RenderMuted(s string) string {
	return mutedStyle.Render(s)
}

// FlattenOutput splits a decoded JSON object into a key/value summary
// table and one table per array of objects. Nested objects are flattened
// with dotted keys.
func FlattenOutput(v any) []Table {
	obj, ok := v.(map[string]any)
	if !ok {
		return []Table{{Headers: []string{"Value"}, Rows: [][]string{{FormatValue(v)}}}}
	}

	summary := Table{Headers: []string{"Field", "Value"}}
	var nested []Table
	flatten("", obj, &summary, &nested)

	tables := make([]Table, 0, 1+len(nested))
	if len(summary.Rows) > 0 {
		tables = append(tables, summary)
	}
	return append(tables, nested...)
}

func flatten(prefix string, obj map[string]any, summary *Table, nested *[]Table) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch x := obj[k].(type) {
		case map[string]any:
			flatten(key, x, summary, nested)
		case []any:
			if rows, ok := objectRows(x); ok {
				rows.Title = Humanize(key)
				*nested = append(*nested, rows)
				continue
			}
			summary.Rows = append(summary.Rows, []string{Humanize(key), FormatValue(x)})
		default:
			summary.Rows = append(summary.Rows, []string{Humanize(key), FormatValue(x)})
		}
	}
}

// objectRows renders an array of objects as a table whose columns follow
// the key order of the first element, sorted.
func objectRows(arr []any) (Table, bool) {
	if len(arr) == 0 {
		return Table{}, false
	}
	first, ok := arr[0].(map[string]any)
	if !ok {
		return Table{}, false
	}
	cols := make([]string, 0, len(first))
	for k := range first {
		cols = append(cols, k)
	}
	slices.Sort(cols)

	t := Table{Headers: make([]string, len(cols))}
	for i, c := range cols {
		t.Headers[i] = Humanize(c)
	}
	for _, e := range arr {
		m, ok := e.(map[string]any)
		if !ok {
			return Table{}, false
		}
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = FormatValue(m[c])
		}
		t.Rows = append(t.Rows, row)
	}
	return t, true
}
