package table

import (
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/hooktools/hookman/tui/theme"
)

// Builder provides a fluent interface for creating styled tables
type Builder struct {
	table         *ltable.Table
	theme         *theme.Theme
	bordered      bool
	alternateRows bool
}

// NewBuilder creates a new table builder
func NewBuilder() *Builder {
	return &Builder{
		table:         ltable.New(),
		theme:         theme.DefaultTheme,
		bordered:      true,
		alternateRows: true,
	}
}

// WithTheme sets the theme
func (b *Builder) WithTheme(t *theme.Theme) *Builder {
	b.theme = t
	return b
}

// WithBorder enables or disables the border
func (b *Builder) WithBorder(bordered bool) *Builder {
	b.bordered = bordered
	return b
}

// WithAlternateRows enables or disables alternating row colors
func (b *Builder) WithAlternateRows(alternate bool) *Builder {
	b.alternateRows = alternate
	return b
}

// WithHeaders sets the table headers
func (b *Builder) WithHeaders(headers ...string) *Builder {
	b.table = b.table.Headers(headers...)
	return b
}

// WithRows sets the table rows
func (b *Builder) WithRows(rows ...[]string) *Builder {
	for _, row := range rows {
		b.table = b.table.Row(row...)
	}
	return b
}

// WithWidth sets the table width
func (b *Builder) WithWidth(width int) *Builder {
	b.table = b.table.Width(width)
	return b
}

// Build creates the styled table
func (b *Builder) Build() *ltable.Table {
	t := b.theme

	if b.bordered {
		b.table = b.table.
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(t.Colors.Border))
	}

	b.table = b.table.StyleFunc(func(row, col int) lipgloss.Style {
		if row == 0 {
			return t.TableHeader
		}

		style := t.TableRow.Padding(0, 1)
		if b.alternateRows && t.UseAlternatingRows && row%2 == 0 {
			style = style.Background(t.Colors.VerySubtleBackground)
		}
		return style
	})

	return b.table
}

// SimpleTable creates a basic table with headers and rows
func SimpleTable(headers []string, rows [][]string) string {
	table := NewBuilder().
		WithHeaders(headers...).
		WithRows(rows...).
		Build()

	return table.String()
}
