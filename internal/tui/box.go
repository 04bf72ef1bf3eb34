package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const minBoxWidth = 24

// renderBox draws a thick-bordered block with a label centered on the top
// border, key hints centered on the bottom border, and centered content.
func renderBox(width int, title, footer string, lines []string) string {
	if width < minBoxWidth {
		width = minBoxWidth
	}
	inner := width - 2

	var b strings.Builder
	b.WriteString(borderLine("┏", "━", "┓", inner, title))
	b.WriteByte('\n')
	side := boxStyle.Render("┃")
	for _, line := range lines {
		b.WriteString(side)
		b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Center, line))
		b.WriteString(side)
		b.WriteByte('\n')
	}
	b.WriteString(borderLine("┗", "━", "┛", inner, footer))
	return b.String()
}

// borderLine fills a border row of the given inner width, embedding the label
// centered in the fill. The label keeps its own styling; an oversized label
// falls back to a plain fill.
func borderLine(left, fill, right string, inner int, label string) string {
	labelWidth := lipgloss.Width(label)
	if label == "" || labelWidth >= inner {
		return boxStyle.Render(left + strings.Repeat(fill, inner) + right)
	}
	lpad := (inner - labelWidth) / 2
	rpad := inner - labelWidth - lpad
	return boxStyle.Render(left+strings.Repeat(fill, lpad)) +
		label +
		boxStyle.Render(strings.Repeat(fill, rpad)+right)
}

// padToWidth pads a plain cell to the given display width.
func padToWidth(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
