package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	label lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
		label: NewStyle(h).Width(18),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// Title renders a section header.
func Title(s string) string { return styles.title.Render(s) }

// Success renders a completed status line.
func Success(s string) string { return styles.ok.Render(s) }

// Error renders a failure line.
func Error(s string) string { return styles.err.Render(s) }

// Warning renders a warning line.
func Warning(s string) string { return styles.warn.Render(s) }

// Help renders secondary text such as hints and footers.
func Help(s string) string { return styles.help.Render(s) }

// Field renders a "label value" pair with the label padded to a fixed column.
func Field(label, value string) string {
	return styles.label.Render(label) + value
}
