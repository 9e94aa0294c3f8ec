package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/solterra/towny-catalog/internal/format/text"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title        *lipgloss.Style
	Cell         *lipgloss.Style
	EmptyCell    *lipgloss.Style
	ControlCell  *lipgloss.Style
	SelectedCell *lipgloss.Style
	Detail       *lipgloss.Style
	DetailTitle  *lipgloss.Style
	Chat         *lipgloss.Style
	Error        *lipgloss.Style
	Info         *lipgloss.Style
	Header       *lipgloss.Style
	Footer       *lipgloss.Style
	Prompt       *lipgloss.Style
	PromptHint   *lipgloss.Style
	Cursor       *lipgloss.Style
}

var defaultStyles = Styles{
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("178")).Bold(true),
	),
	Cell: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	EmptyCell: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	ControlCell: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	SelectedCell: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Detail: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	DetailTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Chat: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Prompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	PromptHint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
}

// palette maps chat colours onto the 256-colour terminal palette.
var palette = map[text.Color]lipgloss.Color{
	text.White:     lipgloss.Color("255"),
	text.Gray:      lipgloss.Color("248"),
	text.DarkGray:  lipgloss.Color("240"),
	text.Gold:      lipgloss.Color("178"),
	text.Yellow:    lipgloss.Color("227"),
	text.Green:     lipgloss.Color("83"),
	text.DarkGreen: lipgloss.Color("28"),
	text.Red:       lipgloss.Color("203"),
	text.Aqua:      lipgloss.Color("87"),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Color returns the terminal colour for a chat colour, white when unknown.
func Color(c text.Color) lipgloss.Color {
	if v, ok := palette[c]; ok {
		return v
	}
	return palette[text.White]
}

// Span renders one chat span with its colour and emphasis.
func Span(s text.Span) string {
	style := lipgloss.NewStyle().Foreground(Color(s.Color)).Bold(s.Bold).Italic(s.Italic)
	return style.Render(s.Text)
}

// Line renders a chat line span by span.
func Line(l text.Line) string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(Span(s))
	}
	return b.String()
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
