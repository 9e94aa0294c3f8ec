// Package text describes coloured chat and tooltip lines independently of how
// a host draws them.
package text

import "strings"

// Color names a chat colour. Hosts map these onto their own palette.
type Color string

const (
	White     Color = "white"
	Gray      Color = "gray"
	DarkGray  Color = "dark_gray"
	Gold      Color = "gold"
	Yellow    Color = "yellow"
	Green     Color = "green"
	DarkGreen Color = "dark_green"
	Red       Color = "red"
	Aqua      Color = "aqua"
)

// Span is a run of text in one colour.
type Span struct {
	Text   string
	Color  Color
	Bold   bool
	Italic bool
}

// Line is a sequence of spans rendered on one row.
type Line []Span

// S builds a span.
func S(c Color, s string) Span {
	return Span{Text: s, Color: c}
}

// Of builds a line from spans.
func Of(spans ...Span) Line {
	return Line(spans)
}

// Colored is a single-span line.
func Colored(c Color, s string) Line {
	return Line{S(c, s)}
}

// Empty is a blank line.
func Empty() Line {
	return Line{}
}

// Labeled renders "label: value" with a gray label.
func Labeled(label string, c Color, value string) Line {
	return Line{S(Gray, label+": "), S(c, value)}
}

// Bold returns a copy of the line with every span bold.
func (l Line) Bold() Line {
	out := make(Line, len(l))
	for i, s := range l {
		s.Bold = true
		out[i] = s
	}
	return out
}

// Italic returns a copy of the line with every span italic.
func (l Line) Italic() Line {
	out := make(Line, len(l))
	for i, s := range l {
		s.Italic = true
		out[i] = s
	}
	return out
}

// Append returns a new line with spans appended.
func (l Line) Append(spans ...Span) Line {
	out := make(Line, 0, len(l)+len(spans))
	out = append(out, l...)
	return append(out, spans...)
}

// String is the uncoloured text.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Strings flattens lines to plain text.
func Strings(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}
