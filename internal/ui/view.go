package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/solterra/towny-catalog/internal/menu"
	"github.com/solterra/towny-catalog/internal/theme"
)

const (
	defaultCellWidth = 12
	minCellWidth     = 3
	maxCellWidth     = 18
	cellPadding      = 2
	chatHistory      = 8
	// gridTop is the row of the first grid line: header then title.
	gridTop = 2

	emptyCellGlyph = "·"
	footerHint     = "←↑↓→ move · enter click · [ ] page · b back · / command · tab complete · esc close · q quit"
	idleHint       = "No menu open. Press enter to browse plots for sale, or / for commands."
	promptHint     = "press / to type a command"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text already carries ANSI styling; truncate without restyling
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.viewer == nil {
		return ""
	}
	top := make([]styledLine, 0, 20)
	top = append(top, styledLine{text: m.header(), style: styles.Header})

	session, grid := m.viewer.Menu()
	if session != nil && grid != nil {
		top = append(top, styledLine{text: theme.Line(grid.Title), raw: true})
		top = append(top, m.gridLines(grid)...)
		if detail := m.detailLines(grid); len(detail) > 0 {
			top = append(top, styledLine{})
			top = append(top, detail...)
		}
	} else {
		top = append(top, styledLine{text: idleHint, style: styles.Info})
	}

	bottom := make([]styledLine, 0, 6)
	if info := m.currentInfo(); info != "" {
		bottom = append(bottom, styledLine{text: info, style: styles.Info})
	}
	if warn, msg := m.hasBackendIssue(); warn {
		bottom = append(bottom, styledLine{text: "Registry: " + msg, style: styles.Error})
	}
	if m.showFooter {
		bottom = append(bottom, styledLine{text: footerHint, style: styles.Footer})
	}
	if m.errMsg != "" {
		bottom = append(bottom, styledLine{text: "Error: " + m.errMsg, style: styles.Error})
	}
	bottom = append(bottom, m.promptLine())

	chat := m.chatLines(m.chatBudget(len(top), len(bottom)))
	lines := make([]styledLine, 0, len(top)+len(chat)+len(bottom)+1)
	lines = append(lines, top...)
	if len(chat) > 0 {
		lines = append(lines, styledLine{})
		lines = append(lines, chat...)
	}
	lines = append(lines, bottom...)
	lines = limitHeight(lines, m.height, m.width)
	return renderLines(applyWidth(lines, m.width))
}

func (m *Model) header() string {
	name := m.viewer.Name()
	loc, teleports := m.viewer.Position()
	if teleports == 0 {
		return name
	}
	return fmt.Sprintf("%s @ %s", name, loc)
}

// cellWidth returns the label width of one grid cell for the current
// viewport.
func (m *Model) cellWidth() int {
	if m.width <= 0 {
		return defaultCellWidth
	}
	w := m.width/menu.Columns - cellPadding
	if w < minCellWidth {
		return minCellWidth
	}
	if w > maxCellWidth {
		return maxCellWidth
	}
	return w
}

func (m *Model) gridLines(grid *menu.Grid) []styledLine {
	width := m.cellWidth()
	lines := make([]styledLine, 0, menu.Rows)
	for row := 0; row < menu.Rows; row++ {
		var b strings.Builder
		for col := 0; col < menu.Columns; col++ {
			slot := row*menu.Columns + col
			b.WriteString(m.renderCell(grid.At(slot), slot, width))
		}
		lines = append(lines, styledLine{text: b.String(), raw: true})
	}
	return lines
}

func (m *Model) renderCell(tile *menu.Tile, slot, width int) string {
	label := emptyCellGlyph
	style := styles.EmptyCell
	if tile != nil {
		label = tile.Label()
		style = styles.Cell
		if tile.Purpose != menu.PurposeEntity {
			style = styles.ControlCell
		}
	}
	if slot == m.cursor.Slot {
		style = styles.SelectedCell
	}
	label = fitCell(label, width)
	text := " " + label + " "
	if style == nil {
		return text
	}
	return style.Render(text)
}

// fitCell truncates or pads label to exactly width columns.
func fitCell(label string, width int) string {
	if lipgloss.Width(label) > width {
		label = truncate.StringWithTail(label, uint(width), "…")
	}
	if pad := width - lipgloss.Width(label); pad > 0 {
		label += strings.Repeat(" ", pad)
	}
	return label
}

func (m *Model) detailLines(grid *menu.Grid) []styledLine {
	tile := grid.At(m.cursor.Slot)
	if tile == nil {
		return nil
	}
	title := fmt.Sprintf("[%02d] ", m.cursor.Slot)
	if styles.DetailTitle != nil {
		title = styles.DetailTitle.Render(title)
	}
	lines := []styledLine{{text: title + theme.Line(tile.Name), raw: true}}
	for _, lore := range tile.Lore {
		lines = append(lines, styledLine{text: "     " + theme.Line(lore), raw: true})
	}
	return lines
}

func (m *Model) chatBudget(used, reserved int) int {
	if m.height <= 0 {
		return chatHistory
	}
	remain := m.height - used - reserved - 1
	if remain < 0 {
		return 0
	}
	if remain > chatHistory {
		return chatHistory
	}
	return remain
}

func (m *Model) chatLines(limit int) []styledLine {
	if limit <= 0 {
		return nil
	}
	chat := m.viewer.Chat()
	if len(chat) > limit {
		chat = chat[len(chat)-limit:]
	}
	lines := make([]styledLine, 0, len(chat))
	for _, line := range chat {
		lines = append(lines, styledLine{text: theme.Line(line), raw: true})
	}
	return lines
}

func (m *Model) promptLine() styledLine {
	if m.mode == ModePrompt {
		return styledLine{text: m.prompt.View(), raw: true}
	}
	if m.pending > 0 {
		return styledLine{text: "running command…", style: styles.PromptHint}
	}
	return styledLine{text: promptHint, style: styles.PromptHint}
}

// handleMouseMsg clicks the grid cell under a left button press.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if ev.Action != tea.MouseActionPress || ev.Button != tea.MouseButtonLeft {
		return nil
	}
	slot, ok := m.slotAt(ev.X, ev.Y)
	if !ok {
		return nil
	}
	m.cursor.Set(slot)
	m.clickSlot(slot)
	return nil
}

// slotAt maps a screen position onto a grid slot of the open menu.
func (m *Model) slotAt(x, y int) (int, bool) {
	if session, _ := m.viewer.Menu(); session == nil {
		return 0, false
	}
	row := y - gridTop
	col := x / (m.cellWidth() + cellPadding)
	if row < 0 || row >= menu.Rows || x < 0 || col >= menu.Columns {
		return 0, false
	}
	return row*menu.Columns + col, true
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if !line.raw && line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
