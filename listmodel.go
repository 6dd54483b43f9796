package vlist

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// wheelStep is how many rows one mouse wheel notch scrolls.
const wheelStep = 3

// ListModel is a Bubble Tea host for the engine: a model that renders only
// the visible window of a large item slice. It owns the boundary contract —
// window resizes become viewport reports, rendered row heights become item
// size reports, key and wheel input becomes scroll requests — and leaves all
// geometry to the Engine.
//
// The render callback maps an item to its (possibly multi-line, possibly
// styled) row content for the given content width. Rows may have any height;
// the model measures what the callback returns.
type ListModel[T any] struct {
	engine *Engine
	items  []T
	render func(item T, index int, width int) string

	width  int
	height int

	nowrap    bool
	scrollbar bool
	track     lipgloss.Style
	thumb     lipgloss.Style
}

// NewListModel creates a list model over items. Engine options (overscan,
// size hint, shift mode, ...) pass straight through.
func NewListModel[T any](items []T, render func(item T, index int, width int) string, opts ...Option) *ListModel[T] {
	return &ListModel[T]{
		engine: New(len(items), opts...),
		items:  items,
		render: render,
		track:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		thumb:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	}
}

// Scrollbar enables the scrollbar column.
func (m *ListModel[T]) Scrollbar() *ListModel[T] {
	m.scrollbar = true
	return m
}

// NoWrap truncates overlong lines width-aware instead of wrapping them.
// Truncation applies to the callback's raw output, so it expects unstyled
// row content.
func (m *ListModel[T]) NoWrap() *ListModel[T] {
	m.nowrap = true
	return m
}

// Engine returns the underlying engine for imperative control.
func (m *ListModel[T]) Engine() *Engine {
	return m.engine
}

// Items returns the current items.
func (m *ListModel[T]) Items() []T {
	return m.items
}

// Len returns the total item count.
func (m *ListModel[T]) Len() int {
	return len(m.items)
}

// At returns the item at index i, or the zero value if out of bounds.
func (m *ListModel[T]) At(i int) T {
	if i < 0 || i >= len(m.items) {
		var zero T
		return zero
	}
	return m.items[i]
}

// SetItems replaces the item slice. In shift mode the engine treats the
// count change as happening at the logical start and keeps the viewport
// anchored; otherwise the offset is clamped into the new extent.
func (m *ListModel[T]) SetItems(items []T) {
	m.items = items
	m.engine.SetItemCount(len(items))
}

// Scrolling reports whether a scroll is in flight.
func (m *ListModel[T]) Scrolling() bool {
	return m.engine.IsScrolling()
}

// Init implements tea.Model.
func (m *ListModel[T]) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *ListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.engine.ReportViewportSize(float64(msg.Height))

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.engine.ScrollBy(-wheelStep)
		case tea.MouseButtonWheelDown:
			m.engine.ScrollBy(wheelStep)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.engine.ScrollBy(-1)
		case "down", "j":
			m.engine.ScrollBy(1)
		case "ctrl+u":
			m.engine.ScrollBy(-float64(m.height) / 2)
		case "ctrl+d":
			m.engine.ScrollBy(float64(m.height) / 2)
		case "pgup":
			m.engine.ScrollBy(-float64(m.height))
		case "pgdown":
			m.engine.ScrollBy(float64(m.height))
		case "home", "g":
			m.engine.ScrollTo(0)
		case "end", "G":
			m.engine.ScrollTo(m.engine.ScrollSize())
		}
	}
	return m, nil
}

// View implements tea.Model. Rendering a frame measures every item in the
// visible window and reports the heights back into the engine; since new
// measurements can move the window, the measure pass repeats until the range
// settles (bounded, the window only shifts by measurement deltas).
func (m *ListModel[T]) View() string {
	if m.width <= 0 || m.height <= 0 || len(m.items) == 0 {
		return ""
	}

	contentWidth := m.width
	if m.scrollbar {
		contentWidth--
	}
	if contentWidth <= 0 {
		return ""
	}

	rows := make(map[int]string)
	r := m.engine.VisibleRange()
	for pass := 0; pass < 3; pass++ {
		for i := r.Start; i <= r.End; i++ {
			row := m.renderRow(i, contentWidth)
			rows[i] = row
			m.engine.ReportItemSize(i, float64(lipgloss.Height(row)))
		}
		next := m.engine.VisibleRange()
		if next == r {
			break
		}
		r = next
	}

	content := m.compose(rows, contentWidth)
	if !m.scrollbar {
		return content
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, content, m.renderScrollbar())
}

// renderRow produces the width-constrained row block for index i.
func (m *ListModel[T]) renderRow(i, width int) string {
	raw := m.render(m.items[i], i, width)
	if m.nowrap {
		lines := strings.Split(raw, "\n")
		for j, line := range lines {
			if runewidth.StringWidth(line) > width {
				line = runewidth.Truncate(line, width, "…")
			}
			lines[j] = runewidth.FillRight(line, width)
		}
		return strings.Join(lines, "\n")
	}
	return lipgloss.NewStyle().Width(width).Render(raw)
}

// compose assembles the viewport: find the item under the scroll offset,
// drop the rows of it that are scrolled off the top, then stack rows until
// the viewport is full.
func (m *ListModel[T]) compose(rows map[int]string, width int) string {
	offset := m.engine.ScrollOffset()
	first := m.engine.Store().IndexAtOffset(offset)
	skip := int(offset - m.engine.GetItemOffset(first))

	blank := strings.Repeat(" ", width)
	out := make([]string, 0, m.height)
	for i := first; i < len(m.items) && len(out) < m.height; i++ {
		row, ok := rows[i]
		if !ok {
			row = m.renderRow(i, width)
		}
		lines := strings.Split(row, "\n")
		if i == first && skip > 0 {
			if skip >= len(lines) {
				continue
			}
			lines = lines[skip:]
		}
		for _, line := range lines {
			if len(out) == m.height {
				break
			}
			out = append(out, line)
		}
	}
	for len(out) < m.height {
		out = append(out, blank)
	}
	return strings.Join(out, "\n")
}

// renderScrollbar draws the track and proportional thumb column.
func (m *ListModel[T]) renderScrollbar() string {
	total := m.engine.ScrollSize()
	viewport := float64(m.height)
	if total <= viewport {
		return strings.Repeat(" \n", m.height-1) + " "
	}

	thumbSize := max(1, int(viewport*viewport/total))
	maxScroll := total - viewport
	thumbPos := int(float64(m.height-thumbSize) * m.engine.ScrollOffset() / maxScroll)

	var b strings.Builder
	for i := 0; i < m.height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= thumbPos && i < thumbPos+thumbSize {
			b.WriteString(m.thumb.Render("┃"))
		} else {
			b.WriteString(m.track.Render("│"))
		}
	}
	return b.String()
}
