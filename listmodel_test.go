package vlist

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

func testItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("item %d", i)
	}
	return items
}

func renderPlain(item string, _ int, _ int) string {
	return item
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestListModelView(t *testing.T) {
	m := NewListModel(testItems(100), renderPlain,
		WithItemSizeHint(1), WithClock(&manualClock{})).NoWrap()
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})

	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 10 {
		t.Fatalf("View() produced %d lines, want 10", len(lines))
	}
	for i, line := range lines {
		if got := runewidth.StringWidth(line); got != 20 {
			t.Errorf("line %d width = %d, want 20", i, got)
		}
		if !strings.HasPrefix(line, fmt.Sprintf("item %d ", i)) {
			t.Errorf("line %d = %q, want item %d", i, line, i)
		}
	}
}

func TestListModelMeasuresDuringView(t *testing.T) {
	// No size hint: items start at the default estimate and the first frame
	// has to measure its way to the real range.
	m := NewListModel(testItems(100), renderPlain, WithClock(&manualClock{})).NoWrap()
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})

	if got := m.Engine().GetItemSize(0); got != defaultItemSize {
		t.Fatalf("pre-render GetItemSize(0) = %v, want %v", got, defaultItemSize)
	}

	view := m.View()
	if got := len(strings.Split(view, "\n")); got != 10 {
		t.Fatalf("View() produced %d lines, want 10", got)
	}
	if !m.Engine().Store().ItemMeasured(0) {
		t.Error("item 0 not measured by View")
	}
	if got := m.Engine().GetItemSize(0); got != 1 {
		t.Errorf("GetItemSize(0) = %v, want 1", got)
	}
	// The measure pass settles on the real window: one-line rows mean the
	// strictly visible band is ten items, so the window must reach at least
	// index 9.
	if r := m.Engine().VisibleRange(); r.End < 9 {
		t.Errorf("VisibleRange() = %+v, want End >= 9", r)
	}
}

func TestListModelKeys(t *testing.T) {
	m := NewListModel(testItems(100), renderPlain,
		WithItemSizeHint(1), WithClock(&manualClock{})).NoWrap()
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})

	for _, tc := range []struct {
		name string
		msg  tea.KeyMsg
		want float64
	}{
		{"j", keyRune('j'), 1},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, 2},
		{"ctrl+d", tea.KeyMsg{Type: tea.KeyCtrlD}, 7},
		{"pgdown", tea.KeyMsg{Type: tea.KeyPgDown}, 17},
		{"G", keyRune('G'), 90}, // end clamps to total-viewport
		{"k", keyRune('k'), 89},
		{"g", keyRune('g'), 0},
		{"ctrl+u at top", tea.KeyMsg{Type: tea.KeyCtrlU}, 0},
	} {
		m.Update(tc.msg)
		if got := m.Engine().ScrollOffset(); got != tc.want {
			t.Errorf("%s: offset = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestListModelWheel(t *testing.T) {
	m := NewListModel(testItems(100), renderPlain,
		WithItemSizeHint(1), WithClock(&manualClock{})).NoWrap()
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	if got := m.Engine().ScrollOffset(); got != wheelStep {
		t.Errorf("offset after wheel down = %v, want %v", got, wheelStep)
	}
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	if got := m.Engine().ScrollOffset(); got != 0 {
		t.Errorf("offset after wheel up = %v, want 0", got)
	}
}

func TestListModelMultilineRows(t *testing.T) {
	render := func(item string, index int, _ int) string {
		return fmt.Sprintf("%d-0\n%d-1\n%d-2", index, index, index)
	}
	m := NewListModel(testItems(50), render, WithClock(&manualClock{})).NoWrap()
	m.Update(tea.WindowSizeMsg{Width: 10, Height: 4})

	// First frame measures the three-line rows.
	m.View()
	if got := m.Engine().GetItemSize(0); got != 3 {
		t.Fatalf("GetItemSize(0) = %v, want 3", got)
	}

	// One line down: the first row is partially scrolled off the top.
	m.Update(keyRune('j'))
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 4 {
		t.Fatalf("View() produced %d lines, want 4", len(lines))
	}
	if !strings.HasPrefix(lines[0], "0-1") {
		t.Errorf("top line = %q, want row 0 line 1", lines[0])
	}
	if !strings.HasPrefix(lines[3], "1-1") {
		t.Errorf("bottom line = %q, want row 1 line 1", lines[3])
	}
}

func TestListModelSetItems(t *testing.T) {
	m := NewListModel(testItems(100), renderPlain,
		WithItemSizeHint(1), WithClock(&manualClock{}))
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	m.Engine().ScrollTo(80)

	m.SetItems(testItems(20))
	if got := m.Len(); got != 20 {
		t.Errorf("Len() = %d, want 20", got)
	}
	if got := m.Engine().ItemCount(); got != 20 {
		t.Errorf("ItemCount() = %d, want 20", got)
	}
	if got := m.Engine().ScrollOffset(); got != 10 {
		t.Errorf("offset = %v, want 10 (clamped into new extent)", got)
	}

	if got := m.At(5); got != "item 5" {
		t.Errorf("At(5) = %q, want %q", got, "item 5")
	}
	if got := m.At(99); got != "" {
		t.Errorf("At(99) = %q, want zero value", got)
	}
}

func TestListModelScrollbar(t *testing.T) {
	m := NewListModel(testItems(100), renderPlain,
		WithItemSizeHint(1), WithClock(&manualClock{})).NoWrap().Scrollbar()
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	m.Update(keyRune('G'))

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 10 {
		t.Fatalf("View() produced %d lines, want 10", len(lines))
	}
	// At the very bottom the thumb occupies the last cell of the track.
	if !strings.Contains(lines[9], "┃") {
		t.Errorf("bottom line = %q, want thumb", lines[9])
	}
	if !strings.Contains(lines[0], "│") {
		t.Errorf("top line = %q, want track", lines[0])
	}
	// Content still shows the tail of the list next to the bar.
	if !strings.HasPrefix(lines[0], "item 90") {
		t.Errorf("top line = %q, want item 90", lines[0])
	}
}
