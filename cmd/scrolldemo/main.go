// Command scrolldemo scrolls a 100k-entry log with uneven row heights.
// Navigation: j/k, ctrl+d/ctrl+u, pgup/pgdn, g/G, mouse wheel. 'c' centers
// a random entry via ScrollToIndex, 'q' quits.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"vlist"
)

type entry struct {
	seq   int
	level string
	text  string
}

var levelStyles = map[string]lipgloss.Style{
	"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

func makeEntries(n int) []entry {
	levels := []string{"INFO", "INFO", "INFO", "WARN", "ERROR"}
	entries := make([]entry, n)
	for i := range entries {
		text := fmt.Sprintf("request %d handled in %dms", i, i%500)
		if i%7 == 0 {
			// Longer entries wrap to multiple rows.
			text += " — " + strings.Repeat("retrying upstream call after transient failure; ", i%3+1)
		}
		entries[i] = entry{seq: i, level: levels[i%len(levels)], text: text}
	}
	return entries
}

type refreshMsg struct{}

type model struct {
	list  *vlist.ListModel[entry]
	width int
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "c":
			m.list.Engine().ScrollToIndex(rand.Intn(m.list.Len()), vlist.WithAlign(vlist.AlignCenter))
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		msg.Height-- // status line
		m.list.Update(msg)
		return m, nil
	}
	_, cmd := m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	e := m.list.Engine()
	state := "idle"
	if m.list.Scrolling() {
		state = "scrolling"
	}
	status := fmt.Sprintf(" %d–%d of %d  offset %.0f/%.0f  %s",
		e.FindStartIndex(), e.FindEndIndex(), m.list.Len(), e.ScrollOffset(), e.ScrollSize(), state)
	return dimStyle.Render(status) + "\n" + m.list.View()
}

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "scrolldemo needs a terminal")
		os.Exit(1)
	}

	list := vlist.NewListModel(makeEntries(100_000), func(e entry, _ int, width int) string {
		label := levelStyles[e.level].Render(fmt.Sprintf("%-5s", e.level))
		return label + " " + dimStyle.Render(fmt.Sprintf("#%06d", e.seq)) + " " + e.text
	}).Scrollbar()

	p := tea.NewProgram(model{list: list}, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Repaint when the quiescence timer flips the scrolling indicator off.
	list.Engine().OnScrollEnd(func() {
		p.Send(refreshMsg{})
	})

	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
