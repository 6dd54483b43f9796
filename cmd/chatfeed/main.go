// Command chatfeed demonstrates shift mode: pressing 'o' prepends a page of
// older messages at the top of the history while the messages on screen stay
// exactly where they were. Navigation as in scrolldemo, 'q' quits.
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"vlist"
)

type message struct {
	seq    int
	author string
	body   string
}

const historyPage = 25

var (
	authorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	otherStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	metaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// makeMessages builds messages for sequence numbers [from, to).
func makeMessages(from, to int) []message {
	msgs := make([]message, 0, to-from)
	for i := from; i < to; i++ {
		author := "ada"
		if i%3 == 0 {
			author = "lin"
		}
		body := fmt.Sprintf("message %d", i)
		if i%5 == 0 {
			body += ": the deploy finished, but the canary is still warming up so keep an eye on the error budget for the next hour or so"
		}
		msgs = append(msgs, message{seq: i, author: author, body: body})
	}
	return msgs
}

type model struct {
	list   *vlist.ListModel[message]
	oldest int // lowest sequence number loaded so far
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "o":
			if m.oldest == 0 {
				return m, nil
			}
			from := max(m.oldest-historyPage, 0)
			older := makeMessages(from, m.oldest)
			m.oldest = from
			// Prepend: with shift mode on, the engine compensates the
			// scroll offset so the viewport stays anchored.
			m.list.SetItems(append(older, m.list.Items()...))
			return m, nil
		}
	case tea.WindowSizeMsg:
		msg.Height-- // status line
		m.list.Update(msg)
		return m, nil
	}
	_, cmd := m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	status := fmt.Sprintf(" %d messages loaded (oldest #%d) — 'o' loads older", m.list.Len(), m.oldest)
	return metaStyle.Render(status) + "\n" + m.list.View()
}

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "chatfeed needs a terminal")
		os.Exit(1)
	}

	const newest = 1000
	list := vlist.NewListModel(makeMessages(newest-historyPage, newest),
		func(msg message, _ int, width int) string {
			who := authorStyle
			if msg.author != "ada" {
				who = otherStyle
			}
			header := who.Render(msg.author) + metaStyle.Render(fmt.Sprintf(" #%d", msg.seq))
			return header + "\n" + msg.body
		},
		vlist.WithShift())

	m := model{list: list, oldest: newest - historyPage}
	list.Engine().ScrollTo(list.Engine().ScrollSize())

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}
