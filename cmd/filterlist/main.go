// Command filterlist fuzzy-filters 50k entries as you type, driving the
// engine through constant item-count changes. Typing edits the query,
// backspace deletes, esc clears, arrows/wheel scroll, ctrl+c quits.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"vlist"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func makeUniverse(n int) []string {
	verbs := []string{"build", "deploy", "fetch", "parse", "render", "encode", "migrate", "index"}
	nouns := []string{"server", "client", "worker", "queue", "cache", "ledger", "stream", "shard"}
	envs := []string{"prod", "staging", "dev", "canary"}
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s/%s-%s-%04d", envs[i%len(envs)], verbs[i%len(verbs)], nouns[(i/3)%len(nouns)], i)
	}
	return out
}

type model struct {
	universe []string
	input    string
	list     *vlist.ListModel[string]
}

func (m *model) refilter() {
	q := parseQuery(m.input)
	type scored struct {
		s     string
		score int
	}
	var matches []scored
	for _, cand := range m.universe {
		if score, ok := q.match(cand); ok {
			matches = append(matches, scored{s: cand, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	items := make([]string, len(matches))
	for i, sc := range matches {
		items[i] = sc.s
	}
	m.list.SetItems(items)
	m.list.Engine().ScrollTo(0)
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.input = ""
			m.refilter()
			return m, nil
		case "backspace":
			if m.input != "" {
				m.input = m.input[:len(m.input)-1]
				m.refilter()
			}
			return m, nil
		case "up", "down", "pgup", "pgdown", "home", "end", "ctrl+u", "ctrl+d":
			// Navigation goes to the list; everything printable is query.
		default:
			if msg.Type == tea.KeyRunes || msg.String() == " " {
				m.input += string(msg.Runes)
				m.refilter()
				return m, nil
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		msg.Height-- // prompt line
		m.list.Update(msg)
		return m, nil
	}
	_, cmd := m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	prompt := promptStyle.Render("> ") + m.input +
		countStyle.Render(fmt.Sprintf("   %d/%d", m.list.Len(), len(m.universe)))
	return prompt + "\n" + m.list.View()
}

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "filterlist needs a terminal")
		os.Exit(1)
	}

	universe := makeUniverse(50_000)
	list := vlist.NewListModel(universe, func(s string, _ int, _ int) string {
		return " " + s
	}, vlist.WithItemSizeHint(1)).NoWrap().Scrollbar()

	m := &model{universe: universe, list: list}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}
