package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"corpus2vec/internal/domain"
	"corpus2vec/internal/service"
)

// QueryPort is the TUI-facing subset of the query service.
type QueryPort interface {
	Similar(words []string, topK int) ([]domain.Neighbor, error)
	Len() int
	Dim() int
}

// Model is the Bubble Tea model of the vector explorer.
type Model struct {
	service   QueryPort
	name      string
	topK      int
	input     textinput.Model
	viewport  viewport.Model
	results   []domain.Neighbor
	status    string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates an explorer over service; name labels the loaded model.
func New(service QueryPort, name string, topK int) Model {
	if topK <= 0 {
		topK = 10
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "word | a b (a - b) | a b c (a - b + c)"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		name:     name,
		topK:     topK,
		input:    ti,
		viewport: vp,
		status:   fmt.Sprintf("%d words, %d dimensions. Type a query.", service.Len(), service.Dim()),
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, spacer
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderResults())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			m.query(q)
			m.input.SetValue("")
			m.viewport.SetContent(m.renderResults())
			return m, nil
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) query(q string) {
	words := service.ParseQuery(q)
	res, err := m.service.Similar(words, m.topK)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.results = nil
		return
	}
	m.results = res
	m.cursor = 0
	m.lastQuery = describe(words)
	m.status = fmt.Sprintf("%d results for %s", len(res), m.lastQuery)
}

// describe renders the vector expression a query is evaluated as.
func describe(words []string) string {
	if len(words) > 3 {
		words = words[len(words)-3:]
	}
	switch len(words) {
	case 1:
		return words[0]
	case 2:
		return words[0] + " - " + words[1]
	default:
		return words[0] + " - " + words[1] + " + " + words[2]
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("corpus2vec explorer: " + m.name)
	results := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderResults() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	width := 0
	for _, r := range m.results {
		width = max(width, lipgloss.Width(r.Word))
	}
	lines := make([]string, len(m.results))
	for i, r := range m.results {
		line := fmt.Sprintf("%2d. %-*s  %+.4f  %s", i+1, width, r.Word, r.Score, bar(r.Score, 20))
		if i == m.cursor {
			line = highlightStyle.Render(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// bar draws a similarity in [-1, 1] as a run of blocks; negative scores draw nothing.
func bar(score float64, width int) string {
	n := int(score*float64(width) + 0.5)
	if n <= 0 {
		return ""
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n)
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
