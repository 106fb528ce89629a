package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpus2vec/internal/domain"
)

type fakePort struct {
	calls [][]string
	res   []domain.Neighbor
	err   error
}

func (f *fakePort) Similar(words []string, topK int) ([]domain.Neighbor, error) {
	f.calls = append(f.calls, words)
	return f.res, f.err
}

func (f *fakePort) Len() int { return 42 }
func (f *fakePort) Dim() int { return 100 }

func sized(t *testing.T, p *fakePort) Model {
	t.Helper()
	updated, _ := New(p, "MarkTwain", 5).Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func submit(m Model, query string) Model {
	m.input.SetValue(query)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model)
}

func TestQueryShowsResults(t *testing.T) {
	p := &fakePort{res: []domain.Neighbor{{Word: "queen", Score: 0.9}, {Word: "prince", Score: 0.5}}}
	m := sized(t, p)
	assert.Contains(t, m.status, "42 words")

	m = submit(m, "  king man  woman ")
	require.Len(t, p.calls, 1)
	assert.Equal(t, []string{"king", "man", "woman"}, p.calls[0])
	assert.Equal(t, "king - man + woman", m.lastQuery)
	assert.Len(t, m.results, 2)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), "queen")
	assert.Contains(t, m.View(), "MarkTwain")
}

func TestQueryError(t *testing.T) {
	p := &fakePort{err: errors.New(`unknown word: "zzz"`)}
	m := submit(sized(t, p), "zzz")
	assert.Nil(t, m.results)
	assert.Contains(t, m.status, "Error: unknown word")
}

func TestBlankQueryIsIgnored(t *testing.T) {
	p := &fakePort{}
	submit(sized(t, p), "   ")
	assert.Empty(t, p.calls)
}

func TestCursorWraps(t *testing.T) {
	p := &fakePort{res: []domain.Neighbor{{Word: "a"}, {Word: "b"}, {Word: "c"}}}
	m := submit(sized(t, p), "x")

	up, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 2, up.(Model).cursor)
	down, _ := up.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, down.(Model).cursor)
}

func TestQuitKeys(t *testing.T) {
	m := sized(t, &fakePort{})
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc} {
		_, cmd := m.Update(tea.KeyMsg{Type: k})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}

func TestDescribe(t *testing.T) {
	tests := map[string][]string{
		"king":               {"king"},
		"king - man":         {"king", "man"},
		"king - man + woman": {"king", "man", "woman"},
		"b - c + d":          {"a", "b", "c", "d"},
	}
	for want, words := range tests {
		assert.Equal(t, want, describe(words))
	}
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", bar(-0.5, 10))
	assert.Equal(t, "█████", bar(0.5, 10))
	assert.Equal(t, "██████████", bar(1.5, 10))
}
