package embedding

import "github.com/pkg/errors"

// Model maps vocabulary words to fixed-width vectors. Words keep insertion
// order, which for trained models is descending corpus frequency.
type Model struct {
	Dim     int
	Words   []string
	Counts  []int
	Vectors [][]float32

	index map[string]int
}

func NewModel(dim int) *Model {
	return &Model{Dim: dim, index: make(map[string]int)}
}

// Add appends a word. A word may only be added once and vec must have Dim values.
func (m *Model) Add(word string, count int, vec []float32) error {
	if len(vec) != m.Dim {
		return errors.Errorf("vector for %q has %d values, want %d", word, len(vec), m.Dim)
	}
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if _, dup := m.index[word]; dup {
		return errors.Errorf("duplicate word %q", word)
	}
	m.index[word] = len(m.Words)
	m.Words = append(m.Words, word)
	m.Counts = append(m.Counts, count)
	m.Vectors = append(m.Vectors, vec)
	return nil
}

// Len returns the vocabulary size.
func (m *Model) Len() int { return len(m.Words) }

// Vector returns the vector of word.
func (m *Model) Vector(word string) ([]float32, bool) {
	i, ok := m.index[word]
	if !ok {
		return nil, false
	}
	return m.Vectors[i], true
}

// Contains reports whether word has a vector.
func (m *Model) Contains(word string) bool {
	_, ok := m.index[word]
	return ok
}
