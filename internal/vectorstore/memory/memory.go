package memory

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"corpus2vec/internal/domain"
)

var (
	ErrInvalidDimension  = errors.New("invalid dimension")
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// Storage is an in-memory word index using brute-force cosine similarity.
// Vectors are L2-normalized on upsert; a word upserted twice is replaced.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	words     []string
	vectors   [][]float64
	index     map[string]int
}

func NewStorage() *Storage { return &Storage{index: map[string]int{}} }

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return ErrInvalidDimension
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.reset()
	return nil
}

func (s *Storage) Upsert(words []string, vectors [][]float64) error {
	if len(words) != len(vectors) {
		return errors.Errorf("words and vectors length mismatch: %d != %d", len(words), len(vectors))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range vectors {
		if len(v) != s.dimension {
			return errors.Wrapf(ErrDimensionMismatch, "word %q has %d components, want %d", words[i], len(v), s.dimension)
		}
	}
	for i, w := range words {
		vec := normalized(vectors[i])
		if j, ok := s.index[w]; ok {
			s.vectors[j] = vec
			continue
		}
		s.index[w] = len(s.words)
		s.words = append(s.words, w)
		s.vectors = append(s.vectors, vec)
	}
	return nil
}

// Search returns up to topK words closest to vector, skipping exclude.
// Equal scores are ordered by word.
func (s *Storage) Search(vector []float64, topK int, exclude ...string) ([]domain.Neighbor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(vector) != s.dimension {
		return nil, errors.Wrapf(ErrDimensionMismatch, "query has %d components, want %d", len(vector), s.dimension)
	}
	if topK <= 0 {
		topK = 10
	}
	skip := make(map[string]struct{}, len(exclude))
	for _, w := range exclude {
		skip[w] = struct{}{}
	}
	q := normalized(vector)

	results := make([]domain.Neighbor, 0, len(s.words))
	for i, w := range s.words {
		if _, ok := skip[w]; ok {
			continue
		}
		results = append(results, domain.Neighbor{Word: w, Score: floats.Dot(s.vectors[i], q)})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Word < results[j].Word
	})
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

func (s *Storage) reset() {
	s.words = nil
	s.vectors = nil
	s.index = map[string]int{}
}

// normalized returns a unit-length copy of v; the zero vector stays zero.
func normalized(v []float64) []float64 {
	out := append([]float64(nil), v...)
	if n := floats.Norm(out, 2); n > 0 {
		floats.Scale(1/n, out)
	}
	return out
}
