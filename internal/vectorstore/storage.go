package vectorstore

import "corpus2vec/internal/domain"

// Storage holds word vectors and answers nearest-neighbour queries.
type Storage interface {
	Init(dimension int) error
	Upsert(words []string, vectors [][]float64) error
	Search(vector []float64, topK int, exclude ...string) ([]domain.Neighbor, error)
	Clear() error
}
