package memory

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpus2vec/internal/domain"
)

func seeded(t *testing.T) *Storage {
	s := NewStorage()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]string{"east", "north", "northeast", "west", "up"},
		[][]float64{{1, 0}, {0, 1}, {3, 3}, {-2, 0}, {0, 5}},
	))
	return s
}

func TestSearchOrdersByCosine(t *testing.T) {
	s := seeded(t)
	got, err := s.Search([]float64{10, 0}, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "east", got[0].Word)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
	assert.Equal(t, "northeast", got[1].Word)
	assert.InDelta(t, 0.7071, got[1].Score, 1e-4)
	// north and up tie at 0, broken by word
	assert.Equal(t, "north", got[2].Word)
}

func TestSearchExcludes(t *testing.T) {
	s := seeded(t)
	got, err := s.Search([]float64{0, 1}, 2, "north", "up")
	require.NoError(t, err)
	assert.Equal(t, []string{"northeast", "east"}, words(got))
}

func TestSearchTopKBounds(t *testing.T) {
	s := seeded(t)
	got, err := s.Search([]float64{1, 1}, 100)
	require.NoError(t, err)
	assert.Len(t, got, 5)

	got, err = s.Search([]float64{1, 1}, 0)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestUpsertReplaces(t *testing.T) {
	s := seeded(t)
	require.NoError(t, s.Upsert([]string{"west"}, [][]float64{{1, 0.01}}))

	all, err := s.Search([]float64{1, 0}, 100)
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.ElementsMatch(t, []string{"east", "west"}, words(all[:2]))

	got, err := s.Search([]float64{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "north", got[0].Word)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9, "vectors are stored unit length")
}

func TestErrors(t *testing.T) {
	s := NewStorage()
	assert.True(t, errors.Is(s.Init(0), ErrInvalidDimension))
	require.NoError(t, s.Init(3))

	err := s.Upsert([]string{"a"}, [][]float64{{1, 2}})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	assert.Error(t, s.Upsert([]string{"a", "b"}, [][]float64{{1, 2, 3}}))

	_, err = s.Search([]float64{1}, 1)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestClear(t *testing.T) {
	s := seeded(t)
	require.NoError(t, s.Clear())
	got, err := s.Search([]float64{1, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func words(ns []domain.Neighbor) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Word
	}
	return out
}
