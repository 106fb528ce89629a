package service

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/floats"

	"corpus2vec/internal/domain"
	"corpus2vec/internal/embedding"
	"corpus2vec/internal/vectorstore"
	"corpus2vec/internal/vectorstore/memory"
)

var (
	// ErrUnknownWord means a query word has no vector in the loaded model.
	ErrUnknownWord = errors.New("unknown word")
	// ErrNoWords means the query was empty.
	ErrNoWords = errors.New("no query words")
)

// QueryService answers similarity and analogy questions over one model.
type QueryService struct {
	model *embedding.Model
	store vectorstore.Storage
	lower cases.Caser
}

// NewQueryService indexes every word of model into store.
func NewQueryService(model *embedding.Model, store vectorstore.Storage) (*QueryService, error) {
	if err := store.Init(model.Dim); err != nil {
		return nil, err
	}
	vectors := make([][]float64, model.Len())
	for i, v := range model.Vectors {
		vectors[i] = unit(v)
	}
	if err := store.Upsert(model.Words, vectors); err != nil {
		return nil, errors.Wrap(err, "index model")
	}
	return &QueryService{model: model, store: store, lower: cases.Lower(language.English)}, nil
}

// LoadQueryService reads a binary model file into an in-memory index.
func LoadQueryService(path string) (*QueryService, error) {
	m, err := embedding.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewQueryService(m, memory.NewStorage())
}

func (q *QueryService) Len() int { return q.model.Len() }
func (q *QueryService) Dim() int { return q.model.Dim }

// Similar ranks the model's words against a query built from words:
//
//	one word:    w0
//	two words:   w0 - w1
//	three words: w0 - w1 + w2
//
// Longer queries use their last three words. A word missing from the model
// is retried in lower case. Query words never appear in the answer.
func (q *QueryService) Similar(words []string, topK int) ([]domain.Neighbor, error) {
	if len(words) == 0 {
		return nil, ErrNoWords
	}
	if len(words) > 3 {
		words = words[len(words)-3:]
	}
	resolved := make([]string, len(words))
	query := make([]float64, q.model.Dim)
	for i, w := range words {
		word, v, ok := q.lookup(w)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownWord, "%q", w)
		}
		resolved[i] = word
		if i == 1 {
			floats.Sub(query, unit(v))
		} else {
			floats.Add(query, unit(v))
		}
	}
	return q.store.Search(query, topK, resolved...)
}

func (q *QueryService) lookup(w string) (string, []float32, bool) {
	if v, ok := q.model.Vector(w); ok {
		return w, v, true
	}
	lw := q.lower.String(w)
	v, ok := q.model.Vector(lw)
	return lw, v, ok
}

// ParseQuery splits a free-form query into words.
func ParseQuery(s string) []string { return strings.Fields(s) }

func unit(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	if n := floats.Norm(out, 2); n > 0 {
		floats.Scale(1/n, out)
	}
	return out
}
