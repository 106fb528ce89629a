// Package word2vec trains skip-gram word vectors with negative sampling.
//
// Vocabulary admission goes through an embedding.TrimRule, but the training
// sentences are never filtered: every token keeps its position and owns an
// output (context) vector, so words that are refused a vector of their own
// still shape the vectors of the words around them.
package word2vec

import (
	"math"
	"math/rand"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"corpus2vec/internal/embedding"
)

// ErrEmptyVocabulary means no word survived the trim rule and the frequency floor.
var ErrEmptyVocabulary = errors.New("insufficient vocabulary: no word survived trimming")

const maxExp = 6.0

// Config holds the training hyper-parameters.
type Config struct {
	Dim      int
	Window   int
	Negative int
	Epochs   int
	Alpha    float64
	MinAlpha float64
	// Sample is the frequent-word subsampling threshold; <= 0 disables it.
	Sample   float64
	Seed     int64
	MinCount int
}

// Trainer is a single-goroutine, seed-deterministic skip-gram trainer.
type Trainer struct {
	cfg      Config
	logger   logrus.FieldLogger
	progress func(epoch, epochs int)
}

type Option func(*Trainer)

// WithLogger sets the logger used for per-epoch debug output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(t *Trainer) { t.logger = l }
}

// WithProgress registers a callback invoked after every finished epoch.
func WithProgress(fn func(epoch, epochs int)) Option {
	return func(t *Trainer) { t.progress = fn }
}

func New(cfg Config, opts ...Option) *Trainer {
	if cfg.MinCount < 1 {
		cfg.MinCount = 1
	}
	if cfg.Epochs < 1 {
		cfg.Epochs = 1
	}
	if cfg.Window < 1 {
		cfg.Window = 1
	}
	if cfg.MinAlpha > cfg.Alpha {
		cfg.MinAlpha = cfg.Alpha
	}
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	t := &Trainer{cfg: cfg, logger: l}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Trainer) Name() string { return "word2vec" }

// vocab indexes every distinct token; admitted tokens also get an input row.
type vocab struct {
	words  []string
	counts []int
	ids    map[string]int
	// row maps a token id to its input-vector row, -1 when not admitted.
	row   []int
	total int
}

func buildVocab(sentences [][]string) *vocab {
	v := &vocab{ids: make(map[string]int)}
	for _, sent := range sentences {
		for _, w := range sent {
			id, ok := v.ids[w]
			if !ok {
				id = len(v.words)
				v.ids[w] = id
				v.words = append(v.words, w)
				v.counts = append(v.counts, 0)
			}
			v.counts[id]++
			v.total++
		}
	}
	return v
}

// admit returns the admitted token ids ordered by descending count, ties in
// order of first occurrence, and fills v.row.
func (v *vocab) admit(rule embedding.TrimRule, minCount int) []int {
	var kept []int
	for id, w := range v.words {
		if embedding.Admit(rule, w, v.counts[id], minCount) {
			kept = append(kept, id)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return v.counts[kept[i]] > v.counts[kept[j]] })
	v.row = make([]int, len(v.words))
	for i := range v.row {
		v.row[i] = -1
	}
	for r, id := range kept {
		v.row[id] = r
	}
	return kept
}

// Train learns vectors for the admitted words of sentences.
func (t *Trainer) Train(sentences [][]string, rule embedding.TrimRule) (*embedding.Model, error) {
	cfg := t.cfg
	if cfg.Dim < 1 {
		return nil, errors.Errorf("word2vec: dimension must be positive, got %d", cfg.Dim)
	}
	v := buildVocab(sentences)
	kept := v.admit(rule, cfg.MinCount)
	t.logger.WithField("action", "word2vec_vocab").
		WithField("tokens", v.total).
		WithField("distinct", len(v.words)).
		WithField("kept", len(kept)).
		Debug("vocabulary trimmed")
	if len(kept) == 0 {
		return nil, ErrEmptyVocabulary
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	syn0 := make([][]float64, len(kept))
	for r := range syn0 {
		vec := make([]float64, cfg.Dim)
		for d := range vec {
			vec[d] = (rng.Float64() - 0.5) / float64(cfg.Dim)
		}
		syn0[r] = vec
	}
	syn1 := make([][]float64, len(v.words))
	for id := range syn1 {
		syn1[id] = make([]float64, cfg.Dim)
	}

	s := &state{
		cfg:   cfg,
		v:     v,
		rng:   rng,
		syn0:  syn0,
		syn1:  syn1,
		neg:   newUnigramTable(v.counts, 0.75),
		keep:  keepProbabilities(v.counts, v.total, cfg.Sample),
		neu1e: make([]float64, cfg.Dim),
		total: float64(cfg.Epochs) * float64(v.total),
	}
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		for _, sent := range sentences {
			s.trainSentence(sent)
		}
		t.logger.WithField("action", "word2vec_epoch").
			WithField("epoch", epoch).
			WithField("alpha", s.alpha()).
			Debug("epoch finished")
		if t.progress != nil {
			t.progress(epoch, cfg.Epochs)
		}
	}

	m := embedding.NewModel(cfg.Dim)
	for r, id := range kept {
		vec := make([]float32, cfg.Dim)
		for d, x := range syn0[r] {
			vec[d] = float32(x)
		}
		if err := m.Add(v.words[id], v.counts[id], vec); err != nil {
			return nil, err
		}
	}
	return m, nil
}

type state struct {
	cfg   Config
	v     *vocab
	rng   *rand.Rand
	syn0  [][]float64
	syn1  [][]float64
	neg   unigramTable
	keep  []float64
	neu1e []float64
	done  float64
	total float64
	ids   []int
}

func (s *state) alpha() float64 {
	a := s.cfg.Alpha - (s.cfg.Alpha-s.cfg.MinAlpha)*(s.done/s.total)
	if a < s.cfg.MinAlpha {
		return s.cfg.MinAlpha
	}
	return a
}

func (s *state) trainSentence(sent []string) {
	s.ids = s.ids[:0]
	for _, w := range sent {
		id := s.v.ids[w]
		if s.keep[id] < 1 && s.keep[id] < s.rng.Float64() {
			continue
		}
		s.ids = append(s.ids, id)
	}
	alpha := s.alpha()
	s.done += float64(len(sent))

	for i, center := range s.ids {
		row := s.v.row[center]
		if row < 0 {
			continue
		}
		b := s.rng.Intn(s.cfg.Window)
		lo, hi := i-s.cfg.Window+b, i+s.cfg.Window-b
		for j := lo; j <= hi; j++ {
			if j == i || j < 0 || j >= len(s.ids) {
				continue
			}
			s.pair(s.syn0[row], s.ids[j], alpha)
		}
	}
}

// pair runs one negative-sampling update of input vector h against context id ctx.
func (s *state) pair(h []float64, ctx int, alpha float64) {
	for d := range s.neu1e {
		s.neu1e[d] = 0
	}
	for k := 0; k <= s.cfg.Negative; k++ {
		target, label := ctx, 1.0
		if k > 0 {
			target = s.neg.sample(s.rng)
			if target == ctx {
				continue
			}
			label = 0
		}
		out := s.syn1[target]
		f := floats.Dot(h, out)
		var g float64
		switch {
		case f > maxExp:
			g = (label - 1) * alpha
		case f < -maxExp:
			g = label * alpha
		default:
			g = (label - sigmoid(f)) * alpha
		}
		floats.AddScaled(s.neu1e, g, out)
		floats.AddScaled(out, g, h)
	}
	floats.Add(h, s.neu1e)
}

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

// keepProbabilities returns, per token id, the probability of keeping one
// occurrence under frequent-word subsampling.
func keepProbabilities(counts []int, total int, sample float64) []float64 {
	keep := make([]float64, len(counts))
	for id, c := range counts {
		if sample <= 0 {
			keep[id] = 1
			continue
		}
		threshold := sample * float64(total)
		p := (math.Sqrt(float64(c)/threshold) + 1) * threshold / float64(c)
		keep[id] = math.Min(p, 1)
	}
	return keep
}

// unigramTable samples token ids proportionally to count^power.
type unigramTable struct {
	cdf []float64
}

func newUnigramTable(counts []int, power float64) unigramTable {
	cdf := make([]float64, len(counts))
	sum := 0.0
	for id, c := range counts {
		sum += math.Pow(float64(c), power)
		cdf[id] = sum
	}
	return unigramTable{cdf: cdf}
}

func (u unigramTable) sample(rng *rand.Rand) int {
	x := rng.Float64() * u.cdf[len(u.cdf)-1]
	i := sort.SearchFloat64s(u.cdf, x)
	if i >= len(u.cdf) {
		i = len(u.cdf) - 1
	}
	return i
}
