package service

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"corpus2vec/internal/config"
	"corpus2vec/internal/corpus"
	"corpus2vec/internal/embedding"
	"corpus2vec/internal/embedding/word2vec"
	"corpus2vec/internal/vocab"
)

// Pipeline stages, in execution order.
const (
	StageLoad      = "load"
	StageSegment   = "segment"
	StageTokenize  = "tokenize"
	StageTag       = "tag"
	StageNormalize = "normalize"
	StageTrain     = "train"
	StageExport    = "export"
)

// ErrEmptyCorpus means segmentation produced no sentences.
var ErrEmptyCorpus = errors.New("empty corpus: no sentences")

// StageError names the corpus and stage a failure happened in.
type StageError struct {
	Corpus string
	Stage  string
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("corpus %s: %s: %v", e.Corpus, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Result describes one exported model.
type Result struct {
	Corpus    string
	ModelPath string
	Words     int
	Dim       int
}

// Pipeline turns corpora into word-vector models, one corpus at a time.
type Pipeline struct {
	cfg        *config.AppConfig
	tk         Toolkit
	trainer    embedding.Trainer
	content    vocab.TagSet
	normalizer *vocab.CaseNormalizer
	stopwords  vocab.Stopwords
	logger     logrus.FieldLogger
	onDone     func(name string, err error)
	onEpoch    func(epoch, epochs int)
}

type Option func(*Pipeline)

func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithTrainer replaces the word2vec trainer configured from the app config.
func WithTrainer(t embedding.Trainer) Option {
	return func(p *Pipeline) { p.trainer = t }
}

// WithCorpusDone registers a callback run after every corpus, failed or not.
func WithCorpusDone(fn func(name string, err error)) Option {
	return func(p *Pipeline) { p.onDone = fn }
}

// WithEpochDone registers a callback run after every training epoch of the
// configured word2vec trainer. It has no effect together with WithTrainer.
func WithEpochDone(fn func(epoch, epochs int)) Option {
	return func(p *Pipeline) { p.onEpoch = fn }
}

func NewPipeline(cfg *config.AppConfig, tk Toolkit, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := tk.validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:        cfg,
		tk:         tk,
		content:    vocab.NewTagSet(cfg.ContentTags...),
		normalizer: vocab.NewCaseNormalizer(vocab.NewTagSet(cfg.ProperNounTags...)),
		stopwords:  vocab.NewStopwords(cfg.ExtraStopwords...),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		p.logger = l
	}
	if p.trainer == nil {
		t := cfg.Trainer
		trainerOpts := []word2vec.Option{word2vec.WithLogger(p.logger)}
		if p.onEpoch != nil {
			trainerOpts = append(trainerOpts, word2vec.WithProgress(p.onEpoch))
		}
		p.trainer = word2vec.New(word2vec.Config{
			Dim:      t.Dim,
			Window:   t.Window,
			Negative: t.Negative,
			Epochs:   t.Epochs,
			Alpha:    t.Alpha,
			MinAlpha: t.MinAlpha,
			Sample:   t.Sample,
			Seed:     t.Seed,
			MinCount: cfg.MinCount,
		}, trainerOpts...)
	}
	return p, nil
}

// Run processes names in order. Without skip_failed the first failure stops
// the run; with it every failure is collected and returned together.
func (p *Pipeline) Run(ctx context.Context, names []string) ([]Result, error) {
	var (
		results  []Result
		failures *multierror.Error
	)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			if failures == nil {
				return results, err
			}
			return results, multierror.Append(failures, err)
		}
		res, err := p.RunCorpus(ctx, name)
		if p.onDone != nil {
			p.onDone(name, err)
		}
		if err != nil {
			p.logger.WithField("action", "corpus_failed").
				WithField("corpus", name).
				WithError(err).
				Error("corpus failed")
			if !p.cfg.SkipFailed {
				return results, err
			}
			failures = multierror.Append(failures, err)
			continue
		}
		results = append(results, res)
	}
	return results, failures.ErrorOrNil()
}

// RunCorpus runs every stage for one corpus and writes its model.
func (p *Pipeline) RunCorpus(ctx context.Context, name string) (Result, error) {
	log := p.logger.WithField("corpus", name)
	stage := StageLoad
	fail := func(err error) (Result, error) {
		return Result{}, &StageError{Corpus: name, Stage: stage, Err: err}
	}
	enter := func(s string) error {
		stage = s
		log.WithField("stage", s).WithField("action", "stage_start").Debug("stage started")
		return ctx.Err()
	}

	if err := enter(StageLoad); err != nil {
		return fail(err)
	}
	c, err := corpus.Load(name, p.cfg.CorpusPath(name))
	if err != nil {
		return fail(err)
	}

	if err := enter(StageSegment); err != nil {
		return fail(err)
	}
	sentences, err := p.tk.Segmenter.Segment(c.Text)
	if err != nil {
		return fail(err)
	}
	if len(sentences) == 0 {
		return fail(ErrEmptyCorpus)
	}
	log.WithField("sentences", len(sentences)).Debug("segmented")

	if err := enter(StageTokenize); err != nil {
		return fail(err)
	}
	lemmas, err := p.lemmatize(sentences)
	if err != nil {
		return fail(err)
	}

	if err := enter(StageTag); err != nil {
		return fail(err)
	}
	tagged, err := p.tk.Tagger.TagSentences(lemmas)
	if err != nil {
		return fail(err)
	}

	if err := enter(StageNormalize); err != nil {
		return fail(err)
	}
	normalized := p.normalizer.Normalize(tagged)
	vocabulary := vocab.BuildVocabulary(normalized, p.content)
	words := make([][]string, len(normalized))
	for i, sent := range normalized {
		words[i] = sent.Words()
	}
	log.WithField("vocabulary", vocabulary.Len()).Debug("vocabulary built")

	if err := enter(StageTrain); err != nil {
		return fail(err)
	}
	log.WithField("trainer", p.trainer.Name()).Debug("training")
	model, err := p.trainer.Train(words, vocab.NewTrimRule(vocabulary, p.stopwords))
	if err != nil {
		return fail(err)
	}

	if err := enter(StageExport); err != nil {
		return fail(err)
	}
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return fail(err)
	}
	path := p.cfg.ModelPath(name)
	if err := embedding.SaveFile(path, model); err != nil {
		return fail(err)
	}

	log.WithField("action", "model_exported").
		WithField("path", path).
		WithField("words", model.Len()).
		Info("model exported")
	return Result{Corpus: name, ModelPath: path, Words: model.Len(), Dim: model.Dim}, nil
}

// lemmatize tokenizes every sentence and lemmatizes each token without a
// part-of-speech hint. Sentences without tokens are dropped.
func (p *Pipeline) lemmatize(sentences []string) ([][]string, error) {
	out := make([][]string, 0, len(sentences))
	for i, s := range sentences {
		toks, err := p.tk.Tokenizer.Tokenize(s)
		if err != nil {
			return nil, errors.Wrapf(err, "sentence %d", i)
		}
		if len(toks) == 0 {
			continue
		}
		lemmas := make([]string, len(toks))
		for j, tok := range toks {
			lemmas[j] = p.tk.Lemmatizer.Lemma(tok)
		}
		out = append(out, lemmas)
	}
	return out, nil
}
