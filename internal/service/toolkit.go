package service

import (
	"github.com/pkg/errors"

	"corpus2vec/internal/config"
	"corpus2vec/internal/domain"
	"corpus2vec/internal/segmenter"
	"corpus2vec/internal/toolkit/golem"
	"corpus2vec/internal/toolkit/prose"
)

// Toolkit bundles the language components a pipeline run needs.
type Toolkit struct {
	Segmenter  domain.Segmenter
	Tokenizer  domain.Tokenizer
	Lemmatizer domain.Lemmatizer
	Tagger     domain.Tagger
}

// NewToolkit builds the toolkit selected by cfg. Tagging always uses prose.
func NewToolkit(cfg *config.AppConfig) (Toolkit, error) {
	p := prose.New()
	lem, err := golem.NewEnglish()
	if err != nil {
		return Toolkit{}, errors.Wrap(err, "load lemmatizer")
	}
	tk := Toolkit{Segmenter: p, Tokenizer: p, Lemmatizer: lem, Tagger: p}
	if cfg.Segmenter == "regexp" {
		tk.Segmenter = segmenter.NewSentenceSegmenter()
	}
	if cfg.Tokenizer == "regexp" {
		tk.Tokenizer = segmenter.NewWordTokenizer()
	}
	return tk, nil
}

func (tk Toolkit) validate() error {
	switch {
	case tk.Segmenter == nil:
		return errors.New("toolkit: missing segmenter")
	case tk.Tokenizer == nil:
		return errors.New("toolkit: missing tokenizer")
	case tk.Lemmatizer == nil:
		return errors.New("toolkit: missing lemmatizer")
	case tk.Tagger == nil:
		return errors.New("toolkit: missing tagger")
	}
	return nil
}
