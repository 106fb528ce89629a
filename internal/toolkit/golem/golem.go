// Package golem adapts the dictionary lemmatizer github.com/aaaton/golem.
package golem

import (
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/pkg/errors"
)

// lookup is the subset of *golem.Lemmatizer the adapter needs.
type lookup interface {
	Lemma(word string) string
}

// Lemmatizer returns dictionary lemmas. The dictionary has no part-of-speech
// input, so every token is looked up the same way.
type Lemmatizer struct {
	dict lookup
}

// NewEnglish loads the embedded English dictionary.
func NewEnglish() (*Lemmatizer, error) {
	l, err := golem.New(en.New())
	if err != nil {
		return nil, errors.Wrap(err, "load english lemma dictionary")
	}
	return &Lemmatizer{dict: l}, nil
}

// Lemma returns the base form of token. A lemma that differs from token only
// in letter case is dropped in favour of token.
func (l *Lemmatizer) Lemma(token string) string {
	lemma := l.dict.Lemma(token)
	if lemma == "" || strings.EqualFold(lemma, token) {
		return token
	}
	return lemma
}
