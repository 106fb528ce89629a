package golem

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapDict map[string]string

func (m mapDict) Lemma(word string) string {
	if l, ok := m[strings.ToLower(word)]; ok {
		return l
	}
	return strings.ToLower(word)
}

func TestLemmaKeepsSurfaceCase(t *testing.T) {
	l := &Lemmatizer{dict: mapDict{"runs": "run", "was": "be"}}

	tests := map[string]string{
		"runs":  "run",
		"was":   "be",
		"The":   "The",
		"Quick": "Quick",
		".":     ".",
	}
	for in, want := range tests {
		assert.Equal(t, want, l.Lemma(in), in)
	}
}

func TestEnglishDictionary(t *testing.T) {
	l, err := NewEnglish()
	if err != nil {
		t.Fatalf("load dictionary: %v", err)
	}
	assert.Equal(t, "run", l.Lemma("running"))
	assert.Equal(t, "Quick", l.Lemma("Quick"))
}
