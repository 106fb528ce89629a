// Package vocab holds the content-word policy: which tags carry meaning,
// how tokens are case-normalized, which words are stopwords, and the trim
// rule handed to the embedding trainer.
package vocab

import "corpus2vec/internal/config"

// TagSet is an immutable set of part-of-speech labels.
type TagSet struct {
	tags map[string]struct{}
}

func NewTagSet(tags ...string) TagSet {
	m := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		m[t] = struct{}{}
	}
	return TagSet{tags: m}
}

func (s TagSet) Contains(tag string) bool {
	_, ok := s.tags[tag]
	return ok
}

func (s TagSet) Len() int { return len(s.tags) }

// ContentTags returns adjectives, nouns, adverbs, interjections and verbs in
// all their Penn Treebank forms.
func ContentTags() TagSet { return NewTagSet(config.DefaultContentTags...) }

// ProperNounTags returns the singular and plural proper noun tags.
func ProperNounTags() TagSet { return NewTagSet(config.DefaultProperNounTags...) }
