package vocab

import "corpus2vec/internal/embedding"

// TrimRule discards every word outside the content vocabulary and every
// stopword, and leaves the rest to the trainer's frequency floor. It holds
// no state beyond its two frozen sets.
type TrimRule struct {
	vocabulary Vocabulary
	stopwords  Stopwords
}

func NewTrimRule(v Vocabulary, s Stopwords) TrimRule {
	return TrimRule{vocabulary: v, stopwords: s}
}

// Trim ignores count and minCount; the trainer applies the floor on Default.
func (r TrimRule) Trim(word string, _, _ int) embedding.Decision {
	if !r.vocabulary.Contains(word) || r.stopwords.Contains(word) {
		return embedding.Discard
	}
	return embedding.Default
}
