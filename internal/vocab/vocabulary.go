package vocab

import "corpus2vec/internal/domain"

// Vocabulary is the read-only keep-set of content words of one corpus.
type Vocabulary struct {
	words map[string]struct{}
}

// BuildVocabulary collects every word tagged with a content tag anywhere in
// the corpus. One content-tagged occurrence is enough.
func BuildVocabulary(sentences []domain.TaggedSentence, content TagSet) Vocabulary {
	words := make(map[string]struct{})
	for _, sent := range sentences {
		for _, tok := range sent {
			if content.Contains(tok.Tag) {
				words[tok.Word] = struct{}{}
			}
		}
	}
	return Vocabulary{words: words}
}

func (v Vocabulary) Contains(word string) bool {
	_, ok := v.words[word]
	return ok
}

func (v Vocabulary) Len() int { return len(v.words) }
