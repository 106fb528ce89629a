package vocab

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"corpus2vec/internal/domain"
)

// CaseNormalizer lowercases every token whose tag is not a proper noun tag.
type CaseNormalizer struct {
	keep  TagSet
	lower cases.Caser
}

func NewCaseNormalizer(properNouns TagSet) *CaseNormalizer {
	return &CaseNormalizer{keep: properNouns, lower: cases.Lower(language.English)}
}

// Normalize returns new sentences; the input is not modified. The rule is per
// token, so the same surface word may end up with different casing.
func (n *CaseNormalizer) Normalize(sentences []domain.TaggedSentence) []domain.TaggedSentence {
	out := make([]domain.TaggedSentence, len(sentences))
	for i, sent := range sentences {
		norm := make(domain.TaggedSentence, len(sent))
		for j, tok := range sent {
			if !n.keep.Contains(tok.Tag) {
				tok.Word = n.lower.String(tok.Word)
			}
			norm[j] = tok
		}
		out[i] = norm
	}
	return out
}
