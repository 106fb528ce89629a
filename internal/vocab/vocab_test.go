package vocab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpus2vec/internal/domain"
	"corpus2vec/internal/embedding"
)

func quickFox() []domain.TaggedSentence {
	return []domain.TaggedSentence{{
		{Word: "The", Tag: "DT"},
		{Word: "Quick", Tag: "NNP"},
		{Word: "fox", Tag: "NN"},
		{Word: "run", Tag: "VBZ"},
		{Word: ".", Tag: "."},
	}}
}

func TestTagSets(t *testing.T) {
	content := ContentTags()
	assert.Equal(t, 17, content.Len())
	for _, tag := range []string{"JJ", "JJR", "JJS", "NN", "NNS", "NNP", "NNPS", "RB", "RBR", "RBS", "UH", "VB", "VBD", "VBG", "VBN", "VBP", "VBZ"} {
		assert.True(t, content.Contains(tag), tag)
	}
	for _, tag := range []string{"DT", "IN", "PRP", ".", "CC", "MD"} {
		assert.False(t, content.Contains(tag), tag)
	}

	proper := ProperNounTags()
	assert.Equal(t, 2, proper.Len())
	assert.True(t, proper.Contains("NNP"))
	assert.True(t, proper.Contains("NNPS"))
	assert.False(t, proper.Contains("NN"))
}

func TestCaseNormalizer(t *testing.T) {
	in := []domain.TaggedSentence{
		{{Word: "The", Tag: "DT"}, {Word: "Quick", Tag: "NNP"}, {Word: "FOX", Tag: "NN"}},
		{{Word: "Londons", Tag: "NNPS"}, {Word: "Quick", Tag: "JJ"}, {Word: "ÉTÉ", Tag: "NN"}},
	}
	n := NewCaseNormalizer(ProperNounTags())
	got := n.Normalize(in)

	want := []domain.TaggedSentence{
		{{Word: "the", Tag: "DT"}, {Word: "Quick", Tag: "NNP"}, {Word: "fox", Tag: "NN"}},
		{{Word: "Londons", Tag: "NNPS"}, {Word: "quick", Tag: "JJ"}, {Word: "été", Tag: "NN"}},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, "The", in[0][0].Word, "input must not be modified")

	for i, sent := range got {
		for j, tok := range sent {
			orig := in[i][j]
			if ProperNounTags().Contains(orig.Tag) {
				assert.Equal(t, orig.Word, tok.Word)
			} else {
				assert.Equal(t, strings.ToLower(orig.Word), tok.Word)
			}
		}
	}
}

func TestBuildVocabulary(t *testing.T) {
	sents := []domain.TaggedSentence{
		{{Word: "light", Tag: "DT"}, {Word: "fox", Tag: "NN"}},
		{{Word: "light", Tag: "JJ"}, {Word: "the", Tag: "DT"}},
		{{Word: "hmm", Tag: "UH"}, {Word: "fox", Tag: "NNS"}},
	}
	v := BuildVocabulary(sents, ContentTags())

	assert.Equal(t, 3, v.Len())
	for _, w := range []string{"fox", "hmm", "light"} {
		assert.True(t, v.Contains(w), w)
	}
	assert.True(t, v.Contains("light"), "one content-tagged occurrence is enough")
	assert.False(t, v.Contains("the"))
}

func TestVocabularyMembershipIsContentTagAnywhere(t *testing.T) {
	sents := []domain.TaggedSentence{
		{{Word: "a", Tag: "DT"}, {Word: "b", Tag: "NN"}, {Word: "c", Tag: "IN"}},
		{{Word: "c", Tag: "IN"}, {Word: "a", Tag: "RB"}, {Word: "d", Tag: "CD"}},
	}
	content := ContentTags()
	v := BuildVocabulary(sents, content)

	seen := map[string]bool{}
	for _, s := range sents {
		for _, tok := range s {
			seen[tok.Word] = seen[tok.Word] || content.Contains(tok.Tag)
		}
	}
	for w, hasContent := range seen {
		assert.Equal(t, hasContent, v.Contains(w), w)
	}
}

func TestStopwords(t *testing.T) {
	s := NewStopwords("wa")
	for _, w := range []string{"the", "a", "wa", "don't", ".", ",", "!", "\\", "`", "~"} {
		assert.True(t, s.Contains(w), w)
	}
	for _, w := range []string{"fox", "Quick", "run", "...", "“"} {
		assert.False(t, s.Contains(w), w)
	}
	assert.Equal(t, 179+len(Punctuation)+1, s.Len())
}

func TestTrimRule(t *testing.T) {
	sents := NewCaseNormalizer(ProperNounTags()).Normalize(quickFox())
	v := BuildVocabulary(sents, ContentTags())
	require.Equal(t, 3, v.Len())

	rule := NewTrimRule(v, NewStopwords("wa"))
	tests := map[string]embedding.Decision{
		"Quick": embedding.Default,
		"fox":   embedding.Default,
		"run":   embedding.Default,
		"the":   embedding.Discard,
		".":     embedding.Discard,
		"quick": embedding.Discard,
		"wolf":  embedding.Discard,
	}
	for word, want := range tests {
		for _, args := range [][2]int{{0, 15}, {1, 15}, {100, 15}, {100, 1}} {
			assert.Equal(t, want, rule.Trim(word, args[0], args[1]), "%s %v", word, args)
			assert.Equal(t, rule.Trim(word, args[0], args[1]), rule.Trim(word, args[0], args[1]))
		}
	}
}

func TestTrimRuleDiscardsContentStopwords(t *testing.T) {
	sents := []domain.TaggedSentence{{{Word: "do", Tag: "VB"}, {Word: "wa", Tag: "NN"}, {Word: "walk", Tag: "VB"}}}
	rule := NewTrimRule(BuildVocabulary(sents, ContentTags()), NewStopwords("wa"))

	assert.Equal(t, embedding.Discard, rule.Trim("do", 50, 15))
	assert.Equal(t, embedding.Discard, rule.Trim("wa", 50, 15))
	assert.Equal(t, embedding.Default, rule.Trim("walk", 50, 15))
}
