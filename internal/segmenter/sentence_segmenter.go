package segmenter

import (
	"regexp"
	"strings"
)

// SentenceSegmenter splits text into sentences ending in '.', '!' or '?'.
// Text after the last terminator becomes a final sentence.
type SentenceSegmenter struct {
	splitter *regexp.Regexp
}

func NewSentenceSegmenter() *SentenceSegmenter {
	return &SentenceSegmenter{
		splitter: regexp.MustCompile(`[^.!?]+[.!?]+["'”’)\]]*`),
	}
}

func (s *SentenceSegmenter) Segment(text string) ([]string, error) {
	locs := s.splitter.FindAllStringIndex(text, -1)
	var sentences []string
	end := 0
	for _, loc := range locs {
		if sent := strings.TrimSpace(text[loc[0]:loc[1]]); sent != "" {
			sentences = append(sentences, sent)
		}
		end = loc[1]
	}
	if tail := strings.TrimSpace(text[end:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences, nil
}

// WordTokenizer splits a sentence into words, numbers and single punctuation marks.
type WordTokenizer struct {
	pattern *regexp.Regexp
}

func NewWordTokenizer() *WordTokenizer {
	return &WordTokenizer{
		pattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+(?:[.,]\p{N}+)*|[\p{P}\p{S}]`),
	}
}

func (t *WordTokenizer) Tokenize(sentence string) ([]string, error) {
	return t.pattern.FindAllString(sentence, -1), nil
}
