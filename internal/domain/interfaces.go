package domain

// Corpus is one author's raw text loaded into the system.
type Corpus struct {
	Name string
	Path string
	Text string
}

// TaggedToken is a lemma paired with its part-of-speech tag.
type TaggedToken struct {
	Word string
	Tag  string
}

// TaggedSentence is an ordered sequence of tagged tokens.
type TaggedSentence []TaggedToken

// Words strips the tags, keeping token order.
func (s TaggedSentence) Words() []string {
	out := make([]string, len(s))
	for i, tok := range s {
		out[i] = tok.Word
	}
	return out
}

// Segmenter splits raw text into sentences in document order.
type Segmenter interface {
	Segment(text string) ([]string, error)
}

// Tokenizer splits a sentence into word and punctuation tokens.
type Tokenizer interface {
	Tokenize(sentence string) ([]string, error)
}

// Lemmatizer reduces a token to its base form without a part-of-speech hint.
type Lemmatizer interface {
	Lemma(token string) string
}

// Tagger assigns a part-of-speech tag to every token of every sentence.
// Implementations must preserve order across and within sentences.
type Tagger interface {
	TagSentences(sentences [][]string) ([]TaggedSentence, error)
}

// Neighbor is a vocabulary word with its similarity to a query vector.
type Neighbor struct {
	Word  string
	Score float64
}
