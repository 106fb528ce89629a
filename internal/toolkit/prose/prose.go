// Package prose adapts github.com/jdkato/prose to the pipeline's segmenter,
// tokenizer and tagger interfaces. Tags are Penn Treebank labels.
package prose

import (
	"strings"

	"github.com/jdkato/prose/v2"
	"github.com/pkg/errors"

	"corpus2vec/internal/domain"
)

// Toolkit wraps prose documents. The zero value is ready to use; the tagger
// model is decoded by the first tagged document and reused afterwards.
// A Toolkit must not be shared between goroutines.
type Toolkit struct {
	model *prose.Model
}

func New() *Toolkit { return &Toolkit{} }

// Segment splits text into sentences with prose's punkt boundary detector.
func (t *Toolkit) Segment(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, errors.Wrap(err, "prose segment")
	}
	var out []string
	for _, s := range doc.Sentences() {
		if txt := strings.TrimSpace(s.Text); txt != "" {
			out = append(out, txt)
		}
	}
	return out, nil
}

// Tokenize splits one sentence into tokens, punctuation included.
func (t *Toolkit) Tokenize(sentence string) ([]string, error) {
	doc, err := prose.NewDocument(sentence,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, errors.Wrap(err, "prose tokenize")
	}
	toks := doc.Tokens()
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text
	}
	return out, nil
}

// TagSentences tags every lemmatized sentence. The averaged perceptron sees the
// whitespace-joined lemmas; if its tokenizer re-splits them differently the
// tagger's tokens replace the input for that sentence.
func (t *Toolkit) TagSentences(sentences [][]string) ([]domain.TaggedSentence, error) {
	out := make([]domain.TaggedSentence, len(sentences))
	for i, lemmas := range sentences {
		if len(lemmas) == 0 {
			out[i] = domain.TaggedSentence{}
			continue
		}
		opts := []prose.DocOpt{prose.WithSegmentation(false), prose.WithExtraction(false)}
		if t.model != nil {
			opts = append(opts, prose.UsingModel(t.model))
		}
		doc, err := prose.NewDocument(strings.Join(lemmas, " "), opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "prose tag sentence %d", i)
		}
		if t.model == nil {
			t.model = doc.Model
		}
		out[i] = align(lemmas, doc.Tokens())
	}
	return out, nil
}

func align(lemmas []string, toks []prose.Token) domain.TaggedSentence {
	sent := make(domain.TaggedSentence, len(toks))
	same := len(toks) == len(lemmas)
	for i, tok := range toks {
		word := tok.Text
		if same {
			word = lemmas[i]
		}
		sent[i] = domain.TaggedToken{Word: word, Tag: tok.Tag}
	}
	return sent
}
