package embedding

// Decision is a trim rule's verdict for one candidate vocabulary word.
type Decision int

const (
	// Default leaves the word to the trainer's frequency rule (count >= min count).
	Default Decision = iota
	// Discard drops the word from the vocabulary regardless of its count.
	Discard
	// Keep admits the word regardless of its count.
	Keep
)

// TrimRule decides vocabulary membership before training. Implementations must
// be pure: the trainer may call them in any order and more than once.
type TrimRule interface {
	Trim(word string, count, minCount int) Decision
}

// TrimFunc adapts a plain function to TrimRule.
type TrimFunc func(word string, count, minCount int) Decision

func (f TrimFunc) Trim(word string, count, minCount int) Decision { return f(word, count, minCount) }

// Admit applies rule and the default frequency floor to one word.
func Admit(rule TrimRule, word string, count, minCount int) bool {
	d := Default
	if rule != nil {
		d = rule.Trim(word, count, minCount)
	}
	switch d {
	case Discard:
		return false
	case Keep:
		return true
	default:
		return count >= minCount
	}
}

// Trainer learns word vectors from sentences of plain words. Every token of
// every sentence is training context; only admitted words receive vectors.
type Trainer interface {
	Name() string
	Train(sentences [][]string, rule TrimRule) (*Model, error)
}
