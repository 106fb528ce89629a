// Package corpus reads raw author corpora from disk.
package corpus

import (
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"corpus2vec/internal/domain"
)

// ErrInvalidEncoding is returned when a corpus file is not valid UTF-8.
var ErrInvalidEncoding = errors.New("invalid UTF-8")

// Load reads <path> as a UTF-8 corpus named name.
func Load(name, path string) (domain.Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Corpus{}, errors.Wrapf(err, "read corpus %s", name)
	}
	text, err := Decode(data)
	if err != nil {
		return domain.Corpus{}, errors.Wrapf(err, "decode %s", path)
	}
	return domain.Corpus{Name: name, Path: path, Text: text}, nil
}

// Decode validates UTF-8, drops a leading byte-order mark and NFC-normalizes the text.
func Decode(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.Wrapf(ErrInvalidEncoding, "at byte %d", firstInvalid(data))
	}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", err
	}
	return norm.NFC.String(string(out)), nil
}

func firstInvalid(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
