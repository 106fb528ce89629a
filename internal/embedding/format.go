package embedding

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedModel is returned when a binary vector file cannot be parsed.
var ErrMalformedModel = errors.New("malformed word2vec binary")

// WriteBinary writes m in the word2vec binary layout:
//
//	"<words> <dim>\n" then per word: word ' ' dim*float32 (little endian) '\n'
func WriteBinary(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strconv.Itoa(m.Len()) + " " + strconv.Itoa(m.Dim) + "\n"); err != nil {
		return err
	}
	buf := make([]byte, 4*m.Dim)
	for i, word := range m.Words {
		if word == "" || strings.ContainsAny(word, " \n") {
			return errors.Errorf("word %d (%q) cannot be stored", i, word)
		}
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		if err := bw.WriteByte(' '); err != nil {
			return err
		}
		for d, v := range m.Vectors[i] {
			binary.LittleEndian.PutUint32(buf[4*d:], math.Float32bits(v))
		}
		if _, err := bw.Write(buf); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadBinary parses the word2vec binary layout. Records may or may not be
// separated by a newline.
func ReadBinary(r io.Reader) (*Model, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil {
		return nil, errors.Wrap(ErrMalformedModel, "missing header")
	}
	fields := strings.Fields(header)
	if len(fields) != 2 {
		return nil, errors.Wrapf(ErrMalformedModel, "header %q", strings.TrimSpace(header))
	}
	size, err1 := strconv.Atoi(fields[0])
	dim, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || size < 0 || dim <= 0 {
		return nil, errors.Wrapf(ErrMalformedModel, "header %q", strings.TrimSpace(header))
	}

	m := NewModel(dim)
	buf := make([]byte, 4*dim)
	for i := 0; i < size; i++ {
		word, err := readWord(br)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedModel, "word %d: %v", i, err)
		}
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, errors.Wrapf(ErrMalformedModel, "vector %d (%q): %v", i, word, err)
		}
		vec := make([]float32, dim)
		for d := range vec {
			vec[d] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*d:]))
		}
		if err := m.Add(word, 0, vec); err != nil {
			return nil, errors.Wrap(ErrMalformedModel, err.Error())
		}
	}
	return m, nil
}

func readWord(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", err
		}
		if b == ' ' {
			break
		}
		if b == '\n' && sb.Len() == 0 {
			continue
		}
		sb.WriteByte(b)
	}
	if sb.Len() == 0 {
		return "", errors.New("empty word")
	}
	return sb.String(), nil
}

// SaveFile writes m to path, replacing any existing file.
func SaveFile(path string, m *Model) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteBinary(f, m)
}

// LoadFile reads a model written by SaveFile or by any word2vec-compatible tool.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := ReadBinary(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return m, nil
}
