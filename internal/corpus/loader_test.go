package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{name: "plain", in: []byte("The Quick fox runs."), want: "The Quick fox runs."},
		{name: "bom stripped", in: append([]byte{0xEF, 0xBB, 0xBF}, "Hmm."...), want: "Hmm."},
		{name: "nfc", in: []byte("cafe\u0301"), want: "caf\u00e9"},
		{name: "empty", in: nil, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeRejectsMalformedBytes(t *testing.T) {
	_, err := Decode([]byte{'o', 'k', 0xff, 'x'})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEncoding))
	assert.Contains(t, err.Error(), "at byte 2")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "MarkTwain.txt")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFHello there."), 0o644))

	c, err := Load("MarkTwain", path)
	require.NoError(t, err)
	assert.Equal(t, "MarkTwain", c.Name)
	assert.Equal(t, path, c.Path)
	assert.Equal(t, "Hello there.", c.Text)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("Nobody", filepath.Join(t.TempDir(), "Nobody.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
