package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func stubTerminal(t *testing.T, tty bool) {
	t.Helper()
	old := isTerminal
	isTerminal = func() bool { return tty }
	t.Cleanup(func() { isTerminal = old })
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)
}

func TestGetSimpleText_EmptyEOF(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(rdr(""), "Name?", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true)
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return []byte("secret1"), nil }

	var out bytes.Buffer
	pw, err := GetPassword(rdr(""), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret1"), pw)
	assert.Equal(t, "Password: \n", out.String())
}

func TestGetPassword_Error(t *testing.T) {
	stubTerminal(t, true)
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}

	var out bytes.Buffer
	_, err := GetPassword(rdr(""), "Password", &out)
	require.Error(t, err)
}

func TestGetPassword_Piped(t *testing.T) {
	stubTerminal(t, false)

	var out bytes.Buffer
	pw, err := GetPassword(rdr("hunter22\n"), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter22"), pw)
}

func TestGetPassword_PipedKeepsSpaces(t *testing.T) {
	stubTerminal(t, false)

	var out bytes.Buffer
	pw, err := GetPassword(rdr("  pass word \r\n"), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("  pass word "), pw)

	pw, err = GetPassword(rdr(" tail"), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte(" tail"), pw)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes", input: "yes\n", want: true},
		{name: "y upper", input: "Y\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty", input: "\n", want: false},
		{name: "eof", input: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Confirm(rdr(tc.input), "Sure?", &out)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, "Sure? [y/N]: ", out.String())
		})
	}
}
