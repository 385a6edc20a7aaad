package edn_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcvoid/edn"
)

// S5: raw bytes keep the literal backslash-n; decode produces a real newline.
func TestStringEscapes(t *testing.T) {
	v := mustParse(t, `"hello\nworld"`)
	raw, hasEscapes, err := v.RawString()
	require.NoError(t, err)
	require.True(t, hasEscapes)
	require.Equal(t, `hello\nworld`, string(raw))
	require.Len(t, raw, 13)

	decoded, err := v.AsString()
	require.NoError(t, err)
	require.Equal(t, "hello\nworld", decoded)
	require.Len(t, decoded, 11)
}

func TestStringNoEscapesIsRawBytes(t *testing.T) {
	v := mustParse(t, `"plain"`)
	raw, hasEscapes, err := v.RawString()
	require.NoError(t, err)
	require.False(t, hasEscapes)
	require.Equal(t, "plain", string(raw))
}

func TestStringUnicodeEscape(t *testing.T) {
	v := mustParse(t, "\"\\u00e9\"")
	decoded, err := v.AsString()
	require.NoError(t, err)
	require.Equal(t, "é", decoded)
}

func TestUnterminatedString(t *testing.T) {
	_, err := edn.ParseString(`"abc`)
	require.ErrorIs(t, err, edn.ErrUnexpectedEOF)
}

func TestTextBlock(t *testing.T) {
	v := mustParse(t, "\"\"\"\n  hello\n  world\n  \"\"\"")
	decoded, err := v.AsString()
	require.NoError(t, err)
	require.Equal(t, "hello\nworld\n", decoded)
}
