package edn_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNamedCharacters(t *testing.T) {
	cases := map[string]rune{
		`\newline`:   '\n',
		`\space`:     ' ',
		`\tab`:       '\t',
		`\backspace`: '\b',
		`\formfeed`:  '\f',
		`\return`:    '\r',
	}
	for src, want := range cases {
		c, err := mustParse(t, src).AsChar()
		require.NoError(t, err)
		require.Equal(t, want, c)
	}
}

func TestLiteralCharacter(t *testing.T) {
	c, err := mustParse(t, `\a`).AsChar()
	require.NoError(t, err)
	require.Equal(t, 'a', c)
}

func TestUnicodeCharacterLiteral(t *testing.T) {
	c, err := mustParse(t, "\\é").AsChar()
	require.NoError(t, err)
	require.Equal(t, 'é', c)
}

func TestCharacterInCollection(t *testing.T) {
	v := mustParse(t, `[\a \b \c]`)
	items, err := v.AsVector()
	require.NoError(t, err)
	require.Len(t, items, 3)
	c, err := items[0].AsChar()
	require.NoError(t, err)
	require.Equal(t, 'a', c)
}
