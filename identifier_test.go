package edn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcvoid/edn"
)

func TestParseSymbolAndKeyword(t *testing.T) {
	ns, name, err := mustParse(t, "foo").AsSymbol()
	require.NoError(t, err)
	require.Equal(t, "", ns)
	require.Equal(t, "foo", name)

	ns, name, err = mustParse(t, "my.ns/foo").AsSymbol()
	require.NoError(t, err)
	require.Equal(t, "my.ns", ns)
	require.Equal(t, "foo", name)

	ns, name, err = mustParse(t, ":kw").AsKeyword()
	require.NoError(t, err)
	require.Equal(t, "", ns)
	require.Equal(t, "kw", name)

	ns, name, err = mustParse(t, ":my.ns/kw").AsKeyword()
	require.NoError(t, err)
	require.Equal(t, "my.ns", ns)
	require.Equal(t, "kw", name)
}

func TestDivisionSymbol(t *testing.T) {
	ns, name, err := mustParse(t, "/").AsSymbol()
	require.NoError(t, err)
	require.Equal(t, "", ns)
	require.Equal(t, "/", name)
}

func TestAutoNamespacedKeywordRejected(t *testing.T) {
	_, err := edn.ParseString("::kw")
	require.ErrorIs(t, err, edn.ErrInvalidSyntax)
}

// S6: symbolic float values.
func TestSymbolicFloats(t *testing.T) {
	f, err := mustParse(t, "##NaN").AsFloat()
	require.NoError(t, err)
	require.True(t, math.IsNaN(f))

	f, err = mustParse(t, "##Inf").AsFloat()
	require.NoError(t, err)
	require.True(t, math.IsInf(f, 1))

	f, err = mustParse(t, "##-Inf").AsFloat()
	require.NoError(t, err)
	require.True(t, math.IsInf(f, -1))

	_, err = edn.ParseString("##Foo")
	require.ErrorIs(t, err, edn.ErrInvalidSyntax)
}
