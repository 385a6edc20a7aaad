package edn_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcvoid/edn"
)

func TestParseMap(t *testing.T) {
	v := mustParse(t, `{:a 1 :b 2}`)
	entries, err := v.AsMap()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	ns, name, err := entries[0].Key.AsKeyword()
	require.NoError(t, err)
	require.Equal(t, "", ns)
	require.Equal(t, "a", name)
}

func TestMapOddFormsIsInvalidSyntax(t *testing.T) {
	_, err := edn.ParseString(`{:a 1 :b}`)
	require.ErrorIs(t, err, edn.ErrInvalidSyntax)
}

// S1: duplicate set elements are rejected.
func TestSetDuplicateElement(t *testing.T) {
	_, err := edn.ParseString(`#{1 2 2 3}`)
	require.ErrorIs(t, err, edn.ErrDuplicateElement)
}

func TestSetNoDuplicates(t *testing.T) {
	v := mustParse(t, `#{1 2 3}`)
	items, err := v.AsSet()
	require.NoError(t, err)
	require.Len(t, items, 3)
}

// S2: duplicate map keys are rejected.
func TestMapDuplicateKey(t *testing.T) {
	_, err := edn.ParseString(`{:a 1 :b 2 :a 3}`)
	require.ErrorIs(t, err, edn.ErrDuplicateKey)
}

func TestNamespacedMapDispatch(t *testing.T) {
	v := mustParse(t, `#:ns{:a 1 :b 2}`)
	entries, err := v.AsMap()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	ns, name, err := entries[0].Key.AsKeyword()
	require.NoError(t, err)
	require.Equal(t, "ns", ns)
	require.Equal(t, "a", name)
}

func TestNamespacedMapLeavesQualifiedKeysAlone(t *testing.T) {
	v := mustParse(t, `#:ns{:other/a 1}`)
	entries, err := v.AsMap()
	require.NoError(t, err)
	ns, name, err := entries[0].Key.AsKeyword()
	require.NoError(t, err)
	require.Equal(t, "other", ns)
	require.Equal(t, "a", name)
}

func TestAutoNamespacedMapDispatch(t *testing.T) {
	v := mustParse(t, `#::{:a 1}`)
	entries, err := v.AsMap()
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestUnterminatedSet(t *testing.T) {
	_, err := edn.ParseString(`#{1 2`)
	require.ErrorIs(t, err, edn.ErrUnexpectedEOF)
}

func TestUnterminatedMap(t *testing.T) {
	_, err := edn.ParseString(`{:a 1`)
	require.ErrorIs(t, err, edn.ErrUnexpectedEOF)
}
