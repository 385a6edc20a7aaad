package edn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcvoid/edn"
)

// boundaryCase runs one source string through ParseString (or
// ParseWithOptions when strict is set) and hands the result to check.
func boundaryCase(t *testing.T, src string, strict bool, check func(*testing.T, *edn.Value, error)) {
	t.Helper()
	if strict {
		opts := edn.DefaultOptions()
		opts.Strict = true
		v, err := edn.ParseWithOptions([]byte(src), opts)
		check(t, v, err)
		return
	}
	v, err := edn.ParseString(src)
	check(t, v, err)
}

func TestBoundaryScenarios(t *testing.T) {
	boundaryCase(t, `#{1 2 2 3}`, false, func(t *testing.T, v *edn.Value, err error) {
		require.ErrorIs(t, err, edn.ErrDuplicateElement)
	})

	boundaryCase(t, `{:a 1 :b 2 :a 3}`, false, func(t *testing.T, v *edn.Value, err error) {
		require.ErrorIs(t, err, edn.ErrDuplicateKey)
	})

	boundaryCase(t, `(1 2 3)`, false, func(t *testing.T, v *edn.Value, err error) {
		require.NoError(t, err)
		items, err := v.AsList()
		require.NoError(t, err)
		require.Len(t, items, 3)
		for i, want := range []int64{1, 2, 3} {
			n, err := items[i].AsInt()
			require.NoError(t, err)
			require.Equal(t, want, n)
		}
	})

	boundaryCase(t, `5/0`, false, func(t *testing.T, v *edn.Value, err error) {
		require.ErrorIs(t, err, edn.ErrDivideByZero)
	})

	boundaryCase(t, `"hello\nworld"`, false, func(t *testing.T, v *edn.Value, err error) {
		require.NoError(t, err)
		raw, hasEscapes, err := v.RawString()
		require.NoError(t, err)
		require.True(t, hasEscapes)
		require.Len(t, raw, 13)
		decoded, err := v.AsString()
		require.NoError(t, err)
		require.Len(t, decoded, 11)
	})

	boundaryCase(t, `##Foo`, false, func(t *testing.T, v *edn.Value, err error) {
		require.ErrorIs(t, err, edn.ErrInvalidSyntax)
	})

	boundaryCase(t, `#inst "2024-01-01"`, false, func(t *testing.T, v *edn.Value, err error) {
		require.NoError(t, err)
		tag, _, err := v.AsTagged()
		require.NoError(t, err)
		require.Equal(t, "inst", tag)
	})

	boundaryCase(t, `#_ 1 2`, true, func(t *testing.T, v *edn.Value, err error) {
		require.NoError(t, err)
		n, err := v.AsInt()
		require.NoError(t, err)
		require.Equal(t, int64(2), n)
	})
	boundaryCase(t, `#_ 1 2`, false, func(t *testing.T, v *edn.Value, err error) {
		require.NoError(t, err)
		n, err := v.AsInt()
		require.NoError(t, err)
		require.Equal(t, int64(2), n)
	})

	boundaryCase(t, `9223372036854775808`, false, func(t *testing.T, v *edn.Value, err error) {
		require.NoError(t, err)
		require.Equal(t, edn.KindBigInt, v.Kind())
	})
	boundaryCase(t, `-9223372036854775808`, false, func(t *testing.T, v *edn.Value, err error) {
		require.NoError(t, err)
		require.Equal(t, edn.KindInt, v.Kind())
		n, err := v.AsInt()
		require.NoError(t, err)
		require.Equal(t, int64(math.MinInt64), n)
	})
	boundaryCase(t, `9223372036854775807N`, false, func(t *testing.T, v *edn.Value, err error) {
		require.NoError(t, err)
		require.Equal(t, edn.KindBigInt, v.Kind())
	})
}

// S10: nesting deeper than the configured cap fails closed.
func TestBoundaryDeepNesting(t *testing.T) {
	opts := edn.DefaultOptions()
	opts.MaxDepth = 4
	src := "[[[[[1]]]]]"
	_, err := edn.ParseWithOptions([]byte(src), opts)
	require.ErrorIs(t, err, edn.ErrRecursionTooDeep)
}
