package edn_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcvoid/edn"
)

// S7: unknown tags under each UnknownTagMode.
func TestUnknownTagPassthrough(t *testing.T) {
	opts := edn.DefaultOptions()
	opts.UnknownTag = edn.Passthrough
	v, err := edn.ParseWithOptions([]byte(`#inst "2024-01-01"`), opts)
	require.NoError(t, err)
	tag, wrapped, err := v.AsTagged()
	require.NoError(t, err)
	require.Equal(t, "inst", tag)
	raw, _, err := wrapped.RawString()
	require.NoError(t, err)
	require.Equal(t, "2024-01-01", string(raw))
}

func TestUnknownTagUnwrap(t *testing.T) {
	opts := edn.DefaultOptions()
	opts.UnknownTag = edn.Unwrap
	v, err := edn.ParseWithOptions([]byte(`#inst "2024-01-01"`), opts)
	require.NoError(t, err)
	require.Equal(t, edn.KindString, v.Kind())
}

func TestUnknownTagError(t *testing.T) {
	opts := edn.DefaultOptions()
	opts.UnknownTag = edn.ErrorOnUnknown
	_, err := edn.ParseWithOptions([]byte(`#inst "2024-01-01"`), opts)
	require.ErrorIs(t, err, edn.ErrUnknownTag)
}

func TestRegisteredTagFunc(t *testing.T) {
	reg := edn.NewRegistry()
	reg.Register("upper", func(wrapped *edn.Value, a *edn.ReaderArena) (*edn.Value, error) {
		raw, _, err := wrapped.RawString()
		if err != nil {
			return nil, err
		}
		return a.NewString(string(raw) + "!")
	})
	opts := edn.DefaultOptions()
	opts.Registry = reg
	v, err := edn.ParseWithOptions([]byte(`#upper "hi"`), opts)
	require.NoError(t, err)
	s, err := v.AsString()
	require.NoError(t, err)
	require.Equal(t, "hi!", s)
}

// S8: discard reads and discards exactly the next form.
func TestDiscardMacro(t *testing.T) {
	n, err := mustParse(t, `#_ 1 2`).AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestDiscardMacroStrictLeavesOneValue(t *testing.T) {
	opts := edn.DefaultOptions()
	opts.Strict = true
	v, err := edn.ParseWithOptions([]byte(`#_ 1 2`), opts)
	require.NoError(t, err)
	n, err := v.AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestDiscardMacroInCollection(t *testing.T) {
	v := mustParse(t, `[1 #_ 2 3]`)
	items, err := v.AsVector()
	require.NoError(t, err)
	require.Len(t, items, 2)
	a, err := items[0].AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(1), a)
	b, err := items[1].AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(3), b)
}

// Discarded unknown tags must not invoke a registered reader or error
// under ErrorOnUnknown: discard suppresses both.
func TestDiscardSuppressesRegisteredTagFunc(t *testing.T) {
	reg := edn.NewRegistry()
	called := false
	reg.Register("boom", func(wrapped *edn.Value, a *edn.ReaderArena) (*edn.Value, error) {
		called = true
		return nil, require.AnError
	})
	opts := edn.DefaultOptions()
	opts.Registry = reg
	v, err := edn.ParseWithOptions([]byte(`[#_ #boom "x" 1]`), opts)
	require.NoError(t, err)
	require.False(t, called)
	items, err := v.AsVector()
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestDiscardSuppressesUnknownTagError(t *testing.T) {
	opts := edn.DefaultOptions()
	opts.UnknownTag = edn.ErrorOnUnknown
	v, err := edn.ParseWithOptions([]byte(`[#_ #inst "2024" 1]`), opts)
	require.NoError(t, err)
	items, err := v.AsVector()
	require.NoError(t, err)
	require.Len(t, items, 1)
}
