package edn_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/mcvoid/edn"
)

func TestAccessorMismatchIsErrType(t *testing.T) {
	v := mustParse(t, `42`)

	_, err := v.AsString()
	require.ErrorIs(t, err, edn.ErrType)

	_, err = v.AsBool()
	require.ErrorIs(t, err, edn.ErrType)

	_, _, err = v.AsSymbol()
	require.ErrorIs(t, err, edn.ErrType)

	_, err = v.AsList()
	require.ErrorIs(t, err, edn.ErrType)
}

func TestErrorUnwrapsToSentinel(t *testing.T) {
	_, err := edn.ParseString("(")
	require.ErrorIs(t, err, edn.ErrUnexpectedEOF)

	var ednErr *edn.Error
	require.ErrorAs(t, err, &ednErr)
	require.True(t, ednErr.HasSpan)
}

func TestSpanRecorded(t *testing.T) {
	v := mustParse(t, `  42  `)
	span, ok := v.Span()
	require.True(t, ok)
	require.Equal(t, 2, span.Start)
	require.Equal(t, 4, span.End)
}

func TestListCountAndGet(t *testing.T) {
	v := mustParse(t, `(1 2 3)`)
	require.Equal(t, 3, v.ListCount())
	n, err := v.ListGet(1).AsInt()
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestMapCount(t *testing.T) {
	v := mustParse(t, `{:a 1 :b 2 :c 3}`)
	require.Equal(t, 3, v.MapCount())
}

func TestSetCount(t *testing.T) {
	v := mustParse(t, `#{1 2 3}`)
	require.Equal(t, 3, v.SetCount())
}

func TestBigIntViewFields(t *testing.T) {
	v := mustParse(t, `9223372036854775808`)
	got, err := v.AsBigInt()
	require.NoError(t, err)
	want := edn.BigIntView{Digits: []byte("9223372036854775808"), Sign: 1, Radix: 10}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AsBigInt mismatch (-want +got):\n%s", diff)
	}
}

func TestDebugStringDoesNotPanic(t *testing.T) {
	v := mustParse(t, `{:a [1 "x" \c #{1}] :b nil}`)
	require.NotEmpty(t, v.String())
}
