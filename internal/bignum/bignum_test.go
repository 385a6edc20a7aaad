package bignum

import (
	"testing"

	"github.com/mcvoid/edn/internal/arena"
	"github.com/stretchr/testify/require"
)

func TestCleanNoUnderscore(t *testing.T) {
	a := arena.New()
	r := NewBigRef([]byte("12345"), 1, 10)
	cleaned, err := r.Clean(a)
	require.NoError(t, err)
	require.Equal(t, "12345", string(cleaned))
}

func TestCleanWithUnderscore(t *testing.T) {
	a := arena.New()
	r := NewBigRef([]byte("1_234_567"), 1, 10)
	cleaned, err := r.Clean(a)
	require.NoError(t, err)
	require.Equal(t, "1234567", string(cleaned))

	// Cached on second call.
	cleaned2, err := r.Clean(a)
	require.NoError(t, err)
	require.Equal(t, &cleaned[0], &cleaned2[0])
}

func TestBigRefEqual(t *testing.T) {
	a := arena.New()
	r1 := NewBigRef([]byte("1_000"), 1, 10)
	r2 := NewBigRef([]byte("1000"), 1, 10)
	require.True(t, r1.Equal(r2, a))

	r3 := NewBigRef([]byte("1000"), -1, 10)
	require.False(t, r1.Equal(r3, a))
}

func TestParseUintRadix(t *testing.T) {
	v, overflow, invalidAt := ParseUintRadix([]byte("ff"), 16)
	require.False(t, overflow)
	require.Equal(t, -1, invalidAt)
	require.Equal(t, uint64(255), v)

	_, _, invalidAt = ParseUintRadix([]byte("fg"), 16)
	require.Equal(t, 1, invalidAt)

	_, overflow, _ = ParseUintRadix([]byte("ffffffffffffffffff"), 16)
	require.True(t, overflow)
}

func TestParseUint64Decimal(t *testing.T) {
	v, overflow := ParseUint64Decimal([]byte("123"))
	require.False(t, overflow)
	require.Equal(t, uint64(123), v)

	v, overflow = ParseUint64Decimal([]byte("18446744073709551615"))
	require.False(t, overflow)
	require.Equal(t, uint64(18446744073709551615), v)

	_, overflow = ParseUint64Decimal([]byte("99999999999999999999999"))
	require.True(t, overflow)
}

func TestGcd64(t *testing.T) {
	require.Equal(t, uint64(6), Gcd64(54, 24))
	require.Equal(t, uint64(7), Gcd64(0, 7))
	require.Equal(t, uint64(7), Gcd64(7, 0))
	require.Equal(t, uint64(1), Gcd64(17, 13))
}

func TestClingerFastFloat(t *testing.T) {
	f, ok := ClingerFastFloat(314159, -5, false)
	require.True(t, ok)
	require.Equal(t, 3.14159, f)

	f, ok = ClingerFastFloat(5, 22, false)
	require.True(t, ok)
	require.Equal(t, 5e22, f)

	_, ok = ClingerFastFloat(1<<60, 0, false)
	require.False(t, ok)

	_, ok = ClingerFastFloat(1, 23, false)
	require.False(t, ok)
}
