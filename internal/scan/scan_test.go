package scan

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestSkipWhitespaceAndComments(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"   abc", 3},
		{"", 0},
		{"abc", 0},
		{"  ; a comment\nabc", 14},
		{",,,abc", 3},
		{"; only a comment", 16},
	}
	for _, c := range cases {
		got := SkipWhitespaceAndComments([]byte(c.in), 0)
		require.Equalf(t, c.want, got, "input %q", c.in)
	}
}

func TestFindStringTerminator(t *testing.T) {
	end, hasEsc, ok := FindStringTerminator([]byte(`hello"rest`), 0)
	require.True(t, ok)
	require.False(t, hasEsc)
	require.Equal(t, 5, end)

	end, hasEsc, ok = FindStringTerminator([]byte(`a\"b"rest`), 0)
	require.True(t, ok)
	require.True(t, hasEsc)
	require.Equal(t, 4, end)

	_, _, ok = FindStringTerminator([]byte(`unterminated`), 0)
	require.False(t, ok)
}

func TestScanDigits(t *testing.T) {
	require.Equal(t, 5, ScanDigits([]byte("12345abc"), 0))
	require.Equal(t, 0, ScanDigits([]byte("abc"), 0))
	require.Equal(t, 12, ScanDigits([]byte("123456789012"), 0))
}

func TestScanIdentifier(t *testing.T) {
	end, slash, adj := ScanIdentifier([]byte("foo/bar rest"), 0)
	require.Equal(t, 7, end)
	require.Equal(t, 3, slash)
	require.False(t, adj)

	end, slash, adj = ScanIdentifier([]byte("foo::bar rest"), 0)
	require.Equal(t, 8, end)
	require.Equal(t, -1, slash)
	require.True(t, adj)

	end, _, _ = ScanIdentifier([]byte("a"), 0)
	require.Equal(t, 1, end)
}

// scalarDigits is the byte-at-a-time reference used to fuzz the batched
// implementation against: SIMD output must agree bit-for-bit with the
// scalar fallback on random input.
func scalarDigits(data []byte, pos int) int {
	n := len(data)
	for pos < n && data[pos] >= '0' && data[pos] <= '9' {
		pos++
	}
	return pos
}

func TestScanDigitsMatchesScalarOnRandomInput(t *testing.T) {
	r := rand.New(rand.NewSource(12345))
	alphabet := []byte("0123456789abc ")
	for trial := 0; trial < 500; trial++ {
		n := r.Intn(40)
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = alphabet[r.Intn(len(alphabet))]
		}
		for start := 0; start <= n; start++ {
			require.Equal(t, scalarDigits(buf, start), ScanDigits(buf, start))
		}
	}
}

func scalarWhitespace(data []byte, pos int) int {
	n := len(data)
	for pos < n {
		for pos < n {
			switch data[pos] {
			case ' ', '\t', '\n', '\v', '\f', '\r', ',':
				pos++
				continue
			}
			if data[pos] >= 0x1C && data[pos] <= 0x1F {
				pos++
				continue
			}
			break
		}
		if pos < n && data[pos] == ';' {
			pos++
			for pos < n && data[pos] != '\n' {
				pos++
			}
			continue
		}
		break
	}
	return pos
}

func scalarFindStringTerminator(data []byte, pos int) (end int, hasEscapes bool, ok bool) {
	n := len(data)
	for pos < n {
		switch data[pos] {
		case '"':
			return pos, hasEscapes, true
		case '\\':
			hasEscapes = true
			pos += 2
		default:
			pos++
		}
	}
	return 0, hasEscapes, false
}

func TestFindStringTerminatorMatchesScalarOnRandomInput(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	alphabet := []byte(`ab\"xy`)
	for trial := 0; trial < 500; trial++ {
		n := r.Intn(40)
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = alphabet[r.Intn(len(alphabet))]
		}
		wantEnd, wantEsc, wantOK := scalarFindStringTerminator(buf, 0)
		gotEnd, gotEsc, gotOK := FindStringTerminator(buf, 0)
		require.Equal(t, wantOK, gotOK)
		if wantOK {
			require.Equal(t, wantEnd, gotEnd)
			require.Equal(t, wantEsc, gotEsc)
		}
	}
}

func TestSkipWhitespaceMatchesScalarOnRandomInput(t *testing.T) {
	r := rand.New(rand.NewSource(54321))
	alphabet := []byte(" \t\n,;xyz\n")
	for trial := 0; trial < 500; trial++ {
		n := r.Intn(60)
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = alphabet[r.Intn(len(alphabet))]
		}
		require.Equal(t, scalarWhitespace(buf, 0), SkipWhitespaceAndComments(buf, 0))
	}
}
