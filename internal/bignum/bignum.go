// Package bignum implements numeric-classification support for
// arbitrary-precision literals: zero-copy big integer/decimal references
// with lazy underscore cleaning, binary GCD for ratio reduction,
// byte-at-a-time decimal digit parsing with overflow detection, and the
// Clinger fast-path decimal-to-double conversion.
//
// A BigRef never copies the source digits unless it has to (underscores
// present), keeping the zero-copy philosophy the rest of the reader
// follows for its own buffers.
package bignum

import (
	"strconv"

	"github.com/mcvoid/edn/internal/arena"
)

// BigRef is a zero-copy reference into the parser's input buffer for a
// BigInt or BigDecimal literal: the original digit bytes (possibly
// containing underscore separators), a sign, and — for BigInt only — a
// radix in [2, 36].
type BigRef struct {
	Digits  []byte
	Sign    int8 // -1 or +1; zero value is never used (always explicit)
	Radix   uint8
	cleaned []byte
	hasClean bool
}

// NewBigRef builds a BigRef over a slice of the original input.
func NewBigRef(digits []byte, sign int8, radix uint8) *BigRef {
	return &BigRef{Digits: digits, Sign: sign, Radix: radix}
}

// Clean returns the digit run with any '_' separators stripped, allocating
// the cleaned copy from a exactly once and caching it thereafter. If
// there are no underscores to strip, it returns Digits unchanged with no
// allocation.
func (r *BigRef) Clean(a *arena.Arena) ([]byte, error) {
	if r.hasClean {
		return r.cleaned, nil
	}
	if !hasUnderscore(r.Digits) {
		r.cleaned = r.Digits
		r.hasClean = true
		return r.cleaned, nil
	}
	buf := make([]byte, 0, len(r.Digits))
	for _, b := range r.Digits {
		if b != '_' {
			buf = append(buf, b)
		}
	}
	cleaned, err := a.CopyBytes(buf)
	if err != nil {
		return nil, err
	}
	r.cleaned = cleaned
	r.hasClean = true
	return cleaned, nil
}

func hasUnderscore(b []byte) bool {
	for _, c := range b {
		if c == '_' {
			return true
		}
	}
	return false
}

// Equal compares two BigRefs by radix, sign, and cleaned digit bytes
// (never raw bytes, so "1_0" and "10" compare equal).
func (r *BigRef) Equal(o *BigRef, a *arena.Arena) bool {
	if r.Radix != o.Radix || r.Sign != o.Sign {
		return false
	}
	rc, _ := r.Clean(a)
	oc, _ := o.Clean(a)
	return string(rc) == string(oc)
}

// digitValue returns the numeric value of an ASCII digit/letter in
// base-36, or -1 if it isn't a valid digit at all.
func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// ParseUintRadix parses digits (with optional '_' separators already
// assumed stripped by the caller) as an unsigned magnitude in the given
// radix. overflow is true if the value doesn't fit in uint64. invalidAt
// is the index of the first byte that isn't a valid digit in this radix,
// or -1.
func ParseUintRadix(digits []byte, radix int) (v uint64, overflow bool, invalidAt int) {
	if len(digits) == 0 {
		return 0, false, 0
	}
	limit := ^uint64(0) / uint64(radix)
	for i, c := range digits {
		d := digitValue(c)
		if d < 0 || d >= radix {
			return 0, false, i
		}
		if v > limit {
			overflow = true
		}
		v *= uint64(radix)
		nv := v + uint64(d)
		if nv < v {
			overflow = true
		}
		v = nv
	}
	return v, overflow, -1
}

// ParseUint64Decimal is the decimal fast path: runs of ≤3 digits go
// through a short loop with no overflow check, longer runs
// fall back to ParseUintRadix(digits, 10) which carries full overflow
// detection.
func ParseUint64Decimal(digits []byte) (v uint64, overflow bool) {
	if len(digits) <= 3 {
		for _, c := range digits {
			v = v*10 + uint64(c-'0')
		}
		return v, false
	}
	v, overflow, _ = ParseUintRadix(digits, 10)
	return v, overflow
}

// Gcd64 computes the binary GCD of two non-negative int64 magnitudes, used
// for ratio reduction. Callers pass already-absolute values; a or b of 0
// returns the other.
func Gcd64(a, b uint64) uint64 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	shift := 0
	for (a|b)&1 == 0 {
		a >>= 1
		b >>= 1
		shift++
	}
	for a&1 == 0 {
		a >>= 1
	}
	for b != 0 {
		for b&1 == 0 {
			b >>= 1
		}
		if a > b {
			a, b = b, a
		}
		b -= a
	}
	return a << shift
}

// powersOf10 holds the exactly-representable powers of ten used by the
// Clinger fast path, 10^0 .. 10^22 (the largest power of ten that is exact
// in a float64 per Clinger 1990).
var powersOf10 = [23]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10,
	1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20, 1e21, 1e22,
}

// ClingerFastFloat attempts the Clinger exact-multiplication fast path:
// given an integer mantissa (as the decimal digits with the point
// removed) and a base-10 exponent such that value = mantissa * 10^exp,
// returns the correctly-rounded float64 and true if the fast path applies
// (mantissa fits exactly in a float64's 53-bit significand and the
// exponent is in the exactly-representable range), or ok=false if the
// caller must fall back to strconv.ParseFloat.
func ClingerFastFloat(mantissa uint64, exp int, neg bool) (f float64, ok bool) {
	const maxExactMantissa = 1<<53 - 1
	if mantissa > maxExactMantissa {
		return 0, false
	}
	if exp < -22 || exp > 22 {
		return 0, false
	}
	m := float64(mantissa)
	if exp >= 0 {
		f = m * powersOf10[exp]
	} else {
		f = m / powersOf10[-exp]
	}
	if neg {
		f = -f
	}
	return f, true
}

// ParseFloatFallback is the platform decimal-to-double routine this
// package falls back to: Go's strconv, which is already correctly-rounded.
func ParseFloatFallback(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
