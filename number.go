package edn

import (
	"math"

	"github.com/mcvoid/edn/internal/bignum"
	"github.com/mcvoid/edn/internal/byteclass"
	"github.com/mcvoid/edn/internal/scan"
)

// int64MinMagnitude is the magnitude of math.MinInt64, the one positive
// uint64 value that, negated, still fits int64: -9223372036854775808 is
// Int, but the same magnitude positive is BigInt.
const int64MinMagnitude = uint64(math.MaxInt64) + 1

// intOverflows reports whether magnitude v, applied with sign, exceeds
// int64's representable range.
func intOverflows(v uint64, sign int8) bool {
	if sign < 0 {
		return v > int64MinMagnitude
	}
	return v > uint64(math.MaxInt64)
}

// intFromMagnitude converts an in-range magnitude/sign pair to int64
// without relying on two's-complement wraparound for the MinInt64 edge
// case, even though that wraparound happens to produce the right answer.
func intFromMagnitude(v uint64, sign int8) int64 {
	if sign < 0 {
		if v == int64MinMagnitude {
			return math.MinInt64
		}
		return -int64(v)
	}
	return int64(v)
}

// readNumber implements the full numeric grammar: an optional sign, then
// one of a radix-prefixed integer (2r101, 36rZZ), a 0x/0-prefixed integer
// (when FeatureExtendedNumbers is set), or a plain decimal that may
// continue into a fraction, exponent, or an N/M suffix. It always
// consumes the longest valid numeric token before classifying it,
// accumulating digits and deferring to strconv.Parse for the float
// fallback path.
func (r *reader) readNumber() (*Value, error) {
	start := r.pos
	sign := int8(1)
	if b, ok := r.peek(); ok && (b == '+' || b == '-') {
		if b == '-' {
			sign = -1
		}
		r.advance()
	}

	if r.opts.Features.Has(FeatureExtendedNumbers) {
		if v, ok, err := r.tryReadRadixInt(start, sign); ok || err != nil {
			return v, err
		}
		if v, ok, err := r.tryReadPrefixedInt(start, sign); ok || err != nil {
			return v, err
		}
	}

	return r.readDecimal(start, sign)
}

// tryReadRadixInt recognizes the NrDDD form (e.g. 2r101, 36rZZ): digits,
// then 'r' or 'R', then digits in that radix. It only commits (returns
// ok=true) once it has seen the 'r'; otherwise it leaves r.pos untouched
// so the caller can retry as a plain decimal.
func (r *reader) tryReadRadixInt(start int, sign int8) (*Value, bool, error) {
	save := r.pos
	digitsStart := r.pos
	for {
		b, ok := r.peek()
		if !ok || !byteclass.IsDigit(b) {
			break
		}
		r.advance()
	}
	if r.pos == digitsStart {
		r.pos = save
		return nil, false, nil
	}
	radixDigits := r.data[digitsStart:r.pos]
	b, ok := r.peek()
	if !ok || (b != 'r' && b != 'R') {
		r.pos = save
		return nil, false, nil
	}
	radix64, overflow, _ := bignum.ParseUintRadix(radixDigits, 10)
	if overflow || radix64 < 2 || radix64 > 36 {
		return nil, false, r.errAt(ErrInvalidRadix, start, "radix out of range [2,36]")
	}
	r.advance() // 'r'/'R'

	digitsAt := r.pos
	end := r.scanIdentCont(digitsAt)
	if end == digitsAt {
		return nil, false, r.errAt(ErrInvalidNumber, start, "missing digits after radix prefix")
	}
	digits := cleanUnderscores(r.data[digitsAt:end], r.opts)
	r.pos = end
	if err := r.requireDelimiterAhead(start); err != nil {
		return nil, false, err
	}

	radix := uint8(radix64)
	v, overflow, invalidAt := bignum.ParseUintRadix(digits, int(radix))
	if invalidAt >= 0 {
		return nil, false, r.errAt(ErrInvalidRadix, start, "invalid digit for radix %d", radix)
	}
	if overflow || intOverflows(v, sign) {
		return r.makeBigInt(digits, sign, radix, start), true, nil
	}
	return r.makeInt(intFromMagnitude(v, sign), start), true, nil
}

// tryReadPrefixedInt recognizes 0x/0X hex and legacy 0NNN octal integers.
func (r *reader) tryReadPrefixedInt(start int, sign int8) (*Value, bool, error) {
	save := r.pos
	b, ok := r.peek()
	if !ok || b != '0' {
		return nil, false, nil
	}
	b2, ok2 := r.peekAt(1)
	if !ok2 {
		return nil, false, nil
	}
	var radix uint8
	var digitsAt int
	switch {
	case b2 == 'x' || b2 == 'X':
		radix = 16
		r.advance()
		r.advance()
		digitsAt = r.pos
	case byteclass.IsDigit(b2):
		radix = 8
		r.advance()
		digitsAt = r.pos
	default:
		return nil, false, nil
	}
	end := r.scanIdentCont(digitsAt)
	if end == digitsAt {
		r.pos = save
		return nil, false, nil
	}
	digits := cleanUnderscores(r.data[digitsAt:end], r.opts)
	r.pos = end
	if err := r.requireDelimiterAhead(start); err != nil {
		return nil, false, err
	}
	v, overflow, invalidAt := bignum.ParseUintRadix(digits, int(radix))
	if invalidAt >= 0 {
		r.pos = save
		return nil, false, nil
	}
	if overflow || intOverflows(v, sign) {
		return r.makeBigInt(digits, sign, radix, start), true, nil
	}
	return r.makeInt(intFromMagnitude(v, sign), start), true, nil
}

// scanIdentCont scans a run of identifier-continuation bytes starting at
// pos, used here to grab a maximal digit-or-underscore-or-letter run
// before validating it as digits in a particular radix.
func (r *reader) scanIdentCont(pos int) int {
	end, _, _ := scan.ScanIdentifier(r.data, pos)
	return end
}

// readDecimal parses the everyday Int/Float/BigInt/BigDecimal/Ratio
// literal forms: digits, optional fraction, optional exponent, optional
// N (BigInt) or M (BigDecimal) suffix, optional /denominator (Ratio).
func (r *reader) readDecimal(start int, sign int8) (*Value, error) {
	intStart := r.pos
	intEnd := scan.ScanDigits(r.data, r.pos)
	if intEnd > intStart && r.opts.Features.Has(FeatureUnderscores) {
		for intEnd < len(r.data) && (r.data[intEnd] == '_' || byteclass.IsDigit(r.data[intEnd])) {
			intEnd++
		}
	}
	if intEnd == intStart {
		return nil, r.errAt(ErrInvalidNumber, start, "expected digits")
	}
	r.pos = intEnd

	isFloat := false
	fracStart, fracEnd := -1, -1
	if b, ok := r.peek(); ok && b == '.' {
		if nb, ok2 := r.peekAt(1); !ok2 || byteclass.IsDigit(nb) || !byteclass.IsIdentContinuation(nb) {
			isFloat = true
			r.advance()
			fracStart = r.pos
			fracEnd = scan.ScanDigits(r.data, r.pos)
			r.pos = fracEnd
		}
	}

	expStart, expEnd, expNeg, hasExp := -1, -1, false, false
	if b, ok := r.peek(); ok && (b == 'e' || b == 'E') {
		save := r.pos
		r.advance()
		en := false
		if sb, ok2 := r.peek(); ok2 && (sb == '+' || sb == '-') {
			en = sb == '-'
			r.advance()
		}
		es := r.pos
		ee := scan.ScanDigits(r.data, r.pos)
		if ee == es {
			r.pos = save
		} else {
			isFloat = true
			hasExp = true
			expNeg = en
			expStart, expEnd = es, ee
			r.pos = ee
		}
	}

	// N/M suffix: BigInt / BigDecimal, mutually exclusive with a ratio.
	if b, ok := r.peek(); ok && b == 'N' && !isFloat {
		r.advance()
		if err := r.requireDelimiterAhead(start); err != nil {
			return nil, err
		}
		digits := r.data[intStart:intEnd]
		return r.makeBigInt(digits, sign, 10, start), nil
	}
	if b, ok := r.peek(); ok && b == 'M' {
		r.advance()
		if err := r.requireDelimiterAhead(start); err != nil {
			return nil, err
		}
		return r.makeBigDecimal(intStart, intEnd, fracStart, fracEnd, expStart, expEnd, expNeg, sign, start), nil
	}

	// Ratio: N/D, only when the core was a plain integer (no frac/exp).
	if r.opts.Features.Has(FeatureRatios) && !isFloat {
		if b, ok := r.peek(); ok && b == '/' {
			if nb, ok2 := r.peekAt(1); ok2 && byteclass.IsDigit(nb) {
				return r.readRatio(intStart, intEnd, sign, start)
			}
		}
	}

	if err := r.requireDelimiterAhead(start); err != nil {
		return nil, err
	}

	if !isFloat {
		digits := r.data[intStart:intEnd]
		v, overflow := bignum.ParseUint64Decimal(cleanUnderscores(digits, r.opts))
		if overflow || intOverflows(v, sign) {
			return r.makeBigInt(digits, sign, 10, start), nil
		}
		return r.makeInt(intFromMagnitude(v, sign), start), nil
	}

	return r.makeFloat(intStart, intEnd, fracStart, fracEnd, expStart, expEnd, expNeg, hasExp, sign, start)
}

func cleanUnderscores(b []byte, opts Options) []byte {
	if !opts.Features.Has(FeatureUnderscores) {
		return b
	}
	has := false
	for _, c := range b {
		if c == '_' {
			has = true
			break
		}
	}
	if !has {
		return b
	}
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c != '_' {
			out = append(out, c)
		}
	}
	return out
}

func (r *reader) requireDelimiterAhead(start int) error {
	b, ok := r.peek()
	if !ok {
		return nil
	}
	if byteclass.IsDelimiter(b) {
		return nil
	}
	return r.errAt(ErrInvalidNumber, start, "unexpected character %q after number", b)
}

func (r *reader) makeInt(v int64, start int) *Value {
	return &Value{kind: KindInt, arena: r.arena, intV: v, span: Span{Start: start, End: r.pos}, hasSpan: true}
}

func (r *reader) makeBigInt(digits []byte, sign int8, radix uint8, start int) *Value {
	return &Value{
		kind: KindBigInt, arena: r.arena,
		bigInt: bignum.NewBigRef(digits, sign, radix),
		span:   Span{Start: start, End: r.pos}, hasSpan: true,
	}
}

func (r *reader) makeBigDecimal(intStart, intEnd, fracStart, fracEnd, expStart, expEnd int, expNeg bool, sign int8, start int) *Value {
	// A BigDecimal's Digits run is the source text of the literal from its
	// first integer digit through the fraction and exponent, with the
	// decimal point and exponent marker kept as written (only the sign and
	// the M suffix are left out); BigDecimal is treated as an opaque
	// decimal-digit reference, and Clean just strips underscores.
	digitsStart := intStart
	digitsEnd := intEnd
	if fracEnd > fracStart {
		digitsEnd = fracEnd
	} else if fracStart >= 0 {
		digitsEnd = fracStart
	}
	if expEnd > expStart {
		digitsEnd = expEnd
	}
	digits := r.data[digitsStart:digitsEnd]
	return &Value{
		kind: KindBigDecimal, arena: r.arena,
		bigDec: bignum.NewBigRef(digits, sign, 10),
		span:   Span{Start: start, End: r.pos}, hasSpan: true,
	}
}

func (r *reader) makeFloat(intStart, intEnd, fracStart, fracEnd, expStart, expEnd int, expNeg bool, hasExp bool, sign int8, start int) (*Value, error) {
	mantissaDigits := make([]byte, 0, (intEnd-intStart)+(fracEnd-fracStart))
	mantissaDigits = append(mantissaDigits, cleanUnderscores(r.data[intStart:intEnd], r.opts)...)
	fracLen := 0
	if fracEnd > fracStart {
		fd := cleanUnderscores(r.data[fracStart:fracEnd], r.opts)
		mantissaDigits = append(mantissaDigits, fd...)
		fracLen = len(fd)
	}

	exp := -fracLen
	if hasExp {
		ed := cleanUnderscores(r.data[expStart:expEnd], r.opts)
		ev, overflow, _ := bignum.ParseUintRadix(ed, 10)
		if overflow || ev > 1<<30 {
			// absurdly large exponent: always falls back to strconv, which
			// will itself report overflow to +/-Inf per IEEE 754 semantics.
			return r.floatFallback(intStart, intEnd, fracStart, fracEnd, expStart, expEnd, expNeg, sign, start)
		}
		if expNeg {
			exp -= int(ev)
		} else {
			exp += int(ev)
		}
	}

	mantissa, overflow := bignum.ParseUint64Decimal(mantissaDigits)
	if !overflow {
		if f, ok := bignum.ClingerFastFloat(mantissa, exp, sign < 0); ok {
			return &Value{kind: KindFloat, arena: r.arena, floatV: f, span: Span{Start: start, End: r.pos}, hasSpan: true}, nil
		}
	}
	return r.floatFallback(intStart, intEnd, fracStart, fracEnd, expStart, expEnd, expNeg, sign, start)
}

func (r *reader) floatFallback(intStart, intEnd, fracStart, fracEnd, expStart, expEnd int, expNeg bool, sign int8, start int) (*Value, error) {
	s := make([]byte, 0, r.pos-start)
	if sign < 0 {
		s = append(s, '-')
	}
	s = append(s, cleanUnderscores(r.data[intStart:intEnd], r.opts)...)
	if fracEnd > fracStart {
		s = append(s, '.')
		s = append(s, cleanUnderscores(r.data[fracStart:fracEnd], r.opts)...)
	}
	if expEnd > expStart {
		s = append(s, 'e')
		if expNeg {
			s = append(s, '-')
		}
		s = append(s, cleanUnderscores(r.data[expStart:expEnd], r.opts)...)
	}
	f, err := bignum.ParseFloatFallback(string(s))
	if err != nil {
		return nil, r.errAt(ErrInvalidNumber, start, "%v", err)
	}
	return &Value{kind: KindFloat, arena: r.arena, floatV: f, span: Span{Start: start, End: r.pos}, hasSpan: true}, nil
}

// readRatio reads the /denominator half of an N/D ratio literal, whose
// numerator digits [numStart,numEnd) have already been consumed, reducing
// to lowest terms with a positive denominator, and escalating to BigRatio
// on magnitude overflow.
func (r *reader) readRatio(numStart, numEnd int, sign int8, start int) (*Value, error) {
	r.advance() // '/'
	denStart := r.pos
	denEnd := scan.ScanDigits(r.data, r.pos)
	r.pos = denEnd
	if err := r.requireDelimiterAhead(start); err != nil {
		return nil, err
	}

	numDigits := cleanUnderscores(r.data[numStart:numEnd], r.opts)
	denDigits := cleanUnderscores(r.data[denStart:denEnd], r.opts)

	num, numOverflow := bignum.ParseUint64Decimal(numDigits)
	den, denOverflow := bignum.ParseUint64Decimal(denDigits)
	if den == 0 {
		return nil, r.errAt(ErrDivideByZero, start, "ratio denominator is zero")
	}
	if numOverflow || denOverflow {
		return &Value{
			kind: KindBigRatio, arena: r.arena,
			bigRatioNum: bignum.NewBigRef(numDigits, sign, 10),
			bigRatioDen: bignum.NewBigRef(denDigits, 1, 10),
			span:        Span{Start: start, End: r.pos}, hasSpan: true,
		}, nil
	}
	g := bignum.Gcd64(num, den)
	if g > 1 {
		num /= g
		den /= g
	}
	if den == 1 {
		// A ratio that reduces to a whole number is an Int, not a Ratio:
		// 6/3 collapses to Int 2, and 0/5 collapses to Int 0.
		if intOverflows(num, sign) {
			return r.makeBigInt(r.data[numStart:numEnd], sign, 10, start), nil
		}
		return r.makeInt(intFromMagnitude(num, sign), start), nil
	}
	return &Value{
		kind: KindRatio, arena: r.arena,
		ratioNum: int64(num) * int64(sign), ratioDen: int64(den),
		span: Span{Start: start, End: r.pos}, hasSpan: true,
	}, nil
}
