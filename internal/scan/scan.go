// Package scan implements four vectorized scanning primitives:
// skip-whitespace-and-comments, find-string-terminator, scan-digits, and
// scan-identifier. Each processes input 8 bytes at a time using the SWAR
// tricks in swar.go, with a scalar byte-at-a-time tail and a short-input
// guard that skips straight to the scalar path below batchSize bytes.
//
// Grounded on simdjson-go's internal/scanner (character-class lookup
// tables, chunked scanning contract) and go-mizu's
// blueprints/search/.../simd_batch_tokenizer.go (8-byte batch digit/ident
// scanning). No architecture-specific assembly backend is provided — see
// DESIGN.md for why — so every scanner here is also its own scalar
// fallback's bit-identical sibling by construction, rather than a separate
// implementation that must be cross-checked against one: cross-platform
// confidence comes from fuzzing this single implementation against a
// byte-by-byte reference instead.
package scan

import "github.com/mcvoid/edn/internal/byteclass"

// SkipWhitespaceAndComments advances pos across runs of whitespace and
// ';'-to-end-of-line comments, returning the index of the first byte that
// is neither, or len(data) if the input is exhausted.
func SkipWhitespaceAndComments(data []byte, pos int) int {
	n := len(data)
	for pos < n {
		// Batch-skip a run of plain whitespace 8 bytes at a time.
		for pos+batchSize <= n {
			w := loadWord(data, pos)
			if allWhitespace(w) {
				pos += batchSize
				continue
			}
			break
		}
		for pos < n && byteclass.IsWhitespace(data[pos]) {
			pos++
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

// allWhitespace reports whether every byte packed into w is whitespace,
// by OR-ing together exact per-lane zero-byte masks for each whitespace
// code point and checking all 8 lanes were covered. Whitespace is a
// small, fixed set, so this stays a handful of SWAR passes rather than a
// generic one.
func allWhitespace(w uint64) bool {
	const lo7 = 0x7F7F7F7F7F7F7F7F
	covered := uint64(0)
	for _, c := range whitespaceBytes {
		broadcast := loBits * uint64(c)
		x := w ^ broadcast
		// carry-free form: sets a lane's high bit only where x's byte is 0.
		zero := ^(((x & lo7) + lo7) | x | lo7)
		covered |= zero
	}
	return covered == hiBits
}

var whitespaceBytes = [...]byte{' ', '\t', '\n', '\v', '\f', '\r', ',', 0x1C, 0x1D, 0x1E, 0x1F}

// FindStringTerminator returns the index of the unescaped closing '"'
// starting the scan at pos (the byte just past the opening quote), along
// with whether any '\\' was observed. ok is false if the string is
// unterminated.
func FindStringTerminator(data []byte, pos int) (end int, hasEscapes bool, ok bool) {
	n := len(data)
	for pos < n {
		if pos+batchSize <= n {
			w := loadWord(data, pos)
			if !hasByteEq(w, '"') && !hasByteEq(w, '\\') {
				pos += batchSize
				continue
			}
		}
		c := data[pos]
		if c == '"' {
			return pos, hasEscapes, true
		}
		if c == '\\' {
			hasEscapes = true
			pos += 2 // skip the escaped byte; a lone trailing backslash
			// pushes pos past n, caught by the loop condition.
			continue
		}
		pos++
	}
	return 0, hasEscapes, false
}

// ScanDigits returns the index of the first byte at or after pos that is
// not an ASCII digit.
func ScanDigits(data []byte, pos int) int {
	n := len(data)
	for pos+batchSize <= n {
		w := loadWord(data, pos)
		if hasByteLess(w, '0') || hasDigitAbove(w) {
			break
		}
		pos += batchSize
	}
	for pos < n && byteclass.IsDigit(data[pos]) {
		pos++
	}
	return pos
}

// hasDigitAbove reports whether any byte in w is greater than '9', using
// the "hasmore" bit-twiddling-hacks formula (valid for bytes < 128, true
// of all ASCII digit-run input).
func hasDigitAbove(w uint64) bool {
	const n = '9'
	return ((w+loBits*(127-n))|w)&hiBits != 0
}

// ScanIdentifier scans an identifier-shaped token starting at pos, up to
// the first delimiter byte. It reports end (the delimiter index, or
// len(data)), slash (the index of the first '/' in the token, the
// candidate namespace/name separator, or -1), and hasAdjacentColons (whether two ':' bytes appeared back
// to back anywhere in the token, which the identifier reader rejects).
func ScanIdentifier(data []byte, pos int) (end int, slash int, hasAdjacentColons bool) {
	n := len(data)
	slash = -1
	start := pos

	// Short-input guard: below one batch, go straight to the scalar path.
	if n-pos < batchSize {
		return scanIdentifierScalar(data, pos)
	}

	for pos < n {
		if pos+batchSize <= n {
			w := loadWord(data, pos)
			if allIdentCont(w) {
				scanSlashAndColons(data, pos, pos+batchSize, &slash, &hasAdjacentColons)
				pos += batchSize
				continue
			}
		}
		if byteclass.IsDelimiter(data[pos]) {
			break
		}
		if data[pos] == '/' && slash == -1 {
			slash = pos
		}
		if data[pos] == ':' && pos > start && data[pos-1] == ':' {
			hasAdjacentColons = true
		}
		pos++
	}
	return pos, slash, hasAdjacentColons
}

func scanIdentifierScalar(data []byte, pos int) (end int, slash int, hasAdjacentColons bool) {
	n := len(data)
	slash = -1
	start := pos
	for pos < n && !byteclass.IsDelimiter(data[pos]) {
		if data[pos] == '/' && slash == -1 {
			slash = pos
		}
		if data[pos] == ':' && pos > start && data[pos-1] == ':' {
			hasAdjacentColons = true
		}
		pos++
	}
	return pos, slash, hasAdjacentColons
}

func allIdentCont(w uint64) bool {
	for i := 0; i < 8; i++ {
		b := byte(w >> (8 * i))
		if byteclass.IsDelimiter(b) {
			return false
		}
	}
	return true
}

func scanSlashAndColons(data []byte, from, to int, slash *int, hasAdjacentColons *bool) {
	for i := from; i < to; i++ {
		if data[i] == '/' && *slash == -1 {
			*slash = i
		}
		if data[i] == ':' && i > 0 && data[i-1] == ':' {
			*hasAdjacentColons = true
		}
	}
}
