package edn

import (
	"unicode/utf8"

	"github.com/mcvoid/edn/internal/byteclass"
)

var namedChars = map[string]rune{
	"newline":   '\n',
	"space":     ' ',
	"tab":       '\t',
	"backspace": '\b',
	"formfeed":  '\f',
	"return":    '\r',
}

// readCharacter reads a \c character literal: a named character
// (\newline, \space, ...), a \uXXXX code point, an optional \oNNN octal
// code point (FeatureExperimental), or a single literal character. The
// literal must be immediately followed by a delimiter or EOF.
func (r *reader) readCharacter() (*Value, error) {
	start := r.pos
	r.advance() // '\'
	if r.eof() {
		return nil, r.errAt(ErrUnexpectedEOF, start, "unterminated character literal")
	}

	tokStart := r.pos
	first, firstWidth := utf8.DecodeRune(r.data[r.pos:])

	// A non-ASCII lead byte can only be a single literal character: named
	// characters and \u/\o escapes are always plain ASCII tokens.
	if firstWidth > 1 {
		r.pos += firstWidth
		if err := r.requireDelimiterAhead(start); err != nil {
			return nil, r.errAt(ErrInvalidCharacter, start, "character literal not followed by a delimiter")
		}
		return &Value{kind: KindChar, arena: r.arena, charV: first, span: Span{Start: start, End: r.pos}, hasSpan: true}, nil
	}

	r.advance()
	for !r.eof() && byteclass.IsIdentContinuation(r.data[r.pos]) {
		r.advance()
	}
	tok := r.data[tokStart:r.pos]

	maxHex := 4
	if r.opts.Features.Has(FeatureExperimental) {
		maxHex = 6
	}
	const maxOctal = 3

	var c rune
	switch {
	case len(tok) == 1:
		c = first
	case tok[0] == 'u' && len(tok) >= 5 && isHexRun(tok[1:min(len(tok), 1+maxHex)]):
		hexLen := min(len(tok)-1, maxHex)
		v, ok := decodeHexN(tok[1 : 1+hexLen])
		if !ok || v > 0x10FFFF {
			return nil, r.errAt(ErrInvalidCharacter, start, "invalid \\u escape")
		}
		c = v
		r.pos = tokStart + 1 + hexLen
	case r.opts.Features.Has(FeatureExperimental) && tok[0] == 'o' && len(tok) > 1 && len(tok)-1 <= maxOctal && isOctalRun(tok[1:]):
		v, ok := decodeOctal(tok[1:])
		if !ok || v > 0o377 {
			return nil, r.errAt(ErrInvalidCharacter, start, "invalid \\o escape")
		}
		c = v
	default:
		if name, ok := namedChars[string(tok)]; ok {
			c = name
		} else {
			return nil, r.errAt(ErrInvalidCharacter, start, "unknown character name \\%s", tok)
		}
	}

	if err := r.requireDelimiterAhead(start); err != nil {
		return nil, r.errAt(ErrInvalidCharacter, start, "character literal not followed by a delimiter")
	}
	return &Value{kind: KindChar, arena: r.arena, charV: c, span: Span{Start: start, End: r.pos}, hasSpan: true}, nil
}

func isHexRun(b []byte) bool {
	for _, c := range b {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

func isOctalRun(b []byte) bool {
	for _, c := range b {
		if c < '0' || c > '7' {
			return false
		}
	}
	return true
}

func decodeHexN(b []byte) (rune, bool) {
	var v rune
	for _, c := range b {
		var d rune
		switch {
		case c >= '0' && c <= '9':
			d = rune(c - '0')
		case c >= 'a' && c <= 'f':
			d = rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = rune(c-'A') + 10
		default:
			return 0, false
		}
		v = v*16 + d
	}
	return v, true
}

func decodeOctal(b []byte) (rune, bool) {
	var v rune
	for _, c := range b {
		v = v*8 + rune(c-'0')
	}
	if v > 0x10FFFF {
		return 0, false
	}
	return v, true
}
