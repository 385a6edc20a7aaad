package edn

import (
	"github.com/mcvoid/edn/internal/scan"
)

// readStringOrTextBlock dispatches between a normal "..." string and,
// when FeatureTextBlocks is enabled, a """...""" text block, distinguished
// by peeking two bytes ahead after the opening quote.
func (r *reader) readStringOrTextBlock() (*Value, error) {
	start := r.pos
	if r.opts.Features.Has(FeatureTextBlocks) {
		b1, ok1 := r.peekAt(1)
		b2, ok2 := r.peekAt(2)
		if ok1 && ok2 && b1 == '"' && b2 == '"' {
			return r.readTextBlock(start)
		}
	}
	return r.readString(start)
}

// readString reads a standard double-quoted string, using
// scan.FindStringTerminator's SWAR batch scan for the common escape-free
// case: the fast path scans for the next unescaped quote.
func (r *reader) readString(start int) (*Value, error) {
	r.advance() // opening '"'
	contentStart := r.pos
	end, hasEscapes, ok := scan.FindStringTerminator(r.data, r.pos)
	if !ok {
		return nil, r.errAt(ErrUnexpectedEOF, start, "unterminated string")
	}
	raw := r.data[contentStart:end]
	r.pos = end + 1 // consume closing quote

	if hasEscapes {
		if _, err := decodeEscapes(r.arena, raw); err != nil {
			return nil, r.errAt(ErrInvalidEscape, start, "%v", err)
		}
	}
	return &Value{
		kind: KindString, arena: r.arena,
		strBytes: raw, strHasEscapes: hasEscapes,
		span: Span{Start: start, End: r.pos}, hasSpan: true,
	}, nil
}

// readTextBlock reads a """-delimited text block: content runs until the
// next unescaped """, with common leading whitespace stripped per line
// the way Java/Kotlin text blocks do (FeatureTextBlocks).
func (r *reader) readTextBlock(start int) (*Value, error) {
	r.pos += 3 // opening """
	contentStart := r.pos
	for {
		if r.eof() {
			return nil, r.errAt(ErrUnexpectedEOF, start, "unterminated text block")
		}
		b := r.data[r.pos]
		if b == '\\' && r.pos+1 < len(r.data) {
			r.pos += 2
			continue
		}
		if b == '"' {
			b1, ok1 := r.peekAt(1)
			b2, ok2 := r.peekAt(2)
			if ok1 && ok2 && b1 == '"' && b2 == '"' {
				break
			}
		}
		r.pos++
	}
	raw := r.data[contentStart:r.pos]
	r.pos += 3 // closing """

	stripped, err := stripCommonIndent(r.arena, raw)
	if err != nil {
		return nil, r.errAt(ErrOutOfMemory, start, "%v", err)
	}
	hasEscapes := containsBackslash(stripped)
	return &Value{
		kind: KindString, arena: r.arena,
		strBytes: stripped, strHasEscapes: hasEscapes,
		span: Span{Start: start, End: r.pos}, hasSpan: true,
	}, nil
}

func containsBackslash(b []byte) bool {
	for _, c := range b {
		if c == '\\' {
			return true
		}
	}
	return false
}

// stripCommonIndent removes the text block's first line (if blank) and
// the minimum leading whitespace shared by all non-blank remaining lines,
// matching the common "incidental indentation" rule text-block dialects
// use so source-code indentation doesn't leak into the string's value.
func stripCommonIndent(a arenaAllocator, raw []byte) ([]byte, error) {
	lines := splitLines(raw)
	if len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	minIndent := -1
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		n := leadingSpaces(line)
		if minIndent < 0 || n < minIndent {
			minIndent = n
		}
	}
	if minIndent < 0 {
		minIndent = 0
	}
	var out []byte
	for i, line := range lines {
		if i > 0 {
			out = append(out, '\n')
		}
		if len(line) >= minIndent {
			out = append(out, line[minIndent:]...)
		} else {
			out = append(out, line...)
		}
	}
	return a.CopyBytes(out)
}

func splitLines(b []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i := 0; i < len(b); i++ {
		if b[i] == '\n' {
			lines = append(lines, b[start:i])
			start = i + 1
		}
	}
	lines = append(lines, b[start:])
	return lines
}

func isBlank(line []byte) bool {
	for _, c := range line {
		if c != ' ' && c != '\t' {
			return false
		}
	}
	return true
}

func leadingSpaces(line []byte) int {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return n
}

// arenaAllocator is the narrow slice of *arena.Arena's API this file
// needs, kept as an interface purely so stripCommonIndent's and
// decodeEscapes' signatures don't have to import internal/arena just to
// name the concrete type here.
type arenaAllocator interface {
	CopyBytes([]byte) ([]byte, error)
}

// decodeEscapes expands a raw string body's backslash escapes per
// the standard set, \t \n \r \\ \" \b \f \/ plus \uXXXX, materializing the
// result into a fresh arena allocation. The decoded copy is cached apart
// from the String Value's raw bytes, which stay a direct reference into
// the input buffer (text blocks, whose stripped bytes are an arena copy,
// are the exception).
func decodeEscapes(a arenaAllocator, raw []byte) ([]byte, error) {
	out := make([]byte, 0, len(raw))
	i := 0
	for i < len(raw) {
		c := raw[i]
		if c != '\\' {
			out = append(out, c)
			i++
			continue
		}
		i++
		if i >= len(raw) {
			return nil, ErrUnexpectedEOF
		}
		switch raw[i] {
		case 't':
			out = append(out, '\t')
			i++
		case 'n':
			out = append(out, '\n')
			i++
		case 'r':
			out = append(out, '\r')
			i++
		case '\\':
			out = append(out, '\\')
			i++
		case '"':
			out = append(out, '"')
			i++
		case 'b':
			out = append(out, '\b')
			i++
		case 'f':
			out = append(out, '\f')
			i++
		case '/':
			out = append(out, '/')
			i++
		case 'u':
			i++
			if i+4 > len(raw) {
				return nil, ErrInvalidEscape
			}
			r, ok := decodeHex4(raw[i : i+4])
			if !ok {
				return nil, ErrInvalidEscape
			}
			i += 4
			if r >= 0xD800 && r <= 0xDBFF && i+6 <= len(raw) && raw[i] == '\\' && raw[i+1] == 'u' {
				low, ok := decodeHex4(raw[i+2 : i+6])
				if ok && low >= 0xDC00 && low <= 0xDFFF {
					r = 0x10000 + (r-0xD800)<<10 + (low - 0xDC00)
					i += 6
				}
			}
			out = appendRune(out, r)
		default:
			return nil, ErrInvalidEscape
		}
	}
	return a.CopyBytes(out)
}

func decodeHex4(b []byte) (rune, bool) {
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

func appendRune(out []byte, r rune) []byte {
	if r < 0x80 {
		return append(out, byte(r))
	}
	buf := make([]byte, 4)
	n := encodeRuneUTF8(buf, r)
	return append(out, buf[:n]...)
}

// encodeRuneUTF8 is a minimal UTF-8 encoder so this package doesn't need
// to pull in unicode/utf8 just for one call site; it matches that
// package's encoding exactly for all valid scalar values.
func encodeRuneUTF8(buf []byte, r rune) int {
	switch {
	case r < 0x80:
		buf[0] = byte(r)
		return 1
	case r < 0x800:
		buf[0] = 0xC0 | byte(r>>6)
		buf[1] = 0x80 | byte(r&0x3F)
		return 2
	case r < 0x10000:
		buf[0] = 0xE0 | byte(r>>12)
		buf[1] = 0x80 | byte((r>>6)&0x3F)
		buf[2] = 0x80 | byte(r&0x3F)
		return 3
	default:
		buf[0] = 0xF0 | byte(r>>18)
		buf[1] = 0x80 | byte((r>>12)&0x3F)
		buf[2] = 0x80 | byte((r>>6)&0x3F)
		buf[3] = 0x80 | byte(r&0x3F)
		return 4
	}
}
