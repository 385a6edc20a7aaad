// Package byteclass implements the 256-entry byte classification tables
// that drive both the scalar fallback and the SIMD-styled scanners in
// internal/scan. Grounded on simdjson-go's internal/scanner character
// class lookup table (bit-flag table indexed by byte value) and
// mcvoid-json's ASCII class table (one table entry per input byte,
// consulted by the dispatch loop).
package byteclass

// Flag is a bitset of the classes a single byte belongs to.
type Flag uint8

const (
	Whitespace Flag = 1 << iota
	Delimiter
	IdentStart
	IdentCont
	Digit
	Sign
)

var table [256]Flag

func set(b byte, f Flag) { table[b] |= f }

func init() {
	// Whitespace per spec §4.2: space, tab, LF, VT, FF, CR, comma, and the
	// ASCII group-separator control codes 0x1C-0x1F.
	for _, b := range []byte{' ', '\t', '\n', '\v', '\f', '\r', ','} {
		set(b, Whitespace)
	}
	for b := byte(0x1C); b <= 0x1F; b++ {
		set(b, Whitespace)
	}

	// Delimiters: whitespace plus the EDN/Clojure punctuation that always
	// terminates a token.
	for b := 0; b < 256; b++ {
		if table[byte(b)]&Whitespace != 0 {
			table[byte(b)] |= Delimiter
		}
	}
	for _, b := range []byte{'"', '#', '\'', '(', ')', ',', ';', '@', '[', '\\', ']', '^', '`', '{', '}', '~'} {
		set(b, Delimiter)
	}

	for b := '0'; b <= '9'; b++ {
		set(byte(b), Digit)
	}
	set('+', Sign)
	set('-', Sign)

	// Identifier-start/continuation bytes per spec §4.6: alphabetic, and
	// the symbol-shaped punctuation EDN symbols/keywords may contain.
	for b := 'a'; b <= 'z'; b++ {
		set(byte(b), IdentStart|IdentCont)
	}
	for b := 'A'; b <= 'Z'; b++ {
		set(byte(b), IdentStart|IdentCont)
	}
	for b := '0'; b <= '9'; b++ {
		set(byte(b), IdentCont)
	}
	for _, b := range []byte{'*', '+', '!', '-', '_', '?', '$', '%', '&', '=', '<', '>', '.', '/', ':', '#'} {
		set(b, IdentStart|IdentCont)
	}
}

// Is reports whether b belongs to every class in f.
func Is(b byte, f Flag) bool { return table[b]&f == f }

func IsWhitespace(b byte) bool  { return table[b]&Whitespace != 0 }
func IsDelimiter(b byte) bool   { return table[b]&Delimiter != 0 }
func IsDigit(b byte) bool       { return table[b]&Digit != 0 }
func IsSign(b byte) bool        { return table[b]&Sign != 0 }
func IsIdentStart(b byte) bool  { return table[b]&IdentStart != 0 }
func IsIdentCont(b byte) bool   { return table[b]&IdentCont != 0 }
func IsIdentContinuation(b byte) bool {
	// A byte continues an identifier token if it isn't a delimiter; this
	// is the coarse, SIMD-scannable test used by scan.ScanIdentifier, as
	// opposed to IsIdentCont which is the stricter first-class-citizen set
	// used when classifying individual characters.
	return !IsDelimiter(b)
}
