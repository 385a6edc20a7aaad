package edn

import (
	"io"

	"github.com/mcvoid/edn/internal/arena"
	"github.com/mcvoid/edn/internal/byteclass"
	"github.com/mcvoid/edn/internal/scan"
)

// reader is the parser driver: a single forward-only cursor over the
// input plus the state needed to build Values as it goes. EDN's grammar
// is recursive by nature (a collection's elements are themselves full
// EDN forms), so this reader is a straightforward recursive-descent
// parser, guarded by an explicit depth cap and reporting failures through
// the sentinel error taxonomy.
type reader struct {
	data  []byte
	pos   int
	opts  Options
	arena *arena.Arena
	depth int

	// inDiscard counts nested #_ discard contexts. While positive, tagged
	// literals must not invoke their registered reader and unknown tags
	// are never escalated to an error, regardless of Options.UnknownTag:
	// a discarded subtree's side effects (and failures) are never
	// observable.
	inDiscard int
}

// Parse reads a single EDN value from r using DefaultOptions.
func Parse(r io.Reader) (*Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newError(ErrReaderError, "%v", err)
	}
	return ParseWithOptions(data, DefaultOptions())
}

// ParseString reads a single EDN value from s using DefaultOptions.
func ParseString(s string) (*Value, error) {
	return ParseWithOptions([]byte(s), DefaultOptions())
}

// ParseBytes reads a single EDN value from b using DefaultOptions.
func ParseBytes(b []byte) (*Value, error) {
	return ParseWithOptions(b, DefaultOptions())
}

// ParseWithOptions reads a single EDN value from data under opts. Every
// Value reachable from the result shares one arena allocated for this
// call; discard the result to free that memory
// for garbage collection.
func ParseWithOptions(data []byte, opts Options) (*Value, error) {
	r := &reader{
		data:  data,
		opts:  opts,
		arena: arena.New(),
	}
	v, err := r.readTopLevel()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *reader) readTopLevel() (*Value, error) {
	v, err := r.readValue()
	if err != nil {
		return nil, err
	}
	if r.opts.Strict {
		r.skipWhitespace()
		if r.pos < len(r.data) {
			return nil, r.errAt(ErrTrailingContent, r.pos, "trailing content after top-level value")
		}
	}
	return v, nil
}

func (r *reader) readerArena() *ReaderArena { return &ReaderArena{a: r.arena} }

func (r *reader) errAt(kind error, pos int, format string, args ...any) *Error {
	return newErrorAt(kind, Span{Start: pos, End: r.pos}, format, args...)
}

func (r *reader) skipWhitespace() {
	r.pos = scan.SkipWhitespaceAndComments(r.data, r.pos)
}

func (r *reader) eof() bool { return r.pos >= len(r.data) }

func (r *reader) peek() (byte, bool) {
	if r.eof() {
		return 0, false
	}
	return r.data[r.pos], true
}

func (r *reader) peekAt(offset int) (byte, bool) {
	p := r.pos + offset
	if p >= len(r.data) {
		return 0, false
	}
	return r.data[p], true
}

func (r *reader) advance() byte {
	b := r.data[r.pos]
	r.pos++
	return b
}

func (r *reader) enterNested() error {
	r.depth++
	if r.depth > r.opts.maxDepth() {
		return r.errAt(ErrRecursionTooDeep, r.pos, "nesting exceeds max depth %d", r.opts.maxDepth())
	}
	return nil
}

func (r *reader) exitNested() { r.depth-- }

// readValue reads exactly one top-level-or-nested EDN form, skipping any
// leading whitespace/comments, and handling the discard macro (#_) by
// looping: a discarded form is never itself a value, so readValue keeps
// going until it finds one, or runs out of input.
func (r *reader) readValue() (*Value, error) {
	for {
		r.skipWhitespace()
		start := r.pos
		b, ok := r.peek()
		if !ok {
			return nil, r.errAt(ErrUnexpectedEOF, start, "expected a value")
		}

		switch {
		case b == '(':
			return r.readSeq('(', ')', KindList)
		case b == '[':
			return r.readSeq('[', ']', KindVector)
		case b == '{':
			return r.readMap("")
		case b == ')' || b == ']' || b == '}':
			return nil, r.errAt(ErrUnmatchedDelimiter, start, "unexpected delimiter %q", b)
		case b == '"':
			return r.readStringOrTextBlock()
		case b == '\\':
			return r.readCharacter()
		case b == ':':
			return r.readKeyword()
		case b == '^':
			v, discarded, err := r.readMetadataPrefixed()
			if err != nil {
				return nil, err
			}
			if discarded {
				continue
			}
			return v, nil
		case b == '#':
			v, discarded, err := r.readDispatch()
			if err != nil {
				return nil, err
			}
			if discarded {
				continue
			}
			return v, nil
		case byteclass.IsDigit(b):
			return r.readNumber()
		case (b == '+' || b == '-') && r.nextIsDigit(1):
			return r.readNumber()
		default:
			return r.readIdentifierForm()
		}
	}
}

func (r *reader) nextIsDigit(offset int) bool {
	b, ok := r.peekAt(offset)
	return ok && byteclass.IsDigit(b)
}

// readSeq reads a List or Vector: open, zero or more values, close.
func (r *reader) readSeq(open, close byte, kind Kind) (*Value, error) {
	start := r.pos
	r.advance() // open
	if err := r.enterNested(); err != nil {
		return nil, err
	}
	defer r.exitNested()

	var items []*Value
	for {
		r.skipWhitespace()
		b, ok := r.peek()
		if !ok {
			return nil, r.errAt(ErrUnexpectedEOF, start, "unterminated %q", open)
		}
		if b == close {
			r.advance()
			break
		}
		v, err := r.readValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return &Value{kind: kind, arena: r.arena, items: items, span: Span{Start: start, End: r.pos}, hasSpan: true}, nil
}
