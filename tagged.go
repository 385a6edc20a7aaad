package edn

import (
	"github.com/mcvoid/edn/internal/byteclass"
	"github.com/mcvoid/edn/internal/scan"
)

// readDispatch handles every '#'-prefixed form, including the ##Inf/
// ##-Inf/##NaN symbolic floats. discarded is true when the form was #_
// (a discard macro): the caller should loop back to readValue rather
// than treat nil as a result.
//
// A bare #" sequence (neither #{ nor #_ nor #: nor ## nor a tag-name
// start) falls through to the default "tagged literal" branch, where
// '"' is not a valid tag-name character, so it fails with
// ErrInvalidSyntax rather than being special-cased into a text block:
// text blocks are triggered by a plain """ string opener, never by a
// dispatch-prefixed one.
func (r *reader) readDispatch() (v *Value, discarded bool, err error) {
	start := r.pos
	r.advance() // '#'
	b, ok := r.peek()
	if !ok {
		return nil, false, r.errAt(ErrUnexpectedEOF, start, "unterminated dispatch macro")
	}

	switch {
	case b == '{':
		r.advance()
		v, err := r.readSet(start)
		return v, false, err
	case b == '_':
		r.advance()
		r.inDiscard++
		_, err := r.readValue()
		r.inDiscard--
		if err != nil {
			return nil, false, err
		}
		return nil, true, nil
	case b == ':':
		return r.readNamespacedMapDispatch(start)
	case b == '#':
		r.pos = start // readSymbolicFloat expects to consume both '#' itself
		v, err := r.readSymbolicFloat(start)
		return v, false, err
	default:
		return r.readTaggedLiteral(start)
	}
}

// readNamespacedMapDispatch reads #:ns{...} and the #::{...} shorthand
// for "use the current form's own enclosing namespace", which this
// reader treats identically to a plain {...} map (there is no surrounding
// namespace context to inherit, matching the ::keyword rejection decision
// in identifier.go) except that #::{...} itself is accepted with an empty
// namespace rather than rejected outright, since unlike ::kw it does not
// claim to resolve to anything beyond "no namespace prefixing".
func (r *reader) readNamespacedMapDispatch(start int) (*Value, bool, error) {
	if !r.opts.Features.Has(FeatureNamespacedMaps) {
		return nil, false, r.errAt(ErrInvalidSyntax, start, "namespaced maps are not enabled")
	}
	r.advance() // ':'
	if b, ok := r.peek(); ok && b == ':' {
		r.advance()
		if b2, ok2 := r.peek(); !ok2 || b2 != '{' {
			return nil, false, r.errAt(ErrInvalidSyntax, start, "expected '{' after #::")
		}
		v, err := r.readMap("")
		return v, false, err
	}
	nsStart := r.pos
	nsEnd, _, _ := scan.ScanIdentifier(r.data, r.pos)
	if nsEnd == nsStart {
		return nil, false, r.errAt(ErrInvalidSyntax, start, "expected a namespace after #:")
	}
	ns := string(r.data[nsStart:nsEnd])
	r.pos = nsEnd
	if b, ok := r.peek(); !ok || b != '{' {
		return nil, false, r.errAt(ErrInvalidSyntax, start, "expected '{' after #:%s", ns)
	}
	v, err := r.readMap(ns)
	return v, false, err
}

// readTaggedLiteral reads #tag form: a symbol tag name (which may be
// namespaced, e.g. #my.app/Point) followed by one EDN form to wrap.
// The registered TagFunc, if any, runs immediately and
// its replacement Value (or error) is what the caller sees; with no
// registration, Options.UnknownTag selects Passthrough/Unwrap/Error
// behavior.
func (r *reader) readTaggedLiteral(start int) (*Value, bool, error) {
	if err := r.enterNested(); err != nil {
		return nil, false, err
	}
	defer r.exitNested()

	tagStart := r.pos
	tagEnd, _, _ := scan.ScanIdentifier(r.data, r.pos)
	if tagEnd == tagStart || !byteclass.IsIdentStart(r.data[tagStart]) {
		return nil, false, r.errAt(ErrInvalidSyntax, start, "expected a tag name after '#'")
	}
	tag := r.data[tagStart:tagEnd]
	r.pos = tagEnd

	wrapped, err := r.readValue()
	if err != nil {
		return nil, false, err
	}

	if r.inDiscard == 0 {
		if fn, found := r.opts.Registry.lookup(string(tag)); found {
			replaced, ferr := fn(wrapped, r.readerArena())
			if ferr != nil {
				return nil, false, r.errAt(ErrReaderError, start, "tag #%s: %v", tag, ferr)
			}
			return replaced, false, nil
		}
	}

	unknownMode := r.opts.UnknownTag
	if r.inDiscard > 0 {
		unknownMode = Passthrough
	}
	switch unknownMode {
	case Unwrap:
		return wrapped, false, nil
	case ErrorOnUnknown:
		return nil, false, r.errAt(ErrUnknownTag, start, "no reader registered for tag #%s", tag)
	default: // Passthrough
		return &Value{
			kind: KindTagged, arena: r.arena,
			tagName: tag, tagValue: wrapped,
			span: Span{Start: start, End: r.pos}, hasSpan: true,
		}, false, nil
	}
}
