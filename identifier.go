package edn

import (
	"math"

	"github.com/mcvoid/edn/internal/scan"
)

// readKeyword reads a :keyword or ::keyword token. This reader assigns no
// namespace-context mechanism for resolving a "current namespace", so
// the shorthand ::kw auto-namespacing some dialects support is rejected
// outright as invalid syntax rather than silently guessed at.
func (r *reader) readKeyword() (*Value, error) {
	start := r.pos
	r.advance() // ':'
	if b, ok := r.peek(); ok && b == ':' {
		return nil, r.errAt(ErrInvalidSyntax, start, "auto-namespaced keywords (::kw) are not supported")
	}
	ns, name, end, err := r.scanNamespacedToken(start)
	if err != nil {
		return nil, err
	}
	r.pos = end
	return &Value{
		kind: KindKeyword, arena: r.arena,
		nsBytes: ns, nameBytes: name,
		span: Span{Start: start, End: r.pos}, hasSpan: true,
	}, nil
}

// readIdentifierForm reads a bare identifier token and classifies it as
// nil, true, false, or a symbol. ##Inf/##-Inf/##NaN are handled by
// readDispatch before the reader ever falls through to this function.
func (r *reader) readIdentifierForm() (*Value, error) {
	start := r.pos
	ns, name, end, err := r.scanNamespacedToken(start)
	if err != nil {
		return nil, err
	}
	r.pos = end

	if len(ns) == 0 {
		switch string(name) {
		case "nil":
			return &Value{kind: KindNil, arena: r.arena, span: Span{Start: start, End: r.pos}, hasSpan: true}, nil
		case "true":
			return &Value{kind: KindBool, arena: r.arena, boolV: true, span: Span{Start: start, End: r.pos}, hasSpan: true}, nil
		case "false":
			return &Value{kind: KindBool, arena: r.arena, boolV: false, span: Span{Start: start, End: r.pos}, hasSpan: true}, nil
		}
	}
	return &Value{
		kind: KindSymbol, arena: r.arena,
		nsBytes: ns, nameBytes: name,
		span: Span{Start: start, End: r.pos}, hasSpan: true,
	}, nil
}

// readSymbolicFloat reads ##Inf, ##-Inf, or ##NaN.
func (r *reader) readSymbolicFloat(start int) (*Value, error) {
	r.pos += 2 // "##"
	end, _, _ := scan.ScanIdentifier(r.data, r.pos)
	tok := string(r.data[r.pos:end])
	r.pos = end
	var f float64
	switch tok {
	case "Inf":
		f = math.Inf(1)
	case "-Inf":
		f = math.Inf(-1)
	case "NaN":
		f = math.NaN()
	default:
		return nil, r.errAt(ErrInvalidSyntax, start, "unknown symbolic value ##%s", tok)
	}
	return &Value{kind: KindFloat, arena: r.arena, floatV: f, span: Span{Start: start, End: r.pos}, hasSpan: true}, nil
}

// scanNamespacedToken scans a single identifier-continuation run and
// splits it on its first '/' into namespace/name:
// a lone "/" is itself a valid unqualified symbol name (the division
// symbol), so a leading or sole slash is never treated as a separator.
func (r *reader) scanNamespacedToken(start int) (ns, name []byte, end int, err error) {
	tokStart := r.pos
	e, slash, adjacentColons := scan.ScanIdentifier(r.data, tokStart)
	if e == tokStart {
		return nil, nil, r.pos, r.errAt(ErrInvalidSyntax, start, "expected an identifier")
	}
	if adjacentColons {
		return nil, nil, r.pos, r.errAt(ErrInvalidSyntax, start, "adjacent colons in identifier")
	}
	tok := r.data[tokStart:e]
	if slash < 0 {
		return nil, tok, e, nil
	}
	rel := slash - tokStart
	if string(tok) == "/" || rel == 0 || rel == len(tok)-1 {
		// no separator role: the lone-slash symbol and leading/trailing
		// slash cases all fall back to treating the whole token as the name.
		return nil, tok, e, nil
	}
	return tok[:rel], tok[rel+1:], e, nil
}
