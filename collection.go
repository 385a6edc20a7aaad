package edn

import (
	"github.com/mcvoid/edn/internal/arena"
	"golang.org/x/exp/slices"
)

// readMap reads a {...} or, when ns is non-empty, a #:ns{...} namespaced
// map: an even number of forms, paired off as key/value entries in
// source order, with ns (if any) prefixed onto every unqualified keyword
// key's namespace per the namespaced-map shorthand.
func (r *reader) readMap(ns string) (*Value, error) {
	start := r.pos
	r.advance() // '{'
	if err := r.enterNested(); err != nil {
		return nil, err
	}
	defer r.exitNested()

	var entries []MapEntry
	for {
		r.skipWhitespace()
		b, ok := r.peek()
		if !ok {
			return nil, r.errAt(ErrUnexpectedEOF, start, "unterminated map")
		}
		if b == '}' {
			r.advance()
			break
		}
		key, err := r.readValue()
		if err != nil {
			return nil, err
		}
		if ns != "" {
			key = applyMapNamespace(r.arena, key, ns)
		}
		r.skipWhitespace()
		if b2, ok2 := r.peek(); !ok2 || b2 == '}' {
			return nil, r.errAt(ErrInvalidSyntax, start, "map has an odd number of forms")
		}
		val, err := r.readValue()
		if err != nil {
			return nil, err
		}
		entries = append(entries, MapEntry{Key: key, Val: val})
	}

	if err := checkDuplicateKeys(entries); err != nil {
		return nil, r.errAt(ErrDuplicateKey, start, "%v", err)
	}
	return &Value{kind: KindMap, arena: r.arena, entries: entries, span: Span{Start: start, End: r.pos}, hasSpan: true}, nil
}

// applyMapNamespace rewrites an unqualified keyword or symbol key's
// namespace to ns, matching Clojure's #:ns{:a 1} == {:ns/a 1} shorthand.
// Already-namespaced keys, and non-keyword/symbol keys, pass through
// unchanged.
func applyMapNamespace(a *arena.Arena, key *Value, ns string) *Value {
	if (key.kind != KindKeyword && key.kind != KindSymbol) || len(key.nsBytes) != 0 {
		return key
	}
	nsBytes, err := a.CopyBytes([]byte(ns))
	if err != nil {
		return key
	}
	return &Value{
		kind: key.kind, arena: key.arena,
		nsBytes: nsBytes, nameBytes: key.nameBytes,
		meta: key.meta, span: key.span, hasSpan: key.hasSpan,
	}
}

// readSet reads a #{...} set literal: the dispatch site ('#') and open
// brace have already been consumed by the caller.
func (r *reader) readSet(start int) (*Value, error) {
	if err := r.enterNested(); err != nil {
		return nil, err
	}
	defer r.exitNested()

	var items []*Value
	for {
		r.skipWhitespace()
		b, ok := r.peek()
		if !ok {
			return nil, r.errAt(ErrUnexpectedEOF, start, "unterminated set")
		}
		if b == '}' {
			r.advance()
			break
		}
		v, err := r.readValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if err := checkDuplicateElements(items); err != nil {
		return nil, r.errAt(ErrDuplicateElement, start, "%v", err)
	}
	return &Value{kind: KindSet, arena: r.arena, items: items, span: Span{Start: start, End: r.pos}, hasSpan: true}, nil
}

// checkDuplicateElements sorts a copy of items by Compare's total order
// and scans for adjacent Equal pairs, turning what would otherwise be an
// O(n^2) pairwise Equal check into an O(n log n) sort-then-scan.
func checkDuplicateElements(items []*Value) error {
	if len(items) < 2 {
		return nil
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(a, b int) int { return Compare(items[a], items[b]) })
	for i := 1; i < len(idx); i++ {
		if items[idx[i-1]].Equal(items[idx[i]]) {
			return ErrDuplicateElement
		}
	}
	return nil
}

func checkDuplicateKeys(entries []MapEntry) error {
	if len(entries) < 2 {
		return nil
	}
	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(a, b int) int { return Compare(entries[a].Key, entries[b].Key) })
	for i := 1; i < len(idx); i++ {
		if entries[idx[i-1]].Key.Equal(entries[idx[i]].Key) {
			return ErrDuplicateKey
		}
	}
	return nil
}
