package edn

import "github.com/mcvoid/edn/internal/arena"

// readMetadataPrefixed reads one or more ^meta prefixes followed by the
// form they annotate. Multiple prefixes merge into a single Map, later
// prefixes' keys overriding earlier ones on conflict, and the merged map
// is attached to the target Value's Meta field. Metadata plays no part
// in Equal/Hash/Compare, so reads of "^:a [1]" and "[1]" compare equal.
//
// discarded is always false here (a meta-prefixed #_ discard reads as an
// ordinary #_ dispatch once the metadata has been parsed and attached to
// whatever followed it), but the signature matches readDispatch's so
// readValue's switch can treat both uniformly.
func (r *reader) readMetadataPrefixed() (v *Value, discarded bool, err error) {
	if !r.opts.Features.Has(FeatureMetadata) {
		return nil, false, r.errAt(ErrInvalidSyntax, r.pos, "metadata is not enabled")
	}
	start := r.pos
	if err := r.enterNested(); err != nil {
		return nil, false, err
	}
	defer r.exitNested()

	var metas []*Value
	for {
		r.skipWhitespace()
		b, ok := r.peek()
		if !ok || b != '^' {
			break
		}
		r.advance()
		m, err := r.readMetaForm()
		if err != nil {
			return nil, false, err
		}
		metas = append(metas, m)
	}

	target, err := r.readValue()
	if err != nil {
		return nil, false, err
	}
	if len(metas) == 0 {
		return target, false, nil
	}
	if !canHaveMetadata(target.kind) {
		return nil, false, r.errAt(ErrInvalidSyntax, start, "metadata cannot attach to a %s", target.kind)
	}
	merged := mergeMetas(r.arena, metas)
	clone := *target
	clone.meta = merged
	clone.span = Span{Start: start, End: r.pos}
	clone.hasSpan = true
	return &clone, false, nil
}

// canHaveMetadata reports whether kind is one of the targets metadata may
// attach to: List, Vector, Set, Map, Tagged, or Symbol.
func canHaveMetadata(kind Kind) bool {
	switch kind {
	case KindList, KindVector, KindSet, KindMap, KindTagged, KindSymbol:
		return true
	default:
		return false
	}
}

// readMetaForm reads the single form following a '^' and normalizes it
// to a Map per the following shorthand rules:
//   - a Map is used as-is
//   - a Keyword k expands to {k true}
//   - a String or Symbol s expands to {:tag s}
//   - a Vector v expands to {:param-tags v}
//
// Anything else is a syntax error: metadata must describe key/value
// pairs, directly or via one of these shorthands.
func (r *reader) readMetaForm() (*Value, error) {
	start := r.pos
	form, err := r.readValue()
	if err != nil {
		return nil, err
	}
	switch form.kind {
	case KindMap:
		return form, nil
	case KindKeyword:
		trueVal := &Value{kind: KindBool, arena: r.arena, boolV: true}
		return &Value{kind: KindMap, arena: r.arena, entries: []MapEntry{{Key: form, Val: trueVal}}}, nil
	case KindString, KindSymbol:
		tagKey := &Value{kind: KindKeyword, arena: r.arena, nameBytes: []byte("tag")}
		return &Value{kind: KindMap, arena: r.arena, entries: []MapEntry{{Key: tagKey, Val: form}}}, nil
	case KindVector:
		paramTagsKey := &Value{kind: KindKeyword, arena: r.arena, nameBytes: []byte("param-tags")}
		return &Value{kind: KindMap, arena: r.arena, entries: []MapEntry{{Key: paramTagsKey, Val: form}}}, nil
	default:
		return nil, r.errAt(ErrInvalidSyntax, start, "metadata must be a map, keyword, string, symbol, or vector")
	}
}

// mergeMetas combines multiple ^meta prefixes' maps into one, applied
// left to right so a later prefix's key wins over an earlier one's,
// matching how repeated ^ prefixes stack in the reference dialect.
func mergeMetas(a *arena.Arena, metas []*Value) *Value {
	merged := map[string]MapEntry{}
	var order []string
	for _, m := range metas {
		for _, e := range m.entries {
			k := metaKeyString(e.Key)
			if _, exists := merged[k]; !exists {
				order = append(order, k)
			}
			merged[k] = e
		}
	}
	entries := make([]MapEntry, 0, len(order))
	for _, k := range order {
		entries = append(entries, merged[k])
	}
	return &Value{kind: KindMap, arena: metas[0].arena, entries: entries}
}

func metaKeyString(k *Value) string {
	switch k.kind {
	case KindKeyword, KindSymbol:
		return string(k.nsBytes) + "/" + string(k.nameBytes)
	case KindString:
		s, _ := k.AsString()
		return "\x00str:" + s
	default:
		return k.String()
	}
}
