package edn

import "math"

// equalMaxDepth caps Equal's recursion so a pathologically self-referential
// Value built by a misbehaving TagFunc (readers give no cycle protection
// of their own) fails safe with false rather than stack overflowing.
// Ordinary data never approaches this depth; it exists purely as a
// defensive backstop, so it is unexported and not configurable.
const equalMaxDepth = 1000

// Equal reports whether a and b are structurally equal: same Kind (Int
// and Float are never equal to each other), equal payload, and for
// collections, equal elements (Map additionally requires equal keys with
// equal values; Set equality is order-independent). Metadata is never
// considered: two Values differing only in Meta are still Equal, since
// metadata is not part of value identity.
func (a *Value) Equal(b *Value) bool {
	return equalDepth(a, b, 0)
}

func equalDepth(a, b *Value, depth int) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if depth > equalMaxDepth {
		return false
	}
	if a.kind != b.kind {
		return false
	}
	if a.cachedHash != 0 && b.cachedHash != 0 && a.cachedHash != b.cachedHash {
		return false
	}

	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.boolV == b.boolV
	case KindInt:
		return a.intV == b.intV
	case KindFloat:
		return floatEqual(a.floatV, b.floatV)
	case KindBigInt:
		return a.bigInt.Equal(b.bigInt, a.arena)
	case KindBigDecimal:
		return a.bigDec.Equal(b.bigDec, a.arena)
	case KindRatio:
		return a.ratioNum == b.ratioNum && a.ratioDen == b.ratioDen
	case KindBigRatio:
		return a.bigRatioNum.Equal(b.bigRatioNum, a.arena) &&
			a.bigRatioDen.Equal(b.bigRatioDen, a.arena)
	case KindChar:
		return a.charV == b.charV
	case KindString:
		// Raw byte equality plus has_escapes, never the decoded form: a
		// raw "\n" (backslash-n) is not equal to a decoded real newline
		// (an otherwise unspecified case, resolved this way deliberately).
		return a.strHasEscapes == b.strHasEscapes && string(a.strBytes) == string(b.strBytes)
	case KindSymbol, KindKeyword:
		return string(a.nsBytes) == string(b.nsBytes) && string(a.nameBytes) == string(b.nameBytes)
	case KindList, KindVector:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !equalDepth(a.items[i], b.items[i], depth+1) {
				return false
			}
		}
		return true
	case KindSet:
		return setEqual(a.items, b.items, depth)
	case KindMap:
		return mapEqual(a.entries, b.entries, depth)
	case KindTagged:
		return string(a.tagName) == string(b.tagName) && equalDepth(a.tagValue, b.tagValue, depth+1)
	}
	return false
}

func floatEqual(x, y float64) bool {
	if math.IsNaN(x) && math.IsNaN(y) {
		return true
	}
	return x == y
}

// setEqual is order-independent: every element of a must have a matching,
// not-yet-claimed element in b. O(n*m), adequate for the collection sizes
// a textual reader produces; a hash-bucketed version would only pay off
// for sets far larger than any single EDN form is likely to hold.
func setEqual(a, b []*Value, depth int) bool {
	if len(a) != len(b) {
		return false
	}
	claimed := make([]bool, len(b))
	for _, av := range a {
		found := false
		for j, bv := range b {
			if claimed[j] {
				continue
			}
			if equalDepth(av, bv, depth+1) {
				claimed[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func mapEqual(a, b []MapEntry, depth int) bool {
	if len(a) != len(b) {
		return false
	}
	claimed := make([]bool, len(b))
	for _, ae := range a {
		found := false
		for j, be := range b {
			if claimed[j] {
				continue
			}
			if equalDepth(ae.Key, be.Key, depth+1) && equalDepth(ae.Val, be.Val, depth+1) {
				claimed[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
