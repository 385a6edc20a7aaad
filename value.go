package edn

import (
	"fmt"

	"github.com/mcvoid/edn/internal/arena"
	"github.com/mcvoid/edn/internal/bignum"
)

// MapEntry is one key/value pair of a Map Value, kept in insertion order.
type MapEntry struct {
	Key *Value
	Val *Value
}

// Value is a parsed EDN value: exactly one of the payload fields below is
// meaningful, selected by Kind, plus the universal fields every Value
// carries (owning arena, cached hash, optional metadata, optional source
// span). Every Value a parse produces, and every Value reachable from it,
// refers to the same arena, which holds the byte data the parse derives;
// the Value structs and collection slices themselves are ordinary Go
// allocations, not carved out of the arena. There is no public
// constructor for one outside this package except via ReaderArena, which
// ties a user TagFunc's Values to the parse's arena too.
type Value struct {
	kind  Kind
	arena *arena.Arena

	cachedHash uint64
	meta       *Value
	span       Span
	hasSpan    bool

	boolV  bool
	intV   int64
	floatV float64

	bigInt *bignum.BigRef
	bigDec *bignum.BigRef

	ratioNum, ratioDen int64
	bigRatioNum        *bignum.BigRef
	bigRatioDen        *bignum.BigRef

	charV rune

	strBytes      []byte
	strHasEscapes bool
	strDecoded    []byte

	nsBytes, nameBytes []byte

	items   []*Value // List, Vector, Set
	entries []MapEntry

	tagName  []byte
	tagValue *Value
}

// Kind reports which variant v holds.
func (v *Value) Kind() Kind { return v.kind }

// Span reports v's source byte range and whether one was recorded.
func (v *Value) Span() (Span, bool) { return v.span, v.hasSpan }

// Meta returns v's attached metadata map, or nil if none. Metadata, when
// present, is always a Map Value.
func (v *Value) Meta() *Value { return v.meta }

func typeErr(v *Value, want string) error {
	return fmt.Errorf("%w: value of kind %s is not %s", ErrType, v.kind, want)
}

// AsBool extracts a Bool value.
func (v *Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, typeErr(v, "a bool")
	}
	return v.boolV, nil
}

// AsInt extracts a machine Int value.
func (v *Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, typeErr(v, "an int")
	}
	return v.intV, nil
}

// AsFloat extracts a Float value. Widening some other numeric Kind into a
// float64 approximation would be a convenience feature beyond this
// accessor's contract, so only Kind Float is accepted.
func (v *Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, typeErr(v, "a float")
	}
	return v.floatV, nil
}

// BigIntView is the accessor-facing view of a BigInt: cleaned (underscore-
// free) digit bytes, sign, and radix.
type BigIntView struct {
	Digits []byte
	Sign   int8
	Radix  uint8
}

// AsBigInt extracts a BigInt value's cleaned digits, sign, and radix.
func (v *Value) AsBigInt() (BigIntView, error) {
	if v.kind != KindBigInt {
		return BigIntView{}, typeErr(v, "a bigint")
	}
	digits, err := v.bigInt.Clean(v.arena)
	if err != nil {
		return BigIntView{}, err
	}
	return BigIntView{Digits: digits, Sign: v.bigInt.Sign, Radix: v.bigInt.Radix}, nil
}

// BigDecimalView is the accessor-facing view of a BigDecimal.
type BigDecimalView struct {
	Digits []byte
	Sign   int8
}

// AsBigDecimal extracts a BigDecimal value's cleaned digits and sign.
func (v *Value) AsBigDecimal() (BigDecimalView, error) {
	if v.kind != KindBigDecimal {
		return BigDecimalView{}, typeErr(v, "a bigdecimal")
	}
	digits, err := v.bigDec.Clean(v.arena)
	if err != nil {
		return BigDecimalView{}, err
	}
	return BigDecimalView{Digits: digits, Sign: v.bigDec.Sign}, nil
}

// AsRatio extracts a Ratio's numerator and denominator in lowest terms
// with a positive denominator.
func (v *Value) AsRatio() (num, den int64, err error) {
	if v.kind != KindRatio {
		return 0, 0, typeErr(v, "a ratio")
	}
	return v.ratioNum, v.ratioDen, nil
}

// AsBigRatio extracts a BigRatio's numerator/denominator BigInt views.
func (v *Value) AsBigRatio() (num, den BigIntView, err error) {
	if v.kind != KindBigRatio {
		return BigIntView{}, BigIntView{}, typeErr(v, "a bigratio")
	}
	nd, err := v.bigRatioNum.Clean(v.arena)
	if err != nil {
		return BigIntView{}, BigIntView{}, err
	}
	dd, err := v.bigRatioDen.Clean(v.arena)
	if err != nil {
		return BigIntView{}, BigIntView{}, err
	}
	return BigIntView{Digits: nd, Sign: v.bigRatioNum.Sign, Radix: 10},
		BigIntView{Digits: dd, Sign: v.bigRatioDen.Sign, Radix: 10}, nil
}

// AsChar extracts a Character's Unicode scalar value.
func (v *Value) AsChar() (rune, error) {
	if v.kind != KindChar {
		return 0, typeErr(v, "a character")
	}
	return v.charV, nil
}

// RawString returns a String value's raw source bytes (not decoded) and
// whether it contains any escape sequences. Round-trip fidelity is defined
// in terms of this raw form, not the decoded one.
func (v *Value) RawString() (raw []byte, hasEscapes bool, err error) {
	if v.kind != KindString {
		return nil, false, typeErr(v, "a string")
	}
	return v.strBytes, v.strHasEscapes, nil
}

// AsString returns a String value's decoded form: the raw bytes unchanged
// if the string has no escapes (RawString's hasEscapes is false), or the escape-decoded bytes (computed once and
// cached) otherwise.
func (v *Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", typeErr(v, "a string")
	}
	if !v.strHasEscapes {
		return string(v.strBytes), nil
	}
	if v.strDecoded == nil {
		decoded, err := decodeEscapes(v.arena, v.strBytes)
		if err != nil {
			return "", err
		}
		v.strDecoded = decoded
	}
	return string(v.strDecoded), nil
}

// AsSymbol extracts a Symbol's namespace (empty if unqualified) and name.
func (v *Value) AsSymbol() (namespace, name string, err error) {
	if v.kind != KindSymbol {
		return "", "", typeErr(v, "a symbol")
	}
	return string(v.nsBytes), string(v.nameBytes), nil
}

// AsKeyword extracts a Keyword's namespace (empty if unqualified) and
// name.
func (v *Value) AsKeyword() (namespace, name string, err error) {
	if v.kind != KindKeyword {
		return "", "", typeErr(v, "a keyword")
	}
	return string(v.nsBytes), string(v.nameBytes), nil
}

// AsList extracts a List's elements in order.
func (v *Value) AsList() ([]*Value, error) {
	if v.kind != KindList {
		return nil, typeErr(v, "a list")
	}
	return v.items, nil
}

// AsVector extracts a Vector's elements in order.
func (v *Value) AsVector() ([]*Value, error) {
	if v.kind != KindVector {
		return nil, typeErr(v, "a vector")
	}
	return v.items, nil
}

// AsSet extracts a Set's elements (order unspecified).
func (v *Value) AsSet() ([]*Value, error) {
	if v.kind != KindSet {
		return nil, typeErr(v, "a set")
	}
	return v.items, nil
}

// AsMap extracts a Map's entries in insertion order.
func (v *Value) AsMap() ([]MapEntry, error) {
	if v.kind != KindMap {
		return nil, typeErr(v, "a map")
	}
	return v.entries, nil
}

// AsTagged extracts a Tagged value's tag name and wrapped Value.
func (v *Value) AsTagged() (tag string, wrapped *Value, err error) {
	if v.kind != KindTagged {
		return "", nil, typeErr(v, "a tagged value")
	}
	return string(v.tagName), v.tagValue, nil
}

// ListCount, ListGet, SetCount, and MapCount give the collection accessors
// a non-error-returning shape for the cases where the caller already
// knows v's Kind (e.g. after a type switch driven by Equal/Compare's own
// recursion). They do not check v's Kind: each count is the length of the
// backing slice it reads (0 for a Kind without one), and ListGet indexes
// the element slice, panicking like any slice index when i is out of range.
func (v *Value) ListCount() int    { return len(v.items) }
func (v *Value) ListGet(i int) *Value { return v.items[i] }
func (v *Value) SetCount() int     { return len(v.items) }
func (v *Value) MapCount() int     { return len(v.entries) }

// String returns a debug-oriented textual rendering of v. It is NOT a
// conformant EDN printer and exists only for %v/error-message formatting.
func (v *Value) String() string {
	return debugString(v)
}
