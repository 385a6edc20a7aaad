package edn

// Kind identifies which of Value's per-variant fields are meaningful,
// across EDN's seventeen value shapes.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindBigInt
	KindBigDecimal
	KindRatio
	KindBigRatio
	KindChar
	KindString
	KindSymbol
	KindKeyword
	KindList
	KindVector
	KindSet
	KindMap
	KindTagged
	numKinds
)

var kindStrings = [numKinds]string{
	"nil", "bool", "int", "float", "bigint", "bigdec", "ratio", "bigratio",
	"char", "string", "symbol", "keyword", "list", "vector", "set", "map", "tagged",
}

func (k Kind) String() string {
	if k >= numKinds {
		return "<unknown>"
	}
	return kindStrings[k]
}
