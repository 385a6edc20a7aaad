package edn

// Features is a bitset of the optional, Clojure-flavored extensions,
// each an independent compile-time-equivalent flag. The reader must
// tolerate any combination.
type Features uint32

const (
	// FeatureExtendedNumbers enables hex (0x1F), octal (017), and radix
	// (2r101, 36rZZ) integer literals.
	FeatureExtendedNumbers Features = 1 << iota
	// FeatureUnderscores enables '_' digit-group separators in numbers.
	FeatureUnderscores
	// FeatureRatios enables the n/d ratio suffix form.
	FeatureRatios
	// FeatureNamespacedMaps enables #:ns{...} syntax.
	FeatureNamespacedMaps
	// FeatureMetadata enables ^meta form metadata reading.
	FeatureMetadata
	// FeatureTextBlocks enables Java-style """...""" text blocks.
	FeatureTextBlocks
	// FeatureExperimental gates the dialect's more speculative corners:
	// \oNNN octal character literals and 4-6 hex digit \uXXXXXX escapes in
	// character literals.
	FeatureExperimental

	featureAll = FeatureExtendedNumbers | FeatureUnderscores | FeatureRatios |
		FeatureNamespacedMaps | FeatureMetadata | FeatureTextBlocks
)

// Has reports whether every flag in f is set.
func (fl Features) Has(f Features) bool { return fl&f == f }

// UnknownTagMode selects the fallback behavior for a tagged literal whose
// tag has no registered reader.
type UnknownTagMode uint8

const (
	// Passthrough emits a Tagged Value wrapping the parsed form.
	Passthrough UnknownTagMode = iota
	// Unwrap discards the tag and returns the wrapped Value as-is.
	Unwrap
	// ErrorOnUnknown fails the parse with ErrUnknownTag.
	ErrorOnUnknown
)

// DefaultMaxDepth is the recursion cap this reader enforces: collections,
// tagged literals, and metadata prefixes nested deeper than this fail
// with ErrRecursionTooDeep rather than exhaust the Go stack.
const DefaultMaxDepth = 1024

// Options configures a single parse. The zero value is not directly
// useful; use DefaultOptions to get the dialect's everyday extensions
// turned on, or build up from Features(0) for a strict-core-EDN reader.
type Options struct {
	Features   Features
	Registry   *Registry
	UnknownTag UnknownTagMode
	// Strict requires the top-level Parse call to consume the entire
	// input: trailing non-whitespace content after the one returned value
	// fails with ErrTrailingContent.
	Strict bool
	// MaxDepth overrides DefaultMaxDepth when nonzero.
	MaxDepth int
}

// DefaultOptions returns the options used by Parse/ParseString/ParseBytes:
// every optional extension enabled except FeatureExperimental, Passthrough
// for unknown tags, and non-strict trailing-content handling.
func DefaultOptions() Options {
	return Options{
		Features:   featureAll,
		UnknownTag: Passthrough,
		MaxDepth:   DefaultMaxDepth,
	}
}

func (o Options) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}
