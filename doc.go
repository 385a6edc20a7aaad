// Package edn implements a reader for the Extensible Data Notation (EDN)
// textual format: lists, vectors, sets, maps, strings, characters, symbols,
// keywords, booleans, nil, numbers (machine integers and floats,
// arbitrary-precision integers and decimals, and rationals), tagged
// literals, the three symbolic values (##Inf, ##-Inf, ##NaN), the discard
// macro (#_), and the Clojure-flavored extensions: metadata (^), namespaced
// maps (#:ns{...}), text blocks ("""..."""), and radix/hex/octal integers
// with underscore digit separators.
//
// The reader is single-pass. Each call to
// Parse/ParseString/ParseBytes/ParseWithOptions creates one arena.Arena,
// and the byte data the parse derives (decoded strings, text blocks,
// synthesized namespaces, cleaned big-number digits) is allocated from it;
// the Value nodes and collection slices are ordinary Go allocations that
// refer to that arena, not allocations inside it. The arena outlives the
// returned tree and is only reclaimed as a unit (there is no per-node
// free). See Value for the data model and Options for the reader's
// compile-time-equivalent feature flags.
//
// This package does not implement a printer: it reads EDN text into Value
// trees, and the only printer contract it must honor is round-trip
// fidelity for strings (see Value.RawString).
package edn
