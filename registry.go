package edn

import "github.com/mcvoid/edn/internal/arena"

// ReaderArena is the narrow handle a TagFunc receives for allocating
// replacement Values: a transform must either reuse its input Value or
// allocate replacements from the same arena passed to the parse, so a
// TagFunc never sees the raw *arena.Arena, only these constructors, which
// all allocate from the parse's own arena.
type ReaderArena struct {
	a *arena.Arena
}

// NewString builds a Value of Kind String holding a copy of s, allocated
// in the arena backing the current parse.
func (r *ReaderArena) NewString(s string) (*Value, error) {
	buf, err := r.a.CopyBytes([]byte(s))
	if err != nil {
		return nil, newError(ErrOutOfMemory, "%v", err)
	}
	return &Value{kind: KindString, arena: r.a, strBytes: buf}, nil
}

// NewKeyword builds an unqualified Keyword Value.
func (r *ReaderArena) NewKeyword(name string) (*Value, error) {
	buf, err := r.a.CopyBytes([]byte(name))
	if err != nil {
		return nil, newError(ErrOutOfMemory, "%v", err)
	}
	return &Value{kind: KindKeyword, arena: r.a, nameBytes: buf}, nil
}

// NewInt builds an Int Value.
func (r *ReaderArena) NewInt(v int64) *Value {
	return &Value{kind: KindInt, arena: r.a, intV: v}
}

// TagFunc transforms the value wrapped by a tagged literal into a
// replacement Value, or reports an error (surfaced as ErrReaderError).
type TagFunc func(wrapped *Value, a *ReaderArena) (*Value, error)

// Registry maps tag names (which may contain '/' to express a namespace,
// e.g. "my.app/point") to user-supplied TagFuncs. A Registry has no
// lifetime relationship to any arena: it may be created, used across many
// parses, and destroyed while values it helped produce still live, because
// every TagFunc is required to only ever return values it built from the
// arena it was handed.
//
// A Registry is read-only during a parse and is not itself synchronized;
// callers sharing one across concurrent parses must serialize any
// Register/Unregister against those parses themselves.
type Registry struct {
	readers map[string]TagFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]TagFunc)}
}

// Register installs fn as the reader for tag, replacing any previous
// registration.
func (r *Registry) Register(tag string, fn TagFunc) {
	r.readers[tag] = fn
}

// Unregister removes tag's reader, if any.
func (r *Registry) Unregister(tag string) {
	delete(r.readers, tag)
}

func (r *Registry) lookup(tag string) (TagFunc, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.readers[tag]
	return fn, ok
}
