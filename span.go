package edn

// Span is a byte-offset range into the original input, used to locate
// both values (Value.Span) and errors (Error.Span).
type Span struct {
	Start int
	End   int
}
