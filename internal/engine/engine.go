package engine

// Kind represents token kinds emitted by a streaming JSON source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token is one streaming token with its approximate input offset.
// Numbers are carried as text so downstream consumers can re-validate them
// with their own integer/float/fixed-point semantics.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is the minimal lexer interface the value builder consumes.
// Implementations must emit KindKey tokens for object keys in document
// order; duplicate keys are detected by the consumer, not the source.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}
