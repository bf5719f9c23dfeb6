// Package ast defines the statement and expression tree for SQF scripts.
// Trees are produced by an external parser and consumed by the compiler;
// they are treated as immutable once built.
package ast

// Span is a half-open byte range into the processed source text.
type Span struct {
	Start int
	End   int
}

// Stmt represents a single SQF statement.
type Stmt interface {
	// Span returns the byte range of the statement in the processed source.
	Span() Span

	// String returns a human friendly representation of the statement. This
	// should be similar to the original source code, but not necessarily
	// identical.
	String() string

	stmtNode()
}

// Expr represents an SQF expression. Expressions evaluate to a value and may
// be embedded within other expressions.
type Expr interface {
	Span() Span
	String() string
	exprNode()
}

// Statements is a sequence of statements together with the processed source
// text it was parsed from. The source text is embedded into the compiled
// output for runtime diagnostics.
type Statements struct {
	Content []Stmt
	Source  string
}

// NewStatements creates a statement list from the given source text.
func NewStatements(source string, content ...Stmt) *Statements {
	return &Statements{Content: content, Source: source}
}
