package ast

import "fmt"

// AssignGlobal is a statement node that assigns an expression result to a
// global variable, as in `x = 1`.
type AssignGlobal struct {
	Name  string
	Value Expr
	Range Span // span of the whole assignment
}

func (s *AssignGlobal) stmtNode() {}

func (s *AssignGlobal) Span() Span { return s.Range }

func (s *AssignGlobal) String() string {
	return fmt.Sprintf("%s = %s", s.Name, s.Value)
}

// AssignLocal is a statement node that assigns an expression result to a
// local variable, as in `private _x = 1`.
type AssignLocal struct {
	Name  string
	Value Expr
	Range Span
}

func (s *AssignLocal) stmtNode() {}

func (s *AssignLocal) Span() Span { return s.Range }

func (s *AssignLocal) String() string {
	return fmt.Sprintf("private %s = %s", s.Name, s.Value)
}

// ExprStmt is a statement node holding a bare expression. The expression's
// value is left for the runtime to handle at the statement boundary.
type ExprStmt struct {
	Value Expr
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Span() Span { return s.Value.Span() }

func (s *ExprStmt) String() string { return s.Value.String() }
