package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Scalar is the SQF numeric type, a 64-bit float.
type Scalar float64

// Array is an expression node holding an ordered list of element expressions,
// as in `[1, 2, 3]`.
type Array struct {
	Elements []Expr
	Range    Span
}

func (x *Array) exprNode() {}

func (x *Array) Span() Span { return x.Range }

func (x *Array) String() string {
	parts := make([]string, len(x.Elements))
	for i, e := range x.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// NularCommand is an expression node that invokes a command taking no
// operands, as in `player`.
type NularCommand struct {
	Name  string
	Range Span
}

func (x *NularCommand) exprNode() {}

func (x *NularCommand) Span() Span { return x.Range }

func (x *NularCommand) String() string { return x.Name }

// UnaryCommand is an expression node that invokes a command with a single
// right-hand operand, as in `count _units`.
type UnaryCommand struct {
	Name    string
	Operand Expr
	Range   Span
}

func (x *UnaryCommand) exprNode() {}

func (x *UnaryCommand) Span() Span { return x.Range }

func (x *UnaryCommand) String() string {
	return fmt.Sprintf("%s %s", x.Name, x.Operand)
}

// BinaryCommand is an expression node that invokes a command with left and
// right operands, as in `1 + 2` or `_units select 0`.
type BinaryCommand struct {
	Name  string
	Left  Expr
	Right Expr
	Range Span
}

func (x *BinaryCommand) exprNode() {}

func (x *BinaryCommand) Span() Span { return x.Range }

func (x *BinaryCommand) String() string {
	return fmt.Sprintf("%s %s %s", x.Left, x.Name, x.Right)
}

// Variable is an expression node that reads a variable.
type Variable struct {
	Name  string
	Range Span
}

func (x *Variable) exprNode() {}

func (x *Variable) Span() Span { return x.Range }

func (x *Variable) String() string { return x.Name }

// Code is an expression node holding a nested block of statements, as in
// `{ _x setDamage 1 }`. The block compiles to its own instruction sequence
// but shares the enclosing program's constant and name pools.
type Code struct {
	Statements *Statements
	Range      Span
}

func (x *Code) exprNode() {}

func (x *Code) Span() Span { return x.Range }

func (x *Code) String() string {
	return "{" + x.Statements.Source + "}"
}

// String is an expression node holding a string literal.
type String struct {
	Value string
	Range Span
}

func (x *String) exprNode() {}

func (x *String) Span() Span { return x.Range }

func (x *String) String() string { return strconv.Quote(x.Value) }

// Number is an expression node holding a numeric literal.
type Number struct {
	Value Scalar
	Range Span
}

func (x *Number) exprNode() {}

func (x *Number) Span() Span { return x.Range }

func (x *Number) String() string {
	return strconv.FormatFloat(float64(x.Value), 'g', -1, 64)
}

// Boolean is an expression node holding a boolean literal.
type Boolean struct {
	Value bool
	Range Span
}

func (x *Boolean) exprNode() {}

func (x *Boolean) Span() Span { return x.Range }

func (x *Boolean) String() string { return strconv.FormatBool(x.Value) }
