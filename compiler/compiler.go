// Package compiler lowers an SQF statement tree into serializable bytecode.
//
// Since the names and constants lists of a compiled program can be difficult
// to manage by hand, the compiler maintains them in a Context that is
// threaded through the whole lowering: nested code blocks compile to their
// own instruction sequences but share the enclosing program's pools. The
// entry point is Compile, which produces a bytecode.Compiled ready for
// serialization.
package compiler

import (
	"fmt"
	"io"
	"math"

	"github.com/Perondas/HEMTT/ast"
	"github.com/Perondas/HEMTT/bytecode"
	"github.com/Perondas/HEMTT/database"
	"github.com/Perondas/HEMTT/preprocessor"
)

// CommandLookup is the read-only view of the command grammar the compiler
// needs. The production implementation is database.Database; tests inject
// small closed grammars.
type CommandLookup interface {
	// IsValidIdentifier reports whether a canonicalized name may appear in
	// the compiled name pool.
	IsValidIdentifier(name string) bool

	// IsConstantNular reports whether a nular command folds to a constant.
	IsConstantNular(name string) bool
}

// Compiler lowers statement trees for a fixed command grammar. A Compiler is
// stateless and may be shared; each Compile call owns its pools exclusively,
// so concurrent compiles of independent units are safe.
type Compiler struct {
	lookup CommandLookup
}

// New creates a Compiler using the given command grammar. Passing nil
// selects the built-in command database.
func New(lookup CommandLookup) *Compiler {
	if lookup == nil {
		lookup = database.Default()
	}
	return &Compiler{lookup: lookup}
}

// Compile lowers statements using the built-in command database.
func Compile(statements *ast.Statements, processed *preprocessor.Processed) (*bytecode.Compiled, error) {
	return New(nil).Compile(statements, processed)
}

// CompileToWriter compiles statements and serializes the result to w using
// the built-in command database.
func CompileToWriter(statements *ast.Statements, processed *preprocessor.Processed, w io.Writer) error {
	return New(nil).CompileToWriter(statements, processed, w)
}

// Compile lowers a statement tree into a compiled program. The first invalid
// construct aborts the whole compile; no partial artifact is returned.
func (c *Compiler) Compile(statements *ast.Statements, processed *preprocessor.Processed) (*bytecode.Compiled, error) {
	ctx := newContext(c.lookup)
	entry, err := c.compileBlock(statements, processed, ctx)
	if err != nil {
		return nil, err
	}
	// The entry code is appended, not interned, so that it is always the
	// final pool entry.
	if len(ctx.constants) >= maxPoolSize {
		return nil, ErrListTooLong
	}
	entryPoint := uint16(len(ctx.constants))
	ctx.constants = append(ctx.constants, bytecode.NewCode(entry))

	sources := processed.Sources()
	fileNames := make([]string, len(sources))
	for i, src := range sources {
		fileNames[i] = src.Path
	}
	return &bytecode.Compiled{
		EntryPoint:           entryPoint,
		ConstantsCompression: true,
		Constants:            ctx.constants,
		Names:                ctx.names,
		FileNames:            fileNames,
	}, nil
}

// CompileToWriter compiles statements and serializes the result to w.
func (c *Compiler) CompileToWriter(statements *ast.Statements, processed *preprocessor.Processed, w io.Writer) error {
	compiled, err := c.Compile(statements, processed)
	if err != nil {
		return err
	}
	return compiled.Serialize(w)
}

// compileBlock lowers a statement list into a self-contained instruction
// block, interning the block's source text alongside the other constants.
func (c *Compiler) compileBlock(statements *ast.Statements, processed *preprocessor.Processed, ctx *Context) (bytecode.Instructions, error) {
	var instructions []bytecode.Instruction
	for _, stmt := range statements.Content {
		if err := c.compileStatement(stmt, &instructions, processed, ctx); err != nil {
			return bytecode.Instructions{}, err
		}
	}
	sourceIndex, err := ctx.addConstant(bytecode.NewString(statements.Source))
	if err != nil {
		return bytecode.Instructions{}, err
	}
	return bytecode.Instructions{
		Contents:          instructions,
		SourceStringIndex: sourceIndex,
	}, nil
}

func (c *Compiler) compileStatement(stmt ast.Stmt, instructions *[]bytecode.Instruction, processed *preprocessor.Processed, ctx *Context) error {
	*instructions = append(*instructions, bytecode.Instruction{Kind: bytecode.EndStatement})
	switch stmt := stmt.(type) {
	case *ast.AssignGlobal:
		if err := c.compileExpression(stmt.Value, instructions, processed, ctx); err != nil {
			return err
		}
		nameIndex, err := ctx.addName(stmt.Name)
		if err != nil {
			return err
		}
		*instructions = append(*instructions, bytecode.Instruction{
			Kind:    bytecode.AssignTo,
			Operand: nameIndex,
			Source:  sourceInfo(processed, stmt.Range),
		})
	case *ast.AssignLocal:
		if err := c.compileExpression(stmt.Value, instructions, processed, ctx); err != nil {
			return err
		}
		nameIndex, err := ctx.addName(stmt.Name)
		if err != nil {
			return err
		}
		*instructions = append(*instructions, bytecode.Instruction{
			Kind:    bytecode.AssignToLocal,
			Operand: nameIndex,
			Source:  sourceInfo(processed, stmt.Range),
		})
	case *ast.ExprStmt:
		if err := c.compileExpression(stmt.Value, instructions, processed, ctx); err != nil {
			return err
		}
	default:
		panic(fmt.Sprintf("unknown statement type: %T", stmt))
	}
	return nil
}

func (c *Compiler) compileExpression(expr ast.Expr, instructions *[]bytecode.Instruction, processed *preprocessor.Processed, ctx *Context) error {
	constant, folded, err := c.foldConstant(expr, processed, ctx)
	if err != nil {
		return err
	}
	if folded {
		constantIndex, err := ctx.addConstant(constant)
		if err != nil {
			return err
		}
		*instructions = append(*instructions, bytecode.Instruction{
			Kind:    bytecode.Push,
			Operand: constantIndex,
		})
		return nil
	}
	switch expr := expr.(type) {
	case *ast.Array:
		if len(expr.Elements) > math.MaxUint16 {
			return ErrListTooLong
		}
		for _, element := range expr.Elements {
			if err := c.compileExpression(element, instructions, processed, ctx); err != nil {
				return err
			}
		}
		*instructions = append(*instructions, bytecode.Instruction{
			Kind:    bytecode.MakeArray,
			Operand: uint16(len(expr.Elements)),
			Source:  sourceInfo(processed, expr.Range),
		})
	case *ast.NularCommand:
		nameIndex, err := ctx.addName(expr.Name)
		if err != nil {
			return err
		}
		*instructions = append(*instructions, bytecode.Instruction{
			Kind:    bytecode.CallNular,
			Operand: nameIndex,
			Source:  sourceInfo(processed, expr.Range),
		})
	case *ast.UnaryCommand:
		if err := c.compileExpression(expr.Operand, instructions, processed, ctx); err != nil {
			return err
		}
		nameIndex, err := ctx.addName(expr.Name)
		if err != nil {
			return err
		}
		*instructions = append(*instructions, bytecode.Instruction{
			Kind:    bytecode.CallUnary,
			Operand: nameIndex,
			Source:  sourceInfo(processed, expr.Range),
		})
	case *ast.BinaryCommand:
		if err := c.compileExpression(expr.Left, instructions, processed, ctx); err != nil {
			return err
		}
		if err := c.compileExpression(expr.Right, instructions, processed, ctx); err != nil {
			return err
		}
		nameIndex, err := ctx.addName(expr.Name)
		if err != nil {
			return err
		}
		*instructions = append(*instructions, bytecode.Instruction{
			Kind:    bytecode.CallBinary,
			Operand: nameIndex,
			Source:  sourceInfo(processed, expr.Range),
		})
	case *ast.Variable:
		nameIndex, err := ctx.addName(expr.Name)
		if err != nil {
			return err
		}
		*instructions = append(*instructions, bytecode.Instruction{
			Kind:    bytecode.GetVariable,
			Operand: nameIndex,
			Source:  sourceInfo(processed, expr.Range),
		})
	default:
		// Code, String, Number and Boolean always fold.
		panic(fmt.Sprintf("constant should have been handled: %T", expr))
	}
	return nil
}

// foldConstant attempts to reduce an expression to a compile-time constant.
// The second return is false when the expression must be lowered to
// instructions instead.
func (c *Compiler) foldConstant(expr ast.Expr, processed *preprocessor.Processed, ctx *Context) (bytecode.Constant, bool, error) {
	switch expr := expr.(type) {
	case *ast.Code:
		code, err := c.compileBlock(expr.Statements, processed, ctx)
		if err != nil {
			return bytecode.Constant{}, false, err
		}
		return bytecode.NewCode(code), true, nil
	case *ast.String:
		return bytecode.NewString(expr.Value), true, nil
	case *ast.Number:
		return bytecode.NewScalar(float64(expr.Value)), true, nil
	case *ast.Boolean:
		return bytecode.NewBoolean(expr.Value), true, nil
	case *ast.Array:
		// An array folds only if every element folds; a partially constant
		// array is lowered element by element so that evaluation order stays
		// observable.
		if len(expr.Elements) > math.MaxUint16 {
			return bytecode.Constant{}, false, ErrListTooLong
		}
		elements := make([]bytecode.Constant, 0, len(expr.Elements))
		for _, element := range expr.Elements {
			constant, folded, err := c.foldConstant(element, processed, ctx)
			if err != nil {
				return bytecode.Constant{}, false, err
			}
			if !folded {
				return bytecode.Constant{}, false, nil
			}
			elements = append(elements, constant)
		}
		return bytecode.NewArray(elements), true, nil
	case *ast.NularCommand:
		if !c.lookup.IsConstantNular(expr.Name) {
			return bytecode.Constant{}, false, nil
		}
		name, err := ctx.normalizeName(expr.Name)
		if err != nil {
			return bytecode.Constant{}, false, err
		}
		return bytecode.NewNularCommand(name), true, nil
	default:
		return bytecode.Constant{}, false, nil
	}
}

// sourceInfo resolves a span's start offset through the processed mapping.
// A missing mapping means the tree and the processed text have diverged
// upstream, which is a defect rather than a user-facing diagnostic.
func sourceInfo(processed *preprocessor.Processed, span ast.Span) bytecode.SourceInfo {
	mapping, ok := processed.Mapping(span.Start)
	if !ok {
		panic(fmt.Sprintf("offset %d has no source mapping", span.Start))
	}
	fileIndex := processed.SourceIndex(mapping.Path)
	if fileIndex < 0 {
		panic(fmt.Sprintf("mapped file %q is not a known source", mapping.Path))
	}
	return bytecode.SourceInfo{
		Offset:    uint32(span.Start),
		FileIndex: uint16(fileIndex),
		FileLine:  uint16(mapping.Line),
	}
}
