package compiler

import (
	"math"
	"strings"

	"github.com/Perondas/HEMTT/bytecode"
)

// maxPoolSize is the number of entries a 16-bit index can address. Both
// pools refuse to grow beyond it.
const maxPoolSize = math.MaxUint16 + 1

// Context holds the constant and name pools for one whole-program compile.
// A single Context is threaded through the entire recursive lowering,
// including nested code blocks, so identical values share one pool index no
// matter where in the tree they appear. Contexts are never reused across
// compiles.
type Context struct {
	constants []bytecode.Constant
	names     []string
	lookup    CommandLookup
}

func newContext(lookup CommandLookup) *Context {
	return &Context{lookup: lookup}
}

// addConstant interns a constant, returning the index of an existing
// structurally equal entry if there is one and appending otherwise.
func (ctx *Context) addConstant(constant bytecode.Constant) (uint16, error) {
	for i, existing := range ctx.constants {
		if existing.Equal(constant) {
			return uint16(i), nil
		}
	}
	if len(ctx.constants) >= maxPoolSize {
		return 0, ErrListTooLong
	}
	ctx.constants = append(ctx.constants, constant)
	return uint16(len(ctx.constants) - 1), nil
}

// addName canonicalizes and validates an identifier, then interns it.
func (ctx *Context) addName(name string) (uint16, error) {
	normalized, err := ctx.normalizeName(name)
	if err != nil {
		return 0, err
	}
	for i, existing := range ctx.names {
		if existing == normalized {
			return uint16(i), nil
		}
	}
	if len(ctx.names) >= maxPoolSize {
		return 0, ErrListTooLong
	}
	ctx.names = append(ctx.names, normalized)
	return uint16(len(ctx.names) - 1), nil
}

// normalizeName lowercases an identifier and checks it against the command
// database. The returned error carries the original text so diagnostics show
// what the user wrote.
func (ctx *Context) normalizeName(name string) (string, error) {
	lower := asciiLower(name)
	if !ctx.lookup.IsValidIdentifier(lower) {
		return "", &InvalidNameError{Name: name}
	}
	return lower, nil
}

// asciiLower folds only the ASCII letters A-Z. Unicode case folding would
// accept names like U+212A (kelvin sign) that the engine rejects.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
