package bytecode

import (
	"fmt"
	"strconv"
	"strings"
)

// ConstantKind identifies a constant pool entry variant. The numeric values
// are part of the serialized format and must not be reordered.
type ConstantKind uint8

const (
	ConstantCode    ConstantKind = 0
	ConstantString  ConstantKind = 1
	ConstantScalar  ConstantKind = 2
	ConstantBoolean ConstantKind = 3
	ConstantArray   ConstantKind = 4

	// ConstantNularCommand is a reference to a nular command the game engine
	// resolves to a fixed value at load time, e.g. `west`.
	ConstantNularCommand ConstantKind = 5
)

// Constant is a compile-time value stored in the constant pool. Exactly the
// field selected by Kind is meaningful; the zero value of the others is
// ignored for equality and serialization.
type Constant struct {
	Kind    ConstantKind
	Code    Instructions
	Str     string // also the command name for ConstantNularCommand
	Scalar  float64
	Boolean bool
	Array   []Constant
}

// NewCode wraps a compiled instruction block as a constant.
func NewCode(code Instructions) Constant {
	return Constant{Kind: ConstantCode, Code: code}
}

// NewString creates a string constant.
func NewString(value string) Constant {
	return Constant{Kind: ConstantString, Str: value}
}

// NewScalar creates a numeric constant.
func NewScalar(value float64) Constant {
	return Constant{Kind: ConstantScalar, Scalar: value}
}

// NewBoolean creates a boolean constant.
func NewBoolean(value bool) Constant {
	return Constant{Kind: ConstantBoolean, Boolean: value}
}

// NewArray creates an array constant from fully folded elements.
func NewArray(elements []Constant) Constant {
	return Constant{Kind: ConstantArray, Array: elements}
}

// NewNularCommand creates a constant referencing a nular command by its
// canonical (lowercased) name.
func NewNularCommand(name string) Constant {
	return Constant{Kind: ConstantNularCommand, Str: name}
}

// Equal reports structural equality. The constant pool deduplicates on this
// relation, so two constants comparing equal share one pool index.
func (c Constant) Equal(other Constant) bool {
	if c.Kind != other.Kind {
		return false
	}
	switch c.Kind {
	case ConstantCode:
		return c.Code.Equal(other.Code)
	case ConstantString, ConstantNularCommand:
		return c.Str == other.Str
	case ConstantScalar:
		return c.Scalar == other.Scalar
	case ConstantBoolean:
		return c.Boolean == other.Boolean
	case ConstantArray:
		if len(c.Array) != len(other.Array) {
			return false
		}
		for i, element := range c.Array {
			if !element.Equal(other.Array[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String returns a human friendly rendering for disassembly output.
func (c Constant) String() string {
	switch c.Kind {
	case ConstantCode:
		return fmt.Sprintf("{code: %d instructions}", len(c.Code.Contents))
	case ConstantString:
		return strconv.Quote(c.Str)
	case ConstantScalar:
		return strconv.FormatFloat(c.Scalar, 'g', -1, 64)
	case ConstantBoolean:
		return strconv.FormatBool(c.Boolean)
	case ConstantArray:
		parts := make([]string, len(c.Array))
		for i, element := range c.Array {
			parts[i] = element.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ConstantNularCommand:
		return c.Str
	default:
		return fmt.Sprintf("invalid(%d)", uint8(c.Kind))
	}
}
