// Package bytecode defines the serializable form of a compiled SQF script: a
// constant pool, a name pool, and instruction sequences that reference both
// by index. The compiler produces these values and Serialize writes them in
// the container format the game engine loads.
package bytecode

import "fmt"

// InstructionKind identifies an instruction variant. The numeric values are
// part of the serialized format and must not be reordered.
type InstructionKind uint8

const (
	// EndStatement marks a statement boundary. The runtime resets its
	// per-statement evaluation state when it encounters one.
	EndStatement InstructionKind = 0

	// Push loads the constant at Index onto the stack.
	Push InstructionKind = 1

	// CallUnary invokes the unary command named at Index with one operand.
	CallUnary InstructionKind = 2

	// CallBinary invokes the binary command named at Index with two operands.
	CallBinary InstructionKind = 3

	// CallNular invokes the nular command named at Index.
	CallNular InstructionKind = 4

	// AssignTo stores the stack top into the global variable named at Index.
	AssignTo InstructionKind = 5

	// AssignToLocal stores the stack top into the local variable named at Index.
	AssignToLocal InstructionKind = 6

	// GetVariable loads the variable named at Index onto the stack.
	GetVariable InstructionKind = 7

	// MakeArray collects the top Index values into an array.
	MakeArray InstructionKind = 8
)

// String returns the disassembly name of the instruction kind.
func (k InstructionKind) String() string {
	switch k {
	case EndStatement:
		return "END_STATEMENT"
	case Push:
		return "PUSH"
	case CallUnary:
		return "CALL_UNARY"
	case CallBinary:
		return "CALL_BINARY"
	case CallNular:
		return "CALL_NULAR"
	case AssignTo:
		return "ASSIGN_TO"
	case AssignToLocal:
		return "ASSIGN_TO_LOCAL"
	case GetVariable:
		return "GET_VARIABLE"
	case MakeArray:
		return "MAKE_ARRAY"
	default:
		return fmt.Sprintf("INVALID(%d)", uint8(k))
	}
}

// HasSource reports whether instructions of this kind carry source info.
// Only instructions whose execution can fault at runtime do.
func (k InstructionKind) HasSource() bool {
	switch k {
	case EndStatement, Push:
		return false
	default:
		return true
	}
}

// SourceInfo locates an instruction in the user's original source. Offset is
// a byte position in the processed (macro-expanded) text while FileIndex and
// FileLine refer to the original file the offset maps back to.
type SourceInfo struct {
	Offset    uint32
	FileIndex uint16
	FileLine  uint16
}

// Instruction is a single emitted operation. Operand is a constant pool
// index for Push, an element count for MakeArray, and a name pool index for
// everything except EndStatement.
type Instruction struct {
	Kind    InstructionKind
	Operand uint16
	Source  SourceInfo
}

// Instructions is a self-contained compiled block: the top-level program or
// the body of a code constant. SourceStringIndex points at the constant pool
// entry holding the block's source text.
type Instructions struct {
	Contents          []Instruction
	SourceStringIndex uint16
}

// Equal reports whether two instruction blocks are identical.
func (i Instructions) Equal(other Instructions) bool {
	if i.SourceStringIndex != other.SourceStringIndex {
		return false
	}
	if len(i.Contents) != len(other.Contents) {
		return false
	}
	for n, instr := range i.Contents {
		if instr != other.Contents[n] {
			return false
		}
	}
	return true
}
