package bytecode

// Compiled is the final artifact of a whole-program compile. Pool ordering is
// first-seen order and is part of the observable format: compiling the same
// input twice yields an identical Compiled value.
type Compiled struct {
	// EntryPoint is the constant pool index of the top-level code block. It
	// is always the last entry appended to the pool.
	EntryPoint uint16

	// ConstantsCompression records that the constant pool was deduplicated.
	// It is always true for output produced by this compiler; the field
	// exists so the container format can represent legacy artifacts.
	ConstantsCompression bool

	// Constants is the deduplicated constant pool in first-seen order.
	Constants []Constant

	// Names is the deduplicated pool of canonicalized identifiers in
	// first-seen order.
	Names []string

	// FileNames lists the source files referenced by SourceInfo values, in
	// the order the preprocessor reports them.
	FileNames []string
}

// Entry returns the top-level code block.
func (c *Compiled) Entry() Instructions {
	return c.Constants[c.EntryPoint].Code
}
