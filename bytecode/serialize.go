package bytecode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Container format, all integers little-endian:
//
//	magic "SQFC", u32 version
//	u16 entry point, u8 compression flag
//	u32 constant count, tagged constants
//	u32 name count, strings
//	u32 file name count, strings
//
// Pool counts are u32: indexes are 16-bit but a full pool holds 65,536
// entries, one past what a u16 count can express.
//
// Strings are u32 length plus UTF-8 bytes. Code constants hold a u16 source
// string index, a u32 instruction count and the instructions; instructions
// are a u8 kind, a u16 operand (absent for END_STATEMENT) and source info
// (u32 offset, u16 file index, u16 file line) for kinds that carry it.

var magic = [4]byte{'S', 'Q', 'F', 'C'}

// Version is the container format version written by Serialize.
const Version uint32 = 1

// ErrBadMagic is returned by Deserialize when the input does not start with
// the SQFC magic bytes.
var ErrBadMagic = errors.New("not a compiled sqf file")

// Serialize writes the compiled program to w in the container format.
func (c *Compiled) Serialize(w io.Writer) error {
	sw := &sectionWriter{w: w}
	sw.bytes(magic[:])
	sw.u32(Version)
	sw.u16(c.EntryPoint)
	sw.bool(c.ConstantsCompression)
	sw.u32(uint32(len(c.Constants)))
	for _, constant := range c.Constants {
		sw.constant(constant)
	}
	sw.u32(uint32(len(c.Names)))
	for _, name := range c.Names {
		sw.string(name)
	}
	sw.u32(uint32(len(c.FileNames)))
	for _, name := range c.FileNames {
		sw.string(name)
	}
	return sw.err
}

// Deserialize reads a compiled program from r.
func Deserialize(r io.Reader) (*Compiled, error) {
	sr := &sectionReader{r: r}
	var head [4]byte
	sr.bytes(head[:])
	if sr.err == nil && head != magic {
		return nil, ErrBadMagic
	}
	version := sr.u32()
	if sr.err == nil && version != Version {
		return nil, fmt.Errorf("unsupported sqfc version %d", version)
	}
	compiled := &Compiled{
		EntryPoint:           sr.u16(),
		ConstantsCompression: sr.bool(),
	}
	constantCount := int(sr.u32())
	for i := 0; i < constantCount && sr.err == nil; i++ {
		compiled.Constants = append(compiled.Constants, sr.constant(0))
	}
	nameCount := int(sr.u32())
	for i := 0; i < nameCount && sr.err == nil; i++ {
		compiled.Names = append(compiled.Names, sr.string())
	}
	fileCount := int(sr.u32())
	for i := 0; i < fileCount && sr.err == nil; i++ {
		compiled.FileNames = append(compiled.FileNames, sr.string())
	}
	if sr.err != nil {
		return nil, sr.err
	}
	if int(compiled.EntryPoint) >= len(compiled.Constants) {
		return nil, fmt.Errorf("entry point %d out of range", compiled.EntryPoint)
	}
	if compiled.Constants[compiled.EntryPoint].Kind != ConstantCode {
		return nil, errors.New("entry point is not a code constant")
	}
	return compiled, nil
}

// sectionWriter writes primitives with a sticky error so call sites stay
// linear.
type sectionWriter struct {
	w   io.Writer
	err error
}

func (sw *sectionWriter) bytes(b []byte) {
	if sw.err != nil {
		return
	}
	_, sw.err = sw.w.Write(b)
}

func (sw *sectionWriter) u8(v uint8) { sw.bytes([]byte{v}) }

func (sw *sectionWriter) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	sw.bytes(b[:])
}

func (sw *sectionWriter) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	sw.bytes(b[:])
}

func (sw *sectionWriter) f64(v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	sw.bytes(b[:])
}

func (sw *sectionWriter) bool(v bool) {
	if v {
		sw.u8(1)
	} else {
		sw.u8(0)
	}
}

func (sw *sectionWriter) string(s string) {
	sw.u32(uint32(len(s)))
	sw.bytes([]byte(s))
}

func (sw *sectionWriter) constant(c Constant) {
	sw.u8(uint8(c.Kind))
	switch c.Kind {
	case ConstantCode:
		sw.instructions(c.Code)
	case ConstantString, ConstantNularCommand:
		sw.string(c.Str)
	case ConstantScalar:
		sw.f64(c.Scalar)
	case ConstantBoolean:
		sw.bool(c.Boolean)
	case ConstantArray:
		sw.u16(uint16(len(c.Array)))
		for _, element := range c.Array {
			sw.constant(element)
		}
	default:
		if sw.err == nil {
			sw.err = fmt.Errorf("cannot serialize constant kind %d", c.Kind)
		}
	}
}

func (sw *sectionWriter) instructions(code Instructions) {
	sw.u16(code.SourceStringIndex)
	sw.u32(uint32(len(code.Contents)))
	for _, instr := range code.Contents {
		sw.u8(uint8(instr.Kind))
		if instr.Kind == EndStatement {
			continue
		}
		sw.u16(instr.Operand)
		if instr.Kind.HasSource() {
			sw.u32(instr.Source.Offset)
			sw.u16(instr.Source.FileIndex)
			sw.u16(instr.Source.FileLine)
		}
	}
}

// maxNestingDepth bounds recursion while decoding untrusted input. Code and
// array constants nest, and a crafted file could otherwise blow the stack.
const maxNestingDepth = 512

type sectionReader struct {
	r   io.Reader
	err error
}

func (sr *sectionReader) bytes(b []byte) {
	if sr.err != nil {
		return
	}
	_, sr.err = io.ReadFull(sr.r, b)
}

func (sr *sectionReader) u8() uint8 {
	var b [1]byte
	sr.bytes(b[:])
	return b[0]
}

func (sr *sectionReader) u16() uint16 {
	var b [2]byte
	sr.bytes(b[:])
	return binary.LittleEndian.Uint16(b[:])
}

func (sr *sectionReader) u32() uint32 {
	var b [4]byte
	sr.bytes(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

func (sr *sectionReader) f64() float64 {
	var b [8]byte
	sr.bytes(b[:])
	return math.Float64frombits(binary.LittleEndian.Uint64(b[:]))
}

func (sr *sectionReader) bool() bool {
	return sr.u8() != 0
}

// string reads a length-prefixed string. The buffer grows only as bytes
// actually arrive, so a forged length field cannot force a multi-gigabyte
// allocation before the read fails.
func (sr *sectionReader) string() string {
	length := int64(sr.u32())
	if sr.err != nil {
		return ""
	}
	var buf bytes.Buffer
	n, err := io.CopyN(&buf, sr.r, length)
	if err != nil {
		if err == io.EOF && n < length {
			err = io.ErrUnexpectedEOF
		}
		sr.fail(err)
		return ""
	}
	return buf.String()
}

func (sr *sectionReader) constant(depth int) Constant {
	if depth > maxNestingDepth {
		sr.fail(errors.New("constant nesting too deep"))
		return Constant{}
	}
	kind := ConstantKind(sr.u8())
	switch kind {
	case ConstantCode:
		return Constant{Kind: kind, Code: sr.instructions()}
	case ConstantString, ConstantNularCommand:
		return Constant{Kind: kind, Str: sr.string()}
	case ConstantScalar:
		return Constant{Kind: kind, Scalar: sr.f64()}
	case ConstantBoolean:
		return Constant{Kind: kind, Boolean: sr.bool()}
	case ConstantArray:
		count := int(sr.u16())
		elements := make([]Constant, 0, count)
		for i := 0; i < count && sr.err == nil; i++ {
			elements = append(elements, sr.constant(depth+1))
		}
		return Constant{Kind: kind, Array: elements}
	default:
		sr.fail(fmt.Errorf("unknown constant kind %d", kind))
		return Constant{}
	}
}

func (sr *sectionReader) instructions() Instructions {
	code := Instructions{SourceStringIndex: sr.u16()}
	count := int(sr.u32())
	for i := 0; i < count && sr.err == nil; i++ {
		instr := Instruction{Kind: InstructionKind(sr.u8())}
		if instr.Kind > MakeArray {
			sr.fail(fmt.Errorf("unknown instruction kind %d", instr.Kind))
			return code
		}
		if instr.Kind != EndStatement {
			instr.Operand = sr.u16()
			if instr.Kind.HasSource() {
				instr.Source.Offset = sr.u32()
				instr.Source.FileIndex = sr.u16()
				instr.Source.FileLine = sr.u16()
			}
		}
		code.Contents = append(code.Contents, instr)
	}
	return code
}

func (sr *sectionReader) fail(err error) {
	if sr.err == nil {
		sr.err = err
	}
}
