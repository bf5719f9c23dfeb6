package bytecode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleCompiled() *Compiled {
	inner := Instructions{
		Contents: []Instruction{
			{Kind: EndStatement},
			{Kind: Push, Operand: 0},
			{Kind: AssignTo, Operand: 1, Source: SourceInfo{Offset: 9, FileIndex: 0, FileLine: 2}},
		},
		SourceStringIndex: 2,
	}
	entry := Instructions{
		Contents: []Instruction{
			{Kind: EndStatement},
			{Kind: Push, Operand: 0},
			{Kind: Push, Operand: 1},
			{Kind: CallBinary, Operand: 0, Source: SourceInfo{Offset: 4, FileIndex: 0, FileLine: 1}},
			{Kind: MakeArray, Operand: 2, Source: SourceInfo{Offset: 0, FileIndex: 1, FileLine: 3}},
			{Kind: GetVariable, Operand: 2, Source: SourceInfo{Offset: 2, FileIndex: 0, FileLine: 1}},
		},
		SourceStringIndex: 4,
	}
	return &Compiled{
		EntryPoint:           5,
		ConstantsCompression: true,
		Constants: []Constant{
			NewScalar(1),
			NewArray([]Constant{NewString("a"), NewBoolean(true), NewNularCommand("west")}),
			NewString("y = 1"),
			NewCode(inner),
			NewString("x = [1, [\"a\", true, west]]"),
			NewCode(entry),
		},
		Names:     []string{"+", "x", "foo"},
		FileNames: []string{"fn_main.sqf", "macros.hpp"},
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	compiled := sampleCompiled()
	var buf bytes.Buffer
	require.Nil(t, compiled.Serialize(&buf))

	decoded, err := Deserialize(&buf)
	require.Nil(t, err)
	require.Equal(t, compiled, decoded)
}

func TestSerializeDeterministic(t *testing.T) {
	compiled := sampleCompiled()
	var first, second bytes.Buffer
	require.Nil(t, compiled.Serialize(&first))
	require.Nil(t, compiled.Serialize(&second))
	require.Equal(t, first.Bytes(), second.Bytes())
}

func TestSerializeFullPool(t *testing.T) {
	// A full pool holds 65,536 entries: every index 0..65535 is addressable,
	// so the count itself does not fit a u16. The container must carry it
	// without wrapping.
	constants := make([]Constant, 0, 1<<16)
	for i := 0; i < 1<<16-1; i++ {
		constants = append(constants, NewScalar(float64(i)))
	}
	constants = append(constants, NewCode(Instructions{
		Contents:          []Instruction{{Kind: EndStatement}},
		SourceStringIndex: 0,
	}))
	compiled := &Compiled{
		EntryPoint:           1<<16 - 1,
		ConstantsCompression: true,
		Constants:            constants,
		Names:                []string{"x"},
		FileNames:            []string{"fn_main.sqf"},
	}

	var buf bytes.Buffer
	require.Nil(t, compiled.Serialize(&buf))

	decoded, err := Deserialize(&buf)
	require.Nil(t, err)
	require.Len(t, decoded.Constants, 1<<16)
	require.Equal(t, compiled.EntryPoint, decoded.EntryPoint)
	require.Equal(t, compiled.Constants[123], decoded.Constants[123])
}

func TestDeserializeBadMagic(t *testing.T) {
	_, err := Deserialize(bytes.NewReader([]byte("PBO\x00rest of the file")))
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestDeserializeBadVersion(t *testing.T) {
	var buf bytes.Buffer
	require.Nil(t, sampleCompiled().Serialize(&buf))
	data := buf.Bytes()
	data[4] = 99 // version field
	_, err := Deserialize(bytes.NewReader(data))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "unsupported sqfc version")
}

func TestDeserializeTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.Nil(t, sampleCompiled().Serialize(&buf))
	data := buf.Bytes()
	for _, cut := range []int{0, 3, 8, 12, len(data) / 2, len(data) - 1} {
		_, err := Deserialize(bytes.NewReader(data[:cut]))
		require.NotNil(t, err, "cut at %d", cut)
	}
}

func TestDeserializeForgedStringLength(t *testing.T) {
	// A crafted length field far past the actual input must fail with a
	// read error, not commit to the claimed allocation.
	var buf bytes.Buffer
	buf.Write(magic[:])
	w := &sectionWriter{w: &buf}
	w.u32(Version)
	w.u16(0)
	w.bool(true)
	w.u32(1) // constant count
	w.u8(uint8(ConstantString))
	w.u32(0xFFFFFFFF) // claims 4 GiB of string data
	require.Nil(t, w.err)
	buf.WriteString("short")

	_, err := Deserialize(&buf)
	require.NotNil(t, err)
}

func TestDeserializeEntryPointOutOfRange(t *testing.T) {
	compiled := &Compiled{
		EntryPoint:           7,
		ConstantsCompression: true,
		Constants:            []Constant{NewScalar(1)},
	}
	var buf bytes.Buffer
	require.Nil(t, compiled.Serialize(&buf))
	_, err := Deserialize(&buf)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "entry point")
}

func TestDeserializeEntryPointNotCode(t *testing.T) {
	compiled := &Compiled{
		EntryPoint:           0,
		ConstantsCompression: true,
		Constants:            []Constant{NewScalar(1)},
	}
	var buf bytes.Buffer
	require.Nil(t, compiled.Serialize(&buf))
	_, err := Deserialize(&buf)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "not a code constant")
}
