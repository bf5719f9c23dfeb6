package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/Perondas/HEMTT/bytecode"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgCyan, color.Bold)
	indexColor   = color.New(color.FgYellow)
	commentColor = color.New(color.FgHiBlack)
)

func printError(file string, err error) {
	errorLabel.Fprint(os.Stderr, "error")
	fmt.Fprintf(os.Stderr, ": %s: %v\n", file, err)
}

// printCompiled renders a compiled program in a readable disassembly layout:
// header, constant pool, name pool, file table, then each code constant's
// instructions.
func printCompiled(w io.Writer, compiled *bytecode.Compiled) {
	headerColor.Fprintln(w, "sqfc")
	fmt.Fprintf(w, "  entry point: %d\n", compiled.EntryPoint)
	fmt.Fprintf(w, "  compression: %t\n", compiled.ConstantsCompression)

	headerColor.Fprintln(w, "constants")
	for i, constant := range compiled.Constants {
		indexColor.Fprintf(w, "  %5d ", i)
		fmt.Fprintln(w, constant.String())
	}

	headerColor.Fprintln(w, "names")
	for i, name := range compiled.Names {
		indexColor.Fprintf(w, "  %5d ", i)
		fmt.Fprintln(w, name)
	}

	headerColor.Fprintln(w, "files")
	for i, name := range compiled.FileNames {
		indexColor.Fprintf(w, "  %5d ", i)
		fmt.Fprintln(w, name)
	}

	for i, constant := range compiled.Constants {
		if constant.Kind != bytecode.ConstantCode {
			continue
		}
		headerColor.Fprintf(w, "code %d", i)
		if uint16(i) == compiled.EntryPoint {
			commentColor.Fprint(w, "  ; entry point")
		}
		fmt.Fprintln(w)
		printInstructions(w, compiled, constant.Code)
	}
}

func printInstructions(w io.Writer, compiled *bytecode.Compiled, code bytecode.Instructions) {
	for i, instr := range code.Contents {
		indexColor.Fprintf(w, "  %5d ", i)
		fmt.Fprintf(w, "%-16s", instr.Kind.String())
		switch instr.Kind {
		case bytecode.EndStatement:
		case bytecode.Push:
			fmt.Fprintf(w, " %d", instr.Operand)
			if int(instr.Operand) < len(compiled.Constants) {
				commentColor.Fprintf(w, "  ; %s", compiled.Constants[instr.Operand].String())
			}
		case bytecode.MakeArray:
			fmt.Fprintf(w, " %d", instr.Operand)
		default:
			fmt.Fprintf(w, " %d", instr.Operand)
			if int(instr.Operand) < len(compiled.Names) {
				commentColor.Fprintf(w, "  ; %s", compiled.Names[instr.Operand])
			}
		}
		fmt.Fprintln(w)
	}
}
