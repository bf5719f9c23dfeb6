package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Perondas/HEMTT/bytecode"
)

func disCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dis <file.sqfc>",
		Short: "Disassemble a compiled SQF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			compiled, err := bytecode.Deserialize(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			printCompiled(cmd.OutOrStdout(), compiled)
			return nil
		},
	}
}
