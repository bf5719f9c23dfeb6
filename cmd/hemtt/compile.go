package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Perondas/HEMTT/ast"
	"github.com/Perondas/HEMTT/compiler"
	"github.com/Perondas/HEMTT/preprocessor"
	"github.com/Perondas/HEMTT/project"
)

func compileCommand() *cobra.Command {
	var outDir string
	var projectFile string
	cmd := &cobra.Command{
		Use:   "compile <file>...",
		Short: "Compile parsed SQF scripts to bytecode",
		Long: "Compile reads JSON AST documents produced by the SQF parser and " +
			"writes .sqfc bytecode files next to the inputs, or into the " +
			"directory given with --output.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(args, outDir, projectFile, true)
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "directory for compiled files")
	cmd.Flags().StringVar(&projectFile, "project", "", "path to the project file")
	return cmd
}

func checkCommand() *cobra.Command {
	var projectFile string
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Compile scripts without writing output",
		Long: "Check runs the same compilation as `hemtt compile` but discards " +
			"the result, reporting errors only.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(args, "", projectFile, false)
		},
	}
	cmd.Flags().StringVar(&projectFile, "project", "", "path to the project file")
	return cmd
}

func runCompile(files []string, outDir, projectFile string, write bool) error {
	buildID, err := uuid.NewV4()
	if err != nil {
		return err
	}
	logger := log.With().Str("build", buildID.String()).Logger()

	if projectFile != "" {
		cfg, err := project.Load(projectFile)
		if err != nil {
			return err
		}
		logger.Info().Str("project", cfg.Name).Str("prefix", cfg.Prefix).Msg("loaded project")
	}

	var result *multierror.Error
	compiled := 0
	for _, file := range files {
		if err := compileFile(file, outDir, write); err != nil {
			printError(file, err)
			result = multierror.Append(result, fmt.Errorf("%s: %w", file, err))
			continue
		}
		compiled++
		logger.Debug().Str("file", file).Msg("compiled")
	}
	logger.Info().Int("compiled", compiled).Int("failed", len(files)-compiled).Msg("done")
	return result.ErrorOrNil()
}

func compileFile(file, outDir string, write bool) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	doc, err := ast.DecodeDocument(data)
	if err != nil {
		return err
	}
	name := doc.File
	if name == "" {
		name = filepath.Base(file)
	}
	processed := preprocessor.Simple(doc.Source, name)
	if !write {
		_, err := compiler.Compile(doc.Statements, processed)
		return err
	}
	out := strings.TrimSuffix(file, filepath.Ext(file)) + ".sqfc"
	if outDir != "" {
		out = filepath.Join(outDir, filepath.Base(out))
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := compiler.CompileToWriter(doc.Statements, processed, f); err != nil {
		f.Close()
		os.Remove(out)
		return err
	}
	return f.Close()
}
