package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"structura/internal/ast"
	"structura/internal/diagfmt"
	"structura/internal/driver"
	"structura/internal/ir"
	"structura/internal/tac"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.struct",
		Short: "Tokenize a structura source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			if format != "pretty" && format != "json" {
				return fmt.Errorf("unknown format: %s", format)
			}
			_, res, err := compileFile(cmd, args[0], driver.StageLex)
			if err != nil {
				return err
			}
			if format == "json" {
				return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), res.Tokens)
			}
			return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), res.Tokens, res.FileSet)
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse file.struct",
		Short: "Print the syntax tree of a structura source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := compileFile(cmd, args[0], driver.StageParse)
			if err != nil {
				return err
			}
			return ast.Fprint(cmd.OutOrStdout(), res.AST)
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check file.struct",
		Short: "Type-check a structura source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := compileFile(cmd, args[0], driver.StageCheck)
			if err != nil {
				return err
			}
			if !s.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			}
			return nil
		},
	}
}

func newIRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ir [flags] file.struct",
		Short: "Print the intermediate representation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			optimized, err := cmd.Flags().GetBool("optimized")
			if err != nil {
				return err
			}
			stop := driver.StageIRGen
			if optimized {
				stop = driver.StageOptimize
			}
			_, res, err := compileFile(cmd, args[0], stop)
			if err != nil {
				return err
			}
			if optimized {
				return ir.Fprint(cmd.OutOrStdout(), res.Optimized)
			}
			return ir.Fprint(cmd.OutOrStdout(), res.IR)
		},
	}
	cmd.Flags().Bool("optimized", false, "print the IR after constant folding")
	return cmd
}

func newTACCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tac file.struct",
		Short: "Print three-address code of the optimized IR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, res, err := compileFile(cmd, args[0], driver.StageOptimize)
			if err != nil {
				return err
			}
			return writeLine(cmd.OutOrStdout(), tac.Generate(res.Optimized))
		},
	}
}

func writeLine(w io.Writer, s string) error {
	if s == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, s)
	return err
}
