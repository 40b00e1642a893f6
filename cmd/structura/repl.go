package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"structura/internal/ast"
	"structura/internal/diagfmt"
	"structura/internal/driver"
	"structura/internal/ir"
	"structura/internal/parser"
	"structura/internal/tac"
)

const (
	historyFile = ".structura_history"
	promptMain  = "structura> "
	promptCont  = "       ... "
)

type replMode string

const (
	modeJS     replMode = "js"
	modeIR     replMode = "ir"
	modeTAC    replMode = "tac"
	modeAST    replMode = "ast"
	modeTokens replMode = "tokens"
)

// session accumulates accepted declarations and statements. Each input is
// compiled together with everything accepted so far and kept only when the
// whole program still compiles.
type session struct {
	src   strings.Builder
	mode  replMode
	opts  driver.Options
	color bool
}

func newSession(opts driver.Options, color bool) *session {
	return &session{mode: modeJS, opts: opts, color: color}
}

// eval compiles the session plus input and renders the current mode's view.
// Compile errors are rendered into out as diagnostics.
func (s *session) eval(ctx context.Context, input string, out io.Writer) error {
	candidate := s.src.String() + input + "\n"
	res, err := driver.Compile(ctx, "repl.struct", []byte(candidate), s.opts)
	if err != nil {
		var cerr *driver.CompileError
		if errors.As(err, &cerr) {
			diagfmt.PrettyOne(out, cerr.Diagnostic(), res.FileSet, diagfmt.PrettyOpts{Color: s.color, PathMode: diagfmt.PathModeBasename})
			return nil
		}
		return err
	}
	s.src.WriteString(input)
	s.src.WriteString("\n")
	return s.render(res, out)
}

func (s *session) render(res *driver.Result, out io.Writer) error {
	switch s.mode {
	case modeTokens:
		return diagfmt.FormatTokensPretty(out, res.Tokens, res.FileSet)
	case modeAST:
		return ast.Fprint(out, res.AST)
	case modeIR:
		return ir.Fprint(out, res.Optimized)
	case modeTAC:
		return writeLine(out, tac.Generate(res.Optimized))
	default:
		_, err := io.WriteString(out, res.Output)
		return err
	}
}

// command handles a ":" line. It reports whether the REPL should exit.
func (s *session) command(line string, out io.Writer) bool {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), ":"))
	if len(fields) == 0 {
		fmt.Fprintln(out, "commands: :mode js|ir|tac|ast|tokens, :source, :reset, :quit")
		return false
	}
	switch fields[0] {
	case "quit", "q":
		return true
	case "reset":
		s.src.Reset()
		fmt.Fprintln(out, "session cleared")
	case "source":
		fmt.Fprint(out, s.src.String())
	case "mode":
		if len(fields) != 2 {
			fmt.Fprintf(out, "mode: %s\n", s.mode)
			break
		}
		switch m := replMode(fields[1]); m {
		case modeJS, modeIR, modeTAC, modeAST, modeTokens:
			s.mode = m
		default:
			fmt.Fprintf(out, "unknown mode %q\n", fields[1])
		}
	default:
		fmt.Fprintf(out, "unknown command %q. Type :quit to exit.\n", fields[0])
	}
	return false
}

// needsMore reports whether src stops in the middle of a construct.
func needsMore(src string) bool {
	_, err := driver.Compile(context.Background(), "probe.struct", []byte(src), driver.Options{StopAfter: driver.StageParse})
	var perr *parser.Error
	return errors.As(err, &perr) && perr.Incomplete()
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Compile declarations and statements interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			opts, _ := st.compileOptions(driver.StageNone)
			sess := newSession(opts, st.color)
			return runRepl(cmd.Context(), sess, cmd.OutOrStdout())
		},
	}
}

func runRepl(ctx context.Context, sess *session, out io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		code, ok := readInput(ln)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			if sess.command(trimmed, out) {
				return nil
			}
			continue
		}
		if err := sess.eval(ctx, code, out); err != nil {
			return err
		}
	}
}

func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !needsMore(src) {
			return src, true
		}
	}
}
