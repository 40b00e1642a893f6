// Package conformance runs markdown-described compilation cases.
//
// A case starts at a heading "Test: <name>" and holds one `structura` fence
// with the program followed by assertion fences:
//
//	js            exact emitted JavaScript
//	js-contains   every non-empty line must occur in the emitted JavaScript
//	ir            exact optimized IR dump
//	tac           exact three-address code of the optimized IR
//	compile-error "<CODE>" or "<CODE> line <N>"
package conformance

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"go.uber.org/multierr"

	"structura/internal/diag"
	"structura/internal/driver"
	"structura/internal/ir"
	"structura/internal/tac"
)

const inputLang = "structura"

type AssertionKind string

const (
	AssertJS           AssertionKind = "js"
	AssertJSContains   AssertionKind = "js-contains"
	AssertIR           AssertionKind = "ir"
	AssertTAC          AssertionKind = "tac"
	AssertCompileError AssertionKind = "compile-error"
)

func isAssertion(lang string) bool {
	switch AssertionKind(lang) {
	case AssertJS, AssertJSContains, AssertIR, AssertTAC, AssertCompileError:
		return true
	}
	return false
}

type Assertion struct {
	Kind    AssertionKind
	Content string
	Line    int
}

type Case struct {
	Name       string
	Source     string
	Line       int
	Assertions []Assertion
}

// Extract parses a markdown document into cases.
func Extract(md []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(md))

	var cases []Case
	var cur *Case
	finish := func() error {
		if cur == nil {
			return nil
		}
		if cur.Source == "" {
			return fmt.Errorf("test %q has no %s fence", cur.Name, inputLang)
		}
		if len(cur.Assertions) == 0 {
			return fmt.Errorf("test %q has no assertion fences", cur.Name)
		}
		cases = append(cases, *cur)
		return nil
	}

	err := gast.Walk(doc, func(node gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *gast.Heading:
			title := headingText(n, md)
			if !strings.HasPrefix(title, "Test: ") {
				return gast.WalkContinue, nil
			}
			if err := finish(); err != nil {
				return gast.WalkStop, err
			}
			cur = &Case{Name: strings.TrimPrefix(title, "Test: ")}
		case *gast.FencedCodeBlock:
			lang := string(n.Language(md))
			line := lineOf(n, md)
			if cur == nil {
				if lang != "" {
					return gast.WalkStop, fmt.Errorf("line %d: %s fence outside of a test", line, lang)
				}
				return gast.WalkContinue, nil
			}
			content := fenceContent(n, md)
			switch {
			case lang == inputLang:
				if cur.Source != "" {
					return gast.WalkStop, fmt.Errorf("line %d: test %q has several %s fences", line, cur.Name, inputLang)
				}
				cur.Source, cur.Line = content, line
			case isAssertion(lang):
				cur.Assertions = append(cur.Assertions, Assertion{
					Kind:    AssertionKind(lang),
					Content: strings.TrimRight(content, "\n"),
					Line:    line,
				})
			case lang != "":
				return gast.WalkStop, fmt.Errorf("line %d: unknown fence %q in test %q", line, lang, cur.Name)
			}
		}
		return gast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := finish(); err != nil {
		return nil, err
	}
	return cases, nil
}

// Check compiles the case and evaluates every assertion. All failures are
// returned together.
func Check(ctx context.Context, c Case) error {
	res, cerr := driver.Compile(ctx, c.Name+".struct", []byte(c.Source), driver.DefaultOptions())
	var errs error
	for _, a := range c.Assertions {
		if err := checkOne(a, res, cerr); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %s: %w", a.Line, a.Kind, err))
		}
	}
	return errs
}

func checkOne(a Assertion, res *driver.Result, cerr error) error {
	if a.Kind == AssertCompileError {
		return checkCompileError(a.Content, cerr)
	}
	if cerr != nil {
		return fmt.Errorf("unexpected compile error: %w", cerr)
	}
	switch a.Kind {
	case AssertJS:
		return same(a.Content, strings.TrimRight(res.Output, "\n"))
	case AssertJSContains:
		for _, want := range strings.Split(a.Content, "\n") {
			if want = strings.TrimSpace(want); want != "" && !strings.Contains(res.Output, want) {
				return fmt.Errorf("output misses %q:\n%s", want, res.Output)
			}
		}
		return nil
	case AssertIR:
		var buf bytes.Buffer
		if err := ir.Fprint(&buf, res.Optimized); err != nil {
			return err
		}
		return same(a.Content, strings.TrimRight(buf.String(), "\n"))
	case AssertTAC:
		return same(a.Content, tac.Generate(res.Optimized))
	}
	return fmt.Errorf("unknown assertion")
}

func checkCompileError(want string, err error) error {
	if err == nil {
		return errors.New("compiled without errors")
	}
	var cerr *driver.CompileError
	if !errors.As(err, &cerr) {
		return fmt.Errorf("unexpected failure: %w", err)
	}
	d := cerr.Diagnostic()
	fields := strings.Fields(want)
	if len(fields) == 0 {
		return errors.New("empty expectation")
	}
	if d.Code.ID() != fields[0] {
		return fmt.Errorf("got %q, want %s", diag.FormatShort(d, nil), fields[0])
	}
	if len(fields) == 3 && fields[1] == "line" {
		line, perr := strconv.Atoi(fields[2])
		if perr != nil {
			return fmt.Errorf("bad line %q", fields[2])
		}
		if int(d.Line) != line {
			return fmt.Errorf("%s reported at line %d, want %d", d.Code.ID(), d.Line, line)
		}
	}
	return nil
}

func same(want, got string) error {
	if want != got {
		return fmt.Errorf("mismatch\n--- want\n%s\n--- got\n%s", want, got)
	}
	return nil
}

func headingText(n gast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = gast.Walk(n, func(c gast.Node, entering bool) (gast.WalkStatus, error) {
		if t, ok := c.(*gast.Text); ok && entering {
			buf.Write(t.Segment.Value(src))
		}
		return gast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(n *gast.FencedCodeBlock, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

func lineOf(n gast.Node, src []byte) int {
	if n.Lines().Len() == 0 {
		return 1
	}
	return bytes.Count(src[:n.Lines().At(0).Start], []byte{'\n'}) + 1
}
