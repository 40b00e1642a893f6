package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if !strings.EqualFold(l.String(), s) {
			t.Errorf("%s round-tripped to %s", s, l)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	if !LevelPhase.ShouldEmit(ScopePass) || LevelPhase.ShouldEmit(ScopeFile) {
		t.Error("phase level")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) || LevelDetail.ShouldEmit(ScopeNode) {
		t.Error("detail level")
	}
	if LevelError.ShouldEmit(ScopeDriver) {
		t.Error("error level emits no spans")
	}
}

func TestSpanText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	root := Begin(tr, ScopeDriver, "build", 0)
	child := Begin(tr, ScopePass, "parse", root.ID())
	child.WithExtra("tokens", "12").End("")
	Begin(tr, ScopeFile, "file:a.struct", root.ID()).End("")
	root.End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "  → parse") {
		t.Errorf("child begin = %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "← parse {tokens=12}") {
		t.Errorf("child end = %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "← build (ok)") {
		t.Errorf("root end = %q", lines[3])
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeNode, "node", "call", 0)
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("%v: %s", err, buf.String())
	}
	if got["kind"] != "point" || got["scope"] != "node" || got["detail"] != "call" {
		t.Errorf("event = %v", got)
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("default tracer must be Nop")
	}
	tr := NewStreamTracer(&bytes.Buffer{}, LevelPhase, FormatText)
	ctx := WithParent(WithTracer(context.Background(), tr), 7)
	if FromContext(ctx) != tr || ParentSpan(ctx) != 7 {
		t.Error("context round trip")
	}
	if d := Begin(Nop, ScopeDriver, "x", 0).End(""); d != 0 {
		t.Error("nop span has no duration")
	}
}
