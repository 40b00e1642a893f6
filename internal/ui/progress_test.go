package ui

import (
	"strings"
	"testing"

	"structura/internal/driver"
)

func TestProgressModel(t *testing.T) {
	events := make(chan driver.FileEvent)
	m := NewProgressModel("building", []string{"a.struct", "lib/b.struct"}, events).(*progressModel)

	m.Update(eventMsg{Path: "a.struct", Status: driver.FileCompiling})
	view := m.View()
	if !strings.Contains(view, "building 0/2") || !strings.Contains(view, "compiling") {
		t.Errorf("view:\n%s", view)
	}

	m.Update(eventMsg{Path: "a.struct", Status: driver.FileDone})
	m.Update(eventMsg{Path: "lib/b.struct", Status: driver.FileFailed})
	m.Update(eventMsg{Path: "unknown.struct", Status: driver.FileDone})
	if finished, failed := m.counts(); finished != 2 || failed != 1 {
		t.Errorf("counts = %d, %d", finished, failed)
	}

	_, cmd := m.Update(doneMsg{})
	if cmd == nil || !m.done {
		t.Error("done must quit")
	}
	view = m.View()
	if !strings.HasPrefix(stripANSI(view), "done: building 2/2, 1 failed") {
		t.Errorf("final view:\n%s", view)
	}
}

func TestListenForEventClosed(t *testing.T) {
	events := make(chan driver.FileEvent)
	close(events)
	m := NewProgressModel("x", nil, events).(*progressModel)
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Error("closed channel must finish the model")
	}
	if m.View() != "" {
		t.Error("no files, no view")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("very/long/path/file.struct", 10); got != "very/lo..." {
		t.Errorf("got %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Errorf("got %q", got)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
