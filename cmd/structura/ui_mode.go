package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the value of `build --ui`: whether the progress display replaces
// the plain per-file log.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on", "true":
		return uiModeOn, nil
	case "off", "false":
		return uiModeOff, nil
	}
	return "", fmt.Errorf("--ui: unknown mode %q, want auto|on|off", value)
}

// enabled resolves auto against the terminal the build writes to.
func (m uiMode) enabled(out *os.File) bool {
	switch m {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	}
	return isTerminal(out)
}
