package doctor

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"
)

// Package-level variables to allow test overrides.
var (
	isTerminalFunc = term.IsTerminal
	getSizeFunc    = term.GetSize
	stdoutFd       = func() int { return int(os.Stdout.Fd()) }
)

// TerminalCheck verifies stdout can host the TUI and is wide enough for the
// configured toast width.
type TerminalCheck struct {
	toastWidth int
}

func NewTerminalCheck(toastWidth int) *TerminalCheck {
	return &TerminalCheck{toastWidth: toastWidth}
}

func (c *TerminalCheck) Name() string {
	return "Terminal"
}

func (c *TerminalCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	fd := stdoutFd()
	if !isTerminalFunc(fd) {
		result.add(StatusWarn, "stdout", "not a terminal (demo, compose and play need one; use play --headless)")
		return result
	}
	result.add(StatusPass, "stdout", "terminal")

	width, height, err := getSizeFunc(fd)
	if err != nil {
		result.add(StatusWarn, "size", err.Error())
		return result
	}

	size := fmt.Sprintf("%dx%d", width, height)
	// A toast needs its width plus a one cell margin on each side.
	if width < c.toastWidth+2 {
		result.add(StatusWarn, "size", fmt.Sprintf("%s is narrower than toasts (tui.width %d)", size, c.toastWidth))
		return result
	}
	result.add(StatusPass, "size", size)

	return result
}
