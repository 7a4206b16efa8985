// Package tuitest provides testing utilities for TUI components.
package tuitest

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes and trailing whitespace so rendered
// output can be compared as plain text.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		result = append(result, strings.TrimRight(line, " "))
	}
	return strings.TrimRight(strings.Join(result, "\n"), "\n")
}

// LineOf returns the index of the first line of s containing substr, or -1.
func LineOf(s, substr string) int {
	for i, line := range strings.Split(s, "\n") {
		if strings.Contains(line, substr) {
			return i
		}
	}
	return -1
}

// ColumnOf returns the display column where substr starts on the first line
// containing it, or -1.
func ColumnOf(s, substr string) int {
	for _, line := range strings.Split(s, "\n") {
		if idx := strings.Index(line, substr); idx >= 0 {
			return ansi.StringWidth(line[:idx])
		}
	}
	return -1
}

// Blank returns a width x height grid of spaces.
func Blank(width, height int) string {
	row := strings.Repeat(" ", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

// KeyPress creates a key press message for a single rune.
func KeyPress(key rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: key})
}

// CtrlKey creates a key press message for ctrl+key.
func CtrlKey(key rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: key, Mod: tea.ModCtrl})
}

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}
