package toast

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Project returns the toasts anchored at pos, preserving their relative
// order. The result is never nil.
func Project(list []Toast, pos Position) []Toast {
	out := []Toast{}
	for _, t := range list {
		if t.Position == pos {
			out = append(out, t)
		}
	}
	return out
}

// Group partitions list by anchor. Every anchor has an entry, empty or not.
func Group(list []Toast) map[Position][]Toast {
	groups := make(map[Position][]Toast, len(Positions()))
	for _, p := range Positions() {
		groups[p] = []Toast{}
	}
	for _, t := range list {
		groups[t.Position] = append(groups[t.Position], t)
	}
	return groups
}

// MatchPositions returns the anchors whose names match the glob pattern,
// e.g. "top-*" or "*-center". An empty pattern matches every anchor.
func MatchPositions(pattern string) ([]Position, error) {
	if pattern == "" {
		pattern = "*"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid anchor pattern %q", pattern)
	}

	var out []Position
	for _, p := range Positions() {
		ok, err := doublestar.Match(pattern, string(p))
		if err != nil {
			return nil, fmt.Errorf("match anchor pattern %q: %w", pattern, err)
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// ProjectMatching returns the toasts whose anchor matches pattern, preserving
// insertion order.
func ProjectMatching(list []Toast, pattern string) ([]Toast, error) {
	positions, err := MatchPositions(pattern)
	if err != nil {
		return nil, err
	}

	wanted := make(map[Position]bool, len(positions))
	for _, p := range positions {
		wanted[p] = true
	}

	out := []Toast{}
	for _, t := range list {
		if wanted[t.Position] {
			out = append(out, t)
		}
	}
	return out, nil
}
