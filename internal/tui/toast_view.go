package tui

import (
	"math"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/toasty/internal/core/styles"
	"github.com/colonyops/toasty/internal/core/toast"
)

const (
	defaultToastWidth = 44
	minToastWidth     = 20

	// frame is the horizontal space taken by border and padding.
	frame = 4
)

// ToastView renders toasts grouped by anchor and composites each group as an
// overlay at its screen position.
type ToastView struct {
	width   int
	anchors []toast.Position
	loading string
}

// NewToastView creates a view drawing the given anchors. A nil anchors slice
// draws all six.
func NewToastView(width int, anchors []toast.Position) *ToastView {
	if width <= 0 {
		width = defaultToastWidth
	}
	width = max(width, minToastWidth)
	if anchors == nil {
		anchors = toast.Positions()
	}
	return &ToastView{width: width, anchors: anchors}
}

// Anchors returns the anchors the view draws, in render order.
func (v *ToastView) Anchors() []toast.Position {
	return v.anchors
}

// SetLoadingIndicator sets the glyph drawn in place of the icon for toasts
// that wait on tracked work.
func (v *ToastView) SetLoadingIndicator(s string) {
	v.loading = s
}

// Stack renders the toasts of one anchor stacked vertically, oldest first.
func (v *ToastView) Stack(list []toast.Toast) string {
	if len(list) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(list))
	for _, t := range list {
		rendered = append(rendered, v.renderToast(t))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// Overlay composites every drawn anchor's stack over background.
func (v *ToastView) Overlay(background string, list []toast.Toast, width, height int) string {
	groups := toast.Group(list)

	layers := []*lipgloss.Layer{lipgloss.NewLayer(background)}
	for _, pos := range v.anchors {
		stack := v.Stack(groups[pos])
		if stack == "" {
			continue
		}

		x, y := anchorOrigin(pos, lipgloss.Width(stack), lipgloss.Height(stack), width, height)
		layers = append(layers, lipgloss.NewLayer(stack).X(x).Y(y).Z(2))
	}

	if len(layers) == 1 {
		return background
	}

	return lipgloss.NewCompositor(layers...).Render()
}

// anchorOrigin returns the top-left cell for a stack of size w x h. Top
// anchors leave the title row free and bottom anchors the status row.
func anchorOrigin(pos toast.Position, w, h, width, height int) (int, int) {
	var x int
	switch {
	case strings.HasSuffix(string(pos), "-left"):
		x = 1
	case strings.HasSuffix(string(pos), "-center"):
		x = (width - w) / 2
	default:
		x = width - w - 1
	}

	y := 1
	if !pos.IsTop() {
		y = height - h - 1
	}

	return max(x, 0), max(y, 0)
}

// isLoading reports whether t is waiting on tracked work: it cannot expire
// and cannot be dismissed by the user.
func isLoading(t toast.Toast) bool {
	return t.Persistent() && !t.Dismissible
}

func (v *ToastView) renderToast(t toast.Toast) string {
	accent := styles.ToastAccentStyle(t.Variant)

	var icon string
	switch {
	case isLoading(t) && v.loading != "":
		icon = v.loading
	case !t.ShowIcon:
	case t.Icon != "":
		icon = accent.Render(t.Icon)
	default:
		icon = accent.Render(styles.VariantIcon(t.Variant))
	}

	var lines []string
	switch {
	case t.Title != "":
		lines = append(lines, join(icon, accent.Render(t.Title)), styles.ToastMessageStyle.Render(t.Message))
	default:
		lines = append(lines, join(icon, styles.ToastMessageStyle.Render(t.Message)))
	}

	if t.ShowProgressBar && !t.Persistent() {
		lines = append(lines, progressBar(t.Progress, v.width-frame-2, accent))
	}

	return styles.ToastStyle(t.Variant).
		Width(v.width).
		Render(strings.Join(lines, "\n"))
}

func join(icon, text string) string {
	if icon == "" {
		return text
	}
	return icon + " " + text
}

// progressBar draws the remaining countdown as a bar of width cells.
func progressBar(pct float64, width int, fill lipgloss.Style) string {
	width = max(width, 1)
	pct = min(max(pct, 0), 100)

	filled := int(math.Round(pct / 100 * float64(width)))
	return fill.Render(strings.Repeat("━", filled)) +
		styles.DividerStyle.Render(strings.Repeat("─", width-filled))
}
