// Package toast implements the transient notification lifecycle: identity,
// the ordered store with capacity eviction, tick-driven expiration and the
// per-anchor projection consumed by renderers.
package toast

import (
	"strings"
	"time"
)

// Variant is the semantic severity of a toast. It has no behavioral effect on
// the store and is carried through for renderers.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantWarning Variant = "warning"
	VariantError   Variant = "error"
	VariantInfo    Variant = "info"
)

// Variants returns all supported variants.
func Variants() []Variant {
	return []Variant{VariantDefault, VariantSuccess, VariantWarning, VariantError, VariantInfo}
}

// IsValid reports whether v is one of the supported variants.
func (v Variant) IsValid() bool {
	switch v {
	case VariantDefault, VariantSuccess, VariantWarning, VariantError, VariantInfo:
		return true
	default:
		return false
	}
}

// ParseVariant converts a string to a Variant. "danger" is accepted as an
// alias for error.
func ParseVariant(s string) (Variant, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "danger" {
		return VariantError, true
	}
	v := Variant(s)
	return v, v.IsValid()
}

// Position is the screen anchor a toast is grouped under.
type Position string

const (
	TopLeft      Position = "top-left"
	TopCenter    Position = "top-center"
	TopRight     Position = "top-right"
	BottomLeft   Position = "bottom-left"
	BottomCenter Position = "bottom-center"
	BottomRight  Position = "bottom-right"
)

// Positions returns all six anchors in render order.
func Positions() []Position {
	return []Position{TopRight, TopLeft, TopCenter, BottomRight, BottomLeft, BottomCenter}
}

// IsValid reports whether p is one of the six anchors.
func (p Position) IsValid() bool {
	switch p {
	case TopLeft, TopCenter, TopRight, BottomLeft, BottomCenter, BottomRight:
		return true
	default:
		return false
	}
}

// IsTop reports whether the anchor is on the top edge.
func (p Position) IsTop() bool {
	return strings.HasPrefix(string(p), "top-")
}

// ParsePosition converts a string to a Position.
func ParsePosition(s string) (Position, bool) {
	p := Position(strings.ToLower(strings.TrimSpace(s)))
	return p, p.IsValid()
}

// Toast is a single notification record.
type Toast struct {
	ID              string
	Variant         Variant
	Title           string
	Message         string
	Duration        time.Duration // 0 disables auto-dismiss
	Dismissible     bool
	Position        Position
	ShowProgressBar bool
	ShowIcon        bool
	Icon            string
	CreatedAt       time.Time

	// Progress is the remaining countdown in percent (100 to 0). Toasts
	// without a countdown always report 100.
	Progress float64
}

// Persistent reports whether the toast stays until it is removed explicitly.
func (t Toast) Persistent() bool {
	return t.Duration <= 0
}

// Options holds the caller-supplied overrides for a new toast.
type Options struct {
	Variant         Variant
	Title           string
	Duration        time.Duration
	Dismissible     bool
	Position        Position
	ShowProgressBar bool
	ShowIcon        bool
	Icon            string
}

// Option mutates Options. Options are applied in order, so later options win.
type Option func(*Options)

// WithVariant sets the toast variant.
func WithVariant(v Variant) Option {
	return func(o *Options) { o.Variant = v }
}

// WithTitle sets the optional title.
func WithTitle(title string) Option {
	return func(o *Options) { o.Title = title }
}

// WithDuration sets the auto-dismiss duration. Zero keeps the toast until it
// is removed.
func WithDuration(d time.Duration) Option {
	return func(o *Options) { o.Duration = d }
}

// WithDismissible controls whether the user may dismiss the toast.
func WithDismissible(v bool) Option {
	return func(o *Options) { o.Dismissible = v }
}

// WithPosition sets the anchor.
func WithPosition(p Position) Option {
	return func(o *Options) { o.Position = p }
}

// WithProgressBar controls the countdown bar hint.
func WithProgressBar(v bool) Option {
	return func(o *Options) { o.ShowProgressBar = v }
}

// WithIcon controls the icon hint. An empty icon keeps the renderer default.
func WithIcon(show bool, icon string) Option {
	return func(o *Options) {
		o.ShowIcon = show
		o.Icon = icon
	}
}

func defaultOptions(pos Position, d time.Duration) Options {
	return Options{
		Variant:         VariantDefault,
		Duration:        d,
		Dismissible:     true,
		Position:        pos,
		ShowProgressBar: true,
		ShowIcon:        true,
	}
}

// resolve applies opts over the defaults and normalises anything out of
// range back to the defaults.
func resolve(pos Position, d time.Duration, opts []Option) Options {
	o := defaultOptions(pos, d)
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if !o.Variant.IsValid() {
		o.Variant = VariantDefault
	}
	if !o.Position.IsValid() {
		o.Position = pos
	}
	if o.Duration < 0 {
		o.Duration = d
	}
	return o
}
