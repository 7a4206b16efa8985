package styles

import (
	"image/color"

	lipglossv1 "github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/huh"
	"github.com/lucasb-eyer/go-colorful"
)

// hex converts a palette color to the "#rrggbb" form huh's lipgloss expects.
func hex(c color.Color) lipglossv1.Color {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return lipglossv1.Color("")
	}
	return lipglossv1.Color(cc.Hex())
}

// FormTheme returns a huh theme derived from the active palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	var (
		primary   = hex(ColorPrimary)
		secondary = hex(ColorSecondary)
		fg        = hex(ColorForeground)
		muted     = hex(ColorMuted)
		errColor  = hex(ColorError)
	)

	t.Focused.Base = t.Focused.Base.BorderForeground(primary)
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errColor)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errColor)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(secondary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(secondary)
	t.Focused.Option = t.Focused.Option.Foreground(fg)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(secondary)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(secondary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipglossv1.HiddenBorder())
	t.Blurred.Title = t.Blurred.Title.Foreground(muted).Bold(false)

	return t
}
