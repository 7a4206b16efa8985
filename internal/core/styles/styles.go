// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/toasty/internal/core/toast"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
	ColorInfo       color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style
	ErrorTextStyle     lipgloss.Style
	WarningTextStyle   lipgloss.Style
	SuccessTextStyle   lipgloss.Style
	MutedTextStyle     lipgloss.Style

	// TUI shared styles.
	TitleStyle     lipgloss.Style
	HelpStyle      lipgloss.Style
	HelpKeyStyle   lipgloss.Style
	StatusBarStyle lipgloss.Style

	// Toast styles. ToastBaseStyle is the frame shared by every variant.
	ToastBaseStyle    lipgloss.Style
	ToastTitleStyle   lipgloss.Style
	ToastMessageStyle lipgloss.Style
	ToastLoadingStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error
	ColorInfo = p.Info

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	ErrorTextStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	WarningTextStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)
	SuccessTextStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	MutedTextStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)

	ToastBaseStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Foreground(ColorForeground)
	ToastTitleStyle = lipgloss.NewStyle().
		Bold(true)
	ToastMessageStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	ToastLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorInfo)
}

// VariantColor returns the accent color for a toast variant.
func VariantColor(v toast.Variant) color.Color {
	switch v {
	case toast.VariantSuccess:
		return ColorSuccess
	case toast.VariantWarning:
		return ColorWarning
	case toast.VariantError:
		return ColorError
	case toast.VariantInfo:
		return ColorInfo
	default:
		return ColorMuted
	}
}

// VariantIcon returns the built-in icon for a toast variant.
func VariantIcon(v toast.Variant) string {
	switch v {
	case toast.VariantSuccess:
		return IconToastSuccess
	case toast.VariantWarning:
		return IconToastWarning
	case toast.VariantError:
		return IconToastError
	case toast.VariantInfo:
		return IconToastInfo
	default:
		return IconToastDefault
	}
}

// ToastStyle returns the frame style for a toast variant.
func ToastStyle(v toast.Variant) lipgloss.Style {
	return ToastBaseStyle.BorderForeground(VariantColor(v))
}

// ToastAccentStyle colors the icon and title of a toast.
func ToastAccentStyle(v toast.Variant) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(VariantColor(v)).Bold(true)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
