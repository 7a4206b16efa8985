package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Toast variant icons. Plain unicode so they render without a nerd font.
var (
	IconToastDefault = "•"
	IconToastSuccess = "✓"
	IconToastWarning = "!"
	IconToastError   = "✗"
	IconToastInfo    = "i"
)

// IconDot separates segments in the help line.
var IconDot = "•"
