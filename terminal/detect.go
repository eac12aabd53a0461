package terminal

import "os"

// ColorTermEnv names the environment variable carrying the color capability hint
const ColorTermEnv = "COLORTERM"

// ColorModeFromHint maps a COLORTERM value to a color mode
// Only the exact values "truecolor" and "24bit" enable 24-bit color
func ColorModeFromHint(hint string) ColorMode {
	switch hint {
	case "truecolor", "24bit":
		return ColorModeTrueColor
	default:
		return ColorMode256
	}
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	return ColorModeFromHint(os.Getenv(ColorTermEnv))
}
