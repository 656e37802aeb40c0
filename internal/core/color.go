package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorPurple
	ColorDarkGray
)

// Colors of the brickshot field.
const (
	ColorBall     = ColorBrightWhite
	ColorOrigin   = ColorBrightYellow
	ColorAim      = ColorDarkGray
	ColorLossLine = ColorRed
	ColorAddBall  = ColorBrightGreen
	ColorHUD      = ColorBrightWhite
	ColorHint     = ColorGray
	ColorTitle    = ColorBrightCyan
)

// HealthTier colors every brick whose health is at most Max.
type HealthTier struct {
	Max   uint
	Color Color
}

// BrickTiers lists brick colors from the weakest tier up.
var BrickTiers = []HealthTier{
	{Max: 2, Color: ColorCyan},
	{Max: 5, Color: ColorGreen},
	{Max: 10, Color: ColorYellow},
	{Max: 20, Color: ColorOrange},
	{Max: 50, Color: ColorRed},
}

// BrickColor returns the color of a standard brick with health h.
// Health past the last tier is drawn in purple.
func BrickColor(h uint) Color {
	for _, t := range BrickTiers {
		if h <= t.Max {
			return t.Color
		}
	}
	return ColorPurple
}
