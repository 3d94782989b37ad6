package core

// Color is an opaque tag attached to a piece kind and to filled board cells.
// ColorNone is the zero value and marks an empty cell.
type Color uint8

const (
	ColorNone Color = iota
	ColorCyan
	ColorBlue
	ColorOrange
	ColorYellow
	ColorGreen
	ColorPurple
	ColorRed
	ColorCount // Sentinel value for iteration
)

// String returns the hex token for the color.
func (c Color) String() string {
	switch c {
	case ColorCyan:
		return "#00FFFF"
	case ColorBlue:
		return "#0000FF"
	case ColorOrange:
		return "#FF8000"
	case ColorYellow:
		return "#FFFF00"
	case ColorGreen:
		return "#00FF00"
	case ColorPurple:
		return "#800080"
	case ColorRed:
		return "#FF0000"
	default:
		return ""
	}
}

// Char returns a single character representation of the color for ASCII rendering.
func (c Color) Char() rune {
	switch c {
	case ColorCyan:
		return 'I'
	case ColorBlue:
		return 'J'
	case ColorOrange:
		return 'L'
	case ColorYellow:
		return 'O'
	case ColorGreen:
		return 'S'
	case ColorPurple:
		return 'T'
	case ColorRed:
		return 'Z'
	default:
		return '.'
	}
}
