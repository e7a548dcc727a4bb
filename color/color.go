// Package color provides the ANSI palette used by CLI output.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
)

var (
	HiRed    = New("9")
	HiBlue   = New("12")
	HiPurple = New("13")
)

// ForShape picks the color used when printing an episode reference shape.
func ForShape(name string) lipgloss.Color {
	switch name {
	case "play_path":
		return Green
	case "encoded_id":
		return Blue
	case "legacy_pair":
		return Cyan
	default:
		return Red
	}
}
