// Package style provides a functional API for composing lipgloss styles in CLI output.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/myselfbbs/vodplay/color"
	"github.com/myselfbbs/vodplay/key"
	"github.com/spf13/viper"
)

// New returns an empty lipgloss.Style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored initializes a new style with the specified foreground and background colors.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a rendering function that applies a foreground color.
// Output stays plain when cli.colored is off.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string {
		if !viper.GetBool(key.CliColored) {
			return s
		}
		return Colored(c, "").Render(s)
	}
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// Tag renders a string as a colored, padded block.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(fg, bg).Padding(0, 1).Render(s) }
}

// Title renders a section banner.
var Title = func(s string) string {
	return Tag(color.New("230"), color.New("62"))(s)
}
