// Package icon renders status symbols in the variant chosen by the icons.variant setting.
package icon

import (
	"github.com/myselfbbs/vodplay/key"
	"github.com/spf13/viper"
)

const (
	emoji = "emoji"
	plain = "plain"
)

// AvailableVariants returns all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, plain}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	Info
	Progress
	Fallback
)

type iconDef struct {
	emoji string
	plain string
}

// Get retrieves the representation for the configured variant.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case plain:
		return d.plain
	default:
		return ""
	}
}

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", plain: "✓"},
	Fail:     {emoji: "❌", plain: "✗"},
	Warn:     {emoji: "⚠️", plain: "!"},
	Info:     {emoji: "ℹ️", plain: "i"},
	Progress: {emoji: "⏳", plain: "…"},
	Fallback: {emoji: "🩹", plain: "~"},
}

// Get returns the rendered string for an Icon.
func Get(i Icon) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.Get()
}
