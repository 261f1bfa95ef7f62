package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CollageTheme provides a custom theme for the application.
type CollageTheme struct{}

var _ fyne.Theme = (*CollageTheme)(nil)

func (t *CollageTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0xC0, G: 0x6E, B: 0x3C, A: 0xFF} // Warm oak
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0x3A, G: 0x7B, B: 0xD5, A: 0x80} // Selection blue
	case theme.ColorNameBackground:
		if variant == theme.VariantLight {
			return color.NRGBA{R: 0xFA, G: 0xF7, B: 0xF2, A: 0xFF} // Paper
		}
		return theme.DefaultTheme().Color(name, variant)
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *CollageTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *CollageTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *CollageTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 16 // Wider scrollbar for easier grabbing
	default:
		return theme.DefaultTheme().Size(name)
	}
}
