// Package ui draws the side panel of the graphical driver: run statistics,
// raygui controls and the field texture.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFill       rl.Color

	// Stain state colours for the census bar
	StateActive    rl.Color
	StateExhausted rl.Color
	StateDormant   rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 28, G: 24, B: 22, A: 245},
		PanelBorder:    rl.Color{R: 80, G: 66, B: 58, A: 255},
		SectionHeader:  rl.Color{R: 230, G: 150, B: 90, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 50, G: 46, B: 44, A: 255},
		BarFill:        rl.Color{R: 183, G: 65, B: 14, A: 255},
		StateActive:    rl.Color{R: 230, G: 120, B: 40, A: 255},
		StateExhausted: rl.Color{R: 150, G: 110, B: 90, A: 255},
		StateDormant:   rl.Color{R: 90, G: 80, B: 76, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     80,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
