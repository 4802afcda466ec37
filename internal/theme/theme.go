// Package theme holds the colours used to draw the window chrome, the
// canvas background and result labels.
package theme

import (
	"image/color"
)

// Theme defines the colour palette for the application UI.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // behind the toolbar and canvas
	Foreground color.RGBA

	// Canvas
	Canvas      color.RGBA // colour the ink is flattened onto
	Label       color.RGBA // result text
	LabelShadow color.RGBA

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA
	SwatchBorder          color.RGBA
	SwatchSelected        color.RGBA

	// Toasts
	ToastBackground color.RGBA
	ToastText       color.RGBA
	ToastError      color.RGBA
}

// Default returns the built-in dark theme.
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{24, 24, 27, 255},
		Foreground:            color.RGBA{244, 244, 245, 255},
		Canvas:                color.RGBA{0, 0, 0, 255},
		Label:                 color.RGBA{255, 255, 255, 255},
		LabelShadow:           color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{24, 24, 27, 255},
		ButtonBackground:      color.RGBA{39, 39, 42, 255},
		ButtonBackgroundHover: color.RGBA{63, 63, 70, 255},
		ButtonBackgroundPress: color.RGBA{82, 82, 91, 255},
		ButtonText:            color.RGBA{244, 244, 245, 255},
		ButtonBorder:          color.RGBA{113, 113, 122, 255},
		SwatchBorder:          color.RGBA{63, 63, 70, 255},
		SwatchSelected:        color.RGBA{250, 250, 250, 255},
		ToastBackground:       color.RGBA{39, 39, 42, 230},
		ToastText:             color.RGBA{244, 244, 245, 255},
		ToastError:            color.RGBA{153, 27, 27, 230},
	}
}
