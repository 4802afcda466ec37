//go:build !linux

package platform

import (
	"errors"
	"image"
)

// ErrNoDisplay is returned when the screen size cannot be queried.
var ErrNoDisplay = errors.New("no display available")

// ScreenSize is not implemented outside linux.
func ScreenSize() (image.Point, error) {
	return image.Point{}, ErrNoDisplay
}
