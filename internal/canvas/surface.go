// Package canvas holds the drawable raster, its PNG snapshots and the
// pixel-level helpers used by the session: stroke rendering and ink
// bounding-box detection.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// ErrSize is returned when an image does not match the surface dimensions.
var ErrSize = errors.New("image size does not match surface")

// Surface is the drawing raster. Ink is kept on its own transparent layer so
// that alpha identifies drawn pixels; the background colour is only applied
// when the surface is flattened for display or transmission.
type Surface struct {
	ink        *image.RGBA
	background color.RGBA
}

// NewSurface allocates a blank surface. Dimensions below one pixel are
// clamped to one.
func NewSurface(width, height int, background color.RGBA) *Surface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Surface{
		ink:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: background,
	}
}

// Bounds returns the surface rectangle. It never changes after creation.
func (s *Surface) Bounds() image.Rectangle { return s.ink.Bounds() }

// Ink returns the live ink layer. Callers that keep the image must copy it.
func (s *Surface) Ink() *image.RGBA { return s.ink }

// Background returns the colour used when flattening.
func (s *Surface) Background() color.RGBA { return s.background }

// Clear erases all ink.
func (s *Surface) Clear() {
	clear(s.ink.Pix)
}

// Snapshot encodes the ink layer.
func (s *Surface) Snapshot() (Snapshot, error) {
	return EncodeSnapshot(s.ink)
}

// Restore replaces the ink layer with img, which must have the same size.
func (s *Surface) Restore(img image.Image) error {
	b := img.Bounds()
	if b.Dx() != s.ink.Bounds().Dx() || b.Dy() != s.ink.Bounds().Dy() {
		return fmt.Errorf("restore %dx%d onto %dx%d: %w", b.Dx(), b.Dy(), s.ink.Bounds().Dx(), s.ink.Bounds().Dy(), ErrSize)
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == s.ink.Stride && len(rgba.Pix) == len(s.ink.Pix) {
		copy(s.ink.Pix, rgba.Pix)
		return nil
	}
	draw.Draw(s.ink, s.ink.Bounds(), img, b.Min, draw.Src)
	return nil
}

// Flatten composites the ink over the background into a new image.
func (s *Surface) Flatten() *image.RGBA {
	out := image.NewRGBA(s.ink.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), s.ink, image.Point{}, draw.Over)
	return out
}
