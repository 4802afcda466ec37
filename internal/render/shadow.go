// Package render holds image effects applied to overlay labels.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures a blurred drop shadow.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
	// Color tints the shadow; the zero value is black.
	Color color.RGBA
}

// ShadowResult is the composited image and where the source's top-left
// corner ended up inside it.
type ShadowResult struct {
	Image  *image.RGBA
	Offset image.Point
}

// LabelShadow is a tight shadow that keeps result text readable over ink.
func LabelShadow() ShadowOptions {
	return ShadowOptions{Radius: 2, Offset: image.Pt(1, 2), Opacity: 0.8}
}

// ApplyShadow draws img over a blurred copy of its alpha channel. The output
// has a zero origin and grows to fit the blur and offset.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	if img.Bounds().Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: img}
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	src := img.Bounds()
	padded := src.Inset(-radius)
	shadow := padded.Add(opts.Offset)
	all := src.Union(shadow)

	mask := image.NewGray(padded.Sub(padded.Min))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-padded.Min.X, y-padded.Min.Y, color.Gray{Y: a})
			}
		}
	}
	blurred := boxBlur(boxBlur(mask, radius, true), radius, false)

	dst := image.NewRGBA(all.Sub(all.Min))
	tint := image.NewUniform(color.NRGBA{R: opts.Color.R, G: opts.Color.G, B: opts.Color.B, A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, blurred.Bounds().Add(shadow.Min.Sub(all.Min)), tint, image.Point{}, blurred, image.Point{}, draw.Over)
	draw.Draw(dst, src.Sub(all.Min), img, src.Min, draw.Over)
	return ShadowResult{Image: dst, Offset: src.Min.Sub(all.Min)}
}

// boxBlur averages each pixel with its neighbours within radius along one
// axis, using a running prefix sum per line.
func boxBlur(src *image.Gray, radius int, horizontal bool) *image.Gray {
	out := image.NewGray(src.Bounds())
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	lines, length := h, w
	at := func(line, i int) int { return line*src.Stride + i }
	if !horizontal {
		lines, length = w, h
		at = func(line, i int) int { return i*src.Stride + line }
	}
	prefix := make([]int, length+1)
	for line := 0; line < lines; line++ {
		for i := 0; i < length; i++ {
			prefix[i+1] = prefix[i] + int(src.Pix[at(line, i)])
		}
		for i := 0; i < length; i++ {
			lo := max(i-radius, 0)
			hi := min(i+radius, length-1)
			out.Pix[at(line, i)] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
		}
	}
	return out
}
