package canvas

import "image"

// InkBounds returns the smallest rectangle containing every pixel whose
// alpha is non-zero. ok is false when the image holds no ink.
func InkBounds(img *image.RGBA) (bounds image.Rectangle, ok bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			if row[x*4+3] == 0 {
				continue
			}
			px := b.Min.X + x
			if px < minX {
				minX = px
			}
			if px > maxX {
				maxX = px
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// Anchor returns the centre of the ink bounding box. With no ink the box
// degenerates to the canvas extremes and the result is the canvas centre.
func Anchor(img *image.RGBA) image.Point {
	b := img.Bounds()
	r, ok := InkBounds(img)
	if !ok {
		return image.Pt((b.Max.X+b.Min.X)/2, (b.Max.Y+b.Min.Y)/2)
	}
	return image.Pt((r.Min.X+r.Max.X-1)/2, (r.Min.Y+r.Max.Y-1)/2)
}
