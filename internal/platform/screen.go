package platform

import "image"

// WindowSize picks an initial window size: the requested size when both
// sides are positive, otherwise a fraction of the screen, otherwise
// fallback.
func WindowSize(requested, fallback image.Point) image.Point {
	if requested.X > 0 && requested.Y > 0 {
		return requested
	}
	screen, err := ScreenSize()
	if err != nil || screen.X <= 0 || screen.Y <= 0 {
		return fillMissing(requested, fallback)
	}
	return fillMissing(requested, image.Pt(screen.X*3/4, screen.Y*3/4))
}

func fillMissing(requested, def image.Point) image.Point {
	if requested.X <= 0 {
		requested.X = def.X
	}
	if requested.Y <= 0 {
		requested.Y = def.Y
	}
	return requested
}
