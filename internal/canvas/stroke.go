package canvas

import (
	"image"
	"image/color"
)

// DefaultWidth is the line width of a fresh pen.
const DefaultWidth = 3

// Pen describes how segments are stroked.
type Pen struct {
	Color color.RGBA
	Width int
}

// DefaultPen returns a white pen of DefaultWidth.
func DefaultPen() Pen {
	return Pen{Color: color.RGBA{255, 255, 255, 255}, Width: DefaultWidth}
}

// Stroke is the transient state of one pointer-down to pointer-up gesture.
type Stroke struct {
	pen  Pen
	last image.Point
}

// BeginStroke starts a path at p. Nothing is drawn until the first Extend.
func BeginStroke(p image.Point, pen Pen) *Stroke {
	if pen.Width < 1 {
		pen.Width = 1
	}
	return &Stroke{pen: pen, last: p}
}

// Pen returns the pen captured when the stroke began.
func (st *Stroke) Pen() Pen { return st.pen }

// Last returns the current end of the path.
func (st *Stroke) Last() image.Point { return st.last }

// Extend strokes a straight segment from the end of the path to p with round
// caps and returns the rectangle that was touched, clipped to img.
func (st *Stroke) Extend(img *image.RGBA, p image.Point) image.Rectangle {
	from := st.last
	st.last = p
	DrawSegment(img, from, p, st.pen)
	r := (st.pen.Width + 1) / 2
	return image.Rect(min(from.X, p.X), min(from.Y, p.Y), max(from.X, p.X)+1, max(from.Y, p.Y)+1).
		Inset(-r).Intersect(img.Bounds())
}

// DrawSegment stamps a round brush along the Bresenham line between a and b.
func DrawSegment(img *image.RGBA, a, b image.Point, pen Pen) {
	x0, y0, x1, y1 := a.X, a.Y, b.X, b.Y
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		stampDisc(img, x0, y0, pen.Width, pen.Color)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// stampDisc fills the pixels whose centres lie within width/2 of (cx, cy).
func stampDisc(img *image.RGBA, cx, cy, width int, col color.RGBA) {
	r := width / 2
	limit := width * width
	b := img.Bounds()
	for oy := -r; oy <= r; oy++ {
		y := cy + oy
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for ox := -r; ox <= r; ox++ {
			x := cx + ox
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			if 4*(ox*ox+oy*oy) > limit {
				continue
			}
			img.SetRGBA(x, y, col)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
