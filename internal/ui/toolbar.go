package ui

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/inkcalc/internal/canvas"
	"github.com/example/inkcalc/internal/theme"
)

// DefaultToolbarHeight is the height reserved above the canvas.
const DefaultToolbarHeight = 80

const (
	buttonWidth  = 64
	buttonHeight = 32
	swatchSize   = 24
	gap          = 8
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// ActionButton triggers a toolbar action.
type ActionButton struct {
	label      string
	theme      *theme.Theme
	rect       image.Rectangle
	onActivate func()
}

func (b *ActionButton) Draw(dst *image.RGBA, state ButtonState) {
	bg := b.theme.ButtonBackground
	switch state {
	case StateHover:
		bg = b.theme.ButtonBackgroundHover
	case StatePressed:
		bg = b.theme.ButtonBackgroundPress
	}
	draw.Draw(dst, b.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawRect(dst, b.rect, b.theme.ButtonBorder)
	d := &font.Drawer{Face: basicfont.Face7x13}
	w := d.MeasureString(b.label).Ceil()
	d.Dst = dst
	d.Src = image.NewUniform(b.theme.ButtonText)
	d.Dot = fixed.P(b.rect.Min.X+(b.rect.Dx()-w)/2, b.rect.Min.Y+(b.rect.Dy()+10)/2)
	d.DrawString(b.label)
}

func (b *ActionButton) Rect() image.Rectangle { return b.rect }

func (b *ActionButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *ActionButton) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

// toolbarLayout holds the hit rectangles for one window width.
type toolbarLayout struct {
	buttons  []image.Rectangle
	swatches []image.Rectangle
}

// layoutToolbar places buttons left to right, vertically centred, followed
// by the palette in two rows when the toolbar is tall enough.
func layoutToolbar(height, buttons, swatches int) toolbarLayout {
	var l toolbarLayout
	x := gap
	y := (height - buttonHeight) / 2
	for i := 0; i < buttons; i++ {
		l.buttons = append(l.buttons, image.Rect(x, y, x+buttonWidth, y+buttonHeight))
		x += buttonWidth + gap
	}
	if swatches == 0 {
		return l
	}
	x += gap
	rows := 1
	if height >= 2*swatchSize+3*gap {
		rows = 2
	}
	cols := (swatches + rows - 1) / rows
	top := (height - (rows*swatchSize + (rows-1)*(gap/2))) / 2
	for i := 0; i < swatches; i++ {
		c, r := i%cols, i/cols
		sx := x + c*(swatchSize+gap/2)
		sy := top + r*(swatchSize+gap/2)
		l.swatches = append(l.swatches, image.Rect(sx, sy, sx+swatchSize, sy+swatchSize))
	}
	return l
}

// hitTest returns the index of the rectangle containing p, or -1.
func hitTest(p image.Point, rects []image.Rectangle) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}

// paletteIndex returns the palette entry matching c, or -1.
func paletteIndex(palette []canvas.PaletteColor, c color.RGBA) int {
	for i, p := range palette {
		if p.Color == c {
			return i
		}
	}
	return -1
}

func drawToolbar(dst *image.RGBA, st paintState) {
	th := st.theme
	bar := image.Rect(0, 0, dst.Bounds().Dx(), st.toolbarHeight)
	draw.Draw(dst, bar, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)

	for i, cb := range st.buttons {
		if i >= len(st.layout.buttons) {
			break
		}
		cb.SetRect(st.layout.buttons[i])
		state := StateDefault
		if i == st.hoverButton {
			state = StateHover
		}
		cb.Draw(dst, state)
	}

	for i, p := range st.palette {
		if i >= len(st.layout.swatches) {
			break
		}
		r := st.layout.swatches[i]
		draw.Draw(dst, r, &image.Uniform{p.Color}, image.Point{}, draw.Src)
		switch {
		case i == st.colorIdx:
			drawRect(dst, r.Inset(-2), th.SwatchSelected)
			drawRect(dst, r.Inset(-3), th.SwatchSelected)
		case i == st.hoverSwatch:
			draw.Draw(dst, r, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
			drawRect(dst, r, th.SwatchBorder)
		default:
			drawRect(dst, r, th.SwatchBorder)
		}
	}
}

// drawRect outlines rect with a one pixel border.
func drawRect(dst *image.RGBA, rect image.Rectangle, col color.RGBA) {
	u := &image.Uniform{col}
	draw.Draw(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
}
