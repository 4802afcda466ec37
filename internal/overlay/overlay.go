// Package overlay positions result labels around the ink anchor and draws
// them onto a frame.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/inkcalc/internal/render"
)

// DefaultSpacing is the vertical distance between consecutive labels.
const DefaultSpacing = 40

// DefaultTextSize is the label point size.
const DefaultTextSize = 24

// Record is one expression and its answer as returned by the backend.
type Record struct {
	Expression string
	Answer     string
}

// Text is the label shown for the record.
func (r Record) Text() string { return r.Expression + " = " + r.Answer }

// Label is a record placed on the canvas; Center is where the middle of the
// rendered text goes.
type Label struct {
	Text   string
	Center image.Point
}

// Layout stacks the records downwards from anchor, spacing pixels apart.
func Layout(anchor image.Point, records []Record, spacing int) []Label {
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	out := make([]Label, len(records))
	for i, r := range records {
		out[i] = Label{Text: r.Text(), Center: anchor.Add(image.Pt(0, i*spacing))}
	}
	return out
}

var (
	fontOnce sync.Once
	fontErr  error
	goFont   *opentype.Font
	faces    sync.Map // map[float64]font.Face
)

func faceForSize(size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultTextSize
	}
	fontOnce.Do(func() {
		goFont, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("parse font: %w", fontErr)
	}
	if face, ok := faces.Load(size); ok {
		return face.(font.Face), nil
	}
	face, err := opentype.NewFace(goFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	actual, _ := faces.LoadOrStore(size, face)
	return actual.(font.Face), nil
}

// Renderer draws labels with a fixed face, colour and shadow.
type Renderer struct {
	face   font.Face
	color  color.RGBA
	shadow render.ShadowOptions
}

// NewRenderer prepares a renderer for text of the given point size.
func NewRenderer(size float64, col color.RGBA) (*Renderer, error) {
	face, err := faceForSize(size)
	if err != nil {
		return nil, err
	}
	return &Renderer{face: face, color: col, shadow: render.LabelShadow()}, nil
}

// SetShadow replaces the drop shadow; zero opacity disables it.
func (r *Renderer) SetShadow(opts render.ShadowOptions) { r.shadow = opts }

// Measure returns the text box size and the distance from its top to the
// baseline.
func (r *Renderer) Measure(text string) (width, height, baseline int) {
	d := &font.Drawer{Face: r.face}
	m := r.face.Metrics()
	return d.MeasureString(text).Ceil(), m.Ascent.Ceil() + m.Descent.Ceil(), m.Ascent.Ceil()
}

// Bounds returns where the label will be drawn, ignoring the shadow.
func (r *Renderer) Bounds(l Label) image.Rectangle {
	w, h, _ := r.Measure(l.Text)
	topLeft := l.Center.Sub(image.Pt(int(math.Round(float64(w)/2)), int(math.Round(float64(h)/2))))
	return image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(w, h))}
}

// Draw renders every label centred on its point. Labels that fall partly
// outside dst are clipped.
func (r *Renderer) Draw(dst *image.RGBA, labels []Label) {
	for _, l := range labels {
		if l.Text == "" {
			continue
		}
		box := r.Bounds(l)
		_, _, baseline := r.Measure(l.Text)
		text := image.NewRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
		d := &font.Drawer{Dst: text, Src: image.NewUniform(r.color), Face: r.face, Dot: fixed.P(0, baseline)}
		d.DrawString(l.Text)

		res := render.ApplyShadow(text, r.shadow)
		origin := box.Min.Sub(res.Offset)
		draw.Draw(dst, res.Image.Bounds().Add(origin), res.Image, image.Point{}, draw.Over)
	}
}
