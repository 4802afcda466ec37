package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/inkcalc/internal/canvas"
	"github.com/example/inkcalc/internal/render"
)

func TestLayoutStacksFromAnchor(t *testing.T) {
	records := []Record{{"x", "5"}, {"2+2", "4"}, {"y", "x+1"}}
	labels := Layout(image.Pt(100, 50), records, 30)
	want := []Label{
		{Text: "x = 5", Center: image.Pt(100, 50)},
		{Text: "2+2 = 4", Center: image.Pt(100, 80)},
		{Text: "y = x+1", Center: image.Pt(100, 110)},
	}
	if len(labels) != len(want) {
		t.Fatalf("got %d labels", len(labels))
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("label %d = %+v, want %+v", i, labels[i], want[i])
		}
	}
	if got := Layout(image.Pt(0, 0), records[:2], 0); got[1].Center.Y != DefaultSpacing {
		t.Fatalf("default spacing not applied: %+v", got)
	}
}

func TestDrawCentresLabelOnPoint(t *testing.T) {
	r, err := NewRenderer(DefaultTextSize, color.RGBA{255, 255, 255, 255})
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	r.SetShadow(render.ShadowOptions{})
	dst := image.NewRGBA(image.Rect(0, 0, 400, 200))
	l := Label{Text: "x = 5", Center: image.Pt(200, 100)}
	r.Draw(dst, []Label{l})

	ink, ok := canvas.InkBounds(dst)
	if !ok {
		t.Fatal("nothing drawn")
	}
	box := r.Bounds(l)
	if !ink.In(box) {
		t.Fatalf("ink %v escapes label box %v", ink, box)
	}
	c := box.Min.Add(box.Max).Div(2)
	if d := c.Sub(l.Center); d.X < -1 || d.X > 1 || d.Y < -1 || d.Y > 1 {
		t.Fatalf("label box centre %v is not at %v", c, l.Center)
	}
}

func TestDrawClipsAtEdges(t *testing.T) {
	r, err := NewRenderer(16, color.RGBA{255, 0, 0, 255})
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	r.Draw(dst, []Label{{Text: "long label text", Center: image.Pt(0, 0)}, {Text: ""}})
	if _, ok := canvas.InkBounds(dst); !ok {
		t.Fatal("expected the visible part of the label to be drawn")
	}
}
