package render

import (
	"image"
	"image/color"
	"testing"
)

func TestApplyShadowExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.Set(5, 5, color.RGBA{R: 255, A: 255})

	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	out := ApplyShadow(img, opts)
	if out.Image == nil {
		t.Fatal("expected output image")
	}
	if want := image.Rect(0, 0, 22, 20); !out.Image.Bounds().Eq(want) {
		t.Fatalf("bounds %v, want %v", out.Image.Bounds(), want)
	}
	if out.Offset != (image.Point{}) {
		t.Fatalf("offset %v, want zero", out.Offset)
	}
	p := image.Pt(5, 5).Add(opts.Offset)
	if out.Image.RGBAAt(p.X, p.Y).A == 0 {
		t.Fatalf("expected shadow alpha at %v", p)
	}
}

func TestApplyShadowNegativeOffsetShiftsSource(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	out := ApplyShadow(img, ShadowOptions{Radius: 1, Offset: image.Pt(-3, -2), Opacity: 1})
	if want := image.Pt(4, 3); out.Offset != want {
		t.Fatalf("offset %v, want %v", out.Offset, want)
	}
	if got := out.Image.RGBAAt(4, 3); got != (color.RGBA{G: 255, A: 255}) {
		t.Fatalf("source pixel moved: %+v", got)
	}
}

func TestApplyShadowZeroOpacityReturnsInput(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	out := ApplyShadow(img, ShadowOptions{Radius: 12, Offset: image.Pt(20, 10)})
	if out.Image != img {
		t.Fatal("expected the input image back")
	}
}

func TestBoxBlurSpreadsAlpha(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 5, 1))
	g.Pix[2] = 255
	out := boxBlur(g, 1, true)
	if out.Pix[1] == 0 || out.Pix[3] == 0 || out.Pix[0] != 0 {
		t.Fatalf("unexpected blur %v", out.Pix)
	}
}

func TestApplyShadowTint(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.Set(1, 1, color.RGBA{A: 255})
	out := ApplyShadow(img, ShadowOptions{Offset: image.Pt(4, 0), Opacity: 1, Color: color.RGBA{R: 200, A: 255}})
	got := out.Image.RGBAAt(5, 1)
	if got.R != 200 || got.G != 0 || got.A != 255 {
		t.Fatalf("shadow pixel %+v, want red", got)
	}
}
