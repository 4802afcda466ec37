package ui

import (
	"context"
	"image"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/inkcalc/internal/canvas"
	"github.com/example/inkcalc/internal/overlay"
	"github.com/example/inkcalc/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// toastDuration is how long a message stays on screen.
const toastDuration = 3 * time.Second

type paintState struct {
	width, height int
	toolbarHeight int
	theme         *theme.Theme

	canvas *image.RGBA
	labels []overlay.Label
	labelR *overlay.Renderer

	layout      toolbarLayout
	buttons     []*CacheButton
	hoverButton int
	palette     []canvas.PaletteColor
	colorIdx    int
	hoverSwatch int

	message      string
	messageErr   bool
	messageUntil time.Time
	toastR       *overlay.Renderer
}

// composeFrame renders the whole window into dst. It reports false when ctx
// was cancelled part way.
func composeFrame(ctx context.Context, dst *image.RGBA, st paintState) bool {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{st.theme.Background}, image.Point{}, draw.Src)
	origin := image.Pt(0, st.toolbarHeight)

	var area *image.RGBA
	if st.canvas != nil {
		area = image.NewRGBA(st.canvas.Bounds())
		draw.Draw(area, area.Bounds(), st.canvas, image.Point{}, draw.Src)
		if st.labelR != nil {
			st.labelR.Draw(area, st.labels)
		}
		draw.Draw(dst, area.Bounds().Add(origin), area, image.Point{}, draw.Src)
	}
	if ctx.Err() != nil {
		return false
	}

	drawToolbar(dst, st)
	if ctx.Err() != nil {
		return false
	}

	if st.message != "" && time.Now().Before(st.messageUntil) && st.toastR != nil {
		drawToast(dst, st)
	}
	return ctx.Err() == nil
}

// drawToast shows the message centred near the bottom of the canvas.
func drawToast(dst *image.RGBA, st paintState) {
	b := dst.Bounds()
	_, h, _ := st.toastR.Measure(st.message)
	label := overlay.Label{Text: st.message, Center: image.Pt(b.Dx()/2, b.Max.Y-h-24)}
	box := st.toastR.Bounds(label).Inset(-10)
	bg := st.theme.ToastBackground
	if st.messageErr {
		bg = st.theme.ToastError
	}
	draw.Draw(dst, box, &image.Uniform{bg}, image.Point{}, draw.Over)
	drawRect(dst, box, st.theme.ButtonBorder)
	st.toastR.Draw(dst, []overlay.Label{label})
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if !composeFrame(ctx, b.RGBA(), st) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
