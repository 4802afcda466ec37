// Package ui is the native window: a toolbar with the actions and palette
// above the drawing canvas, result labels and toasts.
package ui

import (
	"context"
	"image"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/inkcalc/internal/calc"
	"github.com/example/inkcalc/internal/canvas"
	"github.com/example/inkcalc/internal/clipboard"
	"github.com/example/inkcalc/internal/input"
	"github.com/example/inkcalc/internal/notify"
	"github.com/example/inkcalc/internal/overlay"
	"github.com/example/inkcalc/internal/render"
	"github.com/example/inkcalc/internal/session"
	"github.com/example/inkcalc/internal/theme"
)

// App runs the drawing window for one session.
type App struct {
	session  *session.Session
	notifier *notify.Notifier
	theme    *theme.Theme
	title    string

	toolbarHeight int
	touchOffset   int
	textSize      float64
	runTimeout    time.Duration

	updateCh  chan struct{}
	onClose   func()
	closeOnce sync.Once
	closed    atomic.Bool
}

// Option modifies an App during creation.
type Option func(*App)

// WithTheme sets the colours.
func WithTheme(t *theme.Theme) Option { return func(a *App) { a.theme = t } }

// WithNotifier routes toasts through n and lets the window display them.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.notifier = n } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *App) { a.title = title } }

// WithToolbarHeight sets the height reserved above the canvas.
func WithToolbarHeight(h int) Option { return func(a *App) { a.toolbarHeight = h } }

// WithTouchOffset sets the vertical touch correction.
func WithTouchOffset(px int) Option { return func(a *App) { a.touchOffset = px } }

// WithTextSize sets the result label size in points.
func WithTextSize(pt float64) Option {
	return func(a *App) {
		if pt > 0 {
			a.textSize = pt
		}
	}
}

// WithRunTimeout bounds each backend round-trip.
func WithRunTimeout(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.runTimeout = d
		}
	}
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App drawing s.
func New(s *session.Session, opts ...Option) *App {
	a := &App{
		session:       s,
		theme:         theme.Default(),
		title:         "inkcalc",
		toolbarHeight: DefaultToolbarHeight,
		touchOffset:   input.DefaultTouchOffset,
		textSize:      overlay.DefaultTextSize,
		runTimeout:    calc.DefaultTimeout,
		updateCh:      make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.toolbarHeight < buttonHeight {
		a.toolbarHeight = buttonHeight
	}
	s.SetOnChange(a.NotifyChanged)
	return a
}

// NotifyChanged requests a repaint. It never blocks.
func (a *App) NotifyChanged() {
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *App) notifyClose() {
	a.closeOnce.Do(func() {
		a.closed.Store(true)
		if a.onClose != nil {
			a.onClose()
		}
	})
}

type toastEvent struct {
	text  string
	isErr bool
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

// Main drives one window until it is closed or the user quits.
func (a *App) Main(s screen.Screen) {
	canvasSize := a.session.Size()
	width := canvasSize.X
	height := canvasSize.Y + a.toolbarHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()
	defer a.notifyClose()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	if a.notifier != nil {
		a.notifier.AddSink(func(event notify.Event, text string) {
			if a.closed.Load() {
				return
			}
			w.Send(toastEvent{text: text, isErr: event == notify.EventError})
		})
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	labelR, err := overlay.NewRenderer(a.textSize, a.theme.Label)
	if err != nil {
		log.Printf("label font: %v", err)
	} else {
		shadow := render.LabelShadow()
		shadow.Color = a.theme.LabelShadow
		labelR.SetShadow(shadow)
	}
	toastR, err := overlay.NewRenderer(18, a.theme.ToastText)
	if err != nil {
		log.Printf("toast font: %v", err)
	} else {
		toastR.SetShadow(render.ShadowOptions{})
	}

	norm := input.NewNormalizer(image.Pt(0, a.toolbarHeight), canvasSize)
	norm.TouchOffset = a.touchOffset

	palette := canvas.Palette()
	var message string
	var messageErr bool
	var messageUntil time.Time
	hoverButton, hoverSwatch := -1, -1
	quit := false

	showMessage := func(text string, isErr bool) {
		message = text
		messageErr = isErr
		messageUntil = time.Now().Add(toastDuration)
		time.AfterFunc(toastDuration, func() { w.Send(paint.Event{}) })
	}

	actions := map[input.Action]func(){}
	var buttons []*CacheButton
	register := func(act input.Action, label string, fn func()) {
		actions[act] = fn
		if label != "" {
			buttons = append(buttons, &CacheButton{Button: &ActionButton{label: label, theme: a.theme, onActivate: fn}})
		}
	}

	register(input.ActionRun, "Run", func() {
		showMessage("Calculating...", false)
		go a.run()
	})
	register(input.ActionReset, "Reset", a.session.Reset)
	register(input.ActionUndo, "Undo", func() { a.session.Undo() })
	register(input.ActionRedo, "Redo", func() { a.session.Redo() })
	register(input.ActionCopy, "Copy", func() {
		if err := clipboard.WriteImage(a.session.Flatten()); err != nil {
			log.Printf("copy: %v", err)
			showMessage("copy failed: "+err.Error(), true)
			return
		}
		if a.notifier != nil {
			a.notifier.Copy("canvas")
		} else {
			showMessage("Copied canvas to clipboard", false)
		}
	})
	register(input.ActionQuit, "", func() { quit = true })

	trigger := func(act input.Action) {
		if fn, ok := actions[act]; ok {
			fn()
		}
		w.Send(paint.Event{})
	}

	layout := layoutToolbar(a.toolbarHeight, len(buttons), len(palette))

	selectColor := func(idx int) {
		if idx < 0 || idx >= len(palette) {
			return
		}
		a.session.SetColor(palette[idx].Color)
	}

	// toolbarPress handles a press at p in the toolbar and reports whether
	// it hit a control.
	toolbarPress := func(p image.Point) bool {
		if i := hitTest(p, layout.buttons); i >= 0 {
			buttons[i].Activate()
			w.Send(paint.Event{})
			return true
		}
		if i := hitTest(p, layout.swatches); i >= 0 {
			selectColor(i)
			return true
		}
		return false
	}

	for !quit {
		e := w.NextEvent()
		switch e := e.(type) {
		case toastEvent:
			showMessage(e.text, e.isErr)
			w.Send(paint.Event{})
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				if ev, ok := norm.Cancel(); ok {
					a.session.Pointer(ev)
				}
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := paintState{
				width:         width,
				height:        height,
				toolbarHeight: a.toolbarHeight,
				theme:         a.theme,
				canvas:        a.session.Flatten(),
				labels:        a.session.Labels(),
				labelR:        labelR,
				layout:        layout,
				buttons:       buttons,
				hoverButton:   hoverButton,
				palette:       palette,
				colorIdx:      paletteIndex(palette, a.session.Pen().Color),
				hoverSwatch:   hoverSwatch,
				message:       message,
				messageErr:    messageErr,
				messageUntil:  messageUntil,
				toastR:        toastR,
			}
			select {
			case paintCh <- st:
			default:
				<-paintCh
				paintCh <- st
			}
		case mouse.Event:
			p := image.Pt(int(e.X), int(e.Y))
			if message != "" && time.Now().Before(messageUntil) && e.Direction == mouse.DirPress {
				messageUntil = time.Time{}
				w.Send(paint.Event{})
			}
			if p.Y < a.toolbarHeight {
				hb, hs := hitTest(p, layout.buttons), hitTest(p, layout.swatches)
				if hb != hoverButton || hs != hoverSwatch {
					hoverButton, hoverSwatch = hb, hs
					w.Send(paint.Event{})
				}
				if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress && toolbarPress(p) {
					continue
				}
			} else if hoverButton >= 0 || hoverSwatch >= 0 {
				hoverButton, hoverSwatch = -1, -1
				w.Send(paint.Event{})
			}
			if ev, ok := norm.FromMouse(e); ok {
				a.session.Pointer(ev)
			}
		case touch.Event:
			p := image.Pt(int(e.X), int(e.Y))
			if e.Type == touch.TypeBegin && p.Y < a.toolbarHeight {
				toolbarPress(p)
				continue
			}
			if ev, ok := norm.FromTouch(e); ok {
				a.session.Pointer(ev)
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if act := input.ActionForKey(e); act != input.ActionNone {
				trigger(act)
				continue
			}
			if e.Modifiers == 0 && e.Rune >= '1' && e.Rune <= '9' {
				selectColor(int(e.Rune - '1'))
			}
		}
	}
	stopPaint()
}

func (a *App) run() {
	ctx, cancel := context.WithTimeout(context.Background(), a.runTimeout)
	defer cancel()
	if _, err := a.session.Run(ctx); err != nil {
		log.Printf("run: %v", err)
	}
}
