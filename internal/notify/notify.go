// Package notify delivers user-facing messages to in-window sinks and,
// when enabled, to the desktop notification service.
package notify

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/example/inkcalc/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventError is emitted when a run fails, either in transport or with a
	// server-supplied message.
	EventError Event = "error"
	// EventEmpty is emitted when a run succeeds without results.
	EventEmpty Event = "empty"
	// EventResult is emitted once per successful run.
	EventResult Event = "result"
	// EventCopy is emitted when data is copied to the clipboard.
	EventCopy Event = "copy"
)

// Events lists every event in a stable order.
var Events = []Event{EventError, EventEmpty, EventResult, EventCopy}

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "inkcalc",
		Events: map[Event]EventPreference{
			EventError:  {Template: "%s"},
			EventEmpty:  {Template: "%s"},
			EventResult: {Template: "Solved %s"},
			EventCopy:   {Template: "Copied %s to clipboard"},
		},
	}
}

// LoadPreferences applies INKCALC_NOTIFY_* environment overrides to prefs.
func LoadPreferences(prefs Preferences) Preferences {
	prefs = prefs.clone()
	if v := strings.TrimSpace(os.Getenv("INKCALC_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for _, event := range Events {
		key := "INKCALC_NOTIFY_" + strings.ToUpper(string(event)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Events[event] = EventPreference{Template: v}
		}
	}
	return prefs
}

func (p Preferences) clone() Preferences {
	out := Preferences{Title: p.Title, Events: make(map[Event]EventPreference, len(p.Events))}
	for k, v := range p.Events {
		out.Events[k] = v
	}
	return out
}

// Sink receives every message regardless of desktop settings. The window
// uses one to show toasts and the console uses one to print.
type Sink func(event Event, text string)

// Notifier fans messages out to sinks and optionally to the desktop.
type Notifier struct {
	prefs Preferences

	mu      sync.Mutex
	enabled map[Event]bool
	sinks   []Sink
	desktop func(title, body string, opts platform.Options) error
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	return &Notifier{prefs: prefs.clone(), enabled: make(map[Event]bool), desktop: platform.Notify}
}

// Enable toggles desktop delivery for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled[event] = enabled
}

// AddSink registers an in-process receiver.
func (n *Notifier) AddSink(s Sink) {
	if n == nil || s == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sinks = append(n.sinks, s)
}

// Notify formats detail with the event template and delivers it.
func (n *Notifier) Notify(event Event, detail string) {
	if n == nil {
		return
	}
	body := n.format(event, detail)
	if body == "" {
		return
	}
	n.mu.Lock()
	sinks := append([]Sink(nil), n.sinks...)
	desktop := n.enabled[event] && n.desktop != nil
	n.mu.Unlock()

	for _, s := range sinks {
		s(event, body)
	}
	if !desktop {
		return
	}
	if err := n.desktop(n.prefs.Title, body, platform.Options{}); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

// Copy reports a clipboard copy.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.Notify(EventCopy, detail)
}

func (n *Notifier) format(event Event, detail string) string {
	template := strings.TrimSpace(n.prefs.Events[event].Template)
	detail = strings.TrimSpace(detail)
	if template == "" {
		return detail
	}
	if !strings.Contains(template, "%") {
		return template
	}
	return strings.TrimSpace(fmt.Sprintf(template, detail))
}
