package platform

import "time"

// AppName is reported to notification services that group by application.
var AppName = "inkcalc"

// DefaultTimeout is how long a desktop notification stays visible.
const DefaultTimeout = 5 * time.Second

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file shown with the
	// notification where supported.
	IconPath string
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
}

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultTimeout
}
