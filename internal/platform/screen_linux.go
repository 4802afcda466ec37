//go:build linux

package platform

import (
	"errors"
	"image"
	"os"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// ErrNoDisplay is returned when no X server is reachable.
var ErrNoDisplay = errors.New("no display available")

// ScreenSize reports the size of the default X screen.
func ScreenSize() (image.Point, error) {
	if os.Getenv("DISPLAY") == "" {
		return image.Point{}, ErrNoDisplay
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return image.Point{}, err
	}
	defer conn.Close()
	screen := xproto.Setup(conn).DefaultScreen(conn)
	return image.Pt(int(screen.WidthInPixels), int(screen.HeightInPixels)), nil
}
