package canvas

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"
)

const pngDataURLPrefix = "data:image/png;base64,"

var snapshotEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// Snapshot is an immutable PNG data URL capturing a raster at one instant.
type Snapshot string

// EncodeSnapshot encodes img as a PNG data URL.
func EncodeSnapshot(img image.Image) (Snapshot, error) {
	var buf bytes.Buffer
	if err := snapshotEncoder.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return Snapshot(pngDataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

// Decode returns the snapshot pixels as a zero-origin RGBA image.
func (s Snapshot) Decode() (*image.RGBA, error) {
	img, err := DecodeDataURL(string(s))
	if err != nil {
		return nil, err
	}
	return toRGBA(img), nil
}

// DataURL encodes img as a PNG data URL string suitable for a request body.
func DataURL(img image.Image) (string, error) {
	s, err := EncodeSnapshot(img)
	return string(s), err
}

// DecodeDataURL decodes a base64 PNG payload. The "data:<mime>;base64,"
// header is optional; anything up to the first comma is discarded.
func DecodeDataURL(s string) (image.Image, error) {
	payload := strings.TrimSpace(s)
	if payload == "" {
		return nil, errors.New("decode data url: empty payload")
	}
	if strings.HasPrefix(payload, "data:") {
		idx := strings.IndexByte(payload, ',')
		if idx < 0 {
			return nil, errors.New("decode data url: missing comma")
		}
		payload = payload[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data url: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode data url: %w", err)
	}
	return img, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
