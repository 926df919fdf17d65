// Package qr renders the booking receipt as a QR code image.
package qr

import (
	"bytes"
	"image/color"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// Size is the edge length of the rendered code in pixels.
const Size = 192

// Ticket codes are short-lived and scanned once at the entrance, so the
// lowest error-correction level keeps them coarse and easy to read.
var fill = color.RGBA{R: 0xC7, G: 0x6F, B: 0x00, A: 0xFF}

// RenderPNG encodes content as a PNG image: level L, orange modules on a
// transparent background.
func RenderPNG(content string) ([]byte, error) {
	code, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return nil, err
	}
	code.ForegroundColor = fill
	code.BackgroundColor = color.Transparent

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, code.Image(Size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
