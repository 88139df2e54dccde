package render

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
)

// QRPNG returns PNG bytes of a QR code for text
func QRPNG(text string, size int) ([]byte, error) {
	return qrcode.Encode(text, qrcode.Medium, size)
}

// QRImage returns the QR code of text for further composition
func QRImage(text string, size int) (image.Image, error) {
	b, err := QRPNG(text, size)
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(b))
}
