package document

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// PreparePhoto decodes raw (JPEG, PNG, GIF, BMP or TIFF), honours EXIF
// orientation and crops it to a centered size x size square, encoded as PNG.
// Renderers clip the square to a circle.
func PreparePhoto(raw []byte, size int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	square := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, square, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}
	return buf.Bytes(), nil
}
