package imaging

import (
	"fmt"
	"image"
	"io"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// BildEngine implements Engine with github.com/anthonynsimon/bild. Decoding
// goes through the registered image formats; bild only encodes PNG, JPEG
// and BMP.
type BildEngine struct{}

func (BildEngine) Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func (BildEngine) Encode(w io.Writer, img image.Image, format Format) error {
	var enc imgio.Encoder
	switch format {
	case PNG:
		enc = imgio.PNGEncoder()
	case JPEG:
		enc = imgio.JPEGEncoder(95)
	case BMP:
		enc = imgio.BMPEncoder()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err := enc(w, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

func (BildEngine) Resize(img image.Image, width, height int, blur float64) (image.Image, error) {
	if err := checkResize(width, height, blur); err != nil {
		return nil, err
	}
	filter := transform.Lanczos
	if blur != 1 {
		base := transform.Lanczos
		filter = transform.ResampleFilter{
			Support: base.Support * blur,
			Fn:      func(x float64) float64 { return base.Fn(x / blur) },
		}
	}
	return transform.Resize(img, width, height, filter), nil
}

func (BildEngine) Crop(img image.Image, rect image.Rectangle) (image.Image, error) {
	if err := checkCrop(img.Bounds(), rect); err != nil {
		return nil, err
	}
	return transform.Crop(img, rect), nil
}
