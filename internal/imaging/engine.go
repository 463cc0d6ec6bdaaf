package imaging

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

// Engine is the pixel-level capability a Handle calls into. Implementations
// must not modify their input images; every transform returns a new raster.
type Engine interface {
	// Decode reads one image from r.
	Decode(r io.Reader) (image.Image, error)

	// Encode writes img to w in the given format.
	Encode(w io.Writer, img image.Image, format Format) error

	// Resize resamples img to width x height with a Lanczos filter whose
	// support is scaled by blur. blur > 1 softens, blur < 1 sharpens.
	Resize(img image.Image, width, height int, blur float64) (image.Image, error)

	// Crop extracts rect, given in img's coordinate space. Rectangles that are
	// empty or not fully inside img.Bounds() are rejected.
	Crop(img image.Image, rect image.Rectangle) (image.Image, error)
}

// Format is an output image encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// FormatFromFilename picks the encoding from the file extension.
func FormatFromFilename(name string) (Format, error) {
	f, err := imaging.FormatFromFilename(name)
	if err != nil {
		return "", fmt.Errorf("no encoder for %q: %w", name, err)
	}
	switch f {
	case imaging.PNG:
		return PNG, nil
	case imaging.JPEG:
		return JPEG, nil
	case imaging.GIF:
		return GIF, nil
	case imaging.BMP:
		return BMP, nil
	case imaging.TIFF:
		return TIFF, nil
	}
	return "", fmt.Errorf("no encoder for %q", name)
}

// EngineByName returns the engine registered under name: "imaging" (the
// default, also selected by "") or "bild".
func EngineByName(name string) (Engine, error) {
	switch strings.ToLower(name) {
	case "", "imaging":
		return LanczosEngine{}, nil
	case "bild":
		return BildEngine{}, nil
	}
	return nil, fmt.Errorf("unknown engine: %s", name)
}

// LanczosEngine implements Engine on top of github.com/disintegration/imaging.
type LanczosEngine struct{}

func (LanczosEngine) Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func (LanczosEngine) Encode(w io.Writer, img image.Image, format Format) error {
	var f imaging.Format
	switch format {
	case PNG:
		f = imaging.PNG
	case JPEG:
		f = imaging.JPEG
	case GIF:
		f = imaging.GIF
	case BMP:
		f = imaging.BMP
	case TIFF:
		f = imaging.TIFF
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err := imaging.Encode(w, img, f); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

func (LanczosEngine) Resize(img image.Image, width, height int, blur float64) (image.Image, error) {
	if err := checkResize(width, height, blur); err != nil {
		return nil, err
	}
	filter := imaging.Lanczos
	if blur != 1 {
		base := imaging.Lanczos
		filter = imaging.ResampleFilter{
			Support: base.Support * blur,
			Kernel:  func(x float64) float64 { return base.Kernel(x / blur) },
		}
	}
	return imaging.Resize(img, width, height, filter), nil
}

func (LanczosEngine) Crop(img image.Image, rect image.Rectangle) (image.Image, error) {
	if err := checkCrop(img.Bounds(), rect); err != nil {
		return nil, err
	}
	return imaging.Crop(img, rect), nil
}

func checkResize(width, height int, blur float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid target size %dx%d: width and height must be positive", width, height)
	}
	if blur <= 0 {
		return fmt.Errorf("invalid blur %v: must be positive", blur)
	}
	return nil
}
