package imaging

import (
	"fmt"
	"image"
)

// Origin is the top-left corner of a crop rectangle, in pixels relative to
// the image's top-left corner.
type Origin struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a raster geometry in pixels. For Resize a zero Height means a
// square target of Width x Width.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// square fills in a missing height with the width.
func (s Size) square() Size {
	if s.Height == 0 {
		s.Height = s.Width
	}
	return s
}

// cropRect converts an origin and size into a rectangle in the coordinate
// space of bounds.
func cropRect(bounds image.Rectangle, size Size, origin Origin) image.Rectangle {
	topLeft := bounds.Min.Add(image.Pt(origin.X, origin.Y))
	return image.Rectangle{Min: topLeft, Max: topLeft.Add(image.Pt(size.Width, size.Height))}
}

// checkCrop validates that rect is a non-empty region fully inside bounds.
func checkCrop(bounds, rect image.Rectangle) error {
	if rect.Min.X < bounds.Min.X || rect.Min.Y < bounds.Min.Y || rect.Max.X > bounds.Max.X || rect.Max.Y > bounds.Max.Y {
		return fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if rect.Min.X >= rect.Max.X || rect.Min.Y >= rect.Max.Y {
		return fmt.Errorf("invalid crop region: width and height must be positive")
	}
	return nil
}
