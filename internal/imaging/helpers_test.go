package imaging

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createPatternImage creates an in-memory image with four colored quadrants:
// red top-left, green top-right, blue bottom-left, white bottom-right.
func createPatternImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.NRGBA
			switch {
			case x < width/2 && y < height/2:
				c = color.NRGBA{255, 0, 0, 255}
			case x >= width/2 && y < height/2:
				c = color.NRGBA{0, 255, 0, 255}
			case x < width/2:
				c = color.NRGBA{0, 0, 255, 255}
			default:
				c = color.NRGBA{255, 255, 255, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// encodePNG returns img encoded as PNG.
func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

// writePNG writes a width x height pattern image to dir/name.
func writePNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, encodePNG(t, createPatternImage(width, height)), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// withPNGText inserts a tEXt chunk right after the IHDR chunk of a PNG.
func withPNGText(t *testing.T, data []byte, keyword, text string) []byte {
	t.Helper()
	// signature (8) + IHDR chunk (4 length + 4 type + 13 data + 4 crc)
	const ihdrEnd = 8 + 25
	if len(data) < ihdrEnd {
		t.Fatal("png too short")
	}

	body := append([]byte(keyword), 0)
	body = append(body, text...)

	var chunk bytes.Buffer
	binary.Write(&chunk, binary.BigEndian, uint32(len(body)))
	chunk.WriteString("tEXt")
	chunk.Write(body)
	crc := crc32.NewIEEE()
	crc.Write([]byte("tEXt"))
	crc.Write(body)
	binary.Write(&chunk, binary.BigEndian, crc.Sum32())

	out := append([]byte{}, data[:ihdrEnd]...)
	out = append(out, chunk.Bytes()...)
	return append(out, data[ihdrEnd:]...)
}

// withEXIFDescription returns a JPEG of img with an APP1 EXIF segment whose
// IFD0 holds a single ImageDescription tag.
func withEXIFDescription(t *testing.T, img image.Image, desc string) []byte {
	t.Helper()
	var enc bytes.Buffer
	if err := jpeg.Encode(&enc, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("failed to encode jpeg: %v", err)
	}
	jpg := enc.Bytes()

	value := append([]byte(desc), 0)
	if len(value) <= 4 {
		t.Fatal("description too short for an offset value")
	}

	var tiff bytes.Buffer
	tiff.WriteString("MM")
	binary.Write(&tiff, binary.BigEndian, uint16(42))
	binary.Write(&tiff, binary.BigEndian, uint32(8))
	// IFD0: one entry, then next-IFD offset, then the string value.
	binary.Write(&tiff, binary.BigEndian, uint16(1))
	binary.Write(&tiff, binary.BigEndian, uint16(0x010E)) // ImageDescription
	binary.Write(&tiff, binary.BigEndian, uint16(2))      // ASCII
	binary.Write(&tiff, binary.BigEndian, uint32(len(value)))
	binary.Write(&tiff, binary.BigEndian, uint32(8+2+12+4))
	binary.Write(&tiff, binary.BigEndian, uint32(0))
	tiff.Write(value)

	payload := append([]byte("Exif\x00\x00"), tiff.Bytes()...)

	var out bytes.Buffer
	out.Write(jpg[:2]) // SOI
	out.Write([]byte{0xFF, 0xE1})
	binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(jpg[2:])
	return out.Bytes()
}

func b64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
