package imaging

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
)

func TestDecodePayload(t *testing.T) {
	raw := []byte("hello image bytes")
	std := base64.StdEncoding.EncodeToString(raw)
	unpadded := base64.RawStdEncoding.EncodeToString(raw)

	tests := []struct {
		name  string
		input string
	}{
		{"standard", std},
		{"unpadded", unpadded},
		{"surrounding whitespace", "\n  " + std + "  \n"},
		{"data url", "data:image/png;base64," + std},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodePayload(tt.input)
			if err != nil {
				t.Fatalf("decodePayload failed: %v", err)
			}
			if !bytes.Equal(got, raw) {
				t.Errorf("got %q, want %q", got, raw)
			}
		})
	}
}

func TestDecodePayload_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "!!!not base64!!!", "abc$def"} {
		if _, err := decodePayload(input); err == nil {
			t.Errorf("decodePayload(%q) should fail", input)
		}
	}
}

func TestQuoteInput(t *testing.T) {
	if got := quoteInput("abc"); got != `"abc"` {
		t.Errorf("short input: got %s", got)
	}

	long := strings.Repeat("x", maxQuotedInput+10)
	got := quoteInput(long)
	if !strings.Contains(got, "...") || !strings.Contains(got, "266 bytes") {
		t.Errorf("long input not truncated: %s", got)
	}
}

func TestSniffFormat(t *testing.T) {
	png := encodePNG(t, createPatternImage(4, 4))
	if got := sniffFormat(png); got != "png" {
		t.Errorf("png: got %s", got)
	}

	jpg := withEXIFDescription(t, createPatternImage(8, 8), "photo.jpg")
	if got := sniffFormat(jpg); got != "jpeg" {
		t.Errorf("jpeg: got %s", got)
	}

	if got := sniffFormat([]byte("plain text")); got != "unknown" {
		t.Errorf("text: got %s", got)
	}
}

func TestDecodeBytes(t *testing.T) {
	data := withPNGText(t, encodePNG(t, createPatternImage(30, 20)), "Filename", "cover.png")

	d, err := decodeBytes(LanczosEngine{}, data, true)
	if err != nil {
		t.Fatalf("decodeBytes failed: %v", err)
	}
	if d.img.Bounds().Dx() != 30 || d.img.Bounds().Dy() != 20 {
		t.Errorf("dimensions: got %v", d.img.Bounds())
	}
	if d.format != "png" {
		t.Errorf("format: got %s", d.format)
	}
	if d.name != "cover.png" {
		t.Errorf("name: got %q", d.name)
	}

	d, err = decodeBytes(LanczosEngine{}, data, false)
	if err != nil {
		t.Fatalf("decodeBytes failed: %v", err)
	}
	if d.name != "" {
		t.Errorf("name should not be read: got %q", d.name)
	}
}
