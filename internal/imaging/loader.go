package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// maxQuotedInput bounds how much of a rejected base64 payload is repeated in
// the error message.
const maxQuotedInput = 256

// decoded is the result of turning raw bytes into a raster.
type decoded struct {
	img    image.Image
	format string
	name   string
}

// decodeBytes decodes data with engine and sniffs its format. When withName
// is set the embedded file name, if any, is extracted as well.
func decodeBytes(engine Engine, data []byte, withName bool) (*decoded, error) {
	img, err := engine.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	d := &decoded{img: img, format: sniffFormat(data)}
	if withName {
		d.name = embeddedName(data)
	}
	return d, nil
}

// sniffFormat returns the image subtype of data ("png", "jpeg", "webp"), or
// "unknown".
func sniffFormat(data []byte) string {
	mt := mimetype.Detect(data)
	sub, ok := strings.CutPrefix(mt.String(), "image/")
	if !ok || sub == "" {
		return "unknown"
	}
	return sub
}

// decodePayload strips an optional data URL prefix and surrounding
// whitespace from s and base64-decodes the rest. Padded and unpadded
// standard alphabets are accepted.
func decodePayload(s string) ([]byte, error) {
	payload := strings.TrimSpace(s)
	if strings.HasPrefix(payload, "data:") {
		if i := strings.Index(payload, ";base64,"); i >= 0 {
			payload = payload[i+len(";base64,"):]
		}
	}
	if payload == "" {
		return nil, fmt.Errorf("empty payload")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(payload); rawErr == nil {
		return raw, nil
	}
	return nil, err
}

// quoteInput renders s for inclusion in an error message.
func quoteInput(s string) string {
	if len(s) > maxQuotedInput {
		return fmt.Sprintf("%q... (%d bytes)", s[:maxQuotedInput], len(s))
	}
	return fmt.Sprintf("%q", s)
}
