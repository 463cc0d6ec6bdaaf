package imaging

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rwcarlsen/goexif/exif"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// pngNameKeywords are the tEXt keywords read as a file name, in priority order.
var pngNameKeywords = []string{"Filename", "Title"}

// embeddedName returns the file name carried in the metadata of an encoded
// image, or "" when there is none. PNG payloads are searched for tEXt
// chunks, JPEG and TIFF payloads for the EXIF ImageDescription tag.
func embeddedName(data []byte) string {
	mt := mimetype.Detect(data)
	var name string
	switch {
	case mt.Is("image/png"):
		name = pngTextName(data)
	case mt.Is("image/jpeg"), mt.Is("image/tiff"):
		name = exifName(data)
	}
	return cleanName(name)
}

// cleanName accepts only bare file names; anything that would escape the
// base directory is dropped.
func cleanName(name string) string {
	name = strings.TrimSpace(strings.TrimRight(name, "\x00"))
	if name == "" || name == "." || name == ".." {
		return ""
	}
	if filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return ""
	}
	return name
}

// pngTextName walks the PNG chunk list up to the first IDAT and returns the
// value of the highest-priority name keyword found in a tEXt chunk.
func pngTextName(data []byte) string {
	if !bytes.HasPrefix(data, pngSignature) {
		return ""
	}

	found := map[string]string{}
	rest := data[len(pngSignature):]
	for len(rest) >= 12 {
		length := binary.BigEndian.Uint32(rest[:4])
		typ := string(rest[4:8])
		if uint64(length)+12 > uint64(len(rest)) {
			break
		}
		body := rest[8 : 8+length]
		rest = rest[12+length:]

		if typ == "IDAT" || typ == "IEND" {
			break
		}
		if typ != "tEXt" {
			continue
		}
		key, value, ok := bytes.Cut(body, []byte{0})
		if !ok {
			continue
		}
		if _, seen := found[string(key)]; !seen {
			found[string(key)] = string(value)
		}
	}

	for _, kw := range pngNameKeywords {
		if v, ok := found[kw]; ok && v != "" {
			return v
		}
	}
	return ""
}

// exifName reads EXIF ImageDescription from a JPEG or TIFF payload.
func exifName(data []byte) string {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return ""
	}
	tag, err := x.Get(exif.ImageDescription)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return s
}
