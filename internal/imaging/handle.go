package imaging

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/ironsheep/image-process/internal/config"
)

// Handle owns one decoded image and the directory it is loaded from and
// saved to.
//
// A Handle is not safe for concurrent use. Run independent Handles when
// images need to be processed in parallel.
type Handle struct {
	cfg    *config.PathConfig
	engine Engine
	log    zerolog.Logger

	img    image.Image
	loaded bool
	name   string
	format string
}

// Option configures a Handle at construction.
type Option func(*Handle)

// WithEngine replaces the default LanczosEngine.
func WithEngine(e Engine) Option {
	return func(h *Handle) {
		if e != nil {
			h.engine = e
		}
	}
}

// WithLogger sets the logger used for operation events.
func WithLogger(l zerolog.Logger) Option {
	return func(h *Handle) {
		h.log = l
	}
}

// New creates a Handle holding an empty image. If cfg is non-nil it is bound
// with BindConfig and its directory is validated immediately.
func New(cfg *config.PathConfig, opts ...Option) (*Handle, error) {
	h := &Handle{
		engine: LanczosEngine{},
		log:    zerolog.Nop(),
		img:    image.NewNRGBA(image.Rectangle{}),
	}
	for _, opt := range opts {
		opt(h)
	}

	if cfg != nil {
		if err := h.BindConfig(cfg); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// BindConfig validates that cfg points at an existing, writable directory
// and binds it. The check runs on every call. On failure the previously
// bound configuration, if any, is kept.
func (h *Handle) BindConfig(cfg *config.PathConfig) error {
	if cfg == nil {
		return newError(DirectoryUnavailable, nil, "no image directory configured")
	}
	dir := cfg.Path()
	if err := checkWritableDir(dir); err != nil {
		return newError(DirectoryUnavailable, err, "image directory <%s> does not exist or is not writable", dir)
	}

	h.cfg = cfg
	h.log.Debug().Str("path", dir).Msg("image directory bound")
	return nil
}

// Config returns the bound configuration, or nil.
func (h *Handle) Config() *config.PathConfig {
	return h.cfg
}

// LoadFile decodes filename, relative to the bound directory, replacing the
// current image and setting Name to filename. On failure the handle is left
// unchanged.
func (h *Handle) LoadFile(filename string) error {
	if h.cfg == nil {
		return newError(DirectoryUnavailable, nil, "no image directory configured")
	}

	path := h.cfg.Resolve(filename)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return newError(ImageNotFound, err, "image with filename %s does not exist in path <%s>", filename, h.cfg.Path())
		}
		return newError(ImageNotFound, err, "image with filename %s cannot be accessed in path <%s>", filename, h.cfg.Path())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return newError(ImageNotFound, err, "image with filename %s cannot be read", filename)
	}

	d, err := decodeBytes(h.engine, data, false)
	if err != nil {
		return newError(InvalidImage, err, "file %s is not a valid image", filename)
	}

	h.replace(d.img, filename, d.format)
	return nil
}

// LoadBase64 decodes a base64 encoded image, optionally wrapped in a data
// URL. If the image metadata embeds a file name, Name reports it and Save
// with an empty filename writes to it; otherwise Name is cleared. On failure
// the handle is left unchanged.
func (h *Handle) LoadBase64(payload string) error {
	data, err := decodePayload(payload)
	if err != nil {
		return newError(InvalidEncoding, err, "invalid base64 string %s, cannot create image", quoteInput(payload))
	}

	d, err := decodeBytes(h.engine, data, true)
	if err != nil {
		return newError(InvalidImage, err, "base64 payload is not a valid image")
	}

	h.replace(d.img, d.name, d.format)
	return nil
}

func (h *Handle) replace(img image.Image, name, format string) {
	h.img = img
	h.loaded = true
	h.name = name
	h.format = format

	b := img.Bounds()
	h.log.Debug().
		Str("file", name).
		Str("format", format).
		Int("width", b.Dx()).
		Int("height", b.Dy()).
		Msg("image loaded")
}

// Save encodes the current image to filename, relative to the bound
// directory, or to Name when filename is empty. The output format follows
// the file extension. The write is atomic: the target is replaced only once
// the encoded image has been fully written.
func (h *Handle) Save(filename string) error {
	if !h.loaded {
		return newError(SaveFailed, nil, "no image loaded")
	}

	name := filename
	if name == "" {
		name = h.name
	}
	if name == "" {
		return newError(SaveFailed, nil, "no filename given and the image has no associated name")
	}

	var target string
	switch {
	case filepath.IsAbs(name):
		target = name
	case h.cfg != nil:
		target = h.cfg.Resolve(name)
	default:
		return newError(SaveFailed, nil, "no image directory configured for %s", name)
	}

	format, err := FormatFromFilename(target)
	if err != nil {
		return newError(SaveFailed, err, "cannot save %s", name)
	}

	if err := writeAtomic(target, func(f *os.File) error {
		return h.engine.Encode(f, h.img, format)
	}); err != nil {
		return newError(SaveFailed, err, "failed to write %s", target)
	}

	b := h.img.Bounds()
	h.log.Debug().
		Str("file", target).
		Str("format", string(format)).
		Int("width", b.Dx()).
		Int("height", b.Dy()).
		Msg("image saved")
	return nil
}

// Resize resamples the current image to target with a Lanczos filter. A zero
// target height means a square of target.Width. blur scales the filter
// support; zero selects the default of 1.
//
// With an empty saveAs the handle keeps the resized image. Otherwise the
// resized image is written to saveAs and the handle is restored to the image
// it held before the call, whether or not the resize or save succeeded.
func (h *Handle) Resize(target Size, blur float64, saveAs string) error {
	if !h.loaded {
		return newError(ResizeFailed, nil, "no image loaded")
	}
	size := target.square()
	if blur == 0 {
		blur = 1
	}

	if saveAs == "" {
		out, err := h.engine.Resize(h.img, size.Width, size.Height, blur)
		if err != nil {
			return newError(ResizeFailed, err, "failed to resize to %dx%d", size.Width, size.Height)
		}
		h.img = out
		h.log.Debug().Int("width", size.Width).Int("height", size.Height).Msg("image resized")
		return nil
	}

	// Engines never modify their input, so the held value is the backup and
	// keeps its concrete type and bit depth.
	backup := h.img
	defer func() {
		h.img = backup
	}()

	out, err := h.engine.Resize(h.img, size.Width, size.Height, blur)
	if err != nil {
		h.log.Warn().Err(err).Str("save_as", saveAs).Msg("resize failed, restoring original image")
		return newError(ResizeFailed, err, "failed to resize to %dx%d", size.Width, size.Height)
	}
	h.img = out

	if err := h.Save(saveAs); err != nil {
		h.log.Warn().Err(err).Str("save_as", saveAs).Msg("save of resized image failed, restoring original image")
		return err
	}
	return nil
}

// Crop replaces the current image with the region of the given size whose
// top-left corner is origin. Unlike Resize there is no restore: the crop is
// permanent.
func (h *Handle) Crop(size Size, origin Origin) error {
	if !h.loaded {
		return newError(CropFailed, nil, "no image loaded")
	}

	rect := cropRect(h.img.Bounds(), size, origin)
	out, err := h.engine.Crop(h.img, rect)
	if err != nil {
		return newError(CropFailed, err, "failed to crop %dx%d at (%d,%d)", size.Width, size.Height, origin.X, origin.Y)
	}

	h.img = out
	h.log.Debug().
		Int("x", origin.X).
		Int("y", origin.Y).
		Int("width", size.Width).
		Int("height", size.Height).
		Msg("image cropped")
	return nil
}

// Size returns the dimensions of the current image. It is 0x0 until an
// image has been loaded.
func (h *Handle) Size() Size {
	b := h.img.Bounds()
	return Size{Width: b.Dx(), Height: b.Dy()}
}

// Name returns the file name associated with the current image, or "".
func (h *Handle) Name() string {
	return h.name
}

// Format returns the sniffed source format of the last loaded image, such as
// "png" or "jpeg", or "" before any load.
func (h *Handle) Format() string {
	return h.format
}

// Loaded reports whether an image has been loaded.
func (h *Handle) Loaded() bool {
	return h.loaded
}

// Snapshot returns an independent copy of the current image.
func (h *Handle) Snapshot() *image.NRGBA {
	return imaging.Clone(h.img)
}

// checkWritableDir verifies dir exists, is a directory, and accepts new files.
func checkWritableDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	probe, err := os.CreateTemp(dir, ".write-probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}

// writeAtomic writes through a temporary file in the target's directory and
// renames it into place once write succeeds. An existing
// target keeps its permission bits; new files get 0644.
func writeAtomic(target string, write func(f *os.File) error) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(target); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
