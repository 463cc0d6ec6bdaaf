// Package imaging implements the image handle: one decoded image bound to a
// base directory, with load, save, resize, crop and size operations.
//
// A Handle is created empty, populated by LoadFile or LoadBase64, optionally
// transformed any number of times, and written back with Save. Pixel work is
// delegated to an Engine; LanczosEngine (github.com/disintegration/imaging)
// is the default and BildEngine (github.com/anthonynsimon/bild) is the
// alternative.
//
// # Coordinate System
//
// Crop origins are 0-based with (0,0) at the top-left corner, X increasing
// rightward and Y increasing downward. A crop of Size{W, H} at Origin{X, Y}
// covers [X, X+W) x [Y, Y+H).
//
// # Resize and Restore
//
// Resize with an empty saveAs replaces the held image. With a saveAs name the
// held image is set aside, the resized result is saved, and the set-aside
// image is put back on every exit path, so the handle ends the call holding
// exactly what it held before, with the same type and bit depth. This lets a caller write thumbnails while keeping the
// full-resolution image for further work.
//
// # Error Handling
//
// Every failure is an *Error carrying a stable Code:
//   - DirectoryUnavailable (3001): bound directory missing or not writable
//   - ImageNotFound (3002): file to load does not exist
//   - InvalidEncoding (3003): base64 payload does not decode
//   - ResizeFailed (3004): resample step failed
//   - CropFailed (3005): crop rectangle empty or outside the image
//   - SaveFailed (3006): encode or write failed
//   - InvalidImage (3007): bytes are not a decodable image
//
// Failed operations leave the handle unchanged.
//
// # Thread Safety
//
// A Handle is not safe for concurrent use. Independent Handles share no state
// and may be used from different goroutines.
package imaging
