// Package config holds the image directory configuration and the YAML file
// configuration for the image-process binary.
//
// PathConfig is the only piece the imaging package depends on. It stores a
// directory path normalized to end with exactly one separator so that image
// file names can be appended to it directly. No I/O happens here; whether the
// directory exists and is writable is checked when a PathConfig is bound to an
// imaging.Handle.
//
// Config is the on-disk configuration read by cmd/image-process:
//
//	images:
//	  path: /var/lib/images
//	  engine: imaging
//	  blur: 1.0
//	log:
//	  level: info
//
// The IMAGE_PROCESS_PATH environment variable overrides images.path.
package config
