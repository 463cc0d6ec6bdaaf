package config

import (
	"os"
	"path/filepath"
	"strings"
)

// separators lists the characters stripped from the end of a path before the
// single canonical separator is appended.
const separators = "/" + string(os.PathSeparator)

// PathConfig holds the base directory used to resolve image file names.
type PathConfig struct {
	path string
}

// NewPathConfig returns a PathConfig set to path.
func NewPathConfig(path string) *PathConfig {
	c := &PathConfig{}
	c.SetPath(path)
	return c
}

// SetPath stores path with any trailing separators replaced by exactly one.
// Calling it again with its own output is a no-op.
func (c *PathConfig) SetPath(path string) {
	c.path = strings.TrimRight(path, separators) + string(os.PathSeparator)
}

// Path returns the normalized base directory, always ending in a separator.
func (c *PathConfig) Path() string {
	return c.path
}

// Resolve joins name onto the base directory. Absolute names are returned
// unchanged.
func (c *PathConfig) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return c.path + name
}
