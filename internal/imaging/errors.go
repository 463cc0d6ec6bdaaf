package imaging

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Code identifies the kind of failure reported by a Handle. The numeric
// values are stable and safe to persist or send over the wire.
type Code int

const (
	// DirectoryUnavailable: the bound directory is missing or not writable.
	DirectoryUnavailable Code = 3001
	// ImageNotFound: the file to load does not exist.
	ImageNotFound Code = 3002
	// InvalidEncoding: a base64 payload could not be decoded.
	InvalidEncoding Code = 3003
	// ResizeFailed: the resample step failed.
	ResizeFailed Code = 3004
	// CropFailed: the crop step failed, usually an out-of-bounds rectangle.
	CropFailed Code = 3005
	// SaveFailed: encoding or writing the output file failed.
	SaveFailed Code = 3006
	// InvalidImage: the bytes are not a decodable image.
	InvalidImage Code = 3007
)

var codeNames = map[Code]string{
	DirectoryUnavailable: "DirectoryUnavailable",
	ImageNotFound:        "ImageNotFound",
	InvalidEncoding:      "InvalidEncoding",
	ResizeFailed:         "ResizeFailed",
	CropFailed:           "CropFailed",
	SaveFailed:           "SaveFailed",
	InvalidImage:         "InvalidImage",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Error is returned by every failing Handle operation.
type Error struct {
	Code    Code
	Message string
	// Err is the underlying cause, if any, wrapped with a stack trace.
	Err error
}

func newError(code Code, cause error, format string, args ...interface{}) *Error {
	e := &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
	if cause != nil {
		e.Err = pkgerrors.WithStack(cause)
	}
	return e
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Code, int(e.Code), e.Message, pkgerrors.Cause(e.Err))
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, int(e.Code), e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Format implements fmt.Formatter. %+v includes the stack of the cause.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') && e.Err != nil {
			fmt.Fprintf(s, "%s (%d): %s\n%+v", e.Code, int(e.Code), e.Message, e.Err)
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// Is reports whether target is an *Error with the same Code, so callers can
// write errors.Is(err, &imaging.Error{Code: imaging.ImageNotFound}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// CodeOf returns the Code carried by err, or 0 if err is not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}
