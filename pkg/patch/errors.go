package patch

import "errors"

var (
	// ErrInvalidDimensions indicates an empty image or a non-positive patch size.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrImageNotFound indicates the image file doesn't exist.
	ErrImageNotFound = errors.New("image not found")
	// ErrDecode indicates the image file can't be decoded.
	ErrDecode = errors.New("decode error")
)
