package vibrant

import "errors"

var (
	// ErrInvalidImageData is returned when the pixel source cannot produce pixels.
	ErrInvalidImageData = errors.New("invalid image data")

	// ErrInvalidOptions is returned when Options fail validation.
	ErrInvalidOptions = errors.New("invalid options")
)
