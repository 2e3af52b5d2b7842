package codec

import "errors"

var (
	// ErrDecode indicates that the input of Encode is not valid UTF-8 text.
	ErrDecode = errors.New("input is not valid UTF-8")

	// ErrMalformedHeader indicates that a transcoded buffer is shorter than its length header.
	ErrMalformedHeader = errors.New("malformed length header")

	// ErrDecompression indicates that the bytes after the header are not a valid zlib stream.
	ErrDecompression = errors.New("invalid compressed stream")

	// ErrPayloadTooLarge indicates that the substituted text does not fit the 32-bit header.
	ErrPayloadTooLarge = errors.New("payload exceeds header range")
)
