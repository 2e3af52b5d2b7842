// Package codec converts between plain UTF-8 table text and the game's
// compressed asset format.
//
// A transcoded buffer is laid out as:
//
//	[uint32 little-endian payload length][zlib stream of payload]
//
// where the payload is the input text after character substitution. The
// length header lets the game pre-size its inflate buffer; this package
// writes it but does not check it when decoding.
package codec

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/swd2tools/swd2/internal/charmap"
)

// HeaderSize is the size of the length prefix in bytes.
const HeaderSize = 4

// Encode substitutes diacritics in raw, compresses the result at the best
// compression level and prefixes it with the uncompressed payload length.
func Encode(raw []byte) ([]byte, error) {
	if !utf8.Valid(raw) {
		return nil, ErrDecode
	}

	payload, err := charmap.Substitute(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}

	var buf bytes.Buffer
	buf.Grow(HeaderSize + len(payload)/2)

	var header [HeaderSize]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(payload))) // #nosec G115 - range checked above
	buf.Write(header[:])

	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("create zlib writer: %w", err)
	}
	if _, err := zw.Write(payload); err != nil {
		return nil, fmt.Errorf("zlib write: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zlib close: %w", err)
	}

	return buf.Bytes(), nil
}

// Decode skips the length header and inflates the rest of data. The
// returned bytes still carry the stand-in characters: substitution is not
// reversed.
func Decode(data []byte) ([]byte, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrMalformedHeader, len(data), HeaderSize)
	}

	zr, err := zlib.NewReader(bytes.NewReader(data[HeaderSize:]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	defer func() { _ = zr.Close() }()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	return out, nil
}

// PayloadSize returns the payload length declared by the header of data.
func PayloadSize(data []byte) (uint32, error) {
	if len(data) < HeaderSize {
		return 0, fmt.Errorf("%w: got %d bytes, need at least %d", ErrMalformedHeader, len(data), HeaderSize)
	}
	return binary.LittleEndian.Uint32(data[:HeaderSize]), nil
}
