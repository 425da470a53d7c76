package codec

import (
	"errors"
	"math"

	"github.com/kriticalflare/qoi/internal/stream"
)

// Magic is the 4-byte QOI file signature, "qoif".
const Magic = "qoif"

// HeaderSize is the fixed size in bytes of a QOI header.
const HeaderSize = 14

// EndMarker is the 8-byte trailer every QOI stream ends with: seven
// zero bytes followed by a single 0x01.
var EndMarker = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}

// Sentinel errors returned by header parsing. Callers higher up the
// stack (the qoi package) wrap these with additional context; this
// package never formats user-facing strings itself.
var (
	ErrTruncated     = errors.New("truncated header")
	ErrBadMagic      = errors.New("bad magic")
	ErrBadChannels   = errors.New("bad channel count")
	ErrBadColorspace = errors.New("bad colorspace")
	ErrTooLarge      = errors.New("dimensions exceed limit")
	ErrSizeOverflow  = errors.New("pixel count overflows int32")
)

// Header is the 14-byte QOI header.
type Header struct {
	Width, Height        uint32
	Channels, Colorspace uint8
}

// ParseHeader reads and validates a Header from s. maxDimensions
// bounds width and height individually (spec default 1<<24).
func ParseHeader(s *stream.Source, maxDimensions uint32) (Header, error) {
	var magic [4]byte
	for i := range magic {
		b, ok := s.ReadByte()
		if !ok {
			return Header{}, ErrTruncated
		}
		magic[i] = b
	}
	if string(magic[:]) != Magic {
		return Header{}, ErrBadMagic
	}

	width, ok := s.ReadUint32BE()
	if !ok {
		return Header{}, ErrTruncated
	}
	height, ok := s.ReadUint32BE()
	if !ok {
		return Header{}, ErrTruncated
	}
	channels, ok := s.ReadByte()
	if !ok {
		return Header{}, ErrTruncated
	}
	colorspace, ok := s.ReadByte()
	if !ok {
		return Header{}, ErrTruncated
	}

	if channels != 3 && channels != 4 {
		return Header{}, ErrBadChannels
	}
	if colorspace != 0 && colorspace != 1 {
		return Header{}, ErrBadColorspace
	}
	if width > maxDimensions || height > maxDimensions {
		return Header{}, ErrTooLarge
	}
	if overflowsInt32(width, height, uint32(channels)) {
		return Header{}, ErrSizeOverflow
	}

	return Header{Width: width, Height: height, Channels: channels, Colorspace: colorspace}, nil
}

func overflowsInt32(width, height, channels uint32) bool {
	if width == 0 || height == 0 {
		return false
	}
	total := uint64(width) * uint64(height) * uint64(channels)
	return total > uint64(math.MaxInt32)
}
