package qoi

import (
	"errors"
	"fmt"

	"github.com/kriticalflare/qoi/internal/codec"
)

// Sentinel errors, one per failure mode in the QOI spec's error
// taxonomy. Check with errors.Is; the wrapped text varies with
// Options.ErrorDetail but the sentinel identity never does.
var (
	ErrBadMagic              = errors.New("qoi: not a QOI file")
	ErrBadChannels           = errors.New("qoi: bad channel count")
	ErrBadColorspace         = errors.New("qoi: bad colorspace")
	ErrTooLarge              = errors.New("qoi: dimensions exceed limit")
	ErrSizeOverflow          = errors.New("qoi: pixel buffer size overflow")
	ErrOutOfMemory           = errors.New("qoi: allocation failed")
	ErrUnsupportedConversion = errors.New("qoi: unsupported channel conversion")
	ErrUnopenableFile        = errors.New("qoi: cannot open file")
	ErrBadDimensions         = errors.New("qoi: invalid dimensions for encode")
	ErrTruncated             = errors.New("qoi: truncated pixel data")
)

// wrapDecodeErr translates an internal/codec or internal/stream error
// into one of the package's public sentinels, formatted according to
// detail.
func wrapDecodeErr(err error, detail ErrorDetail) error {
	if err == nil {
		return nil
	}
	sentinel := classifyDecodeErr(err)
	return formatErr(sentinel, err, detail)
}

func classifyDecodeErr(err error) error {
	switch {
	case errors.Is(err, codec.ErrBadMagic):
		return ErrBadMagic
	case errors.Is(err, codec.ErrBadChannels):
		return ErrBadChannels
	case errors.Is(err, codec.ErrBadColorspace):
		return ErrBadColorspace
	case errors.Is(err, codec.ErrTooLarge):
		return ErrTooLarge
	case errors.Is(err, codec.ErrSizeOverflow):
		return ErrSizeOverflow
	case errors.Is(err, codec.ErrTruncated), errors.Is(err, codec.ErrShortPixelData):
		return ErrTruncated
	default:
		return err
	}
}

func formatErr(sentinel, cause error, detail ErrorDetail) error {
	switch detail {
	case ErrorDetailNone:
		return sentinel
	case ErrorDetailVerbose:
		if sentinel == cause {
			return sentinel
		}
		return fmt.Errorf("%w: %v", sentinel, cause)
	default: // ErrorDetailBrief
		return sentinel
	}
}
