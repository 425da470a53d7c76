package qoi

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"sync"

	"github.com/kriticalflare/qoi/internal/codec"
	"github.com/kriticalflare/qoi/internal/pixelconv"
	"github.com/kriticalflare/qoi/internal/stream"
)

func init() {
	image.RegisterFormat("qoi", codec.Magic, ImageDecode, ImageDecodeConfig)
}

var (
	lastErrMu sync.Mutex
	lastErr   error
)

// LastError returns the most recent error recorded by setLastError,
// which the package's Decode/Encode/Info entry points call on failure.
// It is a compatibility shim for callers that want a single place to
// look without threading the returned error through several layers;
// library code should always prefer the error value Decode/Encode
// itself returned.
func LastError() error {
	lastErrMu.Lock()
	defer lastErrMu.Unlock()
	return lastErr
}

func setLastError(err error) error {
	lastErrMu.Lock()
	lastErr = err
	lastErrMu.Unlock()
	return err
}

// Decode reads a QOI image from r and returns it as an 8-bit
// interleaved pixel buffer. desiredChannels selects the output channel
// count (1=grey, 2=grey+alpha, 3=RGB, 4=RGBA); 0 decodes into the
// file's native channel count.
func Decode(r io.Reader, desiredChannels int, opts Options) (*Image, error) {
	opts = opts.resolved()
	hdr, pix, err := decodeRaw(r, opts)
	if err != nil {
		return nil, setLastError(err)
	}

	img := &Image{
		Pix:            pix,
		Width:          int(hdr.Width),
		Height:         int(hdr.Height),
		Channels:       int(hdr.Channels),
		ChannelsInFile: int(hdr.Channels),
		BitDepth:       8,
	}

	if desiredChannels != 0 && desiredChannels != img.Channels {
		converted, err := pixelconv.Convert(img.Pix, img.Width*img.Height, img.Channels, desiredChannels)
		if err != nil {
			return nil, setLastError(fmt.Errorf("%w: %v", ErrUnsupportedConversion, err))
		}
		img.Pix = converted
		img.Channels = desiredChannels
	}

	if opts.FlipOnLoad {
		pixelconv.Flip(img.Pix, img.Height, img.Stride())
	}

	return img, nil
}

// Decode16 behaves like Decode but widens the result to 16 bits per
// component (big-endian), per spec §4.4's 8->16 promotion rule.
func Decode16(r io.Reader, desiredChannels int, opts Options) (*Image, error) {
	img, err := Decode(r, desiredChannels, opts)
	if err != nil {
		return nil, err
	}
	img.Pix = pixelconv.Widen8to16(img.Pix)
	img.BitDepth = 16
	return img, nil
}

// DecodeHDR behaves like Decode but maps the result through the
// LDR->HDR gamma/scale curve into linear float32, per spec §4.4.
func DecodeHDR(r io.Reader, desiredChannels int, opts Options) (*ImageF32, error) {
	opts = opts.resolved()
	img, err := Decode(r, desiredChannels, opts)
	if err != nil {
		return nil, err
	}
	return &ImageF32{
		PixF:           pixelconv.ToHDR(img.Pix, img.Channels, opts.Gamma, opts.Scale),
		Width:          img.Width,
		Height:         img.Height,
		Channels:       img.Channels,
		ChannelsInFile: img.ChannelsInFile,
	}, nil
}

func decodeRaw(r io.Reader, opts Options) (codec.Header, []byte, error) {
	s := stream.NewSourceFromReader(r)
	hdr, pix, err := codec.Decode(s, opts.MaxDimensions)
	if err != nil {
		return codec.Header{}, nil, wrapDecodeErr(err, opts.ErrorDetail)
	}
	repositionFile(r, s)
	return hdr, pix, nil
}

// repositionFile seeks an underlying *os.File back to exactly one byte
// past the last QOI byte consumed, undoing the refill buffer's
// look-ahead. Plain io.Readers without Seek are left untouched.
func repositionFile(r io.Reader, s *stream.Source) {
	seeker, ok := r.(io.Seeker)
	if !ok {
		return
	}
	if unread := s.Unread(); unread > 0 {
		_, _ = seeker.Seek(-unread, io.SeekCurrent)
	}
}

// DecodeFile opens path, decodes it, and closes the file before
// returning.
func DecodeFile(path string, desiredChannels int, opts Options) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, setLastError(fmt.Errorf("%w: %v", ErrUnopenableFile, err))
	}
	defer f.Close()
	return Decode(f, desiredChannels, opts)
}

// Info reads just the 14-byte header and reports the image's
// dimensions and native channel count, without decoding any pixels.
func Info(r io.Reader) (width, height, channels int, err error) {
	s := stream.NewSourceFromReader(io.LimitReader(r, codec.HeaderSize))
	hdr, perr := codec.ParseHeader(s, DefaultMaxDimensions)
	if perr != nil {
		return 0, 0, 0, setLastError(wrapDecodeErr(perr, ErrorDetailBrief))
	}
	return int(hdr.Width), int(hdr.Height), int(hdr.Channels), nil
}

// Encode serializes img as a QOI stream to w. img.Channels must be 3
// or 4 (the wire format's only valid channel counts); callers with a
// 1 or 2 channel buffer should convert it to 3 or 4 first, or just
// call ImageEncode with an image.Image, which does this automatically.
func Encode(w io.Writer, img *Image, opts Options) error {
	opts = opts.resolved()
	if img.Channels != 3 && img.Channels != 4 {
		return setLastError(ErrBadChannels)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return setLastError(ErrBadDimensions)
	}
	hdr := codec.Header{
		Width:      uint32(img.Width),
		Height:     uint32(img.Height),
		Channels:   uint8(img.Channels),
		Colorspace: uint8(opts.Colorspace),
	}
	if err := codec.Encode(w, hdr, img.Pix, opts.FlipOnWrite); err != nil {
		if errors.Is(err, codec.ErrBadDimensions) {
			return setLastError(ErrBadDimensions)
		}
		return setLastError(err)
	}
	return nil
}

// EncodeFile creates (or truncates) path and encodes img into it.
func EncodeFile(path string, img *Image, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return setLastError(fmt.Errorf("%w: %v", ErrUnopenableFile, err))
	}
	defer f.Close()
	return Encode(f, img, opts)
}

// ImageDecode implements the image.Decode signature, for
// image.RegisterFormat.
func ImageDecode(r io.Reader) (image.Image, error) {
	img, err := Decode(r, 4, Options{})
	if err != nil {
		return nil, err
	}
	return img.AsImage(), nil
}

// ImageDecodeConfig implements the image.DecodeConfig signature.
func ImageDecodeConfig(r io.Reader) (image.Config, error) {
	w, h, _, err := Info(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{Width: w, Height: h, ColorModel: color.NRGBAModel}, nil
}

// ImageEncode adapts an arbitrary image.Image (RGBA or opaque) to QOI,
// compositing over magenta per spec §4.3 when channels is 3 and the
// source carries a non-trivial alpha channel.
func ImageEncode(w io.Writer, m image.Image, channels int, opts Options) error {
	if channels != 3 && channels != 4 {
		channels = 4
	}
	img := fromStdImage(m, 4)
	if channels == 3 {
		composited := make([]byte, img.Width*img.Height*3)
		compositeOverMagenta(img.Pix, composited)
		img.Pix = composited
		img.Channels = 3
	}
	return Encode(w, img, opts)
}

// compositeOverMagenta implements the spec §4.3 policy for dropping
// alpha during encode: px[k] = bg[k] + ((d[k]-bg[k])*d[3])/255, with
// bg = (255,0,255).
func compositeOverMagenta(rgba, out []byte) {
	bg := [3]int{255, 0, 255}
	n := len(rgba) / 4
	for i := 0; i < n; i++ {
		d := rgba[i*4 : i*4+4]
		for k := 0; k < 3; k++ {
			out[i*3+k] = byte(bg[k] + (int(d[k])-bg[k])*int(d[3])/255)
		}
	}
}
