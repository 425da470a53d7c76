package codec

import (
	"errors"

	"github.com/kriticalflare/qoi/internal/stream"
)

// ErrShortPixelData is returned when the op-code stream ends before
// width*height pixels have been produced.
var ErrShortPixelData = errors.New("qoi stream ended before all pixels were decoded")

const (
	opRGB8  = 0xFE
	opRGBA8 = 0xFF
	opMask  = 0xC0
	opIndex = 0x00
	opDiff  = 0x40
	opLuma  = 0x80
	opRun   = 0xC0
)

// Decode reads a full QOI image (header + pixel payload) from s and
// returns it as an interleaved byte buffer in the file's native
// channel count (Header.Channels). Callers that want a different
// channel count run the result through pixelconv.Convert.
func Decode(s *stream.Source, maxDimensions uint32) (Header, []byte, error) {
	hdr, err := ParseHeader(s, maxDimensions)
	if err != nil {
		return Header{}, nil, err
	}

	channels := int(hdr.Channels)
	total := int(hdr.Width) * int(hdr.Height)
	pix := make([]byte, total*channels)

	prev := Default()
	var index [64]Pixel

	pos := 0
	for written := 0; written < total; {
		tag, ok := s.ReadByte()
		if !ok {
			return Header{}, nil, ErrShortPixelData
		}

		switch {
		case tag == opRGBA8:
			r, ok1 := s.ReadByte()
			g, ok2 := s.ReadByte()
			b, ok3 := s.ReadByte()
			a, ok4 := s.ReadByte()
			if !ok1 || !ok2 || !ok3 || !ok4 {
				return Header{}, nil, ErrShortPixelData
			}
			prev = Pixel{R: r, G: g, B: b, A: a}
			index[prev.Hash()] = prev
			pos = writePixel(pix, pos, channels, prev)
			written++

		case tag == opRGB8:
			r, ok1 := s.ReadByte()
			g, ok2 := s.ReadByte()
			b, ok3 := s.ReadByte()
			if !ok1 || !ok2 || !ok3 {
				return Header{}, nil, ErrShortPixelData
			}
			prev = Pixel{R: r, G: g, B: b, A: prev.A}
			index[prev.Hash()] = prev
			pos = writePixel(pix, pos, channels, prev)
			written++

		case tag&opMask == opIndex:
			prev = index[tag&0x3F]
			pos = writePixel(pix, pos, channels, prev)
			written++

		case tag&opMask == opDiff:
			dr := (tag>>4)&0x03 - 2
			dg := (tag>>2)&0x03 - 2
			db := tag&0x03 - 2
			prev = Pixel{
				R: prev.R + dr,
				G: prev.G + dg,
				B: prev.B + db,
				A: prev.A,
			}
			index[prev.Hash()] = prev
			pos = writePixel(pix, pos, channels, prev)
			written++

		case tag&opMask == opLuma:
			second, ok := s.ReadByte()
			if !ok {
				return Header{}, nil, ErrShortPixelData
			}
			dg := (tag & 0x3F) - 32
			drDg := (second>>4)&0x0F - 8
			dbDg := second&0x0F - 8
			prev = Pixel{
				R: prev.R + dg + drDg,
				G: prev.G + dg,
				B: prev.B + dg + dbDg,
				A: prev.A,
			}
			index[prev.Hash()] = prev
			pos = writePixel(pix, pos, channels, prev)
			written++

		default: // tag&opMask == opRun
			runLen := int(tag&0x3F) + 1
			if written+runLen > total {
				runLen = total - written
			}
			for i := 0; i < runLen; i++ {
				pos = writePixel(pix, pos, channels, prev)
			}
			written += runLen
			// Deliberately no index write here, matching the encoder,
			// which leaves the index untouched while it counts a run.
			// A run that repeats a pixel produced by an earlier
			// RGB/RGBA/DIFF/LUMA/INDEX op finds its slot already
			// holding prev; a run at the very start of the stream
			// leaves the default pixel's slot unwritten. See
			// SPEC_FULL.md §4.2 ("Index update during RUN").
		}
	}

	return hdr, pix, nil
}

func writePixel(pix []byte, pos, channels int, p Pixel) int {
	pix[pos] = p.R
	pix[pos+1] = p.G
	pix[pos+2] = p.B
	if channels == 4 {
		pix[pos+3] = p.A
	}
	return pos + channels
}
