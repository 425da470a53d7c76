package qoi

import (
	"image"
	"image/color"
	"image/draw"
)

// Image is the result of a Decode or Decode16 call: an interleaved
// pixel buffer plus the geometry needed to interpret it.
type Image struct {
	// Pix is the interleaved pixel data: BitDepth==8 stores one byte
	// per component, BitDepth==16 stores two (big-endian) bytes per
	// component.
	Pix []byte
	// Width and Height are the image dimensions in pixels.
	Width, Height int
	// Channels is the number of channels actually decoded per pixel
	// (the desiredChannels count passed to Decode, or the file's
	// native count when desiredChannels was 0).
	Channels int
	// ChannelsInFile is the channel count the QOI header declared,
	// independent of what the caller requested.
	ChannelsInFile int
	// BitDepth is 8 or 16.
	BitDepth int
}

// Stride is the byte length of one scanline.
func (img *Image) Stride() int {
	bytesPerComponent := img.BitDepth / 8
	return img.Width * img.Channels * bytesPerComponent
}

// ImageF32 is the result of DecodeHDR: a linear, tone-mapped float32
// buffer in the same interleaved layout as Image.
type ImageF32 struct {
	PixF                     []float32
	Width, Height            int
	Channels, ChannelsInFile int
}

// AsImage adapts an 8-bit Image to the standard library's image.Image
// interface. Panics if BitDepth != 8; this package has no image.Image
// adapter for 16-bit images.
func (img *Image) AsImage() image.Image {
	if img.BitDepth != 8 {
		panic("qoi: AsImage called on a non-8-bit Image")
	}
	rect := image.Rect(0, 0, img.Width, img.Height)
	switch img.Channels {
	case 4:
		return &image.NRGBA{Pix: img.Pix, Stride: img.Stride(), Rect: rect}
	case 2:
		return &grayAlpha{Pix: img.Pix, Stride: img.Stride(), Rect: rect}
	case 1:
		return &image.Gray{Pix: img.Pix, Stride: img.Stride(), Rect: rect}
	default: // 3
		return &rgbNoAlpha{Pix: img.Pix, Stride: img.Stride(), Rect: rect}
	}
}

// grayAlpha implements image.Image for 2-channel (grey, alpha) data;
// the standard library has no built-in model for it.
type grayAlpha struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

func (p *grayAlpha) ColorModel() color.Model { return color.NRGBAModel }
func (p *grayAlpha) Bounds() image.Rectangle { return p.Rect }
func (p *grayAlpha) At(x, y int) color.Color {
	i := (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
	g, a := p.Pix[i], p.Pix[i+1]
	return color.NRGBA{R: g, G: g, B: g, A: a}
}

// rgbNoAlpha implements image.Image for opaque 3-channel data.
type rgbNoAlpha struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

func (p *rgbNoAlpha) ColorModel() color.Model { return color.NRGBAModel }
func (p *rgbNoAlpha) Bounds() image.Rectangle { return p.Rect }
func (p *rgbNoAlpha) At(x, y int) color.Color {
	i := (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
	return color.NRGBA{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2], A: 255}
}

// fromStdImage materializes any image.Image as an *Image in the
// requested channel count (4 when hasAlpha should be preserved, 3
// otherwise), the same normalization spec §4.3 asks the encoder to
// perform on caller-supplied buffers.
//
// It goes through image.NRGBA via image/draw rather than reading
// m.At(x, y).RGBA() component-by-component: RGBA() always returns
// alpha-premultiplied values, and QOI (like the NRGBA model) stores
// non-premultiplied pixels, so a naive copy would silently darken every
// partially transparent pixel. draw.Draw's conversion to NRGBA already
// un-premultiplies correctly, the same way the teacher's own
// imageToNRGBA does it for its ImageEncode.
func fromStdImage(m image.Image, channels int) *Image {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()

	nrgba, ok := m.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Src)
		nrgba = dst
	}

	pix := make([]byte, w*h*channels)
	i := 0
	for y := 0; y < h; y++ {
		rowOff := y * nrgba.Stride
		for x := 0; x < w; x++ {
			off := rowOff + x*4
			pix[i], pix[i+1], pix[i+2] = nrgba.Pix[off], nrgba.Pix[off+1], nrgba.Pix[off+2]
			if channels == 4 {
				pix[i+3] = nrgba.Pix[off+3]
			}
			i += channels
		}
	}
	return &Image{Pix: pix, Width: w, Height: h, Channels: channels, ChannelsInFile: channels, BitDepth: 8}
}
