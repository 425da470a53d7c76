// Package codec implements the bit-exact QOI op-code decoder and
// encoder: header parsing, the 64-slot running color index, and the
// RGB/RGBA/INDEX/DIFF/LUMA/RUN op-code dispatch.
package codec

// Pixel is a 4-tuple of 8-bit components. The zero value is NOT the
// spec's default pixel — use Default() for that.
type Pixel struct {
	R, G, B, A uint8
}

// Default is the decoder and encoder's initial "previous pixel".
func Default() Pixel {
	return Pixel{R: 0, G: 0, B: 0, A: 255}
}

// Hash computes the running-index slot for p, per the QOI spec:
// (3r + 5g + 7b + 11a) mod 64.
func (p Pixel) Hash() uint8 {
	return (p.R*3 + p.G*5 + p.B*7 + p.A*11) & 0x3F
}
