// Package qoi decodes and encodes images in the QOI ("Quite OK Image")
// format: a simple, lossless RGB(A) container with no palette,
// animation, or multi-image support.
//
// The package supports:
//   - Decoding into 8-bit, 16-bit, or linear float32 (HDR) pixel buffers
//   - Channel-count conversion (grey / grey+alpha / RGB / RGBA)
//   - Vertical flip on load or on write
//   - Registration with the standard library's image package under the
//     format name "qoi"
//
// Basic usage for decoding:
//
//	img, err := qoi.Decode(r, 4, qoi.Options{})
//
// Basic usage for encoding:
//
//	err := qoi.Encode(w, img, qoi.Options{})
package qoi
