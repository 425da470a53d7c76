package codec_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kriticalflare/qoi/internal/codec"
	"github.com/kriticalflare/qoi/internal/stream"
)

func encodeHeader(w uint32, h uint32, channels, colorspace byte) []byte {
	buf := []byte(codec.Magic)
	buf = append(buf, byte(w>>24), byte(w>>16), byte(w>>8), byte(w))
	buf = append(buf, byte(h>>24), byte(h>>16), byte(h>>8), byte(h))
	buf = append(buf, channels, colorspace)
	return buf
}

// scenario 1: 1x1 RGB pixel (12,34,56).
func TestDecodeSingleRGBPixel(t *testing.T) {
	buf := encodeHeader(1, 1, 3, 0)
	buf = append(buf, 0xFE, 12, 34, 56)
	buf = append(buf, codec.EndMarker[:]...)

	s := stream.NewSourceFromBytes(buf)
	hdr, pix, err := codec.Decode(s, 1<<24)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]byte{12, 34, 56}, pix); diff != "" {
		t.Fatalf("pixels mismatch (-want +got):\n%s", diff)
	}
	if hdr.Width != 1 || hdr.Height != 1 || hdr.Channels != 3 {
		t.Fatalf("unexpected header: %+v", hdr)
	}
}

// scenario 2: 2x1 RGBA image, both pixels (10,20,30,255), encoded as
// one RGBA op followed by a RUN=1 op.
func TestDecodeRGBAThenRunOne(t *testing.T) {
	buf := encodeHeader(2, 1, 4, 0)
	buf = append(buf, 0xFF, 10, 20, 30, 255) // RGBA
	buf = append(buf, 0xC0)                  // RUN, length 1
	buf = append(buf, codec.EndMarker[:]...)

	s := stream.NewSourceFromBytes(buf)
	_, pix, err := codec.Decode(s, 1<<24)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []byte{10, 20, 30, 255, 10, 20, 30, 255}
	if diff := cmp.Diff(want, pix); diff != "" {
		t.Fatalf("pixels mismatch (-want +got):\n%s", diff)
	}
}

// scenario 3: 64x1 all-(0,0,0,255) image: RUN 62 (0xFD) then RUN 2 (0xC1).
func TestDecodeRunCapAt62(t *testing.T) {
	buf := encodeHeader(64, 1, 4, 0)
	// every pixel equals the initial prev (0,0,0,255), so the whole row
	// is two runs
	buf = append(buf, 0xC0|61) // RUN length 62 (0xFD)
	buf = append(buf, 0xC0|1)  // RUN length 2 (0xC1)
	buf = append(buf, codec.EndMarker[:]...)

	s := stream.NewSourceFromBytes(buf)
	hdr, pix, err := codec.Decode(s, 1<<24)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if hdr.Width != 64 {
		t.Fatalf("width = %d, want 64", hdr.Width)
	}
	if len(pix) != 64*4 {
		t.Fatalf("len(pix) = %d, want %d", len(pix), 64*4)
	}
	for i := 0; i < 64; i++ {
		px := pix[i*4 : i*4+4]
		if !bytes.Equal(px, []byte{0, 0, 0, 255}) {
			t.Fatalf("pixel %d = %v, want all-zero opaque", i, px)
		}
	}
}

// Regression test pinning the resolved "index update during RUN" open
// question: the index slot for a run's pixel is not written at the
// start of the run. An INDEX op placed immediately after the run that
// names the run pixel's hash slot must read back that slot's earlier
// content, not the run's pixel.
func TestIndexNotRewrittenDuringRun(t *testing.T) {
	// prev starts at (0,0,0,255). First pixel equals prev -> emitted as
	// a RUN of length 3 (no preceding op ever touches the index for
	// (0,0,0,255) other than the decoder's own implicit initial state,
	// which is NOT present in index[] at all since index starts zeroed
	// and (0,0,0,255) only gets indexed by an explicit op).
	buf := encodeHeader(4, 1, 4, 0)
	buf = append(buf, 0xC0|2) // RUN length 3: three pixels of (0,0,0,255)
	// 4th pixel: INDEX op for slot 53, the hash slot of (0,0,0,255)
	// (255*11 = 2805, 2805 mod 64 = 53). No op has written that slot, so
	// it still holds the zeroed (0,0,0,0); a decoder that indexed the
	// run's pixel would return (0,0,0,255) here instead.
	buf = append(buf, 0x00|53)
	buf = append(buf, codec.EndMarker[:]...)

	s := stream.NewSourceFromBytes(buf)
	_, pix, err := codec.Decode(s, 1<<24)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []byte{
		0, 0, 0, 255,
		0, 0, 0, 255,
		0, 0, 0, 255,
		0, 0, 0, 0,
	}
	if diff := cmp.Diff(want, pix); diff != "" {
		t.Fatalf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeBadMagic(t *testing.T) {
	buf := []byte("nope" + "\x00\x00\x00\x01\x00\x00\x00\x01\x03\x00")
	s := stream.NewSourceFromBytes(buf)
	_, _, err := codec.Decode(s, 1<<24)
	if err != codec.ErrBadMagic {
		t.Fatalf("err = %v, want ErrBadMagic", err)
	}
}

func TestDecodeTooLarge(t *testing.T) {
	buf := encodeHeader((1<<24)+1, 1, 3, 0)
	s := stream.NewSourceFromBytes(buf)
	_, _, err := codec.Decode(s, 1<<24)
	if err != codec.ErrTooLarge {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}

// Sniffing a 14-byte header-only buffer must succeed (no pixel data
// needed), but a full Decode on the same bytes must fail because the
// payload is truncated.
func TestInfoSucceedsOnHeaderOnlyBuffer(t *testing.T) {
	buf := encodeHeader(1, 1, 3, 0)
	s := stream.NewSourceFromBytes(buf)
	hdr, err := codec.ParseHeader(s, 1<<24)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if hdr.Width != 1 || hdr.Height != 1 {
		t.Fatalf("unexpected header: %+v", hdr)
	}

	s2 := stream.NewSourceFromBytes(buf)
	_, _, err = codec.Decode(s2, 1<<24)
	if err == nil {
		t.Fatalf("Decode on truncated payload succeeded, want error")
	}
}
