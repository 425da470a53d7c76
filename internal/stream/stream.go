// Package stream implements the pull-based byte source the QOI decoder
// reads from: either a plain in-memory slice, or an io.Reader fronted by
// a small refill buffer, so the decoder's hot path never has to care
// which one it's looking at.
package stream

import "io"

// refillSize is the window pulled from a reader at a time. Header
// sniffing only ever looks at the first 14 bytes, and the decoder's
// main loop consumes at most 5 bytes per pixel (the RGBA op), so a
// small window amortizes cleanly while reading at most 128 bytes past
// the last byte actually consumed.
const refillSize = 128

// Source is a pull-based byte source with a bounded refill buffer.
// The zero value is not usable; construct one with NewSourceFromBytes
// or NewSourceFromReader.
type Source struct {
	r io.Reader // nil when origin is a memory slice of at most refillSize bytes

	buf [refillSize]byte
	cur int // read cursor into buf
	end int // one past the last valid byte in buf

	origBuf []byte // memory origin only, for Rewind
	exhausted bool

	consumed int64 // bytes loaded into buf so far (initial window plus all refills), for Consumed
}

// NewSourceFromBytes creates a Source reading from buf. A buf of at
// most refillSize bytes is served from the window alone; a larger one
// is read on through the same refill path a reader uses. End-of-slice
// reads report ok=false.
func NewSourceFromBytes(buf []byte) *Source {
	s := &Source{origBuf: buf}
	n := copy(s.buf[:], buf)
	s.end = n
	s.consumed = int64(n)
	if n < len(buf) {
		// buf is larger than the refill window: keep reading directly
		// from it via a bytes.Reader-like fallback so large memory
		// images still decode correctly.
		s.r = &sliceReader{data: buf, pos: n}
	}
	return s
}

// NewSourceFromReader creates a Source pulling from r on demand.
func NewSourceFromReader(r io.Reader) *Source {
	return &Source{r: r}
}

// sliceReader lets a plain memory slice masquerade as an io.Reader once
// the initial refill window has been exhausted, so NewSourceFromBytes
// can use the same refill path as NewSourceFromReader beyond 128 bytes.
type sliceReader struct {
	data []byte
	pos  int
}

func (s *sliceReader) Read(p []byte) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += n
	return n, nil
}

// ReadByte reads a single byte. ok is false once the source is
// permanently exhausted.
func (s *Source) ReadByte() (b byte, ok bool) {
	if s.cur < s.end {
		b = s.buf[s.cur]
		s.cur++
		return b, true
	}
	if s.exhausted || s.r == nil {
		return 0, false
	}
	s.refill()
	if s.cur >= s.end {
		return 0, false
	}
	b = s.buf[s.cur]
	s.cur++
	return b, true
}

func (s *Source) refill() {
	n, _ := io.ReadFull(s.r, s.buf[:])
	if n == 0 {
		s.exhausted = true
		s.cur, s.end = 0, 0
		return
	}
	s.consumed += int64(n)
	s.cur, s.end = 0, n
}

// ReadUint16BE reads two bytes, combining them MSB-first.
func (s *Source) ReadUint16BE() (v uint16, ok bool) {
	b0, ok0 := s.ReadByte()
	b1, ok1 := s.ReadByte()
	if !ok0 || !ok1 {
		return 0, false
	}
	return uint16(b0)<<8 | uint16(b1), true
}

// ReadUint32BE reads four bytes, combining them MSB-first.
func (s *Source) ReadUint32BE() (v uint32, ok bool) {
	b0, ok0 := s.ReadByte()
	b1, ok1 := s.ReadByte()
	b2, ok2 := s.ReadByte()
	b3, ok3 := s.ReadByte()
	if !ok0 || !ok1 || !ok2 || !ok3 {
		return 0, false
	}
	return uint32(b0)<<24 | uint32(b1)<<16 | uint32(b2)<<8 | uint32(b3), true
}

// Rewind restores the cursor to the start of the source. Only
// meaningful before more than one refill window (128 bytes) has been
// consumed — used for "sniff the header, then decode from scratch".
func (s *Source) Rewind() {
	if s.origBuf != nil {
		n := copy(s.buf[:], s.origBuf)
		s.cur, s.end = 0, n
		s.exhausted = false
		if r, ok := s.r.(*sliceReader); ok {
			r.pos = n
		}
		return
	}
	// Reader-backed sources can only rewind within the still-buffered
	// window; this mirrors the spec's "only meaningful after <=128
	// bytes consumed" contract exactly by doing nothing beyond that.
	s.cur = 0
}

// Consumed reports how many bytes have been logically used so far:
// bytes loaded into the refill buffer (from the slice or the reader)
// minus whatever's still sitting unread in it.
func (s *Source) Consumed() int64 {
	return s.consumed - int64(s.end-s.cur)
}

// Unread reports how many bytes are sitting in the refill buffer past
// the read cursor. A caller holding an io.Seeker on the same reader
// this Source pulls from can Seek(-Unread(), io.SeekCurrent) to
// reposition the file to exactly one byte past the last consumed QOI
// byte, matching the spec's file-cursor contract.
func (s *Source) Unread() int64 {
	return int64(s.end - s.cur)
}
