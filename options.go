package qoi

import "sync/atomic"

// ErrorDetail selects how much context wrapped errors carry. This
// replaces the spec's three build-time string modes with a runtime
// choice, since Go doesn't have the preprocessor-gated string tables
// the original C API uses.
type ErrorDetail int

const (
	// ErrorDetailBrief wraps just the sentinel error, no extra text.
	ErrorDetailBrief ErrorDetail = iota
	// ErrorDetailVerbose appends the text of the underlying
	// internal/codec error to the sentinel.
	ErrorDetailVerbose
	// ErrorDetailNone returns the bare sentinel with %w stripped,
	// for callers who forward errors across a boundary that discards
	// wrapped detail anyway.
	ErrorDetailNone
)

// Colorspace is the QOI header's informational colorspace tag. It
// never changes decoding; it only round-trips through Encode/Decode.
type Colorspace uint8

const (
	ColorspaceSRGB   Colorspace = 0
	ColorspaceLinear Colorspace = 1
)

// DefaultMaxDimensions is the spec's default per-axis dimension limit
// (2^24), chosen so that only deliberately pathological aspect ratios
// can exhaust memory before the overflow check even runs.
const DefaultMaxDimensions = 1 << 24

// Options configures a single Decode*/Encode call. The zero value
// resolves every field to its documented default; it is never
// necessary to construct one field-by-field.
//
// This replaces the spec's global mutable knobs (flip toggles,
// colorspace tag, gamma/scale, each with a thread-local override) with
// an explicit value threaded through the call — see SPEC_FULL.md §5.
// Go's goroutines have no thread-local storage, so "read at the start
// of the call" becomes simply "the caller's own Options value",
// which is already race-free without any internal locking.
type Options struct {
	// FlipOnLoad flips the image vertically immediately after decode.
	FlipOnLoad bool
	// FlipOnWrite flips row iteration order during Encode, without
	// mutating the caller's pixel buffer.
	FlipOnWrite bool
	// Colorspace tags the encoded header. Zero value is ColorspaceSRGB.
	Colorspace Colorspace
	// Gamma is the LDR->HDR gamma exponent used by DecodeHDR. Zero
	// value resolves to 2.2.
	Gamma float64
	// Scale multiplies the gamma-mapped value in DecodeHDR. Zero value
	// resolves to 1.0.
	Scale float64
	// MaxDimensions bounds width and height individually. Zero value
	// resolves to DefaultMaxDimensions.
	MaxDimensions uint32
	// ErrorDetail controls how much context wrapped errors carry.
	ErrorDetail ErrorDetail
}

// resolved fills in zero-value fields with their documented defaults.
// Called once at the top of every Decode*/Encode entry point.
func (o Options) resolved() Options {
	if o.Gamma == 0 {
		o.Gamma = 2.2
	}
	if o.Scale == 0 {
		o.Scale = 1.0
	}
	if o.MaxDimensions == 0 {
		o.MaxDimensions = DefaultMaxDimensions
	}
	return o
}

var defaultOptions atomic.Pointer[Options]

// DefaultOptions returns the current process-wide default Options,
// following mrjoshuak-go-jpeg2000's and deepteams-webp's own
// DefaultOptions() fallback: a caller builds its Options starting from
// this value and overrides only the fields it cares about, rather than
// constructing a bare Options{} and leaving every field at its
// resolved() zero-value default. cmd/qoi's enc/dec commands use it
// this way; SetDefaultOptions lets a process change that starting
// point process-wide.
func DefaultOptions() Options {
	if p := defaultOptions.Load(); p != nil {
		return *p
	}
	return Options{}.resolved()
}

// SetDefaultOptions replaces the process-wide default. Safe to call
// concurrently with in-flight decodes/encodes: Decode*/Encode never
// read the process-wide default themselves (only DefaultOptions does),
// so a call in progress keeps the Options it was given.
func SetDefaultOptions(o Options) {
	resolved := o.resolved()
	defaultOptions.Store(&resolved)
}
