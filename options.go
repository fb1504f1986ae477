package ebustl

import "github.com/asticode/go-astikit"

// ReaderOption configures a Reader, mirroring the teacher's
// opts ...func(*Demuxer) functional-options shape.
type ReaderOption func(*Reader)

// WithFPSOverride overrides the GSI-detected frame rate without
// touching DFC (§6 Configuration). fps must be positive.
func WithFPSOverride(fps float64) ReaderOption {
	return func(r *Reader) {
		if fps > 0 {
			r.fpsOverride = fps
		}
	}
}

// WithLogger attaches a logger to a Reader; diagnostics are both logged
// (if set) and appended to the result's diagnostic slice.
func WithLogger(l astikit.StdLogger) ReaderOption {
	return func(r *Reader) { r.l = astikit.AdaptStdLogger(l) }
}

// WithDiagnosticSink registers a callback invoked for every Diagnostic
// as it is produced, in addition to the slice Read returns — the
// "escalate to error" half of the warning channel (§6).
func WithDiagnosticSink(sink func(Diagnostic)) ReaderOption {
	return func(r *Reader) { r.sink = sink }
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithExtractorLogger attaches a logger to an Extractor.
func WithExtractorLogger(l astikit.StdLogger) ExtractorOption {
	return func(e *Extractor) { e.l = astikit.AdaptStdLogger(l) }
}
