package mp3info

// Option configures parsing behavior.
//
// Options use the functional options pattern:
//
//	md, err := mp3info.Open("song.mp3",
//	    mp3info.WithStrictParsing(),
//	    mp3info.WithMaxPictureSize(10*1024*1024),
//	)
type Option func(*parseOptions)

// parseOptions holds configuration for a parse call.
type parseOptions struct {
	strictParsing  bool // Fail on any warning
	ignoreWarnings bool // Suppress all warnings
	skipLegacy     bool // Don't look for an ID3v1 trailer
	skipContainer  bool // Don't look for an ID3v2 container
	maxPictureSize int  // Maximum picture size in bytes (0 = no limit)
}

// defaultOptions returns the default configuration.
func defaultOptions() *parseOptions {
	return &parseOptions{}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, mp3info keeps parsing when it encounters issues like a
// malformed frame or an unknown encoding, returning warnings alongside
// the parsed data. With strict parsing enabled, any warning becomes a
// fatal error.
func WithStrictParsing() Option {
	return func(o *parseOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// Non-fatal issues are normally collected in Metadata.Warnings. This
// option discards them.
func WithIgnoreWarnings() Option {
	return func(o *parseOptions) {
		o.ignoreWarnings = true
	}
}

// WithoutLegacyTag skips the ID3v1 trailer entirely, so the result
// reflects the ID3v2 container alone.
func WithoutLegacyTag() Option {
	return func(o *parseOptions) {
		o.skipLegacy = true
	}
}

// WithoutContainerTag skips the ID3v2 container entirely, so the
// result reflects the ID3v1 trailer alone.
func WithoutContainerTag() Option {
	return func(o *parseOptions) {
		o.skipContainer = true
	}
}

// WithMaxPictureSize sets a size limit for embedded pictures.
//
// A picture whose data exceeds the limit (in bytes) is dropped with a
// warning. This protects against excessively large embedded images.
// Default is 0 (no limit).
func WithMaxPictureSize(bytes int) Option {
	return func(o *parseOptions) {
		o.maxPictureSize = bytes
	}
}
