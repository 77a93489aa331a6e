// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize caps documents handed to ParseAndDecode (5MB).
const DefaultMaxFileSize int64 = 5 << 20

// Option tunes a single ParseAndDecode call.
type Option func(*decodeSettings)

type decodeSettings struct {
	sizeLimit   int64
	allConcrete bool
	source      string
}

func newDecodeSettings(opts []Option) decodeSettings {
	s := decodeSettings{sizeLimit: DefaultMaxFileSize, allConcrete: true, source: "<input>"}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(s *decodeSettings) { s.sizeLimit = size }
}

// WithConcrete controls whether every field must hold a concrete value once
// unified. Documents made only of optional fields pass false.
func WithConcrete(concrete bool) Option {
	return func(s *decodeSettings) { s.allConcrete = concrete }
}

// WithFilename names the document in error messages.
func WithFilename(name string) Option {
	return func(s *decodeSettings) {
		if name != "" {
			s.source = name
		}
	}
}
