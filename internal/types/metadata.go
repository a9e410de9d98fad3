// Package types provides the core data structures for ID3 metadata.
//
// This package defines the Metadata, Comment, and Picture types that
// represent the aggregated view over ID3v1 and ID3v2 tags, plus the
// error taxonomy shared by the parsing packages.
package types

import (
	"iter"
	"slices"
)

// Comment represents a comment (COMM) or lyrics (USLT) entry.
//
// Both frame kinds share the same wire shape: a 3-letter language code,
// a short content descriptor, and the text body. They are distinguished
// only by which Metadata list they land in.
type Comment struct {
	// ISO-639-2 language code, e.g. "eng" (empty for ID3v1 comments)
	Language string

	// Short content description (often empty)
	Description string

	// The comment or lyrics text
	Text string
}

// Metadata is the aggregated, user-facing view over all tags found in
// one input. It is constructed once per parse call and not mutated
// afterwards by the library.
//
// When a field is present in both an ID3v2 container and an ID3v1
// trailer, the ID3v2 value wins; ID3v1 only fills gaps. Lyrics and
// pictures can only come from ID3v2 frames.
//
// Text frames may carry several null-separated values. The common
// fields expose the first value; the complete list is retained and
// reachable through Get/GetFirst/All. This is a deliberate policy
// choice, not something the format itself prescribes.
type Metadata struct {
	Title       string
	Artist      string
	Album       string
	AlbumArtist string

	Year        int
	TrackNumber int
	TrackTotal  int

	// Genres holds all genre values; Genre() returns the first.
	Genres []string

	// Comments from COMM frames (and the ID3v1 comment field, last)
	Comments []Comment

	// Lyrics from USLT frames
	Lyrics []Comment

	// Embedded pictures from APIC/PIC frames
	Pictures []Picture

	// Warnings encountered during parsing (non-fatal issues)
	Warnings []Warning

	// HasID3v1 reports whether an ID3v1 trailer tag was found.
	HasID3v1 bool

	// ID3v2Version is the container tag's major version (2, 3 or 4),
	// or 0 when no container tag was found.
	ID3v2Version byte

	values map[string][]string
	frames map[string][][]byte
}

// Genre returns the first genre value, or "" when none is set.
func (m *Metadata) Genre() string {
	if len(m.Genres) == 0 {
		return ""
	}
	return m.Genres[0]
}

// All returns an iterator over every decoded text value, keyed by the
// frame identifier it came from (normalized to the ID3v2.3/2.4
// spelling, e.g. "TIT2"). User-defined text frames (TXXX) are keyed as
// "TXXX:<description>".
//
// Example:
//
//	for key, values := range md.All() {
//		fmt.Printf("%s: %v\n", key, values)
//	}
//
// The returned iterator is read-only. Do not modify the yielded slices.
func (m *Metadata) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		if m.values == nil {
			return
		}
		for key, values := range m.values {
			if !yield(key, values) {
				return
			}
		}
	}
}

// Get retrieves all values stored under a frame identifier.
//
// Returns nil if the key doesn't exist. For the common fields, prefer
// the struct fields (Title, Artist, ...) which already apply the
// first-value policy.
func (m *Metadata) Get(key string) []string {
	if m.values == nil {
		return nil
	}
	values := m.values[key]
	if values == nil {
		return nil
	}
	return slices.Clone(values) // Return a copy to prevent modification
}

// GetFirst retrieves the first value for a frame identifier, or "" when
// the key doesn't exist.
func (m *Metadata) GetFirst(key string) string {
	if m.values == nil {
		return ""
	}
	values := m.values[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Set records text values under a frame identifier. If values is empty,
// the key is removed.
func (m *Metadata) Set(key string, values ...string) {
	if m.values == nil {
		m.values = make(map[string][]string)
	}
	if len(values) == 0 {
		delete(m.values, key)
		return
	}
	m.values[key] = slices.Clone(values)
}

// AddRawFrame preserves an undecoded frame payload under its identifier.
// Unknown frames are never dropped silently so inspection tooling can
// still report their presence.
func (m *Metadata) AddRawFrame(id string, data []byte) {
	if m.frames == nil {
		m.frames = make(map[string][][]byte)
	}
	m.frames[id] = append(m.frames[id], data)
}

// RawFrames returns the raw payloads of frames that were not decoded
// into a structured form, keyed by frame identifier.
//
// The returned map should not be modified.
func (m *Metadata) RawFrames() map[string][][]byte {
	return m.frames
}
