package types

import "fmt"

// OutOfBoundsError is returned when attempting to read beyond the byte
// source's bounds. At the tag level this usually means truncated input;
// at the frame level it is downgraded to a warning and the frame skipped.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	prefix := ""
	if e.Path != "" {
		prefix = e.Path + ": "
	}
	if e.Offset >= e.Size {
		return fmt.Sprintf("%soffset %d out of bounds (input size: %d) while reading %s",
			prefix, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%sread of %d bytes at offset %d would exceed input size %d while reading %s",
		prefix, e.Length, e.Offset, e.Size, e.What)
}

// UnsupportedVersionError is returned when an ID3v2 tag declares a major
// version outside the supported set {2, 3, 4}.
type UnsupportedVersionError struct {
	Path    string
	Version byte
}

func (e *UnsupportedVersionError) Error() string {
	prefix := ""
	if e.Path != "" {
		prefix = e.Path + ": "
	}
	return fmt.Sprintf("%sunsupported ID3v2 version: 2.%d", prefix, e.Version)
}

// InvalidSynchsafeError is returned when a synchsafe integer has a byte
// with its high bit set. By construction that bit must always be zero.
type InvalidSynchsafeError struct {
	Bytes [4]byte
}

func (e *InvalidSynchsafeError) Error() string {
	return fmt.Sprintf("invalid synchsafe integer % X: high bit set", e.Bytes[:])
}

// UnsupportedEncodingError is returned for a text encoding byte outside
// the four defined ID3v2 encodings.
type UnsupportedEncodingError struct {
	Encoding byte
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("unsupported text encoding %#04x", e.Encoding)
}

// NoTagError is returned when the input carries neither an ID3v1 trailer
// nor an ID3v2 container, or is too short to hold any tag region.
type NoTagError struct {
	Path string
}

func (e *NoTagError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: no ID3v1 or ID3v2 tag found", e.Path)
	}
	return "no ID3v1 or ID3v2 tag found"
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings indicate problems that don't prevent metadata extraction but
// may indicate corrupted or unusual data. Examples include:
//   - A frame declaring a size beyond the tag boundary
//   - An unreadable encoding byte inside one frame
//   - An extended header that could not be parsed
//
// Warnings are collected in Metadata.Warnings during parsing.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "id3v1", "id3v2", "frame", "picture"

	// Warning message
	Message string

	// Byte offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
