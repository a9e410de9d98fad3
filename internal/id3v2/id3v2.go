// Package id3v2 parses the frame-based ID3v2 container tag found at
// the start of an MP3 file, across revisions 2.2, 2.3 and 2.4.
//
// The revisions differ in frame header shape (6 bytes with 3-char IDs
// in 2.2, 10 bytes with 4-char IDs in 2.3/2.4) and in size encoding
// (plain big-endian in 2.2/2.3, synchsafe in 2.4). Those differences
// are confined to a per-revision frame layout selected once after the
// header is read.
//
// Parsing is partial-failure tolerant: one malformed frame is skipped
// with a recorded warning and never aborts extraction of the rest of
// the tag. Only a failure to establish the header itself is fatal.
package id3v2

import (
	"fmt"

	binutil "github.com/arafatamim/mp3info/internal/binary"
	"github.com/arafatamim/mp3info/internal/types"
)

// Tag is a parsed ID3v2 container: its header, the decoded frames in
// tag order, and any warnings collected along the way.
type Tag struct {
	Header   Header
	Frames   []DecodedFrame
	Warnings []types.Warning
}

func (t *Tag) warn(stage, message string, offset int64) {
	t.Warnings = append(t.Warnings, types.Warning{
		Stage:   stage,
		Message: message,
		Offset:  offset,
	})
}

// Read parses the container tag from the head of the byte source.
//
// Returns (nil, nil) when no "ID3" marker is present. Header-level
// problems (unsupported version, non-synchsafe size) are returned as
// errors; everything below the header degrades to warnings on the
// returned Tag.
func Read(sr *binutil.SafeReader) (*Tag, error) {
	header, err := readHeader(sr)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, nil
	}

	tag := &Tag{Header: *header}

	if header.Compressed() {
		// 2.2 defines no compression scheme; the body is unreadable
		tag.warn("id3v2", "ID3v2.2 compression bit set, ignoring tag body", 0)
		return tag, nil
	}

	// The declared size bounds all subsequent reads
	bodySize := int64(header.Size)
	if headerSize+bodySize > sr.Size() {
		bodySize = sr.Size() - headerSize
		tag.warn("id3v2", fmt.Sprintf("declared tag size %d exceeds input, truncating to %d", header.Size, bodySize), 0)
	}
	if bodySize <= 0 {
		return tag, nil
	}

	body := make([]byte, bodySize)
	if err := sr.ReadAt(body, headerSize, "ID3v2 tag body"); err != nil {
		return nil, err
	}

	// 2.2/2.3 unsynchronize the whole body; 2.4 marks frames
	// individually. Reversal must precede frame parsing because sizes
	// count de-unsynchronized bytes.
	if header.Unsynchronized() && header.Version < 4 {
		body = deunsync(body)
	}

	body = skipExtendedHeader(body, *header, tag)
	readFrames(body, *header, tag)

	return tag, nil
}
