package id3v2

import (
	"encoding/binary"
	"fmt"

	binutil "github.com/arafatamim/mp3info/internal/binary"
	"github.com/arafatamim/mp3info/internal/types"
)

// headerSize is the fixed size of the ID3v2 tag header (and footer).
const headerSize = 10

// Header represents an ID3v2 tag header.
type Header struct {
	Version  byte // Major version (2, 3 or 4)
	Revision byte // Minor version
	Flags    byte
	Size     uint32 // Tag size excluding the 10-byte header, synchsafe
}

// Unsynchronized reports whether the unsynchronization flag is set.
// In revisions 2.2/2.3 it applies to the whole tag body; in 2.4 it only
// announces that every frame carries its own unsynchronization flag.
func (h Header) Unsynchronized() bool {
	return h.Flags&0x80 != 0
}

// Compressed reports the 2.2-only compression bit. The 2.2 revision
// defines no compression scheme, so a set bit makes the tag unreadable.
func (h Header) Compressed() bool {
	return h.Version == 2 && h.Flags&0x40 != 0
}

// HasExtendedHeader reports whether an extended header follows the tag
// header (revisions 2.3/2.4 only).
func (h Header) HasExtendedHeader() bool {
	return h.Version >= 3 && h.Flags&0x40 != 0
}

// Experimental reports the experimental-indicator flag (2.3/2.4).
func (h Header) Experimental() bool {
	return h.Version >= 3 && h.Flags&0x20 != 0
}

// HasFooter reports whether a 10-byte footer closes the tag (2.4 only).
// The footer is not included in Size and carries no additional data.
func (h Header) HasFooter() bool {
	return h.Version == 4 && h.Flags&0x10 != 0
}

// readHeader reads and validates the 10-byte tag header at offset 0.
//
// Returns (nil, nil) when the input is too short or does not start with
// the "ID3" marker: absence of a container tag is a normal state.
func readHeader(sr *binutil.SafeReader) (*Header, error) {
	if sr.Size() < headerSize {
		return nil, nil
	}

	buf := make([]byte, headerSize)
	if err := sr.ReadAt(buf, 0, "ID3v2 header"); err != nil {
		return nil, err
	}

	if string(buf[0:3]) != "ID3" {
		return nil, nil
	}

	version := buf[3]
	if version != 2 && version != 3 && version != 4 {
		return nil, &types.UnsupportedVersionError{Path: sr.Path(), Version: version}
	}

	// The total size is synchsafe in every revision
	size, err := binutil.DecodeSynchsafe(buf[6:10])
	if err != nil {
		return nil, err
	}

	return &Header{
		Version:  version,
		Revision: buf[4],
		Flags:    buf[5],
		Size:     size,
	}, nil
}

// skipExtendedHeader consumes the extended header from the start of the
// tag body if the header declares one, returning the remaining bytes.
// The extended header is parsed for its size only; its contents are not
// needed for field extraction.
func skipExtendedHeader(body []byte, header Header, tag *Tag) []byte {
	if !header.HasExtendedHeader() {
		return body
	}

	if len(body) < 4 {
		tag.warn("id3v2", "extended header truncated", headerSize)
		return nil
	}

	var skip int
	switch header.Version {
	case 3:
		// 2.3: plain big-endian size, excluding the size field itself
		skip = int(binary.BigEndian.Uint32(body[0:4])) + 4
	case 4:
		// 2.4: synchsafe size, including the size field
		size, err := binutil.DecodeSynchsafe(body[0:4])
		if err != nil {
			tag.warn("id3v2", "extended header size is not synchsafe", headerSize)
			return nil
		}
		skip = int(size)
	}

	if skip < 4 || skip > len(body) {
		tag.warn("id3v2", fmt.Sprintf("extended header declares %d bytes with %d available", skip, len(body)), headerSize)
		return nil
	}

	return body[skip:]
}
