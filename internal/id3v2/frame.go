package id3v2

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"

	binutil "github.com/arafatamim/mp3info/internal/binary"
)

// Frame-level flag bits in the second flag byte.
const (
	// ID3v2.3 format flags
	v3FlagCompressed = 0x80
	v3FlagEncrypted  = 0x40
	v3FlagGrouped    = 0x20

	// ID3v2.4 format flags
	v4FlagGrouped    = 0x40
	v4FlagCompressed = 0x08
	v4FlagEncrypted  = 0x04
	v4FlagUnsync     = 0x02
	v4FlagDataLength = 0x01
)

// frameLayout captures how one revision lays out its frame headers.
// Selected once per tag instead of checking the version inside the loop.
type frameLayout struct {
	headerSize int
	idSize     int
	// size decodes the declared payload size from the header bytes
	size func(hdr []byte) (uint32, error)
	// flags extracts the per-frame flags (zero for 2.2)
	flags func(hdr []byte) uint16
}

func layoutFor(version byte) frameLayout {
	switch version {
	case 2:
		return frameLayout{
			headerSize: 6,
			idSize:     3,
			size: func(hdr []byte) (uint32, error) {
				return uint32(hdr[3])<<16 | uint32(hdr[4])<<8 | uint32(hdr[5]), nil
			},
			flags: func([]byte) uint16 { return 0 },
		}
	case 4:
		return frameLayout{
			headerSize: 10,
			idSize:     4,
			size: func(hdr []byte) (uint32, error) {
				return binutil.DecodeSynchsafe(hdr[4:8])
			},
			flags: func(hdr []byte) uint16 { return binary.BigEndian.Uint16(hdr[8:10]) },
		}
	default: // 3
		return frameLayout{
			headerSize: 10,
			idSize:     4,
			size: func(hdr []byte) (uint32, error) {
				return binary.BigEndian.Uint32(hdr[4:8]), nil
			},
			flags: func(hdr []byte) uint16 { return binary.BigEndian.Uint16(hdr[8:10]) },
		}
	}
}

// validFrameID reports whether every identifier character is in the
// A-Z0-9 set required by the format.
func validFrameID(id string) bool {
	for _, c := range id {
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

// isPadding reports an all-zero frame identifier, which marks the
// start of the padding region.
func isPadding(hdr []byte, idSize int) bool {
	for _, b := range hdr[:idSize] {
		if b != 0 {
			return false
		}
	}
	return true
}

// readFrames walks the tag body sequentially, decoding frames until the
// declared size is exhausted or padding begins. A frame with a zero or
// out-of-bounds declared size is skipped with a warning; parsing of the
// following bytes continues.
func readFrames(body []byte, header Header, tag *Tag) {
	lay := layoutFor(header.Version)

	offset := 0
	for offset+lay.headerSize <= len(body) {
		hdr := body[offset : offset+lay.headerSize]

		if isPadding(hdr, lay.idSize) {
			break
		}

		id := string(hdr[:lay.idSize])
		pos := int64(headerSize + offset)
		if !validFrameID(id) {
			tag.warn("frame", fmt.Sprintf("invalid frame identifier %q, stopping", id), pos)
			break
		}

		size, err := lay.size(hdr)
		if err != nil {
			// Without a trustworthy size there is no way to resync
			tag.warn("frame", fmt.Sprintf("frame %s: %v, stopping", id, err), pos)
			break
		}
		flags := lay.flags(hdr)
		offset += lay.headerSize

		if size == 0 {
			tag.warn("frame", fmt.Sprintf("frame %s declares zero size, skipping", id), pos)
			continue
		}
		if int64(size) > int64(len(body)-offset) {
			// Rejected, not silently truncated; later frames may still
			// follow within bounds
			tag.warn("frame", fmt.Sprintf("frame %s declares %d bytes with %d remaining, skipping", id, size, len(body)-offset), pos)
			continue
		}

		data := body[offset : offset+int(size)]
		offset += int(size)

		data, ok := applyFrameFlags(id, data, flags, header.Version, tag, pos)
		if !ok {
			tag.Frames = append(tag.Frames, &RawFrame{ID: CanonicalID(id, header.Version), Data: data})
			continue
		}

		decoded, err := decodeFrame(id, data, header.Version)
		if err != nil {
			// One undecodable frame degrades to raw, the loop continues
			tag.warn("frame", fmt.Sprintf("frame %s: %v", id, err), pos)
			decoded = &RawFrame{ID: CanonicalID(id, header.Version), Data: data}
		}
		tag.Frames = append(tag.Frames, decoded)
	}
}

// applyFrameFlags undoes per-frame transformations (grouping byte,
// unsynchronization, data length indicator, zlib compression) declared
// by the frame's format flags. Returns ok=false when the payload cannot
// be made readable (encryption, broken compression); the caller keeps
// the frame as raw bytes.
func applyFrameFlags(id string, data []byte, flags uint16, version byte, tag *Tag, pos int64) ([]byte, bool) {
	if version == 2 || flags&0xFF == 0 {
		return data, true
	}
	format := byte(flags)

	var compressed, encrypted, grouped, unsync, dataLength bool
	if version == 3 {
		compressed = format&v3FlagCompressed != 0
		encrypted = format&v3FlagEncrypted != 0
		grouped = format&v3FlagGrouped != 0
	} else {
		grouped = format&v4FlagGrouped != 0
		compressed = format&v4FlagCompressed != 0
		encrypted = format&v4FlagEncrypted != 0
		unsync = format&v4FlagUnsync != 0
		dataLength = format&v4FlagDataLength != 0
	}

	// 2.3 orders the extra bytes: decompressed size, encryption method,
	// group id. 2.4 orders: group id, encryption method, data length.
	if version == 3 {
		if compressed {
			if len(data) < 4 {
				tag.warn("frame", fmt.Sprintf("frame %s: compressed frame too short", id), pos)
				return data, false
			}
			data = data[4:] // decompressed size, zlib stream carries its own
		}
		if encrypted {
			tag.warn("frame", fmt.Sprintf("frame %s is encrypted, keeping raw bytes", id), pos)
			return data, false
		}
		if grouped && len(data) >= 1 {
			data = data[1:]
		}
	} else {
		if grouped && len(data) >= 1 {
			data = data[1:]
		}
		if encrypted {
			tag.warn("frame", fmt.Sprintf("frame %s is encrypted, keeping raw bytes", id), pos)
			return data, false
		}
		if dataLength {
			if len(data) < 4 {
				tag.warn("frame", fmt.Sprintf("frame %s: data length indicator truncated", id), pos)
				return data, false
			}
			data = data[4:]
		}
		if unsync {
			data = deunsync(data)
		}
	}

	if compressed {
		inflated, err := inflate(data)
		if err != nil {
			tag.warn("frame", fmt.Sprintf("frame %s: zlib inflate failed: %v", id, err), pos)
			return data, false
		}
		data = inflated
	}

	return data, true
}

// inflate decompresses a zlib stream.
func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
