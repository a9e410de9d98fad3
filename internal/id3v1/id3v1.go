// Package id3v1 parses the legacy ID3v1 tag: a fixed 128-byte block
// appended at the end of an MP3 file, starting with the marker "TAG".
package id3v1

import (
	"strings"

	binutil "github.com/arafatamim/mp3info/internal/binary"
	"github.com/arafatamim/mp3info/internal/textenc"
)

// TagSize is the fixed size of an ID3v1 tag.
const TagSize = 128

// Tag holds the decoded fields of an ID3v1 trailer tag.
//
// All text fields are fixed-width ISO-8859-1, right-trimmed of null and
// space padding. Track is the ID3v1.1 extension: when the comment
// field's byte 28 is zero, byte 29 carries the track number.
type Tag struct {
	Title   string
	Artist  string
	Album   string
	Year    string
	Comment string
	Track   int
	Genre   byte
}

// GenreName returns the name for the tag's genre byte, or "Unknown"
// for out-of-range indexes.
func (t *Tag) GenreName() string {
	return GenreName(t.Genre)
}

// Read parses the ID3v1 tag from the last 128 bytes of the source.
//
// Returns (nil, nil) when the source is too short or the marker does
// not match: absence of a legacy tag is a normal, expected state, not
// a failure.
func Read(sr *binutil.SafeReader) (*Tag, error) {
	if sr.Size() < TagSize {
		return nil, nil
	}

	buf := make([]byte, TagSize)
	if err := sr.ReadAt(buf, sr.Size()-TagSize, "ID3v1 tag"); err != nil {
		return nil, err
	}

	if string(buf[0:3]) != "TAG" {
		return nil, nil
	}

	tag := &Tag{
		Title:  decodeField(buf[3:33]),
		Artist: decodeField(buf[33:63]),
		Album:  decodeField(buf[63:93]),
		Year:   decodeField(buf[93:97]),
		Genre:  buf[127],
	}

	// ID3v1.1: a zero byte at comment[28] marks the final byte as the
	// track number
	comment := buf[97:127]
	if comment[28] == 0 && comment[29] != 0 {
		tag.Track = int(comment[29])
		comment = comment[:28]
	}
	tag.Comment = decodeField(comment)

	return tag, nil
}

// decodeField decodes a fixed-width ISO-8859-1 field, trimming trailing
// null and space padding.
func decodeField(b []byte) string {
	text, err := textenc.Decode(b, textenc.ISO8859_1)
	if err != nil {
		return ""
	}
	return strings.TrimRight(text, " \x00")
}
