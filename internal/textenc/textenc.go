// Package textenc decodes ID3v2 tagged text.
//
// Frame text is prefixed by a one-byte encoding selector. Four
// encodings are defined: ISO-8859-1, UTF-16 with BOM, UTF-16BE
// (ID3v2.4 only) and UTF-8 (ID3v2.4 only). Strings are terminated by a
// single 0x00 for the single-byte encodings and by 0x00 0x00 for the
// UTF-16 variants; a missing terminator means the string runs to the
// end of the payload.
package textenc

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/arafatamim/mp3info/internal/types"
)

// Text encoding selector bytes as defined by ID3v2.
const (
	ISO8859_1 byte = iota
	UTF16
	UTF16BE
	UTF8
)

// Decode converts a tagged byte run into a string for the given
// encoding selector. The trailing terminator and any null padding are
// trimmed first; their absence is not an error.
//
// Malformed sequences (broken surrogate pairs, invalid UTF-8) degrade
// to replacement characters rather than failing the decode. An
// encoding byte outside the defined set fails with
// *types.UnsupportedEncodingError.
//
// A fresh decoder is built per call: the x/text UTF-16 transformer
// carries BOM/endianness state across Transform calls, so a shared
// decoder would make concurrent parses race on it.
func Decode(data []byte, enc byte) (string, error) {
	data = trimTrailing(data, enc)
	if len(data) == 0 {
		return "", validate(enc)
	}

	switch enc {
	case ISO8859_1:
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return string(data), nil
		}
		return string(decoded), nil

	case UTF16:
		// BOM selects endianness, big-endian assumed when absent
		decoded, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder().Bytes(data)
		if err != nil {
			return strings.ToValidUTF8(string(decoded), "�"), nil
		}
		return string(decoded), nil

	case UTF16BE:
		decoded, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
		if err != nil {
			return strings.ToValidUTF8(string(decoded), "�"), nil
		}
		return string(decoded), nil

	case UTF8:
		return strings.ToValidUTF8(string(data), "�"), nil

	default:
		return "", &types.UnsupportedEncodingError{Encoding: enc}
	}
}

// validate reports whether enc is a defined encoding selector.
func validate(enc byte) error {
	if enc > UTF8 {
		return &types.UnsupportedEncodingError{Encoding: enc}
	}
	return nil
}

// TerminatorSize returns the null-terminator width for the encoding:
// one byte for the single-byte encodings, two for the UTF-16 variants.
func TerminatorSize(enc byte) int {
	switch enc {
	case UTF16, UTF16BE:
		return 2
	default:
		return 1
	}
}

// FindTerminator returns the index of the first null terminator for
// the encoding, or -1 when none is present. For the double-byte
// encodings the terminator must be aligned to a code unit boundary.
func FindTerminator(data []byte, enc byte) int {
	switch enc {
	case UTF16, UTF16BE:
		for i := 0; i+1 < len(data); i += 2 {
			if data[i] == 0 && data[i+1] == 0 {
				return i
			}
		}
		return -1
	default:
		for i := range data {
			if data[i] == 0 {
				return i
			}
		}
		return -1
	}
}

// Cut splits data at the first terminator, returning the bytes before
// it and the bytes after it. When no terminator is present the whole
// input is the head and found is false (implicit termination at the
// payload boundary).
func Cut(data []byte, enc byte) (head, rest []byte, found bool) {
	idx := FindTerminator(data, enc)
	if idx < 0 {
		return data, nil, false
	}
	return data[:idx], data[idx+TerminatorSize(enc):], true
}

// Split slices a payload into its null-separated values. Trailing
// empty values produced by the final terminator are dropped.
func Split(data []byte, enc byte) [][]byte {
	var parts [][]byte
	rest := data
	for len(rest) > 0 {
		head, tail, found := Cut(rest, enc)
		parts = append(parts, head)
		if !found {
			break
		}
		rest = tail
	}
	for len(parts) > 1 && len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// trimTrailing removes the trailing terminator and null padding,
// respecting code unit width.
func trimTrailing(data []byte, enc byte) []byte {
	switch enc {
	case UTF16, UTF16BE:
		for len(data) >= 2 && data[len(data)-2] == 0 && data[len(data)-1] == 0 {
			data = data[:len(data)-2]
		}
	default:
		for len(data) >= 1 && data[len(data)-1] == 0 {
			data = data[:len(data)-1]
		}
	}
	return data
}
