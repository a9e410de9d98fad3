package id3v2

import (
	"fmt"
	"strings"

	"github.com/arafatamim/mp3info/internal/textenc"
	"github.com/arafatamim/mp3info/internal/types"
)

// DecodedFrame is the closed set of semantic frame kinds. Exactly one
// variant applies per frame; unrecognized identifiers map to RawFrame
// rather than being rejected, preserving forward compatibility.
type DecodedFrame interface {
	// FrameID returns the frame identifier, normalized to the
	// ID3v2.3/2.4 spelling (2.2's "TT2" becomes "TIT2").
	FrameID() string
}

// TextFrame is a standard text information frame (TIT2, TPE1, ...).
// A payload may carry several null-separated values.
type TextFrame struct {
	ID     string
	Values []string
}

func (f *TextFrame) FrameID() string { return f.ID }

// Text returns the first value, the one exposed as a common field.
func (f *TextFrame) Text() string {
	if len(f.Values) == 0 {
		return ""
	}
	return f.Values[0]
}

// UserTextFrame is a user-defined text frame (TXXX): a described,
// free-form key/value pair.
type UserTextFrame struct {
	Description string
	Value       string
}

func (f *UserTextFrame) FrameID() string { return "TXXX" }

// CommentFrame is a comment (COMM) or unsynchronized lyrics (USLT)
// frame. Both share the same shape and are decoded identically,
// distinguished by identifier.
type CommentFrame struct {
	ID          string
	Language    string
	Description string
	Text        string
}

func (f *CommentFrame) FrameID() string { return f.ID }

// PictureFrame is an attached picture (APIC, 2.2's PIC).
type PictureFrame struct {
	Picture types.Picture
}

func (f *PictureFrame) FrameID() string { return "APIC" }

// RawFrame preserves the payload of a frame that was not (or could not
// be) decoded into a structured form.
type RawFrame struct {
	ID   string
	Data []byte
}

func (f *RawFrame) FrameID() string { return f.ID }

// v22IDs maps ID3v2.2 3-character identifiers to their 2.3/2.4
// spellings.
var v22IDs = map[string]string{
	"BUF": "RBUF", "CNT": "PCNT", "COM": "COMM", "CRA": "AENC",
	"ETC": "ETCO", "GEO": "GEOB", "IPL": "IPLS", "LNK": "LINK",
	"MCI": "MCDI", "MLL": "MLLT", "PIC": "APIC", "POP": "POPM",
	"REV": "RVRB", "SLT": "SYLT", "STC": "SYTC", "TAL": "TALB",
	"TBP": "TBPM", "TCM": "TCOM", "TCO": "TCON", "TCR": "TCOP",
	"TDA": "TDAT", "TDY": "TDLY", "TEN": "TENC", "TFT": "TFLT",
	"TIM": "TIME", "TKE": "TKEY", "TLA": "TLAN", "TLE": "TLEN",
	"TMT": "TMED", "TOA": "TOPE", "TOF": "TOFN", "TOL": "TOLY",
	"TOR": "TORY", "TOT": "TOAL", "TP1": "TPE1", "TP2": "TPE2",
	"TP3": "TPE3", "TP4": "TPE4", "TPA": "TPOS", "TPB": "TPUB",
	"TRC": "TSRC", "TRD": "TRDA", "TRK": "TRCK", "TSI": "TSIZ",
	"TSS": "TSSE", "TT1": "TIT1", "TT2": "TIT2", "TT3": "TIT3",
	"TXT": "TEXT", "TXX": "TXXX", "TYE": "TYER", "ULT": "USLT",
}

// CanonicalID normalizes a frame identifier to its 2.3/2.4 spelling.
// Unmapped 2.2 identifiers are returned unchanged.
func CanonicalID(id string, version byte) string {
	if version == 2 {
		if mapped, ok := v22IDs[id]; ok {
			return mapped
		}
	}
	return id
}

// decodeFrame dispatches on the (normalized) identifier. A failure
// inside one frame returns an error; the caller degrades the frame to
// RawFrame and keeps going.
func decodeFrame(id string, data []byte, version byte) (DecodedFrame, error) {
	cid := CanonicalID(id, version)

	switch {
	case cid == "TXXX":
		return decodeUserTextFrame(data)
	case cid == "COMM" || cid == "USLT":
		return decodeCommentFrame(cid, data)
	case cid == "APIC":
		return decodePictureFrame(data, version)
	case strings.HasPrefix(cid, "T"):
		return decodeTextFrame(cid, data)
	default:
		return &RawFrame{ID: cid, Data: data}, nil
	}
}

// decodeTextFrame parses [encoding][text], where text may hold several
// null-separated values.
func decodeTextFrame(id string, data []byte) (DecodedFrame, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("text frame too short")
	}

	enc := data[0]
	var values []string
	for _, part := range textenc.Split(data[1:], enc) {
		text, err := textenc.Decode(part, enc)
		if err != nil {
			return nil, err
		}
		if text != "" {
			values = append(values, text)
		}
	}

	return &TextFrame{ID: id, Values: values}, nil
}

// decodeUserTextFrame parses [encoding][description\0][value].
func decodeUserTextFrame(data []byte) (DecodedFrame, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("TXXX frame too short")
	}

	enc := data[0]
	descBytes, valueBytes, _ := textenc.Cut(data[1:], enc)

	description, err := textenc.Decode(descBytes, enc)
	if err != nil {
		return nil, err
	}
	value, err := textenc.Decode(valueBytes, enc)
	if err != nil {
		return nil, err
	}

	return &UserTextFrame{Description: description, Value: value}, nil
}

// decodeCommentFrame parses [encoding][language(3)][description\0][text],
// the shape shared by COMM and USLT.
func decodeCommentFrame(id string, data []byte) (DecodedFrame, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%s frame too short", id)
	}

	enc := data[0]
	language := strings.TrimRight(string(data[1:4]), "\x00")

	descBytes, textBytes, found := textenc.Cut(data[4:], enc)
	if !found {
		// No terminator: the whole payload is the text
		text, err := textenc.Decode(descBytes, enc)
		if err != nil {
			return nil, err
		}
		return &CommentFrame{ID: id, Language: language, Text: text}, nil
	}

	description, err := textenc.Decode(descBytes, enc)
	if err != nil {
		return nil, err
	}
	text, err := textenc.Decode(textBytes, enc)
	if err != nil {
		return nil, err
	}

	return &CommentFrame{ID: id, Language: language, Description: description, Text: text}, nil
}

// decodePictureFrame parses an attached picture.
//
// 2.3/2.4 APIC: [encoding][MIME\0][picture type][description\0][data]
// 2.2 PIC:      [encoding][format(3)][picture type][description\0][data]
//
// The image bytes are passed through verbatim; text decoding never
// touches the payload.
func decodePictureFrame(data []byte, version byte) (DecodedFrame, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("picture frame too short")
	}

	enc := data[0]
	if err := validEncoding(enc); err != nil {
		return nil, err
	}
	pos := 1

	var mimeType string
	if version == 2 {
		// 2.2 uses a fixed 3-character image format code
		mimeType = formatToMIME(string(data[pos : pos+3]))
		pos += 3
	} else {
		// MIME type is always ISO-8859-1, single-byte terminated
		idx := textenc.FindTerminator(data[pos:], textenc.ISO8859_1)
		if idx < 0 {
			return nil, fmt.Errorf("picture MIME type not terminated")
		}
		mimeType = string(data[pos : pos+idx])
		pos += idx + 1
		// Some writers put bare format codes ("JPG") where a MIME
		// string belongs
		if mimeType != "" && mimeType != "-->" && !strings.Contains(mimeType, "/") {
			mimeType = formatToMIME(mimeType)
		}
	}

	if pos >= len(data) {
		return nil, fmt.Errorf("picture frame truncated after MIME type")
	}

	pictureType := types.PictureType(data[pos])
	pos++

	descBytes, imageData, found := textenc.Cut(data[pos:], enc)
	description := ""
	if found {
		description, _ = textenc.Decode(descBytes, enc)
	} else {
		// Some writers skip the terminator; keep everything as image
		imageData = data[pos:]
	}

	if len(imageData) == 0 {
		return nil, fmt.Errorf("picture frame has no image data")
	}

	// Repair missing or legacy MIME declarations from magic bytes
	if mimeType == "" || mimeType == "-->" {
		if detected := sniffMIME(imageData); detected != "" {
			mimeType = detected
		}
	}

	return &PictureFrame{Picture: types.Picture{
		Type:        pictureType,
		MIMEType:    mimeType,
		Description: description,
		Data:        imageData,
	}}, nil
}

func validEncoding(enc byte) error {
	if enc > textenc.UTF8 {
		return &types.UnsupportedEncodingError{Encoding: enc}
	}
	return nil
}

// formatToMIME maps the 2.2 3-character image format codes to MIME.
func formatToMIME(format string) string {
	switch strings.ToUpper(strings.TrimRight(format, "\x00 ")) {
	case "JPG":
		return "image/jpeg"
	case "PNG":
		return "image/png"
	case "GIF":
		return "image/gif"
	case "BMP":
		return "image/bmp"
	default:
		return "image/" + strings.ToLower(format)
	}
}

// sniffMIME detects the image MIME type from magic bytes.
func sniffMIME(data []byte) string {
	if len(data) < 4 {
		return ""
	}

	switch {
	case data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "image/jpeg"
	case data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47:
		return "image/png"
	case data[0] == 0x47 && data[1] == 0x49 && data[2] == 0x46:
		return "image/gif"
	case data[0] == 0x42 && data[1] == 0x4D:
		return "image/bmp"
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return "image/webp"
	default:
		return ""
	}
}
