package mp3info

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arafatamim/mp3info/internal/id3v1"
	"github.com/arafatamim/mp3info/internal/id3v2"
	"github.com/arafatamim/mp3info/internal/types"
)

// aggregate merges the two tag sources into one Metadata. Container
// frames are applied first in tag order; the legacy trailer then fills
// only the fields the container left empty.
func aggregate(legacy *id3v1.Tag, container *id3v2.Tag, options *parseOptions) *Metadata {
	md := &types.Metadata{}

	if container != nil {
		md.ID3v2Version = container.Header.Version
		md.Warnings = append(md.Warnings, container.Warnings...)
		for _, frame := range container.Frames {
			applyFrame(md, frame, options)
		}
	}

	if legacy != nil {
		md.HasID3v1 = true
		fillFromLegacy(md, legacy)
	}

	return md
}

// applyFrame maps one decoded container frame onto Metadata.
func applyFrame(md *types.Metadata, frame id3v2.DecodedFrame, options *parseOptions) {
	switch f := frame.(type) {
	case *id3v2.TextFrame:
		md.Set(f.ID, f.Values...)
		applyTextFrame(md, f)

	case *id3v2.UserTextFrame:
		md.Set("TXXX:"+f.Description, f.Value)

	case *id3v2.CommentFrame:
		entry := types.Comment{
			Language:    f.Language,
			Description: f.Description,
			Text:        f.Text,
		}
		if f.ID == "USLT" {
			md.Lyrics = append(md.Lyrics, entry)
		} else {
			md.Comments = append(md.Comments, entry)
		}

	case *id3v2.PictureFrame:
		if options.maxPictureSize > 0 && len(f.Picture.Data) > options.maxPictureSize {
			md.Warnings = append(md.Warnings, types.Warning{
				Stage: "picture",
				Message: fmt.Sprintf("dropped %s picture: %d bytes exceeds limit of %d",
					f.Picture.Type, len(f.Picture.Data), options.maxPictureSize),
			})
			return
		}
		md.Pictures = append(md.Pictures, f.Picture)

	case *id3v2.RawFrame:
		md.AddRawFrame(f.ID, f.Data)
	}
}

// applyTextFrame routes well-known text frames to the common fields.
// Multi-value frames contribute their first value, except TCON, which
// keeps the full genre list.
func applyTextFrame(md *types.Metadata, f *id3v2.TextFrame) {
	switch f.ID {
	case "TIT2":
		md.Title = f.Text()
	case "TPE1":
		md.Artist = f.Text()
	case "TALB":
		md.Album = f.Text()
	case "TPE2":
		md.AlbumArtist = f.Text()
	case "TCON":
		for _, value := range f.Values {
			if genre := resolveGenre(value); genre != "" {
				md.Genres = append(md.Genres, genre)
			}
		}
	case "TYER", "TDRC":
		// TYER is 2.3's recording year, TDRC its 2.4 replacement
		// (a full timestamp whose first four digits are the year)
		if year := parseYear(f.Text()); year != 0 {
			md.Year = year
		}
	case "TRCK":
		md.TrackNumber, md.TrackTotal = parseTrackNumber(f.Text())
	}
}

// fillFromLegacy fills fields the container didn't set from the ID3v1
// trailer. The comment field is always appended since there is no
// corresponding container field to defer to.
func fillFromLegacy(md *types.Metadata, tag *id3v1.Tag) {
	if md.Title == "" {
		md.Title = tag.Title
	}
	if md.Artist == "" {
		md.Artist = tag.Artist
	}
	if md.Album == "" {
		md.Album = tag.Album
	}
	if md.Year == 0 {
		md.Year = parseYear(tag.Year)
	}
	if md.TrackNumber == 0 {
		md.TrackNumber = tag.Track
	}
	// 0xFF is the conventional "no genre set" marker. GenreName would
	// render it as "Unknown", but an unset field stays empty; "Unknown"
	// is reserved for indexes that are present yet out of table range.
	if len(md.Genres) == 0 && tag.Genre != 0xFF {
		md.Genres = append(md.Genres, tag.GenreName())
	}
	if tag.Comment != "" {
		md.Comments = append(md.Comments, types.Comment{Text: tag.Comment})
	}
}

// resolveGenre turns TCON content values into genre names.
//
// ID3v2.3 allows numeric references to the ID3v1 genre table, written
// as "(n)" with an optional textual refinement after the parenthesis,
// plus "(RX)" for Remix and "(CR)" for Cover. ID3v2.4 drops the
// parentheses and stores the bare number as its own value. "((" is an
// escaped literal parenthesis.
func resolveGenre(value string) string {
	if strings.HasPrefix(value, "((") {
		return value[1:]
	}
	if strings.HasPrefix(value, "(") {
		end := strings.Index(value, ")")
		if end < 0 {
			return value
		}
		ref, rest := value[1:end], value[end+1:]
		if rest != "" {
			// A refinement names the genre more precisely than
			// the table reference it follows
			return rest
		}
		return resolveGenreRef(ref)
	}
	if _, err := strconv.Atoi(value); err == nil {
		return resolveGenreRef(value)
	}
	return value
}

func resolveGenreRef(ref string) string {
	switch ref {
	case "RX":
		return "Remix"
	case "CR":
		return "Cover"
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 0 && n <= 255 {
		return id3v1.GenreName(byte(n))
	}
	return ref
}

// parseYear extracts a four-digit year from the head of a date value.
// Handles both bare years ("1994") and 2.4 timestamps ("1994-06-01").
func parseYear(s string) int {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return 0
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil || year < 1000 || year > 9999 {
		return 0
	}
	return year
}

// parseTrackNumber parses a TRCK value, either "7" or "7/12".
func parseTrackNumber(s string) (track, total int) {
	s = strings.TrimSpace(s)
	num, rest, found := strings.Cut(s, "/")
	track, _ = strconv.Atoi(num)
	if found {
		total, _ = strconv.Atoi(rest)
	}
	return track, total
}
