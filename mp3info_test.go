package mp3info_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arafatamim/mp3info"
)

// buildID3v1 creates a 128-byte ID3v1.1 trailer tag.
func buildID3v1(title, artist, album, year, comment string, track int, genre byte) []byte {
	buf := make([]byte, 128)
	copy(buf[0:3], "TAG")
	copy(buf[3:33], title)
	copy(buf[33:63], artist)
	copy(buf[63:93], album)
	copy(buf[93:97], year)
	copy(buf[97:125], comment)
	if track > 0 {
		buf[125] = 0
		buf[126] = byte(track)
	}
	buf[127] = genre
	return buf
}

// textFrame creates an ID3v2.3 text frame with ISO-8859-1 content.
func textFrame(id, text string) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString(id)
	binary.Write(buf, binary.BigEndian, uint32(len(text)+1))
	buf.Write([]byte{0, 0}) // Frame flags
	buf.WriteByte(0)        // ISO-8859-1
	buf.WriteString(text)
	return buf.Bytes()
}

// commentFrame creates an ID3v2.3 COMM or USLT frame.
func commentFrame(id, lang, desc, text string) []byte {
	payload := &bytes.Buffer{}
	payload.WriteByte(0) // ISO-8859-1
	payload.WriteString(lang)
	payload.WriteString(desc)
	payload.WriteByte(0)
	payload.WriteString(text)

	buf := &bytes.Buffer{}
	buf.WriteString(id)
	binary.Write(buf, binary.BigEndian, uint32(payload.Len()))
	buf.Write([]byte{0, 0})
	buf.Write(payload.Bytes())
	return buf.Bytes()
}

// pictureFrame creates an ID3v2.3 APIC frame.
func pictureFrame(mime string, picType byte, desc string, data []byte) []byte {
	payload := &bytes.Buffer{}
	payload.WriteByte(0) // ISO-8859-1
	payload.WriteString(mime)
	payload.WriteByte(0)
	payload.WriteByte(picType)
	payload.WriteString(desc)
	payload.WriteByte(0)
	payload.Write(data)

	buf := &bytes.Buffer{}
	buf.WriteString("APIC")
	binary.Write(buf, binary.BigEndian, uint32(payload.Len()))
	buf.Write([]byte{0, 0})
	buf.Write(payload.Bytes())
	return buf.Bytes()
}

// buildID3v2 wraps frames in an ID3v2.3 container header.
func buildID3v2(frames ...[]byte) []byte {
	body := bytes.Join(frames, nil)
	buf := &bytes.Buffer{}
	buf.WriteString("ID3")
	buf.Write([]byte{3, 0, 0}) // Version 2.3, no flags
	size := len(body)
	buf.Write([]byte{
		byte(size >> 21 & 0x7F),
		byte(size >> 14 & 0x7F),
		byte(size >> 7 & 0x7F),
		byte(size & 0x7F),
	})
	buf.Write(body)
	return buf.Bytes()
}

func parseBytes(t *testing.T, data []byte, opts ...mp3info.Option) *mp3info.Metadata {
	t.Helper()
	md, err := mp3info.Parse(bytes.NewReader(data), int64(len(data)), opts...)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return md
}

func TestParse_ContainerOnly(t *testing.T) {
	data := buildID3v2(
		textFrame("TIT2", "Paranoid Android"),
		textFrame("TPE1", "Radiohead"),
		textFrame("TALB", "OK Computer"),
		textFrame("TPE2", "Radiohead"),
		textFrame("TYER", "1997"),
		textFrame("TRCK", "2/12"),
		textFrame("TCON", "(17)"),
	)

	md := parseBytes(t, data)

	if md.Title != "Paranoid Android" {
		t.Errorf("Title = %q, want %q", md.Title, "Paranoid Android")
	}
	if md.Artist != "Radiohead" {
		t.Errorf("Artist = %q, want %q", md.Artist, "Radiohead")
	}
	if md.Album != "OK Computer" {
		t.Errorf("Album = %q, want %q", md.Album, "OK Computer")
	}
	if md.AlbumArtist != "Radiohead" {
		t.Errorf("AlbumArtist = %q, want %q", md.AlbumArtist, "Radiohead")
	}
	if md.Year != 1997 {
		t.Errorf("Year = %d, want 1997", md.Year)
	}
	if md.TrackNumber != 2 || md.TrackTotal != 12 {
		t.Errorf("Track = %d/%d, want 2/12", md.TrackNumber, md.TrackTotal)
	}
	if md.Genre() != "Rock" {
		t.Errorf("Genre = %q, want %q", md.Genre(), "Rock")
	}
	if md.ID3v2Version != 3 {
		t.Errorf("ID3v2Version = %d, want 3", md.ID3v2Version)
	}
	if md.HasID3v1 {
		t.Error("HasID3v1 = true for container-only input")
	}
	if len(md.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", md.Warnings)
	}
}

func TestParse_LegacyOnly(t *testing.T) {
	// Audio bytes followed by a trailer tag
	data := append(make([]byte, 512), buildID3v1(
		"So What", "Miles Davis", "Kind of Blue", "1959", "classic", 1, 8)...)

	md := parseBytes(t, data)

	if md.Title != "So What" {
		t.Errorf("Title = %q, want %q", md.Title, "So What")
	}
	if md.Artist != "Miles Davis" {
		t.Errorf("Artist = %q, want %q", md.Artist, "Miles Davis")
	}
	if md.Album != "Kind of Blue" {
		t.Errorf("Album = %q, want %q", md.Album, "Kind of Blue")
	}
	if md.Year != 1959 {
		t.Errorf("Year = %d, want 1959", md.Year)
	}
	if md.TrackNumber != 1 {
		t.Errorf("TrackNumber = %d, want 1", md.TrackNumber)
	}
	if md.Genre() != "Jazz" {
		t.Errorf("Genre = %q, want %q", md.Genre(), "Jazz")
	}
	if len(md.Comments) != 1 || md.Comments[0].Text != "classic" {
		t.Errorf("Comments = %v, want one entry %q", md.Comments, "classic")
	}
	if !md.HasID3v1 {
		t.Error("HasID3v1 = false for legacy-only input")
	}
	if md.ID3v2Version != 0 {
		t.Errorf("ID3v2Version = %d, want 0", md.ID3v2Version)
	}
}

func TestParse_LegacyGenre(t *testing.T) {
	// An out-of-table index surfaces as "Unknown"; the conventional
	// 0xFF unset marker yields no genre at all
	withIndex := append(make([]byte, 256), buildID3v1("A", "", "", "", "", 0, 200)...)
	md := parseBytes(t, withIndex)
	if md.Genre() != "Unknown" {
		t.Errorf("Genre = %q, want %q", md.Genre(), "Unknown")
	}

	unset := append(make([]byte, 256), buildID3v1("A", "", "", "", "", 0, 0xFF)...)
	md = parseBytes(t, unset)
	if len(md.Genres) != 0 {
		t.Errorf("Genres = %v, want none for the 0xFF marker", md.Genres)
	}
}

func TestParse_ContainerWinsOverLegacy(t *testing.T) {
	container := buildID3v2(
		textFrame("TIT2", "Container Title"),
		textFrame("TALB", "Container Album"),
	)
	trailer := buildID3v1("Legacy Title", "Legacy Artist", "Legacy Album", "1980", "", 5, 0)
	data := append(container, trailer...)

	md := parseBytes(t, data)

	// Container values win where both tags set a field
	if md.Title != "Container Title" {
		t.Errorf("Title = %q, want container value", md.Title)
	}
	if md.Album != "Container Album" {
		t.Errorf("Album = %q, want container value", md.Album)
	}
	// Trailer fills the gaps the container left
	if md.Artist != "Legacy Artist" {
		t.Errorf("Artist = %q, want legacy value", md.Artist)
	}
	if md.Year != 1980 {
		t.Errorf("Year = %d, want 1980", md.Year)
	}
	if md.TrackNumber != 5 {
		t.Errorf("TrackNumber = %d, want 5", md.TrackNumber)
	}
	if !md.HasID3v1 || md.ID3v2Version != 3 {
		t.Errorf("presence flags: HasID3v1=%v ID3v2Version=%d", md.HasID3v1, md.ID3v2Version)
	}
}

func TestParse_NoTags(t *testing.T) {
	data := make([]byte, 1024) // No markers anywhere

	_, err := mp3info.Parse(bytes.NewReader(data), int64(len(data)))
	if err == nil {
		t.Fatal("expected error for untagged input")
	}

	var noTag *mp3info.NoTagError
	if !errors.As(err, &noTag) {
		t.Errorf("expected *NoTagError, got %T: %v", err, err)
	}
}

func TestParse_CommentsAndLyrics(t *testing.T) {
	data := buildID3v2(
		commentFrame("COMM", "eng", "note", "a comment"),
		commentFrame("USLT", "eng", "", "some lyrics\nsecond line"),
	)

	md := parseBytes(t, data)

	if len(md.Comments) != 1 {
		t.Fatalf("Comments = %d entries, want 1", len(md.Comments))
	}
	if md.Comments[0].Language != "eng" || md.Comments[0].Description != "note" ||
		md.Comments[0].Text != "a comment" {
		t.Errorf("Comment = %+v", md.Comments[0])
	}
	if len(md.Lyrics) != 1 {
		t.Fatalf("Lyrics = %d entries, want 1", len(md.Lyrics))
	}
	if md.Lyrics[0].Text != "some lyrics\nsecond line" {
		t.Errorf("Lyrics text = %q", md.Lyrics[0].Text)
	}
}

func TestParse_UserText(t *testing.T) {
	payload := &bytes.Buffer{}
	payload.WriteByte(0)
	payload.WriteString("REPLAYGAIN_TRACK_GAIN")
	payload.WriteByte(0)
	payload.WriteString("-6.2 dB")

	frame := &bytes.Buffer{}
	frame.WriteString("TXXX")
	binary.Write(frame, binary.BigEndian, uint32(payload.Len()))
	frame.Write([]byte{0, 0})
	frame.Write(payload.Bytes())

	md := parseBytes(t, buildID3v2(frame.Bytes()))

	got := md.GetFirst("TXXX:REPLAYGAIN_TRACK_GAIN")
	if got != "-6.2 dB" {
		t.Errorf("TXXX value = %q, want %q", got, "-6.2 dB")
	}
}

func TestParse_Pictures(t *testing.T) {
	image := []byte{0x89, 'P', 'N', 'G', 0x00, 0x01, 0x02}
	data := buildID3v2(pictureFrame("image/png", 3, "cover", image))

	md := parseBytes(t, data)

	if len(md.Pictures) != 1 {
		t.Fatalf("Pictures = %d entries, want 1", len(md.Pictures))
	}
	pic := md.Pictures[0]
	if pic.MIMEType != "image/png" {
		t.Errorf("MIMEType = %q", pic.MIMEType)
	}
	if pic.Type != mp3info.PictureFrontCover {
		t.Errorf("Type = %v, want front cover", pic.Type)
	}
	if !bytes.Equal(pic.Data, image) {
		t.Errorf("Data = %x, want %x", pic.Data, image)
	}
}

func TestParse_MaxPictureSize(t *testing.T) {
	image := bytes.Repeat([]byte{0xAB}, 64)
	data := buildID3v2(
		textFrame("TIT2", "Song"),
		pictureFrame("image/jpeg", 3, "", image),
	)

	md := parseBytes(t, data, mp3info.WithMaxPictureSize(32))

	if len(md.Pictures) != 0 {
		t.Errorf("Pictures = %d entries, want 0 (over limit)", len(md.Pictures))
	}
	if len(md.Warnings) == 0 {
		t.Error("expected a warning for the dropped picture")
	}
	if md.Title != "Song" {
		t.Errorf("Title = %q, other frames should be unaffected", md.Title)
	}
}

// oversizedFrameTag builds a container whose first frame declares a
// size past the end of the tag body, which parses with a warning.
func oversizedFrameTag() []byte {
	bad := &bytes.Buffer{}
	bad.WriteString("TIT2")
	binary.Write(bad, binary.BigEndian, uint32(10000))
	bad.Write([]byte{0, 0})
	return buildID3v2(bad.Bytes(), textFrame("TPE1", "Artist"))
}

func TestParse_StrictParsing(t *testing.T) {
	data := oversizedFrameTag()

	// Default: parses with warnings
	md := parseBytes(t, data)
	if len(md.Warnings) == 0 {
		t.Fatal("fixture should produce warnings")
	}
	if md.Artist != "Artist" {
		t.Errorf("Artist = %q, frames after the bad one should decode", md.Artist)
	}

	// Strict: same input fails
	_, err := mp3info.Parse(bytes.NewReader(data), int64(len(data)),
		mp3info.WithStrictParsing())
	if err == nil {
		t.Error("expected error with strict parsing")
	}
}

func TestParse_IgnoreWarnings(t *testing.T) {
	data := oversizedFrameTag()

	md := parseBytes(t, data, mp3info.WithIgnoreWarnings())
	if md.Warnings != nil {
		t.Errorf("Warnings = %v, want nil", md.Warnings)
	}
}

func TestParse_WithoutContainerTag(t *testing.T) {
	container := buildID3v2(textFrame("TIT2", "Container Title"))
	trailer := buildID3v1("Legacy Title", "", "", "", "", 0, 0xFF)
	data := append(container, trailer...)

	md := parseBytes(t, data, mp3info.WithoutContainerTag())

	if md.Title != "Legacy Title" {
		t.Errorf("Title = %q, want legacy value", md.Title)
	}
	if md.ID3v2Version != 0 {
		t.Errorf("ID3v2Version = %d, want 0", md.ID3v2Version)
	}
}

func TestParse_WithoutLegacyTag(t *testing.T) {
	container := buildID3v2(textFrame("TIT2", "Container Title"))
	trailer := buildID3v1("Legacy Title", "Legacy Artist", "", "", "", 0, 0xFF)
	data := append(container, trailer...)

	md := parseBytes(t, data, mp3info.WithoutLegacyTag())

	if md.Title != "Container Title" {
		t.Errorf("Title = %q, want container value", md.Title)
	}
	if md.Artist != "" {
		t.Errorf("Artist = %q, want empty (trailer skipped)", md.Artist)
	}
	if md.HasID3v1 {
		t.Error("HasID3v1 = true with trailer skipped")
	}
}

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mp3")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen(t *testing.T) {
	path := writeTempFile(t, buildID3v2(textFrame("TIT2", "From Disk")))

	md, err := mp3info.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if md.Title != "From Disk" {
		t.Errorf("Title = %q, want %q", md.Title, "From Disk")
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := mp3info.Open(filepath.Join(t.TempDir(), "nope.mp3"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestOpenContext_Cancelled(t *testing.T) {
	path := writeTempFile(t, buildID3v2(textFrame("TIT2", "x")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mp3info.OpenContext(ctx, path)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestOpenMany(t *testing.T) {
	paths := []string{
		writeTempFile(t, buildID3v2(textFrame("TIT2", "One"))),
		filepath.Join(t.TempDir(), "two.mp3"),
	}
	if err := os.WriteFile(paths[1], buildID3v2(textFrame("TIT2", "Two")), 0o644); err != nil {
		t.Fatal(err)
	}

	all, err := mp3info.OpenMany(context.Background(), paths...)
	if err != nil {
		t.Fatalf("OpenMany failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d results, want 2", len(all))
	}
	// Results preserve input order
	if all[0].Title != "One" || all[1].Title != "Two" {
		t.Errorf("Titles = %q, %q", all[0].Title, all[1].Title)
	}
}

func TestOpenMany_Empty(t *testing.T) {
	all, err := mp3info.OpenMany(context.Background())
	if err != nil || all != nil {
		t.Errorf("OpenMany() = %v, %v; want nil, nil", all, err)
	}
}

func TestOpenMany_FailurePropagates(t *testing.T) {
	paths := []string{
		writeTempFile(t, buildID3v2(textFrame("TIT2", "ok"))),
		filepath.Join(t.TempDir(), "missing.mp3"),
	}

	_, err := mp3info.OpenMany(context.Background(), paths...)
	if err == nil {
		t.Error("expected error when one file is missing")
	}
}
