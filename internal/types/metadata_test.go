package types

import (
	"slices"
	"testing"
)

func TestMetadata_GetSet(t *testing.T) {
	md := &Metadata{}

	md.Set("TIT2", "Hello")
	md.Set("TCON", "Rock", "Alternative")

	if got := md.GetFirst("TIT2"); got != "Hello" {
		t.Errorf("GetFirst(TIT2) = %q, expected %q", got, "Hello")
	}

	genres := md.Get("TCON")
	if !slices.Equal(genres, []string{"Rock", "Alternative"}) {
		t.Errorf("Get(TCON) = %v", genres)
	}

	// Returned slice is a copy
	genres[0] = "mutated"
	if md.GetFirst("TCON") != "Rock" {
		t.Error("Get should return a copy, not the backing slice")
	}

	// Empty set removes the key
	md.Set("TIT2")
	if md.Get("TIT2") != nil {
		t.Error("Set with no values should remove the key")
	}
}

func TestMetadata_GetMissing(t *testing.T) {
	md := &Metadata{}

	if md.Get("TXXX") != nil {
		t.Error("Get on empty metadata should return nil")
	}
	if md.GetFirst("TXXX") != "" {
		t.Error("GetFirst on empty metadata should return empty string")
	}
}

func TestMetadata_All(t *testing.T) {
	md := &Metadata{}
	md.Set("TIT2", "Title")
	md.Set("TPE1", "Artist")

	seen := map[string]bool{}
	for key := range md.All() {
		seen[key] = true
	}

	if !seen["TIT2"] || !seen["TPE1"] {
		t.Errorf("All() missed keys, saw %v", seen)
	}
}

func TestMetadata_Genre(t *testing.T) {
	md := &Metadata{}
	if md.Genre() != "" {
		t.Error("empty metadata should have empty genre")
	}

	md.Genres = []string{"Jazz", "Fusion"}
	if md.Genre() != "Jazz" {
		t.Errorf("Genre() = %q, expected first value", md.Genre())
	}
}

func TestMetadata_RawFrames(t *testing.T) {
	md := &Metadata{}
	md.AddRawFrame("PRIV", []byte{1, 2, 3})
	md.AddRawFrame("PRIV", []byte{4, 5})

	raw := md.RawFrames()
	if len(raw["PRIV"]) != 2 {
		t.Fatalf("expected 2 PRIV payloads, got %d", len(raw["PRIV"]))
	}
	if !slices.Equal(raw["PRIV"][0], []byte{1, 2, 3}) {
		t.Errorf("unexpected payload %v", raw["PRIV"][0])
	}
}

func TestPictureType_String(t *testing.T) {
	if PictureFrontCover.String() != "Front cover" {
		t.Errorf("got %q", PictureFrontCover.String())
	}
	if PictureType(200).String() != "PictureType(200)" {
		t.Errorf("got %q", PictureType(200).String())
	}
}

func TestPicture_String(t *testing.T) {
	p := Picture{
		Type:     PictureFrontCover,
		MIMEType: "image/jpeg",
		Data:     make([]byte, 2048),
	}

	if got := p.String(); got != "Front cover (JPEG, 2KB)" {
		t.Errorf("Picture.String() = %q", got)
	}
}
