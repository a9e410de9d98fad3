// Package mp3info extracts ID3 metadata from MP3 files.
//
// mp3info parses both tagging formats embedded in MP3 files without any
// external parsing library: the legacy fixed-layout ID3v1 trailer and
// the frame-based ID3v2 container at the start of the file, across
// revisions 2.2, 2.3 and 2.4.
//
// # Quick Start
//
// Reading metadata from a file:
//
//	md, err := mp3info.Open("song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s - %s\n", md.Artist, md.Title)
//
// Parsing a caller-owned byte source:
//
//	md, err := mp3info.Parse(bytes.NewReader(data), int64(len(data)))
//
// # Tag Precedence
//
// When a field is present in both an ID3v2 container and an ID3v1
// trailer, the ID3v2 value wins; the trailer only fills gaps. Lyrics
// and embedded pictures exist only in ID3v2.
//
// # Graceful Degradation
//
// One malformed frame never loses the rest of the tag. Frame-level
// problems (bad sizes, unknown encodings, broken compression) are
// contained: the frame is skipped or kept as raw bytes, a Warning is
// recorded on the result, and parsing continues. Parse only returns an
// error when neither tag could be established at all.
//
//	if len(md.Warnings) > 0 {
//		for _, w := range md.Warnings {
//			log.Printf("warning: %s", w)
//		}
//	}
//
// # Concurrency
//
// Parsing is synchronous and shares no state; concurrent parses of
// different inputs need no coordination. OpenMany parses a batch of
// files in parallel.
package mp3info
