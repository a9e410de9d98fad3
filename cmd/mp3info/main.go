// Command mp3info inspects ID3 tags in MP3 files.
//
// Usage:
//
//	mp3info info <file>                 print common metadata fields
//	mp3info lyrics <file>               print embedded lyrics
//	mp3info picture [-t type] <file>    write embedded picture to stdout
//	mp3info frames <file>               dump every decoded frame value
//	mp3info version                     print version and build info
//	mp3info help                        show usage
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/arafatamim/mp3info"
)

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4")).
			Width(14)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "info":
		err = runInfo(os.Args[2:])
	case "lyrics":
		err = runLyrics(os.Args[2:])
	case "picture":
		err = runPicture(os.Args[2:])
	case "frames":
		err = runFrames(os.Args[2:])
	case "version":
		info := mp3info.Build()
		fmt.Printf("mp3info %s (commit %s, built %s, %s)\n",
			info.Version, info.Commit, info.Date, info.GoVersion)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`mp3info - inspect ID3 tags in MP3 files

Usage:
  mp3info info <file>                 print common metadata fields
  mp3info lyrics <file>               print embedded lyrics
  mp3info picture [-t type] <file>    write embedded picture to stdout
  mp3info frames <file>               dump every decoded frame value
  mp3info version                     print version and build info
  mp3info help                        show this message

Picture types for -t: 0-20 per the ID3v2 picture type table
(3 = front cover, the default).`)
}

func runInfo(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: mp3info info <file>")
	}

	md, err := mp3info.Open(args[0])
	if err != nil {
		return err
	}

	printField("Title", md.Title)
	printField("Artist", md.Artist)
	printField("Album", md.Album)
	printField("Album Artist", md.AlbumArtist)
	if md.Year != 0 {
		printField("Year", fmt.Sprintf("%d", md.Year))
	}
	if md.TrackNumber != 0 {
		track := fmt.Sprintf("%d", md.TrackNumber)
		if md.TrackTotal != 0 {
			track = fmt.Sprintf("%d/%d", md.TrackNumber, md.TrackTotal)
		}
		printField("Track", track)
	}
	printField("Genre", strings.Join(md.Genres, ", "))
	for _, c := range md.Comments {
		printField("Comment", c.Text)
	}
	for _, pic := range md.Pictures {
		printField("Picture", pic.String())
	}

	tags := "none"
	switch {
	case md.ID3v2Version != 0 && md.HasID3v1:
		tags = fmt.Sprintf("ID3v2.%d + ID3v1", md.ID3v2Version)
	case md.ID3v2Version != 0:
		tags = fmt.Sprintf("ID3v2.%d", md.ID3v2Version)
	case md.HasID3v1:
		tags = "ID3v1"
	}
	printField("Tags", tags)

	for _, w := range md.Warnings {
		fmt.Fprintln(os.Stderr, warningStyle.Render("warning: ")+w.String())
	}

	return nil
}

func printField(label, value string) {
	if value == "" {
		return
	}
	fmt.Println(labelStyle.Render(label) + " " + value)
}

func runLyrics(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: mp3info lyrics <file>")
	}

	md, err := mp3info.Open(args[0])
	if err != nil {
		return err
	}

	if len(md.Lyrics) == 0 {
		fmt.Println("Lyrics not available")
		return nil
	}

	for i, entry := range md.Lyrics {
		if i > 0 {
			fmt.Println()
		}
		if entry.Description != "" {
			fmt.Println(labelStyle.Render("Lyrics") + " " + entry.Description)
		}
		fmt.Println(entry.Text)
	}

	return nil
}

// runFrames dumps every text value and undecoded frame in the tag.
// Useful to confirm what a particular file actually carries.
func runFrames(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: mp3info frames <file>")
	}

	md, err := mp3info.Open(args[0])
	if err != nil {
		return err
	}

	for key, values := range md.All() {
		fmt.Printf("%s  %s\n", labelStyle.Render(key), strings.Join(values, " / "))
	}
	for _, c := range md.Comments {
		fmt.Printf("%s  [%s] %s: %s\n", labelStyle.Render("COMM"), c.Language, c.Description, c.Text)
	}
	for _, l := range md.Lyrics {
		fmt.Printf("%s  [%s] %d chars\n", labelStyle.Render("USLT"), l.Language, len(l.Text))
	}
	for _, pic := range md.Pictures {
		fmt.Printf("%s  %s\n", labelStyle.Render("APIC"), pic.String())
	}
	for id, payloads := range md.RawFrames() {
		for _, p := range payloads {
			fmt.Printf("%s  %d bytes (undecoded)\n", labelStyle.Render(id), len(p))
		}
	}

	return nil
}

func runPicture(args []string) error {
	fs := flag.NewFlagSet("picture", flag.ExitOnError)
	picType := fs.Int("t", int(mp3info.PictureFrontCover), "picture type to extract (0-20)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: mp3info picture [-t type] <file>")
	}

	md, err := mp3info.Open(fs.Arg(0))
	if err != nil {
		return err
	}

	pic := findPicture(md.Pictures, mp3info.PictureType(*picType))
	if pic == nil {
		return fmt.Errorf("no picture of type %s found", mp3info.PictureType(*picType))
	}

	// Raw image bytes would garble an interactive terminal
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("refusing to write %s data to a terminal; redirect stdout to a file", pic.MIMEType)
	}

	if _, err := os.Stdout.Write(pic.Data); err != nil {
		return fmt.Errorf("write picture: %w", err)
	}
	return nil
}

// findPicture returns the first picture of the wanted type, falling
// back to the first picture of any type when the exact type is absent
// but the caller asked for the default front cover.
func findPicture(pics []mp3info.Picture, want mp3info.PictureType) *mp3info.Picture {
	for i := range pics {
		if pics[i].Type == want {
			return &pics[i]
		}
	}
	if want == mp3info.PictureFrontCover && len(pics) > 0 {
		return &pics[0]
	}
	return nil
}
