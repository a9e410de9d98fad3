package mp3info

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	binutil "github.com/arafatamim/mp3info/internal/binary"
	"github.com/arafatamim/mp3info/internal/id3v1"
	"github.com/arafatamim/mp3info/internal/id3v2"
)

// Parse reads ID3 metadata from an io.ReaderAt.
//
// Both tag locations are inspected: an ID3v2 container at the start of
// the input and an ID3v1 trailer in the last 128 bytes. Values from the
// container take precedence; the trailer only fills gaps.
//
// If neither tag is present, Parse returns a *NoTagError. Malformed
// content inside a tag is reported through Metadata.Warnings rather
// than aborting the parse (unless WithStrictParsing is set).
//
// Example:
//
//	f, _ := os.Open("song.mp3")
//	defer f.Close()
//	stat, _ := f.Stat()
//	md, err := mp3info.Parse(f, stat.Size())
func Parse(r io.ReaderAt, size int64, opts ...Option) (*Metadata, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return parse(r, size, "", options)
}

// Open opens an MP3 file and reads its ID3 metadata.
//
// The file handle is closed before Open returns; all metadata,
// including picture data, is held in memory on the returned Metadata.
//
// If the file has no ID3 tags at all, Open returns a *NoTagError. A
// file with damaged tags still yields partial metadata with warnings;
// check Metadata.Warnings for details.
//
// Options can be provided to customize parsing behavior:
//
//	md, err := mp3info.Open("song.mp3",
//	    mp3info.WithStrictParsing(),
//	    mp3info.WithMaxPictureSize(10*1024*1024),
//	)
//
// Example:
//
//	md, err := mp3info.Open("song.mp3")
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%s - %s\n", md.Artist, md.Title)
func Open(path string, opts ...Option) (*Metadata, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return parse(f, stat.Size(), path, options)
}

// OpenContext opens a file with context support for cancellation.
//
// This is a thin wrapper around Open() that checks context before starting.
// Future enhancements (streaming, network files) will use context throughout
// the parsing process.
func OpenContext(ctx context.Context, path string, opts ...Option) (*Metadata, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return Open(path, opts...)
}

// OpenMany reads metadata from multiple files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. If any
// file fails, the first error is returned and the results discarded.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	all, err := mp3info.OpenMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for i, md := range all {
//		fmt.Printf("%s: %s - %s\n", paths[i], md.Artist, md.Title)
//	}
func OpenMany(ctx context.Context, paths ...string) ([]*Metadata, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU()) // Limit concurrent operations

	results := make([]*Metadata, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			// Check for cancellation
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			md, err := Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = md
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// parse runs both tag readers over the input and aggregates the result.
func parse(r io.ReaderAt, size int64, path string, options *parseOptions) (*Metadata, error) {
	sr := binutil.NewSafeReader(r, size, path)

	var (
		legacy    *id3v1.Tag
		container *id3v2.Tag
	)

	// Container first: its values win, and a fatal container error
	// should surface even when a trailer exists.
	var containerErr error
	if !options.skipContainer {
		container, containerErr = id3v2.Read(sr)
	}

	if !options.skipLegacy {
		// The trailer reader only fails on I/O problems; a missing or
		// unreadable trailer is simply absent.
		legacy, _ = id3v1.Read(sr)
	}

	if container == nil && legacy == nil {
		if containerErr != nil {
			return nil, containerErr
		}
		return nil, &NoTagError{Path: path}
	}

	md := aggregate(legacy, container, options)
	if containerErr != nil {
		// Container was unreadable but a trailer carried us through
		md.Warnings = append(md.Warnings, Warning{
			Stage:   "id3v2",
			Message: containerErr.Error(),
		})
	}

	if options.strictParsing && len(md.Warnings) > 0 {
		return nil, fmt.Errorf("strict parsing failed: %s", md.Warnings[0].Message)
	}
	if options.ignoreWarnings {
		md.Warnings = nil
	}

	return md, nil
}
