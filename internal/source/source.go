package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/loglens/loglens/internal/entry"
	"github.com/loglens/loglens/internal/frame"
)

// DefaultBufferCap is the default I/O buffer capacity, for both
// forward buffering and the reverse scratch buffer.
const DefaultBufferCap = 1 << 20

// Stdin is the pseudo-path selecting standard input.
const Stdin = "-"

// Options configure how inputs are opened.
type Options struct {
	EOL       []byte
	Direction entry.Direction
	BufferCap int // zero uses DefaultBufferCap
}

// Set is a group of opened inputs with their record streams. Streams
// are indexed by source, matching the order paths were given; Names
// carries the display name for each source.
type Set struct {
	Streams []entry.Stream
	Names   []string
	closers []io.Closer
}

// Close releases every underlying input.
func (s *Set) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Open opens the given inputs and builds one record stream per input.
// An empty path list, or the single pseudo-path "-", selects standard
// input. Paths ending in ".gz" are transparently decompressed.
// Standard input and compressed inputs are not seekable, so they only
// support Forward, single-source operation.
func Open(paths []string, opts Options) (*Set, error) {
	if opts.BufferCap <= 0 {
		opts.BufferCap = DefaultBufferCap
	}

	if len(paths) == 0 || (len(paths) == 1 && paths[0] == Stdin) {
		return openStdin(opts)
	}

	set := &Set{}
	for i, path := range paths {
		if err := set.add(i, path, opts); err != nil {
			_ = set.Close()
			return nil, err
		}
	}
	return set, nil
}

func openStdin(opts Options) (*Set, error) {
	if opts.Direction == entry.Reverse {
		return nil, fmt.Errorf("standard input is not seekable and cannot be read in reverse")
	}
	r, err := frame.NewReader(bufio.NewReaderSize(os.Stdin, opts.BufferCap), opts.EOL, 0)
	if err != nil {
		return nil, err
	}
	return &Set{Streams: []entry.Stream{r}, Names: []string{"stdin"}}, nil
}

func (s *Set) add(i int, path string, opts Options) error {
	if path == Stdin {
		return fmt.Errorf("%q can only be used as the sole input", Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	s.closers = append(s.closers, file)

	if strings.HasSuffix(path, ".gz") {
		if opts.Direction == entry.Reverse {
			return fmt.Errorf("%s: compressed inputs cannot be read in reverse", path)
		}
		zr, err := gzip.NewReader(bufio.NewReaderSize(file, opts.BufferCap))
		if err != nil {
			return fmt.Errorf("open gzip %s: %w", path, err)
		}
		s.closers = append(s.closers, zr)
		stream, err := frame.NewReader(zr, opts.EOL, i)
		if err != nil {
			return err
		}
		s.append(stream, path)
		return nil
	}

	if opts.Direction == entry.Reverse {
		stream, err := frame.NewRevReader(file, opts.EOL, opts.BufferCap, i)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		s.append(stream, path)
		return nil
	}

	stream, err := frame.NewReader(bufio.NewReaderSize(file, opts.BufferCap), opts.EOL, i)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	s.append(stream, path)
	return nil
}

// OpenRaw opens a single input for byte-level streaming, bypassing
// record framing. It accepts the same paths Open does: "-" for
// standard input and ".gz" for compressed files.
func OpenRaw(path string, bufferCap int) (io.ReadCloser, error) {
	if bufferCap <= 0 {
		bufferCap = DefaultBufferCap
	}
	if path == Stdin {
		return io.NopCloser(bufio.NewReaderSize(os.Stdin, bufferCap)), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if !strings.HasSuffix(path, ".gz") {
		return file, nil
	}
	zr, err := gzip.NewReader(bufio.NewReaderSize(file, bufferCap))
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("open gzip %s: %w", path, err)
	}
	return &rawGzip{zr: zr, file: file}, nil
}

// rawGzip closes both the decompressor and the file beneath it.
type rawGzip struct {
	zr   *gzip.Reader
	file *os.File
}

func (r *rawGzip) Read(p []byte) (int, error) { return r.zr.Read(p) }

func (r *rawGzip) Close() error {
	return errors.Join(r.zr.Close(), r.file.Close())
}

func (s *Set) append(stream entry.Stream, name string) {
	s.Streams = append(s.Streams, stream)
	s.Names = append(s.Names, name)
}
