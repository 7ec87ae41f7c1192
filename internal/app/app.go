package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/loglens/loglens/internal/entry"
	"github.com/loglens/loglens/internal/filter"
	"github.com/loglens/loglens/internal/merge"
	"github.com/loglens/loglens/internal/pager"
	"github.com/loglens/loglens/internal/render"
	"github.com/loglens/loglens/internal/source"
)

// Options are the fully resolved settings for one invocation, after
// command-line flags and preferences have been merged.
type Options struct {
	Paths []string // empty selects standard input

	Since    *time.Time
	Until    *time.Time
	MinLevel *entry.Level
	Contains string

	Direction entry.Direction
	Output    string // write here instead of stdout; empty means stdout

	Color      bool
	Formatting bool
	Pager      bool
	Wrap       bool

	BufferCap int
	Limit     int
	EOL       []byte
}

// Run reads, filters, merges and writes the logs described by opts.
func Run(opts Options) error {
	if len(opts.EOL) == 0 {
		opts.EOL = entry.DefaultEOL()
	}

	filterOpts := filter.Options{
		Since:    opts.Since,
		Until:    opts.Until,
		MinLevel: opts.MinLevel,
	}
	if opts.Contains != "" {
		filterOpts.Contains = []byte(opts.Contains)
	}

	if fastPath(opts, filterOpts) {
		return runFast(opts)
	}
	return runFramed(opts, filterOpts)
}

// fastPath reports whether the input can be streamed byte for byte,
// with no record framing at all. That needs a single forward input and
// no per-record work: no filtering, coloring, merging or paging.
func fastPath(opts Options, filterOpts filter.Options) bool {
	return len(opts.Paths) <= 1 &&
		opts.Direction == entry.Forward &&
		!filterOpts.Active() &&
		!opts.Color &&
		!opts.Pager &&
		opts.Limit <= 0
}

func runFast(opts Options) error {
	path := source.Stdin
	if len(opts.Paths) == 1 {
		path = opts.Paths[0]
	}
	slog.Debug("streaming input verbatim", "path", path)

	r, err := source.OpenRaw(path, opts.BufferCap)
	if err != nil {
		return err
	}
	defer r.Close()

	w, closeOut, err := openOutput(opts.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	return ignoreBrokenPipe(render.WriteFast(r, w, opts.Formatting, opts.EOL))
}

func runFramed(opts Options, filterOpts filter.Options) error {
	set, err := source.Open(opts.Paths, source.Options{
		EOL:       opts.EOL,
		Direction: opts.Direction,
		BufferCap: opts.BufferCap,
	})
	if err != nil {
		return err
	}
	defer set.Close()

	streams := set.Streams
	if filterOpts.Active() {
		for i, s := range streams {
			streams[i] = filter.New(s, filterOpts, opts.Direction)
		}
	}

	var stream entry.Stream
	if len(streams) == 1 {
		stream = streams[0]
	} else {
		slog.Debug("merging inputs chronologically", "count", len(streams))
		stream = merge.New(streams, opts.Direction)
	}

	renderOpts := render.Options{
		Color:      opts.Color,
		Formatting: opts.Formatting,
		EOL:        opts.EOL,
		Names:      set.Names,
	}

	if opts.Pager && opts.Output == "" {
		loader := newPagerLoader(stream, renderOpts, opts.Limit)
		return pager.Run(pager.Options{
			Title: strings.Join(set.Names, ", "),
			Wrap:  opts.Wrap,
			Load:  loader.load,
		})
	}

	w, closeOut, err := openOutput(opts.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	wr := render.NewWriter(w, renderOpts)
	return ignoreBrokenPipe(wr.WriteStream(stream, opts.Limit))
}

// pagerLoader adapts a record stream to the pager's pull interface,
// rendering records on demand and handing them over as display lines.
type pagerLoader struct {
	stream  entry.Stream
	wr      *render.Writer
	buf     bytes.Buffer
	eol     string
	limit   int
	written int
	done    bool
}

func newPagerLoader(stream entry.Stream, renderOpts render.Options, limit int) *pagerLoader {
	l := &pagerLoader{
		stream: stream,
		eol:    string(renderOpts.EOL),
		limit:  limit,
	}
	l.wr = render.NewWriter(&l.buf, renderOpts)
	return l
}

func (l *pagerLoader) load(max int) ([]string, bool, error) {
	if l.done {
		return nil, true, nil
	}

	var lines []string
	for len(lines) < max {
		if l.limit > 0 && l.written >= l.limit {
			l.done = true
			break
		}
		l.stream.Advance()
		cur := l.stream.Current()
		if cur == nil {
			l.done = true
			break
		}
		l.buf.Reset()
		if err := l.wr.WriteEntry(cur); err != nil {
			l.done = true
			return lines, true, err
		}
		l.written++
		lines = append(lines, splitLines(l.buf.String(), l.eol)...)
	}

	if l.done {
		if err := l.stream.Err(); err != nil {
			return lines, true, err
		}
	}
	return lines, l.done, nil
}

// splitLines breaks a rendered record into display lines. Exactly one
// trailing terminator is dropped, so the blank separator line between
// records survives into the pager view.
func splitLines(rendered, eol string) []string {
	rendered = strings.TrimSuffix(rendered, eol)
	if rendered == "" {
		return nil
	}
	return strings.Split(rendered, eol)
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}

// ignoreBrokenPipe treats a closed downstream pipe as a normal exit,
// so piping into head or quitting less does not report a failure.
func ignoreBrokenPipe(err error) error {
	if errors.Is(err, syscall.EPIPE) {
		return nil
	}
	return err
}
