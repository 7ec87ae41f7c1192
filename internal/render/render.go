package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/loglens/loglens/internal/entry"
)

// Options configure output rendering.
type Options struct {
	Color      bool
	Formatting bool
	EOL        []byte
	Names      []string // display names per source; a prefix is emitted when there is more than one
}

// Writer renders records to an output sink. Coloring is forced rather
// than terminal-detected, so it also works when piping to a pager that
// passes control characters through.
type Writer struct {
	w     io.Writer
	opts  Options
	buf   bytes.Buffer
	level map[entry.Level]lipgloss.Style
	name  lipgloss.Style
}

// NewWriter builds a Writer over w.
func NewWriter(w io.Writer, opts Options) *Writer {
	wr := &Writer{w: w, opts: opts}
	if opts.Color {
		ren := lipgloss.NewRenderer(w)
		ren.SetColorProfile(termenv.ANSI)
		wr.level = map[entry.Level]lipgloss.Style{
			entry.LevelDebug:    ren.NewStyle().Foreground(lipgloss.Color("7")),
			entry.LevelInfo:     ren.NewStyle().Foreground(lipgloss.Color("15")),
			entry.LevelWarning:  ren.NewStyle().Foreground(lipgloss.Color("3")),
			entry.LevelCritical: ren.NewStyle().Foreground(lipgloss.Color("1")),
			entry.LevelFatal:    ren.NewStyle().Foreground(lipgloss.Color("9")),
		}
		wr.name = ren.NewStyle().Foreground(lipgloss.Color("6"))
	}
	return wr
}

// WriteEntry renders one record: an optional source-name prefix, then
// the record bytes with escape formatting and severity coloring
// applied as configured.
func (wr *Writer) WriteEntry(e *entry.Entry) error {
	if len(wr.opts.Names) > 1 {
		prefix := fmt.Sprintf("%s: ", wr.opts.Names[e.Source()])
		if wr.opts.Color {
			prefix = wr.name.Render(prefix)
		}
		if _, err := io.WriteString(wr.w, prefix); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	body := e.Bytes()
	if wr.opts.Formatting {
		wr.buf.Reset()
		if _, err := FormatSpecialChars(body, &wr.buf, false, wr.opts.EOL, nil); err != nil {
			return err
		}
		body = wr.buf.Bytes()
	}

	if wr.opts.Color {
		if lvl, ok := e.Level(); ok {
			if _, err := io.WriteString(wr.w, wr.level[lvl].Render(string(body))); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		}
	}
	if _, err := wr.w.Write(body); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// WriteStream drains s through WriteEntry. limit > 0 caps the number
// of records written. Write failures and stream failures are both
// fatal.
func (wr *Writer) WriteStream(s entry.Stream, limit int) error {
	written := 0
	for {
		if limit > 0 && written >= limit {
			break
		}
		s.Advance()
		cur := s.Current()
		if cur == nil {
			break
		}
		if err := wr.WriteEntry(cur); err != nil {
			return err
		}
		written++
	}
	return s.Err()
}

// WriteFast streams raw bytes straight from r to w, applying only
// escape formatting. It is used when no record-level work (filtering,
// coloring, merging, reversing) is needed.
func WriteFast(r io.Reader, w io.Writer, formatting bool, eol []byte) error {
	buf := make([]byte, 64*1024)
	ctr := false
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if formatting {
				var werr error
				ctr, werr = FormatSpecialChars(buf[:n], w, ctr, eol, nil)
				if werr != nil {
					return werr
				}
			} else if _, werr := w.Write(buf[:n]); werr != nil {
				return fmt.Errorf("write output: %w", werr)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}
}
