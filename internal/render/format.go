package render

import (
	"bytes"
	"fmt"
	"io"
)

// FormatSpecialChars rewrites literal escape sequences in buf into
// their byte values: `\n` becomes the EOL sequence followed by
// afterEOL (used to re-assert a color code on the new line), `\t` a
// tab, `\0` a NUL, `\r` is dropped, `\?`, `\'` and `\"` lose their
// backslash, `\\` collapses to one backslash, and unknown escapes
// pass through untouched.
//
// ctrNext carries escape state across chunk boundaries: pass the
// previous call's return value so a backslash split between two
// chunks is still recognized.
func FormatSpecialChars(buf []byte, w io.Writer, ctrNext bool, eol, afterEOL []byte) (bool, error) {
	write := func(p []byte) error {
		if _, err := w.Write(p); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	lastSliceEmpty := false
	for _, s := range bytes.Split(buf, []byte(`\`)) {
		switch {
		case len(s) == 0:
			if ctrNext {
				lastSliceEmpty = true
				ctrNext = false
				continue
			}
			if err := write([]byte(`\`)); err != nil {
				return false, err
			}
			lastSliceEmpty = false
			ctrNext = true

		case ctrNext:
			var expansion []byte
			switch s[0] {
			case '0':
				expansion = []byte{0}
			case 'n':
				expansion = append(append([]byte(nil), eol...), afterEOL...)
			case 'r':
				expansion = nil
			case 't':
				expansion = []byte("\t")
			case '?', '\'', '"':
				expansion = s[0:1]
			default:
				expansion = append([]byte(`\`), s[0])
			}
			if err := write(expansion); err != nil {
				return false, err
			}
			if err := write(s[1:]); err != nil {
				return false, err
			}
			lastSliceEmpty = false

		default:
			if lastSliceEmpty {
				if err := write([]byte(`\`)); err != nil {
					return false, err
				}
			}
			if err := write(s); err != nil {
				return false, err
			}
			lastSliceEmpty = false
			ctrNext = true
		}
	}

	return lastSliceEmpty, nil
}
