package filter

import (
	"testing"
	"time"

	"github.com/loglens/loglens/internal/entry"
)

var logInput = []string{
	"-debug:<16866> 2020-01-01 20:00:00.000 UTC [A]: Text1",
	"-info:<16866> 2020-01-01 21:00:00.000 UTC [A]: Text2",
	"-warning:<16866> 2020-01-01 21:30:00.000 UTC [A]: Text3",
	"-critical:<16866> 2020-01-01 22:00:00.000 UTC [A]: Text4",
	"-fatal:<16866> 2020-01-01 22:30:00.000 UTC [A]: Text5",
}

// sliceStream replays fixed record texts; it stands in for a framer.
type sliceStream struct {
	records  []string
	idx      int
	advances int
	entry    *entry.Entry
}

func newSliceStream(records []string) *sliceStream {
	return &sliceStream{records: records, idx: -1, entry: entry.New(0)}
}

func (s *sliceStream) Advance() {
	s.advances++
	if s.idx < len(s.records) {
		s.idx++
	}
	if s.idx >= 0 && s.idx < len(s.records) {
		s.entry.SetBytes([]byte(s.records[s.idx]))
	}
}

func (s *sliceStream) Current() *entry.Entry {
	if s.idx < 0 || s.idx >= len(s.records) {
		return nil
	}
	return s.entry
}

func (s *sliceStream) Err() error { return nil }

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}

func drain(t *testing.T, s entry.Stream) []string {
	t.Helper()
	var out []string
	for {
		s.Advance()
		cur := s.Current()
		if cur == nil {
			break
		}
		out = append(out, string(cur.Bytes()))
	}
	if err := s.Err(); err != nil {
		t.Fatalf("stream failed: %v", err)
	}
	return out
}

func at(clock string) *time.Time {
	ts, err := time.Parse("2006-01-02 15:04:05", "2020-01-01 "+clock)
	if err != nil {
		panic(err)
	}
	return &ts
}

func level(l entry.Level) *entry.Level { return &l }

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string // in forward order; reversed for the reverse run
	}{
		{
			name: "no filters pass everything",
			opts: Options{},
			want: logInput,
		},
		{
			name: "since is boundary inclusive",
			opts: Options{Since: at("21:30:00")},
			want: logInput[2:],
		},
		{
			name: "until is boundary exclusive",
			opts: Options{Until: at("21:30:00")},
			want: logInput[:2],
		},
		{
			name: "window keeps since <= t < until",
			opts: Options{Since: at("21:00:00"), Until: at("22:00:00")},
			want: logInput[1:3],
		},
		{
			name: "empty window",
			opts: Options{Since: at("23:00:00"), Until: at("23:30:00")},
			want: nil,
		},
		{
			name: "minimum severity critical",
			opts: Options{MinLevel: level(entry.LevelCritical)},
			want: logInput[3:],
		},
		{
			name: "substring match",
			opts: Options{Contains: []byte("Text2")},
			want: logInput[1:2],
		},
		{
			name: "substring is case sensitive",
			opts: Options{Contains: []byte("text2")},
			want: nil,
		},
		{
			name: "window and severity compose",
			opts: Options{Since: at("21:00:00"), MinLevel: level(entry.LevelWarning)},
			want: logInput[2:],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+" forward", func(t *testing.T) {
			got := drain(t, New(newSliceStream(logInput), tt.opts, entry.Forward))
			assertRecords(t, got, tt.want)
		})
		t.Run(tt.name+" reverse", func(t *testing.T) {
			got := drain(t, New(newSliceStream(reversed(logInput)), tt.opts, entry.Reverse))
			want := tt.want
			if want != nil {
				want = reversed(want)
			}
			assertRecords(t, got, want)
		})
	}
}

func TestFilterUntimestampedBypassesWindow(t *testing.T) {
	input := []string{
		"-info:<16866> 2020-01-01 21:00:00.000 UTC [A]: timestamped",
		"no header at all",
		"-info:<16866> 2020-01-01 21:10:00.000 UTC [A]: also timestamped",
	}
	opts := Options{Since: at("20:00:00"), Until: at("22:00:00")}

	got := drain(t, New(newSliceStream(input), opts, entry.Forward))
	assertRecords(t, got, input)
}

func TestFilterStopEdgeTruncatesStream(t *testing.T) {
	src := newSliceStream(logInput)
	s := New(src, Options{Until: at("21:30:00")}, entry.Forward)

	got := drain(t, s)
	assertRecords(t, got, logInput[:2])

	// The stop edge is a hard truncation: after crossing it the
	// remainder of the source must never be read.
	advances := src.advances
	s.Advance()
	s.Advance()
	if src.advances != advances {
		t.Errorf("inner stream advanced %d more times after stop", src.advances-advances)
	}
	if cur := s.Current(); cur != nil {
		t.Errorf("Current() after stop = %q, want nil", cur.Bytes())
	}
}

func TestFilterUnparsableSeverityPassesMinimum(t *testing.T) {
	input := []string{
		"-debug:<16866> 2020-01-01 20:00:00.000 UTC [A]: low",
		"completely bare record",
	}
	got := drain(t, New(newSliceStream(input), Options{MinLevel: level(entry.LevelFatal)}, entry.Forward))
	assertRecords(t, got, input[1:])
}

func assertRecords(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("records = %q, want %q", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("record[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
