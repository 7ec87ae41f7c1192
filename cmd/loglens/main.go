package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/loglens/loglens/internal/app"
	"github.com/loglens/loglens/internal/entry"
	"github.com/loglens/loglens/internal/logging"
	"github.com/loglens/loglens/internal/prefs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "loglens: %v\n", err)
		os.Exit(1)
	}
}

// flags holds the raw command-line values before validation. The
// tri-state switches stay strings so an unset flag can fall back to
// the user's preferences.
type flags struct {
	since    string
	until    string
	level    string
	contains string
	reverse  bool
	output   string

	color      string
	formatting string
	pager      string
	wrap       string

	bufferSize int
	limit      int
	verbose    bool
	prefsPath  string
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "loglens [flags] [file ...]",
		Short: "Filter, merge and view structured log files",
		Long: `loglens reads one or more log files (or standard input), filters
records by time window, severity and substring, merges multiple files
chronologically, and writes the result to stdout, a file, or a
built-in pager. Files ending in .gz are decompressed transparently.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(f.verbose)
			opts, err := resolve(f, args)
			if err != nil {
				return err
			}
			return app.Run(opts)
		},
	}

	cmd.Flags().StringVar(&f.since, "since", "", "drop records before this time (e.g. \"2022-04-11 21:00\")")
	cmd.Flags().StringVar(&f.until, "until", "", "drop records at or after this time")
	cmd.Flags().StringVar(&f.level, "level", "", "minimum severity: debug, info, warning, critical or fatal")
	cmd.Flags().StringVar(&f.contains, "contains", "", "keep only records containing this exact text")
	cmd.Flags().BoolVarP(&f.reverse, "reverse", "r", false, "read records back to front")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to this file instead of stdout")

	cmd.Flags().StringVar(&f.color, "color", "", "colorize by severity: yes or no (default: yes on a terminal)")
	cmd.Flags().StringVar(&f.formatting, "formatting", "", "expand escape sequences: yes or no (default: yes)")
	cmd.Flags().StringVar(&f.pager, "pager", "", "view in the built-in pager: yes or no (default: yes on a terminal)")
	cmd.Flags().StringVarP(&f.wrap, "wrap", "w", "", "wrap long lines in the pager: yes or no (default: no)")

	cmd.Flags().IntVar(&f.bufferSize, "buffer-size", 0, "I/O buffer capacity in bytes")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "stop after this many records")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "log debug detail to stderr")
	cmd.Flags().StringVar(&f.prefsPath, "prefs", "", "preferences file (default ~/.config/loglens/prefs.toml)")

	return cmd
}

// resolve validates the raw flags and merges them with preferences
// into a runnable configuration. All validation happens here, before
// any input is opened.
func resolve(f flags, args []string) (app.Options, error) {
	var opts app.Options
	opts.Paths = args

	userPrefs := prefs.Load(f.prefsPath)

	if f.since != "" {
		t, ok := entry.ParseTime(f.since)
		if !ok {
			return opts, fmt.Errorf("invalid --since value %q", f.since)
		}
		opts.Since = &t
	}
	if f.until != "" {
		t, ok := entry.ParseTime(f.until)
		if !ok {
			return opts, fmt.Errorf("invalid --until value %q", f.until)
		}
		opts.Until = &t
	}
	if f.level != "" {
		lvl, ok := entry.ParseLevel(f.level)
		if !ok {
			return opts, fmt.Errorf("invalid --level value %q", f.level)
		}
		opts.MinLevel = &lvl
	}
	opts.Contains = f.contains

	if f.reverse {
		opts.Direction = entry.Reverse
	}
	opts.Output = f.output

	stdoutTTY := isatty.IsTerminal(os.Stdout.Fd())

	// The pager defaults on only for interactive use.
	var err error
	opts.Pager, err = resolveSwitch("pager", f.pager, userPrefs.Pager, f.output == "" && stdoutTTY)
	if err != nil {
		return opts, err
	}
	opts.Wrap, err = resolveSwitch("wrap", f.wrap, userPrefs.Wrap, false)
	if err != nil {
		return opts, err
	}
	opts.Formatting, err = resolveSwitch("formatting", f.formatting, userPrefs.Formatting, true)
	if err != nil {
		return opts, err
	}

	// Coloring defaults on only when a human will see it directly.
	opts.Color, err = resolveSwitch("color", f.color, userPrefs.Color, f.output == "" && stdoutTTY)
	if err != nil {
		return opts, err
	}

	opts.BufferCap = f.bufferSize
	if opts.BufferCap == 0 {
		opts.BufferCap = userPrefs.BufferSize
	}
	if f.bufferSize < 0 {
		return opts, fmt.Errorf("invalid --buffer-size value %d", f.bufferSize)
	}
	if f.limit < 0 {
		return opts, fmt.Errorf("invalid --limit value %d", f.limit)
	}
	opts.Limit = f.limit

	return opts, nil
}

// resolveSwitch merges a tri-state switch: an explicit flag wins, then
// the preference, then the built-in default.
func resolveSwitch(name, flagVal string, pref *bool, def bool) (bool, error) {
	if flagVal == "" {
		if pref != nil {
			return *pref, nil
		}
		return def, nil
	}
	switch flagVal {
	case "yes", "true", "on":
		return true, nil
	case "no", "false", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid --%s value %q (use yes or no)", name, flagVal)
}
