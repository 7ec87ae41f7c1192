// Package render writes record streams to an output sink.
//
// Rendering covers the three concerns the pipeline itself stays out
// of: severity coloring (lipgloss styles with a forced ANSI profile,
// so colors survive piping), source-name prefixes when more than one
// input is being shown, and escape formatting that expands literal
// `\n`, `\t` and friends embedded in log messages into real bytes.
//
// WriteFast is the no-work path: when nothing needs records framed at
// all, raw bytes stream straight through the escape formatter.
package render
