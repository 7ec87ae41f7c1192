// Package filter cuts a record stream down to a time window, a
// minimum severity, and a substring match. The window edges rely on
// the stream being time-ordered: the leading edge is a one-shot
// prefix skip, the trailing edge truncates the stream entirely so the
// rest of the input is never read. Severity and substring checks run
// after the cheap bound checks. A record that lacks a timestamp or a
// severity simply bypasses the corresponding filter.
package filter
