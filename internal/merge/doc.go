// Package merge interleaves per-source record streams into one
// globally time-ordered stream, in either direction. Each input must
// already be ordered for the chosen direction; the merge then only
// ever compares the current record of each live source, so it runs in
// constant memory regardless of input sizes.
package merge
