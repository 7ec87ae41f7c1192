// Package source turns input paths into per-input record streams.
// Regular files support both directions; standard input and gzip
// files are read through a forward framer only, since neither can
// seek. Each stream keeps the index of the path that produced it so
// downstream output can attribute records to their file.
package source
