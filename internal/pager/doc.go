// Package pager implements the built-in interactive pager.
//
// The pager is a bubbletea program wrapping a viewport. Records are
// not loaded up front: the model pulls display lines from a Load
// callback in chunks and requests more as the user scrolls toward the
// bottom of what is already loaded, so paging an enormous filtered
// stream starts instantly and only reads as far as the user looks.
//
// Keys follow less(1) loosely: q quits, / opens an incremental search
// prompt, n and N jump between matches, g and G go to the top and
// bottom. Search is a byte-exact substring match over the loaded
// lines, the same matching rule the stream filter uses.
package pager
