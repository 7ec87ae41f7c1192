// Package revscan reads a seekable byte source backward, yielding
// delimiter-separated spans without ever holding more than one
// fixed-size block in memory. Rejoining all spans in reverse order,
// separated by the delimiter, reproduces the source bytes.
package revscan
