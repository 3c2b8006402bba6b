// Package export moves a rendered signature out of the process: to the
// terminal clipboard, to files on disk, or to a PNG. Every action reports a
// single Notice instead of an error.
package export
