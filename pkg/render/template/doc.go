// Package template defines the template seam the markup renderers rely on.
// The gotemplate subpackage provides the pongo2-backed implementation.
package template
