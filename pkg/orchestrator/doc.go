// Package orchestrator wires the normalize → validate → preset → sanitize →
// render pipeline behind a single Generate call, with dependency injection
// friendly options for callers that bring their own renderers or presets.
package orchestrator
