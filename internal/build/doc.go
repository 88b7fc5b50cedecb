// Package build runs the index pipeline.
//
// A run checks whether the index is stale, parses every top-level source
// document, resolves navigation links, optionally renders HTML and replaces
// the data file atomically. All entry points (generate, watch) go through
// BuildService.
package build
