// Package releasenotes turns loosely-structured changelog text into structured
// release and item records.
//
// This package implements:
//   - Date/version token parsing with documented disambiguation heuristics
//   - Splitting a multi-release document into per-release sections
//   - Per-release header resolution and line-by-line item segmentation
//   - Component and category classification of items
//   - A direct JSON ingestion path and payload mapping for persistence
//
// Everything here is pure: no I/O, no package-level mutable state. All
// functions are safe for concurrent use.
package releasenotes
