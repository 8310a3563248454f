// Package tasks runs long-lived operations over the library with real-time progress reporting.
//
// # Color Backfill
//
// [Tinter.Run] fills in a color for every stored movie that has a poster but no color:
//
//  1. Refetches the library
//  2. Samples each poster's dominant color with a bounded worker pool, rate-limited by a token bucket
//  3. Writes each sampled "rgb(r, g, b)" back through the library's update operation
//
// A poster that cannot be sampled counts as a failure; it never aborts the run.
//
// # Progress Reporting
//
// Operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
