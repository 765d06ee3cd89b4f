// Package interop coerces foreign values to managed Kona values.
//
// This package contains:
//   - Shape classification of coercion target types
//   - One coercer per shape, from primitive narrowing to structural
//     duck typing
//   - A strategy factory with per-target and shared modes
//   - Per-call-site caches that go generic once target diversity
//     exceeds a fixed limit
//   - Registry hooks for embedder-supplied interface proxies and type
//     converters
//
// The entry points are Engine.NewCoercer for call sites with a fixed
// target type and Dynamic.Execute for call sites whose target types
// vary at run time.
package interop
