// Package topology defines the application configuration that describes a
// small distributed application: a set of named nodes (Wasm execution units,
// a log sink, a storage proxy), a designated entry node, and an optional
// gRPC port.
//
// The package has two halves:
//
// Builder:
// NewDefault and the Add*/Set* methods assemble an ApplicationConfiguration
// incrementally. The builder performs NO cross-entry validation - not even
// name collision checks. Calling AddLogging twice really does produce two
// nodes named "log". This is deliberate: it keeps the builder composable
// (helpers can be applied in any order without global knowledge of the final
// shape) and lets tests construct invalid configurations on purpose.
//
// Validator:
// Validate and IsValid decide admission: is the assembled configuration safe
// to hand to a launcher? The validator enforces exactly two structural
// invariants:
//   - node names are unique (exact byte equality)
//   - the initial node resolves to a node carrying Wasm code
//
// The validator walks the node sequence once in insertion order and stops at
// the first duplicate, so the reported duplicate is deterministic.
//
// Nothing here executes nodes, opens sockets, or owns a wire format. Those
// belong to the launcher and deployment tooling that consume the validated
// configuration.
package topology
