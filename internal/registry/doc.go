// Package registry keeps a durable record of validation runs.
//
// Each time the deployment tool validates an application configuration it
// can append a run: which app, the configuration's fingerprint, how many
// nodes, whether it passed, and a short failure summary. Operators use the
// history to answer "what did we try to ship, and when did it last
// validate?" without re-reading manifests.
//
// Storage is SQLite with WAL mode. The registry records outcomes only; it
// never stores module bytes and has no influence on validation itself.
package registry
