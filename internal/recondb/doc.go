// Package recondb persists events and selection runs: for each
// processed event, the saved collections, the run record, the
// selected vertex, and the per-candidate scores. Backed by SQLite
// (modernc.org/sqlite) with schema migrations embedded in the binary.
package recondb
