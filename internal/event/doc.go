// Package event holds the per-event collection store: named,
// view-pure hit lists and named candidate-vertex lists, with one list
// designated "current". It implements the recon.ListProvider contract
// and the JSON event-file codec used by the CLI tools.
package event
