// Package materialize turns a template tree into files on disk.
//
// It is split along the steps of a run: ListFiles enumerates the template,
// Plan pairs each file with its destination, EnsureDirectories creates the
// parents shallow-first, and CopyAll copies the batch, optionally in
// parallel, honoring preservation of existing files. Failures are collected
// per file rather than aborting the batch, so a caller always learns about
// every file that was not written.
package materialize
