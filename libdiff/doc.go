// Package libdiff compares filesave stores, either entry by entry with
// Diff or as formatted documents with LineDiff.
package libdiff
