// Package watch ingests Cabrillo files from disk into the archive, either as
// a one-off batch or by watching a directory for new and rewritten files.
package watch
