// Package fileutil holds file permission constants shared by the codec and
// CLI when writing merged pipeline files to disk.
package fileutil

import "os"

// OwnerReadWrite is the file permission mode used when writing a merged
// pipeline YAML file, since pipeline definitions frequently embed
// credentials under source/params (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is a world-readable file permission mode for non-sensitive
// output. Nothing in this module currently writes a file with it.
const ReadableByAll os.FileMode = 0o644
