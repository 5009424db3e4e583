package main

import (
	"github.com/google/renameio/v2"
)

// writeOutput replaces filename with data in one step, so a failed write
// never leaves a truncated image behind. An existing file keeps its mode.
func writeOutput(filename string, data []byte) error {
	return renameio.WriteFile(filename, data, 0644, renameio.WithExistingPermissions())
}
