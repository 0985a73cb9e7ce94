package documents

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadFiles reads each path from disk. Unreadable paths become diagnostics
// and are left out of the returned files.
func LoadFiles(paths []string) ([]File, []Diagnostic) {
	var files []File
	var diags []Diagnostic
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			diags = append(diags, Diagnostic{File: filepath.Base(p), Err: fmt.Errorf("read: %w", err)})
			continue
		}
		files = append(files, File{Name: filepath.Base(p), Data: data})
	}
	return files, diags
}
