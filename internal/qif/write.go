package qif

import (
	"fmt"
	"os"
)

// FileName returns the output path for a goal's document.
func FileName(base string, d Document) string {
	return base + "-" + d.Goal.File + ".qif"
}

// WriteFiles writes each document to <base>-<goal file>.qif and returns the
// paths written.
func WriteFiles(base string, docs []Document) ([]string, error) {
	paths := make([]string, 0, len(docs))
	for _, d := range docs {
		path := FileName(base, d)
		if err := os.WriteFile(path, []byte(d.String()+"\n"), 0o644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
