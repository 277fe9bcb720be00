package reconcile

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ExportReader converts a ledger holdings export into rows.
type ExportReader interface {
	Read(r io.Reader) ([]ExportRow, error)
	Format() string
}

// Registry holds export readers keyed by format, which is also the file
// extension they handle.
type Registry struct {
	readers map[string]ExportReader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]ExportReader)}
}

// Register adds a reader. Panics on duplicate format.
func (r *Registry) Register(rd ExportReader) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate export format: " + key)
	}
	r.readers[key] = rd
}

// Get returns the reader for format, or nil.
func (r *Registry) Get(format string) ExportReader {
	return r.readers[strings.ToLower(format)]
}

// ReaderFor returns the reader for path's extension.
func (r *Registry) ReaderFor(path string) (ExportReader, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	rd := r.Get(ext)
	if rd == nil {
		return nil, fmt.Errorf("no export reader for %q files", ext)
	}
	return rd, nil
}

// DefaultRegistry returns a registry with all built-in readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVReader{})
	r.Register(&XLSXReader{})
	return r
}
