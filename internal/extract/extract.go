// Package extract turns statement documents into token lines.
//
// PDF layout analysis is delegated to pdftotext from poppler, run with
// -layout so that table columns stay on one visual line.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/betterqif/internal/model"
)

// Extractor runs the external PDF-to-text tool.
type Extractor struct {
	Binary string
}

// New returns an Extractor that runs binary.
func New(binary string) *Extractor {
	return &Extractor{Binary: binary}
}

// Text returns the layout-preserving text of the PDF at pdfPath.
func (e *Extractor) Text(ctx context.Context, pdfPath string) (string, error) {
	cmd := exec.CommandContext(ctx, e.Binary, "-nopgbrk", "-layout", pdfPath, "-")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s %s: %s: %w", e.Binary, pdfPath, strings.TrimSpace(stderr.String()), err)
	}
	return string(out), nil
}

// Read returns the statement text at path. PDFs go through the extractor;
// any other file is taken to be text already extracted (e.g. a dump).
func (e *Extractor) Read(ctx context.Context, path string) (string, error) {
	if IsPDF(path) {
		return e.Text(ctx, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading statement text: %w", err)
	}
	return string(data), nil
}

// Load reads path and tokenizes it.
func (e *Extractor) Load(ctx context.Context, path string) ([]model.Line, error) {
	text, err := e.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	return Lines(text), nil
}

// IsPDF reports whether path has a .pdf extension.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// NonBlank returns the lines of text that contain something other than whitespace.
func NonBlank(text string) []string {
	var out []string
	for _, l := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Lines splits every non-blank line of text on whitespace.
func Lines(text string) []model.Line {
	raw := NonBlank(text)
	lines := make([]model.Line, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, model.Line(strings.Fields(l)))
	}
	return lines
}

// WriteDump writes the non-blank lines of text to path. The dump can be fed
// back to Read in place of the PDF.
func WriteDump(path, text string) error {
	content := strings.Join(NonBlank(text), "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}
	return nil
}

// BaseName strips the extension from a statement path: "stmt.pdf" -> "stmt".
func BaseName(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
