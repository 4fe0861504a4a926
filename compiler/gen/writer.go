package gen

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/tools/imports"
)

// Writer writes generated files below an output directory. Go sources are
// formatted with goimports before they are written. A Writer is safe for
// concurrent use.
type Writer struct {
	outDir string

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks generation output.
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
}

// NewWriter creates a writer for the output directory.
func NewWriter(outDir string) *Writer {
	return &Writer{outDir: outDir}
}

// Metrics returns a snapshot of the writer metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// Path returns the absolute output path of a file name relative to the
// output directory.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.outDir, filepath.FromSlash(name))
}

// Write formats src if it is a Go file and writes it to name, relative to
// the output directory.
func (w *Writer) Write(name string, src []byte) error {
	fullPath := w.Path(name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return NewGenerationError("write", name, "create directory", err)
	}
	out := src
	if strings.HasSuffix(name, ".go") {
		formatted, err := imports.Process(fullPath, src, nil)
		if err != nil {
			// Keep the unformatted source next to the target for debugging.
			debugPath := fullPath + ".error"
			_ = os.WriteFile(debugPath, src, 0o644)
			return NewGenerationError("format", name, "unformatted output written to "+debugPath, err)
		}
		out = formatted
	}
	if err := os.WriteFile(fullPath, out, 0o644); err != nil {
		return NewGenerationError("write", name, "", err)
	}

	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(out))
	w.mu.Unlock()
	return nil
}
