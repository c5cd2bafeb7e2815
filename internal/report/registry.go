// Package report renders stocking evaluations into downloadable documents.
package report

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shoalhq/shoal/internal/compat"
)

// Formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// Renderer turns an evaluation into one downloadable document format.
type Renderer interface {
	// Render produces the document body. generatedAt is stamped into the
	// output so repeated renders of the same plan are attributable.
	Render(result *compat.Result, generatedAt time.Time) ([]byte, error)

	// ContentType is the MIME type served with the document.
	ContentType() string

	// Filename builds the attachment filename for the given timestamp.
	Filename(generatedAt time.Time) string
}

// Registry maps format names to renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty renderer registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// DefaultRegistry returns a registry with the built-in CSV and PDF renderers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(FormatCSV, &CSVRenderer{})
	r.Register(FormatPDF, &PDFRenderer{})
	return r
}

// Register adds a renderer under the given format name.
func (r *Registry) Register(format string, renderer Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[format] = renderer
}

// Resolve returns the renderer for the given format, or an error when the
// format is unknown.
func (r *Registry) Resolve(format string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[format]
	if !ok {
		return nil, fmt.Errorf("unknown report format %q", format)
	}
	return renderer, nil
}

// Formats lists the registered format names, sorted for stable output.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// timestampSuffix formats a generation time for filenames.
func timestampSuffix(t time.Time) string {
	return t.UTC().Format("20060102150405")
}
