package extractors

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
	"github.com/dawsonl1/halda-serper/internal/extractors/docx"
	"github.com/dawsonl1/halda-serper/internal/extractors/html"
	"github.com/dawsonl1/halda-serper/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.DocumentReader = (*Registry)(nil)

// Registry maps file extensions to extractors.
type Registry struct {
	byExt map[string]driven.TextExtractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]driven.TextExtractor)}
}

// Default returns a registry with the DOCX and HTML extractors.
func Default() *Registry {
	r := NewRegistry()
	r.Register(docx.New())
	r.Register(html.New())
	return r
}

// Register adds e for each of its extensions, replacing earlier entries.
func (r *Registry) Register(e driven.TextExtractor) {
	for _, ext := range e.Extensions() {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// Has returns true if an extractor handles files named name.
func (r *Registry) Has(name string) bool {
	_, ok := r.byExt[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Extensions returns the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Read extracts text from content according to the extension of name.
func (r *Registry) Read(ctx context.Context, name string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	e, ok := r.byExt[ext]
	if !ok {
		return string(content), nil
	}
	logger.Debug("Extracting %s as %s", filepath.Base(name), ext)
	text, err := e.Extract(ctx, content)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", filepath.Base(name), err)
	}
	return text, nil
}
