package driven

import "context"

// TextExtractor turns an exported survey document into plain text.
// Each extractor handles specific file extensions (e.g. ".docx").
type TextExtractor interface {
	// Extensions returns the lower-case file extensions handled, with dot.
	Extensions() []string

	// Extract returns the document text, one paragraph per line.
	Extract(ctx context.Context, content []byte) (string, error)
}

// DocumentReader selects a TextExtractor by file name.
type DocumentReader interface {
	// Read returns the text of content. Names without a registered
	// extension are returned unchanged as UTF-8 text.
	Read(ctx context.Context, name string, content []byte) (string, error)
}
