package ingest

import (
	"context"
	"path/filepath"
	"strings"
)

// Extractor converts a document on disk into markdown text.
type Extractor interface {
	Extract(ctx context.Context, filePath string) (string, error)
}

// FileExtractor dispatches on file extension: photographed invoices go to
// the vision extractor, everything else to the docling converter.
type FileExtractor struct {
	docling Extractor
	vision  Extractor
}

func NewFileExtractor(docling, vision Extractor) *FileExtractor {
	return &FileExtractor{docling: docling, vision: vision}
}

func (f *FileExtractor) Extract(ctx context.Context, filePath string) (string, error) {
	if isImage(filePath) {
		return f.vision.Extract(ctx, filePath)
	}
	return f.docling.Extract(ctx, filePath)
}

func isImage(filePath string) bool {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".jpeg", ".jpg", ".png":
		return true
	}
	return false
}
