package mock

import (
	"context"

	"github.com/fwojciec/docmeta"
)

var _ docmeta.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of docmeta.MetadataExtractor.
type MetadataExtractor struct {
	ExtractFn func(html, sourceURL string) *docmeta.Metadata
}

func (e *MetadataExtractor) Extract(html, sourceURL string) *docmeta.Metadata {
	return e.ExtractFn(html, sourceURL)
}

var _ docmeta.MetadataService = (*MetadataService)(nil)

// MetadataService is a mock implementation of docmeta.MetadataService.
type MetadataService struct {
	ExtractMetadataFn func(ctx context.Context, url string) (*docmeta.Metadata, error)
}

func (s *MetadataService) ExtractMetadata(ctx context.Context, url string) (*docmeta.Metadata, error) {
	return s.ExtractMetadataFn(ctx, url)
}
