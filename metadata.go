package docmeta

import (
	"context"
	"time"
)

// Defaults used when no extraction rule matches.
const (
	DefaultTitle  = "Unknown Document"
	DefaultAuthor = "Unknown Author"
	DefaultDocID  = "unknown"
)

// Metadata is the public metadata of a document landing page.
// Every field is always populated: either with an extracted value, its
// default, or nil for the optional fields.
type Metadata struct {
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	PageCount   *int      `json:"pageCount"`
	Description *string   `json:"description"`
	DocID       string    `json:"docId"`
	URL         string    `json:"url"`
	Timestamp   time.Time `json:"timestamp"`
}

// MetadataExtractor turns landing page HTML into metadata fields.
type MetadataExtractor interface {
	// Extract runs every field rule against html (and sourceURL for the
	// document id). It never fails; fields that cannot be extracted take
	// their defaults. URL and Timestamp are left for the caller to set.
	Extract(html, sourceURL string) *Metadata
}

// MetadataService fetches a landing page and extracts its metadata.
type MetadataService interface {
	// ExtractMetadata returns EINVALID for a missing or malformed URL before
	// any network activity. Fetch failures are returned as *ExtractionError.
	ExtractMetadata(ctx context.Context, url string) (*Metadata, error)
}
