package goquery

import (
	"regexp"

	"github.com/fwojciec/docmeta"
)

// DefaultBrand is the platform name stripped from page titles.
const DefaultBrand = "Scribd"

// Ensure Extractor implements docmeta.MetadataExtractor at compile time.
var _ docmeta.MetadataExtractor = (*Extractor)(nil)

// Field chains that do not depend on configuration. Order encodes
// confidence: embedded structured data, then meta tags, then loose text.
var (
	authorRule = First(
		JSONString("author"),
		JSONString("author_name"),
		JSONString("creator"),
		SelectorAttr(`meta[name="author" i]`, "content"),
		SelectorAttr(`meta[property="article:author" i]`, "content"),
		// Loose heuristic; can match unrelated prose.
		Pattern(regexp.MustCompile(`(?i)by\s+([^<|]+)`)),
	)

	pageCountRule = First(
		PositiveInt(JSONNumber("page_count")),
		PositiveInt(JSONNumber("total_pages")),
		PositiveInt(JSONNumber("pages")),
		PositiveInt(JSONNumber("numberOfPages")),
		PositiveInt(SelectorAttr("[data-page-count]", "data-page-count")),
		// Loose heuristic; can match unrelated prose.
		PositiveInt(Pattern(regexp.MustCompile(`(\d+)\s+[Pp]ages`))),
	)

	descriptionRule = First(
		SelectorAttr(`meta[name="description" i]`, "content"),
		SelectorAttr(`meta[property="og:description" i]`, "content"),
		JSONString("description"),
	)

	docIDRule = URLPattern(regexp.MustCompile(`/(?:document|doc|embeds)/(\d+)`))
)

// Extractor extracts document metadata from landing page HTML.
type Extractor struct {
	brand string
	title Rule[string]
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithBrand sets the platform name stripped from the end of page titles.
// Defaults to DefaultBrand.
func WithBrand(brand string) Option {
	return func(e *Extractor) {
		e.brand = brand
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{brand: DefaultBrand}
	for _, opt := range opts {
		opt(e)
	}
	e.title = titleRule(e.brand)
	return e
}

// Extract runs each field chain in isolation and assembles the record.
// URL and Timestamp are left unset.
func (e *Extractor) Extract(html, sourceURL string) *docmeta.Metadata {
	p := NewPage(html, sourceURL)
	return &docmeta.Metadata{
		Title:       Attempt(e.title, docmeta.DefaultTitle, p),
		Author:      Attempt(authorRule, docmeta.DefaultAuthor, p),
		PageCount:   Attempt(Optional(pageCountRule), (*int)(nil), p),
		Description: Attempt(Optional(descriptionRule), (*string)(nil), p),
		DocID:       Attempt(docIDRule, docmeta.DefaultDocID, p),
	}
}

func titleRule(brand string) Rule[string] {
	return First(
		Map(SelectorText("title"), brandStripper(brand)),
		SelectorAttr(`meta[property="og:title" i]`, "content"),
		SelectorText("h1"),
	)
}

// brandStripper removes trailing "| Brand", "- Brand" and "on Brand"
// suffixes, in that order.
func brandStripper(brand string) func(string) string {
	if brand == "" {
		return func(s string) string { return s }
	}
	b := regexp.QuoteMeta(brand)
	suffixes := []*regexp.Regexp{
		regexp.MustCompile(`(?i)\s*\|\s*` + b + `\s*$`),
		regexp.MustCompile(`(?i)\s*-\s*` + b + `\s*$`),
		regexp.MustCompile(`(?i)\s*on\s*` + b + `\s*$`),
	}
	return func(s string) string {
		for _, re := range suffixes {
			s = re.ReplaceAllString(s, "")
		}
		return s
	}
}
