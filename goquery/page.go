// Package goquery implements the metadata pattern library on top of goquery.
//
// Each metadata field is an ordered fallback chain of rules. Rules over the
// parsed DOM use CSS selectors; rules over embedded JSON-like fragments and
// loose prose use regular expressions over the raw HTML.
package goquery

import (
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page is the input shared by all rules of one extraction.
// The DOM is parsed on first use and reused by later rules.
type Page struct {
	HTML string
	URL  string

	once sync.Once
	doc  *goquery.Document
}

// NewPage creates a Page for raw HTML fetched from sourceURL.
func NewPage(raw, sourceURL string) *Page {
	return &Page{HTML: raw, URL: sourceURL}
}

// Document returns the parsed DOM. HTML that cannot be parsed yields an
// empty document so that selector rules simply do not match.
func (p *Page) Document() *goquery.Document {
	p.once.Do(func() {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.HTML))
		if err != nil {
			doc = goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
		}
		p.doc = doc
	})
	return p.doc
}
