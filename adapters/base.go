package adapters

import (
	"context"
	"fmt"
	"strings"

	"catalog-extractor/internal/types"

	"github.com/PuerkitoBio/goquery"
)

// BaseAdapter provides the DOM helpers shared by catalog adapters.
// Rendering happens in the browser session; parsing happens on a goquery
// snapshot of the rendered document.
type BaseAdapter struct {
	config  *types.Config
	logger  types.Logger
	browser types.Browser
}

// NewBaseAdapter creates a new base adapter bound to a browser session
func NewBaseAdapter(config *types.Config, logger types.Logger, browser types.Browser) *BaseAdapter {
	return &BaseAdapter{
		config:  config,
		logger:  logger,
		browser: browser,
	}
}

// RenderedDocument snapshots the page currently loaded in the browser and parses it
func (b *BaseAdapter) RenderedDocument(ctx context.Context) (*goquery.Document, error) {
	html, err := b.browser.OuterHTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered page: %w", err)
	}
	b.logger.Debugf("Snapshot of rendered page: %d bytes", len(html))
	return b.ParseHTML(html)
}

// ParseHTML parses HTML content into a goquery document
func (b *BaseAdapter) ParseHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// ExtractText returns the trimmed text of the first element matching selector within node
func (b *BaseAdapter) ExtractText(node *goquery.Selection, selector string) (string, bool) {
	element := node.Find(selector).First()
	if element.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(element.Text()), true
}

// ExtractAttribute returns an attribute of the first element matching selector within node
func (b *BaseAdapter) ExtractAttribute(node *goquery.Selection, selector string, attribute string) (string, bool) {
	element := node.Find(selector).First()
	if element.Length() == 0 {
		return "", false
	}
	value, exists := element.Attr(attribute)
	if !exists {
		return "", false
	}
	return strings.TrimSpace(value), true
}
