package utils

import (
	"context"
	"fmt"
	"strings"

	"catalog-extractor/internal/types"

	"github.com/PuerkitoBio/goquery"
)

// StaticBrowser serves server-rendered HTML fetched over plain HTTP. It has
// no script engine, so clicks that would load content are rejected.
type StaticBrowser struct {
	client *HTTPClient
	logger types.Logger
	doc    *goquery.Document
	html   string
}

// NewStaticBrowser creates a static browser backed by the HTTP client
func NewStaticBrowser(config *types.Config, logger types.Logger) *StaticBrowser {
	return &StaticBrowser{
		client: NewHTTPClient(config, logger),
		logger: logger,
	}
}

// Navigate fetches and parses url
func (b *StaticBrowser) Navigate(ctx context.Context, url string) error {
	body, err := b.client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", url, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", url, err)
	}
	b.doc = doc
	b.html = string(body)
	return nil
}

func (b *StaticBrowser) find(selector string) (*goquery.Selection, error) {
	if b.doc == nil {
		return nil, fmt.Errorf("no page loaded")
	}
	return b.doc.Find(selector).First(), nil
}

// Present reports whether selector matches an element
func (b *StaticBrowser) Present(ctx context.Context, selector string) (bool, error) {
	sel, err := b.find(selector)
	if err != nil {
		return false, err
	}
	return sel.Length() > 0, nil
}

// Visible reports whether the element and its ancestors are free of the
// hidden attribute and inline display:none or visibility:hidden styles
func (b *StaticBrowser) Visible(ctx context.Context, selector string) (bool, error) {
	sel, err := b.find(selector)
	if err != nil {
		return false, err
	}
	if sel.Length() == 0 {
		return false, nil
	}
	for node := sel; node.Length() > 0; node = node.Parent() {
		if hiddenInline(node) {
			return false, nil
		}
	}
	return true, nil
}

func hiddenInline(node *goquery.Selection) bool {
	if _, ok := node.Attr("hidden"); ok {
		return true
	}
	style := strings.ReplaceAll(strings.ToLower(node.AttrOr("style", "")), " ", "")
	return strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden")
}

// Click is not supported on static pages
func (b *StaticBrowser) Click(ctx context.Context, selector string) error {
	return fmt.Errorf("click %s: %w", selector, types.ErrScriptRequired)
}

// OuterHTML returns the fetched document
func (b *StaticBrowser) OuterHTML(ctx context.Context) (string, error) {
	if b.doc == nil {
		return "", fmt.Errorf("no page loaded")
	}
	return b.html, nil
}

// Close releases the HTTP client
func (b *StaticBrowser) Close() {
	b.client.Close()
}

// NewBrowser opens a browser session for the configured backend
func NewBrowser(ctx context.Context, config *types.Config, logger types.Logger) (types.Browser, error) {
	switch config.Backend {
	case types.BackendChromedp:
		browser, err := NewChromeBrowser(ctx, config, logger)
		if err != nil {
			return nil, err
		}
		return browser, nil
	case types.BackendRod:
		browser, err := NewRodBrowser(config, logger)
		if err != nil {
			return nil, err
		}
		return browser, nil
	case types.BackendHTTP:
		return NewStaticBrowser(config, logger), nil
	default:
		return nil, fmt.Errorf("unsupported browser backend: %s", config.Backend)
	}
}
