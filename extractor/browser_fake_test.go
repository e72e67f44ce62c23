package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-extractor/internal/types"
)

// fakeBrowser serves a fixed document per URL. The load-more control is
// rendered visibly until every batch of extra entries has been revealed.
type fakeBrowser struct {
	pages    map[string]fakePage
	navErr   map[string]error
	current  string
	revealed int
	visits   []string
}

type fakePage struct {
	entries []string
	batches [][]string
	consent bool
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{
		pages:  make(map[string]fakePage),
		navErr: make(map[string]error),
	}
}

func (b *fakeBrowser) Navigate(ctx context.Context, url string) error {
	b.visits = append(b.visits, url)
	if err := b.navErr[url]; err != nil {
		return err
	}
	if _, ok := b.pages[url]; !ok {
		return fmt.Errorf("unexpected url %s", url)
	}
	b.current = url
	b.revealed = 0
	return nil
}

func (b *fakeBrowser) Present(ctx context.Context, selector string) (bool, error) {
	page := b.pages[b.current]
	switch selector {
	case types.DefaultSelectors().LoadMore:
		return len(page.batches) > 0, nil
	case types.DefaultSelectors().Consent:
		return page.consent, nil
	}
	return false, nil
}

func (b *fakeBrowser) Visible(ctx context.Context, selector string) (bool, error) {
	page := b.pages[b.current]
	if selector == types.DefaultSelectors().LoadMore {
		return b.revealed < len(page.batches), nil
	}
	return b.Present(ctx, selector)
}

func (b *fakeBrowser) Click(ctx context.Context, selector string) error {
	page := b.pages[b.current]
	switch selector {
	case types.DefaultSelectors().LoadMore:
		if b.revealed >= len(page.batches) {
			return errors.New("element not interactable")
		}
		b.revealed++
	case types.DefaultSelectors().Consent:
		page.consent = false
		b.pages[b.current] = page
	}
	return nil
}

func (b *fakeBrowser) OuterHTML(ctx context.Context) (string, error) {
	page := b.pages[b.current]
	entries := append([]string{}, page.entries...)
	for _, batch := range page.batches[:b.revealed] {
		entries = append(entries, batch...)
	}
	return "<html><body><div class=\"row\">" + strings.Join(entries, "") + "</div></body></html>", nil
}

func (b *fakeBrowser) Close() {}

func productCard(title, price string, stars int, reviews string) string {
	var markers strings.Builder
	for i := 0; i < stars; i++ {
		markers.WriteString(`<span class="ws-icon ws-icon-star"></span>`)
	}
	return fmt.Sprintf(`<div class="card-body"><h4 class="price">%s</h4><h4><a class="title" title="%s">%s</a></h4>`+
		`<p class="description">%s description</p><div class="ratings"><p class="review-count">%s</p><p>%s</p></div></div>`,
		price, title, title, title, reviews, markers.String())
}

type recordingExporter struct {
	calls map[string][]types.Product
	order []string
	err   error
}

func newRecordingExporter() *recordingExporter {
	return &recordingExporter{calls: make(map[string][]types.Product)}
}

func (e *recordingExporter) Export(name string, products []types.Product) error {
	if e.err != nil {
		return e.err
	}
	e.order = append(e.order, name)
	e.calls[name] = products
	return nil
}
